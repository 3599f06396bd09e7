package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	timeNow = time.Now
)

type impl struct {
	jwtSecret []byte
}

func New(jwtSecret string) auth.Usecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, userId domain.UserId, ttl time.Duration) (string, error) {
	if userId.IsEmpty() {
		return "", domain.ErrBadParamInput
	}

	now := timeNow()
	claims := jwt.StandardClaims{
		Subject:   string(userId),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.UserId, error) {
	token, err := jwt.ParseWithClaims(str, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*jwt.StandardClaims); ok && token.Valid && claims.Subject != "" {
		return domain.UserId(claims.Subject), nil
	}

	return "", ErrInvalidToken
}
