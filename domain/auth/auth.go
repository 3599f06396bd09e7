package auth

import (
	"time"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
)

// Usecase issues and verifies bearer tokens. The token subject is the user id.
type Usecase interface {
	SignToken(c ctx.Ctx, userId domain.UserId, ttl time.Duration) (string, error)
	ParseToken(c ctx.Ctx, token string) (domain.UserId, error)
}
