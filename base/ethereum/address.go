package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/marketengine/domain"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// ParsePrivateKey decodes a hex private key, with or without 0x, and derives its address
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, domain.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, "", err
	}
	return key, domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()), nil
}
