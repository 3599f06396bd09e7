package ethereum

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestParsePrivateKey(t *testing.T) {
	req := require.New(t)

	key, pub, err := GenerateKey()
	req.NoError(err)
	hexKey := hexutil.Encode(crypto.FromECDSA(key))

	for _, in := range []string{hexKey, hexKey[2:]} {
		parsed, addr, err := ParsePrivateKey(in)
		req.NoError(err)
		req.Equal(key.D, parsed.D)
		req.Equal(crypto.PubkeyToAddress(*pub).Hex(), string(addr))
	}

	_, _, err = ParsePrivateKey("not a key")
	req.Error(err)
}
