package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestABIs(t *testing.T) {
	for _, m := range []string{"approve", "mint", "ownerOf"} {
		_, ok := ERC721TokenABI.Methods[m]
		assert.True(t, ok, m)
	}
	_, ok := ERC721TokenABI.Events["Transfer"]
	assert.True(t, ok)

	_, ok = MarketplaceABI.Methods["buyNFT"]
	assert.True(t, ok)
}
