package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ERC721TokenABI covers the calls the ledger makes on the item contract
var ERC721TokenABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc721TokenABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ERC721TokenABI = _abi
}

var erc721TokenABIJson = `
[
  {
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "address", "name": "from", "type": "address" },
      { "indexed": true, "internalType": "address", "name": "to", "type": "address" },
      { "indexed": true, "internalType": "uint256", "name": "tokenId", "type": "uint256" }
    ],
    "name": "Transfer",
    "type": "event"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "to", "type": "address" },
      { "internalType": "uint256", "name": "tokenId", "type": "uint256" }
    ],
    "name": "approve",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "to", "type": "address" },
      { "internalType": "string", "name": "tokenUri", "type": "string" },
      { "internalType": "uint96", "name": "royaltyBps", "type": "uint96" }
    ],
    "name": "mint",
    "outputs": [
      { "internalType": "uint256", "name": "", "type": "uint256" }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "uint256", "name": "tokenId", "type": "uint256" }
    ],
    "name": "ownerOf",
    "outputs": [
      { "internalType": "address", "name": "", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]
`
