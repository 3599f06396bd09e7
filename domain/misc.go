package domain

import (
	"strings"
	"time"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// UserId identifies a marketplace user
type UserId string

func (u UserId) IsEmpty() bool {
	return len(u) == 0
}

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

type TxHash string

func (h TxHash) IsEmpty() bool {
	return len(h) == 0
}

// Currency is a settlement currency symbol, e.g. "ETH"
type Currency string

func (c Currency) Normalize() Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(string(c))))
}

// InWindow reports whether t falls inside [start, end]. A missing bound never matches.
func InWindow(t time.Time, start, end *time.Time) bool {
	if start == nil || end == nil {
		return false
	}
	return !t.Before(*start) && !t.After(*end)
}
