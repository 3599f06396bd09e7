package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/domain"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "valid address - real address",
			address:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			expIsValid: true,
		},
		{
			desc:       "valid address - lower case",
			address:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952b",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestDecimalTags() {
	type req struct {
		Price   string `validate:"required,posdecimal"`
		Reserve string `validate:"omitempty,decimal"`
	}
	v := NewCustomValidator(New())

	s.NoError(v.Validate(&req{Price: "2.50"}))
	s.NoError(v.Validate(&req{Price: "1", Reserve: "0"}))

	err := v.Validate(&req{Price: "0"})
	s.Error(err)
	s.True(errors.Is(err, domain.ErrBadParamInput))

	s.Error(v.Validate(&req{Price: "abc"}))
	s.Error(v.Validate(&req{Price: "1", Reserve: "x"}))
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
