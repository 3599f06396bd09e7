package mongoclient

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type decimalSuite struct {
	suite.Suite
}

type priced struct {
	Price   decimal.Decimal            `bson:"price"`
	Reserve *decimal.Decimal           `bson:"reserve"`
	Volume  map[string]decimal.Decimal `bson:"volume"`
}

func (s *decimalSuite) TestRoundTrip() {
	reserve := decimal.RequireFromString("10.00")
	in := priced{
		Price:   decimal.RequireFromString("2.5"),
		Reserve: &reserve,
		Volume:  map[string]decimal.Decimal{"ETH": decimal.RequireFromString("0.000000000000000001")},
	}

	raw, err := bson.MarshalWithRegistry(Registry, in)
	s.Require().NoError(err)
	s.Equal(bsontype.Decimal128, bson.Raw(raw).Lookup("price").Type)

	out := priced{}
	s.Require().NoError(bson.UnmarshalWithRegistry(Registry, raw, &out))
	s.True(in.Price.Equal(out.Price))
	s.Require().NotNil(out.Reserve)
	s.True(reserve.Equal(*out.Reserve))
	s.True(in.Volume["ETH"].Equal(out.Volume["ETH"]))
}

func (s *decimalSuite) TestNilPointer() {
	raw, err := bson.MarshalWithRegistry(Registry, priced{Price: decimal.NewFromInt(1)})
	s.Require().NoError(err)

	out := priced{}
	s.Require().NoError(bson.UnmarshalWithRegistry(Registry, raw, &out))
	s.Nil(out.Reserve)
}

func (s *decimalSuite) TestDecodeLegacyTypes() {
	tests := []struct {
		desc string
		doc  bson.M
		exp  string
	}{
		{"string", bson.M{"price": "3.14"}, "3.14"},
		{"double", bson.M{"price": 1.5}, "1.5"},
		{"int32", bson.M{"price": int32(7)}, "7"},
		{"int64", bson.M{"price": int64(8)}, "8"},
	}
	for _, t := range tests {
		raw, err := bson.Marshal(t.doc)
		s.Require().NoError(err, t.desc)

		out := priced{}
		s.Require().NoError(bson.UnmarshalWithRegistry(Registry, raw, &out), t.desc)
		s.True(decimal.RequireFromString(t.exp).Equal(out.Price), t.desc)
	}
}

func (s *decimalSuite) TestDecodeRejectsBool() {
	raw, err := bson.Marshal(bson.M{"price": true})
	s.Require().NoError(err)
	s.Error(bson.UnmarshalWithRegistry(Registry, raw, &priced{}))
}

func TestDecimalSuite(t *testing.T) {
	suite.Run(t, new(decimalSuite))
}
