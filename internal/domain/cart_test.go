package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CartTestSuite struct {
	suite.Suite
	foodA uuid.UUID
	foodB uuid.UUID
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(CartTestSuite))
}

func (s *CartTestSuite) SetupTest() {
	s.foodA = uuid.MustParse("7b8f4f0e-3c1a-4d8e-9a52-1f0c2b3d4e5f")
	s.foodB = uuid.MustParse("0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d")
}

func (s *CartTestSuite) TestParseCart_NotList() {
	cases := []string{`{"foodId":"x"}`, `"orders"`, `null`, `42`, ``}
	for _, raw := range cases {
		s.Run(raw, func() {
			_, err := ParseCart(json.RawMessage(raw))
			s.Require().ErrorIs(err, ErrInvalidCart)
		})
	}
}

func (s *CartTestSuite) TestParseCart_DiscardsInvalidEntries() {
	raw := `[
		{"foodId":"` + s.foodA.String() + `","count":2},
		{"foodId":"not-a-uuid","count":1},
		{"foodId":"{` + s.foodB.String() + `}","count":1},
		{"foodId":"` + s.foodB.String() + `","count":0},
		{"foodId":"` + s.foodB.String() + `","count":-3},
		{"foodId":"` + s.foodB.String() + `","count":1.5},
		{"foodId":"` + s.foodB.String() + `","count":"1.0"},
		{"foodId":"` + s.foodB.String() + `","count":true},
		{"foodId":"` + s.foodB.String() + `"},
		{"count":1},
		"string entry",
		17,
		null,
		[1,2]
	]`
	cart, err := ParseCart(json.RawMessage(raw))
	s.Require().NoError(err)
	s.Require().Equal(1, cart.Len())
	s.Equal(CartLine{FoodID: s.foodA, Count: 2}, cart.Lines()[0])
}

func (s *CartTestSuite) TestParseCart_LastWriteWins() {
	raw := `[
		{"foodId":"` + s.foodA.String() + `","count":2},
		{"foodId":"` + s.foodB.String() + `","count":"4"},
		{"foodId":"` + s.foodA.String() + `","count":"7"}
	]`
	cart, err := ParseCart(json.RawMessage(raw))
	s.Require().NoError(err)
	// порядок строк по первому появлению, количество - последнее.
	s.Equal([]CartLine{
		{FoodID: s.foodA, Count: 7},
		{FoodID: s.foodB, Count: 4},
	}, cart.Lines())
	s.Equal([]uuid.UUID{s.foodA, s.foodB}, cart.FoodIDs())
}

func (s *CartTestSuite) TestPriceCart() {
	cart := NewCart()
	cart.Put(s.foodA, 2)
	cart.Put(s.foodB, 1)
	cart.Put(uuid.New(), 5) // нет в каталоге.

	foods := []FoodChain{
		{
			Food:              Food{ID: s.foodA, Name: "FoodA", Price: decimal.RequireFromString("9.99")},
			MenuName:          "Lunch",
			RestaurantName:    "Diner",
			RestaurantAddress: "Main st. 1",
			CountryName:       "Ghana",
		},
		{
			Food: Food{ID: s.foodB, Name: "FoodB", Price: decimal.RequireFromString("5.00")},
		},
	}
	userID := uuid.New()

	payment := PriceCart(cart, foods, userID)

	s.True(decimal.RequireFromString("24.98").Equal(payment.Amount), payment.Amount.String())
	s.Equal(3, payment.Total)
	s.Equal(PaymentStatusPending, payment.Status)
	s.Equal(userID, payment.UserID)
	s.Require().Len(payment.Lines, 2)
	s.Equal("FoodA", payment.Lines[0].FoodName)
	s.Equal("Ghana", payment.Lines[0].RestaurantCountry)
	// пустые звенья цепочки допускаются.
	s.Empty(payment.Lines[1].RestaurantName)
}

func (s *CartTestSuite) TestPriceCart_Rounding() {
	cart := NewCart()
	cart.Put(s.foodA, 3)
	foods := []FoodChain{{Food: Food{ID: s.foodA, Price: decimal.RequireFromString("0.335")}}}

	payment := PriceCart(cart, foods, uuid.New())

	s.Equal("1.01", payment.Amount.StringFixed(AmountPlaces))
}

func (s *CartTestSuite) TestPriceCart_NoMatches() {
	cart := NewCart()
	cart.Put(s.foodA, 3)

	payment := PriceCart(cart, nil, uuid.New())

	s.Zero(payment.Total)
	s.True(payment.Amount.IsZero())
	s.Empty(payment.Lines)
}

func (s *CartTestSuite) TestParseID() {
	_, ok := ParseID(s.foodA.String())
	s.True(ok)
	_, ok = ParseID("urn:uuid:" + s.foodA.String())
	s.False(ok)
	_, ok = ParseID("")
	s.False(ok)
}

func (s *CartTestSuite) TestParseWhole() {
	cases := []struct {
		raw  string
		min  int64
		want int64
		ok   bool
	}{
		{raw: `0`, min: 0, want: 0, ok: true},
		{raw: `"15"`, min: 0, want: 15, ok: true},
		{raw: `3.0`, min: 0, want: 3, ok: true},
		{raw: `0`, min: 1, ok: false},
		{raw: `-1`, min: 0, ok: false},
		{raw: `"-1"`, min: 0, ok: false},
		{raw: `"1.5"`, min: 0, ok: false},
		{raw: `2.5`, min: 0, ok: false},
		{raw: `true`, min: 0, ok: false},
		{raw: `null`, min: 0, ok: false},
	}
	for _, tc := range cases {
		s.Run(tc.raw, func() {
			got, ok := ParseWhole(json.RawMessage(tc.raw), tc.min)
			s.Equal(tc.ok, ok)
			if tc.ok {
				s.Equal(tc.want, got)
			}
		})
	}
}
