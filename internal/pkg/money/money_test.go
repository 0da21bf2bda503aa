package money_test

import (
	"testing"

	"fulfillment/internal/pkg/money"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	cases := map[int64]string{
		0:      "$0.00",
		5:      "$0.05",
		1500:   "$15.00",
		123456: "$1234.56",
		-250:   "-$2.50",
		-1:     "-$0.01",
	}

	for cents, want := range cases {
		assert.Equal(t, want, money.FormatCents(cents), cents)
	}
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "15.5", money.Dollars(1550).String())
}
