package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	cases := map[float64]string{
		0:      "₹0",
		999:    "₹999",
		5000:   "₹5,000",
		15000:  "₹15,000",
		4999.6: "₹5,000",
		-250:   "-₹250",
	}
	for amount, want := range cases {
		assert.Equal(t, want, Price(amount), "amount %v", amount)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "5 March 2024", Date("2024-03-05"))
	assert.Equal(t, "15 January 2024", Date("2024-01-15T10:30:00Z"))
	assert.Equal(t, "sometime", Date(" sometime "))
}
