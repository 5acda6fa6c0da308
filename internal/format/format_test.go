package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "18,248", Number(18248))
	assert.Equal(t, "1,234,567", Number(1234567))
}

func TestFloat(t *testing.T) {
	assert.Equal(t, "1,234.57", Float(1234.567, 2))
	assert.Equal(t, "1,235", Float(1234.567, 0))
	assert.Equal(t, "-42.50", Float(-42.5, 2))
	assert.Equal(t, "2.00", Float(1.999, 2))
	assert.Equal(t, "—", Float(math.NaN(), 2))
	assert.Equal(t, "—", Float(math.Inf(1), 2))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "$231.50", Price(231.5, "USD"))
	assert.Equal(t, "Rp9,875.00", Price(9875, "IDR"))
	assert.Equal(t, "CHF 12.00", Price(12, "CHF"))
	assert.Equal(t, "$1.00", Price(1, ""))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+1.23%", Percent(1.2345))
	assert.Equal(t, "-0.50%", Percent(-0.5))
	assert.Equal(t, "+0.00%", Percent(0))
}

func TestMarketCap(t *testing.T) {
	assert.Equal(t, "$2.50T", MarketCap(2.5e12, "USD"))
	assert.Equal(t, "$431.20B", MarketCap(431.2e9, "USD"))
	assert.Equal(t, "$17.50M", MarketCap(17.5e6, "USD"))
	assert.Equal(t, "$950.00K", MarketCap(950_000, "USD"))
	assert.Equal(t, "$12.00", MarketCap(12, "USD"))
}

func TestRatio(t *testing.T) {
	v := 27.345
	assert.Equal(t, "27.35", Ratio(&v))
	assert.Equal(t, "—", Ratio(nil))
}
