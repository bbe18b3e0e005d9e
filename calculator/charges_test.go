package calculator

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrbooking/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWeightAmount(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		rate   float64
		want   string
	}{
		{"zero weight", 0, 12, "0"},
		{"zero rate", 25, 0, "0"},
		{"both set", 10, 5, "50"},
		{"fractional", 12.5, 4, "50"},
		{"nan weight", math.NaN(), 4, "0"},
		{"inf rate", 3, math.Inf(1), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightAmount(models.Article{ActualWeight: tt.weight, WeightRate: tt.rate})
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestTotalArticleAmount(t *testing.T) {
	assert.True(t, TotalArticleAmount(nil).IsZero())

	articles := []models.Article{
		{ActualWeight: 10, WeightRate: 5},
		{ActualWeight: 2, WeightRate: 7.5},
		{ActualWeight: 0, WeightRate: 100},
	}
	assert.True(t, dec("65").Equal(TotalArticleAmount(articles)))
}

func TestComputeInterstate(t *testing.T) {
	c := models.Charges{Freight: 100, Pickup: 20, DropCartage: 30, Loading: 40, LRCharge: 10}
	br := Compute(c, nil, true, 15)

	require.True(t, dec("200").Equal(br.Base))
	assert.True(t, dec("10").Equal(br.IGST))
	assert.True(t, br.SGST.IsZero())
	assert.True(t, br.CGST.IsZero())
	assert.True(t, dec("225").Equal(br.GrandTotal))
}

func TestComputeDomestic(t *testing.T) {
	c := models.Charges{Freight: 100}
	br := Compute(c, []models.Article{{ActualWeight: 4, WeightRate: 25}}, false, 7)

	require.True(t, dec("200").Equal(br.Base))
	assert.True(t, dec("5").Equal(br.SGST))
	assert.True(t, dec("5").Equal(br.CGST))
	assert.True(t, br.IGST.IsZero())
	assert.True(t, dec("217").Equal(br.GrandTotal))
	assert.True(t, dec("107").Equal(br.TotalAmount))
}

func TestComputeKeepsFullPrecision(t *testing.T) {
	br := Compute(models.Charges{Freight: 0.3}, nil, false, 0)

	assert.True(t, dec("0.0075").Equal(br.SGST))
	assert.Equal(t, "0.01", br.SGST.StringFixed(2))
}

func TestApplyEndToEnd(t *testing.T) {
	b := &models.Booking{
		BookingType: models.BookingToPay,
		Articles: []models.Article{
			{Name: "Carton", ActualWeight: 10, WeightRate: 5, WeightAmount: 999},
		},
	}
	Apply(b)

	assert.Equal(t, 50.0, b.Articles[0].WeightAmount)
	assert.Equal(t, 50.0, b.ArticleAmount)
	assert.Equal(t, 50.0, b.TotalAmount)
	assert.Equal(t, 1.25, b.Charges.SGST)
	assert.Equal(t, 1.25, b.Charges.CGST)
	assert.Equal(t, 0.0, b.Charges.IGST)
	assert.Equal(t, 52.5, b.Charges.GrandTotal)
	assert.Equal(t, "52.50", Display(b.Charges.GrandTotal))
}

func TestApplyRecomputesOnInterstateToggle(t *testing.T) {
	b := &models.Booking{Charges: models.Charges{Freight: 100}}
	Apply(b)
	assert.Equal(t, 2.5, b.Charges.SGST)

	b.IsInterstate = true
	Apply(b)
	assert.Equal(t, 0.0, b.Charges.SGST)
	assert.Equal(t, 0.0, b.Charges.CGST)
	assert.Equal(t, 5.0, b.Charges.IGST)
	assert.Equal(t, 105.0, b.Charges.GrandTotal)
}
