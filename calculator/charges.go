// Package calculator derives article amounts, the GST split and the grand
// total of a booking. All arithmetic is decimal; values are rounded only
// when formatted for display.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"lrbooking/models"
)

var (
	sgstRate = decimal.RequireFromString("0.025")
	cgstRate = decimal.RequireFromString("0.025")
	igstRate = decimal.RequireFromString("0.05")
)

// Breakdown is the full set of derived amounts for one booking.
type Breakdown struct {
	ArticleAmount decimal.Decimal
	Base          decimal.Decimal
	SGST          decimal.Decimal
	CGST          decimal.Decimal
	IGST          decimal.Decimal
	FixAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
	TotalAmount   decimal.Decimal
}

func amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// WeightAmount is actualWeight * weightRate, or zero when either is unset.
func WeightAmount(a models.Article) decimal.Decimal {
	w, r := amount(a.ActualWeight), amount(a.WeightRate)
	if w.IsZero() || r.IsZero() {
		return decimal.Zero
	}
	return w.Mul(r)
}

func TotalArticleAmount(articles []models.Article) decimal.Decimal {
	total := decimal.Zero
	for _, a := range articles {
		total = total.Add(WeightAmount(a))
	}
	return total
}

// Compute returns the tax split and totals. Only the entered charge fields
// of c are read; its derived fields are ignored.
func Compute(c models.Charges, articles []models.Article, isInterstate bool, fixAmount float64) Breakdown {
	articleAmount := TotalArticleAmount(articles)
	base := decimal.Sum(
		amount(c.Freight),
		amount(c.Pickup),
		amount(c.DropCartage),
		amount(c.Loading),
		amount(c.LRCharge),
		articleAmount,
	)
	fix := amount(fixAmount)

	out := Breakdown{
		ArticleAmount: articleAmount,
		Base:          base,
		SGST:          decimal.Zero,
		CGST:          decimal.Zero,
		IGST:          decimal.Zero,
		FixAmount:     fix,
		TotalAmount:   articleAmount.Add(fix),
	}
	if isInterstate {
		out.IGST = base.Mul(igstRate)
	} else {
		out.SGST = base.Mul(sgstRate)
		out.CGST = base.Mul(cgstRate)
	}
	out.GrandTotal = decimal.Sum(base, out.SGST, out.CGST, out.IGST, fix)
	return out
}

// Apply recomputes every derived field of b in place.
func Apply(b *models.Booking) Breakdown {
	for i := range b.Articles {
		wa := WeightAmount(b.Articles[i]).InexactFloat64()
		b.Articles[i].WeightAmount = wa
		b.Articles[i].ArticleAmount = wa
	}

	br := Compute(b.Charges, b.Articles, b.IsInterstate, b.FixAmount)
	b.Charges.SGST = br.SGST.InexactFloat64()
	b.Charges.CGST = br.CGST.InexactFloat64()
	b.Charges.IGST = br.IGST.InexactFloat64()
	b.Charges.GrandTotal = br.GrandTotal.InexactFloat64()
	b.ArticleAmount = br.ArticleAmount.InexactFloat64()
	b.TotalAmount = br.TotalAmount.InexactFloat64()
	return br
}

// Display formats an amount with two decimals.
func Display(v float64) string {
	return amount(v).StringFixed(2)
}
