package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"lrbooking/calculator"
	"lrbooking/models"
)

// InvoiceCopies are printed in this order, each starting a new page.
var InvoiceCopies = []string{"Consignor Copy", "Consignee Copy", "Driver Copy"}

// InvoiceFileName is the export name of a booking's invoice.
func InvoiceFileName(bookingID string) string {
	return bookingID + "_invoice.pdf"
}

// PrintDate turns a YYYY-MM-DD date into 02-Jan-2006, or "" when unset.
func PrintDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Format("02-Jan-2006")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func money(v float64) string {
	return calculator.Display(v)
}

// Invoice builds the three-copy LR invoice of b.
func Invoice(b *models.Booking, brand Branding, generatedAt time.Time) Document {
	doc := Document{
		Title:       "Lorry Receipt",
		Subtitle:    "LR No. " + b.ID,
		Branding:    brand,
		GeneratedAt: generatedAt,
	}
	for _, title := range InvoiceCopies {
		doc.Sections = append(doc.Sections, invoiceCopy(b, brand, title)...)
	}
	return doc
}

func invoiceCopy(b *models.Booking, brand Branding, copyTitle string) []Section {
	kv := []Column{{Header: "Field", Width: 35}, {Header: "Value", Width: 65}}

	details := Section{
		Title:   copyTitle,
		NewPage: true,
		Table: Table{
			Columns:    kv,
			HideHeader: true,
			Missing:    MissingInvoice,
			Rows: [][]string{
				{"LR No.", b.ID},
				{"Booking Date", PrintDate(b.BookingDate)},
				{"Booking Type", string(b.BookingType)},
				{"Destination", b.Destination},
				{"Status", string(b.Status)},
				{"Interstate", yesNo(b.IsInterstate)},
				{"Declared Value", money(b.DeclaredValue)},
				{"Dispatch Date", PrintDate(b.DispatchDate)},
			},
		},
	}

	receiver := b.Consignee
	if b.Receiver != nil {
		receiver = *b.Receiver
	}
	parties := Section{
		Title: "Parties",
		Table: Table{
			Columns: []Column{{Header: "", Width: 16}, {Header: "Consignor", Width: 42}, {Header: "Consignee", Width: 42}},
			Missing: MissingInvoice,
			Rows: [][]string{
				{"Name", b.Consignor.Name, b.Consignee.Name},
				{"Mobile", b.Consignor.Mobile, b.Consignee.Mobile},
				{"Address", b.Consignor.Address, b.Consignee.Address},
				{"GSTIN", b.Consignor.GSTIN, b.Consignee.GSTIN},
			},
		},
	}
	if b.Status == models.StatusDelivered {
		parties.Notes = append(parties.Notes, "Delivered to: "+joinNonEmpty(", ", receiver.Name, receiver.Mobile))
	}

	articles := Section{
		Title: fmt.Sprintf("Articles (%d packages)", b.PackageCount()),
		Table: Table{
			Columns: []Column{
				{Header: "#", Width: 5},
				{Header: "Name", Width: 23},
				{Header: "Type", Width: 16},
				{Header: "Qty", Width: 8, Align: AlignRight},
				{Header: "Actual Wt", Width: 12, Align: AlignRight},
				{Header: "Charged Wt", Width: 12, Align: AlignRight},
				{Header: "Rate", Width: 10, Align: AlignRight},
				{Header: "Amount", Width: 14, Align: AlignRight},
			},
			Missing: MissingInvoice,
		},
	}
	for i, a := range b.Articles {
		charged := ""
		if a.ChargedWeight > 0 {
			charged = strconv.FormatFloat(a.ChargedWeight, 'f', -1, 64)
		}
		articles.Table.Rows = append(articles.Table.Rows, []string{
			strconv.Itoa(i + 1),
			a.Name,
			a.ArticleType,
			strconv.Itoa(a.Quantity),
			strconv.FormatFloat(a.ActualWeight, 'f', -1, 64),
			charged,
			money(a.WeightRate),
			money(a.WeightAmount),
		})
	}

	c := b.Charges
	rows := [][]string{
		{"Freight", money(c.Freight)},
		{"Pickup", money(c.Pickup)},
		{"Drop Cartage", money(c.DropCartage)},
		{"Loading", money(c.Loading)},
		{"LR Charge", money(c.LRCharge)},
		{"Article Amount", money(b.ArticleAmount)},
	}
	if b.IsInterstate {
		rows = append(rows, []string{"IGST (5%)", money(c.IGST)})
	} else {
		rows = append(rows, []string{"SGST (2.5%)", money(c.SGST)}, []string{"CGST (2.5%)", money(c.CGST)})
	}
	rows = append(rows, []string{"Fix Amount", money(b.FixAmount)}, []string{"Grand Total", money(c.GrandTotal)})

	charges := Section{
		Title: "Charges",
		Table: Table{
			Columns:  []Column{{Header: "Charge", Width: 60}, {Header: "Amount", Width: 40, Align: AlignRight}},
			Rows:     rows,
			Missing:  MissingInvoice,
			Emphasis: map[int]bool{len(rows) - 1: true},
		},
		Notes: []string{"Amount in words: " + AmountInWords(decimal.NewFromFloat(c.GrandTotal))},
	}
	if b.Remarks != "" {
		charges.Notes = append(charges.Notes, "Remarks: "+b.Remarks)
	}
	if brand.Footnote != "" {
		charges.Notes = append(charges.Notes, brand.Footnote)
	}

	return []Section{details, parties, articles, charges}
}
