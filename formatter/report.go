package formatter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lrbooking/models"
	"lrbooking/reports"
)

const fileStampLayout = "20060102_150405"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ReportFileName returns <ReportTitle>_<YYYYMMDD_HHmmss>.pdf.
func ReportFileName(title string, at time.Time) string {
	name := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(title), "_"), "_")
	if name == "" {
		name = "Report"
	}
	return name + "_" + at.Format(fileStampLayout) + ".pdf"
}

func amountText(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var statColumns = []Column{
	{Header: "Type", Width: 12},
	{Header: "Count", Width: 8, Align: AlignRight},
	{Header: "Packages", Width: 10, Align: AlignRight},
	{Header: "Freight", Width: 11, Align: AlignRight},
	{Header: "Pickup", Width: 10, Align: AlignRight},
	{Header: "Drop Cartage", Width: 11, Align: AlignRight},
	{Header: "Loading", Width: 10, Align: AlignRight},
	{Header: "LR Charge", Width: 12, Align: AlignRight},
	{Header: "Amount", Width: 16, Align: AlignRight},
}

func statTable(s reports.Stats) Table {
	t := Table{Columns: statColumns, Missing: MissingReport}
	for _, r := range s.Rows() {
		t.Rows = append(t.Rows, []string{
			typeLabel(r.Label),
			strconv.Itoa(r.Count),
			strconv.Itoa(r.Packages),
			amountText(r.Freight),
			amountText(r.Pickup),
			amountText(r.DropCartage),
			amountText(r.Loading),
			amountText(r.LRCharge),
			amountText(r.Amount),
		})
	}
	t.Emphasis = map[int]bool{len(t.Rows) - 1: true}
	return t
}

func typeLabel(label string) string {
	switch models.BookingType(label) {
	case models.BookingToPay:
		return "To Pay"
	case models.BookingPaid:
		return "Paid"
	}
	return label
}

func period(f reports.Filter) string {
	from, to := "", ""
	if !f.From.IsZero() {
		from = f.From.Format("02-Jan-2006")
	}
	if !f.To.IsZero() {
		to = f.To.Format("02-Jan-2006")
	}
	var parts []string
	switch {
	case from != "" && to != "":
		parts = append(parts, from+" to "+to)
	case from != "":
		parts = append(parts, "From "+from)
	case to != "":
		parts = append(parts, "Up to "+to)
	default:
		parts = append(parts, "All dates")
	}
	if f.Destination != "" {
		parts = append(parts, "Destination: "+f.Destination)
	}
	if f.BookingType != "" {
		parts = append(parts, "Type: "+typeLabel(string(f.BookingType)))
	}
	return strings.Join(parts, " | ")
}

// BookingReport lays out booking, delivery and citywise details in that order.
func BookingReport(title string, rep reports.Report, brand Branding, generatedAt time.Time) Document {
	city := Table{
		Columns: []Column{
			{Header: "Destination", Width: 40},
			{Header: "Paid", Width: 20, Align: AlignRight},
			{Header: "To Pay", Width: 20, Align: AlignRight},
			{Header: "Total", Width: 20, Align: AlignRight},
		},
		Missing: MissingReport,
	}
	for _, r := range rep.Cities {
		city.Rows = append(city.Rows, []string{r.Destination, amountText(r.Paid), amountText(r.ToPay), amountText(r.Total)})
	}
	city.Emphasis = map[int]bool{len(city.Rows) - 1: true}

	return Document{
		Title:       title,
		Subtitle:    period(rep.Filter),
		Branding:    brand,
		GeneratedAt: generatedAt,
		Sections: []Section{
			{Title: "Booking Details", Table: statTable(rep.Booking)},
			{Title: "Delivery Details", Table: statTable(rep.Delivery)},
			{Title: "Citywise Details", Table: city},
		},
	}
}

// DispatchReport lists dispatched bookings one per row.
func DispatchReport(title string, f reports.Filter, bookings []*models.Booking, brand Branding, generatedAt time.Time) Document {
	t := Table{
		Columns: []Column{
			{Header: "LR No.", Width: 9},
			{Header: "Booked", Width: 11},
			{Header: "Dispatched", Width: 11},
			{Header: "Consignor", Width: 17},
			{Header: "Consignee", Width: 17},
			{Header: "Destination", Width: 12},
			{Header: "Pkgs", Width: 6, Align: AlignRight},
			{Header: "Type", Width: 7},
			{Header: "Amount", Width: 10, Align: AlignRight},
		},
		Missing: MissingReport,
	}
	total := decimal.Zero
	packages := 0
	for _, b := range bookings {
		t.Rows = append(t.Rows, []string{
			b.ID,
			PrintDate(b.BookingDate),
			PrintDate(b.DispatchDate),
			b.Consignor.Name,
			b.Consignee.Name,
			b.Destination,
			strconv.Itoa(b.PackageCount()),
			typeLabel(string(b.BookingType)),
			money(b.TotalAmount),
		})
		total = total.Add(decimal.NewFromFloat(b.TotalAmount))
		packages += b.PackageCount()
	}
	t.Rows = append(t.Rows, []string{reports.TotalLabel, "", "", "", "", "", strconv.Itoa(packages), "", amountText(total)})
	t.Emphasis = map[int]bool{len(t.Rows) - 1: true}

	return Document{
		Title:       title,
		Subtitle:    period(f),
		Branding:    brand,
		GeneratedAt: generatedAt,
		Sections:    []Section{{Title: "Dispatch Details", Table: t}},
	}
}
