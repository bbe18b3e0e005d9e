// Package formatter lays invoices and reports out into pages and renders
// them as printable HTML.
package formatter

import (
	"strings"
	"time"

	"lrbooking/models"
)

// Placeholders for empty cells.
const (
	MissingInvoice = "-"
	MissingReport  = "N/A"
)

type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

type Column struct {
	Header string
	// Width is a share of the table width in percent.
	Width float64
	Align Align
}

// Table is a fixed column set and its rows. Short rows are padded and empty
// cells print Missing.
type Table struct {
	Columns    []Column
	Rows       [][]string
	HideHeader bool
	Missing    string
	// Emphasis marks rows printed bold, such as totals.
	Emphasis map[int]bool
}

// Cell returns the printable value of column i in row r. Empty cells of
// emphasised rows stay blank.
func (t Table) Cell(r int, row []string, i int) string {
	if i < len(row) && strings.TrimSpace(row[i]) != "" {
		return row[i]
	}
	if t.Emphasis[r] {
		return ""
	}
	if t.Missing == "" {
		return MissingReport
	}
	return t.Missing
}

// Section is a titled table followed by free text lines.
type Section struct {
	Title string
	Table Table
	Notes []string
	// NewPage starts the section on a fresh page.
	NewPage bool
}

// Branding is the company identity printed in every page header.
type Branding struct {
	CompanyName string
	Address     string
	Contacts    string
	GSTIN       string
	Footnote    string
	// Logo is a data URI; empty hides the logo.
	Logo string
}

// BrandingFrom copies the printable fields of the company settings.
func BrandingFrom(s *models.CompanySettings, logo string) Branding {
	if s == nil {
		return Branding{Logo: logo}
	}
	addr := joinNonEmpty(", ", s.Address, s.City, s.State, s.Pincode)
	return Branding{
		CompanyName: s.CompanyName,
		Address:     addr,
		Contacts:    s.Contacts(),
		GSTIN:       s.GSTIN,
		Footnote:    s.Footnote,
		Logo:        logo,
	}
}

type Document struct {
	Title       string
	Subtitle    string
	Branding    Branding
	Sections    []Section
	GeneratedAt time.Time
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
