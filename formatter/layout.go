package formatter

import (
	"strings"
	"unicode/utf8"
)

// Geometry is the page model in millimetres.
type Geometry struct {
	PageHeight     float64
	MarginTop      float64
	MarginBottom   float64
	HeaderHeight   float64
	TitleHeight    float64
	FooterHeight   float64
	SectionTitle   float64
	HeaderRow      float64
	Row            float64
	Note           float64
	SectionSpacing float64
	// Cells wrap: a row grows by LineHeight per extra line. A zero
	// CharWidth keeps every row at Row.
	ContentWidth float64
	CharWidth    float64
	CellPadding  float64
	LineHeight   float64
}

// A4 is the geometry used for every generated PDF.
var A4 = Geometry{
	PageHeight:     297,
	MarginTop:      10,
	MarginBottom:   10,
	HeaderHeight:   26,
	TitleHeight:    12,
	FooterHeight:   8,
	SectionTitle:   7,
	HeaderRow:      7,
	Row:            6.5,
	Note:           6,
	SectionSpacing: 6,
	ContentWidth:   190,
	CharWidth:      1.8,
	CellPadding:    3,
	LineHeight:     3.8,
}

func (g Geometry) contentTop() float64 {
	return g.MarginTop + g.HeaderHeight + g.TitleHeight
}

func (g Geometry) contentBottom() float64 {
	return g.PageHeight - g.MarginBottom - g.FooterHeight
}

// CellPaddingY centres one line of text in a Row.
func (g Geometry) CellPaddingY() float64 {
	if g.LineHeight <= 0 || g.LineHeight > g.Row {
		return 0
	}
	return (g.Row - g.LineHeight) / 2
}

// rowHeight is the height of row r once its widest cell wraps.
func (g Geometry) rowHeight(t *Table, r int, row []string) float64 {
	if g.CharWidth <= 0 || g.ContentWidth <= 0 {
		return g.Row
	}
	lines := 1
	for i, c := range t.Columns {
		width := g.ContentWidth*c.Width/100 - g.CellPadding
		if n := wrappedLines(t.Cell(r, row, i), int(width/g.CharWidth)); n > lines {
			lines = n
		}
	}
	return g.Row + float64(lines-1)*g.LineHeight
}

// wrappedLines counts greedy word-wrapped lines. Words longer than a line
// break anywhere.
func wrappedLines(text string, perLine int) int {
	if perLine < 1 {
		perLine = 1
	}
	lines, used := 1, 0
	for _, w := range strings.Fields(text) {
		n := utf8.RuneCountInString(w)
		switch {
		case used == 0:
		case used+1+n <= perLine:
			used += 1 + n
			continue
		default:
			lines++
		}
		lines += (n - 1) / perLine
		used = (n-1)%perLine + 1
	}
	return lines
}

type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockTable
	BlockNote
)

// Block is one positioned element. Top is the offset from the page top.
type Block struct {
	Kind   BlockKind
	Top    float64
	Height float64
	Text   string
	// Table blocks carry the fragment of rows placed on this page.
	Table      *Table
	Rows       [][]string
	RowHeights []float64
	FirstRow   int
	ShowHeader bool
	Continued  bool
}

// End is the offset just below the block.
func (b Block) End() float64 {
	return b.Top + b.Height
}

type Page struct {
	Number int
	Blocks []Block
}

// Layout places every section top to bottom. Each section starts at the
// previous section's end plus SectionSpacing. Table rows that do not fit
// move to a new page where the table header is repeated.
func Layout(doc Document, g Geometry) []Page {
	l := &layouter{g: g}
	l.newPage()

	for si := range doc.Sections {
		s := &doc.Sections[si]
		if si > 0 {
			l.y += g.SectionSpacing
		}
		if s.NewPage && !l.empty() {
			l.newPage()
		}
		l.section(s)
	}

	for i := range l.pages {
		l.pages[i].Number = i + 1
	}
	return l.pages
}

type layouter struct {
	g     Geometry
	pages []Page
	y     float64
}

func (l *layouter) page() *Page {
	return &l.pages[len(l.pages)-1]
}

func (l *layouter) empty() bool {
	return len(l.page().Blocks) == 0
}

func (l *layouter) newPage() {
	l.pages = append(l.pages, Page{})
	l.y = l.g.contentTop()
}

func (l *layouter) fits(h float64) bool {
	return l.y+h <= l.g.contentBottom()
}

func (l *layouter) place(b Block) {
	b.Top = l.y
	l.page().Blocks = append(l.page().Blocks, b)
	l.y = b.End()
}

func (l *layouter) headerHeight(t *Table) float64 {
	if t.HideHeader {
		return 0
	}
	return l.g.HeaderRow
}

func (l *layouter) section(s *Section) {
	t := &s.Table
	// Keep the title with the header and first row.
	lead := l.headerHeight(t)
	if len(t.Rows) > 0 {
		lead += l.g.rowHeight(t, 0, t.Rows[0])
	}
	if s.Title != "" {
		lead += l.g.SectionTitle
	}
	if !l.fits(lead) && !l.empty() {
		l.newPage()
	}
	if s.Title != "" {
		l.place(Block{Kind: BlockTitle, Height: l.g.SectionTitle, Text: s.Title})
	}

	if len(t.Columns) > 0 {
		l.table(t)
	}

	for _, n := range s.Notes {
		if !l.fits(l.g.Note) {
			l.newPage()
		}
		l.place(Block{Kind: BlockNote, Height: l.g.Note, Text: n})
	}
}

func (l *layouter) table(t *Table) {
	heights := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		heights[i] = l.g.rowHeight(t, i, row)
	}

	start, continued := 0, false
	for {
		hh := l.headerHeight(t)
		free := l.g.contentBottom() - l.y - hh
		n, used := 0, 0.0
		for start+n < len(t.Rows) && used+heights[start+n] <= free+1e-9 {
			used += heights[start+n]
			n++
		}
		if n == 0 && start < len(t.Rows) {
			if l.empty() {
				// A page that cannot hold one row still takes one.
				n, used = 1, heights[start]
			} else {
				l.newPage()
				continue
			}
		}

		l.place(Block{
			Kind:       BlockTable,
			Height:     hh + used,
			Table:      t,
			Rows:       t.Rows[start : start+n],
			RowHeights: heights[start : start+n],
			FirstRow:   start,
			ShowHeader: !t.HideHeader,
			Continued:  continued,
		})
		start += n
		if start >= len(t.Rows) {
			return
		}
		l.newPage()
		continued = true
	}
}
