package formatter

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"strconv"
)

//go:embed assets/document.html assets/default_logo.svg
var assets embed.FS

var documentTemplate = template.Must(template.New("document.html").Funcs(template.FuncMap{
	"mm":      func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) + "mm" },
	"add":     func(a, b int) int { return a + b },
	"isTitle": func(b Block) bool { return b.Kind == BlockTitle },
	"isNote":  func(b Block) bool { return b.Kind == BlockNote },
}).ParseFS(assets, "assets/document.html"))

// DefaultLogo is the embedded fallback logo as a data URI.
func DefaultLogo() string {
	svg, _ := assets.ReadFile("assets/default_logo.svg")
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)
}

type view struct {
	Doc       Document
	Geometry  Geometry
	Pages     []Page
	TitleTop  float64
	Logo      template.URL
	Generated string
}

// RenderHTML lays doc out on g and returns the printable HTML.
func RenderHTML(doc Document, g Geometry) (string, error) {
	v := view{
		Doc:       doc,
		Geometry:  g,
		Pages:     Layout(doc, g),
		TitleTop:  g.MarginTop + g.HeaderHeight,
		Logo:      template.URL(doc.Branding.Logo),
		Generated: doc.GeneratedAt.Format("02-Jan-2006 15:04"),
	}
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
