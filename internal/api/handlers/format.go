package handlers

import (
	"embed"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

// formatValue renders a table cell with thousands separators and at most
// three decimals. Nil renders as an empty cell.
func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return printer.Sprint(number.Decimal(*v, number.MaxFractionDigits(3)))
}

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"value": formatValue,
		"count": formatCount,
		"ptr":   func(v float64) *float64 { return &v },
	}).ParseFS(templateFS, "templates/*.html")
}
