// renderer/renderer.go
package renderer

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/Rakhulsr/go-ecommerce-admin/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/calc"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/format"
	"github.com/Rakhulsr/go-ecommerce-admin/app/widgets"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

// New builds the HTML renderer over templates in fsys. Templates are
// reloaded on every request when development is true.
func New(fsys embed.FS, development bool) *render.Render {
	return render.New(render.Options{
		Directory:     "templates",
		FileSystem:    &render.EmbedFileSystem{FS: fsys},
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: development,
		Funcs:         []template.FuncMap{Funcs()},
	})
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"until": func(count int) []int {
			items := make([]int, count)
			for i := 0; i < count; i++ {
				items[i] = i
			}
			return items
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"min": func(a, b int) int {
			if a < b {
				return a
			}
			return b
		},
		"max": func(a, b int) int {
			if a > b {
				return a
			}
			return b
		},
		"currency":    format.Currency,
		"date":        format.Date,
		"dateTime":    format.DateTime,
		"statusClass": format.StatusClass,
		"activeClass": format.ActiveClass,
		"stockClass":  format.StockClass,
		"truncate":    format.Truncate,
		"humanize":    format.Humanize,
		"pctChange": func(current, previous decimal.Decimal) string {
			pct := calc.PercentageChange(current.InexactFloat64(), previous.InexactFloat64())
			return decimal.NewFromFloat(pct).StringFixed(1) + "%"
		},
		"imageOr": func(url string) string {
			if url == "" {
				return widgets.PlaceholderImage
			}
			return url
		},
		"placeholder": func() string { return widgets.PlaceholderImage },
		"slug":        helpers.GenerateSlug,
		"withQuery":   WithQuery,
	}
}

// WithQuery appends the encoded query plus key/value pairs to base. Links
// are built here because html/template escapes anything placed after "?".
func WithQuery(base, query string, pairs ...string) string {
	v, err := url.ParseQuery(query)
	if err != nil {
		v = url.Values{}
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}
