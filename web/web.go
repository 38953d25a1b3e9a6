// Package web carries the page templates inside the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates
var files embed.FS

// Currency is the symbol printed before every price.
const Currency = "R"

// Engine returns the template engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", func(d decimal.Decimal) string { return Currency + " " + d.StringFixed(2) })
	engine.AddFunc("day", func(t time.Time) string { return t.Format("2 Jan 2006") })
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	return engine
}
