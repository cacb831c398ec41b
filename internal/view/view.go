// Package view renders the HTML pages of the booking service from
// embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iliyamo/catering-rentals/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// CurrencySymbol prefixes every amount.  The data store has no currency
// column; all amounts are in this one currency.
const CurrencySymbol = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Money formats an amount with digit grouping.  Whole amounts have no
// decimals ("₹1,500"); others have two ("₹12.50").
func Money(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return CurrencySymbol + printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return CurrencySymbol + printer.Sprintf("%.2f", f)
}

// Date formats a calendar date as "Jan 10, 2024".
func Date(t time.Time) string { return t.Format("Jan 2, 2006") }

// DateInput formats a date for <input type="date">.
func DateInput(t time.Time) string { return t.Format("2006-01-02") }

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Date(*t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusActive:
		return "Active"
	case model.StatusReturned:
		return "Returned"
	case model.StatusOverdue:
		return "Overdue"
	}
	return string(s)
}

func seconds(d time.Duration) int { return int(math.Ceil(d.Seconds())) }

var funcs = template.FuncMap{
	"money":       Money,
	"date":        Date,
	"dateInput":   DateInput,
	"optDate":     optDate,
	"deref":       deref,
	"statusLabel": statusLabel,
	"seconds":     seconds,
	"ms":          func(d time.Duration) int64 { return d.Milliseconds() },
	"itemName":    func(ri model.RentalItem) string { return ri.NameOr("Unknown Item") },
}

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// Page names.
const (
	PageIndex  = "index.html"
	PageEdit   = "edit.html"
	PageNotice = "notice.html"
)

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, p := range []string{PageIndex, PageEdit, PageNotice} {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes the layout of page name with data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
