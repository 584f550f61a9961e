// Package summary renders a settlement result as a shareable text message.
//
// Rendering is pure: the same result and options always produce the same
// text. Amounts are rounded to cents here and only here; the calculator keeps
// full precision.
package summary

import (
	"math"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/dividizky/internal/models"
)

// Title heads every message.
const Title = "Dividizky"

// shareBaseURL opens WhatsApp with a prefilled message.
const shareBaseURL = "https://api.whatsapp.com/send?"

// Options control locale-dependent parts of the message.
type Options struct {
	// Locale selects translations and number formatting.
	// Unsupported locales fall back to English.
	Locale language.Tag

	// Date is printed in the header. It is an input so that rendering the
	// same result twice gives the same text.
	Date time.Time
}

// Message renders result as a multi-line text suitable for sharing.
//
// Named balances and payments are listed one per line. Anonymous
// participants are not listed individually: their payments collapse into a
// single line with the headcount, the per-person share and the recipients.
func Message(result models.ExpenseResult, opts Options) string {
	tag := Locale(opts.Locale)
	p := message.NewPrinter(tag)
	capital := newCapitalizer(tag)

	var lines []string
	add := func(key message.Reference, args ...any) {
		lines = append(lines, p.Sprintf(key, args...))
	}

	lines = append(lines, "*"+Title+"*")
	add("Date: %s", opts.Date.Format(time.DateOnly))
	lines = append(lines, "")

	add("Order details")
	add("Total expense: %s", FormatAmount(tag, result.TotalExpense))
	add("Participants: %d", result.NumberOfPeople)
	add("Per person: %s", FormatAmount(tag, result.PerPersonExpense))
	lines = append(lines, "")

	add("Balances")
	for _, b := range result.Balances {
		if b.Anonymous {
			continue
		}
		lines = append(lines, capital.String(b.Name)+": "+formatSigned(tag, b.Balance))
	}
	lines = append(lines, "")

	add("Payments")
	if len(result.Payments) == 0 {
		add("Everyone is settled up")
	}
	for _, pay := range result.Payments {
		if pay.FromAnonymous {
			continue
		}
		add("%s pays %s %s", capital.String(pay.From), capital.String(pay.To), FormatAmount(tag, pay.Amount))
	}
	if anon := result.AnonymousPayments(); len(anon) > 0 {
		add("People who did not pay (%d): %s each to %s",
			result.AnonymousCount(),
			FormatAmount(tag, result.PerPersonExpense),
			strings.Join(recipients(anon, capital), ", "),
		)
	}

	return strings.Join(lines, "\n")
}

// ShareURL returns a WhatsApp link that opens a chat with msg prefilled.
func ShareURL(msg string) string {
	return shareBaseURL + url.Values{"text": {msg}}.Encode()
}

// FormatAmount rounds amount to cents (half away from zero) and prints it
// with the locale's digit grouping and a "$" prefix. Non-finite amounts,
// which only come out of degenerate input, print as "n/a".
func FormatAmount(tag language.Tag, amount float64) string {
	d, ok := roundCents(amount)
	if !ok {
		return "n/a"
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	f, _ := d.Float64()

	return sign + "$" + message.NewPrinter(Locale(tag)).Sprintf("%.2f", f)
}

// formatSigned prints a balance with an explicit "+" for creditors.
func formatSigned(tag language.Tag, amount float64) string {
	s := FormatAmount(tag, amount)
	if d, ok := roundCents(amount); ok && d.IsPositive() {
		return "+" + s
	}
	return s
}

func roundCents(amount float64) (decimal.Decimal, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(amount).Round(2), true
}

// recipients lists the distinct creditors of payments, in payment order.
func recipients(payments []models.Payment, capital capitalizer) []string {
	seen := make(map[string]bool, len(payments))
	var out []string
	for _, p := range payments {
		if seen[p.To] {
			continue
		}
		seen[p.To] = true
		out = append(out, capital.String(p.To))
	}
	return out
}

// capitalizer upper-cases the first letter of a name and leaves the rest as
// typed, so "mary ann" prints as "Mary ann" and "McDonald" is untouched.
type capitalizer struct {
	upper cases.Caser
}

func newCapitalizer(tag language.Tag) capitalizer {
	return capitalizer{upper: cases.Upper(tag)}
}

func (c capitalizer) String(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return c.upper.String(s[:size]) + s[size:]
}
