// Command dividizky splits a shared expense from the command line.
//
//	dividizky -p Alice=100 -p Bob=50 -additional 1 -locale es
//
// It prints the shareable message, or the full result with -json. Invalid
// input exits with status 2.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/dividizky/internal/calculator"
	"github.com/mmynk/dividizky/internal/models"
	"github.com/mmynk/dividizky/internal/summary"
	"github.com/mmynk/dividizky/internal/validation"
	"github.com/mmynk/dividizky/pkg/api"
)

// personList collects repeated -p Name=amount flags.
type personList []models.Participant

func (l *personList) String() string {
	parts := make([]string, len(*l))
	for i, p := range *l {
		parts[i] = p.Name + "=" + strconv.FormatFloat(p.Expense, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *personList) Set(value string) error {
	i := strings.LastIndex(value, "=")
	if i < 0 {
		return fmt.Errorf("%q: want Name=amount", value)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(value[i+1:]), 64)
	if err != nil {
		return fmt.Errorf("%q: invalid amount: %w", value, err)
	}
	*l = append(*l, models.Participant{Name: value[:i], Expense: amount})
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dividizky", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var people personList
	fs.Var(&people, "p", "person who paid, as Name=amount (repeatable)")
	additional := fs.Int("additional", 0, "people who share the expense but paid nothing")
	locale := fs.String("locale", envLocale(), "message locale (en or es)")
	date := fs.String("date", "", "date printed on the message, YYYY-MM-DD (default today)")
	asJSON := fs.Bool("json", false, "print the result as JSON instead of the message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := validation.Validate(people, *additional); err != nil {
		fmt.Fprintln(stderr, "dividizky:", err)
		return 2
	}

	when := time.Now()
	if *date != "" {
		d, err := time.Parse(time.DateOnly, *date)
		if err != nil {
			fmt.Fprintf(stderr, "dividizky: invalid -date %q: want YYYY-MM-DD\n", *date)
			return 2
		}
		when = d
	}

	result := calculator.CalculateExpenses(people, *additional)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(api.FromResult(result)); err != nil {
			fmt.Fprintln(stderr, "dividizky:", err)
			return 1
		}
		return 0
	}

	fmt.Fprintln(stdout, summary.Message(result, summary.Options{
		Locale: summary.ParseLocale(*locale),
		Date:   when,
	}))
	return 0
}

// envLocale turns a POSIX locale such as "es_AR.UTF-8" from LC_ALL or LANG
// into a BCP 47 tag.
func envLocale() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en"
}
