package summary

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported lists the locales messages are translated into.
// The first entry is the fallback.
var Supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(Supported)

// Locale returns the supported locale closest to tag.
func Locale(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return Supported[idx]
}

// ParseLocale parses a BCP 47 string such as "es-AR" or an Accept-Language
// header and returns the closest supported locale.
func ParseLocale(s string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// spanish maps English keys to their Spanish text. English keys double as
// format strings, so English needs no catalog.
var spanish = map[string]string{
	"Date: %s":                                   "Fecha: %s",
	"Order details":                              "Detalle del gasto",
	"Total expense: %s":                          "Gasto total: %s",
	"Participants: %d":                           "Participantes: %d",
	"Per person: %s":                             "Por persona: %s",
	"Balances":                                   "Saldos",
	"Payments":                                   "Pagos",
	"Everyone is settled up":                     "No hay pagos pendientes",
	"%s pays %s %s":                              "%s le paga a %s %s",
	"People who did not pay (%d): %s each to %s": "Personas que no pagaron (%d): %s cada una a %s",
}

func init() {
	if err := registerTranslations(message.SetString); err != nil {
		panic(err)
	}
}

// registerTranslations adds the Spanish catalog through set.
func registerTranslations(set func(tag language.Tag, key, msg string) error) error {
	for key, msg := range spanish {
		if err := set(language.Spanish, key, msg); err != nil {
			return fmt.Errorf("summary: translate %q: %w", key, err)
		}
	}
	return nil
}
