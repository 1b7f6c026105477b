// Package i18n holds the few user-visible strings the proxies substitute
// into redacted records.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	KeyPrivate = "Private"
	KeyLiving  = "Living"
)

var translations = map[string]map[string]string{
	"de": {KeyPrivate: "Privat", KeyLiving: "Lebend"},
	"fr": {KeyPrivate: "Privé", KeyLiving: "Vivant"},
	"nl": {KeyPrivate: "Privé", KeyLiving: "Levend"},
	"sv": {KeyPrivate: "Privat", KeyLiving: "Levande"},
	"es": {KeyPrivate: "Privado", KeyLiving: "Vivo"},
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	_ = b.SetString(language.English, KeyPrivate, KeyPrivate)
	_ = b.SetString(language.English, KeyLiving, KeyLiving)
	for lang, msgs := range translations {
		tag := language.MustParse(lang)
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Printer returns a printer for lang. Unparseable tags fall back to English.
func Printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(messages))
}

// Private is the surname placed on redacted names.
func Private(lang string) string {
	return Printer(lang).Sprintf(KeyPrivate)
}

// Living is the given name placed on restricted living people.
func Living(lang string) string {
	return Printer(lang).Sprintf(KeyLiving)
}
