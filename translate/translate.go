package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("varch: locale: %v", err)
	}

	tags := make([]language.Tag, 0, len(locales)+1)
	for _, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	tags = append(tags, language.AmericanEnglish)

	printer = message.NewPrinter(tags[0])
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
