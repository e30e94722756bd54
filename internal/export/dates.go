package export

import (
	"time"

	"golang.org/x/text/language"
)

// Numeric short-date layouts per locale. The first entry is the fallback.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Portuguese, "02/01/2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, d := range dateLayouts {
		tags[i] = d.tag
	}
	return language.NewMatcher(tags)
}()

// ParseLocale parses a BCP 47 tag; an empty string means en-US.
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.AmericanEnglish, nil
	}
	return language.Parse(s)
}

// LocaleDate formats t as a numeric short date for the closest supported
// locale.
func LocaleDate(t time.Time, tag language.Tag) string {
	_, i, conf := dateMatcher.Match(tag)
	if conf == language.No || i < 0 || i >= len(dateLayouts) {
		i = 0
	}
	return t.Format(dateLayouts[i].layout)
}
