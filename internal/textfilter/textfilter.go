// Package textfilter provides the named text filters that can be applied to
// tag values: whitespace and punctuation cleanup, underscore replacement and
// HTML removal.
package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Func transforms a tag value.
type Func func(string) string

// Filter is a named text filter.
type Filter struct {
	Name  string
	Apply Func
}

// Filter names accepted on the command line.
const (
	NameClean      = "clean"
	NameHTML       = "HTML"
	NameUnderscore = "underscore"
)

var registry = map[string]Func{
	NameClean:      Clean,
	NameHTML:       RemoveHTML,
	NameUnderscore: ReplaceUnderscores,
}

var ordered = func() []Filter {
	filters := make([]Filter, 0, len(registry))
	for name, fn := range registry {
		filters = append(filters, Filter{Name: name, Apply: fn})
	}
	sort.Slice(filters, func(i, j int) bool {
		return strings.ToLower(filters[i].Name) < strings.ToLower(filters[j].Name)
	})
	return filters
}()

// Registry returns every filter in case-insensitive name order
// (clean, HTML, underscore). The returned slice must not be modified.
func Registry() []Filter {
	return ordered
}

// Lookup finds a filter by name, ignoring case.
func Lookup(name string) (Filter, bool) {
	for _, f := range ordered {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Filter{}, false
}

// punctuation maps typographic characters and their numeric character
// references to ASCII.
var punctuation = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
	"\u2026", "...",
	"&#8217;", "'",
	"&#8230;", "...",
	"&#8220;", `"`,
	"&#8221;", `"`,
)

var (
	reLineBreaks = regexp.MustCompile(`[\r\n]+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// Clean trims the value, drops line breaks, converts typographic punctuation
// to ASCII, blanks remaining non-printable characters and collapses spaces.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = reLineBreaks.ReplaceAllString(s, "")
	// Must run before the non-printable sweep below.
	s = punctuation.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || (unicode.IsGraphic(r) && !unicode.IsSpace(r)) {
			return r
		}
		return ' '
	}, s)
	return reMultiSpace.ReplaceAllString(s, " ")
}

// ReplaceUnderscores replaces every underscore with a space.
func ReplaceUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// RemoveHTML strips markup and returns the text content of s.
// Script and style elements are dropped along with their content.
func RemoveHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
