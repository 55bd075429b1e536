// Package render provides text layout helpers for the tag report.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Align selects which side of its column a label is pushed to.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Format wraps text into a block of lines no wider than width, indented by
// margin columns. The label is padded into the first margin-1 columns of
// the first line. Empty text yields the padded label alone.
//
// Words longer than width-margin are not split and overflow their line. A
// label wider than margin-1 pushes the first line right.
func Format(text, label string, align Align, margin, width int) string {
	label = PadLabel(label, align, margin-1)

	words := strings.Fields(text)
	if len(words) == 0 {
		return label
	}

	limit := width - margin
	indent := strings.Repeat(" ", margin)

	var lines []string
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if runewidth.StringWidth(candidate) < limit {
			current = candidate
			continue
		}
		lines = append(lines, indent+current)
		current = word
	}
	lines = append(lines, indent+current)

	// Splice the label over the leading padding of the first line, keeping
	// at least one space before the text.
	gap := max(margin-runewidth.StringWidth(label), 1)
	lines[0] = label + strings.Repeat(" ", gap) + lines[0][margin:]
	return strings.Join(lines, "\n")
}

// PadLabel pads s with spaces to the given display width, on the right for
// AlignLeft and on the left for AlignRight. Wider labels are returned as is.
func PadLabel(s string, align Align, width int) string {
	if align == AlignRight {
		return runewidth.FillLeft(s, width)
	}
	return Pad(s, width)
}

// Pad fills a string with spaces to reach the specified width.
// Uses runewidth for proper handling of wide characters.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Sanitize removes control characters (except tab) and invalid UTF-8 bytes
// so bad metadata cannot break terminal output. Non-breaking spaces become
// regular spaces.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			i += size
			continue
		}
		if r == '\u00a0' {
			b.WriteByte(' ')
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' { // ASCII control chars (except tab)
			return true
		}
		if b == 0x7f {
			return true
		}
		if b == 0xc2 && i+1 < len(s) { // U+00A0 or C1 controls
			if next := s[i+1]; next == 0xa0 || (next >= 0x80 && next <= 0x9f) {
				return true
			}
		}
	}
	return false
}
