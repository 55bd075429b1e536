// Package retag applies command-line tag changes to audio files: direct
// overrides, text filters and interactive edits, all routed through a
// single Resolver that decides what actually changes.
package retag

import (
	"sort"
	"strconv"
	"time"

	"github.com/llehouerou/tagedit/internal/tags"
)

// LengthName is the report name of the read-only audio length.
const LengthName = "length"

// TagFile is an open audio file whose tags can be read and changed.
type TagFile interface {
	Text(field tags.Field) string
	Number(field tags.Field) int
	SetText(field tags.Field, s string)
	SetNumber(field tags.Field, n int)
	Length() time.Duration
	LengthErr() error
	Format() tags.Format
	Save() error
}

// Entry is one line of the tag report.
type Entry struct {
	Name  string
	Value string
}

// Snapshot holds the current tag values of one file. It is updated in
// place as changes are applied.
type Snapshot struct {
	text   map[tags.Field]string
	number map[tags.Field]int
	length string
}

// NewSnapshot reads every field from f. The length is empty when it could
// not be determined.
func NewSnapshot(f TagFile) *Snapshot {
	s := &Snapshot{
		text:   make(map[tags.Field]string),
		number: make(map[tags.Field]int),
	}
	for _, field := range tags.Fields {
		if field.Kind() == tags.KindNumber {
			s.number[field] = f.Number(field)
		} else {
			s.text[field] = f.Text(field)
		}
	}
	if f.LengthErr() == nil {
		s.length = tags.FormatLength(f.Length())
	}
	return s
}

// Text returns the current value of a text field.
func (s *Snapshot) Text(field tags.Field) string { return s.text[field] }

// Number returns the current value of a numeric field.
func (s *Snapshot) Number(field tags.Field) int { return s.number[field] }

// Length returns the formatted audio length.
func (s *Snapshot) Length() string { return s.length }

// Value returns the display form of a field.
func (s *Snapshot) Value(field tags.Field) string {
	if field.Kind() == tags.KindNumber {
		return strconv.Itoa(s.number[field])
	}
	return s.text[field]
}

func (s *Snapshot) setText(field tags.Field, v string) { s.text[field] = v }

func (s *Snapshot) setNumber(field tags.Field, n int) { s.number[field] = n }

// Entries returns every field plus the length, sorted by name.
func (s *Snapshot) Entries() []Entry {
	entries := make([]Entry, 0, len(tags.Fields)+1)
	for _, field := range tags.Fields {
		entries = append(entries, Entry{Name: field.String(), Value: s.Value(field)})
	}
	entries = append(entries, Entry{Name: LengthName, Value: s.length})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
