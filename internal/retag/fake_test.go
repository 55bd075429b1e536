package retag

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/tagedit/internal/tags"
)

// fakeFile is an in-memory TagFile.
type fakeFile struct {
	text      map[tags.Field]string
	number    map[tags.Field]int
	length    time.Duration
	lengthErr error
	saveErr   error
	saves     int
	dirty     bool
	onSave    func()
}

func newFakeFile() *fakeFile {
	return &fakeFile{
		text: map[tags.Field]string{
			tags.Album:   "Old Album",
			tags.Artist:  "Old Artist",
			tags.Comment: "",
			tags.Genre:   "Rock",
			tags.Title:   "Old",
		},
		number: map[tags.Field]int{
			tags.Track: 3,
			tags.Year:  1999,
		},
		length: 3*time.Minute + 5*time.Second,
	}
}

func (f *fakeFile) Text(field tags.Field) string { return f.text[field] }
func (f *fakeFile) Number(field tags.Field) int { return f.number[field] }

func (f *fakeFile) SetText(field tags.Field, s string) {
	f.text[field] = s
	f.dirty = true
}

func (f *fakeFile) SetNumber(field tags.Field, n int) {
	f.number[field] = n
	f.dirty = true
}

func (f *fakeFile) Length() time.Duration { return f.length }
func (f *fakeFile) LengthErr() error { return f.lengthErr }
func (f *fakeFile) Format() tags.Format { return tags.FormatMP3 }

func (f *fakeFile) Save() error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.dirty = false
	if f.onSave != nil {
		f.onSave()
	}
	return nil
}

// fakeEditor returns a fixed value or error and records what it was given.
type fakeEditor struct {
	value   string
	err     error
	calls   int
	field   string
	current string
}

func (e *fakeEditor) Edit(_ context.Context, field, current string) (string, error) {
	e.calls++
	e.field = field
	e.current = current
	return e.value, e.err
}

var errFake = errors.New("fake failure")
