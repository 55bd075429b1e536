package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"
)

// File is an open tag handle. Values are read once by Open; setters record
// the fields to write and Save persists them.
type File struct {
	path      string
	format    Format
	values    Values
	length    time.Duration
	lengthErr error
	changed   map[Field]bool
}

// Open reads the editable tags and the audio length of a music file.
// An error means the tag data could not be read at all.
func Open(path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	values, err := readValues(path, format)
	if err != nil {
		return nil, err
	}

	// Length is informational; a file whose stream cannot be measured is
	// still editable.
	length, lengthErr := ReadLength(path)

	return &File{
		path:      path,
		format:    format,
		values:    *values,
		length:    length,
		lengthErr: lengthErr,
		changed:   make(map[Field]bool),
	}, nil
}

// Format returns the container format.
func (f *File) Format() Format { return f.format }

// Length returns the audio duration, or 0 if it could not be determined.
func (f *File) Length() time.Duration { return f.length }

// LengthErr returns why Length is unknown, if it is.
func (f *File) LengthErr() error { return f.lengthErr }

// Text returns the current value of a text field.
func (f *File) Text(field Field) string { return f.values.Text(field) }

// Number returns the current value of a numeric field.
func (f *File) Number(field Field) int { return f.values.Number(field) }

// SetText sets a text field. An empty value removes the field on Save.
func (f *File) SetText(field Field, s string) {
	if field.Kind() != KindText {
		return
	}
	f.values.setText(field, s)
	f.changed[field] = true
}

// SetNumber sets a numeric field. Zero removes the field on Save.
func (f *File) SetNumber(field Field, n int) {
	if field.Kind() != KindNumber {
		return
	}
	f.values.setNumber(field, n)
	f.changed[field] = true
}

// Changed reports whether any field was set since Open or the last Save.
func (f *File) Changed() bool { return len(f.changed) > 0 }

// readValues reads the editable fields, trying dhowden/tag first and the
// format-specific readers when it fails or does not support the format.
func readValues(path string, format Format) (*Values, error) {
	switch format {
	case FormatWAV, FormatSpeex:
		// dhowden/tag doesn't handle RIFF INFO/ID3 chunks or Speex headers
		return readWithTaglib(path)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	m, err := tag.ReadFrom(fh)
	if err != nil {
		switch format {
		case FormatMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		default:
			return readWithTaglib(path)
		}
	}

	track, _ := m.Track()
	return &Values{
		Album:   m.Album(),
		Artist:  m.Artist(),
		Comment: m.Comment(),
		Genre:   m.Genre(),
		Title:   m.Title(),
		Track:   track,
		Year:    m.Year(),
	}, nil
}
