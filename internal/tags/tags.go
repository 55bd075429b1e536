// Package tags provides the tag reading and writing capability used by tagedit.
// It opens MP3, FLAC, Ogg (Vorbis, Opus, Speex), WAV and M4A files, exposes
// the editable fields through typed accessors, and saves changed fields back
// without touching the rest of the tag container.
package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtOPUS = ".opus"
	ExtSPX  = ".spx"
	ExtWAV  = ".wav"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// ErrUnsupportedFormat is returned for files whose extension is not handled.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies the container a file is stored in.
type Format string

const (
	FormatMP3   Format = "MP3"
	FormatFLAC  Format = "FLAC"
	FormatOGG   Format = "OGG"
	FormatOpus  Format = "OPUS"
	FormatSpeex Format = "SPEEX"
	FormatWAV   Format = "WAV"
	FormatM4A   Format = "M4A"
)

// FormatOf returns the format for path based on its extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		return FormatMP3, true
	case ExtFLAC:
		return FormatFLAC, true
	case ExtOGG, ExtOGA:
		return FormatOGG, true
	case ExtOPUS:
		return FormatOpus, true
	case ExtSPX:
		return FormatSpeex, true
	case ExtWAV:
		return FormatWAV, true
	case ExtM4A, ExtMP4:
		return FormatM4A, true
	}
	return "", false
}

// Kind is the value kind of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

// Field is one of the writable tag fields.
type Field int

const (
	Album Field = iota
	Artist
	Comment
	Genre
	Title
	Track
	Year
)

// Fields lists every writable field, sorted by name.
var Fields = []Field{Album, Artist, Comment, Genre, Title, Track, Year}

var fieldNames = [...]string{
	Album:   "album",
	Artist:  "artist",
	Comment: "comment",
	Genre:   "genre",
	Title:   "title",
	Track:   "track",
	Year:    "year",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Kind reports whether the field holds text or a number.
func (f Field) Kind() Kind {
	if f == Track || f == Year {
		return KindNumber
	}
	return KindText
}

// Editable reports whether the field may be changed in an external editor.
func (f Field) Editable() bool {
	return f.Kind() == KindText
}

// ParseField looks up a field by its exact lower-case name.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if fieldNames[f] == name {
			return f, true
		}
	}
	return 0, false
}

// Values holds the writable fields of a file.
type Values struct {
	Album   string
	Artist  string
	Comment string
	Genre   string
	Title   string
	Track   int
	Year    int
}

// Text returns the value of a text field. Numeric fields return "".
func (v *Values) Text(f Field) string {
	switch f {
	case Album:
		return v.Album
	case Artist:
		return v.Artist
	case Comment:
		return v.Comment
	case Genre:
		return v.Genre
	case Title:
		return v.Title
	}
	return ""
}

// Number returns the value of a numeric field. Text fields return 0.
func (v *Values) Number(f Field) int {
	switch f {
	case Track:
		return v.Track
	case Year:
		return v.Year
	}
	return 0
}

func (v *Values) setText(f Field, s string) {
	switch f {
	case Album:
		v.Album = s
	case Artist:
		v.Artist = s
	case Comment:
		v.Comment = s
	case Genre:
		v.Genre = s
	case Title:
		v.Title = s
	}
}

func (v *Values) setNumber(f Field, n int) {
	switch f {
	case Track:
		v.Track = n
	case Year:
		v.Year = n
	}
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the leading number of the first value for any of the keys.
// "3/12" yields 3 and "2023-06-15" yields 2023.
func (t taglibTags) getInt(keys ...string) int {
	return leadingInt(t.get(keys...))
}

// leadingInt parses the run of digits at the start of s.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
