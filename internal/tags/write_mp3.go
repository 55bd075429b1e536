package tags

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// ID3v2 common frame descriptions, resolved per tag version with CommonID.
const (
	frameAlbum   = "Album/Movie/Show title"
	frameArtist  = "Artist"
	frameComment = "Comments"
	frameGenre   = "Content type"
	frameTitle   = "Title"
	frameTrack   = "Track number/Position in set"
	frameYear    = "Year"
)

var id3Frames = map[Field]string{
	Album:   frameAlbum,
	Artist:  frameArtist,
	Comment: frameComment,
	Genre:   frameGenre,
	Title:   frameTitle,
	Track:   frameTrack,
	Year:    frameYear,
}

// writeMP3Tags writes the changed fields to the ID3v2 tag of an MP3 file.
func writeMP3Tags(path string, v *Values, changed map[Field]bool) error {
	fields := changedFields(changed)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		// ID3v2.2 or older tags - strip them and rewrite every field so the
		// values read from the old tag survive
		if stripErr := stripID3v2Tag(path); stripErr != nil {
			return fmt.Errorf("strip unsupported ID3v2.2 tag: %w", stripErr)
		}
		tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
		fields = Fields
	}
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer tag.Close()

	if tag.Version() == 4 {
		tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	} else {
		tag.SetDefaultEncoding(id3v2.EncodingUTF16)
	}

	for _, field := range fields {
		setID3Field(tag, field, v)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

// setID3Field replaces the frame backing field, or removes it for an empty value.
func setID3Field(tag *id3v2.Tag, field Field, v *Values) {
	id := tag.CommonID(id3Frames[field])

	if field == Comment {
		// Only the description-less comment is ours; keep the others
		var kept []id3v2.CommentFrame
		for _, f := range tag.GetFrames(id) {
			if cf, ok := f.(id3v2.CommentFrame); ok && cf.Description != "" {
				kept = append(kept, cf)
			}
		}
		tag.DeleteFrames(id)
		for _, cf := range kept {
			tag.AddCommentFrame(cf)
		}
		if v.Comment != "" {
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding: tag.DefaultEncoding(),
				Language: "eng",
				Text:     v.Comment,
			})
		}
		return
	}

	var text string
	if field.Kind() == KindNumber {
		if n := v.Number(field); n != 0 {
			text = strconv.Itoa(n)
		}
		// Keep an existing "track/total" total
		if field == Track && text != "" {
			if old := getID3TextFrame(tag, id); strings.Contains(old, "/") {
				text += old[strings.Index(old, "/"):]
			}
		}
	} else {
		text = v.Text(field)
	}

	if text == "" {
		tag.DeleteFrames(id)
		return
	}
	tag.AddTextFrame(id, tag.DefaultEncoding(), text)
}

// stripID3v2Tag removes ID3v2 tags from an MP3 file.
// This is used to handle ID3v2.2 tags which the id3v2 library doesn't support.
func stripID3v2Tag(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	// Check for ID3v2 header (must have at least 10 bytes for header)
	if len(data) < 10 || string(data[:3]) != id3Magic {
		return nil // No ID3v2 tag to strip
	}

	// Parse tag size from bytes 6-9 (synchsafe integer: each byte uses only 7 bits)
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	tagSize := size + 10 // Add 10-byte header

	// Check for footer flag (bit 4 of flags byte) - ID3v2.4 only
	if data[5]&0x10 != 0 {
		tagSize += 10
	}

	if tagSize >= len(data) {
		return fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", tagSize, len(data))
	}

	// Preserve original file permissions
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	// Write audio data without the ID3v2 tag
	if err := os.WriteFile(path, data[tagSize:], info.Mode()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
