package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2 reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readMP3WithID3v2(path string) (*Values, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	return &Values{
		Album:   id3tag.Album(),
		Artist:  id3tag.Artist(),
		Comment: getID3Comment(id3tag),
		Genre:   id3tag.Genre(),
		Title:   id3tag.Title(),
		Track:   leadingInt(getID3TextFrame(id3tag, id3tag.CommonID(frameTrack))),
		Year:    leadingInt(id3tag.Year()),
	}, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// getID3Comment returns the first comment frame without a description.
// Described comments (iTunNORM and the like) belong to other tools.
func getID3Comment(id3tag *id3v2.Tag) string {
	for _, frame := range id3tag.GetFrames(id3tag.CommonID(frameComment)) {
		if cf, ok := frame.(id3v2.CommentFrame); ok && cf.Description == "" {
			return cf.Text
		}
	}
	return ""
}
