package tags

import (
	"go.senan.xyz/taglib"
)

// Keys not covered by taglib constants.
const (
	keyYear        = "YEAR"
	keyDescription = "DESCRIPTION"
)

// readWithTaglib reads metadata using TagLib. It covers every supported
// container and is the fallback when dhowden/tag fails.
func readWithTaglib(path string) (*Values, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	return &Values{
		Album:   tags.get(taglib.Album),
		Artist:  tags.get(taglib.Artist),
		Comment: tags.get(taglib.Comment, keyDescription),
		Genre:   tags.get(taglib.Genre),
		Title:   tags.get(taglib.Title),
		Track:   tags.getInt(taglib.TrackNumber),
		Year:    tags.getInt(taglib.Date, keyYear),
	}, nil
}
