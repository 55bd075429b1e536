package tags

import (
	"fmt"
	"strconv"

	"go.senan.xyz/taglib"
)

// propertyKeys maps each field to its property names. The first name is
// written; the others are aliases removed alongside it.
var propertyKeys = map[Field][]string{
	Album:   {taglib.Album},
	Artist:  {taglib.Artist},
	Comment: {taglib.Comment, keyDescription},
	Genre:   {taglib.Genre},
	Title:   {taglib.Title},
	Track:   {taglib.TrackNumber},
	Year:    {taglib.Date, keyYear},
}

// propertyValue returns the value to write for field, "" meaning remove.
func propertyValue(field Field, v *Values) string {
	if field.Kind() == KindNumber {
		if n := v.Number(field); n != 0 {
			return strconv.Itoa(n)
		}
		return ""
	}
	return v.Text(field)
}

// writeTaglibTags writes the changed fields using TagLib property maps.
// Without the Clear option TagLib leaves every other property in place;
// a key with no values is removed.
func writeTaglibTags(path string, v *Values, changed map[Field]bool) error {
	tags := make(map[string][]string)

	for _, field := range changedFields(changed) {
		keys := propertyKeys[field]
		for _, alias := range keys[1:] {
			tags[alias] = nil
		}
		if value := propertyValue(field, v); value != "" {
			tags[keys[0]] = []string{value}
		} else {
			tags[keys[0]] = nil
		}
	}

	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}
