package tags

import (
	"fmt"
	"os"
)

// Save writes the changed fields back to the file in place.
// Fields that were not set are left untouched, as are all other tags.
func (f *File) Save() error {
	if !f.Changed() {
		return nil
	}

	if _, err := os.Stat(f.path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	var err error
	switch f.format {
	case FormatMP3:
		err = writeMP3Tags(f.path, &f.values, f.changed)
	case FormatFLAC:
		err = writeFLACTags(f.path, &f.values, f.changed)
	case FormatOGG, FormatOpus, FormatSpeex, FormatWAV, FormatM4A:
		err = writeTaglibTags(f.path, &f.values, f.changed)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.format)
	}
	if err != nil {
		return err
	}

	f.changed = make(map[Field]bool)
	return nil
}

// changedFields returns the changed fields in name order.
func changedFields(changed map[Field]bool) []Field {
	fields := make([]Field, 0, len(changed))
	for _, field := range Fields {
		if changed[field] {
			fields = append(fields, field)
		}
	}
	return fields
}
