package retag

import (
	"fmt"
	"io"
	"strconv"

	"github.com/llehouerou/tagedit/internal/tags"
)

// Resolver decides whether a proposed value changes a tag, and applies it
// to both the snapshot and the file when it does.
type Resolver struct {
	file TagFile
	snap *Snapshot
	out  io.Writer
}

// NewResolver returns a Resolver writing change notices to out.
func NewResolver(file TagFile, snap *Snapshot, out io.Writer) *Resolver {
	return &Resolver{file: file, snap: snap, out: out}
}

// Resolve applies proposed to field and returns 1 when the value changed,
// 0 otherwise. For numeric fields an empty proposal means 0; any other
// value must be a non-negative decimal integer.
func (r *Resolver) Resolve(field tags.Field, proposed string) (int, error) {
	if field.Kind() == tags.KindNumber {
		n, err := ParseNumber(proposed)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", field, err)
		}
		if n == r.snap.Number(field) {
			return 0, nil
		}
		r.snap.setNumber(field, n)
		r.notify(field, strconv.Itoa(n))
		r.file.SetNumber(field, n)
		return 1, nil
	}

	if proposed == r.snap.Text(field) {
		return 0, nil
	}
	r.snap.setText(field, proposed)
	r.notify(field, proposed)
	r.file.SetText(field, proposed)
	return 1, nil
}

func (r *Resolver) notify(field tags.Field, value string) {
	fmt.Fprintf(r.out, "Changing %s to '%s'\n", field, value)
}

// ParseNumber parses a non-negative numeric tag value. The empty string is 0.
func ParseNumber(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative number %q", s)
	}
	return n, nil
}
