package retag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagedit/internal/tags"
)

func newTestResolver() (*Resolver, *fakeFile, *Snapshot, *bytes.Buffer) {
	file := newFakeFile()
	snap := NewSnapshot(file)
	var out bytes.Buffer
	return NewResolver(file, snap, &out), file, snap, &out
}

func TestResolve_Text(t *testing.T) {
	tests := []struct {
		name     string
		field    tags.Field
		proposed string
		want     int
		notice   string
		value    string
	}{
		{"changed", tags.Title, "New", 1, "Changing title to 'New'\n", "New"},
		{"unchanged", tags.Title, "Old", 0, "", "Old"},
		{"cleared", tags.Genre, "", 1, "Changing genre to ''\n", ""},
		{"already empty", tags.Comment, "", 0, "", ""},
		{"case matters", tags.Title, "old", 1, "Changing title to 'old'\n", "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, file, snap, out := newTestResolver()

			got, err := r.Resolve(tt.field, tt.proposed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.notice, out.String())
			assert.Equal(t, tt.value, snap.Text(tt.field))
			assert.Equal(t, tt.value, file.Text(tt.field))
			assert.Equal(t, tt.want == 1, file.dirty)
		})
	}
}

func TestResolve_Number(t *testing.T) {
	tests := []struct {
		name     string
		field    tags.Field
		proposed string
		want     int
		notice   string
		value    int
	}{
		{"changed", tags.Year, "2024", 1, "Changing year to '2024'\n", 2024},
		{"unchanged", tags.Track, "3", 0, "", 3},
		{"leading zero is equal", tags.Track, "03", 0, "", 3},
		{"empty means zero", tags.Track, "", 1, "Changing track to '0'\n", 0},
		{"explicit zero", tags.Year, "0", 1, "Changing year to '0'\n", 0},
		{"plus sign", tags.Year, "+2024", 1, "Changing year to '2024'\n", 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, file, snap, out := newTestResolver()

			got, err := r.Resolve(tt.field, tt.proposed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.notice, out.String())
			assert.Equal(t, tt.value, snap.Number(tt.field))
			assert.Equal(t, tt.value, file.Number(tt.field))
		})
	}
}

func TestResolve_EmptyNumberOnZeroIsNoChange(t *testing.T) {
	r, file, _, out := newTestResolver()
	file.number[tags.Track] = 0
	r.snap = NewSnapshot(file)

	got, err := r.Resolve(tags.Track, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.Empty(t, out.String())
}

func TestResolve_NegativeNumber(t *testing.T) {
	r, file, snap, out := newTestResolver()

	got, err := r.Resolve(tags.Track, "-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative number")
	assert.Equal(t, 0, got)
	assert.Empty(t, out.String())
	assert.Equal(t, 3, snap.Number(tags.Track))
	assert.False(t, file.dirty)
}

func TestResolve_InvalidNumber(t *testing.T) {
	r, file, snap, out := newTestResolver()

	got, err := r.Resolve(tags.Year, "nineteen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
	assert.Equal(t, 0, got)
	assert.Empty(t, out.String())
	assert.Equal(t, 1999, snap.Number(tags.Year))
	assert.False(t, file.dirty)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"7", 7, false},
		{"+7", 7, false},
		{"2001", 2001, false},
		{"7a", 0, true},
		{" 7", 0, true},
		{"3/12", 0, true},
		{"-3", 0, true},
		{"-0", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
