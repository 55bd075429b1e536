package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagedit/internal/config"
	"github.com/llehouerou/tagedit/internal/retag"
	"github.com/llehouerou/tagedit/internal/tags"
)

func TestParseArgs_Overrides(t *testing.T) {
	o, err := parseArgs([]string{"-title=New", "-album=", "-track=7", "-year=", "a.mp3", "b.flac"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, map[tags.Field]string{
		tags.Title: "New",
		tags.Album: "",
		tags.Track: "7",
		tags.Year:  "",
	}, o.overrides)
	assert.Equal(t, []string{"a.mp3", "b.flac"}, o.paths)
}

func TestParseArgs_InvalidNumber(t *testing.T) {
	_, err := parseArgs([]string{"-year=soon", "a.mp3"}, io.Discard)
	assert.Error(t, err)

	_, err = parseArgs([]string{"-track=-3", "a.mp3"}, io.Discard)
	assert.ErrorContains(t, err, "negative number")
}

func TestParseArgs_Toggles(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		format   toggle
		silent   toggle
		keepTime toggle
	}{
		{"unset", nil, toggle{}, toggle{}, toggle{}},
		{"format", []string{"-format"}, toggle{true, true}, toggle{}, toggle{}},
		{"noformat", []string{"-noformat"}, toggle{false, true}, toggle{}, toggle{}},
		{"last wins", []string{"-format", "-noformat", "-nosilent", "-silent"}, toggle{false, true}, toggle{true, true}, toggle{}},
		{"explicit false", []string{"-silent=false", "-keeptime"}, toggle{}, toggle{false, true}, toggle{true, true}},
		{"negated false", []string{"-noformat=false"}, toggle{true, true}, toggle{}, toggle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseArgs(append(tt.args, "a.mp3"), io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.format, o.format, "format")
			assert.Equal(t, tt.silent, o.silent, "silent")
			assert.Equal(t, tt.keepTime, o.keepTime, "keeptime")
		})
	}
}

func TestParseArgs_Filters(t *testing.T) {
	o, err := parseArgs([]string{"-filter", "title=clean", "-filter=Title=HTML", "-filter", "comment=underscore", "a.mp3"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, retag.FilterRequest{
		"title":   {"clean", "HTML"},
		"comment": {"underscore"},
	}, o.filters)
}

func TestParseArgs_MalformedFilter(t *testing.T) {
	_, err := parseArgs([]string{"-filter", "title", "a.mp3"}, io.Discard)
	assert.Error(t, err)
}

func TestParseArgs_Help(t *testing.T) {
	_, err := parseArgs([]string{"-help"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseArgs_NoFiles(t *testing.T) {
	_, err := parseArgs([]string{"-title=x"}, io.Discard)
	assert.ErrorIs(t, err, errNoFiles)
}

func TestParseArgs_Width(t *testing.T) {
	o, err := parseArgs([]string{"a.mp3"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, o.widthSet)

	o, err = parseArgs([]string{"-width=40", "a.mp3"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, o.widthSet)
	assert.Equal(t, 40, o.width)
}

func TestProcessorOptions(t *testing.T) {
	cfg := &config.Config{Width: 100, Format: true, Silent: true, KeepTime: true}

	o, err := parseArgs([]string{"a.mp3"}, io.Discard)
	require.NoError(t, err)
	opts := processorOptions(o, cfg)
	assert.True(t, opts.Format)
	assert.True(t, opts.Silent)
	assert.True(t, opts.KeepTime)
	assert.Equal(t, 100, opts.Width)

	o, err = parseArgs([]string{"-noformat", "-nosilent", "-keeptime=false", "-width=20", "-dryrun", "a.mp3"}, io.Discard)
	require.NoError(t, err)
	opts = processorOptions(o, cfg)
	assert.False(t, opts.Format)
	assert.False(t, opts.Silent)
	assert.False(t, opts.KeepTime)
	assert.True(t, opts.DryRun)
	assert.Equal(t, config.MinWidth, opts.Width)
}
