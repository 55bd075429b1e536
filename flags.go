package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/llehouerou/tagedit/internal/config"
	"github.com/llehouerou/tagedit/internal/retag"
	"github.com/llehouerou/tagedit/internal/tags"
)

// toggle is a boolean setting that records whether the command line set it.
type toggle struct {
	value bool
	set   bool
}

// toggleFlag sets a toggle to on when given, so that -format and -noformat
// can share one setting. The last one on the command line wins.
type toggleFlag struct {
	t  *toggle
	on bool
}

func (f toggleFlag) IsBoolFlag() bool { return true }

func (f toggleFlag) String() string {
	if f.t == nil {
		return "false"
	}
	return strconv.FormatBool(f.t.set && f.t.value == f.on)
}

func (f toggleFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.t.value = b == f.on
	f.t.set = true
	return nil
}

// overrideFlag stores a tag value given on the command line. Numeric tags
// are checked as they are parsed.
type overrideFlag struct {
	field     tags.Field
	overrides map[tags.Field]string
}

func (f overrideFlag) String() string {
	if f.overrides == nil {
		return ""
	}
	return f.overrides[f.field]
}

func (f overrideFlag) Set(s string) error {
	if f.field.Kind() == tags.KindNumber {
		if _, err := retag.ParseNumber(s); err != nil {
			return err
		}
	}
	f.overrides[f.field] = s
	return nil
}

// filterFlag collects repeated -filter TAG=FILTER options.
type filterFlag struct {
	req retag.FilterRequest
}

func (f filterFlag) String() string {
	if f.req == nil {
		return ""
	}
	var parts []string
	for tag, filters := range f.req {
		for _, name := range filters {
			parts = append(parts, tag+"="+name)
		}
	}
	return strings.Join(parts, ",")
}

func (f filterFlag) Set(s string) error { return f.req.Set(s) }

// cliOptions holds everything parsed from the command line.
type cliOptions struct {
	overrides map[tags.Field]string
	filters   retag.FilterRequest

	format   toggle
	silent   toggle
	width    int
	widthSet bool
	edit     string

	dryRun   bool
	keepTime toggle
	verbose  bool
	config   string

	paths []string
}

const usageHeader = `Usage: tagedit [options] file...

Show and edit the tags of audio files (FLAC, MP3, Ogg Vorbis, Opus, Speex,
WAV, M4A).

Options:
`

func newFlagSet(o *cliOptions, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("tagedit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageHeader)
		fs.PrintDefaults()
	}

	for _, field := range tags.Fields {
		usage := "set the " + field.String() + " tag (empty clears it)"
		if field.Kind() == tags.KindNumber {
			usage = "set the " + field.String() + " tag to a number (empty sets 0)"
		}
		fs.Var(overrideFlag{field: field, overrides: o.overrides}, field.String(), usage)
	}

	fs.Var(filterFlag{req: o.filters}, "filter",
		"apply a filter to a tag, as TAG=FILTER (clean, HTML, underscore); repeatable")
	fs.Var(toggleFlag{t: &o.format, on: true}, "format", "wrap long tag values in the report")
	fs.Var(toggleFlag{t: &o.format, on: false}, "noformat", "do not wrap long tag values (default)")
	fs.Var(toggleFlag{t: &o.silent, on: true}, "silent", "do not print the file name and tags")
	fs.Var(toggleFlag{t: &o.silent, on: false}, "nosilent", "print the file name and tags (default)")
	fs.IntVar(&o.width, "width", 0, "display width for -format, at least 60 (default 80)")
	fs.StringVar(&o.edit, "edit", "", "edit a text tag in $VISUAL or $EDITOR")
	fs.BoolVar(&o.dryRun, "dryrun", false, "show changes without saving them")
	fs.Var(toggleFlag{t: &o.keepTime, on: true}, "keeptime", "keep the modification time of changed files")
	fs.BoolVar(&o.verbose, "verbose", false, "log debugging information")
	fs.StringVar(&o.config, "config", "", "read settings from this TOML `file` as well")

	return fs
}

var errNoFiles = errors.New("no files given")

// parseArgs parses the command line. flag.ErrHelp is returned for -help.
func parseArgs(args []string, output io.Writer) (*cliOptions, error) {
	o := &cliOptions{
		overrides: make(map[tags.Field]string),
		filters:   make(retag.FilterRequest),
	}
	fs := newFlagSet(o, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "width" {
			o.widthSet = true
		}
	})
	o.paths = fs.Args()
	if len(o.paths) == 0 {
		fmt.Fprintf(fs.Output(), "tagedit: %v\n", errNoFiles)
		fs.Usage()
		return nil, errNoFiles
	}
	return o, nil
}

// processorOptions merges the configuration with the command line; flags
// given on the command line win.
func processorOptions(o *cliOptions, cfg *config.Config) retag.Options {
	opts := retag.Options{
		Overrides: o.overrides,
		Filters:   o.filters,
		Format:    cfg.Format,
		Width:     cfg.Width,
		Silent:    cfg.Silent,
		DryRun:    o.dryRun,
		KeepTime:  cfg.KeepTime,
	}
	if o.format.set {
		opts.Format = o.format.value
	}
	if o.silent.set {
		opts.Silent = o.silent.value
	}
	if o.keepTime.set {
		opts.KeepTime = o.keepTime.value
	}
	if o.widthSet {
		opts.Width = config.ClampWidth(o.width)
	}
	return opts
}
