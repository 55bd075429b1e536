package retag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tagedit/internal/errmsg"
	"github.com/llehouerou/tagedit/internal/render"
	"github.com/llehouerou/tagedit/internal/tags"
)

// LabelMargin is the column where wrapped tag values start.
const LabelMargin = 10

// Options controls what a Processor does to each file.
type Options struct {
	// Overrides holds the values given on the command line. Absent fields
	// are left alone; an empty value clears the field.
	Overrides map[tags.Field]string
	Filters   FilterRequest
	// Edit names the field to open in the editor, if any.
	Edit *tags.Field

	Format bool // wrap long values in the report
	Width  int  // report width used by Format
	Silent bool // suppress the report

	DryRun   bool // resolve changes without saving them
	KeepTime bool // restore the modification time after saving
}

// Opener opens the tags of an audio file.
type Opener func(path string) (TagFile, error)

// Editor edits a single text value interactively.
type Editor interface {
	Edit(ctx context.Context, field, current string) (string, error)
}

// Processor applies Options to a list of files, one at a time.
type Processor struct {
	opts    Options
	open    Opener
	editor  Editor
	log     logrus.FieldLogger
	out     io.Writer
	heading lipgloss.Style
}

// NewProcessor returns a Processor writing its report and change notices
// to out and its warnings to log. editor may be nil when opts.Edit is nil.
func NewProcessor(opts Options, open Opener, editor Editor, log logrus.FieldLogger, out io.Writer) *Processor {
	return &Processor{
		opts:    opts,
		open:    open,
		editor:  editor,
		log:     log,
		out:     out,
		heading: lipgloss.NewRenderer(out).NewStyle().Bold(true),
	}
}

// Run processes paths in order. Problems with a single file are logged and
// the file is skipped; the returned error is non-nil only when the run
// must stop.
func (p *Processor) Run(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) processFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		p.log.Warnf("%s: file not found", path)
		return nil
	case err != nil:
		p.log.Warn(errmsg.FormatWith(errmsg.OpStatFile, path, err))
		return nil
	case info.IsDir():
		p.log.Warnf("%s: is a directory", path)
		return nil
	case info.Size() == 0:
		p.log.Warnf("%s: file is empty", path)
		return nil
	}

	p.log.WithFields(logrus.Fields{
		"size":     humanize.Bytes(uint64(info.Size())),
		"modified": humanize.Time(info.ModTime()),
	}).Debugf("opening %s", path)

	file, err := p.open(path)
	if err != nil {
		p.log.Warn(errmsg.FormatWith(errmsg.OpReadTags, path, err))
		return nil
	}
	p.log.Debugf("%s: %s container", path, file.Format())
	if err := file.LengthErr(); err != nil {
		p.log.Debugf("%s: length unavailable: %v", path, err)
	}

	snap := NewSnapshot(file)
	if !p.opts.Silent {
		p.report(path, snap)
	}

	resolver := NewResolver(file, snap, p.out)
	changes, err := p.apply(ctx, resolver, snap)
	if err != nil {
		return err
	}

	if changes > 0 {
		p.save(path, file, info.ModTime(), changes)
	}

	if !p.opts.Silent {
		fmt.Fprintln(p.out)
	}
	return nil
}

// apply runs overrides, then filters, then the interactive edit, and
// returns the number of changes.
func (p *Processor) apply(ctx context.Context, r *Resolver, snap *Snapshot) (int, error) {
	changes := 0

	for _, field := range tags.Fields {
		value, ok := p.opts.Overrides[field]
		if !ok {
			continue
		}
		n, err := r.Resolve(field, value)
		if err != nil {
			return changes, err
		}
		changes += n
	}

	n, err := ApplyFilters(r, snap, p.opts.Filters)
	if err != nil {
		return changes, err
	}
	changes += n

	if p.opts.Edit == nil {
		return changes, nil
	}
	field := *p.opts.Edit
	if !field.Editable() {
		p.log.Warnf("tag %s cannot be edited", field)
		return changes, nil
	}
	value, err := p.editor.Edit(ctx, field.String(), snap.Text(field))
	if err != nil {
		return changes, errmsg.Wrap(errmsg.OpEditTag, field.String(), err)
	}
	n, err = r.Resolve(field, value)
	if err != nil {
		return changes, err
	}
	return changes + n, nil
}

func (p *Processor) save(path string, file TagFile, modTime time.Time, changes int) {
	if p.opts.DryRun {
		p.log.Infof("%s: dry run, %d change(s) not saved", path, changes)
		return
	}

	if err := file.Save(); err != nil {
		p.log.Warn(errmsg.FormatWith(errmsg.OpWriteTags, path, err))
		return
	}
	p.log.Debugf("%s: saved %d change(s)", path, changes)

	if p.opts.KeepTime {
		if err := os.Chtimes(path, time.Now(), modTime); err != nil {
			p.log.Warn(errmsg.FormatWith(errmsg.OpKeepTime, path, err))
		}
	}
}

// report prints the path followed by one line per tag.
func (p *Processor) report(path string, snap *Snapshot) {
	fmt.Fprintln(p.out, p.heading.Render(path))

	limit := p.opts.Width - LabelMargin
	for _, e := range snap.Entries() {
		value := render.Sanitize(e.Value)
		if p.opts.Format && runewidth.StringWidth(value) > limit {
			fmt.Fprintln(p.out, render.Format(value, e.Name+":", render.AlignRight, LabelMargin, p.opts.Width))
			continue
		}
		fmt.Fprintf(p.out, "%s: %s\n", e.Name, value)
	}
}
