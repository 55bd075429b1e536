package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/llehouerou/tagedit/internal/config"
	"github.com/llehouerou/tagedit/internal/editor"
	"github.com/llehouerou/tagedit/internal/errmsg"
	"github.com/llehouerou/tagedit/internal/retag"
	"github.com/llehouerou/tagedit/internal/tags"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func openTags(path string) (retag.TagFile, error) {
	f, err := tags.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// run executes tagedit and returns the exit status: 1 for usage errors and
// failed edits, 0 otherwise.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		// The error and usage have already been printed.
		return 1
	}

	log := newLogger(stderr, opts.verbose)

	if errs := opts.filters.Validate(); len(errs) > 0 {
		for _, err := range errs {
			log.Error(err)
		}
		return 1
	}

	var extra []string
	if opts.config != "" {
		extra = append(extra, opts.config)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		log.Error(errmsg.Format(errmsg.OpLoadConfig, err))
		return 1
	}

	procOpts := processorOptions(opts, cfg)

	var ed retag.Editor
	if opts.edit != "" {
		name := strings.ToLower(opts.edit)
		field, ok := tags.ParseField(name)
		if !ok {
			log.Errorf("unknown tag name %q for -edit", opts.edit)
			return 1
		}
		if field.Editable() {
			procOpts.Edit = &field
			ed = editor.New(editor.Command(cfg.Editor))
		} else {
			log.Warnf("tag %s cannot be edited, ignoring -edit", name)
		}
	}

	log.WithField("width", procOpts.Width).Debugf("processing %d file(s)", len(opts.paths))

	p := retag.NewProcessor(procOpts, openTags, ed, log, stdout)
	if err := p.Run(ctx, opts.paths); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted")
		} else {
			log.Error(err)
		}
		return 1
	}
	return 0
}
