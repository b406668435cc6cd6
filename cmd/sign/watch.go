package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

func cmdWatch(args []string, stdout, stderr io.Writer) int {
	opts, files, code := parseArgs(appName+" watch", args, stderr)
	if code >= 0 {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watch(ctx, files, opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "%s watch: %v\n", appName, err)
		return exitFailure
	}
	return exitOK
}

// watch parses files once and then every time one of them is written, until
// ctx is done. Directories are watched instead of files so editors that
// replace files on save keep being followed.
func watch(ctx context.Context, files []string, opts *options, stdout, stderr io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	logger := newLogger(opts, stderr)

	// absolute path to the name given on the command line
	names := make(map[string]string, len(files))
	dirs := make(map[string]bool)
	for _, name := range files {
		abs, err := filepath.Abs(name)
		if err != nil {
			return err
		}
		names[abs] = name

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}

	for _, res := range parseAll(ctx, files, opts, logger) {
		report(res, opts, stdout, stderr)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			name, ok := names[abs]
			if !ok {
				continue
			}
			logger.Printf("%s changed (%s)", name, ev.Op)
			report(parseFile(name, opts, logger), opts, stdout, stderr)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "%s watch: %v\n", appName, err)
		}
	}
}
