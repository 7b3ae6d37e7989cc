// Package batch expands an input into documents and reports on each of
// them lazily, one at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"textbrief/internal/domain"
	"textbrief/internal/source"
)

// InputSpec holds either literal text or a file system path.
type InputSpec struct {
	Text string
	Path string
}

type ReportBuilder interface {
	BuildReport(ctx context.Context, doc domain.Document) domain.Report
}

type DocumentReader interface {
	Read(ctx context.Context, path string) ([]domain.Document, error)
}

type Runner struct {
	builder ReportBuilder
	reader  DocumentReader
	log     *slog.Logger
}

func NewRunner(builder ReportBuilder, reader DocumentReader, log *slog.Logger) *Runner {
	return &Runner{builder: builder, reader: reader, log: log}
}

// Run resolves input and returns the report sequence. Path errors surface
// here, before any report is produced; per-file read errors surface as
// failed reports during iteration. Iteration stops before the next file
// once ctx is done. Ranging the sequence again repeats the whole run.
func (r *Runner) Run(ctx context.Context, input InputSpec) (iter.Seq[domain.Report], error) {
	if input.Path == "" {
		doc := domain.Document{Text: input.Text}

		return func(yield func(domain.Report) bool) {
			yield(r.builder.BuildReport(ctx, doc))
		}, nil
	}

	info, err := os.Stat(input.Path)
	if isNotExist(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPathNotFound, input.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve input: %w", err)
	}

	if !info.IsDir() {
		return r.reports(ctx, []string{input.Path}), nil
	}

	paths, err := listDir(input.Path)
	if err != nil {
		return nil, err
	}

	r.log.InfoContext(ctx, "Folder is listed",
		"path", input.Path,
		"files", len(paths))

	return r.reports(ctx, paths), nil
}

func (r *Runner) reports(ctx context.Context, paths []string) iter.Seq[domain.Report] {
	return func(yield func(domain.Report) bool) {
		for i, path := range paths {
			if ctx.Err() != nil {
				r.log.WarnContext(ctx, "Batch is interrupted",
					"error", context.Cause(ctx),
					"skipped", len(paths)-i)

				return
			}

			docs, err := r.reader.Read(ctx, path)
			if err != nil {
				r.log.ErrorContext(ctx, "Failed to read document",
					"error", err,
					"path", path)

				failed := domain.Report{
					Document: domain.Document{Label: filepath.Base(path)},
					Err:      err,
				}
				if !yield(failed) {
					return
				}

				continue
			}

			for _, doc := range docs {
				if !yield(r.builder.BuildReport(ctx, doc)) {
					return
				}
			}
		}
	}
}

// isNotExist reports stat errors meaning nothing can exist at the path,
// such as a file used as a directory or a symlink loop.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}

// listDir returns the recognized files directly inside dir, sorted by file
// name. Symlinks are kept so a dangling one reports as unreadable.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Type()
		if !mode.IsRegular() && mode&fs.ModeSymlink == 0 {
			continue
		}

		if _, ok := source.KindOf(entry.Name()); !ok {
			continue
		}

		names = append(names, entry.Name())
	}

	slices.Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	return paths, nil
}
