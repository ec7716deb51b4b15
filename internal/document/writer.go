package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"wecare/internal/model"

	"github.com/rs/zerolog"
)

// maxNameAttempts bounds the retries when a generated file name already exists.
const maxNameAttempts = 20

// Writer persists rendered documents.
type Writer interface {
	// Write assigns the document number and issue time, writes the document
	// and returns the path of the created file.
	Write(ctx context.Context, d *Document) (string, error)
}

// documentFile is the open handle a document body is written to.
type documentFile interface {
	io.Writer
	Close() error
}

// fileWriter writes documents into a directory and mirrors them to the console.
type fileWriter struct {
	dir      string
	renderer *Renderer
	console  io.Writer
	archiver Archiver
	now      func() time.Time
	number   func() int
	create   func(path string) (documentFile, error)
	logger   zerolog.Logger
}

// createExclusive creates path, failing with fs.ErrExist if it is taken.
func createExclusive(path string) (documentFile, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Option configures a file writer.
type Option func(*fileWriter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(w *fileWriter) { w.now = now }
}

// WithNumberSource overrides the random 4-digit document number generator.
func WithNumberSource(number func() int) Option {
	return func(w *fileWriter) { w.number = number }
}

// WithArchiver uploads every written document.
func WithArchiver(a Archiver) Option {
	return func(w *fileWriter) { w.archiver = a }
}

// NewFileWriter creates a Writer that stores documents in dir and echoes
// their text to console.
func NewFileWriter(dir string, renderer *Renderer, console io.Writer, logger zerolog.Logger, opts ...Option) Writer {
	w := &fileWriter{
		dir:      dir,
		renderer: renderer,
		console:  console,
		archiver: NewNopArchiver(),
		now:      time.Now,
		number:   randomNumber,
		create:   createExclusive,
		logger:   logger.With().Str("component", "document-writer").Logger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write creates the file exclusively so an existing document is never
// overwritten; on a name clash a new number is drawn.
func (w *fileWriter) Write(ctx context.Context, d *Document) (string, error) {
	d.IssuedAt = w.now()

	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		d.Number = fmt.Sprintf("%s-%d", d.Kind.Prefix(), w.number())
		name := FileName(d)
		path := filepath.Join(w.dir, name)

		f, err := w.create(path)
		if errors.Is(err, fs.ErrExist) {
			w.logger.Debug().
				Str("file", name).
				Int("attempt", attempt).
				Msg("document name already taken, drawing a new number")
			continue
		}
		if err != nil {
			w.logger.Error().Err(err).Str("file", path).Msg("failed to create document file")
			return "", model.NewIOError(model.ErrCodeDocumentWrite, "failed to create document "+path, err)
		}

		body := w.renderer.Render(d)
		if _, err := f.Write(body); err != nil {
			f.Close()
			// A partial document must not stay behind under a valid name.
			if rmErr := os.Remove(path); rmErr != nil {
				w.logger.Warn().Err(rmErr).Str("file", path).Msg("failed to remove partial document")
			}
			w.logger.Error().Err(err).Str("file", path).Msg("failed to write document")
			return "", model.NewIOError(model.ErrCodeDocumentWrite, "failed to write document "+path, err)
		}
		if err := f.Close(); err != nil {
			if rmErr := os.Remove(path); rmErr != nil {
				w.logger.Warn().Err(rmErr).Str("file", path).Msg("failed to remove partial document")
			}
			w.logger.Error().Err(err).Str("file", path).Msg("failed to close document")
			return "", model.NewIOError(model.ErrCodeDocumentWrite, "failed to close document "+path, err)
		}

		fmt.Fprint(w.console, "\n")
		w.console.Write(body)

		if err := w.archiver.Archive(ctx, d, name, body); err != nil {
			w.logger.Warn().
				Err(err).
				Str("document_id", d.ID.String()).
				Msg("failed to archive document, local copy kept")
		}

		w.logger.Info().
			Str("document_id", d.ID.String()).
			Str("kind", d.Kind.String()).
			Str("number", d.Number).
			Str("file", path).
			Msg("document written")

		return path, nil
	}

	return "", model.NewIOError(model.ErrCodeDocumentWrite,
		fmt.Sprintf("failed to find a free document name after %d attempts", maxNameAttempts), fs.ErrExist)
}

func randomNumber() int {
	return 1000 + rand.IntN(9000)
}
