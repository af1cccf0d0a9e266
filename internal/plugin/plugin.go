// Package plugin orchestrates an import run: it bulk-loads the reference
// data snapshot, fans the source files out over workers and drives one
// subject per file, handing finished entities to the persistence
// collaborator.
package plugin

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/observability"
	"github.com/catalogtools/eav-import/internal/refdata"
	"github.com/catalogtools/eav-import/internal/registry"
	"github.com/catalogtools/eav-import/internal/scope"
	"github.com/catalogtools/eav-import/internal/subject"
)

// Persister receives the finished entities of a run. Persistence is
// external to the row pipeline.
type Persister interface {
	Persist(ctx context.Context, e entity.Entity) error
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(ctx context.Context, e entity.Entity) error

func (f PersisterFunc) Persist(ctx context.Context, e entity.Entity) error {
	return f(ctx, e)
}

// Options bundles the collaborators of an import run.
type Options struct {
	Source    refdata.Source
	Registry  registry.Registry
	Persister Persister
	Loggers   *observability.Registry
	Settings  subject.Settings
	Observers []subject.Observer

	// Workers caps the number of files processed concurrently. Rows within
	// one file stay strictly sequential.
	Workers int

	// OnRow, when set, is called after every processed or skipped row.
	OnRow func(filename string)
}

// Result summarizes a finished run.
type Result struct {
	RunID   string
	Files   int
	Rows    int64
	Skipped int64
}

// Plugin is the orchestrator of one import run.
type Plugin struct {
	opts  Options
	runID string
	log   *observability.Logger

	mu      sync.Mutex
	status  registry.Status
	rows    int64
	skipped int64
}

// New creates an orchestrator for a single run. Each run gets a fresh UUID
// it is tracked under in the registry.
func New(opts Options) *Plugin {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Settings == (subject.Settings{}) {
		opts.Settings = subject.DefaultSettings()
	}
	if opts.Loggers == nil {
		opts.Loggers = observability.NewRegistry(observability.LogConfig{
			Level:       "info",
			ServiceName: "eav-import",
		})
	}
	return &Plugin{
		opts:  opts,
		runID: uuid.NewString(),
		log:   opts.Loggers.System(),
	}
}

// RunID returns the UUID the run is tracked under.
func (p *Plugin) RunID() string {
	return p.runID
}

// Process imports the passed files. The snapshot load is a barrier: no file
// is touched before the reference data is fully in memory. A fatal error
// aborts the remaining files and is reported through the registry.
func (p *Plugin) Process(ctx context.Context, files []string) (Result, error) {
	p.status = registry.Status{
		RunID:     p.runID,
		State:     registry.StateRunning,
		Files:     len(files),
		StartedAt: time.Now().UTC(),
	}
	p.publish(ctx)

	p.log.Info().Str("run_id", p.runID).Int("files", len(files)).Msg("Loading reference data")
	snap, err := refdata.Load(ctx, p.opts.Source)
	if err != nil {
		return p.finish(ctx, fmt.Errorf("load reference data: %w", err))
	}
	resolver := scope.NewResolver(snap)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := p.processFile(gctx, file, snap, resolver); err != nil {
				return err
			}
			p.fileDone(gctx)
			return nil
		})
	}

	return p.finish(ctx, g.Wait())
}

// processFile streams one source file through a dedicated subject.
func (p *Plugin) processFile(ctx context.Context, filename string, snap *refdata.Snapshot, resolver *scope.Resolver) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiterRune(p.opts.Settings.FieldDelimiter)
	r.FieldsPerRecord = -1

	s := subject.New(subject.Options{
		Filename:  filename,
		Settings:  p.opts.Settings,
		Snapshot:  snap,
		Resolver:  resolver,
		Loggers:   p.opts.Loggers,
		Observers: p.opts.Observers,
	})

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		p.log.Warn().Str("file", filename).Msg("Skipping empty file")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header of %s: %w", filename, err)
	}
	s.ImportHeaders(header)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", filename, err)
		}

		e, err := s.ProcessRow(row)
		if err != nil {
			return err
		}
		if e == nil {
			p.rowDone(true)
			p.progress(filename)
			continue
		}
		if p.opts.Persister != nil {
			if err := p.opts.Persister.Persist(ctx, e); err != nil {
				return s.WrapError("", err)
			}
		}
		p.rowDone(false)
		p.progress(filename)

		if s.Debug() {
			p.log.Debug().
				Str("file", filename).
				Int("line", s.LineNumber()).
				Str("status", e.Status()).
				Msg("Processed row")
		}
	}
}

func (p *Plugin) progress(filename string) {
	if p.opts.OnRow != nil {
		p.opts.OnRow(filename)
	}
}

func (p *Plugin) rowDone(skipped bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if skipped {
		p.skipped++
	} else {
		p.rows++
	}
}

func (p *Plugin) fileDone(ctx context.Context) {
	p.mu.Lock()
	p.status.FilesDone++
	p.status.RowsProcessed = p.rows
	p.status.RowsSkipped = p.skipped
	p.mu.Unlock()
	p.publish(ctx)
}

// finish records the terminal run status and builds the result. The status
// is published even when the run context is already canceled.
func (p *Plugin) finish(ctx context.Context, err error) (Result, error) {
	p.mu.Lock()
	p.status.RowsProcessed = p.rows
	p.status.RowsSkipped = p.skipped
	if err != nil {
		p.status.State = registry.StateFailed
		p.status.Error = err.Error()
	} else {
		p.status.State = registry.StateCompleted
	}
	result := Result{
		RunID:   p.runID,
		Files:   p.status.FilesDone,
		Rows:    p.rows,
		Skipped: p.skipped,
	}
	p.mu.Unlock()
	p.publish(context.WithoutCancel(ctx))

	if err != nil {
		p.log.Error().Err(err).Str("run_id", p.runID).Msg("Import run failed")
		return result, err
	}
	p.log.Info().
		Str("run_id", p.runID).
		Int("files", result.Files).
		Int64("rows", result.Rows).
		Int64("skipped", result.Skipped).
		Msg("Import run completed")
	return result, nil
}

// publish pushes the current status to the registry. Registry failures are
// logged, they never abort a run.
func (p *Plugin) publish(ctx context.Context) {
	if p.opts.Registry == nil {
		return
	}
	p.mu.Lock()
	p.status.UpdatedAt = time.Now().UTC()
	status := p.status
	p.mu.Unlock()

	if err := p.opts.Registry.Put(ctx, status); err != nil {
		p.log.Warn().Err(err).Str("run_id", p.runID).Msg("Failed to publish run status")
	}
}

func delimiterRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ','
}
