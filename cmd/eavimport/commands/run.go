package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/catalogtools/eav-import/cmd/eavimport/ui"
	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/observer"
	"github.com/catalogtools/eav-import/internal/plugin"
	"github.com/catalogtools/eav-import/internal/storage"
	"github.com/catalogtools/eav-import/internal/subject"
)

var (
	runSourceDir  string
	runOutput     string
	runEntityType string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import the CSV files of a source directory",
	Long: `Loads the reference data snapshot from the configured database, streams
every CSV file of the source directory through the observer pipeline and
writes the finished entities as JSON lines to the output file.`,
	RunE: runImport,
}

func init() {
	runCmd.Flags().StringVar(&runSourceDir, "source-dir", "", "directory with the CSV source files (defaults to config)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "entities.jsonl", "output file for the finished entities")
	runCmd.Flags().StringVar(&runEntityType, "entity-type", "catalog_product", "EAV entity type code of the import")
	rootCmd.AddCommand(runCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loggers := newLoggers(cfg)

	sourceDir := runSourceDir
	if sourceDir == "" {
		sourceDir = cfg.Import.SourceDir
	}
	files, err := discoverFiles(sourceDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ui.Warning("No CSV files found in %s", sourceDir)
		return nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	reg, err := newRegistry(cfg)
	if err != nil {
		return fmt.Errorf("connect registry: %w", err)
	}
	defer reg.Close()

	sink, err := newJSONLPersister(runOutput)
	if err != nil {
		return err
	}
	defer sink.Close()

	spin := ui.NewSpinner("Loading reference data...")
	spin.Start()
	bar := ui.NewProgressBar(countRows(files), "Importing")
	firstRow := sync.OnceFunc(spin.Stop)

	p := plugin.New(plugin.Options{
		Source:    storage.NewRepository(db),
		Registry:  reg,
		Persister: sink,
		Loggers:   loggers,
		Settings: subject.Settings{
			FieldDelimiter:      cfg.Import.FieldDelimiter,
			MultiValueDelimiter: cfg.Import.MultiValueDelimiter,
			SourceDateLayout:    cfg.Import.SourceDateFormat,
			Debug:               cfg.Import.Debug,
		},
		Observers: []subject.Observer{
			observer.NewStoreView(),
			observer.NewEntitySeed(),
			observer.NewAttributeSet(runEntityType),
			observer.NewAttribute(runEntityType),
		},
		Workers: cfg.Import.Workers,
		OnRow: func(string) {
			firstRow()
			bar.Add(1)
		},
	})

	result, err := p.Process(ctx, files)
	spin.Stop()
	bar.Finish()
	if err != nil {
		ui.Error("Import run %s failed: %v", p.RunID(), err)
		return err
	}

	ui.Success("Run %s imported %d rows from %d files (%d skipped)",
		result.RunID, result.Rows, result.Files, result.Skipped)
	ui.Info("Entities written to %s", runOutput)
	return nil
}

// jsonlPersister writes finished entities as JSON lines.
type jsonlPersister struct {
	mu  sync.Mutex
	f   *os.File
	buf *bufio.Writer
	enc *json.Encoder
}

func newJSONLPersister(path string) (*jsonlPersister, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	buf := bufio.NewWriter(f)
	return &jsonlPersister{f: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

func (p *jsonlPersister) Persist(_ context.Context, e entity.Entity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(e)
}

func (p *jsonlPersister) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.buf.Flush(); err != nil {
		p.f.Close()
		return err
	}
	return p.f.Close()
}
