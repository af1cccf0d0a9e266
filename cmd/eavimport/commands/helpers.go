package commands

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/catalogtools/eav-import/internal/config"
	"github.com/catalogtools/eav-import/internal/observability"
	"github.com/catalogtools/eav-import/internal/registry"
)

// loadConfig loads the configuration honoring the --config and --verbose
// flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Observability.LogLevel = "debug"
	}
	return cfg, nil
}

func newLoggers(cfg *config.Config) *observability.Registry {
	return observability.NewRegistry(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "eav-import",
	})
}

// openDatabase opens the configured reference database.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	switch cfg.Database.Driver {
	case "sqlite":
		db.SetMaxOpenConns(cfg.Database.SQLite.MaxOpenConns)
	case "postgres":
		db.SetMaxOpenConns(cfg.Database.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.Postgres.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// newRegistry creates the configured run-status registry driver.
func newRegistry(cfg *config.Config) (registry.Registry, error) {
	if cfg.Registry.Driver == "redis" {
		return registry.NewRedis(registry.RedisConfig{
			Addr:     cfg.Registry.Redis.Addr,
			Password: cfg.Registry.Redis.Password,
			DB:       cfg.Registry.Redis.DB,
			PoolSize: cfg.Registry.Redis.PoolSize,
			TTL:      cfg.Registry.TTL,
		})
	}
	return registry.NewMemory(cfg.Registry.TTL), nil
}

// discoverFiles lists the CSV source files of the directory in name order.
func discoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// countRows counts the data rows of the passed files so the progress bar
// has a total. Files that cannot be read are counted as zero and fail
// later with a proper error.
func countRows(files []string) int64 {
	var total int64
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		lines := int64(strings.Count(string(data), "\n"))
		if lines > 0 {
			total += lines - 1 // header
		}
	}
	return total
}
