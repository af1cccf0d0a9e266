package plugin

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/observer"
	"github.com/catalogtools/eav-import/internal/refdata"
	"github.com/catalogtools/eav-import/internal/registry"
	"github.com/catalogtools/eav-import/internal/storage"
	"github.com/catalogtools/eav-import/internal/subject"
)

// runSource serves the minimal store setup an end to end run needs.
type runSource struct{}

func (runSource) Categories(context.Context) ([]storage.Category, error) { return nil, nil }
func (runSource) RootCategories(context.Context) ([]storage.RootCategory, error) {
	return nil, nil
}
func (runSource) CategoryVarcharsByEntityIDs(context.Context, []int64) ([]storage.CategoryVarchar, error) {
	return nil, nil
}
func (runSource) Stores(context.Context) ([]storage.Store, error) {
	return []storage.Store{
		{StoreID: 0, Code: "admin"},
		{StoreID: 1, Code: "default", WebsiteID: 1, GroupID: 1},
	}, nil
}
func (runSource) DefaultStores(context.Context) ([]storage.Store, error) {
	return []storage.Store{{StoreID: 1, Code: "default"}}, nil
}
func (runSource) StoreWebsites(context.Context) ([]storage.StoreWebsite, error) { return nil, nil }
func (runSource) TaxClasses(context.Context) ([]storage.TaxClass, error)        { return nil, nil }
func (runSource) LinkTypes(context.Context) ([]storage.LinkType, error)         { return nil, nil }
func (runSource) LinkAttributes(context.Context) ([]storage.LinkAttribute, error) {
	return nil, nil
}
func (runSource) EavEntityTypes(context.Context) ([]storage.EavEntityType, error) {
	return nil, nil
}
func (runSource) EavAttributeSetsByEntityTypeID(context.Context, int64) ([]storage.EavAttributeSet, error) {
	return nil, nil
}
func (runSource) EavAttributesByEntityTypeIDAndAttributeSetName(context.Context, int64, string) ([]storage.EavAttribute, error) {
	return nil, nil
}
func (runSource) EavAttributesByIsUserDefined(context.Context, bool) ([]storage.EavAttribute, error) {
	return nil, nil
}
func (runSource) EavAttributeOptionValues(context.Context) ([]storage.AttributeOptionValue, error) {
	return nil, nil
}
func (runSource) CoreConfigData(context.Context) ([]storage.ConfigEntry, error) {
	return nil, nil
}

// collector is a thread safe persister recording every entity it receives.
type collector struct {
	mu       sync.Mutex
	entities []entity.Entity
}

func (c *collector) Persist(_ context.Context, e entity.Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = append(c.entities, e.Clone())
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcess_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "product-import_20230102-120000_01.csv",
		"sku,name\nABC123,Widget\nDEF456,Gadget\n")

	sink := &collector{}
	reg := registry.NewMemory(0)
	p := New(Options{
		Source:    runSource{},
		Registry:  reg,
		Persister: sink,
		Observers: []subject.Observer{observer.NewStoreView(), observer.NewEntitySeed()},
	})

	result, err := p.Process(context.Background(), []string{file})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Files)
	assert.Equal(t, int64(2), result.Rows)
	assert.Zero(t, result.Skipped)

	require.Len(t, sink.entities, 2)
	first := sink.entities[0]
	assert.Equal(t, entity.StatusCreate, first.Status())
	assert.Equal(t, "ABC123", first["sku"])
	assert.Equal(t, "Widget", first["name"])
	assert.Equal(t, int64(1), first["store_id"])

	status, err := reg.Get(context.Background(), p.RunID())
	require.NoError(t, err)
	assert.Equal(t, registry.StateCompleted, status.State)
	assert.Equal(t, 1, status.FilesDone)
	assert.Equal(t, int64(2), status.RowsProcessed)
}

func TestProcess_SkippedRowsCounted(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "product-import_20230102-120000_01.csv",
		"sku,name\n,NoSKU\nABC123,Widget\n")

	sink := &collector{}
	p := New(Options{
		Source:    runSource{},
		Persister: sink,
		Observers: []subject.Observer{observer.NewEntitySeed()},
	})

	result, err := p.Process(context.Background(), []string{file})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Rows)
	assert.Equal(t, int64(1), result.Skipped)
	assert.Len(t, sink.entities, 1)
}

func TestProcess_MultipleFilesConcurrently(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "product-import_20230102-120000_01.csv", "sku\nA1\nA2\n"),
		writeFile(t, dir, "product-import_20230102-120000_02.csv", "sku\nB1\n"),
		writeFile(t, dir, "product-import_20230102-120000_03.csv", "sku\nC1\nC2\nC3\n"),
	}

	sink := &collector{}
	var rows sync.Map
	p := New(Options{
		Source:    runSource{},
		Persister: sink,
		Observers: []subject.Observer{observer.NewEntitySeed()},
		Workers:   3,
		OnRow:     func(filename string) { rows.Store(filename, true) },
	})

	result, err := p.Process(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Files)
	assert.Equal(t, int64(6), result.Rows)
	assert.Len(t, sink.entities, 6)

	var seen int
	rows.Range(func(any, any) bool { seen++; return true })
	assert.Equal(t, 3, seen)
}

func TestProcess_RowErrorFailsRun(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "product-import_20230102-120000_01.csv",
		"sku,store_view_code\nABC123,french\n")

	reg := registry.NewMemory(0)
	p := New(Options{
		Source:    runSource{},
		Registry:  reg,
		Observers: []subject.Observer{observer.NewStoreView(), observer.NewEntitySeed()},
	})

	_, err := p.Process(context.Background(), []string{file})

	var colErr *subject.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, 2, colErr.Line)

	status, regErr := reg.Get(context.Background(), p.RunID())
	require.NoError(t, regErr)
	assert.Equal(t, registry.StateFailed, status.State)
	assert.NotEmpty(t, status.Error)
}

func TestProcess_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "product-import_20230102-120000_01.csv", "")

	p := New(Options{Source: runSource{}})
	result, err := p.Process(context.Background(), []string{file})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Files)
	assert.Zero(t, result.Rows)
}

func TestProcess_MissingFile(t *testing.T) {
	p := New(Options{Source: runSource{}})
	_, err := p.Process(context.Background(), []string{"/nonexistent/file.csv"})
	require.Error(t, err)
}

// Load failures surface before any file is touched.
type failingSource struct{ runSource }

func (failingSource) Stores(context.Context) ([]storage.Store, error) {
	return nil, assert.AnError
}

func TestProcess_SnapshotLoadFailure(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "product-import_20230102-120000_01.csv", "sku\nA\n")

	reg := registry.NewMemory(0)
	p := New(Options{Source: failingSource{}, Registry: reg})

	_, err := p.Process(context.Background(), []string{file})
	require.ErrorIs(t, err, assert.AnError)

	status, regErr := reg.Get(context.Background(), p.RunID())
	require.NoError(t, regErr)
	assert.Equal(t, registry.StateFailed, status.State)
}

// Guard against accidental interface drift.
var _ refdata.Source = runSource{}
var _ Persister = (*collector)(nil)
