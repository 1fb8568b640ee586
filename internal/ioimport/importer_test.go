package ioimport_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/placenames/pndb/internal/ioimport"
	"github.com/placenames/pndb/internal/ioprogress"
	"github.com/placenames/pndb/pkg/config"
	"github.com/placenames/pndb/pkg/gazetteer"
	"github.com/placenames/pndb/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

// memStore is an in-memory store.Store with switchable failures.
type memStore struct {
	ensureUserCalls   int
	ensureCollCalls   int
	ensureFolderCalls int

	items       []*store.Item
	createCalls int
	meta        map[string]map[string]any
	geo         map[string]*geom.Point

	// failCreateAt fails the n-th CreateItem call (1-based).
	// failMetaFor fails SetItemMetadata for an item name.
	failCreateAt int
	failMetaFor  string
}

func newMemStore() *memStore {
	return &memStore{
		meta: make(map[string]map[string]any),
		geo:  make(map[string]*geom.Point),
	}
}

func (m *memStore) EnsureUser(
	_ context.Context, login string,
) (*store.User, error) {
	m.ensureUserCalls++
	return &store.User{ID: uuid.New(), Login: login}, nil
}

func (m *memStore) EnsureCollection(
	_ context.Context, name, description string, creator *store.User,
) (*store.Collection, error) {
	m.ensureCollCalls++
	return &store.Collection{
		ID: uuid.New(), Name: name,
		Description: description, CreatorID: creator.ID,
	}, nil
}

func (m *memStore) EnsureFolder(
	_ context.Context,
	coll *store.Collection,
	name, description string,
	creator *store.User,
) (*store.Folder, error) {
	m.ensureFolderCalls++
	return &store.Folder{
		ID: uuid.New(), CollectionID: coll.ID, Name: name,
		Description: description, CreatorID: creator.ID,
	}, nil
}

func (m *memStore) CreateItem(
	_ context.Context,
	folder *store.Folder,
	name, description string,
	creator *store.User,
) (*store.Item, error) {
	m.createCalls++
	if m.failCreateAt > 0 && m.createCalls == m.failCreateAt {
		return nil, errors.New("create item failed")
	}
	item := &store.Item{
		ID: uuid.New(), FolderID: folder.ID, Name: name,
		Description: description, CreatorID: creator.ID,
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *memStore) SetItemMetadata(
	_ context.Context, item *store.Item, meta map[string]any,
) error {
	if m.failMetaFor != "" && item.Name == m.failMetaFor {
		return errors.New("metadata write failed")
	}
	m.meta[item.Name] = meta
	return nil
}

func (m *memStore) SetItemGeometry(
	_ context.Context, item *store.Item, point *geom.Point,
) error {
	m.geo[item.Name] = point
	return nil
}

func (m *memStore) Close() error { return nil }

// tsvRow builds a minimal valid gazetteer row.
func tsvRow(id int, name string) string {
	fields := make([]string, 19)
	fields[0] = fmt.Sprintf("%d", id)
	fields[1] = name
	fields[2] = name
	fields[4] = "10.5"
	fields[5] = "-20.25"
	fields[17] = "UTC"
	return strings.Join(fields, "\t")
}

func writeDump(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.txt")
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, chunkSize int) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptImportChunkSize(chunkSize),
	})
	return cfg
}

func quietReporter() *ioprogress.Reporter {
	return ioprogress.NewWithWriter(io.Discard, false)
}

func TestRun(t *testing.T) {
	path := writeDump(t,
		tsvRow(1, "one"),
		tsvRow(2, "two"),
		tsvRow(3, "three"),
	)
	st := newMemStore()
	imp := ioimport.New(
		testConfig(t, 2), st, quietReporter(), ioimport.OptFile(path),
	)

	err := imp.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, st.items, 3)
	assert.Equal(t, "one", st.items[0].Name)
	assert.Equal(t, "three", st.items[2].Name)

	t.Run("metadata and geometry are stored", func(t *testing.T) {
		meta := st.meta["two"]
		require.NotNil(t, meta)
		assert.Equal(t, uint32(2), meta["geonameid"])

		point := st.geo["two"]
		require.NotNil(t, point)
		assert.Equal(t, -20.25, point.X())
		assert.Equal(t, 10.5, point.Y())
	})

	t.Run("destination resolved once", func(t *testing.T) {
		assert.Equal(t, 1, st.ensureUserCalls)
		assert.Equal(t, 1, st.ensureCollCalls)
		assert.Equal(t, 1, st.ensureFolderCalls)
	})
}

func TestRunAbandonsBatchOnCreateFailure(t *testing.T) {
	path := writeDump(t,
		tsvRow(1, "one"),
		tsvRow(2, "two"),
		tsvRow(3, "three"),
		tsvRow(4, "four"),
	)
	st := newMemStore()
	// second item of the first batch fails
	st.failCreateAt = 2
	imp := ioimport.New(
		testConfig(t, 2), st, quietReporter(), ioimport.OptFile(path),
	)

	// a failed item creation is a diagnostic, not a fatal error
	err := imp.Run(context.Background())
	require.NoError(t, err)

	// "two" is lost with the rest of its batch; the next batch
	// proceeds normally
	require.Len(t, st.items, 3)
	assert.Equal(t, "one", st.items[0].Name)
	assert.Equal(t, "three", st.items[1].Name)
	assert.Equal(t, "four", st.items[2].Name)
}

func TestRunContinuesAfterMetadataFailure(t *testing.T) {
	path := writeDump(t,
		tsvRow(1, "one"),
		tsvRow(2, "two"),
		tsvRow(3, "three"),
	)
	st := newMemStore()
	st.failMetaFor = "two"
	imp := ioimport.New(
		testConfig(t, 10), st, quietReporter(), ioimport.OptFile(path),
	)

	err := imp.Run(context.Background())
	require.NoError(t, err)

	// the item exists without metadata or geometry and the batch
	// keeps going
	require.Len(t, st.items, 3)
	_, hasMeta := st.meta["two"]
	assert.False(t, hasMeta)
	_, hasGeo := st.geo["two"]
	assert.False(t, hasGeo)
	assert.NotNil(t, st.meta["three"])
}

func TestRunSkipsRecordsWithoutCoordinates(t *testing.T) {
	fields := strings.Split(tsvRow(2, "nowhere"), "\t")
	fields[4] = ""
	fields[5] = ""
	noCoords := strings.Join(fields, "\t")
	path := writeDump(t,
		tsvRow(1, "one"),
		noCoords,
		tsvRow(3, "three"),
	)
	st := newMemStore()
	imp := ioimport.New(
		testConfig(t, 10), st, quietReporter(), ioimport.OptFile(path),
	)

	err := imp.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, st.items, 2)
	assert.Equal(t, "one", st.items[0].Name)
	assert.Equal(t, "three", st.items[1].Name)
}

func TestRunCancelled(t *testing.T) {
	path := writeDump(t, tsvRow(1, "one"))
	st := newMemStore()
	imp := ioimport.New(
		testConfig(t, 10), st, quietReporter(), ioimport.OptFile(path),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := imp.Run(ctx)
	require.Error(t, err)
	assert.Empty(t, st.items)
}

func TestRunCustomBatchHandler(t *testing.T) {
	path := writeDump(t,
		tsvRow(1, "one"),
		tsvRow(2, "two"),
	)
	st := newMemStore()

	var batches int
	var names []string
	imp := ioimport.New(
		testConfig(t, 1), st, quietReporter(),
		ioimport.OptFile(path),
		ioimport.OptBatchHandler(func(
			_ context.Context,
			feats []gazetteer.Feature,
			_ *ioimport.Destination,
		) error {
			batches++
			for i := range feats {
				names = append(names, feats[i].Name())
			}
			return nil
		}),
	)

	err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, batches)
	assert.Equal(t, []string{"one", "two"}, names)
	// the custom handler bypasses the store sink
	assert.Empty(t, st.items)
}
