package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwarden/calmate/internal/calendar"
)

func TestLoadJSON(t *testing.T) {
	events, err := Load(filepath.Join("testdata", "events.json"))
	require.NoError(t, err)
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, calendar.DateKey("2024-03-05"), first.Date)
	assert.Equal(t, "Weekly planning", first.Description)
	assert.Equal(t, calendar.Clock(10, 0, calendar.AM), first.Start)
	assert.True(t, first.Static)

	// numeric and string fields decode the same way
	assert.Equal(t, calendar.Clock(12, 0, calendar.PM), events[1].Start)
	assert.Equal(t, calendar.Clock(4, 15, calendar.PM), events[2].End)
}

func TestLoadYAML(t *testing.T) {
	events, err := Load(filepath.Join("testdata", "events.yaml"))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, calendar.DateKey("2024-03-05"), events[0].Date)
	assert.Equal(t, calendar.Clock(9, 15, calendar.AM), events[0].End)
	assert.Equal(t, calendar.Clock(2, 0, calendar.PM), events[1].Start)
	assert.False(t, events[1].Static)
}

func TestDecodeShapes(t *testing.T) {
	const item = `{"id": 4, "date": "2024-01-01", "title": "x", "color": "#000000",
		"startTime": {"hours": 1, "minutes": 0, "period": "AM"},
		"endTime": {"hours": 2, "minutes": 0, "period": "AM"}}`

	list, err := DecodeJSON([]byte("[" + item + "]"))
	require.NoError(t, err)
	keyed, err := DecodeJSON([]byte(`{"events": [` + item + `]}`))
	require.NoError(t, err)
	assert.Equal(t, list, keyed)

	empty, err := DecodeJSON([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	empty, err = DecodeYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = DecodeYAML([]byte("just a string"))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"startTime": {"hours": "ten"}}]`), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadedSeedIsStatic(t *testing.T) {
	events, err := Load(filepath.Join("testdata", "events.yaml"))
	require.NoError(t, err)

	store := calendar.NewStore(calendar.WithIDGenerator(calendar.NewCounter(1)))
	require.Equal(t, 2, store.LoadSeed(events))

	for _, e := range store.Events() {
		assert.True(t, e.Static)
		assert.True(t, store.IsStatic(e))
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events: []\n"), 0o644))

	changed := make(chan string, 4)
	w, err := NewWatcher(path, func(p string) { changed <- p })
	require.NoError(t, err)
	defer w.Close()

	// a sibling file is ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("events: []\n# edited\n"), 0o644))

	select {
	case got := <-changed:
		assert.Equal(t, w.Path(), got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}
