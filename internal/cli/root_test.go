package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sandeepkv93/routined/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	dir   string
	clock *clockwork.FakeClock
}

func newHarness(t *testing.T) harness {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"ROUTINED_CONFIG", "ROUTINED_DB_PATH", "ROUTINED_STATE_FILE", "ROUTINED_LOG_FILE", "ROUTINED_IMPORT_FORMAT"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("ROUTINED_DATA_DIR", dir)
	t.Setenv("ROUTINED_STORAGE_DRIVER", "file")
	return harness{dir: dir, clock: clockwork.NewFakeClock()}
}

func (h harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(Deps{Clock: h.clock}, "test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env-file", filepath.Join(h.dir, "none.env")))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func (h harness) write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNoArgsLaunchesTUI(t *testing.T) {
	h := newHarness(t)
	original := launchTUIFunc
	defer func() { launchTUIFunc = original }()

	called := false
	launchTUIFunc = func(_ context.Context, app *App) error {
		called = true
		assert.NotEmpty(t, app.Store.State().Routines, "defaults seeded")
		return nil
	}
	_, _, err := h.run(t)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestListShowsDefaultsOnFirstRun(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning stretch")
	assert.Contains(t, out, "07:30")
}

func TestImportThenTimePassesWhileClosed(t *testing.T) {
	h := newHarness(t)
	path := h.write(t, "routines.yaml", `
routines:
  - id: walk
    routineName: Walk
    duration: "00:10"
    timeLeft: "00:05"
    isTracking: true
  - id: tea
    routineName: Tea
`)
	out, _, err := h.run(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 routines")

	h.clock.Advance(2 * time.Minute)
	out, _, err = h.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "00:03:00")
	assert.Contains(t, out, "tracking")

	h.clock.Advance(10 * time.Minute)
	out, _, err = h.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "finished")
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	h := newHarness(t)
	path := h.write(t, "bad.json", `{"routines":[{"id":"a","routineName":"A","duration":"later"}]}`)
	_, errOut, err := h.run(t, "import", path)
	require.ErrorIs(t, err, transfer.ErrSchema)
	assert.Contains(t, errOut, "routines[0].duration")

	out, _, err := h.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning stretch", "state untouched")
}

func TestResetAndExport(t *testing.T) {
	h := newHarness(t)
	path := h.write(t, "in.json", `{"routines":[{"id":"a","routineName":"Yoga","duration":"00:20:00","isDone":true}]}`)
	_, _, err := h.run(t, "import", path)
	require.NoError(t, err)

	out, _, err := h.run(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "reset 1 routines")

	dest := filepath.Join(h.dir, "exports", "out.yaml")
	_, _, err = h.run(t, "export", dest)
	require.NoError(t, err)

	got, err := transfer.ReadFile(dest, transfer.FormatJSON)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Yoga", got[0].Name)
	assert.False(t, got[0].IsDone)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "export", filepath.Join(h.dir, "out"), "--format", "csv")
	assert.Error(t, err)
}
