package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/skirmish/config"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Every method is nil-safe
	assert.NoError(t, om.WriteTelemetry(WindowStats{}))
	assert.NoError(t, om.WriteActions([]ActionRecord{{}}))
	assert.NoError(t, om.WriteBookmark(Bookmark{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 0))
	assert.NoError(t, om.WriteLifetimes(nil))
	assert.NoError(t, om.WriteConfig(nil))
	assert.Empty(t, om.Dir())
	assert.NoError(t, om.Close())
}

func TestOutputManager_WritesHeadersOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	require.NoError(t, om.WriteTelemetry(WindowStats{WindowEndTick: 10, Completed: 1}))
	require.NoError(t, om.WriteTelemetry(WindowStats{WindowEndTick: 20, Completed: 2}))
	require.NoError(t, om.WriteActions([]ActionRecord{
		{Tick: 3, ActionID: "a", Actor: "knight", Kind: "move", Result: ResultCompleted},
		{Tick: 4, ActionID: "b", Actor: "knight", Kind: "attack", Result: ResultStaminaOut},
	}))
	require.NoError(t, om.WriteActions(nil))
	require.NoError(t, om.WriteBookmark(Bookmark{Type: BookmarkWipe, Tick: 20, Description: "gone"}))
	require.NoError(t, om.WriteLifetimes([]LifetimeStats{{Actor: "knight", Kills: 1}}))
	require.NoError(t, om.Close())

	telemetry := readLines(t, filepath.Join(dir, "telemetry.csv"))
	require.Len(t, telemetry, 3)
	assert.True(t, strings.HasPrefix(telemetry[0], "window_end,sim_time,alive"))
	assert.True(t, strings.HasPrefix(telemetry[2], "20,"))

	actions := readLines(t, filepath.Join(dir, "actions.csv"))
	require.Len(t, actions, 3)
	assert.True(t, strings.HasPrefix(actions[0], "tick,action_id,actor,kind,result"))
	assert.Contains(t, actions[2], "stamina_out")

	bookmarks := readLines(t, filepath.Join(dir, "bookmarks.csv"))
	assert.Equal(t, []string{"type,tick,description", "wipe,20,gone"}, bookmarks)

	actors := readLines(t, filepath.Join(dir, "actors.csv"))
	require.Len(t, actors, 2)
	assert.True(t, strings.HasPrefix(actors[1], "knight,"))
}

func TestOutputManager_WriteConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	om, err := NewOutputManager(t.TempDir())
	require.NoError(t, err)
	defer om.Close()

	require.NoError(t, om.WriteConfig(cfg))
	again, err := config.Load(filepath.Join(om.Dir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cfg.Actor, again.Actor)
}
