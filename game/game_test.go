package game

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/scenario"
	"github.com/pthm-cable/skirmish/telemetry"
)

const duel = `
actors:
  - name: knight
    position: {x: 2, y: 2}
    player: true
  - name: rogue
    position: {x: 3, y: 2}
    ignore_stamina: true
objects:
  - name: chest
    kind: chest
    min: {x: 8, y: 8}
    max: {x: 9, y: 9}
  - name: well
    kind: well
    min: {x: 3, y: 6}
    max: {x: 4, y: 7}
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func testOptions(t *testing.T, cfg *config.Config, script string) Options {
	t.Helper()
	opts := Options{
		Config:   cfg,
		Headless: true,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if script != "" {
		s, err := scenario.Parse([]byte(script))
		require.NoError(t, err)
		opts.Script = s
	}
	return opts
}

func newTestGame(t *testing.T, cfg *config.Config, script string) *Game {
	t.Helper()
	g, err := New(testOptions(t, cfg, script))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

// stepUntil steps g until cond holds, failing after max steps.
func stepUntil(t *testing.T, g *Game, max int, cond func() bool) {
	t.Helper()
	for i := 0; i < max; i++ {
		if cond() {
			return
		}
		g.Step()
	}
	require.True(t, cond(), "condition not reached within %d steps", max)
}

func TestNew_LoadsScript(t *testing.T) {
	g := newTestGame(t, testConfig(t), duel)

	require.Len(t, g.Actors(), 2)
	assert.Equal(t, "knight", g.Player().Name)
	assert.False(t, g.Actor("knight").Exec.IgnoreStamina())
	assert.True(t, g.Actor("rogue").Exec.IgnoreStamina())
	assert.Equal(t, r2.Vec{X: 3, Y: 2}, g.Actor("rogue").Walker.Position())
	require.NotNil(t, g.Object("chest"))
	assert.Equal(t, components.KindWell, g.Object("well").Kind())
	assert.Nil(t, g.Actor("nobody"))
}

func TestSpawn_DuplicateNames(t *testing.T) {
	g := newTestGame(t, testConfig(t), duel)

	_, err := g.SpawnActor(ActorSpec{Name: "knight"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = g.SpawnObject("chest", components.KindChest, r2.Box{})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestResolve(t *testing.T) {
	g := newTestGame(t, testConfig(t), duel)

	tests := []struct {
		name string
		at   r2.Vec
		want ClickKind
	}{
		{"other actor", r2.Vec{X: 3.2, Y: 2.1}, ClickActor},
		{"object", r2.Vec{X: 8.5, Y: 8.5}, ClickObject},
		{"ground", r2.Vec{X: 15, Y: 15}, ClickGround},
		{"player itself", r2.Vec{X: 2, Y: 2}, ClickGround},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Resolve(tt.at).Kind)
		})
	}

	got := g.Resolve(r2.Vec{X: 3, Y: 2})
	assert.Same(t, g.Actor("rogue"), got.Actor)

	g.healthMap.Get(g.Actor("rogue").Entity).Value = 0
	assert.Equal(t, ClickGround, g.Resolve(r2.Vec{X: 3, Y: 2}).Kind, "corpses count as ground")
}

func TestClick_IssuesPlayerActions(t *testing.T) {
	g := newTestGame(t, testConfig(t), duel)

	act, err := g.Click(r2.Vec{X: 3, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, actor.KindAttack, act.Kind)

	act, err = g.Click(r2.Vec{X: 8.5, Y: 8.5})
	require.NoError(t, err)
	assert.Equal(t, actor.KindInteract, act.Kind)

	act, err = g.Click(r2.Vec{X: 12, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, actor.KindMove, act.Kind)
	assert.Equal(t, r2.Vec{X: 12, Y: 4}, act.Destination)
	assert.Same(t, act, g.Actor("knight").Exec.Action())

	ls := g.lifetimeTracker.Get("knight")
	assert.Equal(t, 3, ls.Issued)
	assert.Equal(t, 2, ls.Superseded)
}

func TestClick_NoPlayer(t *testing.T) {
	g := newTestGame(t, testConfig(t), "")

	_, err := g.Click(r2.Vec{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestMoveTo_CompletesAndChargesStamina(t *testing.T) {
	g := newTestGame(t, testConfig(t), duel)
	knight := g.Actor("knight")

	_, err := g.MoveTo("knight", r2.Vec{X: 2, Y: 6})
	require.NoError(t, err)

	stepUntil(t, g, 200, func() bool { return knight.LastResult() != "" })

	assert.Equal(t, telemetry.ResultCompleted, knight.LastResult())
	assert.Nil(t, knight.Exec.Action())
	assert.InDelta(t, 6.0, knight.Walker.Position().Y, 0.06)
	// 4 units at 0.2 per unit
	assert.InDelta(t, 9.2, knight.Exec.Stamina(), 0.02)
	cur, max := knight.StaminaView()
	assert.Equal(t, knight.Exec.Stamina(), cur, "observer feeds the HUD view")
	assert.Equal(t, 10.0, max)
}

func TestMoveTo_StaminaOut(t *testing.T) {
	cfg := testConfig(t)
	cfg.Actor.MaxStamina = 1
	cfg.Actor.MoveStaminaCost = 0.5
	g := newTestGame(t, cfg, duel)
	knight := g.Actor("knight")

	_, err := g.MoveTo("knight", r2.Vec{X: 2, Y: 12})
	require.NoError(t, err)

	stepUntil(t, g, 300, func() bool { return knight.LastResult() != "" })

	assert.Equal(t, telemetry.ResultStaminaOut, knight.LastResult())
	assert.LessOrEqual(t, knight.Exec.Stamina(), 0.0)
	assert.Less(t, knight.Walker.Position().Y, 12.0, "stopped before the destination")
	assert.Equal(t, 1, g.lifetimeTracker.Get("knight").StaminaOut)
}

func TestAttack_KillsThenRespawns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Combat.Damage = cfg.Combat.MaxHealth
	cfg.Combat.RespawnDelay = 1
	g := newTestGame(t, cfg, duel)
	knight, rogue := g.Actor("knight"), g.Actor("rogue")

	_, err := g.AttackActor("knight", "rogue")
	require.NoError(t, err)
	_, err = g.AttackActor("rogue", "knight")
	require.NoError(t, err)

	rogueHealth := g.healthMap.Get(rogue.Entity)
	stepUntil(t, g, 120, func() bool { return rogueHealth.Dead })

	// The knight ticks first and strikes before the rogue can
	assert.False(t, g.healthMap.Get(knight.Entity).Dead)
	assert.Equal(t, telemetry.ResultCompleted, knight.LastResult())
	assert.Nil(t, rogue.Exec.Action(), "death drops the action")
	assert.Empty(t, rogue.LastResult(), "a dropped action never calls back")
	assert.Equal(t, components.ClipDeath, g.animMap.Get(rogue.Entity).Clip)

	_, err = g.MoveTo("rogue", r2.Vec{X: 5, Y: 5})
	assert.ErrorIs(t, err, ErrActorDead)

	assert.Equal(t, 1, g.lifetimeTracker.Get("knight").Kills)
	assert.Equal(t, 1, g.lifetimeTracker.Get("rogue").Deaths)
	assert.Equal(t, 1, g.lifetimeTracker.Get("rogue").Superseded)

	stepUntil(t, g, 80, func() bool { return !rogueHealth.Dead })

	assert.Equal(t, cfg.Combat.MaxHealth, rogueHealth.Value)
	assert.Equal(t, r2.Vec{X: 3, Y: 2}, rogue.Walker.Position())
	assert.Equal(t, rogue.Exec.MaxStamina(), rogue.Exec.Stamina())
	assert.Equal(t, components.ClipIdle, g.animMap.Get(rogue.Entity).Clip)
	assert.Equal(t, 1, g.lifetimeTracker.Get("rogue").Respawns)

	_, err = g.MoveTo("rogue", r2.Vec{X: 5, Y: 5})
	assert.NoError(t, err)
}

func TestAttack_NoRespawnWhenDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Combat.Damage = cfg.Combat.MaxHealth
	cfg.Combat.RespawnDelay = 0
	g := newTestGame(t, cfg, duel)
	rogue := g.Actor("rogue")

	_, err := g.AttackActor("knight", "rogue")
	require.NoError(t, err)

	health := g.healthMap.Get(rogue.Entity)
	stepUntil(t, g, 120, func() bool { return health.Dead })
	for i := 0; i < 600; i++ {
		g.Step()
	}
	assert.True(t, health.Dead)
}

func TestWell_RefillsStamina(t *testing.T) {
	cfg := testConfig(t)
	cfg.Actor.MoveStaminaCost = 0.5
	g := newTestGame(t, cfg, duel)
	knight := g.Actor("knight")
	well := g.Object("well")

	_, err := g.MoveTo("knight", r2.Vec{X: 2, Y: 6})
	require.NoError(t, err)
	stepUntil(t, g, 200, func() bool { return knight.Exec.Action() == nil })
	assert.InDelta(t, 8.0, knight.Exec.Stamina(), 0.05)

	_, err = g.InteractWith("knight", "well")
	require.NoError(t, err)
	stepUntil(t, g, 200, func() bool { return well.State().Uses == 1 })

	// Refilled by the well, then charged for the interaction
	assert.Nil(t, knight.Exec.Action())
	assert.InDelta(t, cfg.Actor.MaxStamina-cfg.Actor.AttackStaminaCost, knight.Exec.Stamina(), 1e-9)
}

func TestApply(t *testing.T) {
	g := newTestGame(t, testConfig(t), duel)
	yes := true

	require.NoError(t, g.Apply(scenario.Command{Actor: "knight", IgnoreStamina: &yes}))
	assert.True(t, g.Actor("knight").Exec.IgnoreStamina())

	require.NoError(t, g.Apply(scenario.Command{Actor: "knight", Interact: "chest"}))
	assert.Equal(t, actor.KindInteract, g.Actor("knight").Exec.Action().Kind)

	tests := []struct {
		name string
		cmd  scenario.Command
		want error
	}{
		{"unknown actor", scenario.Command{Actor: "nobody", ResetStamina: true}, scenario.ErrUnknownActor},
		{"unknown target", scenario.Command{Actor: "knight", Attack: "nobody"}, scenario.ErrUnknownActor},
		{"unknown object", scenario.Command{Actor: "knight", Interact: "altar"}, scenario.ErrUnknownObject},
		{"no action", scenario.Command{Actor: "knight"}, scenario.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, g.Apply(tt.cmd), tt.want)
		})
	}
}

func TestStep_AppliesScriptedCommands(t *testing.T) {
	script := duel + `
commands:
  - tick: 2
    actor: rogue
    move: {x: 10, y: 2}
`
	g := newTestGame(t, testConfig(t), script)
	rogue := g.Actor("rogue")

	g.Step()
	g.Step()
	assert.Nil(t, rogue.Exec.Action())

	g.Step()
	require.NotNil(t, rogue.Exec.Action())
	assert.Equal(t, r2.Vec{X: 10, Y: 2}, rogue.Exec.Action().Destination)
}

func TestUpdateHeadless_RespectsPause(t *testing.T) {
	opts := testOptions(t, testConfig(t), duel)
	opts.StepsPerUpdate = 3
	g, err := New(opts)
	require.NoError(t, err)
	defer g.Close()

	g.State().SetPaused(true)
	g.UpdateHeadless()
	assert.Equal(t, int32(0), g.Tick())

	assert.False(t, g.State().TogglePause())
	g.UpdateHeadless()
	assert.Equal(t, int32(3), g.Tick())
	assert.InDelta(t, 3*opts.Config.Physics.DT, g.SimTime(), 1e-12)
}

func TestTelemetry_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(t, testConfig(t), duel+`
commands:
  - tick: 0
    actor: knight
    move: {x: 2, y: 4}
  - tick: 1
    actor: rogue
    move: {x: 9, y: 2}
  - tick: 10
    actor: rogue
    move: {x: 3, y: 9}
`)
	opts.OutputDir = dir
	opts.StatsWindowSec = 1

	var windows []telemetry.WindowStats
	opts.StatsCallback = func(s telemetry.WindowStats) { windows = append(windows, s) }

	g, err := New(opts)
	require.NoError(t, err)
	for i := 0; i < 120; i++ {
		g.Step()
	}
	require.NoError(t, g.Close())
	require.NoError(t, g.Close(), "closing twice is a no-op")

	require.Len(t, windows, 2)
	assert.Equal(t, 3, windows[0].Issued)
	assert.Equal(t, 1, windows[0].Superseded)
	assert.Equal(t, 2, windows[0].Alive)

	for _, name := range []string{"config.yaml", "telemetry.csv", "actions.csv", "perf.csv", "actors.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3, "header and two windows")

	data, err = os.ReadFile(filepath.Join(dir, "actions.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), telemetry.ResultSuperseded)
	assert.Contains(t, string(data), telemetry.ResultCompleted)
}

func TestState(t *testing.T) {
	s := NewState()
	assert.False(t, s.Paused())
	assert.True(t, s.TogglePause())
	s.SetPaused(false)
	assert.False(t, s.Paused())

	assert.False(t, s.Closed())
	s.Close()
	assert.True(t, s.Closed())
}
