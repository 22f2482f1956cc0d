// Package game hosts the simulation: it owns the ECS world, one action
// executor per actor, the world objects, the scenario script and the
// telemetry pipeline, and translates player input into actions.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/camera"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/scenario"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
	"github.com/pthm-cable/skirmish/ui"
)

var (
	// ErrActorDead is returned when a command targets an actor that is dead.
	ErrActorDead = errors.New("game: actor is dead")
	// ErrNoPlayer is returned for player input when no actor is player-controlled.
	ErrNoPlayer = errors.New("game: no player actor")
	// ErrDuplicateName is returned when spawning a second actor or object
	// under an existing name.
	ErrDuplicateName = errors.New("game: duplicate name")
)

// Options configures game initialization.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	State          *State         // nil creates a fresh state
	Script         *scenario.Script
	Logger         *slog.Logger // nil uses slog.Default()
	LogStats       bool         // output stats via slog
	StatsWindowSec float64      // 0 uses config
	OutputDir      string       // empty disables CSV output
	StepsPerUpdate int          // simulation ticks per update call (default 1)
	Headless       bool         // skip camera and HUD setup

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	state *State
	log   *slog.Logger
	world *ecs.World
	clock actor.Clock

	// Entity mappers
	actorMapper *ecs.Map6[
		components.Position,
		components.Body,
		components.Motion,
		components.Health,
		components.Identity,
		components.Animation,
	]
	objectMapper *ecs.Map2[components.Footprint, components.ObjectState]

	// Component mappers for lookups
	posMap    *ecs.Map[components.Position]
	bodyMap   *ecs.Map[components.Body]
	motionMap *ecs.Map[components.Motion]
	healthMap *ecs.Map[components.Health]
	identMap  *ecs.Map[components.Identity]
	animMap   *ecs.Map[components.Animation]
	footMap   *ecs.Map[components.Footprint]

	// Systems
	movement  *systems.MovementSystem
	animation *systems.AnimationSystem
	registry  *systems.SystemRegistry

	// Actors and objects in spawn order
	actors        []*Actor
	actorsByName  map[string]*Actor
	objects       []*systems.WorldObject
	objectsByName map[string]*systems.WorldObject

	script *scenario.Script

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	pendingRecords   []telemetry.ActionRecord
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// Presentation
	headless       bool
	stepsPerUpdate int
	camera         *camera.Camera
	hud            *ui.HUD
	actorPanel     *ui.ActorPanel
	perfPanel      *ui.PerfPanel
	controlsPanel  *ui.ControlsPanel
	overlays       *ui.OverlayRegistry
	selected       *Actor
	lastErr        string
	screenW        float64
	screenH        float64

	tick int32
}

// New creates a game, spawns the script's actors and objects and opens the
// output directory.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	state := opts.State
	if state == nil {
		state = NewState()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		state: state,
		log:   logger,
		world: world,
		actorMapper: ecs.NewMap6[
			components.Position,
			components.Body,
			components.Motion,
			components.Health,
			components.Identity,
			components.Animation,
		](world),
		objectMapper: ecs.NewMap2[components.Footprint, components.ObjectState](world),
		posMap:       ecs.NewMap[components.Position](world),
		bodyMap:      ecs.NewMap[components.Body](world),
		motionMap:    ecs.NewMap[components.Motion](world),
		healthMap:    ecs.NewMap[components.Health](world),
		identMap:     ecs.NewMap[components.Identity](world),
		animMap:      ecs.NewMap[components.Animation](world),
		footMap:      ecs.NewMap[components.Footprint](world),

		movement: systems.NewMovementSystem(
			world,
			systems.Bounds{Width: cfg.Derived.WorldW, Height: cfg.Derived.WorldH},
			cfg.Movement.Speed,
			cfg.Movement.ArriveRadius,
		),
		animation: systems.NewAnimationSystem(world),
		registry:  systems.NewSystemRegistry(),

		actorsByName:  make(map[string]*Actor),
		objectsByName: make(map[string]*systems.WorldObject),

		collector:        telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(5),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,

		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenW:        float64(cfg.Screen.Width),
		screenH:        float64(cfg.Screen.Height),
	}
	g.clock = actor.ClockFunc(g.SimTime)

	if !opts.Headless {
		g.camera = camera.New(g.screenW, g.screenH, cfg.Derived.WorldW, cfg.Derived.WorldH)
		g.hud = ui.NewHUD()
		g.actorPanel = ui.NewActorPanel(int32(g.screenW)-270, 10, 260)
		g.perfPanel = ui.NewPerfPanel(10, 110)
		g.overlays = ui.NewOverlayRegistry()
		g.controlsPanel = ui.NewControlsPanel(10, int32(g.screenH)-170, 200)
	}

	if opts.Script != nil {
		if err := g.Load(opts.Script); err != nil {
			return nil, err
		}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return g, nil
}

// Load spawns a script's actors and objects and schedules its commands.
func (g *Game) Load(s *scenario.Script) error {
	for _, o := range s.Objects {
		kind, ok := components.ParseObjectKind(o.Kind)
		if !ok {
			return fmt.Errorf("%w: object %q has unknown kind %q", scenario.ErrInvalid, o.Name, o.Kind)
		}
		if _, err := g.SpawnObject(o.Name, kind, o.Box()); err != nil {
			return err
		}
	}
	for _, a := range s.Actors {
		ignore := g.cfg.Actor.IgnoreStamina
		if a.IgnoreStamina != nil {
			ignore = *a.IgnoreStamina
		}
		if _, err := g.SpawnActor(ActorSpec{
			Name:          a.Name,
			Position:      a.Position.Vec(),
			Player:        a.Player,
			IgnoreStamina: ignore,
		}); err != nil {
			return err
		}
	}
	g.script = s
	return nil
}

// Close writes per-actor summaries and pending records and closes output
// files. Later calls do nothing.
func (g *Game) Close() error {
	if g.state.Closed() {
		return nil
	}
	g.state.Close()
	if g.outputManager == nil {
		return nil
	}
	g.flushActionRecords()
	if err := g.outputManager.WriteLifetimes(g.lifetimeTracker.All()); err != nil {
		g.log.Error("failed to write lifetimes", "error", err)
	}
	return g.outputManager.Close()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulation time in seconds. It is the executors' clock.
func (g *Game) SimTime() float64 {
	return float64(g.tick) * g.cfg.Physics.DT
}

// State returns the shared run state.
func (g *Game) State() *State {
	return g.state
}

// Actor returns the actor with the given name, or nil.
func (g *Game) Actor(name string) *Actor {
	return g.actorsByName[name]
}

// Actors returns all actors in spawn order.
func (g *Game) Actors() []*Actor {
	return g.actors
}

// Object returns the object with the given name, or nil.
func (g *Game) Object(name string) *systems.WorldObject {
	return g.objectsByName[name]
}

// Player returns the first player-controlled actor, or nil.
func (g *Game) Player() *Actor {
	for _, a := range g.actors {
		if a.Player {
			return a
		}
	}
	return nil
}

// Selected returns the actor shown in the HUD panel.
func (g *Game) Selected() *Actor {
	if g.selected != nil {
		return g.selected
	}
	return g.Player()
}

// Select sets the actor shown in the HUD panel. nil falls back to the player.
func (g *Game) Select(a *Actor) {
	g.selected = a
}

// Lifetimes returns per-actor summaries sorted by name.
func (g *Game) Lifetimes() []telemetry.LifetimeStats {
	return g.lifetimeTracker.All()
}

// Update handles input, then runs StepsPerUpdate simulation steps unless paused.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()
	g.runSteps()
}

// UpdateHeadless runs StepsPerUpdate simulation steps unless paused.
func (g *Game) UpdateHeadless() {
	g.runSteps()
}

func (g *Game) runSteps() {
	if g.state.Paused() {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}
