// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/skirmish/actor"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Actor     ActorConfig     `yaml:"actor"`
	Movement  MovementConfig  `yaml:"movement"`
	Combat    CombatConfig    `yaml:"combat"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions in world units.
// The camera maps them onto the screen.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds simulation timing.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// ActorConfig holds the action executor constants. Every field can be
// overridden from the environment.
type ActorConfig struct {
	MoveStaminaCost   float64 `yaml:"move_stamina_cost"   env:"SKIRMISH_MOVE_STAMINA_COST"`   // stamina per world unit moved
	AttackStaminaCost float64 `yaml:"attack_stamina_cost" env:"SKIRMISH_ATTACK_STAMINA_COST"` // stamina per attack or interaction
	DistanceToAttack  float64 `yaml:"distance_to_attack"  env:"SKIRMISH_DISTANCE_TO_ATTACK"`  // reach in world units
	MaxStamina        float64 `yaml:"max_stamina"         env:"SKIRMISH_MAX_STAMINA"`
	AttackDelay       float64 `yaml:"attack_delay"        env:"SKIRMISH_ATTACK_DELAY"`   // seconds between strikes
	IgnoreStamina     bool    `yaml:"ignore_stamina"      env:"SKIRMISH_IGNORE_STAMINA"` // initial bypass mode
}

// MovementConfig holds walker parameters.
type MovementConfig struct {
	Speed        float64 `yaml:"speed"`         // world units per second
	ArriveRadius float64 `yaml:"arrive_radius"` // destination counts as reached within this distance
}

// CombatConfig holds melee and lifecycle parameters.
type CombatConfig struct {
	Damage         float64 `yaml:"damage"`
	MaxHealth      float64 `yaml:"max_health"`
	BodyRadius     float64 `yaml:"body_radius"`
	RespawnDelay   float64 `yaml:"respawn_delay"`   // seconds; 0 disables respawn
	DeathAnimation float64 `yaml:"death_animation"` // seconds the death clip plays
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64
	WorldH       float64
	TicksPerSec  float64
	StatsWindowT int32 // Telemetry.StatsWindow in ticks
}

// ActorParams converts the actor section into executor parameters.
func (c *Config) ActorParams() actor.Params {
	return actor.Params{
		MoveStaminaCost:   c.Actor.MoveStaminaCost,
		AttackStaminaCost: c.Actor.AttackStaminaCost,
		DistanceToAttack:  c.Actor.DistanceToAttack,
		MaxStamina:        c.Actor.MaxStamina,
		AttackDelay:       c.Actor.AttackDelay,
		IgnoreStamina:     c.Actor.IgnoreStamina,
	}
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies SKIRMISH_* environment overrides.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Unset variables leave the YAML values in place
	if err := env.Parse(&cfg.Actor); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the executor and simulation cannot run with.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"physics.dt", c.Physics.DT},
		{"actor.move_stamina_cost", c.Actor.MoveStaminaCost},
		{"actor.attack_stamina_cost", c.Actor.AttackStaminaCost},
		{"actor.distance_to_attack", c.Actor.DistanceToAttack},
		{"actor.max_stamina", c.Actor.MaxStamina},
		{"actor.attack_delay", c.Actor.AttackDelay},
		{"movement.speed", c.Movement.Speed},
		{"movement.arrive_radius", c.Movement.ArriveRadius},
		{"combat.max_health", c.Combat.MaxHealth},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}
	if c.Combat.Damage < 0 || c.Combat.RespawnDelay < 0 || c.Combat.DeathAnimation < 0 {
		return fmt.Errorf("%w: combat values must not be negative", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW = c.World.Width
	c.Derived.WorldH = c.World.Height

	c.Derived.TicksPerSec = 1 / c.Physics.DT
	c.Derived.StatsWindowT = int32(c.Telemetry.StatsWindow / c.Physics.DT)
	if c.Derived.StatsWindowT < 1 {
		c.Derived.StatsWindowT = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
