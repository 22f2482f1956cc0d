// Package scenario loads scripted setups: the actors and objects to spawn and
// the commands to issue at given ticks.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/skirmish/components"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrUnknownActor is returned when a command names an actor that does not exist.
	ErrUnknownActor = errors.New("scenario: unknown actor")
	// ErrUnknownObject is returned when a command names an object that does not exist.
	ErrUnknownObject = errors.New("scenario: unknown object")
	// ErrInvalid is returned for malformed scripts.
	ErrInvalid = errors.New("scenario: invalid")
)

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec returns the point as a vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Actor declares an actor to spawn.
type Actor struct {
	Name          string `yaml:"name"`
	Position      Point  `yaml:"position"`
	Player        bool   `yaml:"player"`
	IgnoreStamina *bool  `yaml:"ignore_stamina"` // nil keeps the configured default
}

// Object declares an interactable object to spawn.
type Object struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // chest, lever or well
	Min  Point  `yaml:"min"`
	Max  Point  `yaml:"max"`
}

// Box returns the object's footprint.
func (o Object) Box() r2.Box {
	return r2.Box{Min: o.Min.Vec(), Max: o.Max.Vec()}
}

// CommandKind identifies what a command does.
type CommandKind uint8

const (
	CommandMove CommandKind = iota
	CommandAttack
	CommandInteract
	CommandResetStamina
	CommandIgnoreStamina
)

// String returns the command's YAML key.
func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandAttack:
		return "attack"
	case CommandInteract:
		return "interact"
	case CommandResetStamina:
		return "reset_stamina"
	case CommandIgnoreStamina:
		return "ignore_stamina"
	default:
		return "unknown"
	}
}

// Command is one scripted instruction. Exactly one of the action fields is set.
type Command struct {
	Tick  int32  `yaml:"tick"`
	Actor string `yaml:"actor"`

	Move          *Point `yaml:"move,omitempty"`
	Attack        string `yaml:"attack,omitempty"`   // target actor name
	Interact      string `yaml:"interact,omitempty"` // object name
	ResetStamina  bool   `yaml:"reset_stamina,omitempty"`
	IgnoreStamina *bool  `yaml:"ignore_stamina,omitempty"`
}

// Kind returns the command's action. It fails unless exactly one is set.
func (c Command) Kind() (CommandKind, error) {
	var kinds []CommandKind
	if c.Move != nil {
		kinds = append(kinds, CommandMove)
	}
	if c.Attack != "" {
		kinds = append(kinds, CommandAttack)
	}
	if c.Interact != "" {
		kinds = append(kinds, CommandInteract)
	}
	if c.ResetStamina {
		kinds = append(kinds, CommandResetStamina)
	}
	if c.IgnoreStamina != nil {
		kinds = append(kinds, CommandIgnoreStamina)
	}
	if len(kinds) != 1 {
		return 0, fmt.Errorf("%w: tick %d actor %q has %d actions", ErrInvalid, c.Tick, c.Actor, len(kinds))
	}
	return kinds[0], nil
}

// Script is a loaded scenario.
type Script struct {
	Actors   []Actor   `yaml:"actors"`
	Objects  []Object  `yaml:"objects"`
	Commands []Command `yaml:"commands"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in arena scenario.
func Default() *Script {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("scenario: embedded default is invalid: %v", err))
	}
	return s
}

// Parse decodes and validates scenario YAML. Commands are ordered by tick,
// keeping file order within a tick.
func Parse(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Commands, func(i, j int) bool {
		return s.Commands[i].Tick < s.Commands[j].Tick
	})
	return s, nil
}

func (s *Script) validate() error {
	actors := make(map[string]bool, len(s.Actors))
	for _, a := range s.Actors {
		if a.Name == "" {
			return fmt.Errorf("%w: actor without a name", ErrInvalid)
		}
		if actors[a.Name] {
			return fmt.Errorf("%w: duplicate actor %q", ErrInvalid, a.Name)
		}
		actors[a.Name] = true
	}

	objects := make(map[string]bool, len(s.Objects))
	for _, o := range s.Objects {
		if objects[o.Name] {
			return fmt.Errorf("%w: duplicate object %q", ErrInvalid, o.Name)
		}
		if _, ok := components.ParseObjectKind(o.Kind); !ok {
			return fmt.Errorf("%w: object %q has unknown kind %q", ErrInvalid, o.Name, o.Kind)
		}
		objects[o.Name] = true
	}

	for _, c := range s.Commands {
		kind, err := c.Kind()
		if err != nil {
			return err
		}
		if !actors[c.Actor] {
			return fmt.Errorf("%w: %q at tick %d", ErrUnknownActor, c.Actor, c.Tick)
		}
		switch kind {
		case CommandAttack:
			if !actors[c.Attack] {
				return fmt.Errorf("%w: attack target %q at tick %d", ErrUnknownActor, c.Attack, c.Tick)
			}
		case CommandInteract:
			if !objects[c.Interact] {
				return fmt.Errorf("%w: %q at tick %d", ErrUnknownObject, c.Interact, c.Tick)
			}
		}
	}
	return nil
}

// Due returns the commands scheduled for tick, in file order.
func (s *Script) Due(tick int32) []Command {
	lo := sort.Search(len(s.Commands), func(i int) bool { return s.Commands[i].Tick >= tick })
	hi := lo
	for hi < len(s.Commands) && s.Commands[hi].Tick == tick {
		hi++
	}
	return s.Commands[lo:hi]
}

// LastTick returns the tick of the final command, or 0 for an empty script.
func (s *Script) LastTick() int32 {
	if len(s.Commands) == 0 {
		return 0
	}
	return s.Commands[len(s.Commands)-1].Tick
}
