package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ActorPanelData holds what the panel shows about the selected actor.
type ActorPanelData struct {
	Name          string
	Player        bool
	Dead          bool
	Health        float64
	MaxHealth     float64
	Stamina       float64 // as last reported by the stamina observer
	MaxStamina    float64
	IgnoreStamina bool
	Action        string // current action kind, "" when idle
	Started       bool
	Cooldown      float64 // seconds until the next strike may fire
	LastResult    string
	Paused        bool
}

// ActorPanelEvents reports which controls were used this frame.
type ActorPanelEvents struct {
	TogglePause   bool
	ResetStamina  bool
	IgnoreChanged bool
	IgnoreStamina bool // new value when IgnoreChanged
}

// ActorPanel renders the selected actor and its raygui controls.
type ActorPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewActorPanel creates a new actor panel.
func NewActorPanel(x, y, width int32) *ActorPanel {
	return &ActorPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   250,
	}
}

// SetPosition updates the panel position.
func (p *ActorPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Contains reports whether a screen point lies over the panel.
func (p *ActorPanel) Contains(x, y float32) bool {
	return x >= float32(p.x) && x <= float32(p.x+p.width) &&
		y >= float32(p.y) && y <= float32(p.y+p.height)
}

// Draw renders the panel and returns the control events of this frame.
func (p *ActorPanel) Draw(data ActorPanelData) ActorPanelEvents {
	r := p.renderer
	padding := r.Theme.Padding
	contentWidth := p.width - padding*2
	x := p.x + padding

	r.DrawPanel(p.x, p.y, p.width, p.height)
	y := p.y + padding

	title := data.Name
	if data.Player {
		title += " (player)"
	}
	rl.DrawText(title, x, y, 16, rl.White)
	y += 22

	y = r.DrawResourceBar(x, y, "Health", data.Health, data.MaxHealth, false, contentWidth)
	y = r.DrawResourceBar(x, y, "Stamina", data.Stamina, data.MaxStamina, data.IgnoreStamina, contentWidth)
	y = r.DrawSpacer(y, 4)

	y = r.DrawSectionHeader(x, y, "Action")
	action := data.Action
	switch {
	case data.Dead:
		action = "dead"
	case action == "":
		action = "idle"
	case !data.Started:
		action += " (pending)"
	}
	y = r.DrawLabelValue(x, y, "Current", action)
	y = r.DrawLabelValue(x, y, "Cooldown", fmt.Sprintf("%.2fs", data.Cooldown))
	last := data.LastResult
	if last == "" {
		last = "-"
	}
	y = r.DrawLabelValue(x, y, "Last", last)
	y = r.DrawSpacer(y, 6)

	var ev ActorPanelEvents

	ignore := gui.CheckBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16},
		"Ignore stamina",
		data.IgnoreStamina,
	)
	if ignore != data.IgnoreStamina {
		ev.IgnoreChanged = true
		ev.IgnoreStamina = ignore
	}
	y += 26

	half := float32(contentWidth-10) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 26}, "Reset stamina") {
		ev.ResetStamina = true
	}
	pauseLabel := "Pause"
	if data.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 10, Y: float32(y), Width: half, Height: 26}, pauseLabel) {
		ev.TogglePause = true
	}

	return ev
}
