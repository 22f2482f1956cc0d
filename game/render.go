package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/ui"
)

var (
	colorBackground = rl.Color{R: 18, G: 22, B: 26, A: 255}
	colorGround     = rl.Color{R: 34, G: 40, B: 36, A: 255}
	colorPlayer     = rl.Color{R: 90, G: 160, B: 230, A: 255}
	colorActor      = rl.Color{R: 220, G: 110, B: 90, A: 255}
	colorCorpse     = rl.Color{R: 110, G: 110, B: 110, A: 255}
)

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	g.drawGround()
	g.drawObjects()
	g.drawOverlays()
	g.drawActors()
	g.drawUI()

	rl.EndDrawing()
}

// drawGround fills the playable area.
func (g *Game) drawGround() {
	x0, y0 := g.camera.WorldToScreen(r2.Vec{})
	x1, y1 := g.camera.WorldToScreen(r2.Vec{X: g.cfg.Derived.WorldW, Y: g.cfg.Derived.WorldH})
	rl.DrawRectangleRec(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, colorGround)
}

// drawObjects renders object footprints colored by kind and state.
func (g *Game) drawObjects() {
	for _, o := range g.objects {
		box := g.footMap.Get(o.Entity()).Box
		x0, y0 := g.camera.WorldToScreen(box.Min)
		x1, y1 := g.camera.WorldToScreen(box.Max)
		rect := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}

		rl.DrawRectangleRec(rect, objectColor(o.State()))
		rl.DrawRectangleLinesEx(rect, 1, rl.LightGray)
		if g.overlays.IsEnabled(ui.OverlayNames) {
			rl.DrawText(o.Name(), int32(x0), int32(y1)+2, 12, rl.LightGray)
		}
	}
}

func objectColor(s *components.ObjectState) rl.Color {
	switch s.Kind {
	case components.KindChest:
		if s.Open {
			return rl.Color{R: 120, G: 90, B: 50, A: 255}
		}
		return rl.Color{R: 200, G: 150, B: 60, A: 255}
	case components.KindLever:
		if s.On {
			return rl.Color{R: 120, G: 200, B: 120, A: 255}
		}
		return rl.Color{R: 90, G: 110, B: 90, A: 255}
	case components.KindWell:
		return rl.Color{R: 70, G: 120, B: 200, A: 255}
	default:
		return rl.Gray
	}
}

// drawActors renders actors as circles. Corpses fade out with the death clip.
func (g *Game) drawActors() {
	selected := g.Selected()

	for _, a := range g.actors {
		pos := a.Walker.Position()
		radius := g.bodyMap.Get(a.Entity).Radius
		if !g.camera.IsVisible(pos, radius) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(pos)
		center := rl.Vector2{X: sx, Y: sy}
		r := g.camera.Scale(radius)

		health := g.healthMap.Get(a.Entity)
		color := colorActor
		if a.Player {
			color = colorPlayer
		}
		if health.Dead {
			color = colorCorpse
			color.A = uint8(255 - 175*g.animMap.Get(a.Entity).Progress())
		}
		rl.DrawCircleV(center, r, color)

		if a == selected {
			rl.DrawCircleLines(int32(sx), int32(sy), r+3, rl.Yellow)
		}
		if g.overlays.IsEnabled(ui.OverlayNames) {
			rl.DrawText(a.Name, int32(sx-r), int32(sy+r)+2, 12, rl.White)
		}
		if g.overlays.IsEnabled(ui.OverlayHealthBars) && !health.Dead {
			w := 2 * r
			rl.DrawRectangleRec(rl.Rectangle{X: sx - r, Y: sy - r - 7, Width: w, Height: 4}, rl.DarkGray)
			rl.DrawRectangleRec(rl.Rectangle{X: sx - r, Y: sy - r - 7, Width: w * float32(health.Fraction()), Height: 4}, rl.Green)
		}
	}
}

// drawOverlays renders the executor debug overlays.
func (g *Game) drawOverlays() {
	if g.overlays.IsEnabled(ui.OverlayReach) {
		if a := g.Selected(); a != nil && !a.Ref.IsDead() {
			sx, sy := g.camera.WorldToScreen(a.Walker.Position())
			rl.DrawCircleLines(int32(sx), int32(sy), g.camera.Scale(g.cfg.Actor.DistanceToAttack), rl.Color{R: 255, G: 255, B: 255, A: 90})
		}
	}

	for _, a := range g.actors {
		if a.Ref.IsDead() {
			continue
		}
		from := a.Walker.Position()

		if g.overlays.IsEnabled(ui.OverlayDestinations) {
			if m := g.motionMap.Get(a.Entity); m.Moving {
				g.drawWorldLine(from, m.Destination, rl.Color{R: 200, G: 200, B: 200, A: 120})
			}
		}
		if g.overlays.IsEnabled(ui.OverlayTargets) {
			if to, ok := actionPoint(a.Exec.Action(), from); ok {
				g.drawWorldLine(from, to, rl.Color{R: 240, G: 80, B: 80, A: 160})
			}
		}
	}
}

// actionPoint returns where the action is aimed, for attacks and interactions.
func actionPoint(act *actor.Action, from r2.Vec) (r2.Vec, bool) {
	if act == nil {
		return r2.Vec{}, false
	}
	switch act.Kind {
	case actor.KindAttack:
		return act.Target.Position(), true
	case actor.KindInteract:
		return act.Interactable.ClosestPoint(from), true
	default:
		return r2.Vec{}, false
	}
}

func (g *Game) drawWorldLine(from, to r2.Vec, color rl.Color) {
	x0, y0 := g.camera.WorldToScreen(from)
	x1, y1 := g.camera.WorldToScreen(to)
	rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, 1.5, color)
}

// drawUI renders the HUD and panels and applies panel control events.
func (g *Game) drawUI() {
	alive, dead := 0, 0
	for _, a := range g.actors {
		if g.healthMap.Get(a.Entity).Dead {
			dead++
		} else {
			alive++
		}
	}

	g.hud.Draw(ui.HUDData{
		Title:          "Skirmish",
		Tick:           g.tick,
		SimTime:        g.SimTime(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.state.Paused(),
		Alive:          alive,
		Dead:           dead,
		Message:        g.lastErr,
	})

	if a := g.Selected(); a != nil {
		ev := g.actorPanel.Draw(g.panelData(a))
		g.applyPanelEvents(a, ev)
	}

	g.perfPanel.Draw(g.perfCollector.Stats(), g.registry)
	g.controlsPanel.Draw(g.overlays)
	g.hud.DrawControls(int32(g.screenH), "LMB: act | RMB: select | Space/P: pause | </>: speed | Tab: overlays | F3: perf | Home: camera")
}

// panelData collects the actor panel view of a.
func (g *Game) panelData(a *Actor) ui.ActorPanelData {
	health := g.healthMap.Get(a.Entity)
	stamina, maxStamina := a.StaminaView()

	data := ui.ActorPanelData{
		Name:          a.Name,
		Player:        a.Player,
		Dead:          health.Dead,
		Health:        health.Value,
		MaxHealth:     health.Max,
		Stamina:       stamina,
		MaxStamina:    maxStamina,
		IgnoreStamina: a.Exec.IgnoreStamina(),
		LastResult:    a.LastResult(),
		Paused:        g.state.Paused(),
	}
	if act := a.Exec.Action(); act != nil {
		data.Action = act.Kind.String()
		data.Started = act.Started()
	}
	if remaining := a.Exec.CooldownUntil() - g.SimTime(); remaining > 0 {
		data.Cooldown = remaining
	}
	return data
}

func (g *Game) applyPanelEvents(a *Actor, ev ui.ActorPanelEvents) {
	if ev.TogglePause {
		g.state.TogglePause()
	}
	if ev.ResetStamina {
		a.Exec.ResetStamina()
	}
	if ev.IgnoreChanged {
		if err := g.SetIgnoreStamina(a.Name, ev.IgnoreStamina); err != nil {
			g.log.Error("failed to toggle stamina gating", "error", err)
		}
	}
}
