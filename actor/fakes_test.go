package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type fakeClock struct{ t float64 }

func (c *fakeClock) Now() float64 { return c.t }

type fakeSelf struct{ pos r2.Vec }

func (s *fakeSelf) Position() r2.Vec { return s.pos }

type fakeMover struct {
	pending  float64
	reached  bool
	moves    []r2.Vec
	stops    int
	resets   int
	resetSum float64
}

func (m *fakeMover) travel(d float64) { m.pending += d }

func (m *fakeMover) GetAndResetDeltaDistance() float64 {
	d := m.pending
	m.pending = 0
	m.resets++
	m.resetSum += d
	return d
}

func (m *fakeMover) MoveToward(dest r2.Vec) {
	m.moves = append(m.moves, dest)
	m.reached = false
}

func (m *fakeMover) Stop() { m.stops++ }

func (m *fakeMover) HasReachedDestination() bool { return m.reached }

type fakeTarget struct {
	pos  r2.Vec
	dead bool
}

func (t *fakeTarget) Position() r2.Vec { return t.pos }
func (t *fakeTarget) IsDead() bool     { return t.dead }

type fakeAttacker struct{ hits []Target }

func (a *fakeAttacker) Attack(t Target) { a.hits = append(a.hits, t) }

type fakeObject struct {
	point r2.Vec
	users []Self
}

func (o *fakeObject) ClosestPoint(r2.Vec) r2.Vec { return o.point }
func (o *fakeObject) Interact(by Self)          { o.users = append(o.users, by) }

type fakeAnimator struct{ deaths int }

func (a *fakeAnimator) PlayDeathAnimation() { a.deaths++ }

// recorder counts completion callbacks.
type recorder struct {
	calls   int
	results []bool
}

func (r *recorder) done(success bool) {
	r.calls++
	r.results = append(r.results, success)
}

type harness struct {
	exec     *Executor
	clock    *fakeClock
	self     *fakeSelf
	mover    *fakeMover
	attacker *fakeAttacker
	animator *fakeAnimator
	stamina  []float64
	outcomes []Outcome
}

func defaultParams() Params {
	return Params{
		MoveStaminaCost:   0.2,
		AttackStaminaCost: 3,
		DistanceToAttack:  2,
		MaxStamina:        10,
		AttackDelay:       1,
	}
}

func newHarness(t *testing.T, p Params) *harness {
	t.Helper()
	h := &harness{
		clock:    &fakeClock{},
		self:     &fakeSelf{},
		mover:    &fakeMover{},
		attacker: &fakeAttacker{},
		animator: &fakeAnimator{},
	}
	exec, err := New(p, Deps{
		Self:     h.self,
		Mover:    h.mover,
		Attacker: h.attacker,
		Animator: h.animator,
		Clock:    h.clock,
	})
	require.NoError(t, err)
	exec.OnStaminaChange(func(current, max float64) {
		h.stamina = append(h.stamina, current)
	})
	exec.OnOutcome(func(o Outcome) {
		h.outcomes = append(h.outcomes, o)
	})
	h.exec = exec
	return h
}
