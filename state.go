package main

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidState reports a witch that breaks the inventory or cast pool limits.
var ErrInvalidState = errors.New("invalid witch state")

// Witch is a search node: an inventory plus an ordered cast pool. It is a
// value type; every transition returns a new Witch and leaves the receiver
// untouched.
type Witch struct {
	Inventory Ingredients
	Casts     []Cast
}

// Clone returns a copy that shares no memory with w.
func (w Witch) Clone() Witch {
	return Witch{Inventory: w.Inventory, Casts: slices.Clone(w.Casts)}
}

// Validate checks the invariants every reachable state must satisfy.
func (w Witch) Validate() error {
	if !w.Inventory.NonNegative() {
		return fmt.Errorf("%w: negative inventory %v", ErrInvalidState, w.Inventory)
	}
	if s := w.Inventory.Sum(); s > InventoryCapacity {
		return fmt.Errorf("%w: inventory %v holds %d > %d", ErrInvalidState, w.Inventory, s, InventoryCapacity)
	}
	if len(w.Casts) > MaxCasts-1 {
		// one slot stays free for the cast a learn appends
		return fmt.Errorf("%w: %d casts, at most %d supported", ErrInvalidState, len(w.Casts), MaxCasts-1)
	}
	return nil
}

// CanBrew reports whether the inventory covers the order's cost.
func (w Witch) CanBrew(b Brew) bool {
	return w.Inventory.Add(b.Delta).NonNegative()
}

// CanCast reports whether cast i is ready and its result fits the inventory.
func (w Witch) CanCast(i int) bool {
	return w.Casts[i].Castable && fits(w.Inventory.Add(w.Casts[i].Delta))
}

// CanLearn reports whether the tier-0 stock pays the tome cost.
func (w Witch) CanLearn(l Learn) bool {
	return w.Inventory[0] >= l.TomeIndex
}

func fits(inv Ingredients) bool {
	return inv.NonNegative() && inv.Sum() <= InventoryCapacity
}

// ApplyCast applies cast i once and marks it spent.
func (w Witch) ApplyCast(i int) Witch {
	casts := slices.Clone(w.Casts)
	casts[i].Castable = false
	return Witch{Inventory: w.Inventory.Add(casts[i].Delta), Casts: casts}
}

// ApplyRest makes every cast castable again.
func (w Witch) ApplyRest() Witch {
	casts := slices.Clone(w.Casts)
	for i := range casts {
		casts[i].Castable = true
	}
	return Witch{Inventory: w.Inventory, Casts: casts}
}

// ApplyLearn pays the tome cost, collects the capacity-clamped tax and
// appends the learned cast.
func (w Witch) ApplyLearn(l Learn) Witch {
	inv := w.Inventory
	inv[0] -= l.TomeIndex
	inv[0] += min(l.TaxCount, max(InventoryCapacity-inv.Sum(), 0))

	casts := make([]Cast, len(w.Casts), len(w.Casts)+1)
	copy(casts, w.Casts)
	casts = append(casts, Cast{
		ID:         LearnedCastID,
		Delta:      l.Delta,
		Castable:   true,
		Repeatable: l.Repeatable,
	})
	return Witch{Inventory: inv, Casts: casts}
}

// Simulate replays plan on w and returns the final witch. Learns are looked
// up by id in learns; the learned cast answers to LearnedCastID. A non-nil
// goal must hold for the final witch.
func Simulate(w Witch, plan []Action, learns []Learn, goal func(Witch) bool) (Witch, error) {
	states, err := Trace(w, plan, learns, goal)
	if err != nil {
		return w, err
	}
	if len(states) == 0 {
		return w, nil
	}
	return states[len(states)-1], nil
}

// Trace replays plan on w and returns the witch after every action. When
// several casts share an id, every choice is tried until the rest of the plan
// replays and the final witch satisfies goal (any final witch when goal is
// nil).
func Trace(w Witch, plan []Action, learns []Learn, goal func(Witch) bool) ([]Witch, error) {
	return trace(w, plan, learns, goal, 0)
}

// brewGoal is the Trace goal of a plan that ends able to brew b.
func brewGoal(b Brew) func(Witch) bool {
	return func(w Witch) bool { return w.CanBrew(b) }
}

func trace(w Witch, plan []Action, learns []Learn, goal func(Witch) bool, step int) ([]Witch, error) {
	if step == len(plan) {
		if goal != nil && !goal(w) {
			return nil, fmt.Errorf("plan ends at %v without reaching its goal", w.Inventory)
		}
		return nil, nil
	}
	a := plan[step]
	var next Witch
	switch a.Kind {
	case ActionRest:
		next = w.ApplyRest()
	case ActionLearn:
		idx := slices.IndexFunc(learns, func(l Learn) bool { return l.ID == a.ID })
		if idx < 0 {
			return nil, fmt.Errorf("step %d: unknown learn %d", step+1, a.ID)
		}
		if !w.CanLearn(learns[idx]) {
			return nil, fmt.Errorf("step %d: cannot afford learn %d", step+1, a.ID)
		}
		next = w.ApplyLearn(learns[idx])
	case ActionCast:
		err := fmt.Errorf("step %d: cannot %v from %v", step+1, a, w.Inventory)
		for i, c := range w.Casts {
			if c.ID != a.ID {
				continue
			}
			cand, ok := castTimes(w, i, max(a.Times, 1))
			if !ok {
				continue
			}
			rest, rerr := trace(cand, plan, learns, goal, step+1)
			if rerr == nil {
				return append([]Witch{cand}, rest...), nil
			}
			err = rerr
		}
		return nil, err
	default:
		return nil, fmt.Errorf("step %d: unexpected action kind %d", step+1, a.Kind)
	}
	rest, err := trace(next, plan, learns, goal, step+1)
	if err != nil {
		return nil, err
	}
	return append([]Witch{next}, rest...), nil
}

// castTimes applies cast i times times in a row, the way one multicast
// command does: only the first application needs the cast to be ready.
func castTimes(w Witch, i, times int) (Witch, bool) {
	if !w.CanCast(i) || (times > 1 && !w.Casts[i].Repeatable) {
		return w, false
	}
	next := w.ApplyCast(i)
	for k := 1; k < times; k++ {
		inv := next.Inventory.Add(w.Casts[i].Delta)
		if !fits(inv) {
			return w, false
		}
		next.Inventory = inv
	}
	return next, true
}
