package main

import (
	"fmt"
	"strconv"
)

const (
	// NumTiers is the number of ingredient tiers tracked in an inventory.
	NumTiers = 4
	// InventoryCapacity is the maximum total number of ingredients a witch can hold.
	InventoryCapacity = 10
	// MaxCasts bounds the cast pool size; one castable bit per cast goes into the state key.
	MaxCasts = 64
	// LearnedCastID is the reserved id given to a cast produced by a simulated learn.
	LearnedCastID = -1
)

// Ingredients holds one count per tier. It is used both as an absolute
// inventory and as a signed delta.
type Ingredients [NumTiers]int

// Add returns the component-wise sum of x and d.
func (x Ingredients) Add(d Ingredients) Ingredients {
	for t := range x {
		x[t] += d[t]
	}
	return x
}

// Sum returns the total number of ingredients.
func (x Ingredients) Sum() int {
	return x[0] + x[1] + x[2] + x[3]
}

// NonNegative reports whether no tier is below zero.
func (x Ingredients) NonNegative() bool {
	return x[0] >= 0 && x[1] >= 0 && x[2] >= 0 && x[3] >= 0
}

func (x Ingredients) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", x[0], x[1], x[2], x[3])
}

// Cast is a reusable transformation owned by a witch.
type Cast struct {
	ID         int
	Delta      Ingredients
	Castable   bool // false once used, until the next rest
	Repeatable bool // may be applied several times in one turn
}

// Brew is a potion order. Delta is the (non-positive) ingredient cost.
type Brew struct {
	ID    int
	Delta Ingredients
	Price int
}

// Learn is a tome entry that can be turned into a permanent cast.
type Learn struct {
	ID         int
	Delta      Ingredients
	TomeIndex  int // tier-0 cost of learning
	TaxCount   int // tier-0 bonus collected on learning
	Repeatable bool
}

// ActionKind discriminates the Action union.
type ActionKind int

const (
	// ActionNone marks the search root; it is never played.
	ActionNone ActionKind = iota
	ActionRest
	ActionCast
	ActionLearn
)

// Action is one edge of a plan. ID is the cast or learn id; Times is the
// cast multiplicity (1 for a plain cast, 0 otherwise).
type Action struct {
	Kind  ActionKind
	ID    int
	Times int
}

// RestAction returns the rest token.
func RestAction() Action { return Action{Kind: ActionRest} }

// CastAction returns a cast token applied times times in a row.
func CastAction(id, times int) Action { return Action{Kind: ActionCast, ID: id, Times: times} }

// LearnAction returns a learn token.
func LearnAction(id int) Action { return Action{Kind: ActionLearn, ID: id} }

func (a Action) String() string {
	switch a.Kind {
	case ActionRest:
		return "rest"
	case ActionCast:
		if a.Times > 1 {
			return "cast " + strconv.Itoa(a.ID) + "x" + strconv.Itoa(a.Times)
		}
		return "cast " + strconv.Itoa(a.ID)
	case ActionLearn:
		return "learn " + strconv.Itoa(a.ID)
	}
	return "none"
}

// Player holds the inventory and score line of one witch.
type Player struct {
	Inventory Ingredients
	Score     int
}

// Turn is everything the referee sends for one game turn.
type Turn struct {
	Me            Player
	Opponent      Player
	Casts         []Cast
	OpponentCasts []Cast
	Brews         []Brew
	Learns        []Learn
}

// Witch returns the search root for the local player.
func (t *Turn) Witch() Witch {
	return Witch{Inventory: t.Me.Inventory, Casts: t.Casts}
}
