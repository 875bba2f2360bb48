package main

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Problem is one planning request: reach any brew in Brews from Start
// before Deadline. Learns are only considered as the first action.
type Problem struct {
	Start    Witch
	Brews    []Brew
	Learns   []Learn
	Deadline time.Time
}

// FailureReason tells the caller why no plan was produced.
type FailureReason string

const (
	// ReasonTimeout means the deadline passed before a plan was found.
	ReasonTimeout FailureReason = "timeout"
	// ReasonExhausted means no brew is reachable with the known casts.
	ReasonExhausted FailureReason = "exhausted"
)

// Result is either Success or Failure.
type Result interface {
	isResult()
}

// Success holds a shortest plan in execution order; Actions[0] is the move
// to play now. Target is the first brew, in input order, the plan satisfies.
type Success struct {
	Actions    []Action
	Target     Brew
	Iterations int
	Visited    int
}

// Failure reports a search that ended without a plan.
type Failure struct {
	Reason     FailureReason
	Iterations int
	Visited    int
}

func (Success) isResult() {}
func (Failure) isResult() {}

func (f Failure) String() string {
	return fmt.Sprintf("%s after %d iterations", f.Reason, f.Iterations)
}

// Searcher runs breadth-first plan searches. It holds no per-search state
// and can be reused across turns.
type Searcher struct {
	log       *zap.Logger
	now       func() time.Time
	onDequeue func(Witch)
}

// NewSearcher returns a searcher that reads the wall clock.
func NewSearcher(log *zap.Logger) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{log: log, now: time.Now}
}

// Search finds the shortest action sequence from p.Start to a state that can
// brew one of p.Brews. The deadline is polled once per dequeued node.
// p.Start must pass Validate; the state key only packs MaxCasts castable bits.
func (s *Searcher) Search(p Problem) Result {
	start := s.now()
	res := s.search(p)
	elapsed := s.now().Sub(start)
	observeSearch(res, elapsed)

	switch r := res.(type) {
	case Success:
		s.log.Debug("search succeeded",
			zap.Int("brew", r.Target.ID),
			zap.Int("length", len(r.Actions)),
			zap.Int("iterations", r.Iterations),
			zap.Int("visited", r.Visited),
			zap.Duration("elapsed", elapsed))
	case Failure:
		s.log.Debug("search failed",
			zap.String("reason", string(r.Reason)),
			zap.Int("iterations", r.Iterations),
			zap.Int("visited", r.Visited),
			zap.Duration("elapsed", elapsed))
	}
	return res
}

func (s *Searcher) search(p Problem) Result {
	root := node{witch: p.Start.Clone(), learned: -1}
	rootKey := root.key()

	parent := map[stateKey]stateKey{rootKey: rootKey}
	incoming := map[stateKey]Action{rootKey: {Kind: ActionNone}}
	type queued struct {
		n   node
		key stateKey
	}
	queue := []queued{{root, rootKey}}

	var from stateKey
	register := func(n node, a Action) {
		k := n.key()
		if _, seen := parent[k]; seen {
			return
		}
		parent[k] = from
		incoming[k] = a
		queue = append(queue, queued{n, k})
	}

	iterations := 0
	for head := 0; ; head++ {
		if head == len(queue) {
			return Failure{Reason: ReasonExhausted, Iterations: iterations, Visited: len(parent)}
		}
		iterations++
		if !s.now().Before(p.Deadline) {
			return Failure{Reason: ReasonTimeout, Iterations: iterations, Visited: len(parent)}
		}

		cur := queue[head]
		queue[head] = queued{}
		if s.onDequeue != nil {
			s.onDequeue(cur.n.witch)
		}

		if bi := slices.IndexFunc(p.Brews, cur.n.witch.CanBrew); bi >= 0 {
			plan := reconstructPath(cur.key, parent, incoming)
			slices.Reverse(plan)
			return Success{
				Actions:    plan,
				Target:     p.Brews[bi],
				Iterations: iterations,
				Visited:    len(parent),
			}
		}

		from = cur.key
		expand(cur.n, cur.key == rootKey, p.Learns, register)
	}
}

// reconstructPath walks parent links from goal back to the root and returns
// the incoming actions in goal-to-root order.
func reconstructPath(goal stateKey, parent map[stateKey]stateKey, incoming map[stateKey]Action) []Action {
	var path []Action
	for k := goal; incoming[k].Kind != ActionNone; k = parent[k] {
		path = append(path, incoming[k])
	}
	return path
}
