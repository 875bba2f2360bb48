package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// DecisionSource names the rule that produced a command.
type DecisionSource string

const (
	SourceBrew   DecisionSource = "brew"
	SourceLearn  DecisionSource = "learn"
	SourcePlan   DecisionSource = "plan"
	SourceRandom DecisionSource = "random"
	SourceRest   DecisionSource = "rest"
)

// Decision is the command chosen for one turn. BrewID is only meaningful
// for SourceBrew; every other source plays Action.
type Decision struct {
	Source  DecisionSource
	Action  Action
	BrewID  int
	Message string
}

// Policy picks one command per turn: brew when possible, learn during the
// opening, otherwise follow the shortest plan to any order.
type Policy struct {
	cfg      Config
	searcher *Searcher
	rng      *rand.Rand
	log      *zap.Logger
	now      func() time.Time
}

// NewPolicy wires a policy. rng is only used for the timeout fallback.
func NewPolicy(cfg Config, searcher *Searcher, rng *rand.Rand, log *zap.Logger) *Policy {
	if log == nil {
		log = zap.NewNop()
	}
	return &Policy{cfg: cfg, searcher: searcher, rng: rng, log: log, now: time.Now}
}

// Decide returns the command for turn turnNo (1-based).
func (p *Policy) Decide(turn *Turn, turnNo int) Decision {
	d := p.decide(turn, turnNo)
	decisionTotal.WithLabelValues(string(d.Source)).Inc()
	p.log.Debug("decision",
		zap.Int("turn", turnNo),
		zap.String("source", string(d.Source)),
		zap.Stringer("action", d.Action),
		zap.Int("brew", d.BrewID),
		zap.Stringer("inventory", turn.Me.Inventory))
	return d
}

func (p *Policy) decide(turn *Turn, turnNo int) Decision {
	w := turn.Witch()

	if b, ok := bestAffordableBrew(w, turn.Brews); ok {
		return Decision{Source: SourceBrew, BrewID: b.ID, Message: fmt.Sprintf("+%d", b.Price)}
	}

	// out-of-bounds states do not fit the packed state key: no learn, no search
	if err := w.Validate(); err != nil {
		p.log.Warn("referee state out of bounds", zap.Int("turn", turnNo), zap.Error(err))
		return Decision{Source: SourceRest, Action: RestAction()}
	}

	if turnNo <= p.cfg.LearnTurns {
		if l, ok := bestLearn(w, turn.Learns, p.cfg.MinLearnScore); ok {
			return Decision{Source: SourceLearn, Action: LearnAction(l.ID)}
		}
	}

	res := p.searcher.Search(Problem{
		Start:    w,
		Brews:    turn.Brews,
		Learns:   turn.Learns,
		Deadline: p.now().Add(p.cfg.budget(turnNo)),
	})
	switch r := res.(type) {
	case Success:
		if len(r.Actions) == 0 {
			return Decision{Source: SourceBrew, BrewID: r.Target.ID}
		}
		return Decision{
			Source:  SourcePlan,
			Action:  r.Actions[0],
			Message: fmt.Sprintf("%d to #%d", len(r.Actions), r.Target.ID),
		}
	case Failure:
		p.log.Info("no plan", zap.Int("turn", turnNo), zap.Stringer("failure", r))
		if r.Reason == ReasonTimeout {
			return p.fallback(w)
		}
		// nothing reachable with what we know: grow the cast pool
		if l, ok := bestLearn(w, turn.Learns, math.MinInt); ok {
			return Decision{Source: SourceLearn, Action: LearnAction(l.ID)}
		}
	}
	return Decision{Source: SourceRest, Action: RestAction()}
}

// fallback plays a random castable cast, or rests when none is ready.
func (p *Policy) fallback(w Witch) Decision {
	idxs := castableIndexes(w)
	if len(idxs) == 0 {
		return Decision{Source: SourceRest, Action: RestAction()}
	}
	c := w.Casts[idxs[p.rng.IntN(len(idxs))]]
	return Decision{Source: SourceRandom, Action: CastAction(c.ID, 1)}
}
