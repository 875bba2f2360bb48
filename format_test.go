package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		a    Action
		msg  string
		want string
	}{
		{RestAction(), "", "REST"},
		{CastAction(78, 1), "", "CAST 78"},
		{CastAction(78, 3), "", "CAST 78 3"},
		{CastAction(78, 0), "go", "CAST 78 go"},
		{LearnAction(8), "", "LEARN 8"},
		{Action{}, "", "WAIT"},
		{RestAction(), "zzz", "REST zzz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCommand(tt.a, tt.msg))
	}
}

func TestFormatDecision(t *testing.T) {
	assert.Equal(t, "BREW 44", FormatDecision(Decision{Source: SourceBrew, BrewID: 44}))
	assert.Equal(t, "BREW 44 +15", FormatDecision(Decision{Source: SourceBrew, BrewID: 44, Message: "+15"}))
	assert.Equal(t, "CAST 78", FormatDecision(Decision{Source: SourceRandom, Action: CastAction(78, 1)}))
}

func TestFormatPlanSuccess(t *testing.T) {
	p := multicastProblem()
	res := Success{
		Actions:    []Action{CastAction(777, 1), CastAction(555, 2)},
		Target:     p.Brews[0],
		Iterations: 8,
		Visited:    28,
	}
	lines := strings.Split(strings.TrimSuffix(FormatPlan(p.Start, res, nil), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "brew #111 (9 rupees) in 2 actions, 8 iterations, 28 states", lines[0])
	assert.Equal(t, []string{"start", "(3,0,0,0)"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1.", "CAST", "777", "(5,0,0,0)"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2.", "CAST", "555", "2", "(1,4,0,0)"}, strings.Fields(lines[3]))
}

func TestFormatPlanFailure(t *testing.T) {
	got := FormatPlan(Witch{}, Failure{Reason: ReasonExhausted, Iterations: 3, Visited: 7}, nil)
	assert.Equal(t, "no plan: exhausted after 3 iterations (visited 7)\n", got)
}

func TestFormatPlanUnreplayable(t *testing.T) {
	res := Success{Actions: []Action{CastAction(4, 1)}, Target: Brew{ID: 1}}
	got := FormatPlan(Witch{}, res, nil)
	assert.Contains(t, got, "!! step 1")
}

func TestFormatPlanSharedCastIDs(t *testing.T) {
	res := Success{
		Actions: []Action{RestAction(), CastAction(12, 1), CastAction(11, 1), RestAction(), CastAction(12, 1)},
		Target:  sharedIDBrew,
	}
	lines := strings.Split(strings.TrimSuffix(FormatPlan(sharedIDWitch(), res, nil), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"3.", "CAST", "11", "(2,3,1,1)"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"5.", "CAST", "12", "(2,3,2,2)"}, strings.Fields(lines[6]))
}
