package main

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCommand renders a plan action as a referee command, with an
// optional trailing message.
func FormatCommand(a Action, msg string) string {
	var cmd string
	switch a.Kind {
	case ActionRest:
		cmd = "REST"
	case ActionCast:
		cmd = "CAST " + strconv.Itoa(a.ID)
		if a.Times > 1 {
			cmd += " " + strconv.Itoa(a.Times)
		}
	case ActionLearn:
		cmd = "LEARN " + strconv.Itoa(a.ID)
	default:
		cmd = "WAIT"
	}
	if msg != "" {
		cmd += " " + msg
	}
	return cmd
}

// FormatDecision renders the command for one turn.
func FormatDecision(d Decision) string {
	if d.Source == SourceBrew {
		cmd := "BREW " + strconv.Itoa(d.BrewID)
		if d.Message != "" {
			cmd += " " + d.Message
		}
		return cmd
	}
	return FormatCommand(d.Action, d.Message)
}

// FormatPlan produces a step-by-step trace of a search result, showing the
// inventory after every action.
func FormatPlan(start Witch, res Result, learns []Learn) string {
	var b strings.Builder

	switch r := res.(type) {
	case Failure:
		fmt.Fprintf(&b, "no plan: %s (visited %d)\n", r, r.Visited)
	case Success:
		fmt.Fprintf(&b, "brew #%d (%d rupees) in %d actions, %d iterations, %d states\n",
			r.Target.ID, r.Target.Price, len(r.Actions), r.Iterations, r.Visited)
		fmt.Fprintf(&b, "%4s  %-12s %s\n", "", "start", start.Inventory)
		states, err := Trace(start, r.Actions, learns, brewGoal(r.Target))
		if err != nil {
			fmt.Fprintf(&b, "      !! %v\n", err)
			break
		}
		for i, a := range r.Actions {
			fmt.Fprintf(&b, "%3d.  %-12s %s\n", i+1, FormatCommand(a, ""), states[i].Inventory)
		}
	}
	return b.String()
}
