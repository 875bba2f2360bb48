package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

// defaultScenarioBudget applies when a scenario has no budgetMs.
const defaultScenarioBudget = time.Second

// Scenario is a recorded planning problem with an optional expectation.
type Scenario struct {
	Name   string
	Start  Witch
	Brews  []Brew
	Learns []Learn
	Budget time.Duration

	// ExpectLength is the expected plan length, -1 when unchecked.
	ExpectLength int
	// ExpectReason is the expected failure reason, empty when a plan is expected.
	ExpectReason FailureReason
}

// ScenarioResult holds the outcome and timing of one scenario run.
type ScenarioResult struct {
	Name       string `json:"name"`
	Outcome    string `json:"outcome"`
	Length     int    `json:"length"`
	First      string `json:"first,omitempty"`
	Iterations int    `json:"iterations"`
	Visited    int    `json:"visited"`
	TimeMs     int64  `json:"timeMs"`
	OK         bool   `json:"ok"`
}

func runScenario(sc *Scenario, searcher *Searcher) (ScenarioResult, Result) {
	start := time.Now()
	res := searcher.Search(Problem{
		Start:    sc.Start,
		Brews:    sc.Brews,
		Learns:   sc.Learns,
		Deadline: start.Add(sc.Budget),
	})
	r := ScenarioResult{Name: sc.Name, TimeMs: time.Since(start).Milliseconds()}
	switch v := res.(type) {
	case Success:
		r.Outcome = "success"
		r.Length = len(v.Actions)
		r.Iterations = v.Iterations
		r.Visited = v.Visited
		if len(v.Actions) > 0 {
			r.First = FormatCommand(v.Actions[0], "")
		}
		r.OK = sc.ExpectReason == "" && (sc.ExpectLength < 0 || sc.ExpectLength == r.Length)
	case Failure:
		r.Outcome = string(v.Reason)
		r.Iterations = v.Iterations
		r.Visited = v.Visited
		r.OK = sc.ExpectReason == v.Reason || (sc.ExpectReason == "" && sc.ExpectLength < 0)
	}
	return r, res
}

// FindScenario returns the scenario with the given name, or nil if not found.
func FindScenario(scenarios []Scenario, name string) *Scenario {
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i]
		}
	}
	return nil
}

// LoadScenarios reads a scenario file holding one object or an array of them.
func LoadScenarios(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	scenarios, err := parseScenarios(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return scenarios, nil
}

func parseScenarios(js string) ([]Scenario, error) {
	if !gjson.Valid(js) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.Parse(js)
	if !root.IsArray() {
		sc, err := parseScenario(root, 0)
		if err != nil {
			return nil, err
		}
		return []Scenario{sc}, nil
	}

	var out []Scenario
	var perr error
	root.ForEach(func(_, v gjson.Result) bool {
		sc, err := parseScenario(v, len(out))
		if err != nil {
			perr = err
			return false
		}
		out = append(out, sc)
		return true
	})
	return out, perr
}

func parseScenario(v gjson.Result, idx int) (Scenario, error) {
	if !v.IsObject() {
		return Scenario{}, fmt.Errorf("scenario %d: not an object", idx)
	}
	sc := Scenario{
		Name:         v.Get("name").String(),
		Budget:       defaultScenarioBudget,
		ExpectLength: -1,
	}
	if sc.Name == "" {
		sc.Name = fmt.Sprintf("scenario-%d", idx)
	}
	if ms := v.Get("budgetMs"); ms.Exists() {
		sc.Budget = time.Duration(ms.Int()) * time.Millisecond
	}
	switch e := v.Get("expect"); e.Type {
	case gjson.Number:
		sc.ExpectLength = int(e.Int())
	case gjson.String:
		sc.ExpectReason = FailureReason(e.String())
	}

	inv, err := readIngredients(v.Get("inventory"))
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: inventory: %w", sc.Name, err)
	}
	sc.Start.Inventory = inv

	var perr error
	v.Get("casts").ForEach(func(_, c gjson.Result) bool {
		d, err := readIngredients(c.Get("delta"))
		if err != nil {
			perr = fmt.Errorf("%s: cast %d: %w", sc.Name, c.Get("id").Int(), err)
			return false
		}
		castable := c.Get("castable")
		sc.Start.Casts = append(sc.Start.Casts, Cast{
			ID:         int(c.Get("id").Int()),
			Delta:      d,
			Castable:   !castable.Exists() || toBool(castable),
			Repeatable: toBool(c.Get("repeatable")),
		})
		return true
	})
	v.Get("brews").ForEach(func(_, b gjson.Result) bool {
		d, err := readIngredients(b.Get("delta"))
		if err != nil {
			perr = fmt.Errorf("%s: brew %d: %w", sc.Name, b.Get("id").Int(), err)
			return false
		}
		sc.Brews = append(sc.Brews, Brew{
			ID:    int(b.Get("id").Int()),
			Delta: d,
			Price: int(b.Get("price").Int()),
		})
		return true
	})
	v.Get("learns").ForEach(func(_, l gjson.Result) bool {
		d, err := readIngredients(l.Get("delta"))
		if err != nil {
			perr = fmt.Errorf("%s: learn %d: %w", sc.Name, l.Get("id").Int(), err)
			return false
		}
		sc.Learns = append(sc.Learns, Learn{
			ID:         int(l.Get("id").Int()),
			Delta:      d,
			TomeIndex:  int(l.Get("tomeIndex").Int()),
			TaxCount:   int(l.Get("taxCount").Int()),
			Repeatable: toBool(l.Get("repeatable")),
		})
		return true
	})
	if perr != nil {
		return Scenario{}, perr
	}
	if err := sc.Start.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", sc.Name, err)
	}
	return sc, nil
}

func readIngredients(v gjson.Result) (Ingredients, error) {
	var x Ingredients
	if !v.Exists() {
		return x, nil
	}
	arr := v.Array()
	if !v.IsArray() || len(arr) != NumTiers {
		return x, fmt.Errorf("want %d tier counts, got %s", NumTiers, v.Raw)
	}
	for i, item := range arr {
		x[i] = int(item.Int())
	}
	return x, nil
}

func toBool(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Float() != 0
	}
	return false
}
