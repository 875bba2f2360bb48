//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// planResult answers a scenario request.
type planResult struct {
	Name       string   `json:"name"`
	Outcome    string   `json:"outcome"`
	Command    string   `json:"command,omitempty"`
	Plan       []string `json:"plan,omitempty"`
	Iterations int      `json:"iterations"`
	TimeMs     int64    `json:"timeMs"`
}

// turnResult answers a raw referee turn request.
type turnResult struct {
	Command string `json:"command"`
	Source  string `json:"source"`
}

var (
	lambdaLog = newLambdaLogger()
	lambdaCfg = DefaultConfig()
)

func newLambdaLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// handler accepts either {"turn": "<referee lines>", "turnNo": n} and
// answers the bot's command, or a scenario object and answers its plan.
func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}
	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON")
	}

	if t := gjson.Get(body, "turn"); t.Exists() {
		return handleTurn(t.String(), int(gjson.Get(body, "turnNo").Int()))
	}
	return handleScenario(body)
}

func handleTurn(raw string, turnNo int) (events.LambdaFunctionURLResponse, error) {
	turn, err := NewTurnReader(strings.NewReader(raw)).Next()
	if err != nil {
		return errResp(400, "turn: "+err.Error())
	}
	if turnNo < 1 {
		turnNo = 1
	}
	seed := uint64(lambdaCfg.Seed) + uint64(turnNo)
	policy := NewPolicy(lambdaCfg, NewSearcher(lambdaLog), rand.New(rand.NewPCG(seed, seed)), lambdaLog)
	d := policy.Decide(turn, turnNo)
	return okResp(turnResult{Command: FormatDecision(d), Source: string(d.Source)})
}

func handleScenario(body string) (events.LambdaFunctionURLResponse, error) {
	scenarios, err := parseScenarios(body)
	if err != nil {
		return errResp(400, "scenario: "+err.Error())
	}
	if len(scenarios) != 1 {
		return errResp(400, fmt.Sprintf("want exactly one scenario, got %d", len(scenarios)))
	}
	sc := &scenarios[0]
	if sc.Budget > 5*time.Second {
		sc.Budget = 5 * time.Second
	}

	r, res := runScenario(sc, NewSearcher(lambdaLog))
	out := planResult{
		Name:       r.Name,
		Outcome:    r.Outcome,
		Command:    r.First,
		Iterations: r.Iterations,
		TimeMs:     r.TimeMs,
	}
	if s, ok := res.(Success); ok {
		for _, a := range s.Actions {
			out.Plan = append(out.Plan, FormatCommand(a, ""))
		}
	}
	return okResp(out)
}

func okResp(v any) (events.LambdaFunctionURLResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return errResp(500, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(body)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
