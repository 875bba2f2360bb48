//go:build !lambda

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BenchOutput is the JSON-serializable result of a full benchmark run.
type BenchOutput struct {
	Date    string           `json:"date"`
	GoMax   int              `json:"gomaxprocs"`
	Results []ScenarioResult `json:"results"`
	TotalMs int64            `json:"totalMs"`
}

var (
	configPath  string
	verbose     bool
	jsonOut     bool
	metricsAddr string

	cfg    Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "witch-brews",
	Short: "Turn-based potion brewing bot",
	Long: `witch-brews reads referee turns on stdin and answers one command per turn
on stdout. Each turn it brews when it can, learns during the opening and
otherwise follows the shortest cast/rest plan towards any open order.

Run without a subcommand to play.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = LoadConfig(configPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return playCmd.RunE(cmd, args)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game over stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if metricsAddr != "" {
			cfg.MetricsAddr = metricsAddr
		}
		if cfg.MetricsAddr != "" {
			serveMetrics(cfg.MetricsAddr, logger)
		}
		seed := uint64(cfg.Seed)
		policy := NewPolicy(cfg, NewSearcher(logger), rand.New(rand.NewPCG(seed, seed)), logger)
		return play(cmd.InOrStdin(), cmd.OutOrStdout(), policy, logger)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <scenarios.json> [name]",
	Short: "Print the plan found for recorded scenarios",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := LoadScenarios(args[0])
		if err != nil {
			return err
		}
		if len(args) == 2 {
			sc := FindScenario(scenarios, args[1])
			if sc == nil {
				return fmt.Errorf("scenario %q not found in %s", args[1], args[0])
			}
			scenarios = []Scenario{*sc}
		}
		searcher := NewSearcher(logger)
		out := cmd.OutOrStdout()
		for i := range scenarios {
			sc := &scenarios[i]
			_, res := runScenario(sc, searcher)
			fmt.Fprintf(out, "== %s\n%s", sc.Name, FormatPlan(sc.Start, res, sc.Learns))
		}
		return nil
	},
}

var benchCmd = &cobra.Command{
	Use:   "bench <scenarios.json>",
	Short: "Run every scenario and report outcome and timing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := LoadScenarios(args[0])
		if err != nil {
			return err
		}
		return runAll(cmd.OutOrStdout(), scenarios, NewSearcher(logger), jsonOut)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log search progress at debug level to stderr")
	playCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	benchCmd.Flags().BoolVar(&jsonOut, "json", false, "Output results as JSON")
	rootCmd.AddCommand(playCmd, planCmd, benchCmd)
}

// play answers one command per referee turn until the input ends.
func play(in io.Reader, out io.Writer, policy *Policy, log *zap.Logger) error {
	tr := NewTurnReader(in)
	for turnNo := 1; ; turnNo++ {
		turn, err := tr.Next()
		if errors.Is(err, io.EOF) {
			log.Info("game over", zap.Int("turns", turnNo-1))
			return nil
		}
		if err != nil {
			return fmt.Errorf("turn %d: %w", turnNo, err)
		}
		d := policy.Decide(turn, turnNo)
		if _, err := fmt.Fprintln(out, FormatDecision(d)); err != nil {
			return fmt.Errorf("turn %d: write command: %w", turnNo, err)
		}
	}
}

func runAll(out io.Writer, scenarios []Scenario, searcher *Searcher, jsonOut bool) error {
	var results []ScenarioResult
	var totalMs int64
	failed := 0

	for i := range scenarios {
		sc := &scenarios[i]
		searcher.log.Debug("running scenario", zap.Int("index", i+1), zap.Int("of", len(scenarios)), zap.String("name", sc.Name))
		r, _ := runScenario(sc, searcher)
		results = append(results, r)
		totalMs += r.TimeMs
		if !r.OK {
			failed++
		}
	}

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(BenchOutput{
			Date:    time.Now().UTC().Format(time.RFC3339),
			GoMax:   runtime.GOMAXPROCS(0),
			Results: results,
			TotalMs: totalMs,
		}); err != nil {
			return err
		}
	} else {
		printTable(out, results, totalMs)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios did not match their expectation", failed, len(results))
	}
	return nil
}

func printTable(out io.Writer, results []ScenarioResult, totalMs int64) {
	fmt.Fprintf(out, "%-24s %-10s %6s %10s %8s %4s\n", "Scenario", "Outcome", "Length", "Iterations", "Time", "OK")
	fmt.Fprintf(out, "%-24s %-10s %6s %10s %8s %4s\n", "------------------------", "----------", "------", "----------", "--------", "----")
	for _, r := range results {
		ok := "yes"
		if !r.OK {
			ok = "NO"
		}
		fmt.Fprintf(out, "%-24s %-10s %6d %10d %7.3fs %4s\n", r.Name, r.Outcome, r.Length, r.Iterations, float64(r.TimeMs)/1000, ok)
	}
	fmt.Fprintf(out, "%-24s %-10s %6s %10s %8s %4s\n", "------------------------", "----------", "------", "----------", "--------", "----")
	fmt.Fprintf(out, "%-24s %-10s %6s %10s %7.3fs\n", "TOTAL", "", "", "", float64(totalMs)/1000)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
