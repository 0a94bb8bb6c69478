// Command anura is the UCI entry point: it loads the embedded value and
// policy networks, wires up the tree arena, and hands stdin/stdout off to
// the UCI command loop.
package main

import (
	"fmt"
	"os"

	"github.com/anura-engine/anura/internal/attacks"
	"github.com/anura-engine/anura/nets/policy"
	"github.com/anura-engine/anura/nets/value"
	"github.com/anura-engine/anura/perft"
	"github.com/anura-engine/anura/uci"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

func main() {
	hashMB := flag.Int("hash", 64, "search tree size in MiB")
	weightsValue := flag.String("weights-value", "", "override path to the value network weights blob")
	weightsPolicy := flag.String("weights-policy", "", "override path to the policy network weights blob")
	bench := flag.Bool("bench", false, "run the fixed-position perft bench and exit")
	verbose := flag.Bool("verbose", false, "emit debug-level diagnostics to stderr")
	flag.Parse()

	log := newLogger(*verbose)

	// Shared attack tables must exist before any Position/Board/Engine
	// operation, per spec.md §5. position's own package init already does
	// this; calling it again here is a documented no-op, kept for the
	// same defensive-clarity reason a host binary's main always does its
	// own setup rather than trusting an imported package's side effects.
	attacks.Init()

	valueNet, err := loadValueNetwork(*weightsValue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load value network weights")
	}
	policyNet, err := loadPolicyNetwork(*weightsPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load policy network weights")
	}

	if *bench {
		runBench(log)
		return
	}

	manager := uci.New(valueNet, policyNet, *hashMB, log, os.Stdout)
	if err := manager.Run(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("uci session ended with an error")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadValueNetwork(path string) (*value.Network, error) {
	if path == "" {
		return value.Default()
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return value.Load(blob)
}

func loadPolicyNetwork(path string) (*policy.Network, error) {
	if path == "" {
		return policy.Default()
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	policy.InitIndex()
	return policy.Load(blob)
}

// runBench runs the fixed-position perft bench at depth 5, the engine's
// deterministic throughput baseline, independent of search tunables or
// network weights.
func runBench(log zerolog.Logger) {
	nodes, err := perft.Bench(5)
	if err != nil {
		log.Fatal().Err(err).Msg("bench failed")
	}
	fmt.Printf("%d nodes\n", nodes)
}
