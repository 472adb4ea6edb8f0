// Command fluxgraph-demo loads a graph spec from disk and runs it for a
// fixed number of ticks, printing the commands each tick's rules emit. It
// is a thin demonstration of the host contract: the core engine package
// never does file I/O or logging itself.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fluxgraph/fluxgraph/compiler"
	"github.com/fluxgraph/fluxgraph/engine"
	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/internal/cli"
	"github.com/fluxgraph/fluxgraph/internal/ctxlog"
	"github.com/fluxgraph/fluxgraph/loader/hclloader"
	"github.com/fluxgraph/fluxgraph/loader/jsonloader"
	"github.com/fluxgraph/fluxgraph/loader/yamlloader"
	"github.com/fluxgraph/fluxgraph/signal"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	spec, err := loadSpec(cfg.GraphPath)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("failed to load graph: %v", err)}
	}

	signalNS := signal.NewNamespace()
	funcNS := signal.NewFunctionNamespace()
	program, err := compiler.Compile(spec, signalNS, funcNS, cfg.Dt)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("failed to compile graph: %v", err)}
	}

	eng := engine.New()
	eng.Load(program)

	store := signal.NewStore()

	ctxlog.FromContext(ctx).Info("starting run", "graph", cfg.GraphPath, "dt", cfg.Dt, "ticks", cfg.Ticks)

	for tick := 0; tick < cfg.Ticks; tick++ {
		if err := eng.Tick(cfg.Dt, store); err != nil {
			return &cli.ExitError{Code: 1, Message: fmt.Sprintf("tick %d failed: %v", tick, err)}
		}
		reportTick(ctx, tick, program, signalNS, funcNS, store, eng)
	}

	ctxlog.FromContext(ctx).Info("run complete", "ticks", cfg.Ticks)
	return nil
}

// reportTick logs this tick's edge targets and the commands it drained,
// pulling the logger out of ctx rather than threading it as its own
// parameter.
func reportTick(
	ctx context.Context,
	tick int,
	program *compiler.Program,
	signalNS *signal.Namespace,
	funcNS *signal.FunctionNamespace,
	store *signal.Store,
	eng *engine.Engine,
) {
	logger := ctxlog.FromContext(ctx)

	for _, edge := range program.Edges() {
		logger.Info("signal",
			"tick", tick,
			"signal", signalNS.Lookup(edge.Target),
			"value", store.ReadValue(edge.Target),
			"unit", store.Read(edge.Target).Unit,
		)
	}

	for _, cmd := range eng.DrainCommands() {
		logger.Info("command",
			"tick", tick,
			"device", funcNS.LookupDevice(cmd.Device),
			"function", funcNS.LookupFunction(cmd.Function),
		)
	}
}

// loadSpec dispatches to the loader matching path's extension.
func loadSpec(path string) (graph.Spec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return jsonloader.LoadFile(path)
	case ".yaml", ".yml":
		return yamlloader.LoadFile(path)
	case ".hcl":
		return hclloader.LoadFile(path)
	default:
		return graph.Spec{}, fmt.Errorf("unrecognized graph file extension %q (want .json, .yaml, .yml, or .hcl)", ext)
	}
}
