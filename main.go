package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const defaultConfigFile = "config.json"

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "go-life",
		Short:         "Conway's Game of Life in the terminal, with RLE pattern tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", defaultConfigFile, "JSON or YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newStepCmd(opts),
		newExtractCmd(opts),
		newConvertCmd(opts),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when the
// default file does not exist. A file named explicitly must exist.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (utils.Config, *slog.Logger, error) {
	config, err := utils.LoadConfig(o.configFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			return config, nil, err
		}
		config = utils.DefaultConfig()
	}
	if o.logLevel != "" {
		if _, err := utils.ParseLogLevel(o.logLevel); err != nil {
			return config, nil, err
		}
		config.LogLevel = o.logLevel
	}

	logger := utils.NewLogger(config.LogLevel)
	slog.SetDefault(logger)
	return config, logger, nil
}

type runOptions struct {
	pattern   string
	watch     bool
	adjacency string
	seed      int64
	maxGens   int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pattern") {
				config.PatternFile = opts.pattern
			}
			if cmd.Flags().Changed("watch") {
				config.WatchPattern = opts.watch
			}
			if cmd.Flags().Changed("adjacency") {
				config.Adjacency = opts.adjacency
			}
			if cmd.Flags().Changed("seed") {
				config.Seed = opts.seed
			}
			if cmd.Flags().Changed("max-generations") {
				config.MaxGenerations = opts.maxGens
			}
			if err := config.Validate(); err != nil {
				return err
			}
			return runGame(cmd.Context(), cmd, config, logger)
		},
	}
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "RLE pattern file to start from")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the pattern file when it changes")
	cmd.Flags().StringVar(&opts.adjacency, "adjacency", "", "neighbor policy: cycled or bounded")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed; 0 picks one from the clock")
	cmd.Flags().IntVar(&opts.maxGens, "max-generations", 0, "stop after this many generations; 0 runs forever")
	return cmd
}

// runGame wires the game, its observers and the optional watcher and metrics
// endpoint, then drives it until a stop condition or a signal.
func runGame(ctx context.Context, cmd *cobra.Command, config utils.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seeder := engine.NewSeeder(seed)

	registry := prometheus.NewRegistry()
	gameOpts := []engine.Option{
		engine.WithAdjacency(config.AdjacencyMode()),
		engine.WithWorkers(config.StepWorkers()),
		engine.WithMetrics(engine.NewMetrics(registry)),
		engine.WithLogger(logger),
	}
	if config.UseMemoryPool {
		gameOpts = append(gameOpts, engine.WithPool(model.NewGridPool[model.CellState]()))
	}

	game, pattern, err := initializeGame(config, seeder, gameOpts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	displayGameInfo(out, config, game)

	if config.MetricsAddr != "" {
		serveMetrics(ctx, config.MetricsAddr, registry, logger)
	}

	view := newGameView(out, game)
	unsubscribe := game.Subscribe(view.onEvent)
	defer unsubscribe()

	loop := &gameLoop{
		game:    game,
		config:  config,
		seeder:  seeder,
		history: engine.NewHistory(config.StagnationThreshold),
		view:    view,
		pattern: pattern,
		logger:  logger,
	}

	if config.WatchPattern && config.PatternFile != "" {
		watcher, err := utils.NewFileWatcher(config.PatternFile, utils.DefaultDebounce, logger, loop.reload)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	driver := &engine.Driver{
		Game:           game,
		Interval:       config.Interval(),
		MaxGenerations: config.MaxGenerations,
		StopWhenStuck:  config.StopWhenStuck,
		AfterStep:      loop.afterStep,
		Logger:         logger,
	}

	reason, err := driver.Run(ctx)
	switch reason {
	case engine.StopCanceled:
		fmt.Fprintln(out, "\nShutting down gracefully...")
	case engine.StopMaxGenerations:
		fmt.Fprintf(out, "\nReached maximum generations limit (%d)\n", config.MaxGenerations)
	case engine.StopStuck:
		fmt.Fprintln(out, "\nPattern is stuck")
	}
	fmt.Fprintf(out, "Final stats: %s\n", view.summary())

	if err != nil && !errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(err, "[runGame] driver failed")
	}
	return nil
}

// serveMetrics exposes the registry on addr until ctx is done
func serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
