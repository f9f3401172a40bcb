package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/leonardoevi/Graph-coloring/internal/engine"
	"github.com/leonardoevi/Graph-coloring/internal/metrics"
	"github.com/spf13/cobra"
)

// noParallelismExitCode is the distinguished exit code reserved for
// "the serial seeding phase alone proved the optimum, no worker ever
// ran": a successful run, not a failure, but worth distinguishing from
// the ordinary case where workers actually searched.
const noParallelismExitCode = 69

func newSolveCmd() *cobra.Command {
	var gf graphFlags
	var workers int
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the coordinator and workers as in-process goroutines against one graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadLogged()
			if err != nil {
				return err
			}
			if workers == 0 {
				workers = cfg.Engine.Workers
			}
			if metricsAddr == "" {
				metricsAddr = cfg.Metrics.Addr
			}

			g, err := resolveGraph(gf, cfg.Engine.Vertices)
			if err != nil {
				return err
			}

			if cfg.Metrics.Enabled || cmd.Flags().Changed("metrics-addr") {
				reg := metrics.Init(log)
				srv := &http.Server{Addr: metricsAddr, Handler: metrics.Handler(reg)}
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Warn().Err(err).Msg("metrics server stopped")
					}
				}()
				defer srv.Close()
			}

			res, err := engine.Run(context.Background(), g, workers, log)
			if err != nil {
				return fmt.Errorf("cli: solve: %w", err)
			}

			printColoring(res.Coordinator.Incumbent.Color, res.Coordinator.Incumbent.TotColors)

			if res.Coordinator.NoParallelism {
				os.Exit(noParallelismExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gf.input, "input", "", "path to a DIMACS-style graph file")
	cmd.Flags().StringVar(&gf.fixture, "fixture", "", "named fixture: empty, complete, cycle, path, bipartite, petersen")
	cmd.Flags().IntVar(&gf.n, "n", 0, "vertex count, for --fixture (or --input's expected size)")
	cmd.Flags().IntVar(&gf.n2, "n2", 0, "second partition size, for --fixture=bipartite")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of worker goroutines (default: config's engine.workers)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func printColoring(color []int, totColors int) {
	parts := make([]string, len(color))
	for i, c := range color {
		parts[i] = strconv.Itoa(c)
	}
	fmt.Printf("chromatic_number=%d coloring=[%s]\n", totColors, strings.Join(parts, " "))
}
