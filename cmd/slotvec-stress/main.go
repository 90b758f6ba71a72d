package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"
)

func main() {
	flagSet := flag.NewFlagSet("slotvec-stress", flag.ExitOnError)
	duration := flagSet.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	maxOps := flagSet.Int64("ops", 0, "Stop after this many operations (0 means run for the full duration).")
	seed := flagSet.Int64("seed", time.Now().UnixNano(), "Random seed for the workload.")
	insertRatio := flagSet.Float64("insert-ratio", 0.6, "Probability that an operation is an insert.")
	initial := flagSet.Int("initial", 10000, "The initial number of values to insert.")
	checkEvery := flagSet.Int64("check-every", 1000, "Verify the collection against the model every N operations.")
	logLevel := flagSet.String("log-level", "info", "Log level: debug, info, warn or error.")
	logFormat := flagSet.String("log-format", "text", "Log format: text or json.")
	gcPauseMetrics := flagSet.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	_ = flagSet.Parse(os.Args[1:])

	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *insertRatio <= 0 || *insertRatio > 1 {
		logger.Error("insert-ratio must be in (0, 1]", "insert_ratio", *insertRatio)
		os.Exit(2)
	}
	if *checkEvery <= 0 {
		*checkEvery = 1
	}

	logger.Info("starting slotvec stress test", "seed", *seed, "insert_ratio", *insertRatio)

	workload := NewWorkload(*seed, *insertRatio)

	logger.Info("populating collection", "values", *initial)
	for i := 0; i < *initial; i++ {
		if err := workload.insert(uint8(i)); err != nil {
			logger.Error("populate failed", "error", err)
			os.Exit(1)
		}
	}

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Initial:        *initial,
		InsertRatio:    *insertRatio,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running workload", "duration", *duration, "ops", *maxOps)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalOps int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if *maxOps > 0 && totalOps >= *maxOps {
				break Loop
			}

			stepStart := time.Now()
			err := workload.Step()
			report.StepTime.Add(time.Since(stepStart))
			totalOps++

			if err == nil && totalOps%*checkEvery == 0 {
				err = workload.Verify()
				logger.Debug("verified", "ops", totalOps, "occupancy", workload.Stats().Occupancy.String())
			}
			if err != nil {
				logger.Error("model mismatch", "ops", totalOps, "error", err)
				os.Exit(1)
			}
		}
	}

	if err := workload.Verify(); err != nil {
		logger.Error("final verification failed", "error", err)
		os.Exit(1)
	}

	report.TotalTime = time.Since(startTime)
	report.TotalOps = totalOps
	report.Inserts = workload.Inserts
	report.Removes = workload.Removes
	report.Reused = workload.Reused
	report.Rejected = workload.Rejected
	report.MaxReuseIndex = workload.MaxReuseIndex
	report.Collection = workload.Stats()
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("workload finished", "ops", totalOps, "elapsed", report.TotalTime)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
