package main

//go:generate go run ./gen -components 16 -systems 8 -out generated.go

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/kiln/config"
	"github.com/plus3/kiln/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churnCount := flag.Int("churn", 0, "Entities destroyed and respawned every frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	seed := flag.Int64("seed", 1, "Random seed for entity composition.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	log, err := config.NewLogger(config.LoggingConfig{Level: *logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting ECS stress test")

	// 1. Setup World and Scheduler
	w := ecs.NewWorld(ecs.WorldConfig{EntityCapacity: *entityCount}, log)
	RegisterAllGeneratedComponents(w)
	RegisterAllGeneratedSystems(w)
	scheduler := ecs.NewScheduler(w)

	// 2. Populate the world with initial entities
	log.Info("populating world", zap.Int("entities", *entityCount))
	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		SpawnRandomEntity(w, rng, rng.Intn(5)+1)
	}
	log.Info("population complete")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        systemCount,
		Churn:          *churnCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			if *churnCount > 0 {
				churn(w, scheduler.Commands(), rng, *churnCount)
			}

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.SetSystems(scheduler.Stats().Systems, 5)
	report.FinalEntities = w.Entities.Count()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", totalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
