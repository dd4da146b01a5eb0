package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sheikhrachel/gol-arena/model"
	"github.com/sheikhrachel/gol-arena/utils"
)

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, grid *model.Grid) {
	fmt.Printf("Features: Memory Pool: %v, Parallel: %v (%d workers)\n",
		config.UseMemoryPool, config.UseParallel, config.EngineWorkers())
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		grid.Size(), grid.Size(), grid.CountLivingCells())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState updates the game state and returns status information
func updateGameState(
	grid *model.Grid,
	history *model.History,
	generation int,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string, bool) {
	pop := grid.Population()
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.Size()*grid.Size()) * 100

	// Update performance stats
	frameDuration := time.Since(lastFrameTime)
	stats.Update(generation, pop, frameDuration)

	// compare against earlier states before recording this one
	hash := grid.Hash()
	isStagnant := history.IsStagnant(hash)
	history.Observe(hash)

	status := "Active"
	if isStagnant {
		status = fmt.Sprintf("Stagnant (%d)", generation)
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(
	generation, livingCells int,
	density float64,
	status string,
	grid *model.Grid,
	stats *utils.Stats,
	lastRestartGen int,
) {
	pop := grid.Population()
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Printf("Players: P1 %d | P2 %d | P3 %d | Neutral %d | Leader: P%d\n",
		pop[model.Player1], pop[model.Player2], pop[model.Player3], pop[model.Neutral], stats.Leader())
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())

	// Show time since last restart
	if generation > lastRestartGen {
		fmt.Printf("Generations since restart: %d\n", generation-lastRestartGen)
	}
	fmt.Println()
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// runTerminal advances the world locally and renders every generation until
// ctx is done or the generation limit is reached.
func runTerminal(ctx context.Context, config utils.Config, grid *model.Grid, engine *model.Engine) {
	var (
		renderer       = &model.TerminalRenderer{}
		stats          = utils.NewStats()
		history        = &model.History{}
		ticker         = time.NewTicker(config.TickInterval)
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)
	defer ticker.Stop()
	displayGameInfo(config, grid)

	for {
		frameStart := time.Now()
		renderer.Clear()

		livingCells, density, status, isStagnant := updateGameState(grid, history, generation, lastFrameTime, stats)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		displayGameStatus(generation, livingCells, density, status, grid, stats, lastRestartGen)
		renderer.Display(grid.Snapshot())

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return
		}

		shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, config)
		if shouldRestart && config.AutoRestart {
			fmt.Printf("🔄 Restarting due to %s...\n", restartReason)
			grid.Randomize()
			history.Reset()
			lastRestartGen = generation
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			grid.InjectRandomLife(config.InjectionCount)
		}

		engine.Step(grid)
		generation++

		select {
		case <-ctx.Done():
			fmt.Println("\n🛑 Shutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds\n",
				generation, time.Since(stats.StartTime).Seconds())
			fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
				stats.GenerationsPerSecond, stats.AveragePopulation)
			return
		case <-ticker.C:
		}
	}
}
