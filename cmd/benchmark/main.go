package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"schedgen/internal/schedule"
	"schedgen/internal/solver"
)

var engineNames = []string{"genetic", "hillclimb"}

type benchmarkResult struct {
	Engine   string
	Seed     int64
	BestCost int
	Duration time.Duration
	History  []solver.GenerationStats
}

func main() {
	configPathPtr := flag.String("config", "", "Path to the run configuration file")
	runsPtr := flag.Int("runs", 5, "Number of seeded runs per engine")
	csvPathPtr := flag.String("csv", "benchmark.csv", "Path the result table is written to")
	plotPathPtr := flag.String("plot", "costs.png", "Path the cost-history plot is written to")
	flag.Parse()

	if *configPathPtr == "" {
		log.Fatal("a configuration file must be specified")
	}
	config, err := schedule.ConfigFromJSON(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot parse configuration file: %v", err)
	}
	problem, err := schedule.NewProblem(config.Problem)
	if err != nil {
		log.Fatalf("invalid problem configuration: %v", err)
	}
	evaluator := schedule.NewEvaluator(problem, config.Cost)

	var results []benchmarkResult
	for _, engineName := range engineNames {
		for run := range *runsPtr {
			parameters := config.Parameters
			parameters.Seed = config.Parameters.Seed + int64(run)

			var engine solver.Solver
			switch engineName {
			case "genetic":
				engine = solver.NewGeneticSolver(evaluator, parameters, zap.NewNop())
			case "hillclimb":
				engine = solver.NewHillClimbSolver(evaluator, parameters, zap.NewNop())
			}

			start := time.Now()
			best, err := engine.Run()
			if err != nil {
				log.Fatalf("%v run with seed %v failed: %v", engineName, parameters.Seed, err)
			}
			results = append(results, benchmarkResult{
				Engine:   engineName,
				Seed:     parameters.Seed,
				BestCost: best.Cost,
				Duration: time.Since(start),
				History:  engine.History(),
			})
			fmt.Printf("%v seed=%v best=%v\n", engineName, parameters.Seed, best.Cost)
		}
	}

	if err := writeCsv(*csvPathPtr, results); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
	if err := plotHistories(*plotPathPtr, results); err != nil {
		log.Fatalf("cannot plot cost histories: %v", err)
	}
	fmt.Printf("Results written to %v, plot written to %v\n", *csvPathPtr, *plotPathPtr)
}

func writeCsv(path string, results []benchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"engine", "seed", "best_cost", "duration_ms"}); err != nil {
		return err
	}
	for _, result := range results {
		record := []string{
			result.Engine,
			fmt.Sprintf("%v", result.Seed),
			fmt.Sprintf("%v", result.BestCost),
			fmt.Sprintf("%v", result.Duration.Milliseconds()),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// plotHistories draws one best-cost-per-generation line per engine, taken
// from each engine's first seeded run.
func plotHistories(path string, results []benchmarkResult) error {
	p := plot.New()
	p.Title.Text = "Best cost per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Cost"

	for _, engineName := range engineNames {
		result, ok := lo.Find(results, func(result benchmarkResult) bool {
			return result.Engine == engineName
		})
		if !ok {
			continue
		}

		points := make(plotter.XYs, len(result.History))
		for i, stats := range result.History {
			points[i].X = float64(stats.Generation)
			points[i].Y = float64(stats.BestCost)
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return err
		}
		p.Add(line)
		p.Legend.Add(engineName, line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
