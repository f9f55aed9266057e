package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"schedgen/internal/schedule"
	"schedgen/internal/solver"
)

var (
	configPath string
	engineName string
	outFile    string
	withReport bool
	seed       int64
	verbose    bool

	engines = map[string]func(schedule.Evaluator, schedule.Parameters, *zap.Logger) solver.Solver{
		"genetic":   solver.NewGeneticSolver,
		"hillclimb": solver.NewHillClimbSolver,
	}
)

func main() {
	cmdSolve := &cobra.Command{
		Use:   "solve",
		Short: "Search for a low-cost timetable",
		Run:   runSolve,
	}
	cmdSolve.Flags().StringVar(&configPath, "config", "", "path to the run configuration file")
	cmdSolve.Flags().StringVar(&engineName, "engine", "genetic", `search engine to use: "genetic" or "hillclimb"`)
	cmdSolve.Flags().StringVar(&outFile, "out", "schedule.json", "path the best schedule is written to")
	cmdSolve.Flags().BoolVar(&withReport, "report", false, "print the violation report of the best individual")
	cmdSolve.Flags().Int64Var(&seed, "seed", 0, "override the configured random seed")
	cmdSolve.Flags().BoolVar(&verbose, "verbose", false, "log every generation")

	cmdDescribe := &cobra.Command{
		Use:   "describe",
		Short: "Print a persisted schedule as an indented document",
		Run:   runDescribe,
	}
	cmdDescribe.Flags().StringVar(&configPath, "config", "", "path to the run configuration file")
	cmdDescribe.Flags().StringVar(&outFile, "schedule", "schedule.json", "path to the persisted schedule")

	rootCmd := &cobra.Command{
		Use:   "schedgen",
		Short: "University timetable generator",
		Long: "A tool to search for university timetables that minimize the weighted\n" +
			"count of scheduling-rule violations",
	}
	rootCmd.AddCommand(cmdSolve, cmdDescribe)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) {
	if configPath == "" {
		log.Fatal("a configuration file must be specified")
	}
	if _, ok := engines[engineName]; !ok {
		log.Fatalf("%v is not a valid engine", engineName)
	}

	config, err := schedule.ConfigFromJSON(configPath)
	if err != nil {
		log.Fatalf("cannot parse configuration file: %v", err)
	}
	if cmd.Flags().Changed("seed") {
		config.Parameters.Seed = seed
	}

	problem, err := schedule.NewProblem(config.Problem)
	if err != nil {
		log.Fatalf("invalid problem configuration: %v", err)
	}

	var logger *zap.Logger
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("cannot initialize logger: %v", err)
		}
		defer logger.Sync()
	}

	evaluator := schedule.NewEvaluator(problem, config.Cost)
	engine := engines[engineName](evaluator, config.Parameters, logger)

	best, err := engine.Run()
	if err != nil {
		log.Fatalf("an error occurred during the search: %v", err)
	}

	table, err := problem.Reshape(best.Bits)
	if err != nil {
		log.Fatal(err)
	}
	if err := table.WriteJSON(outFile); err != nil {
		log.Fatalf("cannot write schedule: %v", err)
	}

	fmt.Printf("Best cost: %v\n", best.Cost)
	if withReport {
		if err := engine.Report(os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Schedule written to %v\n", outFile)
}

func runDescribe(cmd *cobra.Command, args []string) {
	if configPath == "" {
		log.Fatal("a configuration file must be specified")
	}

	config, err := schedule.ConfigFromJSON(configPath)
	if err != nil {
		log.Fatalf("cannot parse configuration file: %v", err)
	}
	problem, err := schedule.NewProblem(config.Problem)
	if err != nil {
		log.Fatalf("invalid problem configuration: %v", err)
	}

	table, err := schedule.TableFromJSON(outFile, problem)
	if err != nil {
		log.Fatalf("cannot read schedule: %v", err)
	}
	if err := table.Describe(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
