package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mfairbrother/knocksim/internal/logger"
	"github.com/mfairbrother/knocksim/pkg/registry"
	"github.com/mfairbrother/knocksim/pkg/sim"
	"github.com/mfairbrother/knocksim/pkg/store"
)

const usage = `knocksim <command> [args]

Commands:
  install <ratings.json> [notes]   register a ratings artifact and activate it
  activate <model-run-id>          make a previously installed model run active
  models                           list installed model runs
  teams                            list team names known to the active model
  simulate <teamA,teamB,...> [n]   run a knockout tournament simulation
  show <simulation-id>             display a previously saved simulation
  runs                             list recent simulation runs
`

func main() {
	logger.SetShowDateTime(true)

	if path := os.Getenv("KNOCKSIM_CONFIG"); path != "" {
		if err := sim.LoadConfig(path); err != nil {
			logger.Fatal("Failed to load configuration:", err)
		}
	}

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	store.SetDbPath(sim.Config.DbPath)
	if err := store.Init(); err != nil {
		logger.Fatal("Failed to initialize store:", err)
	}
	if err := registry.Init(); err != nil {
		logger.Fatal("Failed to initialize model registry:", err)
	}
	defer store.CloseDatabase()

	reg := registry.New()
	service := &sim.Service{Models: reg, Recorder: store.Recorder{}}

	var err error
	switch os.Args[1] {
	case "install":
		err = runInstall(reg, os.Args[2:])
	case "activate":
		err = runActivate(reg, os.Args[2:])
	case "models":
		err = runModels()
	case "teams":
		err = runTeams(reg)
	case "simulate":
		err = runSimulate(service, os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "runs":
		err = runList()
	default:
		fmt.Print(usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed:", err)
		os.Exit(1)
	}
}

func runInstall(reg *registry.Registry, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("install requires a ratings artifact path")
	}
	notes := ""
	if len(args) > 1 {
		notes = strings.Join(args[1:], " ")
	}

	run, err := reg.Install(args[0], notes)
	if err != nil {
		return err
	}
	fmt.Println(run.ID)
	return nil
}

func runActivate(reg *registry.Registry, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("activate requires exactly one model run id")
	}
	return reg.Activate(args[0])
}

func runModels() error {
	runs, err := registry.ListModelRuns(20)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  %s  %s\n", run.ID, run.Status, run.CreatedAt.Format("2006-01-02 15:04"), run.ArtifactPath)
	}
	return nil
}

func runTeams(reg *registry.Registry) error {
	teams, err := reg.KnownTeams()
	if err != nil {
		return err
	}
	for _, t := range teams {
		fmt.Println(t)
	}
	return nil
}

func runSimulate(service *sim.Service, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("simulate requires a comma-separated team list")
	}

	teams := strings.Split(args[0], ",")
	for i := range teams {
		teams[i] = strings.TrimSpace(teams[i])
	}

	nRuns := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("run count must be an integer, got %q", args[1])
		}
		nRuns = n
	}

	res, err := service.Simulate(teams, nRuns, false)
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}

func runShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show requires exactly one simulation id")
	}

	res, err := store.GetSimulation(args[0])
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}

func runList() error {
	runs, err := store.ListSimulations(20)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  runs=%d\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Runs)
	}
	return nil
}

func printResult(res *sim.SimulationResult) {
	fmt.Printf("simulation %s (%d runs, seed %d)\n", res.ID, res.Runs, res.Seed)
	if res.ModelRunID != "" {
		fmt.Printf("model run %s\n", res.ModelRunID)
	}
	for _, team := range res.Teams {
		r := res.Results[team]
		fmt.Printf("%-24s champion %6.2f%%  final %6.2f%%  semi %6.2f%%\n",
			team, r.ChampionProb*100, r.FinalistProb*100, r.SemifinalProb*100)
	}
}
