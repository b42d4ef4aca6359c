package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"skyshield/internal/admin"
	"skyshield/internal/catalog"
	"skyshield/internal/config"
	"skyshield/internal/engine"
	"skyshield/internal/logging"
)

var (
	simConfigPath string
	simSchemaPath string
	simScenario   string
	simTick       time.Duration
	simLogFile    string
	simTUI        bool
	simJSONOut    bool
	simAdminAddr  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time threat simulator",
	Long:  "simulate starts a mission engine spawning aerial threats and resolving countermeasure engagements, with optional TUI console and telemetry export.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		cat, err := catalog.FromConfig(cfg)
		if err != nil {
			return err
		}

		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		tw, ew, sw, tui, cleanup, err := newWriters(cfg, simTUI, simJSONOut, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		missionID := os.Getenv("MISSION_ID")
		if missionID == "" {
			missionID = "mission-01"
		}
		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		eng := engine.New(missionID, cfg, cat, tw, ew, sw, tickInterval, nil)

		scenario := simScenario
		if scenario == "" {
			scenario = cfg.DefaultScenario
		}
		if scenario != "" {
			if err := eng.StartScenario(scenario); err != nil {
				return err
			}
		}

		if tui != nil {
			tui.SetPauseFunc(func() bool {
				if eng.RunStateNow() == engine.RunRunning {
					eng.Pause()
					return true
				}
				eng.Resume()
				return false
			})
			tui.SetFastForwardFunc(func(n int) { eng.TickN(n) })
			tui.SetAssignFunc(eng.Assign)
		}

		if simAdminAddr != "" {
			srv := admin.NewServer(eng)
			go func() {
				log.Info("admin surface listening", "addr", simAdminAddr)
				if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		go eng.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		log.Info("mission simulation stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/defense.yaml", "Path to defense configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/defense.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Scenario preset to start (defaults to config default_scenario)")
	simulateCmd.Flags().DurationVar(&simTick, "tick", time.Second, "Simulation tick interval (e.g. 500ms, 2s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export track/event/state logs (JSONL)")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render the interactive mission console")
	simulateCmd.Flags().BoolVar(&simJSONOut, "json", false, "Print rows as JSON instead of colorized output")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin", ":8080", "Admin surface listen address (empty to disable)")
}
