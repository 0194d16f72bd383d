/*
Copyright (C) 2026 The boilsim authors.
This file is part of boilsim.

boilsim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

boilsim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with boilsim.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cli wires boilsim's thin dev CLI: a cobra root command with
// "validate" and "simulate" subcommands, configured through an
// InitializeConfig/Cfg/PersistentPreRunE pattern bound to
// github.com/lnashier/viper for config-file and flag resolution
// (spec.md §6).
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zawalonka/boilsim/internal/adapters/export"
	"github.com/zawalonka/boilsim/internal/adapters/scene"
	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/catalog/substance"
	"github.com/zawalonka/boilsim/internal/engine"
	"github.com/zawalonka/boilsim/internal/progression"
	"github.com/zawalonka/boilsim/internal/room"
)

// Exit codes, per spec.md §6: "0 ok, 2 validation error, 3 runtime halt."
const (
	ExitOK         = 0
	ExitValidation = 2
	ExitRuntime    = 3
)

// exitError pairs an error with the process exit code it should produce,
// so a RunE can report a typed failure without calling os.Exit itself.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func validationErr(err error) error { return &exitError{code: ExitValidation, err: err} }
func runtimeErr(err error) error    { return &exitError{code: ExitRuntime, err: err} }

// Cfg holds the CLI's configuration and I/O: a *viper.Viper for resolved
// flags/config values, shared by every command in the tree.
type Cfg struct {
	*viper.Viper

	Fs  afero.Fs
	Out io.Writer

	Root        *cobra.Command
	validateCmd *cobra.Command
	simulateCmd *cobra.Command
}

// InitializeConfig builds the Cfg and its command tree. fs and out are
// injected rather than defaulted to the OS filesystem and stdout so
// tests can run the commands against an in-memory filesystem and
// capture buffer.
func InitializeConfig(fs afero.Fs, out io.Writer) *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		Fs:    fs,
		Out:   out,
	}

	cfg.Root = &cobra.Command{
		Use:   "boilsim",
		Short: "A pot-boiling thermodynamics simulator.",
		Long: `boilsim drives a pot/room/burner thermodynamics simulation engine.
It is a thin operational shell: validate checks a data catalog loads
cleanly, and simulate replays a scripted scenario and prints a JSONL
trace.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg.Root.PersistentFlags().String("config", "", "config file location")
	cfg.Root.PersistentFlags().String("data-root", "data", "root directory of the substance/equipment data catalog")
	cfg.BindPFlag("config", cfg.Root.PersistentFlags().Lookup("config"))
	cfg.BindPFlag("data-root", cfg.Root.PersistentFlags().Lookup("data-root"))

	cfg.validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the substance and equipment catalogs.",
		Long:  "validate loads every substance and equipment record under --data-root and reports the first validation failure, if any.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cfg)
		},
	}

	cfg.simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Replay a scripted scenario and print a JSONL trace.",
		Long:  "simulate loads a scenario file, applies its scripted inputs, advances the engine tick by tick, and prints one JSON trace line per tick to stdout.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cfg)
		},
	}
	cfg.simulateCmd.Flags().String("scenario", "", "path to the scenario JSON file")
	cfg.simulateCmd.Flags().Int("ticks", 100, "number of engine ticks to advance")
	cfg.BindPFlag("scenario", cfg.simulateCmd.Flags().Lookup("scenario"))
	cfg.BindPFlag("ticks", cfg.simulateCmd.Flags().Lookup("ticks"))

	cfg.Root.AddCommand(cfg.validateCmd, cfg.simulateCmd)
	return cfg
}

// setConfig finds and reads in the configuration file, if one was given.
func setConfig(cfg *Cfg) error {
	if cfgPath := cfg.GetString("config"); cfgPath != "" {
		cfg.SetConfigFile(cfgPath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("boilsim: problem reading configuration file: %w", err)
		}
	}
	return nil
}

// Execute runs the CLI with the given arguments against fs, writing
// output to out, and returns the process exit code spec.md §6 specifies.
func Execute(args []string, fs afero.Fs, out io.Writer) int {
	cfg := InitializeConfig(fs, out)
	cfg.Root.SetArgs(args)
	cfg.Root.SetOut(out)

	err := cfg.Root.Execute()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if ok := asExitError(err, &ee); ok {
		fmt.Fprintln(out, ee.Error())
		return ee.code
	}
	fmt.Fprintln(out, err.Error())
	return ExitValidation
}

func asExitError(err error, target **exitError) bool {
	for err != nil {
		if ee, ok := err.(*exitError); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func loadCatalogs(cfg *Cfg) (*substance.Catalog, *equipment.Catalog, error) {
	root := cfg.GetString("data-root")
	subCat, err := substance.LoadAll(cfg.Fs, filepath.Join(root))
	if err != nil {
		return nil, nil, err
	}
	eqCat, err := equipment.LoadAll(cfg.Fs, root)
	if err != nil {
		return nil, nil, err
	}
	return subCat, eqCat, nil
}

func runValidate(cfg *Cfg) error {
	_, eqCat, err := loadCatalogs(cfg)
	if err != nil {
		return validationErr(err)
	}
	fmt.Fprintf(cfg.Out, "ok: %d burners, %d ac units, %d air handlers, room %q loaded\n",
		len(eqCat.Burners), len(eqCat.ACUnits), len(eqCat.AirHandlers), eqCat.Room.PressureMode)
	return nil
}

// traceLine is one JSONL record emitted per simulated tick.
type traceLine struct {
	Tick       int             `json:"tick"`
	PotC       float64         `json:"pot_temperature_c"`
	Phase      string          `json:"pot_phase"`
	RoomC      float64         `json:"room_temperature_c"`
	RoomPa     float64         `json:"room_pressure_pa"`
	Boiled     bool            `json:"boiled,omitempty"`
	Decomposed bool            `json:"decomposed,omitempty"`
	Alerts     []string        `json:"alerts,omitempty"`
	Scorecard  json.RawMessage `json:"scorecard,omitempty"`
}

func runSimulate(cfg *Cfg) error {
	scenarioPath := cfg.GetString("scenario")
	if scenarioPath == "" {
		return validationErr(fmt.Errorf("boilsim: simulate requires --scenario"))
	}
	ticks := cfg.GetInt("ticks")

	scn, err := LoadScenario(cfg.Fs, scenarioPath)
	if err != nil {
		return validationErr(err)
	}

	savedRoot := cfg.GetString("data-root")
	if scn.DataRoot != "" {
		cfg.Set("data-root", scn.DataRoot)
	}
	subCat, eqCat, err := loadCatalogs(cfg)
	cfg.Set("data-root", savedRoot)
	if err != nil {
		return validationErr(err)
	}

	e := engine.New(subCat, eqCat, nil)
	if err := scene.Apply(e, scn.setupActions()); err != nil {
		return validationErr(err)
	}

	tracker := progression.NewTracker([]progression.Experiment{
		{ID: scn.ExperimentID, UnlocksRoomControls: scn.UnlocksRoomControls},
	})
	if scn.UnlocksRoomControls {
		tracker.Advance()
	}
	e.SetRoomControlsUnlocked(tracker.RoomControlsUnlocked())

	roomStartTempC := e.RoomState().TemperatureC
	var compositionBefore map[string]float64
	if tracker.RoomControlsUnlocked() {
		compositionBefore = cloneComposition(e.RoomState().Composition)
	}

	enc := json.NewEncoder(cfg.Out)
	for tick := 0; tick < ticks; tick++ {
		if acts := scn.actionsAtTick(tick); len(acts) > 0 {
			if err := scene.Apply(e, acts); err != nil {
				return runtimeErr(err)
			}
		}

		snap, events, err := e.Advance(scn.TickSeconds)
		if err != nil {
			return runtimeErr(err)
		}

		line := traceLine{
			Tick:   tick,
			PotC:   snap.Pot.TemperatureC,
			Phase:  string(snap.Pot.Phase),
			RoomC:  snap.Room.TemperatureC,
			RoomPa: snap.Room.PressurePa,
		}
		for _, ev := range events {
			if ev.Boil != nil {
				line.Boiled = true

				var roomState *room.State
				if tracker.RoomControlsUnlocked() {
					roomState = e.RoomState()
				}
				sc := tracker.Freeze(
					scn.ExperimentID,
					float64(tick)*scn.TickSeconds,
					&snap.Pot,
					ev.Boil,
					e.Burner(),
					e.BurnerStepIndex(),
					snap.AltitudeM,
					snap.Room.PressurePa,
					roomState,
					compositionBefore,
					roomStartTempC,
					e.SpecificHeatJPerGC(),
				)
				scJSON, err := export.JSON(sc)
				if err != nil {
					return runtimeErr(err)
				}
				line.Scorecard = scJSON
			}
			if ev.Decomposition != nil {
				line.Decomposed = true
			}
			if ev.Alert != nil {
				line.Alerts = append(line.Alerts, ev.Alert.Message)
			}
		}
		if err := enc.Encode(line); err != nil {
			return runtimeErr(err)
		}
	}

	if scorecards := tracker.Scorecards(); len(scorecards) > 0 {
		csvData, err := export.CSV(scorecards)
		if err != nil {
			return runtimeErr(err)
		}
		csvPath := filepath.Join(filepath.Dir(scenarioPath), "scorecards.csv")
		if err := afero.WriteFile(cfg.Fs, csvPath, csvData, 0o644); err != nil {
			return runtimeErr(err)
		}
	}
	return nil
}

func cloneComposition(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
