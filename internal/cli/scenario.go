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

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/zawalonka/boilsim/internal/adapters/scene"
)

// actionJSON is the on-disk shape of a scene.Action, named the way a
// scenario author writes it rather than the way the engine stores it.
type actionJSON struct {
	Kind            scene.ActionKind `json:"kind"`
	BurnerID        string           `json:"burner_id,omitempty"`
	BurnerStepIndex int              `json:"burner_step_index,omitempty"`
	PotOverBurner   bool             `json:"pot_over_burner,omitempty"`
	SubstanceID     string           `json:"substance_id,omitempty"`
	FillMassKg      float64          `json:"fill_mass_kg,omitempty"`
	AltitudeM       float64          `json:"altitude_m,omitempty"`
	ACID            string           `json:"ac_id,omitempty"`
	ACEnabled       bool             `json:"ac_enabled,omitempty"`
	ACSetpointC     float64          `json:"ac_setpoint_c,omitempty"`
	AirHandlerID    string           `json:"air_handler_id,omitempty"`
	AirHandlerOn    bool             `json:"air_handler_on,omitempty"`
	AirHandlerMode  string           `json:"air_handler_mode,omitempty"`
	SpeedMultiplier float64          `json:"speed_multiplier,omitempty"`
}

func (a actionJSON) toAction() scene.Action {
	return scene.Action{
		Kind:            a.Kind,
		BurnerID:        a.BurnerID,
		BurnerStepIndex: a.BurnerStepIndex,
		PotOverBurner:   a.PotOverBurner,
		SubstanceID:     a.SubstanceID,
		FillMassKg:      a.FillMassKg,
		AltitudeM:       a.AltitudeM,
		ACID:            a.ACID,
		ACEnabled:       a.ACEnabled,
		ACSetpointC:     a.ACSetpointC,
		AirHandlerID:    a.AirHandlerID,
		AirHandlerOn:    a.AirHandlerOn,
		AirHandlerMode:  a.AirHandlerMode,
		SpeedMultiplier: a.SpeedMultiplier,
	}
}

// timedInput is one scenario entry: an action applied at the start of a
// given tick.
type timedInput struct {
	AtTick int        `json:"at_tick"`
	Action actionJSON `json:"action"`
}

// Scenario describes a scripted simulate run: where its catalogs live,
// which actions to apply at startup, and which actions to apply at
// specific ticks thereafter (spec.md §6's "a thin dev CLI... simulate
// --scenario file.json").
type Scenario struct {
	DataRoot            string       `json:"data_root"`
	ExperimentID        string       `json:"experiment_id"`
	TickSeconds         float64      `json:"tick_seconds"`
	UnlocksRoomControls bool         `json:"unlocks_room_controls,omitempty"`
	Setup               []actionJSON `json:"setup"`
	Inputs              []timedInput `json:"inputs"`
}

// setupActions returns the scenario's startup actions as scene.Actions.
func (sc *Scenario) setupActions() []scene.Action {
	out := make([]scene.Action, len(sc.Setup))
	for i, a := range sc.Setup {
		out[i] = a.toAction()
	}
	return out
}

// actionsAtTick returns the scripted actions, if any, due at the start of
// the given tick index.
func (sc *Scenario) actionsAtTick(tick int) []scene.Action {
	var out []scene.Action
	for _, in := range sc.Inputs {
		if in.AtTick == tick {
			out = append(out, in.Action.toAction())
		}
	}
	return out
}

// LoadScenario reads and decodes a scenario file from fs, filling in
// defaults for data_root and tick_seconds when the file omits them.
func LoadScenario(fs afero.Fs, path string) (*Scenario, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("boilsim: problem reading scenario file: %w", err)
	}
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("boilsim: problem parsing scenario file: %w", err)
	}
	if sc.DataRoot == "" {
		sc.DataRoot = "data"
	}
	if sc.TickSeconds <= 0 {
		sc.TickSeconds = 1.0
	}
	return &sc, nil
}
