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

// Package export serializes frozen Scorecards to the two persisted
// formats spec.md §6 names: stable-schema JSON and flat-denormalized
// CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/zawalonka/boilsim/internal/progression"
)

// scorecardJSON mirrors spec.md §6's named top-level fields exactly, so
// the schema stays stable even if progression.Scorecard's internal shape
// changes.
type scorecardJSON struct {
	ExperimentID string                   `json:"experiment_id"`
	TimestampS   float64                  `json:"timestamp"`
	Pot          progression.PotSummary   `json:"pot"`
	Room         *progression.RoomSummary `json:"room,omitempty"`
	Metrics      progression.Metrics      `json:"metrics"`
	Fingerprint  string                   `json:"fingerprint"`
}

// JSON renders a single Scorecard as stable-schema JSON.
func JSON(sc *progression.Scorecard) ([]byte, error) {
	doc := scorecardJSON{
		ExperimentID: sc.ExperimentID,
		TimestampS:   sc.TimestampS,
		Pot:          sc.Pot,
		Room:         sc.Room,
		Metrics:      sc.Metrics,
		Fingerprint:  sc.Fingerprint,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// csvHeader is fixed, per spec.md §6 ("header row fixed").
var csvHeader = []string{
	"experiment_id", "timestamp", "substance_id", "temperature_c",
	"effective_boiling_c", "time_to_boil_s", "burner_step_index",
	"altitude_m", "pressure_pa", "room_temp_delta_c",
}

// CSV renders a flat denormalization of one or more Scorecards, one row
// per scorecard, with the fixed header above.
func CSV(scorecards []*progression.Scorecard) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, sc := range scorecards {
		roomDelta := ""
		if sc.Room != nil {
			roomDelta = fmt.Sprintf("%g", sc.Room.TempDeltaC)
		}
		row := []string{
			sc.ExperimentID,
			fmt.Sprintf("%g", sc.TimestampS),
			sc.Pot.SubstanceID,
			fmt.Sprintf("%g", sc.Pot.TemperatureC),
			fmt.Sprintf("%g", sc.Pot.EffectiveBoilingC),
			fmt.Sprintf("%g", sc.Pot.TimeToBoilS),
			fmt.Sprintf("%d", sc.Pot.BurnerStepIndex),
			fmt.Sprintf("%g", sc.Pot.AltitudeM),
			fmt.Sprintf("%g", sc.Pot.PressurePa),
			roomDelta,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
