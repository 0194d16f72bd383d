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

// Package equipment loads and validates burner, AC-unit, air-handler, and
// room equipment records (spec.md §3, §4.3).
package equipment

// Burner describes a single burner's power delivery.
type Burner struct {
	ID            string    `json:"id"`
	MaxWatts      float64   `json:"max_watts"`
	MinWatts      float64   `json:"min_watts"`
	Efficiency    float64   `json:"efficiency"`
	WattageSteps  []float64 `json:"wattage_steps"`
}

// PIDConfig carries the tuning parameters for an AC unit's controller.
type PIDConfig struct {
	Kp                 float64 `json:"kp"`
	Ki                 float64 `json:"ki"`
	Kd                 float64 `json:"kd"`
	IntegralWindupLimit float64 `json:"integral_windup_limit"`
}

// ACUnit describes a climate-control unit.
type ACUnit struct {
	ID                    string    `json:"id"`
	CoolingMaxW           float64   `json:"cooling_max_w"`
	HeatingMaxW           float64   `json:"heating_max_w"`
	DeadbandC             float64   `json:"deadband_c"`
	PID                   PIDConfig `json:"pid"`
	MinSetpointC          float64   `json:"min_setpoint_c"`
	MaxSetpointC          float64   `json:"max_setpoint_c"`
	MaxRateOfChangeCPerS  float64   `json:"max_rate_of_change_c_per_s"`
}

// AirHandler describes a scrubber/ventilation unit.
type AirHandler struct {
	ID                    string             `json:"id"`
	MaxFlowM3PerH         float64            `json:"max_flow_m3_per_h"`
	FiltrationEfficiency  map[string]float64 `json:"filtration_efficiency"`
	TargetComposition     map[string]float64 `json:"target_composition"`
	Modes                 map[string]float64 `json:"modes"`
}

// EfficiencyFor returns the filtration efficiency for a species, falling
// back to the "toxic_generic" entry for unknown species (spec.md §4.4).
func (h *AirHandler) EfficiencyFor(speciesID string) float64 {
	if e, ok := h.FiltrationEfficiency[speciesID]; ok {
		return e
	}
	return h.FiltrationEfficiency["toxic_generic"]
}

// RoomConfig describes the static properties of a room (spec.md §3).
type RoomConfig struct {
	VolumeM3              float64            `json:"volume_m3"`
	InitialTempC          float64            `json:"initial_temp_c"`
	HeatCapacityJPerC      float64            `json:"heat_capacity_j_per_c"`
	InitialComposition    map[string]float64 `json:"initial_composition"`
	PressureMode          string             `json:"pressure_mode"`
	BurnerSpilloverFraction float64          `json:"burner_spillover_fraction,omitempty"`
	OutdoorAmbientC       float64            `json:"outdoor_ambient_c"`
	OutdoorLeakCoefficient float64           `json:"outdoor_leak_coefficient"`
}

const (
	PressureModeSeaLevel = "sealevel"
	PressureModeLocation = "location"
	PressureModeCustom   = "custom"
)
