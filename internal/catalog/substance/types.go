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

// Package substance loads, validates, and resolves the substance catalog:
// compounds, solutions, and elements, each described by a JSON record
// under a data root (spec.md §3, §4.2).
package substance

import "encoding/json"

// Phase is the substance's phase at ambient laboratory conditions.
type Phase string

const (
	PhaseSolid  Phase = "solid"
	PhaseLiquid Phase = "liquid"
	PhaseGas    Phase = "gas"
)

// AntoineCoefficients are the empirical A/B/C coefficients together with
// the range over which they were verified. T_min/T_max are not clamps;
// they are only used to flag extrapolated results (spec.md §3).
type AntoineCoefficients struct {
	A, B, C  float64 `json:"-"`
	RawA     float64 `json:"A"`
	RawB     float64 `json:"B"`
	RawC     float64 `json:"C"`
	TMinC    float64 `json:"t_min_c"`
	TMaxC    float64 `json:"t_max_c"`
}

// DecompositionProduct is one species released when a substance passes
// its decomposition point.
type DecompositionProduct struct {
	SpeciesID  string  `json:"species_id"`
	MolesPerKg float64 `json:"moles_per_kg"`
}

// ExposureLimits are the hazard thresholds for a substance's vapor, in ppm.
type ExposureLimits struct {
	WarnPPM     float64 `json:"warn"`
	CriticalPPM float64 `json:"critical"`
}

// Substance is an immutable catalog record, as specified in spec.md §3.
type Substance struct {
	ID                      string                  `json:"id"`
	Name                    string                  `json:"name"`
	MolarMassKgPerMol       float64                 `json:"molar_mass_kg_per_mol"`
	PhaseAtAmbient          Phase                   `json:"phase_at_ambient"`
	SpecificHeatJPerGC      map[Phase]float64       `json:"specific_heat_j_per_g_c"`
	LatentHeatVapKJPerKg    float64                 `json:"latent_heat_vap_kj_per_kg"`
	LatentHeatFusKJPerKg    *float64                `json:"latent_heat_fus_kj_per_kg,omitempty"`
	Antoine                 *AntoineCoefficients    `json:"antoine,omitempty"`
	MeltingPointC           float64                 `json:"melting_point_c"`
	BoilingPointSeaLevelC   float64                 `json:"boiling_point_sea_level_c"`
	VanHoffFactor           float64                 `json:"van_hoff_factor"`
	MolalityMolPerKg        float64                 `json:"molality_mol_per_kg"`
	NonVolatileMassFraction float64                 `json:"non_volatile_mass_fraction"`
	CoolingCoefficient      float64                 `json:"cooling_coefficient"`
	DecompositionPointC     *float64                `json:"decomposition_point_c,omitempty"`
	DecompositionProducts   []DecompositionProduct  `json:"decomposition_products,omitempty"`
	RequiresRoomControls    bool                    `json:"requires_room_controls"`
	ExposureLimitsPPM       *ExposureLimits         `json:"exposure_limits_ppm,omitempty"`

	// CanBoil is derived at load time: false when Antoine coefficients are
	// absent (spec.md §6 data-file notes).
	CanBoil bool `json:"-"`

	// Extra preserves unknown top-level keys without interpreting them
	// (spec.md §4.2).
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a substance record while preserving unknown keys in
// Extra, so future catalog fields don't get silently discarded by older
// code reading a newer data file.
func (s *Substance) UnmarshalJSON(data []byte) error {
	type alias Substance
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Substance(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := map[string]bool{
		"id": true, "name": true, "molar_mass_kg_per_mol": true,
		"phase_at_ambient": true, "specific_heat_j_per_g_c": true,
		"latent_heat_vap_kj_per_kg": true, "latent_heat_fus_kj_per_kg": true,
		"antoine": true, "melting_point_c": true, "boiling_point_sea_level_c": true,
		"van_hoff_factor": true, "molality_mol_per_kg": true,
		"non_volatile_mass_fraction": true, "cooling_coefficient": true,
		"decomposition_point_c": true, "decomposition_products": true,
		"requires_room_controls": true, "exposure_limits_ppm": true,
	}
	extra := map[string]json.RawMessage{}
	for k, v := range raw {
		if !known[k] {
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		s.Extra = extra
	}
	if s.VanHoffFactor == 0 {
		s.VanHoffFactor = 1
	}
	if s.Antoine != nil {
		s.Antoine.A = s.Antoine.RawA
		s.Antoine.B = s.Antoine.RawB
		s.Antoine.C = s.Antoine.RawC
	}
	s.CanBoil = s.Antoine != nil
	return nil
}

// Kind tags which catalog subtree a record came from.
type Kind string

const (
	KindElement Kind = "element"
	KindPure    Kind = "pure_compound"
	KindSolution Kind = "solution"
)
