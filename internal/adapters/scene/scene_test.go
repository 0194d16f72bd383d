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

package scene

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/catalog/substance"
	"github.com/zawalonka/boilsim/internal/engine"
)

const waterJSON = `{
	"id": "water",
	"name": "Water",
	"molar_mass_kg_per_mol": 0.018015,
	"phase_at_ambient": "liquid",
	"specific_heat_j_per_g_c": {"liquid": 4.186},
	"latent_heat_vap_kj_per_kg": 2257,
	"antoine": {"A": 8.07131, "B": 1730.63, "C": 233.426, "t_min_c": 1, "t_max_c": 100},
	"melting_point_c": 0,
	"boiling_point_sea_level_c": 100,
	"van_hoff_factor": 1,
	"non_volatile_mass_fraction": 0,
	"cooling_coefficient": 0.0005
}`

const roomJSON = `{
	"volume_m3": 30, "initial_temp_c": 20, "heat_capacity_j_per_c": 36000,
	"initial_composition": {"N2": 0.78, "O2": 0.21, "Ar": 0.01}, "pressure_mode": "sealevel"
}`

const burnerJSON = `{
	"id": "standard", "max_watts": 2500, "min_watts": 0, "efficiency": 1.0,
	"wattage_steps": [0, 500, 1000, 2000, 2500]
}`

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/substances/compounds/water.json", []byte(waterJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/data/equipment/room.json", []byte(roomJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/data/equipment/burners/standard.json", []byte(burnerJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	subCat, err := substance.LoadAll(fs, "/data/substances")
	if err != nil {
		t.Fatal(err)
	}
	eqCat, err := equipment.LoadAll(fs, "/data/equipment")
	if err != nil {
		t.Fatal(err)
	}
	return engine.New(subCat, eqCat, nil)
}

func TestApplyAppliesActionsInOrder(t *testing.T) {
	e := testEngine(t)
	actions := []Action{
		{Kind: ActionSetSubstance, SubstanceID: "water", FillMassKg: 1.0},
		{Kind: ActionSetBurnerStep, BurnerID: "standard", BurnerStepIndex: 3},
		{Kind: ActionSetPotPosition, PotOverBurner: true},
		{Kind: ActionSetSpeed, SpeedMultiplier: 2.0},
	}
	if err := Apply(e, actions); err != nil {
		t.Fatal(err)
	}

	snap, _, err := e.Advance(0.25)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Pot.SubstanceID != "water" {
		t.Errorf("expected substance water applied, got %v", snap.Pot.SubstanceID)
	}
	if snap.SpeedMultiplier != 2.0 {
		t.Errorf("expected speed multiplier 2.0, got %v", snap.SpeedMultiplier)
	}
}

func TestApplyStopsOnFirstError(t *testing.T) {
	e := testEngine(t)
	actions := []Action{
		{Kind: ActionSetSubstance, SubstanceID: "nonexistent", FillMassKg: 1.0},
		{Kind: ActionSetBurnerStep, BurnerID: "standard", BurnerStepIndex: 3},
	}
	if err := Apply(e, actions); err == nil {
		t.Fatal("expected an error for the unknown substance")
	}
}
