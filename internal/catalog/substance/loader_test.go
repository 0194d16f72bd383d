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

package substance

import (
	"math"
	"testing"

	"github.com/spf13/afero"
)

func absDiff(a, b, tol float64) bool {
	return math.Abs(a-b) > tol
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

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
	"molality_mol_per_kg": 0,
	"non_volatile_mass_fraction": 0,
	"cooling_coefficient": 0.002,
	"requires_room_controls": false
}`

const saltwaterJSON = `{
	"id": "saltwater3pct",
	"name": "3% Saltwater",
	"molar_mass_kg_per_mol": 0.018015,
	"phase_at_ambient": "liquid",
	"specific_heat_j_per_g_c": {"liquid": 4.0},
	"latent_heat_vap_kj_per_kg": 2257,
	"antoine": {"A": 8.07131, "B": 1730.63, "C": 233.426, "t_min_c": 1, "t_max_c": 100},
	"melting_point_c": -1.7,
	"boiling_point_sea_level_c": 100.5,
	"van_hoff_factor": 1.9,
	"molality_mol_per_kg": 0.513,
	"non_volatile_mass_fraction": 0.03,
	"cooling_coefficient": 0.002,
	"requires_room_controls": false,
	"custom_field": "preserved"
}`

func TestLoadAllWaterAndAvailability(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/compounds/water.json", waterJSON)

	cat, err := LoadAll(fs, "/data")
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cat.Get("water")
	if !ok {
		t.Fatal("water not loaded")
	}
	if !s.CanBoil {
		t.Errorf("expected CanBoil=true for water")
	}
	kind, _ := cat.Kind("water")
	if kind != KindPure {
		t.Errorf("expected KindPure, got %v", kind)
	}

	ids := cat.AvailableFor(20, false)
	if len(ids) != 1 || ids[0] != "water" {
		t.Errorf("expected [water] available at 20C, got %v", ids)
	}
	ids = cat.AvailableFor(-5, false)
	if len(ids) != 0 {
		t.Errorf("expected no substances available below freezing, got %v", ids)
	}
}

func TestLoadAllPreservesUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/solutions/saltwater.json", saltwaterJSON)
	cat, err := LoadAll(fs, "/data")
	if err != nil {
		t.Fatal(err)
	}
	s, _ := cat.Get("saltwater3pct")
	if s.Extra == nil || len(s.Extra["custom_field"]) == 0 {
		t.Errorf("expected custom_field preserved in Extra, got %v", s.Extra)
	}
}

func TestLoadAllRejectsInconsistentAntoine(t *testing.T) {
	fs := afero.NewMemMapFs()
	bad := `{
		"id": "bad",
		"name": "Bad",
		"molar_mass_kg_per_mol": 0.018,
		"phase_at_ambient": "liquid",
		"specific_heat_j_per_g_c": {"liquid": 4.0},
		"latent_heat_vap_kj_per_kg": 2257,
		"antoine": {"A": 8.07131, "B": 1730.63, "C": 233.426, "t_min_c": 1, "t_max_c": 100},
		"melting_point_c": 0,
		"boiling_point_sea_level_c": 50,
		"van_hoff_factor": 1
	}`
	writeFile(t, fs, "/data/compounds/bad.json", bad)
	_, err := LoadAll(fs, "/data")
	if err == nil {
		t.Fatal("expected inconsistency error")
	}
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != Inconsistent {
		t.Errorf("expected Inconsistent error, got %#v", err)
	}
}

func TestEffectiveBoilingPointSaltwaterElevation(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/solutions/saltwater.json", saltwaterJSON)
	cat, err := LoadAll(fs, "/data")
	if err != nil {
		t.Fatal(err)
	}
	res, err := cat.EffectiveBoilingPoint("saltwater3pct", 101325)
	if err != nil {
		t.Fatal(err)
	}
	if absDiff(res.TempC, 100.50, 0.1) {
		t.Errorf("expected ~100.50C effective boiling point, got %.3f", res.TempC)
	}
}

func TestEffectiveBoilingPointUnknownSpecies(t *testing.T) {
	fs := afero.NewMemMapFs()
	cat, err := LoadAll(fs, "/data")
	if err != nil {
		t.Fatal(err)
	}
	_, err = cat.EffectiveBoilingPoint("nope", 101325)
	if err == nil {
		t.Fatal("expected unknown species error")
	}
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != UnknownSpecies {
		t.Errorf("expected UnknownSpecies, got %#v", err)
	}
}
