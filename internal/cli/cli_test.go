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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
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

func fixtureFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/data/compounds/water.json":  waterJSON,
		"/data/room.json":             roomJSON,
		"/data/burners/standard.json": burnerJSON,
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestValidateSucceedsOnWellFormedCatalog(t *testing.T) {
	fs := fixtureFs(t)
	var out bytes.Buffer
	code := Execute([]string{"validate", "--data-root", "/data"}, fs, &out)
	if code != ExitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "ok:") {
		t.Errorf("expected ok message, got %q", out.String())
	}
}

func TestValidateFailsOnMissingRoom(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	code := Execute([]string{"validate", "--data-root", "/data"}, fs, &out)
	if code != ExitValidation {
		t.Fatalf("expected exit %d, got %d", ExitValidation, code)
	}
}

func TestSimulateRequiresScenarioFlag(t *testing.T) {
	fs := fixtureFs(t)
	var out bytes.Buffer
	code := Execute([]string{"simulate", "--data-root", "/data"}, fs, &out)
	if code != ExitValidation {
		t.Fatalf("expected exit %d, got %d: %s", ExitValidation, code, out.String())
	}
}

func TestSimulateBoilsWaterAndEmitsTrace(t *testing.T) {
	fs := fixtureFs(t)
	scenario := `{
		"data_root": "/data",
		"experiment_id": "s1",
		"tick_seconds": 1.0,
		"setup": [
			{"kind": "set_substance", "substance_id": "water", "fill_mass_kg": 0.5},
			{"kind": "set_burner_step", "burner_id": "standard", "burner_step_index": 4},
			{"kind": "set_pot_position", "pot_over_burner": true}
		]
	}`
	if err := afero.WriteFile(fs, "/scenario.json", []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Execute([]string{"simulate", "--scenario", "/scenario.json", "--ticks", "200"}, fs, &out)
	if code != ExitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 200 {
		t.Fatalf("expected 200 trace lines, got %d", len(lines))
	}

	var boiled bool
	for _, l := range lines {
		var tl traceLine
		if err := json.Unmarshal([]byte(l), &tl); err != nil {
			t.Fatalf("malformed trace line: %v", err)
		}
		if tl.Boiled {
			boiled = true
		}
	}
	if !boiled {
		t.Errorf("expected the trace to contain a boil event within 200 ticks")
	}
}

func TestSimulateFreezesScorecardOnBoilAndWritesCSV(t *testing.T) {
	fs := fixtureFs(t)
	scenario := `{
		"data_root": "/data",
		"experiment_id": "s1",
		"tick_seconds": 1.0,
		"setup": [
			{"kind": "set_substance", "substance_id": "water", "fill_mass_kg": 0.5},
			{"kind": "set_burner_step", "burner_id": "standard", "burner_step_index": 4},
			{"kind": "set_pot_position", "pot_over_burner": true}
		]
	}`
	if err := afero.WriteFile(fs, "/scenario.json", []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Execute([]string{"simulate", "--scenario", "/scenario.json", "--ticks", "200"}, fs, &out)
	if code != ExitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}

	var sawScorecard bool
	for _, l := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var tl traceLine
		if err := json.Unmarshal([]byte(l), &tl); err != nil {
			t.Fatalf("malformed trace line: %v", err)
		}
		if tl.Boiled && len(tl.Scorecard) > 0 {
			sawScorecard = true
			var doc map[string]interface{}
			if err := json.Unmarshal(tl.Scorecard, &doc); err != nil {
				t.Fatalf("malformed scorecard JSON: %v", err)
			}
			if doc["experiment_id"] != "s1" {
				t.Errorf("expected scorecard experiment_id s1, got %v", doc["experiment_id"])
			}
			if _, ok := doc["fingerprint"]; !ok {
				t.Error("expected scorecard to carry a fingerprint")
			}
		}
	}
	if !sawScorecard {
		t.Fatal("expected the boil tick's trace line to carry a frozen scorecard")
	}

	exists, err := afero.Exists(fs, "/scorecards.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("expected simulate to write a scorecards.csv export alongside the scenario")
	}
}

func TestSimulateHaltsOnRuntimeErrorWithExit3(t *testing.T) {
	fs := fixtureFs(t)
	scenario := `{
		"data_root": "/data",
		"setup": [
			{"kind": "set_burner_step", "burner_id": "standard", "burner_step_index": 4}
		]
	}`
	if err := afero.WriteFile(fs, "/scenario.json", []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Execute([]string{"simulate", "--scenario", "/scenario.json", "--ticks", "5"}, fs, &out)
	if code != ExitRuntime {
		t.Fatalf("expected exit %d (no substance filled), got %d: %s", ExitRuntime, code, out.String())
	}
}
