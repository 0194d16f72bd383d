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

package pot

import (
	"math"
	"testing"

	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/catalog/substance"
	"github.com/zawalonka/boilsim/internal/formula"
)

func absDifferent(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance
}

func waterSubstance() *substance.Substance {
	return &substance.Substance{
		ID:                    "water",
		MolarMassKgPerMol:     0.018015,
		PhaseAtAmbient:        substance.PhaseLiquid,
		SpecificHeatJPerGC:    map[substance.Phase]float64{substance.PhaseLiquid: 4.186},
		LatentHeatVapKJPerKg:  2257,
		MeltingPointC:         0,
		BoilingPointSeaLevelC: 100,
		VanHoffFactor:         1,
		CoolingCoefficient:    0.0005,
	}
}

func standardBurner() *equipment.Burner {
	return &equipment.Burner{
		ID:           "standard",
		Efficiency:   1.0,
		WattageSteps: []float64{0, 500, 1000, 2000},
	}
}

func seaLevelBP() formula.BoilingTemperatureResult {
	return formula.BoilingTemperatureResult{TempC: 100.0}
}

// S1 — Sea-level water: 2000W, 1kg from 20C, expect boil near 167.4s.
func TestScenarioS1SeaLevelWater(t *testing.T) {
	sub := waterSubstance()
	burner := standardBurner()
	state := Fill(sub, 1.0, 20)

	const dt = 0.25
	var boilTime float64
	var boiled bool
	for tSeconds := 0.0; tSeconds < 400; tSeconds += dt {
		var result StepResult
		state, result = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), dt)
		if result.Boil != nil && !boiled {
			boiled = true
			boilTime = result.Boil.TimeToBoilS
		}
		if boiled {
			break
		}
	}
	if !boiled {
		t.Fatal("water never boiled")
	}
	want := 167.4
	if boilTime < want*0.9 || boilTime > want*1.1 {
		t.Errorf("time to boil = %.2fs, want within 10%% of %.1fs", boilTime, want)
	}
	if absDifferent(state.TemperatureC, 100.0, 0.1) {
		t.Errorf("temperature at boil = %.3f, want ~100", state.TemperatureC)
	}
	if !state.IsBoiling {
		t.Errorf("expected IsBoiling=true")
	}
}

func TestBoilingClampInvariant(t *testing.T) {
	sub := waterSubstance()
	burner := standardBurner()
	state := Fill(sub, 1.0, 20)

	for i := 0; i < 2000; i++ {
		state, _ = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
		if state.IsBoiling && absDifferent(state.TemperatureC, 100.0, 0.05) {
			t.Fatalf("boiling clamp violated: temp=%.4f", state.TemperatureC)
		}
	}
}

func TestMassConservationDuringBoiling(t *testing.T) {
	sub := waterSubstance()
	burner := standardBurner()
	state := Fill(sub, 1.0, 20)

	var totalVaporKg float64
	for i := 0; i < 4000; i++ {
		var result StepResult
		prevTotal := state.TotalMassKg
		state, result = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
		for _, e := range result.Emissions {
			totalVaporKg += e.Moles * sub.MolarMassKgPerMol
		}
		if state.TotalMassKg > prevTotal {
			t.Fatalf("mass increased without a fill: prev=%.6f next=%.6f", prevTotal, state.TotalMassKg)
		}
		if state.ResidueMassKg > state.TotalMassKg {
			t.Fatalf("residue exceeds total mass")
		}
	}
	if totalVaporKg <= 0 {
		t.Error("expected some vapor to have been emitted")
	}
}

// S6 — Decomposition halts heating and stops emissions.
func TestScenarioS6Decomposition(t *testing.T) {
	sub := waterSubstance()
	sub.ID = "glycerin"
	decompPoint := 50.0 // artificially low for a fast test
	sub.DecompositionPointC = &decompPoint
	sub.DecompositionProducts = []substance.DecompositionProduct{
		{SpeciesID: "acrolein", MolesPerKg: 10},
	}
	burner := standardBurner()
	state := Fill(sub, 1.0, 20)

	var decomposed bool
	for i := 0; i < 2000; i++ {
		var result StepResult
		state, result = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
		if result.Decomposition != nil {
			decomposed = true
			break
		}
	}
	if !decomposed {
		t.Fatal("expected decomposition event")
	}
	if state.Phase != PhaseDecomposed {
		t.Errorf("expected phase Decomposed, got %v", state.Phase)
	}

	massAtHalt := state.TotalMassKg
	for i := 0; i < 100; i++ {
		var result StepResult
		state, result = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
		if len(result.Emissions) > 0 {
			t.Fatal("no vapor should be emitted after decomposition halt")
		}
		if state.TotalMassKg != massAtHalt {
			t.Fatal("mass should not change after decomposition halt")
		}
	}
}

// Decomposition must release its products into the room as vapor
// emissions on the same step it occurs, not silently drop them.
func TestDecompositionEmitsProductsIntoRoom(t *testing.T) {
	sub := waterSubstance()
	sub.ID = "glycerin"
	decompPoint := 50.0
	sub.DecompositionPointC = &decompPoint
	sub.DecompositionProducts = []substance.DecompositionProduct{
		{SpeciesID: "acrolein", MolesPerKg: 10},
	}
	burner := standardBurner()
	state := Fill(sub, 1.0, 20)

	var sawDecompositionEmission bool
	for i := 0; i < 2000; i++ {
		var result StepResult
		state, result = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
		if result.Decomposition != nil {
			for _, e := range result.Emissions {
				if e.SpeciesID == "acrolein" && e.Moles > 0 {
					sawDecompositionEmission = true
				}
			}
			break
		}
	}
	if !sawDecompositionEmission {
		t.Fatal("expected the decomposition step to emit acrolein vapor into the room")
	}
}

func TestTimeOnFlameResetsWhenOffBurner(t *testing.T) {
	sub := waterSubstance()
	burner := standardBurner()
	state := Fill(sub, 1.0, 20)

	state, _ = Step(state, Input{BurnerStepIndex: 1, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
	if state.TimeOnFlameS == 0 {
		t.Fatal("expected time on flame to accumulate")
	}
	state, _ = Step(state, Input{BurnerStepIndex: 1, PotOverBurner: false, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
	if state.TimeOnFlameS != 0 {
		t.Errorf("expected time on flame to reset when off burner, got %v", state.TimeOnFlameS)
	}
}

func TestDryingWhenNoFreeLiquidRemains(t *testing.T) {
	sub := waterSubstance()
	sub.NonVolatileMassFraction = 0.5
	burner := standardBurner()
	state := Fill(sub, 0.01, 20)

	var dried bool
	for i := 0; i < 20000; i++ {
		state, _ = Step(state, Input{BurnerStepIndex: 3, PotOverBurner: true, BurnerOn: true}, sub, burner, 20, seaLevelBP(), 0.25)
		if state.Phase == PhaseDrying || state.Phase == PhaseDry {
			dried = true
			break
		}
	}
	if !dried {
		t.Fatal("expected pot to reach drying/dry phase once liquid is consumed")
	}
	if state.ResidueMassKg <= 0 {
		t.Errorf("residue should remain after drying")
	}
}
