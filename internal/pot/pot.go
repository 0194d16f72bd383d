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

// Package pot implements the pot process (C4): the state machine and
// per-step integration of liquid mass, temperature, phase, residue, and
// vapor emission, as specified in spec.md §4.3.
package pot

import (
	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/catalog/substance"
	"github.com/zawalonka/boilsim/internal/constants"
	"github.com/zawalonka/boilsim/internal/formula"
)

// Phase is the pot's state-machine phase.
type Phase string

const (
	PhaseEmpty       Phase = "empty"
	PhaseFilled      Phase = "filled"
	PhaseHeating     Phase = "heating"
	PhaseBoiling     Phase = "boiling"
	PhaseDrying      Phase = "drying"
	PhaseDry         Phase = "dry"
	PhaseDecomposed  Phase = "decomposed"
)

// State is the pot's mutable state (spec.md §3 PotState).
type State struct {
	SubstanceID   string
	TotalMassKg   float64
	ResidueMassKg float64
	TemperatureC  float64
	IsBoiling     bool
	Phase         Phase
	TimeOnFlameS  float64
	TimeElapsedS  float64

	// boilEmitted prevents re-emission of BoilEvent until the next fill.
	boilEmitted bool
	// extrapolated carries forward the most recent Antoine extrapolation
	// flag so it can be surfaced on every snapshot until conditions change.
	Extrapolated bool
}

// LiquidMassKg returns the free (non-residue) liquid mass.
func (s *State) LiquidMassKg() float64 {
	m := s.TotalMassKg - s.ResidueMassKg
	if m < 0 {
		return 0
	}
	return m
}

// Input is the per-tick input relevant to the pot.
type Input struct {
	BurnerStepIndex int
	PotOverBurner   bool
	BurnerOn        bool
}

// VaporEmission is a value object describing vapor released into the room.
type VaporEmission struct {
	SpeciesID string
	Moles     float64
}

// BoilEvent is emitted the first time a fill reaches its boiling point.
type BoilEvent struct {
	TemperatureC       float64
	EffectiveBoilingC  float64
	TimeToBoilS        float64
}

// DecompositionEvent is emitted when the pot passes its substance's
// decomposition point.
type DecompositionEvent struct {
	TemperatureC float64
	Products     []substance.DecompositionProduct
}

// StepResult carries everything pot_step produces beyond the new state.
type StepResult struct {
	Emissions     []VaporEmission
	Boil          *BoilEvent
	Decomposition *DecompositionEvent
}

// Fill transitions Empty -> Filled, initializing residue and temperature
// from the substance's non_volatile_mass_fraction and the current ambient
// temperature (spec.md §4.3).
func Fill(sub *substance.Substance, massKg, ambientTempC float64) *State {
	return &State{
		SubstanceID:   sub.ID,
		TotalMassKg:   massKg,
		ResidueMassKg: massKg * sub.NonVolatileMassFraction,
		TemperatureC:  ambientTempC,
		Phase:         PhaseFilled,
	}
}

// Step runs one pot_step sub-step, per spec.md §4.3.
func Step(s *State, in Input, sub *substance.Substance, burner *equipment.Burner, ambientTempC float64, effectiveBP formula.BoilingTemperatureResult, dtS float64) (*State, StepResult) {
	next := *s
	var result StepResult

	if next.Phase == PhaseDecomposed {
		return &next, result
	}

	liquidMassKg := next.LiquidMassKg()
	next.TimeElapsedS += dtS

	if in.PotOverBurner && in.BurnerOn {
		next.TimeOnFlameS += dtS
	} else {
		next.TimeOnFlameS = 0
	}

	heatInW := 0.0
	if in.PotOverBurner && liquidMassKg > 0 && burner != nil && in.BurnerStepIndex >= 0 && in.BurnerStepIndex < len(burner.WattageSteps) {
		heatInW = burner.WattageSteps[in.BurnerStepIndex] * burner.Efficiency
	}

	if heatInW > 0 && next.Phase == PhaseFilled {
		next.Phase = PhaseHeating
	}

	if liquidMassKg > 0 {
		specificHeat := sub.SpecificHeatJPerGC[substance.PhaseLiquid]
		energyInJ := heatInW * dtS

		tempAfterHeatC := next.TemperatureC
		if specificHeat > 0 {
			tempAfterHeatC += energyInJ / (liquidMassKg * 1000 * specificHeat)
		}

		// cooling_coefficient is calibrated for referenceMassKg of liquid;
		// scale k inversely with the pot's current liquid mass so a
		// fuller pot cools more slowly (spec.md §4.3 step 3).
		const referenceMassKg = 1.0
		kEffective := sub.CoolingCoefficient * referenceMassKg / liquidMassKg
		candidateTempC := formula.NewtonCoolingStep(tempAfterHeatC, ambientTempC, kEffective, dtS)

		effectiveBoilingC := effectiveBP.TempC
		next.Extrapolated = effectiveBP.Extrapolated

		if candidateTempC >= effectiveBoilingC-constants.BoilOnsetMarginC {
			surplusJ := formula.HeatEnergy(liquidMassKg, specificHeat, candidateTempC-effectiveBoilingC)
			next.TemperatureC = effectiveBoilingC

			if sub.LatentHeatVapKJPerKg > 0 {
				vaporKg, err := formula.VaporizedMass(surplusJ, sub.LatentHeatVapKJPerKg)
				if err == nil && vaporKg > 0 {
					maxVaporizable := liquidMassKg
					if vaporKg > maxVaporizable {
						vaporKg = maxVaporizable
					}
					next.TotalMassKg -= vaporKg
					if next.TotalMassKg < next.ResidueMassKg {
						next.TotalMassKg = next.ResidueMassKg
					}
					var moles float64
					if sub.MolarMassKgPerMol > 0 {
						moles = vaporKg / sub.MolarMassKgPerMol
					}
					result.Emissions = append(result.Emissions, VaporEmission{
						SpeciesID: sub.ID,
						Moles:     moles,
					})
				}
			}

			wasBoiling := next.IsBoiling
			next.IsBoiling = true
			if next.Phase != PhaseBoiling {
				next.Phase = PhaseBoiling
			}
			if !wasBoiling && !next.boilEmitted {
				next.boilEmitted = true
				result.Boil = &BoilEvent{
					TemperatureC:      next.TemperatureC,
					EffectiveBoilingC: effectiveBoilingC,
					TimeToBoilS:       next.TimeElapsedS,
				}
			}
		} else {
			next.TemperatureC = candidateTempC
			next.IsBoiling = false
		}
	}

	if next.Phase == PhaseBoiling && next.LiquidMassKg() <= next.ResidueMassKg {
		next.Phase = PhaseDrying
		next.IsBoiling = false
	}
	if next.TotalMassKg <= next.ResidueMassKg && next.Phase == PhaseDrying {
		next.Phase = PhaseDry
	}

	if sub.DecompositionPointC != nil && next.TemperatureC >= *sub.DecompositionPointC {
		next.Phase = PhaseDecomposed
		next.IsBoiling = false
		result.Decomposition = &DecompositionEvent{
			TemperatureC: next.TemperatureC,
			Products:     sub.DecompositionProducts,
		}
		decomposingMassKg := next.LiquidMassKg()
		for _, p := range sub.DecompositionProducts {
			result.Emissions = append(result.Emissions, VaporEmission{
				SpeciesID: p.SpeciesID,
				Moles:     p.MolesPerKg * decomposingMassKg,
			})
		}
	}

	return &next, result
}
