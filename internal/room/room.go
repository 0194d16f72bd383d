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

// Package room implements the room process (C5): room temperature,
// pressure, and composition integration, climate-control PID, and alert
// evaluation, as specified in spec.md §4.4.
package room

import (
	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/constants"
	"github.com/zawalonka/boilsim/internal/formula"
	"github.com/zawalonka/boilsim/internal/pot"
)

// Severity classifies an Alert.
type Severity string

const (
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// Alert is a structured observation, not an error (spec.md §7).
type Alert struct {
	TimestampS float64
	Severity   Severity
	Message    string
}

// State is the room's mutable state (spec.md §3 RoomState).
type State struct {
	TemperatureC    float64
	PressurePa      float64
	Composition     map[string]float64
	ACEnabled       bool
	ACSetpointC     float64
	ACPIDState      formula.PIDState
	AirHandlerMode  string
	HeatLog         []float64
	CompositionLog  []map[string]float64
	Alerts          []Alert

	// totalMoles is the reference total-mole count fixed at room
	// initialization, mutated only by vapor ingress; scrubber exchange
	// changes composition fractions, not this total.
	totalMoles float64
	elapsedS   float64
}

// New initializes a RoomState from a config record and an initial
// pressure (ISA(altitude) or the sea-level constant, per spec.md §4.4).
func New(cfg *equipment.RoomConfig, initialPressurePa float64) *State {
	composition := make(map[string]float64, len(cfg.InitialComposition))
	for k, v := range cfg.InitialComposition {
		composition[k] = v
	}
	tempK := cfg.InitialTempC + constants.KelvinOffset
	totalMoles := initialPressurePa * cfg.VolumeM3 / (constants.GasConstant * tempK)

	return &State{
		TemperatureC: cfg.InitialTempC,
		PressurePa:   initialPressurePa,
		Composition:  composition,
		totalMoles:   totalMoles,
	}
}

// Input is the per-tick input relevant to the room.
type Input struct {
	AirHandlerOn bool
}

// AlertsDelta is the set of alerts whose conditions hold after this step.
type AlertsDelta struct {
	Alerts []Alert
}

// Step runs one room_step sub-step, per spec.md §4.4.
func Step(
	s *State,
	cfg *equipment.RoomConfig,
	ac *equipment.ACUnit,
	handler *equipment.AirHandler,
	in Input,
	vaporEmissions []pot.VaporEmission,
	burnerRoomLossW float64,
	dtS float64,
) (*State, AlertsDelta) {
	next := *s
	next.Composition = cloneComposition(s.Composition)
	next.elapsedS += dtS

	spillover := cfg.BurnerSpilloverFraction
	if spillover == 0 {
		spillover = constants.DefaultBurnerSpilloverFraction
	}
	netHeatW := burnerRoomLossW * spillover

	outdoorLeakW := 0.0
	if cfg.OutdoorLeakCoefficient > 0 {
		tempAfterLeak := formula.NewtonCoolingStep(next.TemperatureC, cfg.OutdoorAmbientC, cfg.OutdoorLeakCoefficient, dtS)
		outdoorLeakW = (next.TemperatureC - tempAfterLeak) * cfg.HeatCapacityJPerC / dtS
	}
	netHeatW -= outdoorLeakW

	acHeatW := 0.0
	if next.ACEnabled && ac != nil {
		errVal := next.ACSetpointC - next.TemperatureC
		if abs(errVal) >= ac.DeadbandC/2 {
			output, pidState := formula.PIDStep(errVal, next.ACPIDState, dtS, ac.PID.Kp, ac.PID.Ki, ac.PID.Kd, ac.PID.IntegralWindupLimit)
			next.ACPIDState = pidState
			acHeatW = mapPIDOutputToWatts(output, ac.CoolingMaxW, ac.HeatingMaxW)
		} else {
			next.ACPIDState = formula.PIDState{}
		}
	}
	netHeatW += acHeatW

	if cfg.HeatCapacityJPerC > 0 {
		deltaTC := netHeatW * dtS / cfg.HeatCapacityJPerC
		if ac != nil && ac.MaxRateOfChangeCPerS > 0 {
			maxDelta := ac.MaxRateOfChangeCPerS * dtS
			if deltaTC > maxDelta {
				deltaTC = maxDelta
			} else if deltaTC < -maxDelta {
				deltaTC = -maxDelta
			}
		}
		next.TemperatureC += deltaTC
	}
	next.HeatLog = append(next.HeatLog, netHeatW)

	for _, e := range vaporEmissions {
		next.totalMoles += e.Moles
		addMolesToComposition(next.Composition, next.totalMoles, e.SpeciesID, e.Moles)
	}

	if handler != nil && in.AirHandlerOn {
		flowPercent := handler.Modes[next.AirHandlerMode]
		flowM3PerS := handler.MaxFlowM3PerH * flowPercent / 100 / 3600
		if flowM3PerS > 0 {
			for species, target := range handler.TargetComposition {
				eff := handler.EfficiencyFor(species)
				current := next.Composition[species]
				next.Composition[species] = formula.GasExchangeStep(current, target, flowM3PerS, eff, cfg.VolumeM3, dtS)
			}
			renormalize(next.Composition)
		}
	}
	next.CompositionLog = append(next.CompositionLog, cloneComposition(next.Composition))

	next.PressurePa = resolvePressure(&next, cfg, handler, in)

	delta := evaluateAlerts(&next, next.elapsedS)
	next.Alerts = append(next.Alerts, delta.Alerts...)

	return &next, delta
}

func resolvePressure(next *State, cfg *equipment.RoomConfig, handler *equipment.AirHandler, in Input) float64 {
	tempK := next.TemperatureC + constants.KelvinOffset
	p, err := formula.IdealGasPressure(next.totalMoles, tempK, cfg.VolumeM3)
	if err != nil {
		return next.PressurePa
	}
	return p
}

func mapPIDOutputToWatts(output, coolingMaxW, heatingMaxW float64) float64 {
	if output > 0 {
		if output > heatingMaxW {
			return heatingMaxW
		}
		return output
	}
	if -output > coolingMaxW {
		return -coolingMaxW
	}
	return output
}

func addMolesToComposition(comp map[string]float64, totalMoles float64, speciesID string, addedMoles float64) {
	if totalMoles <= 0 {
		return
	}
	scaled := make(map[string]float64, len(comp))
	oldTotal := totalMoles - addedMoles
	for k, f := range comp {
		scaled[k] = f * oldTotal / totalMoles
	}
	scaled[speciesID] += addedMoles / totalMoles
	for k, v := range scaled {
		comp[k] = v
	}
}

func renormalize(comp map[string]float64) {
	var sum float64
	for _, v := range comp {
		sum += v
	}
	if sum <= 0 {
		return
	}
	for k, v := range comp {
		comp[k] = v / sum
	}
}

func cloneComposition(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
