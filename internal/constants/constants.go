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

// Package constants collects the physical and engineering constants used
// throughout the simulation engine. Keeping them in one place means a
// formula change in one package can't silently drift from another.
package constants

const (
	// GasConstant is the ideal gas constant, J/(mol*K).
	GasConstant = 8.314462618

	// StandardGravity is g, m/s^2.
	StandardGravity = 9.80665

	// MolarMassAir is the molar mass of dry air, kg/mol.
	MolarMassAir = 0.0289644

	// MmHgPerPa converts pascals to millimeters of mercury.
	MmHgPerPa = 1.0 / 133.322

	// KelvinOffset converts Celsius to Kelvin.
	KelvinOffset = 273.15
)

// ISA troposphere model parameters (International Standard Atmosphere).
const (
	ISASeaLevelTempK  = 288.15
	ISALapseRateKPerM = 0.0065
	ISASeaLevelPa     = 101325.0
	// ISAExponent is (g*M)/(R*L).
	ISAExponent = (StandardGravity * MolarMassAir) / (GasConstant * ISALapseRateKPerM)
	// ISATropopauseAltitudeM is the altitude whose pressure ISAPressure
	// returns once T0 - L*h <= 0.
	ISATropopauseAltitudeM = 11000.0
)

// Thermodynamic reference values.
const (
	// StandardBoilingPressurePa is 1 atm in pascals.
	StandardBoilingPressurePa = 101325.0

	// BoilingClampToleranceC is the allowed drift between temperature and
	// effective boiling point while is_boiling holds (spec invariant 4).
	BoilingClampToleranceC = 0.05

	// BoilOnsetMarginC is how far below the effective boiling point
	// heating is considered to have reached boiling onset.
	BoilOnsetMarginC = 0.05
)

// Simulation driver defaults.
const (
	// MaxSubStepSeconds is the largest internal integration step, dt_max.
	MaxSubStepSeconds = 0.25

	// ObservableTickHz is the target wall-clock publication cadence.
	ObservableTickHz = 10.0
)

// Room defaults.
const (
	// DefaultBurnerSpilloverFraction is the fraction of burner wattage
	// that always leaks to the room air, absent an override in the room
	// config record (spec.md open question #2).
	DefaultBurnerSpilloverFraction = 0.10

	// CompositionSumTolerance bounds how far composition fractions may
	// drift from summing to 1 (spec invariant 5).
	CompositionSumTolerance = 1e-6
)

// Alert thresholds, fractions unless noted.
const (
	OxygenWarnFraction     = 0.195
	OxygenCriticalFraction = 0.16
	CO2WarnFraction        = 0.01
	AmmoniaCriticalPPM     = 25.0
)
