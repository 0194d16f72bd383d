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

package formula

import (
	"math"

	"github.com/zawalonka/boilsim/internal/constants"
)

// HeatEnergy returns Q = m*c*deltaT in joules, for mass in kg and specific
// heat in J/(g*C) (converted internally to J/(kg*C)).
func HeatEnergy(massKg, specificHeatJPerGC, deltaTC float64) float64 {
	return massKg * 1000 * specificHeatJPerGC * deltaTC
}

// LatentHeatEnergy returns Q_vap = m*L_v, for mass in kg and latent heat in
// kJ/kg.
func LatentHeatEnergy(massKg, latentHeatKJPerKg float64) float64 {
	return massKg * latentHeatKJPerKg * 1000
}

// VaporizedMass inverts LatentHeatEnergy: given surplus energy in joules and
// latent heat in kJ/kg, returns the mass vaporized in kg.
func VaporizedMass(surplusJ, latentHeatKJPerKg float64) (float64, error) {
	if latentHeatKJPerKg <= 0 {
		return 0, badParameters("VaporizedMass", "latent heat must be positive")
	}
	return surplusJ / (latentHeatKJPerKg * 1000), nil
}

// NewtonCoolingStep applies Newton's law of cooling over dt seconds,
// returning the new temperature.
func NewtonCoolingStep(tempC, ambientC, k, dtS float64) float64 {
	return ambientC + (tempC-ambientC)*math.Exp(-k*dtS)
}

// DynamicEbullioscopicConstant computes Kb = R*Tb^2*M / dHvap, where Tb is
// the solvent boiling point in Kelvin, M is molar mass in kg/mol, and
// dHvap is molar enthalpy of vaporization in J/mol.
func DynamicEbullioscopicConstant(boilTempK, molarMassKgPerMol, deltaHVapJPerMol float64) (float64, error) {
	if deltaHVapJPerMol <= 0 {
		return 0, badParameters("DynamicEbullioscopicConstant", "enthalpy of vaporization must be positive")
	}
	return constants.GasConstant * boilTempK * boilTempK * molarMassKgPerMol / deltaHVapJPerMol, nil
}

// BoilingPointElevation returns deltaTb = i*Kb*m for van't Hoff factor i,
// ebullioscopic constant Kb (C*kg/mol), and molality m (mol/kg).
func BoilingPointElevation(vanHoffFactor, kb, molality float64) float64 {
	return vanHoffFactor * kb * molality
}

// IdealGasPressure returns P = n*R*T/V for n moles, T in Kelvin, V in m^3.
func IdealGasPressure(moles, tempK, volumeM3 float64) (float64, error) {
	if volumeM3 <= 0 {
		return 0, badParameters("IdealGasPressure", "volume must be positive")
	}
	return moles * constants.GasConstant * tempK / volumeM3, nil
}

// GasExchangeStep returns the updated fraction of a species after one
// scrubber/air-handler exchange step, per spec.md §4.1.
//
//	delta_f = (target - current) * exchangeFraction * efficiency
//	exchangeFraction = min(1, flow_m3_per_s * dt / V)
func GasExchangeStep(currentFraction, targetFraction, flowM3PerS, efficiency, volumeM3, dtS float64) float64 {
	exchangeFraction := flowM3PerS * dtS / volumeM3
	if exchangeFraction > 1 {
		exchangeFraction = 1
	}
	delta := (targetFraction - currentFraction) * exchangeFraction * efficiency
	return currentFraction + delta
}
