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

// AntoineRange is the empirically verified temperature range for a set of
// Antoine coefficients. It is informational only: BoilingTemperature never
// clamps to it, it only flags when the solved value falls outside it.
type AntoineRange struct {
	MinC, MaxC float64
}

// BoilingTemperatureResult is the outcome of inverting the Antoine equation
// for a target pressure.
type BoilingTemperatureResult struct {
	TempC        float64
	Extrapolated bool
	Range        AntoineRange
}

// BoilingTemperature solves log10(P_mmHg) = A - B/(C+T) for T given a
// pressure in pascals. It never clamps: if the solved temperature falls
// outside the verified range, Extrapolated is set true but the value is
// still returned.
func BoilingTemperature(pressurePa, a, b, c float64, r AntoineRange) (BoilingTemperatureResult, error) {
	if pressurePa <= 0 {
		return BoilingTemperatureResult{}, outOfDomain("BoilingTemperature", "pressure must be positive")
	}
	pMmHg := pressurePa * constants.MmHgPerPa
	if pMmHg <= 0 {
		return BoilingTemperatureResult{}, outOfDomain("BoilingTemperature", "converted pressure is non-positive")
	}
	t := b/(a-math.Log10(pMmHg)) - c
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return BoilingTemperatureResult{}, outOfDomain("BoilingTemperature", "no real solution for given coefficients")
	}
	res := BoilingTemperatureResult{TempC: t, Range: r}
	if t < r.MinC || t > r.MaxC {
		res.Extrapolated = true
	}
	return res, nil
}

// AntoinePressure evaluates the Antoine equation directly, returning the
// vapor pressure in pascals for a given temperature. It is the forward form
// of BoilingTemperature; the catalog loader's boiling-point check uses
// BoilingTemperature, not this function.
func AntoinePressure(tempC, a, b, c float64) (float64, error) {
	denom := c + tempC
	if denom == 0 {
		return 0, outOfDomain("AntoinePressure", "temperature plus C coefficient is zero")
	}
	logP := a - b/denom
	pMmHg := math.Pow(10, logP)
	return pMmHg / constants.MmHgPerPa, nil
}
