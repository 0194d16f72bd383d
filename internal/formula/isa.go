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

// ISAPressure computes the International Standard Atmosphere troposphere
// pressure at the given altitude in meters. Altitudes where T0 - L*h <= 0
// (above ~44.3 km) return the pressure at the 11 km tropopause; between
// 11 km and that point the troposphere formula is applied unclamped.
func ISAPressure(altitudeM float64) float64 {
	tRatio := 1 - constants.ISALapseRateKPerM*altitudeM/constants.ISASeaLevelTempK
	if tRatio <= 0 {
		return isaPressureAt(constants.ISATropopauseAltitudeM)
	}
	return isaPressureAt(altitudeM)
}

func isaPressureAt(altitudeM float64) float64 {
	tRatio := 1 - constants.ISALapseRateKPerM*altitudeM/constants.ISASeaLevelTempK
	return constants.ISASeaLevelPa * math.Pow(tRatio, constants.ISAExponent)
}
