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
	"github.com/zawalonka/boilsim/internal/constants"
	"github.com/zawalonka/boilsim/internal/formula"
)

// EffectiveBoilingPoint resolves the Antoine-inverse boiling point at the
// given pressure, then adds ebullioscopic elevation if the substance is a
// solution (molality > 0). Elevation uses a dynamic Kb computed at the
// solvent's base boiling temperature (spec.md §4.2).
func (c *Catalog) EffectiveBoilingPoint(id string, pressurePa float64) (formula.BoilingTemperatureResult, error) {
	s, ok := c.byID[id]
	if !ok {
		return formula.BoilingTemperatureResult{}, unknownSpeciesErr(id)
	}
	if s.Antoine == nil {
		return formula.BoilingTemperatureResult{}, &Error{Kind: Invalid, Msg: "substance has no Antoine coefficients and cannot boil"}
	}

	rng := formula.AntoineRange{MinC: s.Antoine.TMinC, MaxC: s.Antoine.TMaxC}
	res, err := formula.BoilingTemperature(pressurePa, s.Antoine.A, s.Antoine.B, s.Antoine.C, rng)
	if err != nil {
		return formula.BoilingTemperatureResult{}, err
	}

	if s.MolalityMolPerKg <= 0 {
		return res, nil
	}

	boilTempK := res.TempC + constants.KelvinOffset
	deltaHVapJPerMol := s.LatentHeatVapKJPerKg * 1000 * s.MolarMassKgPerMol
	kb, err := formula.DynamicEbullioscopicConstant(boilTempK, s.MolarMassKgPerMol, deltaHVapJPerMol)
	if err != nil {
		return formula.BoilingTemperatureResult{}, err
	}
	elevation := formula.BoilingPointElevation(s.VanHoffFactor, kb, s.MolalityMolPerKg)
	res.TempC += elevation
	return res, nil
}
