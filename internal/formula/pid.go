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

// PIDState carries the mutable state a PID controller needs between steps:
// the running integral and the previous error, for first-difference
// derivative estimation.
type PIDState struct {
	Integral    float64
	PrevError   float64
	HasPrevious bool
}

// PIDStep runs one step of a proportional-integral-derivative controller.
// The integral is clamped to [-windup, +windup] before the ki multiplier is
// applied, and the derivative term uses a first difference on the error
// (spec.md §4.1).
func PIDStep(errVal float64, state PIDState, dtS, kp, ki, kd, windup float64) (output float64, next PIDState) {
	integral := state.Integral + errVal*dtS
	if windup > 0 {
		if integral > windup {
			integral = windup
		} else if integral < -windup {
			integral = -windup
		}
	}

	var derivative float64
	if state.HasPrevious && dtS > 0 {
		derivative = (errVal - state.PrevError) / dtS
	}

	output = kp*errVal + ki*integral + kd*derivative
	next = PIDState{
		Integral:    integral,
		PrevError:   errVal,
		HasPrevious: true,
	}
	return output, next
}
