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

package room

import (
	"fmt"

	"github.com/zawalonka/boilsim/internal/constants"
)

// evaluateAlerts checks the O2, CO2 and NH3 composition thresholds against
// the constants catalog; no pressure threshold is evaluated. Thresholds are
// level-triggered: an alert is emitted on every step the condition holds,
// and repeated alerts across steps are not de-duplicated.
func evaluateAlerts(s *State, elapsedS float64) AlertsDelta {
	var delta AlertsDelta

	if o2, ok := s.Composition["O2"]; ok {
		if o2 <= constants.OxygenCriticalFraction {
			delta.Alerts = append(delta.Alerts, newAlert(elapsedS, SeverityCritical, fmt.Sprintf("O2 at %.1f%%, below critical threshold", o2*100)))
		} else if o2 <= constants.OxygenWarnFraction {
			delta.Alerts = append(delta.Alerts, newAlert(elapsedS, SeverityWarn, fmt.Sprintf("O2 at %.1f%%, below warning threshold", o2*100)))
		}
	}

	if co2, ok := s.Composition["CO2"]; ok && co2 >= constants.CO2WarnFraction {
		delta.Alerts = append(delta.Alerts, newAlert(elapsedS, SeverityWarn, fmt.Sprintf("CO2 at %.2f%%, above warning threshold", co2*100)))
	}

	if nh3, ok := s.Composition["NH3"]; ok {
		nh3PPM := nh3 * 1e6
		if nh3PPM >= constants.AmmoniaCriticalPPM {
			delta.Alerts = append(delta.Alerts, newAlert(elapsedS, SeverityCritical, fmt.Sprintf("NH3 at %.0f ppm, above critical threshold", nh3PPM)))
		}
	}

	return delta
}

func newAlert(elapsedS float64, sev Severity, msg string) Alert {
	return Alert{TimestampS: elapsedS, Severity: sev, Message: msg}
}
