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

// Package progression implements the progression and scorecard process
// (C7): a linear sequence of experiments, each declaring unlock and goal
// flags, and the immutable Scorecard frozen on a pot's BoilEvent, as
// specified in spec.md §4.6.
package progression

import (
	"gonum.org/v1/gonum/stat"

	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/fingerprint"
	"github.com/zawalonka/boilsim/internal/pot"
	"github.com/zawalonka/boilsim/internal/room"
)

// Experiment is one step in the progression sequence (spec.md §4.6).
type Experiment struct {
	ID                   string
	RequiresLocation     bool
	UnlocksRoomControls  bool
	RequiredSubstanceIDs []string
	BoilGoal             bool
}

// PotSummary is the pot's state at the moment a Scorecard was frozen.
type PotSummary struct {
	TemperatureC      float64
	EffectiveBoilingC float64
	TimeToBoilS       float64
	SubstanceID       string
	BurnerStepIndex   int
	AltitudeM         float64
	PressurePa        float64
}

// RoomSummary is the room's state at the moment a Scorecard was frozen,
// present only when room controls were active for the experiment.
type RoomSummary struct {
	TempDeltaC         float64
	CompositionBefore  map[string]float64
	CompositionAfter   map[string]float64
	PeakPPM            map[string]float64
	AlertLog           []room.Alert
}

// Metrics carries the derived values a Scorecard reports alongside the
// raw pot/room summaries.
type Metrics struct {
	// IdealTimeS maps each burner wattage-step index to the time it
	// would take to reach the effective boiling point from the room's
	// starting temperature (the temperature the pot is filled at),
	// ignoring cooling losses (energy/power).
	IdealTimeS map[int]float64
}

// Scorecard is immutable once created (spec.md §4.6).
type Scorecard struct {
	ExperimentID string
	TimestampS   float64
	Pot          PotSummary
	Room         *RoomSummary
	Metrics      Metrics

	// Fingerprint digests Pot, Room, and Metrics. Two scorecards frozen
	// from an identical scripted scenario replay (spec.md §8 invariant 8)
	// must carry the same Fingerprint; a mismatch means the replay
	// diverged somewhere between the two runs.
	Fingerprint string
}

// Tracker drives a linear experiment sequence and accumulates frozen
// scorecards.
type Tracker struct {
	experiments         []Experiment
	index               int
	roomControlsUnlocked bool
	scorecards          []*Scorecard
}

// NewTracker builds a Tracker over a fixed experiment sequence, starting
// at the first experiment.
func NewTracker(experiments []Experiment) *Tracker {
	return &Tracker{experiments: experiments}
}

// Current returns the active experiment, or nil if the sequence is
// exhausted.
func (t *Tracker) Current() *Experiment {
	if t.index >= len(t.experiments) {
		return nil
	}
	return &t.experiments[t.index]
}

// RoomControlsUnlocked reports whether any completed experiment has set
// unlocks_room_controls (spec.md §3: "RoomState is created when an
// experiment enters room-controls scope").
func (t *Tracker) RoomControlsUnlocked() bool {
	return t.roomControlsUnlocked
}

// Advance moves to the next experiment in the sequence, latching
// room-controls unlock if the completed experiment granted it.
func (t *Tracker) Advance() {
	if cur := t.Current(); cur != nil && cur.UnlocksRoomControls {
		t.roomControlsUnlocked = true
	}
	if t.index < len(t.experiments) {
		t.index++
	}
}

// Freeze builds and records a Scorecard from a BoilEvent (spec.md §4.6).
// roomState and compositionBefore are nil when room controls are not
// active for the current experiment.
func (t *Tracker) Freeze(
	experimentID string,
	timestampS float64,
	potState *pot.State,
	boil *pot.BoilEvent,
	burner *equipment.Burner,
	burnerStepIndex int,
	altitudeM float64,
	pressurePa float64,
	roomState *room.State,
	compositionBefore map[string]float64,
	roomStartTempC float64,
	specificHeatJPerGC float64,
) *Scorecard {
	sc := &Scorecard{
		ExperimentID: experimentID,
		TimestampS:   timestampS,
		Pot: PotSummary{
			TemperatureC:      potState.TemperatureC,
			EffectiveBoilingC: boil.EffectiveBoilingC,
			TimeToBoilS:       boil.TimeToBoilS,
			SubstanceID:       potState.SubstanceID,
			BurnerStepIndex:   burnerStepIndex,
			AltitudeM:         altitudeM,
			PressurePa:        pressurePa,
		},
		Metrics: Metrics{IdealTimeS: idealTimesForSteps(burner, potState, roomStartTempC, boil.EffectiveBoilingC, specificHeatJPerGC)},
	}

	if roomState != nil {
		sc.Room = &RoomSummary{
			TempDeltaC:        roomState.TemperatureC - roomStartTempC,
			CompositionBefore: compositionBefore,
			CompositionAfter:  roomState.Composition,
			PeakPPM:           peakPPM(roomState),
			AlertLog:          roomState.Alerts,
		}
	}

	sc.Fingerprint = fingerprint.Of(struct {
		Pot     PotSummary
		Room    *RoomSummary
		Metrics Metrics
	}{sc.Pot, sc.Room, sc.Metrics})

	t.scorecards = append(t.scorecards, sc)
	return sc
}

// Scorecards returns every frozen Scorecard in freeze order.
func (t *Tracker) Scorecards() []*Scorecard {
	return t.scorecards
}

// TimeToBoilTrend returns the mean and standard deviation of time-to-boil
// across every frozen Scorecard, using gonum's online statistics
// (spec.md §4.6's scorecards feed dashboards the scene renders; this is
// the one derived cross-scorecard statistic this engine computes rather
// than leaving to the consumer).
func (t *Tracker) TimeToBoilTrend() (mean, stddev float64) {
	if len(t.scorecards) == 0 {
		return 0, 0
	}
	values := make([]float64, len(t.scorecards))
	for i, sc := range t.scorecards {
		values[i] = sc.Pot.TimeToBoilS
	}
	mean, stddev = stat.MeanStdDev(values, nil)
	return mean, stddev
}

func idealTimesForSteps(burner *equipment.Burner, potState *pot.State, startTempC, effectiveBoilingC, specificHeatJPerGC float64) map[int]float64 {
	if burner == nil {
		return nil
	}
	out := make(map[int]float64, len(burner.WattageSteps))
	massKg := potState.TotalMassKg
	deltaTC := effectiveBoilingC - startTempC
	for i, watts := range burner.WattageSteps {
		if watts <= 0 || massKg <= 0 {
			out[i] = 0
			continue
		}
		energyJ := massKg * 1000 * specificHeatJPerGC * deltaTC
		out[i] = energyJ / (watts * burner.Efficiency)
	}
	return out
}

func peakPPM(r *room.State) map[string]float64 {
	peaks := map[string]float64{}
	for _, snap := range r.CompositionLog {
		for species, fraction := range snap {
			ppm := fraction * 1e6
			if ppm > peaks[species] {
				peaks[species] = ppm
			}
		}
	}
	return peaks
}

