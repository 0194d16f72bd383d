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

// Package engine drives the simulation: it owns the pot and room state,
// applies scenario inputs, and advances both processes in lockstep using
// a fixed sub-step, as specified in spec.md §4, §5.
package engine

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/zawalonka/boilsim/internal/catalog/equipment"
	"github.com/zawalonka/boilsim/internal/catalog/substance"
	"github.com/zawalonka/boilsim/internal/constants"
	"github.com/zawalonka/boilsim/internal/formula"
	"github.com/zawalonka/boilsim/internal/pot"
	"github.com/zawalonka/boilsim/internal/room"
)

// Event is a tagged union of the non-fatal occurrences an Advance call can
// surface: boil onset, decomposition, and room alerts.
type Event struct {
	Boil          *pot.BoilEvent
	Decomposition *pot.DecompositionEvent
	Alert         *room.Alert
}

// Snapshot is the read-only, value-object view published after each
// Advance call (spec.md §4: "publish a snapshot, never a live pointer").
type Snapshot struct {
	Pot           pot.State
	Room          room.State
	AltitudeM     float64
	SpeedMultiplier float64
	Paused        bool
}

// Engine owns the live pot and room state and the currently-selected
// catalog records. It runs single-threaded: Advance must not be called
// concurrently from more than one goroutine (spec.md §5).
type Engine struct {
	subCat *substance.Catalog
	eqCat  *equipment.Catalog
	log    *logrus.Logger

	substance *substance.Substance
	burner    *equipment.Burner
	ac        *equipment.ACUnit
	handler   *equipment.AirHandler

	pot  *pot.State
	room *room.State

	potOverBurner        bool
	burnerOn             bool
	burnerStepIndex      int
	airHandlerOn         bool
	altitudeM            float64
	roomControlsUnlocked bool

	speedMultiplier float64
	paused          bool
	accumulatedS    float64
}

// New constructs an Engine from a loaded substance and equipment catalog.
// The room is initialized immediately from the equipment catalog's room
// record; a substance must still be selected with SetSubstance and a fill
// performed before Advance will do anything to the pot.
func New(subCat *substance.Catalog, eqCat *equipment.Catalog, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Engine{
		subCat:          subCat,
		eqCat:           eqCat,
		log:             log,
		speedMultiplier: 1.0,
	}

	initialPressurePa := constants.StandardBoilingPressurePa
	if eqCat.Room.PressureMode == equipment.PressureModeLocation {
		initialPressurePa = formula.ISAPressure(0)
	}
	e.room = room.New(eqCat.Room, initialPressurePa)
	return e
}

// SetAltitude sets the altitude used to resolve ISA pressure when the
// room's pressure_mode is "location" (spec.md §4.1). Any finite value is
// accepted, including negative altitudes below sea level such as the
// Dead Sea shore at -430 m (spec.md §6 invariant 3).
func (e *Engine) SetAltitude(altitudeM float64) error {
	if math.IsNaN(altitudeM) || math.IsInf(altitudeM, 0) {
		return badInput("altitude must be finite")
	}
	e.altitudeM = altitudeM
	if e.eqCat.Room.PressureMode == equipment.PressureModeLocation && !e.roomControlsUnlocked {
		e.room.PressurePa = formula.ISAPressure(altitudeM)
	}
	return nil
}

// SetRoomControlsUnlocked records whether progression has unlocked room
// controls for the active experiment (spec.md §3, §4.4). Before unlock,
// the pot's effective boiling point is resolved from ISA(altitude)
// directly; after unlock, room pressure is authoritative, seeded once
// from ISA at the moment of unlock and left to evolve on its own
// thereafter.
func (e *Engine) SetRoomControlsUnlocked(unlocked bool) {
	if unlocked && !e.roomControlsUnlocked {
		// Rebuild the room at the ISA pressure so its reference mole count,
		// not just its pressure field, is seeded; current temperature,
		// composition, control settings and logs carry over.
		prev := e.room
		cfg := *e.eqCat.Room
		cfg.InitialTempC = prev.TemperatureC
		cfg.InitialComposition = prev.Composition
		e.room = room.New(&cfg, formula.ISAPressure(e.altitudeM))
		e.room.ACEnabled = prev.ACEnabled
		e.room.ACSetpointC = prev.ACSetpointC
		e.room.ACPIDState = prev.ACPIDState
		e.room.AirHandlerMode = prev.AirHandlerMode
		e.room.HeatLog = prev.HeatLog
		e.room.CompositionLog = prev.CompositionLog
		e.room.Alerts = prev.Alerts
	}
	e.roomControlsUnlocked = unlocked
}

// SetSubstance selects the active substance and fills the pot with the
// given mass at the room's current temperature (spec.md §4.3 Fill).
func (e *Engine) SetSubstance(id string, massKg float64) error {
	s, ok := e.subCat.Get(id)
	if !ok {
		return badInput("unknown substance id " + id)
	}
	if massKg <= 0 {
		return badInput("fill mass must be positive")
	}
	e.substance = s
	e.pot = pot.Fill(s, massKg, e.room.TemperatureC)
	return nil
}

// SetBurnerStep selects a burner and its active wattage step.
func (e *Engine) SetBurnerStep(burnerID string, stepIndex int) error {
	b, ok := e.eqCat.Burners[burnerID]
	if !ok {
		return badInput("unknown burner id " + burnerID)
	}
	if stepIndex < 0 || stepIndex >= len(b.WattageSteps) {
		return badInput("burner step index out of range")
	}
	e.burner = b
	e.burnerStepIndex = stepIndex
	return nil
}

// SetBurnerOn toggles whether the burner is lit.
func (e *Engine) SetBurnerOn(on bool) { e.burnerOn = on }

// SetPotPosition toggles whether the pot sits over the burner.
func (e *Engine) SetPotPosition(overBurner bool) { e.potOverBurner = overBurner }

// SetAC selects the active AC unit and whether it is enabled, with a
// setpoint clamped to the unit's configured range (spec.md §4.4).
func (e *Engine) SetAC(acID string, enabled bool, setpointC float64) error {
	a, ok := e.eqCat.ACUnits[acID]
	if !ok {
		return badInput("unknown ac unit id " + acID)
	}
	if setpointC < a.MinSetpointC {
		setpointC = a.MinSetpointC
	} else if setpointC > a.MaxSetpointC {
		setpointC = a.MaxSetpointC
	}
	e.ac = a
	e.room.ACEnabled = enabled
	e.room.ACSetpointC = setpointC
	return nil
}

// SetAirHandler selects the active air handler, its mode, and whether it
// is running.
func (e *Engine) SetAirHandler(handlerID string, on bool, mode string) error {
	h, ok := e.eqCat.AirHandlers[handlerID]
	if !ok {
		return badInput("unknown air handler id " + handlerID)
	}
	if _, ok := h.Modes[mode]; !ok {
		return badInput("unknown air handler mode " + mode)
	}
	e.handler = h
	e.airHandlerOn = on
	e.room.AirHandlerMode = mode
	return nil
}

// SetSpeed sets the wall-clock speed multiplier applied in Advance.
func (e *Engine) SetSpeed(multiplier float64) error {
	if multiplier < 0 {
		return badInput("speed multiplier must be non-negative")
	}
	e.speedMultiplier = multiplier
	return nil
}

// SetPaused pauses or resumes the engine; Advance is a no-op while paused.
func (e *Engine) SetPaused(paused bool) { e.paused = paused }

// RoomControlsUnlocked reports whether room controls are currently active
// for this engine (see SetRoomControlsUnlocked).
func (e *Engine) RoomControlsUnlocked() bool { return e.roomControlsUnlocked }

// Burner returns the currently selected burner record, or nil if none has
// been selected via SetBurnerStep yet.
func (e *Engine) Burner() *equipment.Burner { return e.burner }

// BurnerStepIndex returns the currently selected burner wattage step.
func (e *Engine) BurnerStepIndex() int { return e.burnerStepIndex }

// SpecificHeatJPerGC returns the active substance's liquid-phase specific
// heat, or zero if no substance has been filled yet.
func (e *Engine) SpecificHeatJPerGC() float64 {
	if e.substance == nil {
		return 0
	}
	return e.substance.SpecificHeatJPerGC[substance.PhaseLiquid]
}

// RoomState returns the live room state, for callers (such as a scorecard
// freeze) that need a snapshot of composition/pressure beyond what
// Snapshot carries. The returned pointer must not be mutated.
func (e *Engine) RoomState() *room.State { return e.room }

// Advance consumes wallDtS of wall-clock time, scaled by the speed
// multiplier, as a sequence of fixed sub-steps no larger than
// constants.MaxSubStepSeconds, per spec.md §5. Leftover time below one
// sub-step is carried to the next call so the integration is exact
// regardless of the caller's polling cadence.
func (e *Engine) Advance(wallDtS float64) (Snapshot, []Event, error) {
	if e.paused || wallDtS <= 0 {
		return e.snapshot(), nil, nil
	}
	if e.substance == nil || e.pot == nil {
		return Snapshot{}, nil, notReady("no substance has been filled into the pot")
	}

	var events []Event
	e.accumulatedS += wallDtS * e.speedMultiplier

	for e.accumulatedS >= constants.MaxSubStepSeconds {
		e.accumulatedS -= constants.MaxSubStepSeconds
		events = append(events, e.substep(constants.MaxSubStepSeconds)...)
	}

	return e.snapshot(), events, nil
}

func (e *Engine) substep(dtS float64) []Event {
	var events []Event

	// Before room controls unlock, the pot has no functioning room to read
	// pressure from (spec.md §3); resolve boiling directly from ISA at the
	// current altitude. After unlock, room pressure is authoritative.
	bpPressurePa := formula.ISAPressure(e.altitudeM)
	if e.roomControlsUnlocked {
		bpPressurePa = e.room.PressurePa
	}
	effectiveBP, err := e.subCat.EffectiveBoilingPoint(e.substance.ID, bpPressurePa)
	if err != nil {
		e.log.WithError(err).WithField("substance", e.substance.ID).Warn("boiling point unresolved, pot will not boil this step")
	}

	potIn := pot.Input{
		BurnerStepIndex: e.burnerStepIndex,
		PotOverBurner:   e.potOverBurner,
		BurnerOn:        e.burnerOn,
	}
	nextPot, potResult := pot.Step(e.pot, potIn, e.substance, e.burner, e.room.TemperatureC, effectiveBP, dtS)
	e.pot = nextPot

	if potResult.Boil != nil {
		e.log.WithField("time_to_boil_s", potResult.Boil.TimeToBoilS).Info("boil onset")
		events = append(events, Event{Boil: potResult.Boil})
	}
	if potResult.Decomposition != nil {
		e.log.WithField("temperature_c", potResult.Decomposition.TemperatureC).Warn("decomposition halt")
		events = append(events, Event{Decomposition: potResult.Decomposition})
	}

	burnerLossW := 0.0
	if e.burner != nil && e.burnerOn && e.burnerStepIndex >= 0 && e.burnerStepIndex < len(e.burner.WattageSteps) {
		burnerLossW = e.burner.WattageSteps[e.burnerStepIndex] * e.burner.Efficiency
	}

	roomIn := room.Input{AirHandlerOn: e.airHandlerOn}
	nextRoom, alerts := room.Step(e.room, e.eqCat.Room, e.ac, e.handler, roomIn, potResult.Emissions, burnerLossW, dtS)
	e.room = nextRoom

	for i := range alerts.Alerts {
		a := alerts.Alerts[i]
		if a.Severity == room.SeverityCritical {
			e.log.WithField("message", a.Message).Error("room alert")
		} else {
			e.log.WithField("message", a.Message).Warn("room alert")
		}
		events = append(events, Event{Alert: &a})
	}

	return events
}

func (e *Engine) snapshot() Snapshot {
	s := Snapshot{
		Room:            *e.room,
		AltitudeM:       e.altitudeM,
		SpeedMultiplier: e.speedMultiplier,
		Paused:          e.paused,
	}
	if e.pot != nil {
		s.Pot = *e.pot
	}
	return s
}
