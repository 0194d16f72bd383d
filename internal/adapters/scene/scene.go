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

// Package scene defines the I/O contract between the engine and the
// external scene: sprite rendering, pot-drag pointer handling, and all
// other presentation concerns are explicitly out of scope (spec.md §1)
// and live entirely on the other side of this interface.
package scene

import (
	"github.com/zawalonka/boilsim/internal/engine"
)

// Publisher is implemented by a scene adapter that wants pushed
// snapshots and events at the engine's observable-tick cadence, rather
// than polling Engine.Advance's return values directly.
type Publisher interface {
	Publish(snap engine.Snapshot, events []engine.Event)
}

// InputSource is implemented by a scene adapter that translates user
// gestures (dragging the pot onto the burner, turning a dial) into the
// engine's input setters. It exists so a scene implementation can be
// swapped for a scripted driver in tests without touching engine code.
type InputSource interface {
	// Drain returns queued input actions since the last call, in the
	// order they were produced.
	Drain() []Action
}

// ActionKind tags which Engine setter an Action should invoke.
type ActionKind string

const (
	ActionSetBurnerStep  ActionKind = "set_burner_step"
	ActionSetPotPosition ActionKind = "set_pot_position"
	ActionSetSubstance   ActionKind = "set_substance"
	ActionSetAltitude    ActionKind = "set_altitude"
	ActionSetAC          ActionKind = "set_ac"
	ActionSetAirHandler  ActionKind = "set_air_handler"
	ActionSetSpeed       ActionKind = "set_speed"
)

// Action is one user-originated input, queued by an InputSource and
// applied to an Engine by the driver loop (spec.md §6).
type Action struct {
	Kind ActionKind

	BurnerID        string
	BurnerStepIndex int
	PotOverBurner   bool
	SubstanceID     string
	FillMassKg      float64
	AltitudeM       float64
	ACID            string
	ACEnabled       bool
	ACSetpointC     float64
	AirHandlerID    string
	AirHandlerOn    bool
	AirHandlerMode  string
	SpeedMultiplier float64
}

// Apply dispatches a batch of queued actions against an Engine, in
// order, stopping at the first error (spec.md §6: inputs applied to a
// tick are observed atomically before that tick's integration).
func Apply(e *engine.Engine, actions []Action) error {
	for _, a := range actions {
		var err error
		switch a.Kind {
		case ActionSetBurnerStep:
			err = e.SetBurnerStep(a.BurnerID, a.BurnerStepIndex)
		case ActionSetPotPosition:
			e.SetPotPosition(a.PotOverBurner)
		case ActionSetSubstance:
			err = e.SetSubstance(a.SubstanceID, a.FillMassKg)
		case ActionSetAltitude:
			err = e.SetAltitude(a.AltitudeM)
		case ActionSetAC:
			err = e.SetAC(a.ACID, a.ACEnabled, a.ACSetpointC)
		case ActionSetAirHandler:
			err = e.SetAirHandler(a.AirHandlerID, a.AirHandlerOn, a.AirHandlerMode)
		case ActionSetSpeed:
			err = e.SetSpeed(a.SpeedMultiplier)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
