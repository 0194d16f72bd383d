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

// Package altitude resolves a location to an altitude in meters, outside
// the engine's synchronous boundary (spec.md §5: "altitude-from-location
// lookups ... are performed outside the engine; the engine receives
// already-resolved values").
package altitude

import "context"

// Resolver looks up an altitude in meters for a named location.
type Resolver interface {
	Resolve(ctx context.Context, location string) (meters float64, err error)
}

// Static is a Resolver backed by a fixed lookup table, used in tests and
// for scenarios that ship their own location data rather than calling
// out to a network service.
type Static struct {
	Altitudes map[string]float64
}

// Resolve returns the altitude for location, or an error if it is not in
// the table.
func (s Static) Resolve(_ context.Context, location string) (float64, error) {
	m, ok := s.Altitudes[location]
	if !ok {
		return 0, &Error{Location: location, Msg: "location not found"}
	}
	return m, nil
}

// Error reports a resolution failure for a specific location.
type Error struct {
	Location string
	Msg      string
}

func (e *Error) Error() string {
	return "altitude: " + e.Location + ": " + e.Msg
}
