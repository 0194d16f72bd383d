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

package equipment

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Catalog is the immutable, loaded set of equipment records.
type Catalog struct {
	Room        *RoomConfig
	Burners     map[string]*Burner
	ACUnits     map[string]*ACUnit
	AirHandlers map[string]*AirHandler
}

// LoadAll reads room.json, burners/*.json, ac-units/*.json, and
// air-handlers/*.json from root (spec.md §6).
func LoadAll(fs afero.Fs, root string) (*Catalog, error) {
	cat := &Catalog{
		Burners:     map[string]*Burner{},
		ACUnits:     map[string]*ACUnit{},
		AirHandlers: map[string]*AirHandler{},
	}

	roomPath := filepath.Join(root, "room.json")
	roomData, err := afero.ReadFile(fs, roomPath)
	if err != nil {
		return nil, missingErr(roomPath, err)
	}
	var room RoomConfig
	if err := json.Unmarshal(roomData, &room); err != nil {
		return nil, invalidErr(roomPath, "schema validation failed", err)
	}
	if err := validateRoom(&room, roomPath); err != nil {
		return nil, err
	}
	cat.Room = &room

	if err := loadGlob(fs, filepath.Join(root, "burners"), func(path string, data []byte) error {
		var b Burner
		if err := json.Unmarshal(data, &b); err != nil {
			return invalidErr(path, "schema validation failed", err)
		}
		if err := validateBurner(&b, path); err != nil {
			return err
		}
		cat.Burners[b.ID] = &b
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadGlob(fs, filepath.Join(root, "ac-units"), func(path string, data []byte) error {
		var a ACUnit
		if err := json.Unmarshal(data, &a); err != nil {
			return invalidErr(path, "schema validation failed", err)
		}
		cat.ACUnits[a.ID] = &a
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadGlob(fs, filepath.Join(root, "air-handlers"), func(path string, data []byte) error {
		var h AirHandler
		if err := json.Unmarshal(data, &h); err != nil {
			return invalidErr(path, "schema validation failed", err)
		}
		cat.AirHandlers[h.ID] = &h
		return nil
	}); err != nil {
		return nil, err
	}

	return cat, nil
}

func loadGlob(fs afero.Fs, dir string, handle func(path string, data []byte) error) error {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return invalidErr(dir, "could not stat directory", err)
	}
	if !exists {
		return nil
	}
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return invalidErr(dir, "could not read directory", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return missingErr(path, err)
		}
		if err := handle(path, data); err != nil {
			return err
		}
	}
	return nil
}

func validateRoom(r *RoomConfig, path string) error {
	if r.VolumeM3 <= 0 {
		return invalidErr(path, "volume_m3 must be positive", nil)
	}
	sum := 0.0
	for _, f := range r.InitialComposition {
		sum += f
	}
	if len(r.InitialComposition) > 0 && absDiff(sum, 1, 1e-6) {
		return invalidErr(path, fmt.Sprintf("initial_composition fractions sum to %.9f, want 1", sum), nil)
	}
	switch r.PressureMode {
	case PressureModeSeaLevel, PressureModeLocation, PressureModeCustom, "":
	default:
		return invalidErr(path, fmt.Sprintf("invalid pressure_mode %q", r.PressureMode), nil)
	}
	return nil
}

func validateBurner(b *Burner, path string) error {
	if len(b.WattageSteps) == 0 {
		return invalidErr(path, "wattage_steps must be non-empty", nil)
	}
	for i := 1; i < len(b.WattageSteps); i++ {
		if b.WattageSteps[i] < b.WattageSteps[i-1] {
			return invalidErr(path, "wattage_steps must be non-decreasing", nil)
		}
	}
	if b.Efficiency <= 0 || b.Efficiency > 1 {
		return invalidErr(path, "efficiency must be in (0,1]", nil)
	}
	return nil
}

func absDiff(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d > tol
}
