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
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/zawalonka/boilsim/internal/constants"
	"github.com/zawalonka/boilsim/internal/formula"
)

// subdirKinds maps the catalog's nested directory layout to the Kind tag
// applied to records loaded from it (spec.md §6).
var subdirKinds = map[string]Kind{
	"elements":  KindElement,
	"compounds": KindPure,
	"solutions": KindSolution,
}

// Catalog is the immutable, loaded set of substance records, keyed by id.
type Catalog struct {
	byID map[string]*Substance
	kind map[string]Kind
}

// LoadAll reads the nested compounds/solutions/elements directories under
// root from fs, schema-validates each file, and returns the resulting
// Catalog. Any CatalogError aborts loading entirely (spec.md §7: a
// CatalogError at startup prevents engine initialization).
func LoadAll(fs afero.Fs, root string) (*Catalog, error) {
	cat := &Catalog{byID: map[string]*Substance{}, kind: map[string]Kind{}}

	for subdir, kind := range subdirKinds {
		dir := filepath.Join(root, subdir)
		exists, err := afero.DirExists(fs, dir)
		if err != nil {
			return nil, invalidErr(dir, "could not stat directory", err)
		}
		if !exists {
			continue
		}
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			return nil, invalidErr(dir, "could not read directory", err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			path := filepath.Join(dir, e.Name())
			s, err := loadOne(fs, path)
			if err != nil {
				return nil, err
			}
			if _, dup := cat.byID[s.ID]; dup {
				return nil, invalidErr(path, fmt.Sprintf("duplicate substance id %q", s.ID), nil)
			}
			cat.byID[s.ID] = s
			cat.kind[s.ID] = kind
		}
	}
	return cat, nil
}

func loadOne(fs afero.Fs, path string) (*Substance, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, missingErr(path, err)
	}
	var s Substance
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, invalidErr(path, "schema validation failed", err)
	}
	if err := validate(&s, path); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *Substance, path string) error {
	if s.ID == "" {
		return invalidErr(path, "missing required field 'id'", nil)
	}
	if s.Name == "" {
		return invalidErr(path, "missing required field 'name'", nil)
	}
	if s.MolarMassKgPerMol <= 0 {
		return invalidErr(path, "molar_mass_kg_per_mol must be positive", nil)
	}
	switch s.PhaseAtAmbient {
	case PhaseSolid, PhaseLiquid, PhaseGas:
	default:
		return invalidErr(path, fmt.Sprintf("invalid phase_at_ambient %q", s.PhaseAtAmbient), nil)
	}
	if s.NonVolatileMassFraction < 0 || s.NonVolatileMassFraction > 1 {
		return invalidErr(path, "non_volatile_mass_fraction must be in [0,1]", nil)
	}
	if s.VanHoffFactor < 1 {
		return invalidErr(path, "van_hoff_factor must be >= 1", nil)
	}

	if s.Antoine != nil {
		r := formula.AntoineRange{MinC: s.Antoine.TMinC, MaxC: s.Antoine.TMaxC}
		res, err := formula.BoilingTemperature(constants.StandardBoilingPressurePa, s.Antoine.A, s.Antoine.B, s.Antoine.C, r)
		if err != nil {
			return invalidErr(path, "antoine coefficients could not be evaluated", err)
		}
		if absDifferent(res.TempC, s.BoilingPointSeaLevelC, 0.5) {
			return inconsistentErr(path, fmt.Sprintf(
				"antoine-inverted boiling point at sea level=%.2f°C disagrees with declared boiling_point_sea_level_c=%.2f°C by more than 0.5°C; Antoine is authoritative, declared boiling point should be recomputed", res.TempC, s.BoilingPointSeaLevelC))
		}
	}
	return nil
}

func absDifferent(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d > tol
}

// Get returns the substance with the given id.
func (c *Catalog) Get(id string) (*Substance, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Kind returns the catalog subtree a substance was loaded from.
func (c *Catalog) Kind(id string) (Kind, bool) {
	k, ok := c.kind[id]
	return k, ok
}

// AvailableFor returns the ids of substances that are naturally liquid at
// ambientTempC and whose room-control requirement, if any, is satisfied
// (spec.md §4.2).
func (c *Catalog) AvailableFor(ambientTempC float64, roomControlsUnlocked bool) []string {
	var ids []string
	for id, s := range c.byID {
		if !(s.MeltingPointC < ambientTempC && ambientTempC < s.BoilingPointSeaLevelC) {
			continue
		}
		if s.RequiresRoomControls && !roomControlsUnlocked {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
