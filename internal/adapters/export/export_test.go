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

package export

import (
	"encoding/csv"
	"encoding/json"
	"bytes"
	"strings"
	"testing"

	"github.com/zawalonka/boilsim/internal/progression"
)

func sampleScorecard() *progression.Scorecard {
	return &progression.Scorecard{
		ExperimentID: "e1",
		TimestampS:   167.4,
		Pot: progression.PotSummary{
			TemperatureC:      100,
			EffectiveBoilingC: 100,
			TimeToBoilS:       167.4,
			SubstanceID:       "water",
			BurnerStepIndex:   3,
			AltitudeM:         0,
			PressurePa:        101325,
		},
		Metrics: progression.Metrics{IdealTimeS: map[int]float64{3: 167.4}},
	}
}

func TestJSONHasStableTopLevelKeys(t *testing.T) {
	data, err := JSON(sampleScorecard())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"experiment_id", "timestamp", "pot", "metrics"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("expected top-level key %q in JSON export", key)
		}
	}
	if _, ok := doc["room"]; ok {
		t.Errorf("expected room key omitted when Room is nil")
	}
}

func TestCSVHasFixedHeaderAndOneRowPerScorecard(t *testing.T) {
	data, err := CSV([]*progression.Scorecard{sampleScorecard(), sampleScorecard()})
	if err != nil {
		t.Fatal(err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][2] != "water" {
		t.Errorf("expected substance_id column = water, got %v", records[1][2])
	}
}
