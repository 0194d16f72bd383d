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

package altitude

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// HTTPResolver queries an elevation lookup service over HTTP. It uses
// stdlib net/http directly since the request/response shape here is a
// single GET and a small JSON body, not worth a framework dependency.
type HTTPResolver struct {
	BaseURL string
	Client  *http.Client
}

type elevationResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Resolve issues a GET request to BaseURL with the location as a query
// parameter and parses a single elevation result in meters.
func (r HTTPResolver) Resolve(ctx context.Context, location string) (float64, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	reqURL := r.BaseURL + "?location=" + url.QueryEscape(location)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, &Error{Location: location, Msg: fmt.Sprintf("building request: %v", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, &Error{Location: location, Msg: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &Error{Location: location, Msg: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed elevationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, &Error{Location: location, Msg: fmt.Sprintf("decoding response: %v", err)}
	}
	if len(parsed.Results) == 0 {
		return 0, &Error{Location: location, Msg: "no elevation results returned"}
	}
	return parsed.Results[0].Elevation, nil
}
