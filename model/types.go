// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Coordinate limits.
const (
	MinLat Degrees = -90.0
	MaxLat Degrees = 90.0
	MinLon Degrees = -180.0
	MaxLon Degrees = 180.0

	// ftoaPrecision is the number of decimals kept when rendering degrees;
	// it is finer than the 1e-6 OSM coordinates are usually given in.
	ftoaPrecision = 7
)

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() s1.Angle { return s1.Angle(d) * s1.Degree }

func (d Degrees) String() string {
	return ftoa(float64(d))
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// ParseLatitude parses a latitude in decimal degrees.
func ParseLatitude(s string) (Degrees, error) {
	return parseDegrees(s, MinLat, MaxLat)
}

// ParseLongitude parses a longitude in decimal degrees.
func ParseLongitude(s string) (Degrees, error) {
	return parseDegrees(s, MinLon, MaxLon)
}

func parseDegrees(s string, lo, hi Degrees) (Degrees, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}

	d := Degrees(f)
	if !(d >= lo && d <= hi) {
		return 0, fmt.Errorf("%s outside [%s, %s]", d, lo, hi)
	}

	return d, nil
}

// ftoa renders a float without trailing zeros.
func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', ftoaPrecision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	if s == "-0" {
		return "0"
	}

	return s
}
