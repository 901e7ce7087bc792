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

	"github.com/golang/geo/s2"
)

// EarthRadius is the mean radius of the earth in metres.
const EarthRadius = 6_371_008.8

// Point is a latitude/longitude pair.
type Point struct {
	Lat Degrees `json:"lat"`
	Lon Degrees `json:"lon"`
}

// LatLng returns the equivalent s2.LatLng.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLng{Lat: p.Lat.Angle(), Lng: p.Lon.Angle()}
}

// DistanceTo returns the great-circle distance, in metres, between p and o.
func (p Point) DistanceTo(o Point) float64 {
	return p.LatLng().Distance(o.LatLng()).Radians() * EarthRadius
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", ftoa(float64(p.Lat)), ftoa(float64(p.Lon)))
}
