// Copyright 2017-25 the original author or authors.
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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmtile/model"
)

var london = &model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, model.MinLat, initial.Top)
	assert.Equal(t, model.MaxLat, initial.Bottom)
	assert.Equal(t, model.MinLon, initial.Right)
	assert.Equal(t, model.MaxLon, initial.Left)
	assert.True(t, initial.IsEmpty())
}

func TestBoundingBoxContains(t *testing.T) {
	const step = 1e-5

	test_cases := []struct {
		name     string
		p        model.Point
		expected bool
	}{
		{"bottom left corner", model.Point{Lat: london.Bottom, Lon: london.Left}, true},
		{"top right corner", model.Point{Lat: london.Top, Lon: london.Right}, true},
		{"centre", model.Point{Lat: 51.5, Lon: -0.12}, true},
		{"west of left", model.Point{Lat: 51.5, Lon: london.Left - step}, false},
		{"east of right", model.Point{Lat: 51.5, Lon: london.Right + step}, false},
		{"south of bottom", model.Point{Lat: london.Bottom - step, Lon: 0}, false},
		{"north of top", model.Point{Lat: london.Top + step, Lon: 0}, false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, london.Contains(tc.p))
		})
	}

	assert.False(t, model.InitialBoundingBox().Contains(model.Point{}))
}

func TestBoundingBoxExpand(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithPoint(model.Point{Lat: 45, Lon: 14.6})
	assert.Equal(t, &model.BoundingBox{Top: 45, Left: 14.6, Bottom: 45, Right: 14.6}, bbox)

	bbox.ExpandWithLatLng(45.1, 14.3)
	bbox.ExpandWithLatLng(44.9, 14.7)
	assert.Equal(t, &model.BoundingBox{Top: 45.1, Left: 14.3, Bottom: 44.9, Right: 14.7}, bbox)
}

func TestBoundingBoxExpandWithBoundingBox(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithBoundingBox(&model.BoundingBox{Top: 45, Left: 70, Bottom: 20, Right: 90})
	bbox.ExpandWithBoundingBox(&model.BoundingBox{Top: -25, Left: -90, Bottom: -45, Right: -70})
	assert.Equal(t, &model.BoundingBox{Top: 45, Left: -90, Bottom: -45, Right: 90}, bbox)

	bbox.ExpandWithBoundingBox(model.InitialBoundingBox())
	assert.Equal(t, &model.BoundingBox{Top: 45, Left: -90, Bottom: -45, Right: 90}, bbox)
}

func TestParseBoundingBox(t *testing.T) {
	bbox, err := model.ParseBoundingBox("51.69344, -0.511482, 51.28554, 0.335437")
	require.NoError(t, err)
	assert.Equal(t, london, bbox)

	for _, s := range []string{
		"",
		"51.69344,-0.511482,51.28554",
		"51.69344,-0.511482,51.28554,0.335437,1",
		"91,-0.511482,51.28554,0.335437",
		"51.69344,-181,51.28554,0.335437",
		"51.28554,-0.511482,51.69344,0.335437",
		"51.69344,0.335437,51.28554,-0.511482",
		"north,west,south,east",
	} {
		_, err := model.ParseBoundingBox(s)
		assert.Error(t, err, s)
	}
}

func TestBoundingBoxString(t *testing.T) {
	assert.Equal(t, "[(51.69344, -0.511482) (51.28554, 0.335437)]", london.String())
	assert.Equal(t, "[]", model.InitialBoundingBox().String())
}

func TestAreaBounds(t *testing.T) {
	a := model.Area{Outline: []model.Point{{Lat: 45.05, Lon: 14.62}, {Lat: 45.08, Lon: 14.65}, {Lat: 45.02, Lon: 14.68}}}
	assert.Equal(t, &model.BoundingBox{Top: 45.08, Left: 14.62, Bottom: 45.02, Right: 14.68}, a.Bounds())

	assert.True(t, model.Area{}.Bounds().IsEmpty())
}
