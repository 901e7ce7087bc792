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

// Package osmtile stores OpenStreetMap graphs as tiles.
//
// A tile holds four tables keyed by globally unique keys: nodes, links
// between nodes, areas and places.  A Builder accumulates one tile and writes
// it to a file.  A Viewer loads a tile and appends its neighbours, so that
// links crossing a tile border resolve against nodes held by the other tile.
//
// Keys are allocated by whatever generates the tiles and are assumed unique
// across all of them.  An entity found in two tiles must be identical in
// both; anything else is reported as ErrKeyCollision.
package osmtile
