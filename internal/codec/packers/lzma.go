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

package packers

import (
	"bytes"
	"fmt"

	"github.com/ulikunitz/xz/lzma"
)

type LzmaPacker struct {
	*base
}

func NewLzmaPacker() (*LzmaPacker, error) {
	var buf bytes.Buffer

	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("could not create lzma writer: %w", err)
	}

	return &LzmaPacker{base: newBasePacker(w, &buf)}, nil
}
