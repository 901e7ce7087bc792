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

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// tileValue is a flag naming a tile file that is opened as soon as the flag
// is parsed.
type tileValue struct {
	file **os.File
}

// NewTileValue creates a flag value that opens the named tile file into p.
// Stdin selects standard input, which is also the default.
func NewTileValue(p **os.File) pflag.Value {
	*p = os.Stdin

	return &tileValue{file: p}
}

func (v *tileValue) Set(path string) error {
	if path == Stdin {
		*v.file = os.Stdin

		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()

		return err
	}

	if fi.IsDir() {
		f.Close()

		return fmt.Errorf("%s is a directory", path)
	}

	*v.file = f

	return nil
}

func (v *tileValue) Type() string {
	return "tile"
}

func (v *tileValue) String() string {
	if *v.file == nil || *v.file == os.Stdin {
		return Stdin
	}

	return (*v.file).Name()
}
