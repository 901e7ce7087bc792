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

package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmtile"
	"m4o.io/osmtile/cmd/osmtile/cli"
	"m4o.io/osmtile/model"
)

var out io.Writer = os.Stdout

type tileInfo struct {
	Sources []string `json:"sources"`
	Size    uint64   `json:"size"`

	osmtile.Stats

	// BoundingBox is nil when the graph holds no located entity.
	BoundingBox *model.BoundingBox `json:"bounding_box,omitempty"`
	Dangling    []model.NodeKey    `json:"dangling_endpoints"`

	// Within counts the entities inside the --within box, when one is given.
	Within *osmtile.Stats `json:"within,omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Uint16P("cpu", "c", osmtile.DefaultNCpu(), "number of CPUs to use for decoding appended tiles")
	flags.StringP("within", "w", "", "also count the entities inside top,left,bottom,right")
}

var infoCmd = &cobra.Command{
	Use:   "info <tile> [<tile>...]",
	Short: "Print information about tile files",
	Long: "Print information about the graph held by a tile file.  Further tiles\n" +
		"are appended to the first, as a viewer would, and the merged graph is\n" +
		"described.  A tile of - is read from standard input.",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		var within *model.BoundingBox

		if box, err := flags.GetString("within"); err != nil {
			log.Fatal(err)
		} else if box != "" {
			if within, err = model.ParseBoundingBox(box); err != nil {
				log.Fatal(err)
			}
		}

		info, err := runInfo(cmd.Context(), args, ncpu, !jsonfmt, within)
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info)
		} else {
			renderTxt(info)
		}
	},
}

func runInfo(ctx context.Context, paths []string, ncpu uint16, progress bool, within *model.BoundingBox) (*tileInfo, error) {
	v := osmtile.NewViewer(osmtile.WithNCpus(ncpu))

	in, err := cli.OpenInput(paths[0], progress)
	if err != nil {
		return nil, err
	}

	name := paths[0]
	if name != cli.Stdin {
		name = osmtile.SourceName(name)
	}

	err = v.LoadFrom(in, name)
	if cerr := in.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return nil, err
	}

	if err = v.AppendTiles(ctx, paths[1:]...); err != nil {
		return nil, err
	}

	info := &tileInfo{
		Sources:  v.Sources(),
		Stats:    v.Stats(),
		Dangling: v.DanglingEndpoints(),
	}

	if bbox := v.Bounds(); !bbox.IsEmpty() {
		info.BoundingBox = bbox
	}

	if within != nil {
		s := v.Within(within)
		info.Within = &s
	}

	for _, p := range info.Sources {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			info.Size += uint64(fi.Size())
		}
	}

	return info, nil
}

func renderJSON(info *tileInfo) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(info *tileInfo) {
	fmt.Fprintf(out, "Sources: %s\n", strings.Join(info.Sources, ", "))
	fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(info.Size))
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	} else {
		fmt.Fprintln(out, "BoundingBox: []")
	}
	fmt.Fprintf(out, "Nodes: %s\n", humanize.Comma(int64(info.Nodes)))
	fmt.Fprintf(out, "Links: %s\n", humanize.Comma(int64(info.Links)))
	fmt.Fprintf(out, "Areas: %s\n", humanize.Comma(int64(info.Areas)))
	fmt.Fprintf(out, "Places: %s\n", humanize.Comma(int64(info.Places)))

	dangling := make([]string, len(info.Dangling))
	for i, k := range info.Dangling {
		dangling[i] = fmt.Sprint(int64(k))
	}

	fmt.Fprintf(out, "DanglingEndpoints: %s\n", strings.Join(dangling, ", "))

	if w := info.Within; w != nil {
		fmt.Fprintf(out, "Within: %s nodes, %s links, %s areas, %s places\n",
			humanize.Comma(int64(w.Nodes)), humanize.Comma(int64(w.Links)),
			humanize.Comma(int64(w.Areas)), humanize.Comma(int64(w.Places)))
	}
}
