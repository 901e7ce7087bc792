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

package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmtile"
	"m4o.io/osmtile/cmd/osmtile/cli"
	"m4o.io/osmtile/model"
)

var (
	out io.Writer = os.Stdout

	base *os.File

	errUnknownKind = errors.New("unknown entity kind")
)

// result is what a query found.  Exactly one of the entity fields is set.
type result struct {
	Kind  string       `json:"kind"`
	Key   int64        `json:"key"`
	Node  *model.Node  `json:"node,omitempty"`
	Link  *model.Link  `json:"link,omitempty"`
	Area  *model.Area  `json:"area,omitempty"`
	Place *model.Place `json:"place,omitempty"`

	// Distance is the great-circle distance in metres between the endpoints
	// of a link, when both are loaded.
	Distance *float64 `json:"distance,omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(queryCmd)

	flags := queryCmd.Flags()
	flags.VarP(cli.NewTileValue(&base), "base", "b", "base tile, - for standard input")
	flags.StringSliceP("append", "a", nil, "tiles to append to the base tile")
	flags.StringP("dir", "d", ".", "directory holding the tiles named by --tile")
	flags.UintSliceP("tile", "t", nil, "ids of tiles in --dir to append to the base tile")
	flags.BoolP("json", "j", false, "format the result in JSON")
	flags.Uint16P("cpu", "c", osmtile.DefaultNCpu(), "number of CPUs to use for decoding appended tiles")
}

var queryCmd = &cobra.Command{
	Use:   "query (node|link|area|place) <key>",
	Short: "Look up an entity by key",
	Long: "Look up a node, link, area or place by key in the graph formed by a base\n" +
		"tile and any appended tiles.  For links the endpoints are resolved and the\n" +
		"distance between them reported.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		key, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			log.Fatalf("invalid key %q: %v", args[1], err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		paths, err := flags.GetStringSlice("append")
		if err != nil {
			log.Fatal(err)
		}

		dir, err := flags.GetString("dir")
		if err != nil {
			log.Fatal(err)
		}

		ids, err := flags.GetUintSlice("tile")
		if err != nil {
			log.Fatal(err)
		}

		for _, id := range ids {
			if id > math.MaxUint32 {
				log.Fatalf("tile id %d out of range", id)
			}

			paths = append(paths, osmtile.TileFileName(dir, model.TileID(id)))
		}

		v := osmtile.NewViewer(osmtile.WithNCpus(ncpu))

		err = v.LoadFrom(base, base.Name())
		if base != os.Stdin {
			base.Close()
		}

		if err != nil {
			log.Fatal(err)
		}

		if err = v.AppendTiles(cmd.Context(), paths...); err != nil {
			log.Fatal(err)
		}

		res, err := runQuery(v, args[0], key)
		if err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(res)
		} else {
			renderTxt(res)
		}
	},
}

func runQuery(v *osmtile.Viewer, kind string, key int64) (*result, error) {
	res := &result{Kind: kind, Key: key}

	switch kind {
	case "node":
		n, err := v.Node(model.NodeKey(key))
		if err != nil {
			return nil, err
		}

		res.Node = &n
	case "link":
		l, err := v.Link(model.LinkKey(key))
		if err != nil {
			return nil, err
		}

		res.Link = &l

		// an endpoint in a tile that is not loaded leaves the distance unknown
		if from, to, err := v.Endpoints(model.LinkKey(key)); err == nil {
			d := from.Point().DistanceTo(to.Point())
			res.Distance = &d
		}
	case "area":
		a, err := v.Area(model.AreaKey(key))
		if err != nil {
			return nil, err
		}

		res.Area = &a
	case "place":
		p, err := v.Place(model.PlaceKey(key))
		if err != nil {
			return nil, err
		}

		res.Place = &p
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownKind, kind)
	}

	return res, nil
}

func renderJSON(res *result) {
	b, err := json.Marshal(res)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(res *result) {
	switch {
	case res.Node != nil:
		n := res.Node
		fmt.Fprintf(out, "Node %d: %s layer %d\n", res.Key, n.Point(), n.Layer)
	case res.Link != nil:
		l := res.Link
		fmt.Fprintf(out, "Link %d: %s %d -> %d length %s\n",
			res.Key, l.Type, l.From, l.To, humanize.Ftoa(l.Length))

		if res.Distance != nil {
			d, unit := humanize.ComputeSI(*res.Distance)
			fmt.Fprintf(out, "Distance: %s %sm\n", humanize.FtoaWithDigits(d, 3), unit)
		} else {
			fmt.Fprintln(out, "Distance: unresolved")
		}
	case res.Area != nil:
		a := res.Area
		fmt.Fprintf(out, "Area %d: %s %q layer %d points %d\n", res.Key, a.Type, a.Name, a.Layer, len(a.Outline))
	case res.Place != nil:
		p := res.Place
		fmt.Fprintf(out, "Place %d: %s %q %s layer %d population %s\n",
			res.Key, p.Type, p.Name, p.Point(), p.Layer, humanize.Comma(int64(p.Population)))
	}
}
