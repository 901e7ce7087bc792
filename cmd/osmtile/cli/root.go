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
	"log/slog"

	"github.com/spf13/cobra"
)

// RootCmd is the command every osmtile subcommand hangs off.
var RootCmd = &cobra.Command{
	Use:   "osmtile",
	Short: "Inspect OpenStreetMap tile files",
	Long:  "Inspect OpenStreetMap tile files and the graphs they hold",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}

		var l slog.Level
		if err = l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}

		slog.SetLogLoggerLevel(l)

		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
}
