/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pptxfill/internal/fontlib"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "List the font names found in the font directory",
	Long: `Scans the configured font directory, extracts the embedded family
and full names from every font file and prints the resulting name-to-file
mapping. These names are what payload templates resolve against.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Fonts.Dir == "" {
			return fmt.Errorf("no font directory configured (set --font-dir, PXF_FONT_DIR or fonts.dir)")
		}
		idx := fontlib.NewLibrary().Index(cfg.Fonts.Dir)
		names := make([]string, 0, len(idx))
		for name := range idx {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, file := range idx[name] {
				fmt.Printf("%-40s %s\n", name, file)
			}
		}
		fmt.Printf("%d names in %s\n", len(names), cfg.Fonts.Dir)
		return nil
	},
}
