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

	"github.com/spf13/cobra"

	"pptxfill/internal/fitting"
	"pptxfill/internal/fontlib"
)

var (
	fitWidth   float64
	fitHeight  float64
	fitFont    string
	fitMax     int
	fitSpacing float64
)

var fitCmd = &cobra.Command{
	Use:   "fit <text>...",
	Short: "Compute the largest fitting font size for text in a frame",
	Long: `Measures each argument as one paragraph and prints the largest font
size, in points, whose wrapped layout fits the given frame. Useful for
checking how a template's shapes behave before building a payload.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := fitting.Fit(fontlib.NewLibrary(), fitting.Request{
			WidthPt:          fitWidth,
			HeightPt:         fitHeight,
			Items:            args,
			MaxSize:          fitMax,
			FontName:         fitFont,
			FontDir:          cfg.Fonts.Dir,
			LineSpacing:      fitSpacing,
			LineHeightFactor: cfg.Fit.LineHeightFactor,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%dpt\n", size)
		return nil
	},
}

func init() {
	fitCmd.Flags().Float64Var(&fitWidth, "width", 480, "frame width in points")
	fitCmd.Flags().Float64Var(&fitHeight, "height", 100, "frame height in points")
	fitCmd.Flags().StringVar(&fitFont, "font", "", "font name to measure with (required)")
	fitCmd.Flags().IntVar(&fitMax, "max", 24, "upper bound of the size search")
	fitCmd.Flags().Float64Var(&fitSpacing, "line-spacing", 1.0, "line spacing ratio")
	_ = fitCmd.MarkFlagRequired("font")
}
