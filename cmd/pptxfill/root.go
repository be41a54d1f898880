/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"github.com/spf13/cobra"

	"pptxfill/internal/config"
	applog "pptxfill/internal/log"
	"pptxfill/internal/version"
)

var (
	cfg     config.AppConfig
	fontDir string
)

var rootCmd = &cobra.Command{
	Use:   "pptxfill",
	Short: "Fill PPTX templates with fitted text and images",
	Long: `pptxfill takes a PPTX template and a JSON payload, replaces named
placeholder shapes with the payload's text, lists and images, and picks for
each text shape the largest font size whose wrapped layout still fits the
shape's frame. Measurement uses the font files from the configured font
directory.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&fontDir, "font-dir", "", "font directory (overrides config and PXF_FONT_DIR)",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if fontDir != "" {
			cfg.Fonts.Dir = fontDir
		}
		applog.Init(applog.FromEnv())
		return nil
	}

	rootCmd.AddCommand(fillCmd, fitCmd, fontsCmd, versionCmd)
}
