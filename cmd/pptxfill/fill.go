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
	"os"

	"github.com/spf13/cobra"

	"pptxfill/internal/fill"
)

var fillCmd = &cobra.Command{
	Use:   "fill <payload.json>",
	Short: "Apply a JSON payload to a PPTX template",
	Long: `Reads a payload that names the template, the output file and the
placeholder content per slide, validates it and writes the filled deck.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		payload, err := fill.ParsePayload(raw)
		if err != nil {
			return err
		}
		if err := fill.NewFiller(cfg).Run(payload); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", payload.Output)
		return nil
	},
}
