/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Payload describes one fill job: a template, an output path, and per-slide
// placeholder content.
type Payload struct {
	Template string      `json:"template"`
	Output   string      `json:"output"`
	Slides   []SlideFill `json:"slides"`
}

// SlideFill addresses one slide by zero-based index and maps shape names to
// their new content.
type SlideFill struct {
	Index        int                    `json:"index"`
	Placeholders map[string]Placeholder `json:"placeholders"`
}

// Placeholder content variants, discriminated by Type.
type Placeholder struct {
	Type  string   `json:"type"`            // "text", "list" or "image"
	Text  string   `json:"text,omitempty"`  // text: paragraph content, newline-separated
	Items []string `json:"items,omitempty"` // list: one entry per bullet
	Path  string   `json:"path,omitempty"`  // image: file to place

	// IsTitle forces the title size ceiling for shapes whose ph type does
	// not already say so. MaxFontSize caps this one placeholder and wins
	// over both configured ceilings; 0 means unset.
	IsTitle     bool `json:"isTitle,omitempty"`
	MaxFontSize int  `json:"maxFontSize,omitempty"`
}

const payloadSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["template", "output", "slides"],
	"properties": {
		"template": {"type": "string", "minLength": 1},
		"output": {"type": "string", "minLength": 1},
		"slides": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["index", "placeholders"],
				"properties": {
					"index": {"type": "integer", "minimum": 0},
					"placeholders": {
						"type": "object",
						"minProperties": 1,
						"additionalProperties": {
							"type": "object",
							"required": ["type"],
							"properties": {
								"type": {"enum": ["text", "list", "image"]},
								"text": {"type": "string"},
								"items": {"type": "array", "items": {"type": "string"}},
								"path": {"type": "string"},
								"isTitle": {"type": "boolean"},
								"maxFontSize": {"type": "integer", "minimum": 1}
							}
						}
					}
				}
			}
		}
	}
}`

// ParsePayload validates raw JSON against the payload schema and decodes it.
// Validation runs first so the caller gets field-level messages instead of
// whatever the decoder trips over.
func ParsePayload(raw []byte) (*Payload, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(payloadSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate payload: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid payload: %s", strings.Join(msgs, "; "))
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	for _, s := range p.Slides {
		for name, ph := range s.Placeholders {
			if err := ph.check(); err != nil {
				return nil, fmt.Errorf("placeholder %q: %w", name, err)
			}
		}
	}
	return &p, nil
}

// check enforces the per-type required fields the schema cannot express
// without unwieldy oneOf branches.
func (ph Placeholder) check() error {
	switch ph.Type {
	case "text":
		if ph.Text == "" {
			return fmt.Errorf("type %q needs a non-empty text field", ph.Type)
		}
	case "list":
		if len(ph.Items) == 0 {
			return fmt.Errorf("type %q needs a non-empty items field", ph.Type)
		}
	case "image":
		if ph.Path == "" {
			return fmt.Errorf("type %q needs a path field", ph.Type)
		}
	}
	return nil
}
