/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fontlib maps human font names to font files and measures text with
// them. A Library bundles the two caches the rest of the application shares:
// the per-directory name index and the sized face cache. It is constructed
// once per processing run, passed to resolver and fitting calls, and Reset
// between independent runs.
package fontlib

import (
	"sync"

	"golang.org/x/image/font"
)

// MeasureDPI is the fixed DPI used to convert points to pixels for text
// measurement. The value itself is irrelevant as long as the same constant
// converts both font sizes and frame dimensions.
const MeasureDPI = 96

// PixelsPerPoint is the point-to-pixel factor at MeasureDPI.
const PixelsPerPoint = float64(MeasureDPI) / 72.0

type faceKey struct {
	path string
	px   int
}

// Library owns the font caches for one processing run. All methods are safe
// for concurrent use; a single mutex guards both caches.
type Library struct {
	mu      sync.Mutex
	indexes map[string]FontIndex
	faces   map[faceKey]font.Face
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{
		indexes: make(map[string]FontIndex),
		faces:   make(map[faceKey]font.Face),
	}
}

// Reset drops the name index and every cached face. Intended to be called
// once at the end of a processing run so memory stays bounded and a later
// run with a different font directory starts from a clean scan.
func (l *Library) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	nIdx, nFace := len(l.indexes), len(l.faces)
	l.indexes = make(map[string]FontIndex)
	l.faces = make(map[faceKey]font.Face)
	logc().Info("cleared font caches", "indexes", nIdx, "faces", nFace)
}
