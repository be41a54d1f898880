/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fontlib

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face returns a sized face for the font file at path, caching by
// (path, pixel size). The point size is converted with the shared MeasureDPI
// constant. Load failures degrade to absence with a warning; they never
// surface as errors here.
//
// Faces are built with HintingNone: unhinted advances track the ideal glyph
// metrics PowerPoint's layout engine wraps with, so line breaks land at the
// same character positions.
func (l *Library) Face(path string, sizePt int) (font.Face, bool) {
	px := int(float64(sizePt) * PixelsPerPoint)

	l.mu.Lock()
	defer l.mu.Unlock()

	key := faceKey{path: path, px: px}
	if f, ok := l.faces[key]; ok {
		return f, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logc().Warn("could not load font", "path", path, "err", err)
		return nil, false
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		logc().Warn("could not parse font", "path", path, "err", err)
		return nil, false
	}
	// Collections expose several members; like most renderers we measure
	// with the first one.
	f, err := coll.Font(0)
	if err != nil {
		logc().Warn("could not open first collection member", "path", path, "err", err)
		return nil, false
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72, // size already carries the DPI conversion
		Hinting: font.HintingNone,
	})
	if err != nil {
		logc().Warn("could not instantiate face", "path", path, "size_px", px, "err", err)
		return nil, false
	}
	l.faces[key] = face
	return face, true
}

// MeasureTextWidth reports the horizontal extent, in pixels, of the tightest
// box enclosing text rendered from the font at path at sizePt points. The
// second return value is false when no face could be obtained.
func (l *Library) MeasureTextWidth(text, path string, sizePt int) (float64, bool) {
	face, ok := l.Face(path, sizePt)
	if !ok {
		return 0, false
	}
	bounds, _ := font.BoundString(face, text)
	return fixedToPx(bounds.Max.X - bounds.Min.X), true
}

// LineHeight reports ascent+descent in pixels for the sized font. Not used
// by the fitting engine, which models line height from the renderer's
// factor instead, but callers probing real font metrics can use it.
func (l *Library) LineHeight(path string, sizePt int) (float64, bool) {
	face, ok := l.Face(path, sizePt)
	if !ok {
		return 0, false
	}
	m := face.Metrics()
	return fixedToPx(m.Ascent + m.Descent), true
}

func fixedToPx(v fixed.Int26_6) float64 { return float64(v) / 64 }
