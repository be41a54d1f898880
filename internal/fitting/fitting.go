/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fitting finds the largest font size whose word-wrapped layout of a
// set of text items stays inside a fixed frame.
package fitting

import (
	"errors"
	"fmt"
	"math"

	"pptxfill/internal/fontlib"
	"pptxfill/internal/log"
)

// MinFontSize is the lower bound of the search. When nothing fits, the
// engine returns this size and accepts the overflow; a frame showing
// truncated text beats a frame showing none.
const MinFontSize = 6

var (
	// ErrFontNotFound means the requested font name resolved to no file at
	// all. Fatal to the single fitting call.
	ErrFontNotFound = errors.New("font file not found")
	// ErrMeasurement means a resolved font failed to measure an item. A
	// stronger signal than ErrFontNotFound: the file loaded but is broken
	// or unsupported.
	ErrMeasurement = errors.New("text measurement failed")
)

// Request carries everything one fitting call needs. Pure input; the only
// shared state is the Library's caches.
type Request struct {
	WidthPt  float64
	HeightPt float64
	Items    []string // one entry per paragraph
	MaxSize  int
	FontName string
	FontDir  string

	// LineSpacing is a ratio (1.0 = single) unless FixedLineSpacing is set,
	// in which case it is the total line height in points.
	LineSpacing      float64
	FixedLineSpacing bool

	SpaceBeforePt float64
	SpaceAfterPt  float64

	// LineHeightFactor models the renderer's intrinsic leading on top of
	// the font size; 1.2 matches PowerPoint single spacing. Ignored for
	// fixed line spacing.
	LineHeightFactor float64
}

// Fit returns the largest integer size in [MinFontSize, req.MaxSize] whose
// total height fits req.HeightPt, or MinFontSize when none does.
//
// The scan is linear from the top: wrap counts jump discretely with the
// measured width, so total height is not strictly monotone in font size and
// an exhaustive largest-first check is the only way to guarantee the first
// fit is the largest fit.
func Fit(lib *fontlib.Library, req Request) (int, error) {
	if len(req.Items) == 0 {
		return 0, errors.New("fitting request has no text items")
	}
	if req.MaxSize < MinFontSize {
		req.MaxSize = MinFontSize
	}

	fontPath, ok := lib.FindFontFile(req.FontName, req.FontDir)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %q", ErrFontNotFound, req.FontName, req.FontDir)
	}
	l := log.WithComponent("fitting")
	l.Info("resolved font for measurement", "font", req.FontName, "path", fontPath)
	l.Debug("frame dimensions", "width_pt", req.WidthPt, "height_pt", req.HeightPt)

	widthPx := req.WidthPt * fontlib.PixelsPerPoint
	factor := req.LineHeightFactor
	if factor <= 0 {
		factor = 1.2
	}
	ratio := req.LineSpacing
	if !req.FixedLineSpacing && ratio <= 0 {
		ratio = 1.0
	}

	for size := req.MaxSize; size >= MinFontSize; size-- {
		totalLines := 0
		for _, item := range req.Items {
			w, ok := lib.MeasureTextWidth(item, fontPath, size)
			if !ok {
				return 0, fmt.Errorf("%w: %q at %dpt", ErrMeasurement, fontPath, size)
			}
			totalLines += wrapCount(w, widthPx)
		}

		var lineHeight float64
		if req.FixedLineSpacing {
			// Fixed spacing is the total line height, verbatim.
			lineHeight = req.LineSpacing
		} else {
			lineHeight = float64(size) * factor * ratio
		}

		textHeight := float64(totalLines) * lineHeight
		paraSpacing := (req.SpaceBeforePt + req.SpaceAfterPt) * float64(len(req.Items)-1)
		needed := textHeight + paraSpacing

		l.Debug("candidate size",
			"size_pt", size,
			"total_lines", totalLines,
			"needed_pt", needed,
			"available_pt", req.HeightPt)

		if needed <= req.HeightPt {
			return size, nil
		}
	}
	return MinFontSize, nil
}

// wrapCount derives the number of rendered lines from the unwrapped pixel
// width; a frame always shows at least one line.
func wrapCount(textWidthPx, frameWidthPx float64) int {
	if frameWidthPx <= 0 {
		return 1
	}
	n := int(math.Ceil(textWidthPx / frameWidthPx))
	if n < 1 {
		return 1
	}
	return n
}
