/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pptx

// LineSpacingKind distinguishes the two encodings a lnSpc element may carry,
// plus the unset case where the renderer derives line height from the font
// size on its own.
type LineSpacingKind int

const (
	LineSpacingUnset LineSpacingKind = iota
	LineSpacingRatio                 // multiplier of font size, 1.0 = single
	LineSpacingFixed                 // absolute line height in points
)

// LineSpacing is a tagged line-spacing value. Value is meaningless for
// LineSpacingUnset.
type LineSpacing struct {
	Kind  LineSpacingKind
	Value float64
}

// ParagraphDefaults aggregates the layout-level paragraph settings that feed
// the fitting engine.
type ParagraphDefaults struct {
	LineSpacing   LineSpacing
	SpaceBeforePt float64
	SpaceAfterPt  float64
}

// Native encodings: percent values are stored in 1/100000 of a percent
// (100000 = 100% = ratio 1.0), point values in 1/100 of a point
// (1400 = 14pt).
const (
	pctDenominator = 100000
	ptsDenominator = 100
)

// RatioFromPct converts a native percent encoding to a ratio.
func RatioFromPct(val int) float64 { return float64(val) / pctDenominator }

// PointsFromPts converts a native fixed-point encoding to points.
func PointsFromPts(val int) float64 { return float64(val) / ptsDenominator }

// GetParagraphDefaults extracts line spacing and paragraph spacing from the
// region's layout counterpart, level 1. Any missing link in the chain yields
// the all-unset defaults; that is the normal case, not an error.
//
// Space-before/after support only the fixed-point encoding. The percentage
// encoding needs font-size context that does not exist at this stage, so it
// is logged and treated as 0.
func GetParagraphDefaults(r Region) ParagraphDefaults {
	var pd ParagraphDefaults
	lp := r.LayoutLevelProperties()
	if lp == nil {
		return pd
	}
	switch {
	case lp.LineSpacePct != nil:
		pd.LineSpacing = LineSpacing{Kind: LineSpacingRatio, Value: RatioFromPct(*lp.LineSpacePct)}
	case lp.LineSpacePts != nil:
		pd.LineSpacing = LineSpacing{Kind: LineSpacingFixed, Value: PointsFromPts(*lp.LineSpacePts)}
	}
	if lp.SpaceBeforePts != nil {
		pd.SpaceBeforePt = PointsFromPts(*lp.SpaceBeforePts)
	} else if lp.SpaceBeforePct != nil {
		logc().Warn("percentage space-before is not supported; using 0")
	}
	if lp.SpaceAfterPts != nil {
		pd.SpaceAfterPt = PointsFromPts(*lp.SpaceAfterPts)
	} else if lp.SpaceAfterPct != nil {
		logc().Warn("percentage space-after is not supported; using 0")
	}
	return pd
}
