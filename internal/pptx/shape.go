/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Slide is one slide part plus the parsed view of its top-level shapes.
// Edits splice the raw part bytes and re-parse, so byte offsets stay valid.
type Slide struct {
	doc    *Document
	part   string
	raw    []byte
	shapes []*Shape
	layout *sldLayoutXML
}

// Shape is a top-level sp element on a slide. The struct keeps both the
// parsed view used by the style resolvers and the byte range used by edits.
type Shape struct {
	slide *Slide
	sp    spXML
	start int64 // offset of "<p:sp" in the slide part
	end   int64 // offset just past "</p:sp>"
}

// reparse rebuilds the shape list from the current raw bytes.
func (s *Slide) reparse() error {
	shapes, err := parseShapes(s.raw)
	if err != nil {
		return err
	}
	for _, sh := range shapes {
		sh.slide = s
	}
	s.shapes = shapes
	return nil
}

// parseShapes walks the slide XML and records, for every top-level sp
// element, its decoded content and its byte range. Shapes nested in group
// shapes are deliberately left to their group.
func parseShapes(raw []byte) ([]*Shape, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var shapes []*Shape
	depth := 0
	for {
		before := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("tokenize slide: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "sp" && depth == 3 { // sld > cSld > spTree > sp
				var sp spXML
				if err := dec.DecodeElement(&sp, &t); err != nil {
					return nil, fmt.Errorf("decode shape: %w", err)
				}
				shapes = append(shapes, &Shape{sp: sp, start: before, end: dec.InputOffset()})
				continue // DecodeElement already consumed the matching end tag
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return shapes, nil
}

// ShapeByName returns the first shape with the given cNvPr name, or nil.
func (s *Slide) ShapeByName(name string) *Shape {
	for _, sh := range s.shapes {
		if sh.Name() == name {
			return sh
		}
	}
	return nil
}

// Shapes returns the top-level shapes in document order.
func (s *Slide) Shapes() []*Shape { return s.shapes }

// Name returns the shape's cNvPr name.
func (sh *Shape) Name() string { return sh.sp.NvSpPr.CNvPr.Name }

// HasTextBody reports whether the shape carries a txBody element.
func (sh *Shape) HasTextBody() bool { return sh.sp.TxBody != nil }

// IsPlaceholder reports whether the shape is a placeholder, and its index.
func (sh *Shape) IsPlaceholder() (idx int, ok bool) {
	if sh.sp.NvSpPr.NvPr.Ph == nil {
		return 0, false
	}
	return sh.sp.NvSpPr.NvPr.Ph.Idx, true
}

// PlaceholderType returns the ph type attribute ("title", "body", ...), empty
// for non-placeholders and for body placeholders that omit the attribute.
func (sh *Shape) PlaceholderType() string {
	if sh.sp.NvSpPr.NvPr.Ph == nil {
		return ""
	}
	return sh.sp.NvSpPr.NvPr.Ph.Type
}

// Frame returns the shape's offset and extent in EMU. Shapes without an
// explicit transform report ok=false; placeholders commonly inherit their
// geometry from the layout, which this model does not chase.
func (sh *Shape) Frame() (x, y, cx, cy int64, ok bool) {
	xf := sh.sp.SpPr.Xfrm
	if xf == nil {
		return 0, 0, 0, 0, false
	}
	return xf.Off.X, xf.Off.Y, xf.Ext.CX, xf.Ext.CY, true
}

// WidthPt and HeightPt report the frame extent in points (0 when the shape
// has no explicit transform).
func (sh *Shape) WidthPt() float64 {
	if xf := sh.sp.SpPr.Xfrm; xf != nil {
		return float64(xf.Ext.CX) / emuPerPoint
	}
	return 0
}

func (sh *Shape) HeightPt() float64 {
	if xf := sh.sp.SpPr.Xfrm; xf != nil {
		return float64(xf.Ext.CY) / emuPerPoint
	}
	return 0
}

// --- Region implementation -------------------------------------------------

// Region is the capability set the style resolvers need from a text region.
// Shape implements it against the parsed document model; tests implement it
// directly.
type Region interface {
	// RunFonts returns the first run's explicit typefaces (East Asian and
	// Latin), empty when absent.
	RunFonts() (ea, latin string)
	// ParagraphFonts returns the first paragraph's default run typefaces.
	ParagraphFonts() (ea, latin string)
	// ListStyleFonts returns the region's own list-style level-1 typefaces.
	ListStyleFonts() (ea, latin string)
	// LayoutLevelProperties returns the level-1 paragraph properties of the
	// layout counterpart matched by placeholder index, or nil when any link
	// of that chain is missing.
	LayoutLevelProperties() *LevelProperties
}

// LevelProperties carries the raw integer encodings of lvl1pPr spacing, in
// the document's native units (1/100000 percent, 1/100 point).
type LevelProperties struct {
	LineSpacePct   *int
	LineSpacePts   *int
	SpaceBeforePct *int
	SpaceBeforePts *int
	SpaceAfterPct  *int
	SpaceAfterPts  *int
}

func typefaces(rpr *rPrXML) (ea, latin string) {
	if rpr == nil {
		return "", ""
	}
	if rpr.EA != nil {
		ea = rpr.EA.Typeface
	}
	if rpr.Latin != nil {
		latin = rpr.Latin.Typeface
	}
	return ea, latin
}

func (sh *Shape) RunFonts() (ea, latin string) {
	tb := sh.sp.TxBody
	if tb == nil || len(tb.P) == 0 || len(tb.P[0].R) == 0 {
		return "", ""
	}
	return typefaces(tb.P[0].R[0].RPr)
}

func (sh *Shape) ParagraphFonts() (ea, latin string) {
	tb := sh.sp.TxBody
	if tb == nil || len(tb.P) == 0 || tb.P[0].PPr == nil {
		return "", ""
	}
	return typefaces(tb.P[0].PPr.DefRPr)
}

func (sh *Shape) ListStyleFonts() (ea, latin string) {
	tb := sh.sp.TxBody
	if tb == nil || tb.LstStyle == nil || tb.LstStyle.Lvl1PPr == nil {
		return "", ""
	}
	return typefaces(tb.LstStyle.Lvl1PPr.DefRPr)
}

func (sh *Shape) LayoutLevelProperties() *LevelProperties {
	idx, ok := sh.IsPlaceholder()
	if !ok || sh.slide == nil || sh.slide.layout == nil {
		return nil
	}
	for _, lsp := range sh.slide.layout.CSld.SpTree.Sp {
		ph := lsp.NvSpPr.NvPr.Ph
		if ph == nil || ph.Idx != idx {
			continue
		}
		if lsp.TxBody == nil || lsp.TxBody.LstStyle == nil || lsp.TxBody.LstStyle.Lvl1PPr == nil {
			return nil
		}
		return levelProperties(lsp.TxBody.LstStyle.Lvl1PPr)
	}
	return nil
}

func levelProperties(ppr *pPrXML) *LevelProperties {
	lp := &LevelProperties{}
	if ppr.LnSpc != nil {
		if ppr.LnSpc.SpcPct != nil {
			lp.LineSpacePct = &ppr.LnSpc.SpcPct.Val
		}
		if ppr.LnSpc.SpcPts != nil {
			lp.LineSpacePts = &ppr.LnSpc.SpcPts.Val
		}
	}
	if ppr.SpcBef != nil {
		if ppr.SpcBef.SpcPct != nil {
			lp.SpaceBeforePct = &ppr.SpcBef.SpcPct.Val
		}
		if ppr.SpcBef.SpcPts != nil {
			lp.SpaceBeforePts = &ppr.SpcBef.SpcPts.Val
		}
	}
	if ppr.SpcAft != nil {
		if ppr.SpcAft.SpcPct != nil {
			lp.SpaceAfterPct = &ppr.SpcAft.SpcPct.Val
		}
		if ppr.SpcAft.SpcPts != nil {
			lp.SpaceAfterPts = &ppr.SpcAft.SpcPts.Val
		}
	}
	return lp
}
