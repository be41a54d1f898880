/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fitting

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"pptxfill/internal/fontlib"
)

func fontDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GoRegular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	return dir
}

// requiredHeight recomputes the engine's arithmetic independently so tests
// can check results against the formula rather than against the engine.
func requiredHeight(t *testing.T, lib *fontlib.Library, req Request, size int) float64 {
	t.Helper()
	path, ok := lib.FindFontFile(req.FontName, req.FontDir)
	if !ok {
		t.Fatalf("reference: font not found")
	}
	widthPx := req.WidthPt * fontlib.PixelsPerPoint
	lines := 0
	for _, item := range req.Items {
		w, ok := lib.MeasureTextWidth(item, path, size)
		if !ok {
			t.Fatalf("reference: measurement failed")
		}
		n := int(math.Ceil(w / widthPx))
		if n < 1 {
			n = 1
		}
		lines += n
	}
	var lineHeight float64
	if req.FixedLineSpacing {
		lineHeight = req.LineSpacing
	} else {
		lineHeight = float64(size) * req.LineHeightFactor * req.LineSpacing
	}
	return float64(lines)*lineHeight + (req.SpaceBeforePt+req.SpaceAfterPt)*float64(len(req.Items)-1)
}

func TestFitEndToEndScenario(t *testing.T) {
	dir := fontDir(t)
	lib := fontlib.NewLibrary()
	req := Request{
		WidthPt:  300,
		HeightPt: 100,
		Items: []string{
			"Label1: a long line of body text exceeding one line width",
			"Label2: short",
		},
		MaxSize:          24,
		FontName:         "Go",
		FontDir:          dir,
		LineSpacing:      1.0,
		LineHeightFactor: 1.2,
		SpaceBeforePt:    6,
		SpaceAfterPt:     6,
	}

	got, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if got < MinFontSize || got > req.MaxSize {
		t.Fatalf("size %d out of bounds", got)
	}
	// The returned size must fit...
	if h := requiredHeight(t, lib, req, got); h > req.HeightPt {
		t.Fatalf("returned size %d needs %.2fpt > %.2fpt", got, h, req.HeightPt)
	}
	// ...and must be the largest fitting one.
	for size := req.MaxSize; size > got; size-- {
		if h := requiredHeight(t, lib, req, size); h <= req.HeightPt {
			t.Fatalf("size %d (> %d) would also fit (%.2fpt)", size, got, h)
		}
	}
}

func TestFitZeroRatioMeansSingleSpacing(t *testing.T) {
	// The request zero value carries no line spacing; it must behave like
	// single spacing, not like a zero line height that fits anything.
	dir := fontDir(t)
	lib := fontlib.NewLibrary()
	req := Request{
		WidthPt:          300,
		HeightPt:         60,
		Items:            []string{"a long line of body text exceeding one line width easily"},
		MaxSize:          48,
		FontName:         "Go",
		FontDir:          dir,
		LineHeightFactor: 1.2,
	}
	got, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	req.LineSpacing = 1.0
	want, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if got != want {
		t.Fatalf("unset spacing fit %d, single spacing fit %d", got, want)
	}
	if got == req.MaxSize {
		t.Fatalf("long text in a 60pt frame fit at the ceiling; spacing was not applied")
	}
}

func TestFitReturnsCeilingWhenEverythingFits(t *testing.T) {
	dir := fontDir(t)
	lib := fontlib.NewLibrary()
	req := Request{
		WidthPt:          600,
		HeightPt:         400,
		Items:            []string{"tiny"},
		MaxSize:          24,
		FontName:         "Go",
		FontDir:          dir,
		LineSpacing:      1.0,
		LineHeightFactor: 1.2,
	}
	got, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if got != 24 {
		t.Fatalf("expected the ceiling 24, got %d", got)
	}
}

func TestFitBoundaryFloor(t *testing.T) {
	dir := fontDir(t)
	lib := fontlib.NewLibrary()
	req := Request{
		WidthPt:          40,
		HeightPt:         4, // nothing fits in 4pt of height
		Items:            []string{"a rather long paragraph that wraps many times over"},
		MaxSize:          24,
		FontName:         "Go",
		FontDir:          dir,
		LineSpacing:      1.0,
		LineHeightFactor: 1.2,
	}
	got, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if got != MinFontSize {
		t.Fatalf("expected floor %d, got %d", MinFontSize, got)
	}
}

func TestFitFixedLineSpacing(t *testing.T) {
	dir := fontDir(t)
	lib := fontlib.NewLibrary()
	req := Request{
		WidthPt:          500,
		HeightPt:         30,
		Items:            []string{"one line", "two line"},
		MaxSize:          40,
		FontName:         "Go",
		FontDir:          dir,
		LineSpacing:      14, // 14pt per line, independent of font size
		FixedLineSpacing: true,
	}
	got, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	// Two lines at a fixed 14pt need 28pt whatever the font size is, so the
	// ceiling fits as long as neither item wraps at that size.
	if h := requiredHeight(t, lib, req, got); h > req.HeightPt {
		t.Fatalf("returned size %d needs %.2fpt > %.2fpt", got, h, req.HeightPt)
	}
	if got != 40 {
		t.Fatalf("expected ceiling under fixed spacing, got %d", got)
	}
}

func TestFitFontNotFound(t *testing.T) {
	lib := fontlib.NewLibrary()
	_, err := Fit(lib, Request{
		WidthPt: 100, HeightPt: 100,
		Items:    []string{"x"},
		MaxSize:  24,
		FontName: "No Such Font",
		FontDir:  t.TempDir(),
	})
	if !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("expected ErrFontNotFound, got %v", err)
	}
}

func TestFitRejectsEmptyItems(t *testing.T) {
	lib := fontlib.NewLibrary()
	if _, err := Fit(lib, Request{MaxSize: 24}); err == nil {
		t.Fatalf("expected an error for zero items")
	}
}

func TestFitMonotonicBelowResult(t *testing.T) {
	dir := fontDir(t)
	lib := fontlib.NewLibrary()
	req := Request{
		WidthPt:          200,
		HeightPt:         60,
		Items:            []string{"wide items wrap at adversarial boundaries", "second"},
		MaxSize:          30,
		FontName:         "Go",
		FontDir:          dir,
		LineSpacing:      1.0,
		LineHeightFactor: 1.2,
	}
	got, err := Fit(lib, req)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	for size := got; size >= MinFontSize; size-- {
		if h := requiredHeight(t, lib, req, size); h > req.HeightPt {
			t.Fatalf("size %d below the result does not fit (%.2fpt)", size, h)
		}
	}
}
