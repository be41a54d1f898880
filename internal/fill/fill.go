/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fill applies a JSON payload to a PPTX template: text and list
// placeholders get refilled with a fitted font size, image placeholders are
// replaced by their picture.
package fill

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pptxfill/internal/config"
	"pptxfill/internal/fitting"
	"pptxfill/internal/fontlib"
	"pptxfill/internal/log"
	"pptxfill/internal/pptx"
)

func logc() *slog.Logger { return log.WithComponent("fill") }

// Filler executes fill jobs. The embedded Library caches font indexes and
// faces across all placeholders of a job.
type Filler struct {
	lib *fontlib.Library
	cfg config.AppConfig
}

func NewFiller(cfg config.AppConfig) *Filler {
	return &Filler{lib: fontlib.NewLibrary(), cfg: cfg}
}

// Run opens the template, applies every slide's placeholders and writes the
// output. Problems scoped to a single placeholder are logged and skipped so
// one bad entry cannot sink the whole deck; structural problems (missing
// template, slide index out of range, save failure) abort.
func (f *Filler) Run(p *Payload) error {
	doc, err := pptx.Open(p.Template)
	if err != nil {
		return err
	}
	defer f.lib.Reset()

	for _, sf := range p.Slides {
		if sf.Index < 0 || sf.Index >= doc.SlideCount() {
			return fmt.Errorf("slide index %d out of range (deck has %d slides)", sf.Index, doc.SlideCount())
		}
		slide := doc.Slide(sf.Index)

		// Map order is random; sort for reproducible output and logs.
		names := make([]string, 0, len(sf.Placeholders))
		for name := range sf.Placeholders {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ph := sf.Placeholders[name]
			sh := slide.ShapeByName(name)
			if sh == nil {
				logc().Warn("placeholder not on slide, skipping", "slide", sf.Index, "shape", name)
				continue
			}
			var err error
			switch ph.Type {
			case "text":
				err = f.fillText(doc, sh, splitParagraphs(ph.Text), ph)
			case "list":
				err = f.fillText(doc, sh, ph.Items, ph)
			case "image":
				err = f.fillImage(doc, slide, sh, ph.Path)
			}
			if err != nil {
				logc().Warn("placeholder skipped", "slide", sf.Index, "shape", name, "err", err)
			}
		}
	}
	return doc.Save(p.Output)
}

// splitParagraphs turns newline-separated text into paragraph items,
// dropping blank lines.
func splitParagraphs(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimRight(line, "\r"); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// fillText fits the items into the shape and rewrites its text body. When
// fitting fails outright the text goes in without an explicit size and the
// renderer's shrink-to-fit takes over, so the slide still shows the content.
func (f *Filler) fillText(doc *pptx.Document, sh *pptx.Shape, items []string, ph Placeholder) error {
	if !sh.HasTextBody() {
		return fmt.Errorf("shape %q has no text body", sh.Name())
	}
	if len(items) == 0 {
		return fmt.Errorf("no content for shape %q", sh.Name())
	}
	size, err := f.fitShape(doc, sh, items, ph)
	if err != nil {
		logc().Warn("fit failed, delegating to renderer autofit", "shape", sh.Name(), "err", err)
		size = 0
	}
	paras := make([]pptx.Paragraph, len(items))
	for i, item := range items {
		paras[i] = pptx.Paragraph{Runs: splitLabelBody(item)}
	}
	return sh.SetParagraphs(paras, size)
}

// fitShape translates the shape's geometry and inherited styles into one
// fitting request. The size ceiling is the payload's maxFontSize when set,
// otherwise the configured title or body ceiling.
func (f *Filler) fitShape(doc *pptx.Document, sh *pptx.Shape, items []string, ph Placeholder) (int, error) {
	w, h := sh.WidthPt(), sh.HeightPt()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("shape %q has no explicit frame", sh.Name())
	}
	fontName, ok := pptx.ResolveFontName(sh, doc.ThemeFonts())
	if !ok {
		return 0, fmt.Errorf("no font resolvable for shape %q", sh.Name())
	}

	phType := sh.PlaceholderType()
	isTitle := ph.IsTitle || phType == "title" || phType == "ctrTitle"
	maxSize := ph.MaxFontSize
	if maxSize <= 0 {
		maxSize = f.cfg.Fit.MaxSizeFor(isTitle)
	}
	req := fitting.Request{
		WidthPt:          w,
		HeightPt:         h,
		Items:            items,
		MaxSize:          maxSize,
		FontName:         fontName,
		FontDir:          f.cfg.Fonts.Dir,
		LineHeightFactor: f.cfg.Fit.LineHeightFactor,
	}
	pd := pptx.GetParagraphDefaults(sh)
	switch pd.LineSpacing.Kind {
	case pptx.LineSpacingRatio:
		req.LineSpacing = pd.LineSpacing.Value
	case pptx.LineSpacingFixed:
		req.LineSpacing = pd.LineSpacing.Value
		req.FixedLineSpacing = true
	}
	req.SpaceBeforePt = pd.SpaceBeforePt
	req.SpaceAfterPt = pd.SpaceAfterPt

	return fitting.Fit(f.lib, req)
}

// labelSeparators, in match order. The fullwidth colon common in East Asian
// text wins over the ASCII one.
var labelSeparators = []string{"：", ":"}

// splitLabelBody renders "Label: rest" items as a bold label run and a plain
// body run. The matched separator is dropped from the label; the body run is
// prefixed with the fullwidth colon regardless of which separator matched,
// with whitespace after the separator trimmed. Items without a separator
// (or with nothing before it) become a single bold run.
func splitLabelBody(item string) []pptx.Run {
	for _, sep := range labelSeparators {
		i := strings.Index(item, sep)
		if i <= 0 {
			continue
		}
		label := strings.TrimSpace(item[:i])
		body := strings.TrimLeft(item[i+len(sep):], " \t　")
		if body == "" {
			return []pptx.Run{{Text: label, Bold: true}}
		}
		return []pptx.Run{
			{Text: label, Bold: true},
			{Text: labelSeparators[0] + body},
		}
	}
	return []pptx.Run{{Text: strings.TrimSpace(item), Bold: true}}
}

// fillImage replaces the placeholder shape with the picture, scaled to fit
// inside the placeholder frame and centered, aspect ratio preserved.
func (f *Filler) fillImage(doc *pptx.Document, slide *pptx.Slide, sh *pptx.Shape, imgPath string) error {
	x, y, cx, cy, ok := sh.Frame()
	if !ok {
		return fmt.Errorf("shape %q has no explicit frame", sh.Name())
	}
	data, err := os.ReadFile(imgPath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image %q: %w", imgPath, err)
	}
	if imgCfg.Width <= 0 || imgCfg.Height <= 0 {
		return fmt.Errorf("image %q has degenerate dimensions", imgPath)
	}

	px, py, pcx, pcy := fitRect(x, y, cx, cy, imgCfg.Width, imgCfg.Height)

	rid, err := doc.AddImage(slide, filepath.Ext(imgPath), data)
	if err != nil {
		return err
	}
	name := sh.Name()
	if err := sh.Remove(); err != nil {
		return err
	}
	logc().Info("placing image", "shape", name, "file", imgPath, "rid", rid)
	return slide.InsertPicture(name, rid, px, py, pcx, pcy)
}

// fitRect scales a w-by-h image into the EMU frame, centered on both axes.
func fitRect(x, y, cx, cy int64, w, h int) (int64, int64, int64, int64) {
	scaleW := float64(cx) / float64(w)
	scaleH := float64(cy) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	ncx := int64(float64(w) * scale)
	ncy := int64(float64(h) * scale)
	return x + (cx-ncx)/2, y + (cy-ncy)/2, ncx, ncy
}
