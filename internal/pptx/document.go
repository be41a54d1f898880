/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pptx reads and edits PPTX packages far enough to fill placeholder
// shapes: slides, their layouts, the theme font scheme, and the shape text
// bodies. Parts that are never touched pass through a Save byte-identical.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"pptxfill/internal/log"
)

func logc() *slog.Logger { return log.WithComponent("pptx") }

// ThemeFonts holds the four theme font slots of the document. Empty strings
// mean the slot is not declared.
type ThemeFonts struct {
	MajorLatin string
	MajorEA    string
	MinorLatin string
	MinorEA    string
}

// Document is an opened PPTX package held fully in memory.
type Document struct {
	path   string
	parts  map[string][]byte
	order  []string // zip entry order, kept stable for Save
	slides []*Slide
	theme  ThemeFonts
}

// Open reads the package at p and parses its slides, layouts and theme.
func Open(p string) (*Document, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open pptx %q: %w", p, err)
	}
	defer zr.Close()

	d := &Document{path: p, parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %q: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %q: %w", f.Name, err)
		}
		d.parts[f.Name] = data
		d.order = append(d.order, f.Name)
	}

	if _, ok := d.parts["ppt/presentation.xml"]; !ok {
		return nil, fmt.Errorf("%q is not a presentation: missing ppt/presentation.xml", p)
	}
	if err := d.parseSlides(); err != nil {
		return nil, err
	}
	d.theme = d.extractThemeFonts()
	return d, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string { return d.path }

// SlideCount returns the number of slides in presentation order.
func (d *Document) SlideCount() int { return len(d.slides) }

// Slide returns the i-th slide in presentation order.
func (d *Document) Slide(i int) *Slide { return d.slides[i] }

// ThemeFonts returns the theme font slots extracted at Open.
func (d *Document) ThemeFonts() ThemeFonts { return d.theme }

// relsFor parses the .rels part belonging to partName; absent rels are
// reported as an empty set.
func (d *Document) relsFor(partName string) relationshipsXML {
	dir, base := path.Split(partName)
	relsName := path.Join(dir, "_rels", base+".rels")
	var rels relationshipsXML
	data, ok := d.parts[relsName]
	if !ok {
		return rels
	}
	if err := xml.Unmarshal(data, &rels); err != nil {
		logc().Warn("cannot parse relationships", "part", relsName, "err", err)
	}
	return rels
}

// resolveTarget resolves a relationship target against the directory of the
// part owning the relationship.
func resolveTarget(ownerPart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir, _ := path.Split(ownerPart)
	return path.Clean(path.Join(dir, target))
}

func (rels relationshipsXML) byID(id string) (relationshipXML, bool) {
	for _, r := range rels.Rels {
		if r.ID == id {
			return r, true
		}
	}
	return relationshipXML{}, false
}

func (rels relationshipsXML) firstOfType(relType string) (relationshipXML, bool) {
	for _, r := range rels.Rels {
		if r.Type == relType {
			return r, true
		}
	}
	return relationshipXML{}, false
}

// parseSlides walks presentation.xml's slide id list and builds the Slide
// objects, each with its layout attached.
func (d *Document) parseSlides() error {
	var pres presentationXML
	if err := xml.Unmarshal(d.parts["ppt/presentation.xml"], &pres); err != nil {
		return fmt.Errorf("parse presentation.xml: %w", err)
	}
	presRels := d.relsFor("ppt/presentation.xml")

	for _, sid := range pres.SldIDs {
		rel, ok := presRels.byID(sid.RID)
		if !ok || rel.Type != relTypeSlide {
			continue
		}
		partName := resolveTarget("ppt/presentation.xml", rel.Target)
		raw, ok := d.parts[partName]
		if !ok {
			return fmt.Errorf("slide part %q missing from package", partName)
		}
		s := &Slide{doc: d, part: partName, raw: raw}
		if err := s.reparse(); err != nil {
			return fmt.Errorf("parse slide %q: %w", partName, err)
		}
		s.layout = d.layoutFor(partName)
		d.slides = append(d.slides, s)
	}
	return nil
}

// layoutFor loads the layout part referenced by a slide, or nil when the
// chain is broken anywhere. A missing layout only disables style
// inheritance, it is not an error.
func (d *Document) layoutFor(slidePart string) *sldLayoutXML {
	rel, ok := d.relsFor(slidePart).firstOfType(relTypeSlideLayout)
	if !ok {
		return nil
	}
	name := resolveTarget(slidePart, rel.Target)
	data, ok := d.parts[name]
	if !ok {
		return nil
	}
	var layout sldLayoutXML
	if err := xml.Unmarshal(data, &layout); err != nil {
		logc().Warn("cannot parse slide layout", "part", name, "err", err)
		return nil
	}
	return &layout
}

// extractThemeFonts reads the font scheme of the first slide master's theme.
// Every failure degrades to all-empty slots with a warning; theme fonts are
// an enhancement, not a correctness requirement.
func (d *Document) extractThemeFonts() ThemeFonts {
	var tf ThemeFonts
	masterRel, ok := d.relsFor("ppt/presentation.xml").firstOfType(relTypeSlideMaster)
	if !ok {
		logc().Warn("could not get theme fonts", "reason", "no slide master relationship")
		return tf
	}
	masterPart := resolveTarget("ppt/presentation.xml", masterRel.Target)
	themeRel, ok := d.relsFor(masterPart).firstOfType(relTypeTheme)
	if !ok {
		logc().Warn("could not get theme fonts", "reason", "no theme relationship", "master", masterPart)
		return tf
	}
	themePart := resolveTarget(masterPart, themeRel.Target)
	data, ok := d.parts[themePart]
	if !ok {
		logc().Warn("could not get theme fonts", "reason", "theme part missing", "part", themePart)
		return tf
	}
	var theme themeXML
	if err := xml.Unmarshal(data, &theme); err != nil {
		logc().Warn("could not get theme fonts", "part", themePart, "err", err)
		return tf
	}
	tf.MajorLatin = theme.FontScheme.Major.Latin.Typeface
	tf.MajorEA = theme.FontScheme.Major.EA.Typeface
	tf.MinorLatin = theme.FontScheme.Minor.Latin.Typeface
	tf.MinorEA = theme.FontScheme.Minor.EA.Typeface
	return tf
}

// Save writes the package to out, carrying unmodified parts over verbatim
// and substituting edited slide parts.
func (d *Document) Save(out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %q: %w", out, err)
	}
	zw := zip.NewWriter(f)
	for _, name := range d.order {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("create zip entry %q: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("write zip entry %q: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize %q: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", out, err)
	}
	logc().Info("saved presentation", "path", out, "parts", len(d.order))
	return nil
}

// addPart registers a brand-new part; added parts are appended after the
// original entries in Save order.
func (d *Document) addPart(name string, data []byte) {
	if _, exists := d.parts[name]; !exists {
		d.order = append(d.order, name)
	}
	d.parts[name] = data
}
