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
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Run is one styled run of text inside a paragraph.
type Run struct {
	Text string
	Bold bool
}

// Paragraph is an ordered list of runs.
type Paragraph struct {
	Runs []Run
}

// SetParagraphs replaces the shape's text body with the given paragraphs.
// sizePt > 0 writes an explicit font size on every run; sizePt <= 0 leaves
// the size to the renderer and requests its shrink-to-fit behavior via
// normAutofit instead.
func (sh *Shape) SetParagraphs(paras []Paragraph, sizePt int) error {
	if sh.sp.TxBody == nil {
		return fmt.Errorf("shape %q has no text body", sh.Name())
	}
	body := buildTxBody(paras, sizePt)
	region := sh.raw()
	i := bytes.Index(region, []byte("<p:txBody"))
	j := bytes.Index(region, []byte("</p:txBody>"))
	if i < 0 || j < 0 {
		return fmt.Errorf("shape %q: text body element not found in part bytes", sh.Name())
	}
	j += len("</p:txBody>")
	return sh.slide.splice(sh.start+int64(i), sh.start+int64(j), []byte(body))
}

// Remove deletes the shape element from the slide.
func (sh *Shape) Remove() error {
	return sh.slide.splice(sh.start, sh.end, nil)
}

// raw returns the shape's byte range within the slide part.
func (sh *Shape) raw() []byte { return sh.slide.raw[sh.start:sh.end] }

// splice replaces raw[start:end) with repl, pushes the new bytes into the
// document part, and re-parses so shape offsets stay valid.
func (s *Slide) splice(start, end int64, repl []byte) error {
	out := make([]byte, 0, int64(len(s.raw))-(end-start)+int64(len(repl)))
	out = append(out, s.raw[:start]...)
	out = append(out, repl...)
	out = append(out, s.raw[end:]...)
	s.raw = out
	s.doc.parts[s.part] = out
	return s.reparse()
}

// buildTxBody renders a txBody element. Word wrap is always on; the
// placeholder content replaces whatever the template carried.
func buildTxBody(paras []Paragraph, sizePt int) string {
	var b strings.Builder
	b.WriteString(`<p:txBody>`)
	if sizePt > 0 {
		b.WriteString(`<a:bodyPr wrap="square"/>`)
	} else {
		// No computed size: delegate shrinking to the renderer.
		b.WriteString(`<a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr>`)
	}
	b.WriteString(`<a:lstStyle/>`)
	for _, p := range paras {
		b.WriteString(`<a:p>`)
		for _, r := range p.Runs {
			b.WriteString(`<a:r><a:rPr lang="en-US"`)
			if sizePt > 0 {
				b.WriteString(` sz="`)
				b.WriteString(strconv.Itoa(sizePt * 100))
				b.WriteString(`"`)
			}
			if r.Bold {
				b.WriteString(` b="1"`)
			}
			b.WriteString(`/><a:t>`)
			b.WriteString(escapeXML(r.Text))
			b.WriteString(`</a:t></a:r>`)
		}
		b.WriteString(`</a:p>`)
	}
	b.WriteString(`</p:txBody>`)
	return b.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var (
	ridPattern = regexp.MustCompile(`Id="rId(\d+)"`)
	xmlIDattr  = regexp.MustCompile(`\bid="(\d+)"`)
	extPattern = regexp.MustCompile(`Extension="([A-Za-z0-9]+)"`)
)

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// AddImage stores image bytes as a new media part, registers its content
// type and a relationship from the slide, and returns the relationship id
// to embed.
func (d *Document) AddImage(s *Slide, ext string, data []byte) (string, error) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	ctype, ok := imageContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	// Pick an unused media part name.
	var mediaPart string
	for n := 1; ; n++ {
		mediaPart = fmt.Sprintf("ppt/media/image%d.%s", n, ext)
		if _, exists := d.parts[mediaPart]; !exists {
			break
		}
	}
	d.addPart(mediaPart, data)

	if err := d.ensureContentType(ext, ctype); err != nil {
		return "", err
	}
	return d.addSlideRel(s, relTypeImage, "../media/"+path.Base(mediaPart))
}

// ensureContentType adds a Default extension mapping to [Content_Types].xml
// unless one is already declared.
func (d *Document) ensureContentType(ext, ctype string) error {
	const part = "[Content_Types].xml"
	data, ok := d.parts[part]
	if !ok {
		return fmt.Errorf("package has no %s", part)
	}
	for _, m := range extPattern.FindAllSubmatch(data, -1) {
		if strings.EqualFold(string(m[1]), ext) {
			return nil
		}
	}
	closing := []byte("</Types>")
	i := bytes.LastIndex(data, closing)
	if i < 0 {
		return fmt.Errorf("%s is malformed", part)
	}
	def := fmt.Sprintf(`<Default Extension="%s" ContentType="%s"/>`, ext, ctype)
	out := make([]byte, 0, len(data)+len(def))
	out = append(out, data[:i]...)
	out = append(out, def...)
	out = append(out, data[i:]...)
	d.parts[part] = out
	return nil
}

// addSlideRel appends a relationship to the slide's rels part, creating the
// part when the slide had none, and returns the new id.
func (d *Document) addSlideRel(s *Slide, relType, target string) (string, error) {
	dir, base := path.Split(s.part)
	relsName := path.Join(dir, "_rels", base+".rels")
	data, ok := d.parts[relsName]
	if !ok {
		data = []byte(xml.Header +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`)
		d.addPart(relsName, data)
	}

	next := 1
	for _, m := range ridPattern.FindAllSubmatch(data, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n >= next {
			next = n + 1
		}
	}
	rid := fmt.Sprintf("rId%d", next)

	closing := []byte("</Relationships>")
	i := bytes.LastIndex(data, closing)
	if i < 0 {
		return "", fmt.Errorf("%s is malformed", relsName)
	}
	rel := fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, rid, relType, target)
	out := make([]byte, 0, len(data)+len(rel))
	out = append(out, data[:i]...)
	out = append(out, rel...)
	out = append(out, data[i:]...)
	d.parts[relsName] = out
	return rid, nil
}

// InsertPicture appends a pic element filling the given EMU frame, embedding
// the image relationship rid. The element lands at the end of the shape
// tree, above everything drawn before it.
func (s *Slide) InsertPicture(name, rid string, x, y, cx, cy int64) error {
	id := s.maxElementID() + 1
	pic := fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, escapeXML(name), rid, x, y, cx, cy)
	closing := []byte("</p:spTree>")
	i := bytes.LastIndex(s.raw, closing)
	if i < 0 {
		return fmt.Errorf("slide %q: shape tree end not found", s.part)
	}
	return s.splice(int64(i), int64(i), []byte(pic))
}

// maxElementID scans the slide for cNvPr-style numeric ids so inserted
// elements never collide.
func (s *Slide) maxElementID() int {
	max := 1
	for _, m := range xmlIDattr.FindAllSubmatch(s.raw, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > max {
			max = n
		}
	}
	return max
}
