/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pptx

import "encoding/xml"

// Relationship types referenced while walking the package.
const (
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// EMU conversions: 914400 EMU per inch, 12700 EMU per point.
const (
	emuPerPoint = 12700
)

// relationshipsXML models a *.rels part.
type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Rels    []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// presentationXML models ppt/presentation.xml; only the slide order matters.
type presentationXML struct {
	XMLName xml.Name   `xml:"presentation"`
	SldIDs  []sldIDXML `xml:"sldIdLst>sldId"`
}

type sldIDXML struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// themeXML models the subset of ppt/theme/themeN.xml carrying the font scheme.
type themeXML struct {
	XMLName    xml.Name      `xml:"theme"`
	FontScheme fontSchemeXML `xml:"themeElements>fontScheme"`
}

type fontSchemeXML struct {
	Major fontGroupXML `xml:"majorFont"`
	Minor fontGroupXML `xml:"minorFont"`
}

type fontGroupXML struct {
	Latin typefaceXML `xml:"latin"`
	EA    typefaceXML `xml:"ea"`
}

type typefaceXML struct {
	Typeface string `xml:"typeface,attr"`
}

// sldLayoutXML models a slide layout part. Slides share the same cSld/spTree
// structure under a different root name, so slide parsing reuses spXML.
type sldLayoutXML struct {
	XMLName xml.Name `xml:"sldLayout"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"spTree"`
}

type spTreeXML struct {
	Sp []spXML `xml:"sp"`
}

// spXML models one shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

type phXML struct {
	Type string `xml:"type,attr"`
	Idx  int    `xml:"idx,attr"` // absent means 0
}

type spPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type txBodyXML struct {
	LstStyle *lstStyleXML `xml:"lstStyle"`
	P        []paraXML    `xml:"p"`
}

type lstStyleXML struct {
	Lvl1PPr *pPrXML `xml:"lvl1pPr"`
}

type paraXML struct {
	PPr *pPrXML  `xml:"pPr"`
	R   []runXML `xml:"r"`
}

type runXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

// rPrXML doubles as defRPr; both carry the same run-property content.
type rPrXML struct {
	Sz    int          `xml:"sz,attr"` // hundredths of a point
	Latin *typefaceXML `xml:"latin"`
	EA    *typefaceXML `xml:"ea"`
}

// pPrXML models paragraph properties at any level, including lvl1pPr.
type pPrXML struct {
	LnSpc  *spacingXML `xml:"lnSpc"`
	SpcBef *spacingXML `xml:"spcBef"`
	SpcAft *spacingXML `xml:"spcAft"`
	DefRPr *rPrXML     `xml:"defRPr"`
}

// spacingXML carries the two mutually exclusive spacing encodings of lnSpc,
// spcBef and spcAft.
type spacingXML struct {
	SpcPct *spcValXML `xml:"spcPct"` // val in 1/100000 percent, 100000 = 100%
	SpcPts *spcValXML `xml:"spcPts"` // val in 1/100 point, 1400 = 14pt
}

type spcValXML struct {
	Val int `xml:"val,attr"`
}
