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

	"golang.org/x/image/font/sfnt"

	"pptxfill/internal/log"
)

// Candidate holds the embedded name records of one physical font resource.
// A collection file (.ttc) yields one Candidate per member font.
type Candidate struct {
	FullName      string // name ID 4, e.g. "Yu Gothic Medium"
	FamilyName    string // name ID 1, e.g. "Yu Gothic"
	SubfamilyName string // name ID 2, e.g. "Medium"
}

// ExtractNames reads the name table of every font resource embedded in the
// file at path. Single fonts and collections are both handled; a resource
// with neither a full name nor a family name contributes nothing.
//
// Failures are never fatal: missing files, permission errors and corrupt
// font data produce a warning and an empty result.
func ExtractNames(path string) []Candidate {
	l := log.WithComponent("fontlib")

	data, err := os.ReadFile(path)
	if err != nil {
		l.Warn("cannot read font file", "path", path, "err", err)
		return nil
	}

	// ParseCollection accepts plain TTF/OTF data as a one-member collection,
	// so a single code path covers all three extensions.
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		l.Warn("invalid or corrupted font file", "path", path, "err", err)
		return nil
	}

	var out []Candidate
	var buf sfnt.Buffer
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			l.Warn("unreadable collection member", "path", path, "member", i, "err", err)
			continue
		}
		c := Candidate{
			FullName:      nameOrEmpty(f, &buf, sfnt.NameIDFull),
			FamilyName:    nameOrEmpty(f, &buf, sfnt.NameIDFamily),
			SubfamilyName: nameOrEmpty(f, &buf, sfnt.NameIDSubfamily),
		}
		if c.FullName == "" && c.FamilyName == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func nameOrEmpty(f *sfnt.Font, buf *sfnt.Buffer, id sfnt.NameID) string {
	s, err := f.Name(buf, id)
	if err != nil {
		return ""
	}
	return s
}
