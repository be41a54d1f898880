/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fontlib

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pptxfill/internal/log"
)

// FontIndex maps a lowercased font name (family or full name) to the base
// names of the files that carry it, in directory listing order with
// duplicates suppressed. Immutable after construction.
type FontIndex map[string][]string

func logc() *slog.Logger { return log.WithComponent("fontlib") }

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".ttc", ".otf":
		return true
	}
	return false
}

// Index returns the FontIndex for dir, building and caching it on first use.
// A repeated call for the same directory is a no-op that reports the cached
// size. Directory access problems yield an empty index, never an error.
func (l *Library) Index(dir string) FontIndex {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexLocked(dir)
}

func (l *Library) indexLocked(dir string) FontIndex {
	if idx, ok := l.indexes[dir]; ok {
		logc().Info("font index already built", "dir", dir, "entries", len(idx))
		return idx
	}
	logc().Info("building font index", "dir", dir)
	idx := buildIndex(dir)
	l.indexes[dir] = idx
	return idx
}

// buildIndex scans dir once and extracts embedded names from every
// recognized font file.
func buildIndex(dir string) FontIndex {
	idx := make(FontIndex)
	if dir == "" {
		return idx
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		logc().Warn("cannot access font directory", "dir", dir, "err", err)
		return idx
	}
	for _, e := range entries {
		if e.IsDir() || !isFontFile(e.Name()) {
			continue
		}
		for _, c := range ExtractNames(filepath.Join(dir, e.Name())) {
			idx.add(c.FamilyName, e.Name())
			idx.add(c.FullName, e.Name())
		}
	}
	logc().Info("built font name and file mapping", "dir", dir, "entries", len(idx))
	return idx
}

func (idx FontIndex) add(name, file string) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	for _, f := range idx[key] {
		if f == file {
			return
		}
	}
	idx[key] = append(idx[key], file)
}

// FindFontFile resolves a font name to a file path inside dir. The index is
// consulted first; when it has no entry (or the recorded files have
// vanished), a best-effort filename heuristic compares the name and each
// file name with spaces and hyphens stripped. The second return value is
// false when nothing matches; absence is not an error.
func (l *Library) FindFontFile(name, dir string) (string, bool) {
	if name == "" || dir == "" {
		return "", false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexLocked(dir)
	for _, file := range idx[strings.ToLower(name)] {
		p := filepath.Join(dir, file)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}

	// Fallback: filename similarity. First match in listing order wins.
	entries, err := os.ReadDir(dir)
	if err != nil {
		logc().Debug("fallback font search failed", "name", name, "dir", dir, "err", err)
		return "", false
	}
	want := normalizeFontName(name)
	if want == "" {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() || !isFontFile(e.Name()) {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		have := normalizeFontName(base)
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			logc().Debug("font matched by filename heuristic", "name", name, "file", e.Name())
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

func normalizeFontName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
