/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pptx

import "strings"

// themePlaceholderPrefix marks typeface strings that reference a theme font
// slot instead of naming a concrete font ("+mj-lt", "+mn-ea", ...).
const themePlaceholderPrefix = "+"

// resolveThemePlaceholder maps a "+mj-lt"-style reference to the concrete
// theme font. Unmapped markers and empty slots resolve to absence.
func resolveThemePlaceholder(typeface string, theme ThemeFonts) (string, bool) {
	var name string
	switch typeface {
	case "+mj-lt":
		name = theme.MajorLatin
	case "+mn-lt":
		name = theme.MinorLatin
	case "+mj-ea":
		name = theme.MajorEA
	case "+mn-ea":
		name = theme.MinorEA
	}
	return name, name != ""
}

// acceptTypeface turns one raw typeface value into a usable font name:
// concrete names pass through verbatim, theme placeholders go through the
// theme map, and unresolvable placeholders fall through to the next
// candidate in the chain.
func acceptTypeface(typeface string, theme ThemeFonts) (string, bool) {
	if typeface == "" {
		return "", false
	}
	if strings.HasPrefix(typeface, themePlaceholderPrefix) {
		return resolveThemePlaceholder(typeface, theme)
	}
	return typeface, true
}

// fontFromPair applies the fixed East-Asian-before-Latin precedence within
// one level of the chain.
func fontFromPair(ea, latin string, theme ThemeFonts) (string, bool) {
	if name, ok := acceptTypeface(ea, theme); ok {
		return name, true
	}
	return acceptTypeface(latin, theme)
}

// ResolveFontName determines the effective font of a text region by walking
// the inheritance chain, highest priority first:
//
//  1. the first run's explicit override,
//  2. the first paragraph's default run properties,
//  3. the region's own list-style level-1 defaults,
//  4. theme fallback: minor EA, major EA, minor Latin, major Latin.
//
// The second return value is false when no level yields a font; callers
// pick their own fallback policy for that case.
func ResolveFontName(r Region, theme ThemeFonts) (string, bool) {
	ea, latin := r.RunFonts()
	if name, ok := fontFromPair(ea, latin, theme); ok {
		return name, true
	}
	ea, latin = r.ParagraphFonts()
	if name, ok := fontFromPair(ea, latin, theme); ok {
		return name, true
	}
	ea, latin = r.ListStyleFonts()
	if name, ok := fontFromPair(ea, latin, theme); ok {
		return name, true
	}
	for _, name := range []string{theme.MinorEA, theme.MajorEA, theme.MinorLatin, theme.MajorLatin} {
		if name != "" {
			return name, true
		}
	}
	return "", false
}
