// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"regexp"
	"strings"

	"holdings-scan/internal/document"
)

// maxTitleLength bounds how long a line can be and still read as a section
// title.
const maxTitleLength = 100

// numberedTitle matches titles like "3. Holdings" or "12. Risk Factors".
var numberedTitle = regexp.MustCompile(`^\d+\.\s*[A-Z]`)

// titleCaseColon matches short labels like "Asset Allocation:".
var titleCaseColon = regexp.MustCompile(`^(?:[A-Z][A-Za-z]*\s?){1,5}:$`)

// DetectSections splits document text into titled sections. A line is a
// title when it is shorter than maxTitleLength and is entirely uppercase,
// numbered "N. Title" style, or a short "Title Case:" label. Body lines
// accumulate under the most recent title; text before the first title is
// not part of any section.
func DetectSections(text string) []document.Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sections []document.Section
	var current *document.Section

	flush := func(endLine int) {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(current.Body)
		current.EndLine = endLine
		sections = append(sections, *current)
		current = nil
	}

	for i, line := range strings.Split(text, "\n") {
		if isSectionTitle(line) {
			flush(i - 1)
			current = &document.Section{
				Title:     strings.TrimSpace(line),
				StartLine: i,
			}
			continue
		}
		if current != nil {
			current.Body += line + "\n"
		}
	}
	flush(strings.Count(text, "\n"))

	return sections
}

// isSectionTitle applies the title heuristics to one line.
func isSectionTitle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxTitleLength {
		return false
	}

	if isAllUppercase(trimmed) {
		return true
	}
	if numberedTitle.MatchString(trimmed) {
		return true
	}
	return titleCaseColon.MatchString(trimmed)
}

// isAllUppercase reports whether the line has at least one letter and no
// lowercase letters.
func isAllUppercase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
