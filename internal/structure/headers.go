// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"strings"

	"holdings-scan/internal/document"
)

// minPagesForRepeats is the smallest page count on which repeated headers
// and footers can be told apart from ordinary content.
const minPagesForRepeats = 3

// minAcceptRatio is the fraction of pages that must agree with the first
// page before the candidate lines are accepted.
const minAcceptRatio = 0.5

// DetectHeadersFooters takes the first line of every page as the header
// candidate set and the last line as the footer candidate set. Each set is
// accepted whole when more than half of pages 2..N are similar to page 1.
// Documents under three pages return empty results for both.
func DetectHeadersFooters(pages []string) document.HeadersFooters {
	var result document.HeadersFooters
	if len(pages) < minPagesForRepeats {
		return result
	}

	firsts := make([]string, len(pages))
	lasts := make([]string, len(pages))
	for i, page := range pages {
		firsts[i], lasts[i] = edgeLines(page)
	}

	if similarityRatio(firsts) > minAcceptRatio {
		result.Headers = firsts
	}
	if similarityRatio(lasts) > minAcceptRatio {
		result.Footers = lasts
	}
	return result
}

// edgeLines returns the first and last non-empty-trimmed lines of a page.
// An empty page yields empty strings for both.
func edgeLines(page string) (first, last string) {
	lines := strings.Split(page, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[len(lines)-1])
}

// similarityRatio counts how many of candidates[1:] are similar to
// candidates[0], divided by len(candidates)-1.
func similarityRatio(candidates []string) float64 {
	if len(candidates) < 2 {
		return 0
	}
	similar := 0
	for _, c := range candidates[1:] {
		if Similar(candidates[0], c) {
			similar++
		}
	}
	return float64(similar) / float64(len(candidates)-1)
}
