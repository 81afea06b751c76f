// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"sort"
)

// isinPattern matches an ISIN as a whole word: a two-letter country prefix
// followed by ten uppercase alphanumerics (nine for the national identifier
// plus one check digit).
var isinPattern = regexp.MustCompile(`\b[A-Z]{2}[A-Z0-9]{10}\b`)

// ExtractISINs finds every distinct ISIN-shaped token in the text. Results
// are deduplicated set-style and returned sorted for deterministic output.
func ExtractISINs(text string) []string {
	seen := make(map[string]struct{})
	for _, match := range isinPattern.FindAllString(text, -1) {
		seen[match] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	isins := make([]string, 0, len(seen))
	for isin := range seen {
		isins = append(isins, isin)
	}
	sort.Strings(isins)
	return isins
}
