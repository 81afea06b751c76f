// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import "testing"

func TestDetectSections(t *testing.T) {
	text := "prologue outside any section\n" +
		"EXECUTIVE SUMMARY\n" +
		"The fund performed well.\n" +
		"Returns exceeded the benchmark.\n" +
		"2. Holdings Detail\n" +
		"See the table below.\n" +
		"Asset Allocation:\n" +
		"Equities dominate."

	sections := DetectSections(text)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if sections[0].Title != "EXECUTIVE SUMMARY" {
		t.Errorf("title 0 = %q", sections[0].Title)
	}
	wantBody := "The fund performed well.\nReturns exceeded the benchmark."
	if sections[0].Body != wantBody {
		t.Errorf("body 0 = %q, want %q", sections[0].Body, wantBody)
	}
	if sections[0].StartLine != 1 {
		t.Errorf("start line 0 = %d, want 1", sections[0].StartLine)
	}

	if sections[1].Title != "2. Holdings Detail" {
		t.Errorf("title 1 = %q", sections[1].Title)
	}
	if sections[2].Title != "Asset Allocation:" {
		t.Errorf("title 2 = %q", sections[2].Title)
	}
	if sections[2].Body != "Equities dominate." {
		t.Errorf("body 2 = %q", sections[2].Body)
	}
}

func TestDetectSectionsNoTitles(t *testing.T) {
	sections := DetectSections("just some prose\nwith no headings at all")
	if sections != nil {
		t.Errorf("expected nil, got %v", sections)
	}
}

func TestDetectSectionsEmptyText(t *testing.T) {
	if got := DetectSections("   \n  "); got != nil {
		t.Errorf("expected nil for blank text, got %v", got)
	}
}

func TestIsSectionTitle(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"all uppercase", "PORTFOLIO HOLDINGS", true},
		{"uppercase with digits", "SECTION 4", true},
		{"numbered", "3. Risk Factors", true},
		{"title case colon", "Asset Allocation:", true},
		{"plain prose", "the quick brown fox", false},
		{"mixed case no colon", "Asset Allocation", false},
		{"empty", "", false},
		{"digits only", "12345", false},
		{"too long", upper(120), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSectionTitle(tt.line); got != tt.want {
				t.Errorf("isSectionTitle(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func upper(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A'
	}
	return string(b)
}
