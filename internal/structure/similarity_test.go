// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import "testing"

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "exact match",
			a:    "Quarterly Portfolio Statement",
			b:    "Quarterly Portfolio Statement",
			want: true,
		},
		{
			name: "exact match after trimming",
			a:    "  Page Header  ",
			b:    "Page Header",
			want: true,
		},
		{
			name: "containment",
			a:    "Portfolio Statement - Page 1",
			b:    "Portfolio Statement",
			want: true,
		},
		{
			name: "containment reversed",
			a:    "Confidential",
			b:    "Confidential - Do Not Distribute",
			want: true,
		},
		{
			name: "small edit distance",
			a:    "Page 1 of 12",
			b:    "Page 2 of 12",
			want: true,
		},
		{
			name: "unrelated lines",
			a:    "Holdings Summary",
			b:    "Risk Disclosures",
			want: false,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: true,
		},
		{
			name: "one empty",
			a:    "Header",
			b:    "",
			want: false,
		},
		{
			name: "whitespace only counts as empty",
			a:    "   ",
			b:    "Header",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.a, tt.b); got != tt.want {
				t.Errorf("Similar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Page 1 of 12", "Page 2 of 12"},
		{"Portfolio Statement", "Portfolio Statement - Page 1"},
		{"Holdings Summary", "Risk Disclosures"},
	}
	for _, p := range pairs {
		if Similar(p[0], p[1]) != Similar(p[1], p[0]) {
			t.Errorf("Similar(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizedDistance(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want float64
	}{
		{"", "", 0},
		{"abcd", "abcd", 0},
		{"abcd", "wxyz", 1},
		{"abcd", "abce", 0.25},
	}

	for _, tt := range tests {
		if got := NormalizedDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("NormalizedDistance(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
