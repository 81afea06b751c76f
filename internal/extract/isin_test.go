// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"reflect"
	"testing"
)

func TestExtractISINs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single isin",
			text: "Apple Inc. (US0378331005) leads the portfolio.",
			want: []string{"US0378331005"},
		},
		{
			name: "multiple sorted",
			text: "Holdings: US5949181045 and DE0007164600 and US0378331005.",
			want: []string{"DE0007164600", "US0378331005", "US5949181045"},
		},
		{
			name: "duplicates collapse",
			text: "US0378331005 appears twice: US0378331005.",
			want: []string{"US0378331005"},
		},
		{
			name: "lowercase prefix rejected",
			text: "us0378331005 is not an identifier",
			want: nil,
		},
		{
			name: "embedded in longer token rejected",
			text: "XXUS0378331005YY",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractISINs(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractISINs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractISINsIdempotent(t *testing.T) {
	text := "US0378331005 US5949181045 US0378331005"
	first := ExtractISINs(text)
	second := ExtractISINs(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not deterministic: %v vs %v", first, second)
	}
}
