// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"os"
	"strings"
)

// PlainTextLoader reads already-extracted text files. Form feed characters
// mark page boundaries; a file without them is a single page.
type PlainTextLoader struct{}

// NewPlainTextLoader creates a plaintext loader.
func NewPlainTextLoader() *PlainTextLoader {
	return &PlainTextLoader{}
}

// Name returns the loader identifier.
func (l *PlainTextLoader) Name() string { return "plaintext" }

// CanLoad accepts common text extensions and anything without an extension.
func (l *PlainTextLoader) CanLoad(path string) bool {
	return hasExtension(path, ".txt", ".text", ".md", ".csv", "")
}

// Load reads the file and splits it into pages on form feeds.
func (l *PlainTextLoader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading text file: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var pages []string
	for _, page := range strings.Split(text, "\f") {
		page = strings.Trim(page, "\n")
		if page != "" {
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		pages = []string{""}
	}

	return New(path, pages), nil
}
