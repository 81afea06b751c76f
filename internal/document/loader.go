// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Loader turns a file on disk into a Document. Loaders are consulted in
// registration order; the first one whose CanLoad accepts the path wins.
type Loader interface {
	// CanLoad checks if this loader can handle the given file
	CanLoad(path string) bool

	// Load extracts the document text and page boundaries from the file
	Load(path string) (*Document, error)

	// Name returns the loader identifier
	Name() string
}

// LoaderRegistry holds registered loaders in priority order.
type LoaderRegistry struct {
	loaders []Loader
}

// NewLoaderRegistry creates an empty registry.
func NewLoaderRegistry() *LoaderRegistry {
	return &LoaderRegistry{}
}

// Register appends a loader to the registry.
func (r *LoaderRegistry) Register(loader Loader) {
	r.loaders = append(r.loaders, loader)
}

// Names returns the registered loader names in priority order.
func (r *LoaderRegistry) Names() []string {
	names := make([]string, 0, len(r.loaders))
	for _, l := range r.loaders {
		names = append(names, l.Name())
	}
	return names
}

// Load routes the path to the first loader that accepts it.
func (r *LoaderRegistry) Load(path string) (*Document, error) {
	for _, loader := range r.loaders {
		if loader.CanLoad(path) {
			return loader.Load(path)
		}
	}
	return nil, fmt.Errorf("no loader registered for file type: %s", filepath.Ext(path))
}

// DefaultRegistry returns a registry with the built-in loaders: PDF first,
// plaintext as the catch-all.
func DefaultRegistry() *LoaderRegistry {
	r := NewLoaderRegistry()
	r.Register(NewPDFLoader())
	r.Register(NewPlainTextLoader())
	return r
}

func hasExtension(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
