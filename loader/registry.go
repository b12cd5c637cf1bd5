// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/poiesic/docsift/core"
)

// Loader parses one file format into text units.
type Loader interface {
	Load(path string) ([]core.Unit, error)
}

// OCRFunc is the optical character recognition hook used as the last PDF
// extraction tier. A nil hook disables the tier.
type OCRFunc func(path string) (string, error)

// entry binds a set of extensions to one loader.
type entry struct {
	extensions []string
	loader     Loader
}

// Registry dispatches files to format loaders by extension. The dispatch
// table is ordered and first-match-wins; it is fixed at construction.
type Registry struct {
	entries []entry
	logger  *slog.Logger
}

// Config holds registry construction options.
type Config struct {
	// MinCharsPerPage is the average per-page character floor below which
	// PDF extraction falls through to the next tier.
	MinCharsPerPage int

	// OCR is the optional last-tier PDF extraction hook.
	OCR OCRFunc
}

// ConfigOption mutates a Config.
type ConfigOption func(*Config)

// WithMinCharsPerPage overrides the PDF tier fall-through floor.
func WithMinCharsPerPage(n int) ConfigOption {
	return func(c *Config) { c.MinCharsPerPage = n }
}

// WithOCR installs an OCR hook as the last PDF extraction tier.
func WithOCR(fn OCRFunc) ConfigOption {
	return func(c *Config) { c.OCR = fn }
}

// DefaultConfig returns registry defaults.
func DefaultConfig() *Config {
	return &Config{MinCharsPerPage: 50}
}

// NewRegistry builds the standard dispatch table covering every supported
// format.
func NewRegistry(opts ...ConfigOption) *Registry {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	return &Registry{
		entries: []entry{
			{[]string{".pdf"}, newPDFLoader(config.MinCharsPerPage, config.OCR)},
			{[]string{".docx"}, &docxLoader{}},
			{[]string{".doc"}, &legacyOfficeLoader{documentType: "doc"}},
			{[]string{".xlsx", ".xls"}, &excelLoader{}},
			{[]string{".csv"}, &csvLoader{}},
			{[]string{".pptx"}, &pptxLoader{}},
			{[]string{".ppt"}, &legacyOfficeLoader{documentType: "ppt"}},
			{[]string{".md", ".markdown"}, &markdownLoader{}},
			{[]string{".html", ".htm"}, &htmlLoader{}},
			{[]string{".eml", ".msg"}, &emailLoader{}},
			{[]string{".txt", ".text", ".log"}, &textLoader{}},
		},
		logger: slog.Default().With("component", "loader-registry"),
	}
}

// Lookup returns the loader for a file path, matching on its lowercase
// extension.
func (r *Registry) Lookup(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range r.entries {
		for _, candidate := range e.extensions {
			if candidate == ext {
				return e.loader, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoLoader, ext)
}

// Load parses the file at path with its format loader and stamps every unit
// with the source filename.
func (r *Registry) Load(path string) ([]core.Unit, error) {
	l, err := r.Lookup(path)
	if err != nil {
		return nil, err
	}

	units, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filepath.Base(path))
	}

	source := filepath.Base(path)
	for i := range units {
		if !units[i].Metadata.Has(core.MetaSource) {
			units[i].Metadata[core.MetaSource] = source
		}
	}

	r.logger.Debug("loaded document", "source", source, "units", len(units))
	return units, nil
}

// Supported returns the extensions the registry dispatches, in table order.
func (r *Registry) Supported() []string {
	var exts []string
	for _, e := range r.entries {
		exts = append(exts, e.extensions...)
	}
	return exts
}
