// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package benchmark binds perf benchmark names to a measurement and
// a page set.
//
// Measurements and page sets are opaque names here; running them is
// the job of the benchmark harness.
package benchmark

import (
	"errors"
	"fmt"
	"sort"
)

// Benchmark is a benchmark binding.
type Benchmark struct {
	// Name is the benchmark name, e.g. "image_decoding.tough_image_cases".
	Name string
	// Measurement is the measurement routine, e.g. "image_decoding.ImageDecoding".
	Measurement string
	// PageSet is the page set to measure.
	PageSet string
}

func (b Benchmark) String() string {
	return fmt.Sprintf("%s: measurement=%s page_set=%s", b.Name, b.Measurement, b.PageSet)
}

func (b Benchmark) validate() error {
	switch {
	case b.Name == "":
		return errors.New("empty benchmark name")
	case b.Measurement == "":
		return fmt.Errorf("benchmark %q: empty measurement", b.Name)
	case b.PageSet == "":
		return fmt.Errorf("benchmark %q: empty page_set", b.Name)
	}
	return nil
}

// Registry holds benchmarks by name.
type Registry struct {
	m map[string]Benchmark
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Benchmark)}
}

// Default returns a registry with the builtin benchmarks.
func Default() *Registry {
	r := NewRegistry()
	for _, b := range builtins {
		err := r.Register(b)
		if err != nil {
			panic(fmt.Sprintf("builtin benchmark: %v", err))
		}
	}
	return r
}

var builtins = []Benchmark{
	{
		Name:        "image_decoding.tough_image_cases",
		Measurement: "image_decoding.ImageDecoding",
		PageSet:     "ImageDecodingMeasurementPageSet",
	},
}

// Register registers b.
// It returns error if b has empty fields, or b.Name is already registered.
func (r *Registry) Register(b Benchmark) error {
	err := b.validate()
	if err != nil {
		return err
	}
	if old, ok := r.m[b.Name]; ok {
		return fmt.Errorf("benchmark %q already registered: %v", b.Name, old)
	}
	r.m[b.Name] = b
	return nil
}

// Lookup returns a benchmark for the name.
func (r *Registry) Lookup(name string) (Benchmark, bool) {
	b, ok := r.m[name]
	return b, ok
}

// List returns all benchmarks sorted by name.
func (r *Registry) List() []Benchmark {
	benchmarks := make([]Benchmark, 0, len(r.m))
	for _, b := range r.m {
		benchmarks = append(benchmarks, b)
	}
	sort.Slice(benchmarks, func(i, j int) bool {
		return benchmarks[i].Name < benchmarks[j].Name
	})
	return benchmarks
}
