package config

import (
	"testing"
)

func TestDeepMergeStructs(t *testing.T) {
	type Inner struct {
		Value int
		Name  string
	}
	type Outer struct {
		Inner Inner
		Count int
	}

	dst := &Outer{Inner: Inner{Value: 1, Name: "original"}, Count: 10}
	src := &Outer{Inner: Inner{Value: 2}, Count: 0}

	DeepMerge(dst, src)

	if dst.Inner.Value != 2 {
		t.Errorf("Inner.Value: got %d, want 2", dst.Inner.Value)
	}
	if dst.Inner.Name != "original" {
		t.Errorf("Inner.Name: got %s, want original", dst.Inner.Name)
	}
	if dst.Count != 10 {
		t.Errorf("Count: got %d, want 10 (zero value shouldn't override)", dst.Count)
	}
}

func TestDeepMergeMaps(t *testing.T) {
	type S struct {
		M map[string]int
	}

	dst := &S{}
	src := &S{M: map[string]int{"a": 1}}

	DeepMerge(dst, src)

	if dst.M["a"] != 1 {
		t.Errorf("M[a]: got %d, want 1", dst.M["a"])
	}
}

func TestDeepMergeSlices(t *testing.T) {
	type S struct {
		Items []string
	}

	dst := &S{Items: []string{"a", "b"}}
	DeepMerge(dst, &S{Items: []string{}})
	if len(dst.Items) != 2 {
		t.Errorf("Items length: got %d, want 2 (empty slice shouldn't overwrite)", len(dst.Items))
	}

	DeepMerge(dst, &S{Items: []string{"x", "y", "z"}})
	if len(dst.Items) != 3 || dst.Items[0] != "x" {
		t.Errorf("Items: got %v, want [x y z]", dst.Items)
	}
}

func TestDeepMergeTypeMismatch(t *testing.T) {
	dst := &struct{ A int }{A: 1}
	DeepMerge(dst, &struct{ B int }{B: 2})
	if dst.A != 1 {
		t.Errorf("mismatched types should not merge, got %d", dst.A)
	}
}

func TestConfigOverlay(t *testing.T) {
	base := DefaultConfig()
	flags := &Config{
		Reasoner: ReasonerConfig{Rules: []string{"skos:*"}, Merge: true},
		Logging:  LoggingConfig{Level: "debug"},
	}

	got := base.Overlay(flags)

	if len(got.Reasoner.Rules) != 1 || got.Reasoner.Rules[0] != "skos:*" {
		t.Errorf("Rules: got %v, want [skos:*]", got.Reasoner.Rules)
	}
	if !got.Reasoner.Merge {
		t.Error("Merge should be set by the overlay")
	}
	if got.Reasoner.CacheSize != 1024 {
		t.Errorf("CacheSize should keep the default: got %d", got.Reasoner.CacheSize)
	}
	if got.Logging.Level != "debug" || got.Logging.Format != "text" {
		t.Errorf("Logging: got %+v", got.Logging)
	}
	// the base is untouched
	if base.Reasoner.Rules[0] != "owl2:*" || base.Logging.Level != "info" {
		t.Errorf("base changed: %+v", base)
	}
	if base.Overlay(nil).Reasoner.CacheSize != 1024 {
		t.Error("nil overlay should copy the base")
	}
}
