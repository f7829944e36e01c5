package config

import (
	"reflect"
)

// Overlay returns a copy of c with every non-zero field of o applied on
// top. Command-line flags reach the configuration this way: unset flags
// are zero and leave the loaded value alone.
func (c *Config) Overlay(o *Config) *Config {
	out := *c
	out.Reasoner.Rules = append([]string(nil), c.Reasoner.Rules...)
	out.Reasoner.SWRLRules = append([]string(nil), c.Reasoner.SWRLRules...)
	out.Validator.Rules = append([]string(nil), c.Validator.Rules...)
	out.Validator.SWRLRules = append([]string(nil), c.Validator.SWRLRules...)
	if o != nil {
		DeepMerge(&out, o)
	}
	return &out
}

// DeepMerge copies the non-zero fields of *src over *dst, recursing into
// structs. Non-empty slices replace. Both arguments must be pointers to the
// same type.
func DeepMerge(dst, src any) {
	dstVal := reflect.ValueOf(dst)
	srcVal := reflect.ValueOf(src)

	if dstVal.Kind() != reflect.Ptr || srcVal.Kind() != reflect.Ptr || dstVal.Type() != srcVal.Type() {
		return
	}

	mergeValues(dstVal.Elem(), srcVal.Elem())
}

func mergeValues(dst, src reflect.Value) {
	if !dst.CanSet() || !src.IsValid() {
		return
	}

	switch dst.Kind() {
	case reflect.Struct:
		for i := 0; i < dst.NumField(); i++ {
			mergeValues(dst.Field(i), src.Field(i))
		}
	case reflect.Map:
		mergeMap(dst, src)
	case reflect.Slice:
		if src.Len() > 0 {
			dst.Set(src)
		}
	default:
		if !src.IsZero() {
			dst.Set(src)
		}
	}
}

func mergeMap(dst, src reflect.Value) {
	if src.IsNil() {
		return
	}
	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}
	iter := src.MapRange()
	for iter.Next() {
		dst.SetMapIndex(iter.Key(), iter.Value())
	}
}
