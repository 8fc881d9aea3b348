package models

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// Patch is a JSON field that remembers whether it was present in the
// body and whether it was an explicit null.
type Patch[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		return nil
	}
	// an empty string clears non-text columns too
	if _, text := any(p.Value).(string); !text && string(b) == `""` {
		p.Null = true
		return nil
	}
	return json.Unmarshal(b, &p.Value)
}

// Amount is an optional number on create bodies. null, an empty string
// and absence all leave Value nil; numeric strings are accepted.
type Amount struct {
	Value *float64
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Value = nil
	switch {
	case string(b) == "null" || string(b) == `""`:
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(0.0)}
		}
		a.Value = &f
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	a.Value = &f
	return nil
}

// Some returns a present, non-null Patch holding v.
func Some[T any](v T) Patch[T] { return Patch[T]{Set: true, Value: v} }

// Null returns a present Patch that clears the column.
func Null[T any]() Patch[T] { return Patch[T]{Set: true, Null: true} }

// Arg is the value bound to the column: nil for an explicit null.
func (p Patch[T]) Arg() any {
	if p.Null {
		return nil
	}
	return p.Value
}

// Assignment is one column=value pair of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}
