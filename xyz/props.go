// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"log/slog"

	"veroengine.org/core/math32"
	"veroengine.org/core/tree"
)

// PropertyKind is the semantic type of a [Property].
type PropertyKind int32

const (
	KindBool PropertyKind = iota
	KindFloat
	KindString
	KindVector3
	KindEnum
)

var propertyKindNames = [...]string{"bool", "float", "string", "vector3", "enum"}

func (k PropertyKind) String() string {
	if k < 0 || int(k) >= len(propertyKindNames) {
		return fmt.Sprintf("PropertyKind(%d)", int32(k))
	}
	return propertyKindNames[k]
}

// Enum is a named integer value that can be serialized by name.
type Enum interface {
	String() string
	SetString(s string) error
	Int64() int64
	SetInt64(i int64)
}

// Property is one entry of the explicit serialization schema of a
// node type: a name, a semantic kind, and a pointer to the field.
type Property struct {
	Name string
	Kind PropertyKind

	// Value points to the field: *bool, *float32, *string,
	// *math32.Vector3, or an [Enum] pointer.
	Value any

	// OnSet is called after the value has been set, if non-nil.
	OnSet func()
}

// Get returns the current value: a bool, float32, string,
// [math32.Vector3], or the name of an enum.
func (p *Property) Get() any {
	switch v := p.Value.(type) {
	case *bool:
		return *v
	case *float32:
		return *v
	case *string:
		return *v
	case *math32.Vector3:
		return *v
	case Enum:
		return v.String()
	}
	return nil
}

// Set sets the value, which must match the kind of the property:
// bool, float32, string, [math32.Vector3], and a name (string) or
// index (int64) for enums.
func (p *Property) Set(val any) error {
	ok := false
	switch v := p.Value.(type) {
	case *bool:
		var b bool
		if b, ok = val.(bool); ok {
			*v = b
		}
	case *float32:
		var f float32
		if f, ok = val.(float32); ok {
			*v = f
		}
	case *string:
		var s string
		if s, ok = val.(string); ok {
			*v = s
		}
	case *math32.Vector3:
		var vec math32.Vector3
		if vec, ok = val.(math32.Vector3); ok {
			*v = vec
		}
	case Enum:
		switch e := val.(type) {
		case string:
			if err := v.SetString(e); err != nil {
				return fmt.Errorf("property %s: %w", p.Name, err)
			}
			ok = true
		case int64:
			v.SetInt64(e)
			ok = true
		}
	default:
		return fmt.Errorf("property %s: unsupported field type %T", p.Name, p.Value)
	}
	if !ok {
		return fmt.Errorf("property %s: cannot set %s from %T", p.Name, p.Kind, val)
	}
	if p.OnSet != nil {
		p.OnSet()
	}
	return nil
}

// Properties returns the properties common to all nodes.
func (nb *NodeBase) Properties() []Property {
	return []Property{
		{Name: "Name", Kind: KindString, Value: &nb.Name},
		{Name: "Visible", Kind: KindBool, Value: &nb.Visible},
		{Name: "Position", Kind: KindVector3, Value: &nb.Position},
		{Name: "Rotation", Kind: KindVector3, Value: &nb.Rotation},
		{Name: "Scale", Kind: KindVector3, Value: &nb.Scale},
		{Name: "Color", Kind: KindVector3, Value: &nb.Color},
	}
}

// PropertyByName returns the property of n with the given name.
func PropertyByName(n Node, name string) (Property, bool) {
	for _, p := range n.Properties() {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// CopyFieldsFrom copies the property values of from, which must have
// the same type. Only the properties are copied: resources, light
// links and body bindings stay empty, so that a clone resolves and
// registers its own.
func (nb *NodeBase) CopyFieldsFrom(from tree.Node) {
	fn, ok := from.(Node)
	if !ok {
		return
	}
	dst, src := nb.This.(Node).Properties(), fn.Properties()
	if len(dst) != len(src) {
		slog.Error("xyz.NodeBase.CopyFieldsFrom", "to", ClassName(nb.This.(Node)), "from", ClassName(fn))
		return
	}
	for i := range src {
		copyValue(dst[i].Value, src[i].Value)
	}
}

func copyValue(dst, src any) {
	switch d := dst.(type) {
	case *bool:
		if s, ok := src.(*bool); ok {
			*d = *s
		}
	case *float32:
		if s, ok := src.(*float32); ok {
			*d = *s
		}
	case *string:
		if s, ok := src.(*string); ok {
			*d = *s
		}
	case *math32.Vector3:
		if s, ok := src.(*math32.Vector3); ok {
			*d = *s
		}
	case Enum:
		if s, ok := src.(Enum); ok {
			d.SetInt64(s.Int64())
		}
	}
}
