// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenefile reads and writes scene trees. A node is stored as
// a [Record]: its class name, the values of the properties declared by
// its type, and the records of its children. Records are saved as
// JSON, YAML or TOML, chosen by file extension.
package scenefile

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"veroengine.org/core/math32"
	"veroengine.org/core/tree"
	"veroengine.org/core/xyz"
)

// Version is the version of the file format written by this package.
const Version = 1

// File is the top level of a scene file.
type File struct {
	Version int    `json:"version" yaml:"version" toml:"version"`
	Root    Record `json:"root" yaml:"root" toml:"root"`
}

// Record is the stored form of a node and its descendants.
type Record struct {
	ClassName  string     `json:"class" yaml:"class" toml:"class"`
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Children   []Record   `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Property is a stored property value: a bool, a number, a string,
// a list of three numbers for vectors, or the name of an enum value.
type Property struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value any    `json:"value" yaml:"value" toml:"value"`
}

// Resolver returns a new node of the given class, and false if the
// class is unknown.
type Resolver func(class string) (xyz.Node, bool)

// DefaultResolver resolves the classes registered with [xyz.RegisterType].
var DefaultResolver Resolver = xyz.NewOfClass

// Encode returns the record of n and its descendants.
func Encode(n xyz.Node) Record {
	rec := Record{ClassName: xyz.ClassName(n)}
	for _, p := range n.Properties() {
		rec.Properties = append(rec.Properties, Property{Name: p.Name, Value: encodeValue(&p)})
	}
	for _, k := range n.AsTree().Children {
		if kn, ok := k.(xyz.Node); ok {
			rec.Children = append(rec.Children, Encode(kn))
		}
	}
	return rec
}

func encodeValue(p *xyz.Property) any {
	switch v := p.Get().(type) {
	case float32:
		return float64(v)
	case math32.Vector3:
		return []float64{float64(v.X), float64(v.Y), float64(v.Z)}
	default:
		return v
	}
}

// Decode makes the node of rec and its descendants. A class that the
// resolver does not know is replaced by a plain [xyz.NodeBase], and
// properties that cannot be set are skipped; both are logged. If
// parent is non-nil the node is added to it before its children are
// decoded, so that nodes are built in the same order as by hand.
func Decode(rec *Record, resolve Resolver, parent xyz.Node) xyz.Node {
	n := decodeNode(rec, resolve)
	if parent != nil {
		parent.AsTree().AddChild(n)
	}
	decodeChildren(rec, resolve, n)
	return n
}

// decodeNode makes the node of rec without its children.
func decodeNode(rec *Record, resolve Resolver) xyz.Node {
	if resolve == nil {
		resolve = DefaultResolver
	}
	n, ok := resolve(rec.ClassName)
	if !ok || n == nil {
		slog.Error("scenefile.Decode: unknown class, using Node", "class", rec.ClassName)
		n = tree.New[xyz.NodeBase]()
	}
	tree.InitNode(n)
	props := map[string]xyz.Property{}
	for _, p := range n.Properties() {
		props[p.Name] = p
	}
	for _, sp := range rec.Properties {
		p, ok := props[sp.Name]
		if !ok {
			slog.Error("scenefile.Decode: unknown property", "class", rec.ClassName, "property", sp.Name)
			continue
		}
		v, err := decodeValue(p.Kind, sp.Value)
		if err == nil {
			err = p.Set(v)
		}
		if err != nil {
			slog.Error("scenefile.Decode: skipping property", "class", rec.ClassName, "property", sp.Name, "err", err)
		}
	}
	return n
}

func decodeChildren(rec *Record, resolve Resolver, n xyz.Node) {
	for i := range rec.Children {
		Decode(&rec.Children[i], resolve, n)
	}
}

// decodeValue converts a value as read by a codec into the Go type
// that [xyz.Property.Set] takes for the kind.
func decodeValue(kind xyz.PropertyKind, v any) (any, error) {
	switch kind {
	case xyz.KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case xyz.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case xyz.KindFloat:
		if f, ok := toFloat(v); ok {
			return float32(f), nil
		}
	case xyz.KindVector3:
		return toVector3(v)
	case xyz.KindEnum:
		if s, ok := v.(string); ok {
			return s, nil
		}
		if f, ok := toFloat(v); ok && f == math.Trunc(f) {
			return int64(f), nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", v, kind)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// toVector3 accepts a list of three numbers or a map with X, Y and Z.
func toVector3(v any) (math32.Vector3, error) {
	var c [3]float64
	switch x := v.(type) {
	case math32.Vector3:
		return x, nil
	case []float64:
		if len(x) != 3 {
			return math32.Vector3{}, fmt.Errorf("vector needs 3 components, not %d", len(x))
		}
		copy(c[:], x)
	case []any:
		if len(x) != 3 {
			return math32.Vector3{}, fmt.Errorf("vector needs 3 components, not %d", len(x))
		}
		for i, e := range x {
			f, ok := toFloat(e)
			if !ok {
				return math32.Vector3{}, fmt.Errorf("vector component %d is %T", i, e)
			}
			c[i] = f
		}
	case map[string]any:
		for i, k := range [3]string{"X", "Y", "Z"} {
			e, ok := x[k]
			if !ok {
				e, ok = x[strings.ToLower(k)]
			}
			f, fok := toFloat(e)
			if !ok || !fok {
				return math32.Vector3{}, fmt.Errorf("vector component %s missing", k)
			}
			c[i] = f
		}
	default:
		return math32.Vector3{}, fmt.Errorf("cannot use %T as vector", v)
	}
	return math32.Vec3(float32(c[0]), float32(c[1]), float32(c[2])), nil
}
