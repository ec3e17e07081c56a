// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"reflect"
	"sort"
	"sync"

	"veroengine.org/core/tree"
)

// types maps class names to constructors.
var types = struct {
	sync.RWMutex
	byName map[string]func() Node
	names  map[reflect.Type]string
}{byName: map[string]func() Node{}, names: map[reflect.Type]string{}}

// RegisterType registers the node type made by newNode under the given
// class name, which is how the type is named in scene files. It
// replaces any type registered before under the same name.
func RegisterType(class string, newNode func() Node) {
	types.Lock()
	defer types.Unlock()
	types.byName[class] = newNode
	types.names[reflect.TypeOf(newNode())] = class
}

// NewOfClass returns a new initialized node of the given class, and
// false if the class is not registered.
func NewOfClass(class string) (Node, bool) {
	types.RLock()
	fn, ok := types.byName[class]
	types.RUnlock()
	if !ok {
		return nil, false
	}
	n := fn()
	tree.InitNode(n)
	return n, true
}

// ClassName returns the class name of the node; for unregistered
// types it is the type name.
func ClassName(n Node) string {
	types.RLock()
	nm, ok := types.names[reflect.TypeOf(n)]
	types.RUnlock()
	if ok {
		return nm
	}
	return tree.TypeName(n)
}

// Classes returns the sorted names of the registered classes.
func Classes() []string {
	types.RLock()
	defer types.RUnlock()
	cls := make([]string, 0, len(types.byName))
	for nm := range types.byName {
		cls = append(cls, nm)
	}
	sort.Strings(cls)
	return cls
}

func init() {
	RegisterType("Node", func() Node { return &NodeBase{} })
	RegisterType("MeshNode", func() Node { return &MeshNode{} })
	RegisterType("CameraNode", func() Node { return &CameraNode{} })
	RegisterType("PointLight", func() Node { return &PointLight{} })
	RegisterType("DirectionalLight", func() Node { return &DirectionalLight{} })
	RegisterType("Collider", func() Node { return &Collider{} })
	RegisterType("RigidBody", func() Node { return &RigidBody{} })
	RegisterType("StaticBody", func() Node { return &StaticBody{} })
	RegisterType("RotateNode", func() Node { return &RotateNode{} })
}
