package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/wippyai/typeconv/array"
	"github.com/wippyai/typeconv/guest"
	"github.com/wippyai/typeconv/kind"
)

// typeNames resolves the type names accepted on the command line. Every
// kind contributes its array name ("int[]"), container name ("IntArray"),
// kind name ("int") and the Go spelling of each of those types.
type typeNames struct {
	byName map[string]reflect.Type
}

func newTypeNames() *typeNames {
	n := &typeNames{byName: make(map[string]reflect.Type)}

	for _, k := range kind.All() {
		c := array.CodecFor(k)
		n.add(c.SliceType(), k.ArrayName())
		n.add(c.ContainerType(), k.ContainerName())
		n.add(k.ElemType(), k.String())
	}

	n.add(reflect.TypeFor[array.Sequence](), "Sequence")
	n.add(reflect.TypeFor[[]any](), "[]any", "list")
	n.add(reflect.TypeFor[guest.List](), "GuestList")
	n.add(reflect.TypeFor[any](), "any")
	return n
}

// add registers t under names and under its Go spelling.
func (n *typeNames) add(t reflect.Type, names ...string) {
	for _, name := range append(names, t.String()) {
		n.byName[name] = t
	}
}

func (n *typeNames) resolve(name string) (reflect.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("type name is required")
	}
	if t, ok := n.byName[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q (see 'typeconv kinds' for accepted names)", name)
}

// names returns every accepted name in sorted order.
func (n *typeNames) names() []string {
	out := make([]string, 0, len(n.byName))
	for name := range n.byName {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
