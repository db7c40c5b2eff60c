package particles

import (
	"fmt"
	"slices"
)

// Float3 is a three component vector as stored in attribute buffers.
type Float3 [3]float32

// Element is the set of Go types an attribute buffer can hold.
type Element interface {
	uint8 | int32 | float32 | Float3
}

// AttributeType identifies the element type of an attribute.
type AttributeType int

const (
	Byte AttributeType = iota
	Integer
	Float
	Vector
)

func (t AttributeType) String() string {
	switch t {
	case Byte:
		return "byte"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Vector:
		return "float3"
	default:
		return fmt.Sprintf("AttributeType(%d)", int(t))
	}
}

// Size returns the number of bytes one element occupies.
func (t AttributeType) Size() int {
	switch t {
	case Byte:
		return 1
	case Integer, Float:
		return 4
	case Vector:
		return 12
	default:
		panic(fmt.Sprintf("particles: unknown attribute type %d", int(t)))
	}
}

// ParseAttributeType maps the names used in tree files to attribute types.
func ParseAttributeType(name string) (AttributeType, error) {
	switch name {
	case "byte":
		return Byte, nil
	case "integer", "int":
		return Integer, nil
	case "float":
		return Float, nil
	case "float3", "vector":
		return Vector, nil
	default:
		return 0, fmt.Errorf("unknown attribute type %q", name)
	}
}

func makeColumn(t AttributeType, size int) any {
	switch t {
	case Byte:
		return make([]uint8, size)
	case Integer:
		return make([]int32, size)
	case Float:
		return make([]float32, size)
	case Vector:
		return make([]Float3, size)
	default:
		panic(fmt.Sprintf("particles: unknown attribute type %d", int(t)))
	}
}

// AttributeDecl declares one attribute of a particle type.
type AttributeDecl struct {
	Name string
	Type AttributeType
}

// AttributesInfo is the immutable attribute layout shared by every batch of
// one particle type.
type AttributesInfo struct {
	decls []AttributeDecl
	index map[string]int
}

// NewAttributesInfo builds a layout. Declaring a name twice panics.
func NewAttributesInfo(decls ...AttributeDecl) *AttributesInfo {
	info := &AttributesInfo{
		decls: slices.Clone(decls),
		index: make(map[string]int, len(decls)),
	}
	for i, d := range decls {
		if _, dup := info.index[d.Name]; dup {
			panic(fmt.Sprintf("particles: attribute %q declared twice", d.Name))
		}
		info.index[d.Name] = i
	}
	return info
}

// Len returns the number of attributes.
func (info *AttributesInfo) Len() int {
	return len(info.decls)
}

// Decl returns the declaration at index i.
func (info *AttributesInfo) Decl(i int) AttributeDecl {
	return info.decls[i]
}

// AttributeArrays is the attribute storage of one batch. Every attribute is
// either a per-particle buffer of Size() elements or a broadcast attribute
// whose single element applies to all particles.
type AttributeArrays struct {
	info      *AttributesInfo
	columns   []any
	broadcast []bool
	size      int
}

// NewAttributeArrays allocates zeroed per-particle buffers for size particles.
func NewAttributeArrays(info *AttributesInfo, size int) *AttributeArrays {
	a := &AttributeArrays{
		info:      info,
		columns:   make([]any, info.Len()),
		broadcast: make([]bool, info.Len()),
		size:      size,
	}
	for i, d := range info.decls {
		a.columns[i] = makeColumn(d.Type, size)
	}
	return a
}

// Info returns the layout of the storage.
func (a *AttributeArrays) Info() *AttributesInfo {
	return a.info
}

// Size returns the number of particle slots in every per-particle buffer.
func (a *AttributeArrays) Size() int {
	return a.size
}

// AttributeIndex resolves an attribute name.
func (a *AttributeArrays) AttributeIndex(name string) (int, bool) {
	i, ok := a.info.index[name]
	return i, ok
}

// AttributeType returns the element type of the attribute at index.
func (a *AttributeArrays) AttributeType(index int) AttributeType {
	return a.info.decls[index].Type
}

// AttributeStride returns the distance in bytes between the elements of two
// consecutive particles. Broadcast attributes have a stride of zero.
func (a *AttributeArrays) AttributeStride(index int) int {
	if a.broadcast[index] {
		return 0
	}
	return a.info.decls[index].Type.Size()
}

// Buffer returns the raw buffer of the attribute at index. The concrete type
// is []uint8, []int32, []float32 or []Float3 depending on AttributeType.
func (a *AttributeArrays) Buffer(index int) any {
	return a.columns[index]
}

// Get returns the typed buffer of the named attribute. Asking for a missing
// attribute or for the wrong element type panics.
func Get[T Element](a *AttributeArrays, name string) []T {
	i, ok := a.AttributeIndex(name)
	if !ok {
		panic(fmt.Sprintf("particles: attribute %q does not exist", name))
	}
	col, ok := a.columns[i].([]T)
	if !ok {
		panic(fmt.Sprintf("particles: attribute %q has type %s", name, a.info.decls[i].Type))
	}
	return col
}

// Set copies values into the named per-particle attribute.
func Set[T Element](a *AttributeArrays, name string, values []T) {
	i, ok := a.AttributeIndex(name)
	if !ok {
		panic(fmt.Sprintf("particles: attribute %q does not exist", name))
	}
	if len(values) > a.size {
		panic(fmt.Sprintf("particles: %d values do not fit attribute %q of size %d", len(values), name, a.size))
	}
	col := Get[T](a, name)
	if a.broadcast[i] {
		col = make([]T, a.size)
		a.columns[i] = col
		a.broadcast[i] = false
	}
	copy(col, values)
}

// SetBroadcast replaces the named attribute with a single value shared by all
// particles of the batch.
func SetBroadcast[T Element](a *AttributeArrays, name string, value T) {
	i, ok := a.AttributeIndex(name)
	if !ok {
		panic(fmt.Sprintf("particles: attribute %q does not exist", name))
	}
	if _, ok := a.columns[i].([]T); !ok {
		panic(fmt.Sprintf("particles: attribute %q has type %s", name, a.info.decls[i].Type))
	}
	a.columns[i] = []T{value}
	a.broadcast[i] = true
}
