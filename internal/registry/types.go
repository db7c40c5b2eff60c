package registry

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// VectorType is the cty representation of a three component vector.
var VectorType = cty.Tuple([]cty.Type{cty.Number, cty.Number, cty.Number})

// SocketType is the data type carried by a node socket.
type SocketType int

const (
	// Float is a single precision floating point value.
	Float SocketType = iota
	// Integer is a whole number.
	Integer
	// Boolean is a true/false value.
	Boolean
	// Vector is a three component float vector.
	Vector
	// Control sockets wire execution order between action nodes and carry
	// no data. They never appear in the compiled data graph.
	Control
)

func (t SocketType) String() string {
	switch t {
	case Float:
		return "float"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Vector:
		return "vector"
	case Control:
		return "control"
	default:
		return fmt.Sprintf("SocketType(%d)", int(t))
	}
}

// IsData reports whether sockets of this type carry a value.
func (t SocketType) IsData() bool {
	return t != Control
}

// CtyType returns the cty type used for values of this socket type. Control
// sockets have no value type and return cty.NilType.
func (t SocketType) CtyType() cty.Type {
	switch t {
	case Float, Integer:
		return cty.Number
	case Boolean:
		return cty.Bool
	case Vector:
		return VectorType
	default:
		return cty.NilType
	}
}

// ZeroValue returns the value an unlinked socket of this type holds when
// neither the definition nor the tree provides one.
func (t SocketType) ZeroValue() cty.Value {
	switch t {
	case Float, Integer:
		return cty.Zero
	case Boolean:
		return cty.False
	case Vector:
		return VectorVal(0, 0, 0)
	default:
		return cty.NilVal
	}
}

// VectorVal builds a vector value from its components.
func VectorVal(x, y, z float64) cty.Value {
	return cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(x),
		cty.NumberFloatVal(y),
		cty.NumberFloatVal(z),
	})
}

// NodeKind describes how a node takes part in compilation.
type NodeKind int

const (
	// FunctionNode outputs are pure functions of its data inputs.
	FunctionNode NodeKind = iota
	// PlaceholderNode outputs are only known once a particle batch is being
	// evaluated, for example the attributes of the particle itself.
	PlaceholderNode
	// ConsumerNode is an action or force node. Its data inputs are the
	// values that get compiled into a particle function.
	ConsumerNode
)

func (k NodeKind) String() string {
	switch k {
	case FunctionNode:
		return "function"
	case PlaceholderNode:
		return "placeholder"
	case ConsumerNode:
		return "consumer"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// SocketDefinition declares a single input or output socket of a node kind.
type SocketDefinition struct {
	Name string
	Type SocketType
	// Default is the value of an unlinked input. cty.NilVal selects the
	// type's zero value.
	Default cty.Value
}

// DefaultValue returns the value an unlinked input socket starts with.
func (s SocketDefinition) DefaultValue() cty.Value {
	if s.Default == cty.NilVal {
		return s.Type.ZeroValue()
	}
	return s.Default
}

// OutputDefinition declares an output socket. For function nodes, Function
// computes the output from the node's data inputs, passed positionally in
// declaration order.
type OutputDefinition struct {
	SocketDefinition
	Function *function.Function
}

// NodeDefinition is the registered description of a node kind.
type NodeDefinition struct {
	IDName      string
	Description string
	Kind        NodeKind
	Inputs      []SocketDefinition
	Outputs     []OutputDefinition
}

// Input looks up an input socket definition by name.
func (d *NodeDefinition) Input(name string) (SocketDefinition, bool) {
	for _, in := range d.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return SocketDefinition{}, false
}

// Output looks up an output socket definition by name.
func (d *NodeDefinition) Output(name string) (OutputDefinition, bool) {
	for _, out := range d.Outputs {
		if out.Name == name {
			return out, true
		}
	}
	return OutputDefinition{}, false
}

// DataInputs returns the input definitions that carry a value.
func (d *NodeDefinition) DataInputs() []SocketDefinition {
	var inputs []SocketDefinition
	for _, in := range d.Inputs {
		if in.Type.IsData() {
			inputs = append(inputs, in)
		}
	}
	return inputs
}

// VectorComponents extracts the components of a vector value.
func VectorComponents(v cty.Value) [3]float64 {
	var out [3]float64
	for i := range out {
		out[i], _ = v.Index(cty.NumberIntVal(int64(i))).AsBigFloat().Float64()
	}
	return out
}

// FloatValue extracts a float64 from a number value.
func FloatValue(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}
