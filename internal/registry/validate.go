package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// ValidateRegistry checks every node definition for internal consistency:
// unique socket names, socket defaults matching their types, and function
// outputs whose signatures match the node's data inputs.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, idname := range r.IDNames() {
		def := r.definitions[idname]
		errs = append(errs, validateDefinition(def)...)
	}

	if len(errs) > 0 {
		return errors.New("registry validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}
	logger.Debug("Registry validation complete.", "node_kinds", r.Len())
	return nil
}

func validateDefinition(def *NodeDefinition) []string {
	var errs []string

	seen := make(map[string]struct{})
	for _, in := range def.Inputs {
		if _, dup := seen[in.Name]; dup {
			errs = append(errs, fmt.Sprintf("node '%s': duplicate input socket '%s'", def.IDName, in.Name))
		}
		seen[in.Name] = struct{}{}
		if in.Default != cty.NilVal && in.Type.IsData() && !in.Default.Type().Equals(in.Type.CtyType()) {
			errs = append(errs, fmt.Sprintf("node '%s': default of input '%s' is %s, want %s", def.IDName, in.Name, in.Default.Type().FriendlyName(), in.Type))
		}
	}

	seen = make(map[string]struct{})
	for _, out := range def.Outputs {
		if _, dup := seen[out.Name]; dup {
			errs = append(errs, fmt.Sprintf("node '%s': duplicate output socket '%s'", def.IDName, out.Name))
		}
		seen[out.Name] = struct{}{}
	}

	switch def.Kind {
	case FunctionNode:
		dataInputs := def.DataInputs()
		for _, out := range def.Outputs {
			if out.Function == nil {
				errs = append(errs, fmt.Sprintf("node '%s': output '%s' has no function", def.IDName, out.Name))
				continue
			}
			params := out.Function.Params()
			if out.Function.VarParam() == nil && len(params) != len(dataInputs) {
				errs = append(errs, fmt.Sprintf("node '%s': function of output '%s' takes %d arguments, node has %d data inputs", def.IDName, out.Name, len(params), len(dataInputs)))
			}
		}
	case PlaceholderNode:
		if len(def.DataInputs()) > 0 {
			errs = append(errs, fmt.Sprintf("node '%s': placeholder nodes cannot have data inputs", def.IDName))
		}
		for _, out := range def.Outputs {
			if out.Function != nil {
				errs = append(errs, fmt.Sprintf("node '%s': placeholder output '%s' must not have a function", def.IDName, out.Name))
			}
		}
	case ConsumerNode:
		for _, out := range def.Outputs {
			if out.Type.IsData() {
				errs = append(errs, fmt.Sprintf("node '%s': consumer output '%s' must be a control socket", def.IDName, out.Name))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("node '%s': unknown node kind %s", def.IDName, def.Kind))
	}
	return errs
}
