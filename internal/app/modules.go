package app

import (
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/modules/actions"
	"github.com/vk/particlefn/modules/collisioninfo"
	"github.com/vk/particlefn/modules/events"
	"github.com/vk/particlefn/modules/floatmath"
	"github.com/vk/particlefn/modules/forces"
	"github.com/vk/particlefn/modules/particleinfo"
	"github.com/vk/particlefn/modules/values"
	"github.com/vk/particlefn/modules/vectormath"
)

// coreModules is the definitive list of all node kinds that are compiled
// into the particlefn binary.
var coreModules = []registry.Module{
	&particleinfo.Module{},
	&collisioninfo.Module{},
	&values.Module{},
	&floatmath.Module{},
	&vectormath.Module{},
	&forces.Module{},
	&events.Module{},
	&actions.Module{},
}

// CoreModules returns the built-in modules.
func CoreModules() []registry.Module {
	return append([]registry.Module(nil), coreModules...)
}
