package app

import (
	"github.com/vk/chembatch/internal/registry"
	"github.com/vk/chembatch/modules/decay"
	"github.com/vk/chembatch/modules/inert"
)

// coreModules is the definitive list of engine backends compiled into
// the chembatch binary.
var coreModules = []registry.Module{
	&decay.Module{},
	&inert.Module{},
}
