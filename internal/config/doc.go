// Package config defines the format-agnostic model of an authored node tree,
// along with the Loader interface that turns files into that model.
//
// The config.Model is the single source of truth for the vtree and engine
// packages. Concrete loaders, such as the HCL one, live in separate packages.
package config
