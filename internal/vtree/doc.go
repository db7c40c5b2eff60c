// Package vtree is a read-only view over an authored node tree. A Tree is
// built once from a config.Model, validated against the node registry, and
// never changes afterwards; the compilation stages borrow it for as long as
// they need.
package vtree
