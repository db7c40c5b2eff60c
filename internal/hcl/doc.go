// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for finding and parsing tree files and for
// translating the decoded schema into the format-agnostic config model.
package hcl
