// Package hcl provides the concrete HCL implementation of the
// configuration Loader interface defined in the `config` package. It is
// responsible for file parsing, HCL-to-model translation, and
// CTY-to-Go data binding for the name-indexed species parameters.
package hcl
