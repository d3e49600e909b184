// Package registry provides a generic, thread-safe, name-keyed registry.
// toolbars uses it to hold the set of known toolbars that item descriptors
// may target.
package registry
