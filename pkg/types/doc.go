// Package types defines the core value types shared across toolbars.
// This includes the ItemDescriptor that describes a single toolbar item,
// the Alignment enum, and the Toolbar declaration.
package types
