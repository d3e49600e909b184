// Package output renders toolbar layouts and build warnings.
//
// Text output is styled with lipgloss using semantic styles defined in the
// embedded styles.yaml; colour is dropped for plain text and when NO_COLOR
// is set or stdout is not a terminal. Structured formats (json, toml, yaml)
// are produced from plain document types so they can be diffed and, for
// manifests, loaded back.
package output
