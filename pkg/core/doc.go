// Package core wires configuration, manifest sources and the item registry
// into an App used by the command line.
//
// An App owns one toolbar registry seeded from configuration, a manifest
// source over the configured paths and an ItemRegistry that reports build
// warnings both to the log and to a collector, so commands can inspect the
// warnings of the latest build.
package core
