// Package toolbar builds and serves the ordered item lists of each toolbar.
//
// Items are described by types.ItemDescriptor values. Build groups them by
// toolbar and places them one at a time:
//
//   - all left aligned items precede all right aligned items
//   - inside each alignment group items ascend strictly by index
//   - two items that want the same (alignment, index) slot conflict; a
//     fallback newcomer is dropped, otherwise the newcomer replaces the
//     item already in the slot
//
// Conflicts and descriptors that target an unknown toolbar are reported to
// a WarningSink and never abort a build.
//
// ItemRegistry caches the built Layout, building it lazily on first use,
// and can be invalidated when the descriptor source changes.
package toolbar
