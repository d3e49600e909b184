// Package descriptors supplies item descriptors to the toolbar registry.
//
// A manifest declares toolbars and items. TOML and YAML manifests share one
// schema:
//
//	[[toolbar]]
//	key = "inspector"
//	title = "Inspector"
//
//	[[item]]
//	id = "LockButton"
//	toolbar = "inspector"
//	align = "right"
//	index = 10
//	fallback = false
//
// XML manifests nest items under their toolbar:
//
//	<toolbars>
//	  <toolbar key="inspector" title="Inspector">
//	    <item id="LockButton" align="right" index="10"/>
//	  </toolbar>
//	</toolbars>
//
// Files are read in the order given and items keep declaration order, so a
// fixed file list always yields the same descriptor sequence.
package descriptors
