package toolbars

import (
	"embed"
	"io/fs"
)

//go:embed topics
var topicsFS embed.FS

// Topics returns the embedded help topics
func Topics() fs.FS {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		panic(err)
	}
	return sub
}
