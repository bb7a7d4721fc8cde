// Package views holds the console's HTML templates and static assets,
// embedded into the binary.
package views

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var FS embed.FS

// Static is the tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
