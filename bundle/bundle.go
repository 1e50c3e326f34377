// Package bundle embeds the launcher's resources: the manifest, the version
// files, the scripts and the assets they extract.
package bundle

import (
	"embed"
	"io/fs"
)

//go:embed files
var files embed.FS

// FS returns the bundled resources rooted at the resource names.
func FS() fs.FS {
	sub, err := fs.Sub(files, "files")
	if err != nil {
		panic(err)
	}
	return sub
}
