// Package web holds the browser front ends served by the shop and social binaries.
package web

import (
	"embed"
	"io/fs"
)

//go:embed shop social
var files embed.FS

// Shop returns the storefront assets rooted at its index.html
func Shop() fs.FS {
	return sub("shop")
}

// Social returns the social feed assets rooted at its index.html
func Social() fs.FS {
	return sub("social")
}

func sub(dir string) fs.FS {
	assets, err := fs.Sub(files, dir)
	if err != nil {
		// dir is one of the embedded literals above
		panic(err)
	}
	return assets
}
