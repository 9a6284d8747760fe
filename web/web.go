// Package web serves the embedded contact page. The markup and scripts
// live under static/ and are compiled into the binary, so the API can be
// deployed as a single artifact that also hosts the form.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// FileServer returns a handler that serves the embedded site. index.html
// is served at the root through the usual http.FileServer behavior.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
