package formkit

import (
	"io/fs"

	vanilla "github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the stylesheets and scripts the vanilla renderer
// links to. Mount them under vanilla.DefaultAssetPrefix:
//
//	mux.Handle("/assets/formkit/",
//	  http.StripPrefix("/assets/formkit/",
//	    http.FileServerFS(formkit.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
