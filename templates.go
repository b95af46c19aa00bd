package chartload

import (
	"io/fs"

	"github.com/goliatone/go-chartload/pkg/renderers/canvasjs"
)

// EmbeddedTemplates exposes the built-in CanvasJS page and fragment templates
// so callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	return canvasjs.TemplatesFS()
}
