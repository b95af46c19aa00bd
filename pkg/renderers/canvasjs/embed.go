package canvasjs

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	pageTemplate     = "templates/page.tmpl"
	fragmentTemplate = "templates/fragment.tmpl"

	// ScriptAsset is the asset key resolved through the theme AssetURL.
	ScriptAsset = "canvasjs.min.js"
	// DefaultScriptURL is used when neither an option nor the theme provides one.
	DefaultScriptURL = "https://cdn.canvasjs.com/canvasjs.min.js"
	// ThemeToken names the theme token copied into the CanvasJS "theme" option.
	ThemeToken = "chart-theme"
)

// TemplatesFS exposes the embedded templates so callers can copy and override
// them through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
