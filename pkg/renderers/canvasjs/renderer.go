package canvasjs

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/render"
	rendertemplate "github.com/goliatone/go-chartload/pkg/render/template"
	"github.com/goliatone/go-chartload/pkg/render/template/gotemplate"
)

// Name is the registry name of this renderer.
const Name = "canvasjs"

const defaultStyle = "height: 370px; width: 100%;"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	scriptURL        string
	fragment         bool
	style            string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/page.tmpl and templates/fragment.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved go-theme configuration: CSS variables style the
// container, the AssetURL resolver locates the CanvasJS script and the
// "chart-theme" token becomes the default CanvasJS theme.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithScriptURL pins the CanvasJS script location.
func WithScriptURL(url string) Option {
	return func(cfg *config) {
		cfg.scriptURL = strings.TrimSpace(url)
	}
}

// WithFragment renders only the container element and bootstrap script,
// for embedding into an existing page.
func WithFragment() Option {
	return func(cfg *config) {
		cfg.fragment = true
	}
}

// WithContainerStyle replaces the inline style given to the container.
func WithContainerStyle(style string) Option {
	return func(cfg *config) {
		cfg.style = strings.TrimSpace(style)
	}
}

// Renderer writes HTML that mounts a CanvasJS chart into the container.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	scriptURL string
	fragment  bool
	style     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), style: defaultStyle}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("canvasjs renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     cfg.theme,
		scriptURL: resolveScriptURL(cfg.scriptURL, cfg.theme),
		fragment:  cfg.fragment,
		style:     cfg.style,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the chart markup to container.Writer.
func (r *Renderer) Render(ctx context.Context, container render.Container, payload chart.Payload) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := container.Validate(); err != nil {
		return err
	}
	if r.templates == nil {
		return fmt.Errorf("canvasjs renderer: template renderer is nil")
	}

	configJS, err := Literal(r.chartConfig(payload))
	if err != nil {
		return fmt.Errorf("canvasjs renderer: %w", err)
	}
	containerJS, err := json.Marshal(container.ID)
	if err != nil {
		return fmt.Errorf("canvasjs renderer: encode container id: %w", err)
	}

	data := map[string]any{
		"container_id": container.ID,
		"container_js": string(containerJS),
		"config_js":    configJS,
		"style":        r.containerStyle(),
	}

	if r.fragment {
		if _, err := r.templates.RenderTemplate(fragmentTemplate, data, container.Writer); err != nil {
			return fmt.Errorf("canvasjs renderer: render fragment: %w", err)
		}
		return nil
	}

	fragment, err := r.templates.RenderTemplate(fragmentTemplate, data)
	if err != nil {
		return fmt.Errorf("canvasjs renderer: render fragment: %w", err)
	}

	page := map[string]any{
		"title":      sanitizeTitle(payload.Title()),
		"script_url": r.scriptURL,
		"fragment":   fragment,
	}
	if r.theme != nil {
		page["theme_name"] = r.theme.Theme
		page["theme_variant"] = r.theme.Variant
	}
	if _, err := r.templates.RenderTemplate(pageTemplate, page, container.Writer); err != nil {
		return fmt.Errorf("canvasjs renderer: render page: %w", err)
	}
	return nil
}

// chartConfig returns payload with the theme default applied. The payload
// itself is never mutated.
func (r *Renderer) chartConfig(payload chart.Payload) chart.Payload {
	token := ""
	if r.theme != nil {
		token = strings.TrimSpace(r.theme.Tokens[ThemeToken])
	}
	if token == "" {
		return payload
	}
	if _, ok := payload["theme"]; ok {
		return payload
	}
	out := make(chart.Payload, len(payload)+1)
	for key, value := range payload {
		out[key] = value
	}
	out["theme"] = token
	return out
}

func (r *Renderer) containerStyle() string {
	parts := []string{}
	if r.style != "" {
		parts = append(parts, r.style)
	}
	if r.theme != nil && len(r.theme.CSSVars) > 0 {
		keys := make([]string, 0, len(r.theme.CSSVars))
		for key := range r.theme.CSSVars {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s;", key, r.theme.CSSVars[key]))
		}
	}
	return strings.Join(parts, " ")
}

func resolveScriptURL(explicit string, cfg *theme.RendererConfig) string {
	if explicit != "" {
		return explicit
	}
	if cfg != nil && cfg.AssetURL != nil {
		if url := strings.TrimSpace(cfg.AssetURL(ScriptAsset)); url != "" {
			return url
		}
	}
	return DefaultScriptURL
}

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

// sanitizeTitle strips markup from chart titles. The result is already HTML
// escaped.
func sanitizeTitle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Chart"
	}
	titlePolicyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
	})
	cleaned := strings.TrimSpace(titlePolicy.Sanitize(trimmed))
	if cleaned == "" {
		return "Chart"
	}
	return cleaned
}
