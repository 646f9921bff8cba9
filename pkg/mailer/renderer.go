package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"
)

// Renderer turns a named template pair into a text body, an optional HTML
// body and the frontmatter metadata.
//
// For a template named "inquiry" it reads:
//
//	inquiry.txt   text/template body with YAML frontmatter (Subject, ...)
//	inquiry.html  optional html/template content fragment
//
// The HTML fragment is passed through the content filter, if any, and then
// placed into the layout as {{.Content}}.
type Renderer struct {
	fs     fs.FS
	filter func(string) string

	// Caches hold parsed templates only, never rendered output.
	textCache   map[string]*cachedTemplate
	htmlCache   map[string]*template.Template
	layoutCache map[string]*template.Template
	templateDir string
	layoutDir   string

	mu sync.RWMutex
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"

	// ContentFilter post-processes the rendered HTML fragment before it is
	// wrapped in the layout.
	ContentFilter func(string) string
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		filter:      opts.ContentFilter,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		textCache:   make(map[string]*cachedTemplate),
		htmlCache:   make(map[string]*template.Template),
		layoutCache: make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered bodies and extracted metadata.
type RenderResult struct {
	Metadata map[string]any
	HTML     string // Empty when the template has no HTML part
	Text     string
}

// Subject returns the frontmatter Subject value, if any.
func (r *RenderResult) Subject() string {
	s, _ := r.Metadata["Subject"].(string)
	return s
}

// Render executes the named template pair with data.
// An empty layout leaves the HTML fragment unwrapped.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	text, err := r.textTemplate(name)
	if err != nil {
		return nil, err
	}

	var textBuf bytes.Buffer
	if err := text.tmpl.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("%w: %s.txt: %v", ErrRenderFailed, name, err)
	}

	result := &RenderResult{Text: textBuf.String(), Metadata: text.metadata}

	content, err := r.htmlTemplate(name)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return result, nil
	}

	var contentBuf bytes.Buffer
	if err := content.Execute(&contentBuf, data); err != nil {
		return nil, fmt.Errorf("%w: %s.html: %v", ErrRenderFailed, name, err)
	}
	fragment := contentBuf.String()
	if r.filter != nil {
		fragment = r.filter(fragment)
	}

	if layout == "" {
		result.HTML = fragment
		return result, nil
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	layoutData := map[string]any{
		"Content":  template.HTML(fragment), //nolint:gosec // fragment comes from html/template
		"Metadata": text.metadata,
	}
	if err := layoutTmpl.Execute(&page, layoutData); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}
	result.HTML = page.String()

	return result, nil
}

// Preload parses the layout and every named template pair, so broken
// templates surface at start-up rather than on the first send.
func (r *Renderer) Preload(layout string, names ...string) error {
	var errs []error
	if layout != "" {
		if _, err := r.layout(layout); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range names {
		if _, err := r.textTemplate(name); err != nil {
			errs = append(errs, err)
		}
		if _, err := r.htmlTemplate(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Renderer) textTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.textCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.textCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name+".txt"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s.txt: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.txt: %v", ErrRenderFailed, name, err)
	}

	tmpl, err := texttemplate.New(name).Option("missingkey=error").Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.txt: %v", ErrRenderFailed, name, err)
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}
	r.textCache[name] = cached
	return cached, nil
}

// htmlTemplate returns nil without error when the template has no HTML part.
func (r *Renderer) htmlTemplate(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.htmlCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.htmlCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name+".html"))
	if errors.Is(err, fs.ErrNotExist) {
		r.htmlCache[name] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s.html: %v", ErrTemplateNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s.html: %v", ErrRenderFailed, name, err)
	}

	r.htmlCache[name] = tmpl
	return tmpl, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layoutCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layoutCache[name] = tmpl
	return tmpl, nil
}
