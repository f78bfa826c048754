package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// EmptyPlaceholder is the body used when an article has no content.
const EmptyPlaceholder = `<p class="article-empty">Conteúdo indisponível.</p>`

// Engine names accepted by NewEngine and the render.engine option.
const (
	EngineGoldmark = "goldmark"
	EngineBasic    = "basic"
)

// Engine converts a non-empty article body into HTML.
type Engine interface {
	Name() string
	Convert(content string) (string, error)
}

// Fragment is a rendered article body and its derived description.
type Fragment struct {
	HTML        string `json:"html"`
	Description string `json:"description"`
}

// Options configures a Renderer.
type Options struct {
	// Engine is one of EngineGoldmark or EngineBasic.
	Engine string
	// TrustHTML emits raw HTML from article bodies verbatim. When false raw
	// HTML is sanitized.
	TrustHTML bool
}

// Renderer turns raw article content into a Fragment using the engine
// selected at construction time.
type Renderer struct {
	engine    Engine
	fallback  Engine
	trustHTML bool
	onError   func(engine string, err error)
}

// New builds a Renderer for opts. Unknown engine names are an error.
func New(opts Options) (*Renderer, error) {
	engine, err := NewEngine(opts.Engine, opts.TrustHTML)
	if err != nil {
		return nil, err
	}
	return &Renderer{engine: engine, fallback: NewBasicEngine(opts.TrustHTML), trustHTML: opts.TrustHTML}, nil
}

// NewEngine returns the engine registered under name.
func NewEngine(name string, trustHTML bool) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngineGoldmark, "":
		return NewGoldmarkEngine(trustHTML), nil
	case EngineBasic:
		return NewBasicEngine(trustHTML), nil
	default:
		return nil, fmt.Errorf("unknown render engine %q (want %s|%s)", name, EngineGoldmark, EngineBasic)
	}
}

// OnEngineError registers a hook called when the primary engine fails and
// the basic engine is used instead.
func (r *Renderer) OnEngineError(fn func(engine string, err error)) { r.onError = fn }

// EngineName reports the primary engine in use.
func (r *Renderer) EngineName() string { return r.engine.Name() }

// Fingerprint identifies every renderer setting that changes output.
func (r *Renderer) Fingerprint() string {
	return r.engine.Name() + ";trust_html=" + strconv.FormatBool(r.trustHTML)
}

// Render converts content into a Fragment. It never fails: empty content
// yields the placeholder and engine errors degrade to the basic engine.
func (r *Renderer) Render(content string) Fragment {
	if strings.TrimSpace(content) == "" {
		return Fragment{HTML: EmptyPlaceholder}
	}
	html, err := r.engine.Convert(content)
	if err != nil {
		if r.onError != nil {
			r.onError(r.engine.Name(), err)
		}
		html, _ = r.fallback.Convert(content)
	}
	return Fragment{HTML: html, Description: Describe(html)}
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// LooksLikeHTML reports whether content already contains markup.
func LooksLikeHTML(content string) bool {
	return htmlTagRe.MatchString(strings.TrimSpace(content))
}
