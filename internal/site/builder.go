// Package site turns the article list into standalone HTML pages.
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/db"
	"github.com/mithrel/blogtech/internal/logger"
	"github.com/mithrel/blogtech/internal/page"
	"github.com/mithrel/blogtech/internal/render"
	"github.com/mithrel/blogtech/pkg/api"
)

// Options controls a build run.
type Options struct {
	OutputDir     string
	Workers       int
	FailFast      bool
	IncludeDrafts bool
	Incremental   bool
	Force         bool
}

// Status is the per-record result of a build.
type Status string

const (
	StatusBuilt   Status = "built"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome describes what happened to one input record.
type Outcome struct {
	Index  int
	ID     int
	Slug   string
	Status Status
	Path   string
	Reason string
	Err    error
}

// Result collects every outcome in input order.
type Result struct {
	Outcomes []Outcome
	Duration time.Duration
}

func (r Result) count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

func (r Result) Built() int   { return r.count(StatusBuilt) }
func (r Result) Skipped() int { return r.count(StatusSkipped) }
func (r Result) Failed() int  { return r.count(StatusFailed) }

// Err joins the errors of all failed records, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed && o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Builder renders and writes article pages. Manifest may be nil, which
// disables incremental skipping.
type Builder struct {
	renderer  *render.Renderer
	assembler *page.Assembler
	manifest  db.Manifest
	log       *logger.Logger
	opts      Options
	settings  string
}

// New returns a Builder.
func New(r *render.Renderer, a *page.Assembler, m db.Manifest, log *logger.Logger, opts Options) *Builder {
	if log == nil {
		log = logger.Discard()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "posts"
	}
	r.OnEngineError(func(name string, err error) {
		log.EngineFallback(name, err.Error())
	})
	return &Builder{
		renderer:  r,
		assembler: a,
		manifest:  m,
		log:       log,
		opts:      opts,
		settings:  r.Fingerprint() + ";page=" + a.Fingerprint(),
	}
}

// WithForce returns a copy of b that rebuilds every record.
func (b *Builder) WithForce(force bool) *Builder {
	nb := *b
	nb.opts.Force = force
	return &nb
}

// WithFailFast returns a copy of b with fail-fast toggled.
func (b *Builder) WithFailFast(ff bool) *Builder {
	nb := *b
	nb.opts.FailFast = ff
	return &nb
}

// WithDrafts returns a copy of b that also builds drafts.
func (b *Builder) WithDrafts(include bool) *Builder {
	nb := *b
	nb.opts.IncludeDrafts = include
	return &nb
}

// OutputDir is where pages are written.
func (b *Builder) OutputDir() string { return b.opts.OutputDir }

// Build processes every record concurrently. Failures are recorded per
// record; the returned error is non-nil only when the build was aborted
// (fail-fast, cancellation, or an unusable output directory).
func (b *Builder) Build(ctx context.Context, list []api.Article) (Result, error) {
	start := time.Now()
	res := Result{Outcomes: make([]Outcome, len(list))}

	if err := os.MkdirAll(b.opts.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	engine := b.renderer.EngineName()
	if engine == render.EngineBasic {
		b.log.EngineFallback(engine, "configured engine")
	}
	b.log.BuildStarted(len(list), engine, b.opts.OutputDir)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)

	seen := make(map[string]int, len(list))
	for i, a := range list {
		res.Outcomes[i] = Outcome{Index: i, ID: a.ID, Slug: a.CleanSlug()}
		if gctx.Err() != nil {
			res.Outcomes[i].Status = StatusSkipped
			res.Outcomes[i].Reason = "aborted"
			continue
		}
		if err := articles.Validate(i, a); err != nil {
			b.fail(&res.Outcomes[i], err)
			if b.opts.FailFast {
				g.Go(func() error { return err })
			}
			continue
		}
		if !a.Published() && !b.opts.IncludeDrafts {
			res.Outcomes[i].Status = StatusSkipped
			res.Outcomes[i].Reason = "not published"
			b.log.ArticleSkipped(a.CleanSlug(), res.Outcomes[i].Reason)
			continue
		}
		if first, dup := seen[a.CleanSlug()]; dup {
			err := &articles.ShapeError{Index: i, ID: a.ID, Reason: fmt.Sprintf("duplicate slug %q (first at #%d)", a.CleanSlug(), first)}
			b.fail(&res.Outcomes[i], err)
			if b.opts.FailFast {
				g.Go(func() error { return err })
			}
			continue
		}
		seen[a.CleanSlug()] = i

		out := &res.Outcomes[i]
		g.Go(func() error {
			b.buildOne(gctx, a, out)
			if out.Status == StatusFailed && b.opts.FailFast {
				return out.Err
			}
			return nil
		})
	}

	err := g.Wait()
	res.Duration = time.Since(start)
	b.log.BuildCompleted(res.Built(), res.Skipped(), res.Failed(), res.Duration)
	if err != nil {
		return res, err
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, nil
}

func (b *Builder) buildOne(ctx context.Context, a api.Article, out *Outcome) {
	if err := ctx.Err(); err != nil {
		out.Status = StatusSkipped
		out.Reason = "aborted"
		return
	}
	path := filepath.Join(b.opts.OutputDir, a.FileName())
	out.Path = path

	rec := db.Record{
		Slug:   a.CleanSlug(),
		Hash:   a.Hash(),
		Engine:   b.renderer.EngineName(),
		Settings: b.settings,
		Year:     b.assembler.Year(),
		Output:   path,
	}
	if b.unchanged(ctx, rec) {
		out.Status = StatusSkipped
		out.Reason = "unchanged"
		b.log.ArticleSkipped(rec.Slug, out.Reason)
		return
	}

	frag := b.renderer.Render(a.Content)
	doc := b.assembler.Assemble(a, frag.HTML, frag.Description)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		b.fail(out, fmt.Errorf("write %s: %w", path, err))
		return
	}

	if b.opts.Incremental && b.manifest != nil {
		rec.BuiltAt = time.Now()
		if err := b.manifest.Put(ctx, rec); err != nil {
			b.log.Warn("manifest update failed", "slug", rec.Slug, "error", err)
		}
	}
	out.Status = StatusBuilt
	b.log.ArticleBuilt(rec.Slug, path)
}

func (b *Builder) unchanged(ctx context.Context, rec db.Record) bool {
	if !b.opts.Incremental || b.opts.Force || b.manifest == nil {
		return false
	}
	prev, err := b.manifest.Get(ctx, rec.Slug)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			b.log.Warn("manifest lookup failed", "slug", rec.Slug, "error", err)
		}
		return false
	}
	if prev.Hash != rec.Hash || prev.Engine != rec.Engine || prev.Settings != rec.Settings ||
		prev.Year != rec.Year || prev.Output != rec.Output {
		return false
	}
	_, err = os.Stat(rec.Output)
	return err == nil
}

func (b *Builder) fail(out *Outcome, err error) {
	out.Status = StatusFailed
	out.Err = err
	out.Reason = err.Error()
	b.log.ArticleFailed(out.Index, out.Slug, err)
}
