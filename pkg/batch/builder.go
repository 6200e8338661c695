package batch

import (
	"context"

	"github.com/natserract/urlbuild/pkg/config"
	httputil "github.com/natserract/urlbuild/pkg/http"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"
)

// Result is the outcome of building a single Request.
type Result struct {
	Request Request
	URL     string
	Err     error
}

// Metrics counts the outcome of a batch.
type Metrics struct {
	Succeeded int
	Failed    int
}

func (m Metrics) Total() int {
	return m.Succeeded + m.Failed
}

// Builder builds many URLs concurrently.
type Builder struct {
	defaultHost   string
	defaultScheme string
	concurrency   int
	logger        *zap.Logger
}

// NewBuilder creates a Builder using the host, scheme and concurrency from cfg.
func NewBuilder(cfg *config.Config, logger *zap.Logger) *Builder {
	concurrency := cfg.BatchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Builder{
		defaultHost:   cfg.Host,
		defaultScheme: cfg.Scheme,
		concurrency:   concurrency,
		logger:        logger,
	}
}

// Build returns one Result per request, in input order. Requests not yet
// started when ctx is cancelled fail with ctx.Err().
func (b *Builder) Build(ctx context.Context, requests []Request) ([]Result, Metrics) {
	b.logger.Info("Building batch",
		zap.Int("requests", len(requests)),
		zap.Int("concurrency", b.concurrency))

	mapper := iter.Mapper[Request, Result]{MaxGoroutines: b.concurrency}
	results := mapper.Map(requests, func(r *Request) Result {
		return b.buildOne(ctx, *r)
	})

	var metrics Metrics
	for i, res := range results {
		if res.Err != nil {
			metrics.Failed++
			b.logger.Warn("Failed to build URL",
				zap.Int("index", i),
				zap.String("host", res.Request.Host),
				zap.String("path", res.Request.Path),
				zap.Error(res.Err))
			continue
		}
		metrics.Succeeded++
	}

	b.logger.Info("Batch complete",
		zap.Int("succeeded", metrics.Succeeded),
		zap.Int("failed", metrics.Failed))

	return results, metrics
}

func (b *Builder) buildOne(ctx context.Context, r Request) Result {
	if r.Host == "" {
		r.Host = b.defaultHost
	}
	if r.Scheme == "" {
		r.Scheme = b.defaultScheme
	}
	if err := ctx.Err(); err != nil {
		return Result{Request: r, Err: err}
	}

	u, err := httputil.BuildURL(r.Host, r.Path, r.Params, httputil.WithScheme(r.Scheme))
	if err != nil {
		return Result{Request: r, Err: err}
	}
	b.logger.Debug("Built URL", zap.String("url", u))
	return Result{Request: r, URL: u}
}
