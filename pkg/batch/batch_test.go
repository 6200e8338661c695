package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/natserract/urlbuild/pkg/config"
	httputil "github.com/natserract/urlbuild/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleYAML = `
requests:
  - host: api.myservice.com
    path: /v3/data
    params:
      user_id: "456"
      filter: active_only
      limit: 10
  - path: /p
    params:
      q: a b
  - host: localhost:8080
    scheme: http
    path: /health
`

func TestParse(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		requests, err := Parse([]byte(sampleYAML))
		require.NoError(t, err)
		require.Len(t, requests, 3)

		assert.Equal(t, Request{
			Host: "api.myservice.com",
			Path: "/v3/data",
			Params: httputil.Params{
				{Key: "user_id", Value: "456"},
				{Key: "filter", Value: "active_only"},
				{Key: "limit", Value: 10},
			},
		}, requests[0])
		assert.Equal(t, "", requests[1].Host)
		assert.Equal(t, "http", requests[2].Scheme)
		assert.Nil(t, requests[2].Params)
	})
	t.Run("sequence", func(t *testing.T) {
		requests, err := Parse([]byte("- host: example.com\n  path: /a\n- host: example.com\n  path: /b\n"))
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, "/b", requests[1].Path)
	})
	t.Run("key order kept", func(t *testing.T) {
		requests, err := Parse([]byte("- path: /p\n  params:\n    z: 1\n    a: 2\n    m: 3\n"))
		require.NoError(t, err)
		keys := make([]string, 0, 3)
		for _, p := range requests[0].Params {
			keys = append(keys, p.Key)
		}
		assert.Equal(t, []string{"z", "a", "m"}, keys)
	})
	t.Run("empty", func(t *testing.T) {
		requests, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, requests)
	})
	t.Run("errors", func(t *testing.T) {
		cases := map[string]string{
			"scalar root":      "just a string",
			"params not a map": "- path: /p\n  params: [1, 2]\n",
			"param not scalar": "- path: /p\n  params:\n    ids: [1, 2]\n",
			"null param":       "- path: /p\n  params:\n    id: null\n",
			"malformed":        "- path: [\n",
		}
		for name, doc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := Parse([]byte(doc))
				assert.Error(t, err)
			})
		}
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	requests, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, requests, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func newTestBuilder(concurrency int) *Builder {
	return NewBuilder(&config.Config{
		Scheme:           "https",
		Host:             "example.com",
		BatchConcurrency: concurrency,
	}, zap.NewNop())
}

func TestBuilderBuild(t *testing.T) {
	requests, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	requests = append(requests, Request{Host: "exa mple.com", Path: "/bad"})

	results, metrics := newTestBuilder(2).Build(context.Background(), requests)
	require.Len(t, results, 4)

	assert.Equal(t, "https://api.myservice.com/v3/data?user_id=456&filter=active_only&limit=10", results[0].URL)
	assert.Equal(t, "https://example.com/p?q=a+b", results[1].URL)
	assert.Equal(t, "http://localhost:8080/health", results[2].URL)
	assert.True(t, errors.Is(results[3].Err, httputil.ErrInvalidURL))

	assert.Equal(t, Metrics{Succeeded: 3, Failed: 1}, metrics)
	assert.Equal(t, 4, metrics.Total())
}

func TestBuilderKeepsOrder(t *testing.T) {
	requests := make([]Request, 100)
	for i := range requests {
		requests[i] = Request{Path: fmt.Sprintf("/items/%d", i)}
	}

	results, metrics := newTestBuilder(8).Build(context.Background(), requests)
	require.Equal(t, 100, metrics.Succeeded)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("https://example.com/items/%d", i), res.URL)
	}
}

func TestBuilderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, metrics := newTestBuilder(1).Build(ctx, []Request{{Path: "/a"}})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Equal(t, 1, metrics.Failed)
}
