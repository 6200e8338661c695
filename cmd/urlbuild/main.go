package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/natserract/urlbuild/pkg/batch"
	"github.com/natserract/urlbuild/pkg/config"
	httputil "github.com/natserract/urlbuild/pkg/http"
	"github.com/natserract/urlbuild/pkg/logging"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type CLI struct {
	Build struct {
		Host   string   `optional:"" name:"host" help:"Host (and optional port) without a scheme, default: URLBUILD_HOST"`
		Scheme string   `optional:"" name:"scheme" help:"URL scheme, default: URLBUILD_SCHEME or https"`
		Path   string   `required:"" name:"path" help:"Absolute or relative path resolved against scheme://host"`
		Params []string `optional:"" short:"p" name:"param" help:"Query parameter as key=value, repeatable and applied in order"`
	} `cmd:"" help:"Build a single URL"`

	Batch struct {
		File string `arg:"" name:"file" help:"YAML file with a list of requests"`
	} `cmd:"" help:"Build every URL described in a YAML file"`

	Version struct {
	} `cmd:"" help:"Print the urlbuild version"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("urlbuild"),
		kong.Description("Builds absolute URLs from a host, a path and ordered query parameters."))
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	command := strings.Fields(kctx.Command())[0]
	if command == "version" {
		fmt.Fprintf(stdout, "urlbuild %v\n", version)
		fmt.Fprintf(stdout, "Revision %v, date: %v\n", commit, date)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	switch command {
	case "build":
		host := cli.Build.Host
		if host == "" {
			host = cfg.Host
		}
		scheme := cli.Build.Scheme
		if scheme == "" {
			scheme = cfg.Scheme
		}
		return buildOne(logger, stdout, host, scheme, cli.Build.Path, cli.Build.Params)
	case "batch":
		return buildBatch(ctx, cfg, logger, stdout, cli.Batch.File)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func buildOne(logger *zap.Logger, stdout io.Writer, host, scheme, path string, rawParams []string) error {
	params, err := parseParams(rawParams)
	if err != nil {
		return err
	}

	u, err := httputil.BuildURL(host, path, params, httputil.WithScheme(scheme))
	if err != nil {
		logger.Error("Failed to build URL",
			zap.String("host", host),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("failed to build URL: %w", err)
	}

	logger.Debug("Built URL", zap.String("url", u), zap.Int("params", params.Len()))
	fmt.Fprintln(stdout, u)
	return nil
}

func buildBatch(ctx context.Context, cfg *config.Config, logger *zap.Logger, stdout io.Writer, file string) error {
	requests, err := batch.LoadFile(file)
	if err != nil {
		logger.Error("Failed to load batch file", zap.String("file", file), zap.Error(err))
		return err
	}

	results, metrics := batch.NewBuilder(cfg, logger).Build(ctx, requests)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fmt.Fprintln(stdout, res.URL)
	}

	if metrics.Failed > 0 {
		return fmt.Errorf("%d of %d URLs failed to build", metrics.Failed, metrics.Total())
	}
	return nil
}

// parseParams splits each key=value on the first '='. A bare key gets an
// empty value.
func parseParams(raw []string) (httputil.Params, error) {
	var params httputil.Params
	for _, kv := range raw {
		key, value, _ := strings.Cut(kv, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid query parameter %q: missing key", kv)
		}
		params = params.Set(key, value)
	}
	return params, nil
}
