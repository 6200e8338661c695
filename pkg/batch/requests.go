package batch

import (
	"fmt"
	"os"

	httputil "github.com/natserract/urlbuild/pkg/http"
	"gopkg.in/yaml.v3"
)

// Request describes one URL to build. Empty Host and Scheme fall back to the
// Builder defaults.
type Request struct {
	Host   string
	Path   string
	Scheme string
	Params httputil.Params
}

type requestYAML struct {
	Host   string    `yaml:"host"`
	Path   string    `yaml:"path"`
	Scheme string    `yaml:"scheme"`
	Params yaml.Node `yaml:"params"`
}

// LoadFile reads requests from a YAML file. See Parse for the format.
func LoadFile(path string) ([]Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(data)
}

// Parse decodes either a top-level sequence of requests or a mapping with a
// "requests" sequence. The params mapping of each request keeps the key order
// written in the document.
func Parse(data []byte) ([]Request, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	var raw []requestYAML
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode requests: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Requests []requestYAML `yaml:"requests"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode requests: %w", err)
		}
		raw = wrapped.Requests
	default:
		return nil, fmt.Errorf("batch file must be a sequence or a mapping with requests, got line %d", root.Line)
	}

	requests := make([]Request, 0, len(raw))
	for i, r := range raw {
		params, err := decodeParams(&r.Params)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		requests = append(requests, Request{
			Host:   r.Host,
			Path:   r.Path,
			Scheme: r.Scheme,
			Params: params,
		})
	}
	return requests, nil
}

func decodeParams(node *yaml.Node) (httputil.Params, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("params must be a mapping (line %d)", node.Line)
	}

	var params httputil.Params
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode || valueNode.Tag == "!!null" {
			return nil, fmt.Errorf("param %q must be a scalar (line %d)", keyNode.Value, valueNode.Line)
		}
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("param %q: %w", keyNode.Value, err)
		}
		params = params.Set(keyNode.Value, value)
	}
	return params, nil
}
