package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lingo/pkg/fence"
	"github.com/dmitrymomot/lingo/pkg/richtext"
)

// Markers understood in JSON documents. An object holding exactly one marker
// key becomes the corresponding leaf:
//
//	{"$fence": {"a": 1}}        // fence.New(map[string]any{"a": 1})
//	{"$md": "**bold**"}         // richtext.Markdown("**bold**")
//	{"$html": "<em>hi</em>"}    // richtext.HTML("<em>hi</em>")
const (
	MarkerFence    = "$fence"
	MarkerMarkdown = "$md"
	MarkerHTML     = "$html"
)

// YAML tags with the same meaning as the JSON markers.
const (
	TagFence    = "!fence"
	TagMarkdown = "!md"
	TagHTML     = "!html"
)

// Decoder turns a document into a namespace tree.
type Decoder func(data []byte) (map[string]any, error)

// DecodeJSON decodes a JSON object, resolving marker objects.
func DecodeJSON(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrDecode)
	}

	out, err := fromJSON(raw)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is not an object", ErrDecode)
	}
	return m, nil
}

func fromJSON(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			for k, inner := range t {
				if leaf, ok, err := markerLeaf(k, inner); ok || err != nil {
					return leaf, err
				}
			}
		}
		for k, child := range t {
			c, err := fromJSON(child)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case []any:
		for i, child := range t {
			c, err := fromJSON(child)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	}
	return v, nil
}

func markerLeaf(key string, inner any) (any, bool, error) {
	switch key {
	case MarkerFence:
		v, err := fromJSON(inner)
		if err != nil {
			return nil, true, err
		}
		return fence.New(v), true, nil
	case MarkerMarkdown, MarkerHTML:
		s, ok := inner.(string)
		if !ok {
			return nil, true, fmt.Errorf("%w: %s expects a string, got %T", ErrDecode, key, inner)
		}
		if key == MarkerHTML {
			return richtext.HTML(s), true, nil
		}
		n, err := richtext.Markdown(s)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return n, true, nil
	}
	return nil, false, nil
}

// DecodeYAML decodes a YAML mapping. Nodes tagged !fence, !md or !html become
// fences and rich text nodes.
func DecodeYAML(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if doc.Kind == 0 {
		return map[string]any{}, nil
	}

	d := &yamlDecoder{active: make(map[*yaml.Node]bool)}
	v, err := d.node(&doc)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrDecode)
	}
	return m, nil
}

type yamlDecoder struct {
	// anchors being expanded; an alias back into one is a cycle
	active map[*yaml.Node]bool
}

func (d *yamlDecoder) node(n *yaml.Node) (any, error) {
	switch n.Tag {
	case TagFence:
		inner := *n
		inner.Tag = ""
		v, err := d.node(&inner)
		if err != nil {
			return nil, err
		}
		return fence.New(v), nil
	case TagMarkdown, TagHTML:
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: %s expects a scalar", ErrDecode, n.Line, n.Tag)
		}
		if n.Tag == TagHTML {
			return richtext.HTML(n.Value), nil
		}
		md, err := richtext.Markdown(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDecode, n.Line, err)
		}
		return md, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return map[string]any{}, nil
		}
		return d.node(n.Content[0])
	case yaml.MappingNode:
		return d.mapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.node(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		if d.active[n.Alias] {
			return nil, fmt.Errorf("%w: line %d: alias %q refers to itself", ErrDecode, n.Line, n.Value)
		}
		d.active[n.Alias] = true
		defer delete(d.active, n.Alias)
		return d.node(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDecode, n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: line %d: unexpected node kind %d", ErrDecode, n.Line, n.Kind)
}

func (d *yamlDecoder) mapping(n *yaml.Node) (any, error) {
	if n.Anchor != "" {
		d.active[n] = true
		defer delete(d.active, n)
	}

	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			if err := d.mergeKey(out, v); err != nil {
				return nil, err
			}
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: mapping keys must be scalars", ErrDecode, k.Line)
		}
		val, err := d.node(v)
		if err != nil {
			return nil, err
		}
		out[k.Value] = val
	}
	return out, nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" &&
		(k.Tag == "" || k.Tag == "!!merge" || k.Tag == "tag:yaml.org,2002:merge")
}

// mergeKey applies a "<<" entry. Explicit keys win over merged ones no
// matter where they appear.
func (d *yamlDecoder) mergeKey(out map[string]any, v *yaml.Node) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		m, err := d.node(src)
		if err != nil {
			return err
		}
		mm, ok := m.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: line %d: merge key expects a mapping", ErrDecode, src.Line)
		}
		for k, val := range mm {
			if _, exists := out[k]; !exists {
				out[k] = val
			}
		}
	}
	return nil
}

// EncodeJSON encodes a namespace tree so DecodeJSON restores it: fences and
// rich text become marker objects.
func EncodeJSON(tree map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toJSON(tree)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

func toJSON(v any) any {
	switch t := v.(type) {
	case *fence.Fence:
		return map[string]any{MarkerFence: toJSON(t.Value())}
	case *richtext.Node:
		switch t.Format() {
		case richtext.FormatMarkdown:
			return map[string]any{MarkerMarkdown: t.Source()}
		case richtext.FormatHTML:
			return map[string]any{MarkerHTML: t.Source()}
		}
		return t.PlainText()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, c := range t {
			out[k] = toJSON(c)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = toJSON(c)
		}
		return out
	}
	return v
}
