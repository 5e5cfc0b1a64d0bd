package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrInvalidManifest marks a manifest that cannot be decoded or does not
// match the package schema.
var ErrInvalidManifest = errors.New("invalid manifest")

// lineEnding terminates an encoded manifest.
var lineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Entry is one key/value pair of a string map such as "dependencies".
type Entry struct {
	Key   string
	Value string
}

// Document is a JSON object whose key order survives a decode/encode cycle.
type Document struct {
	root *yaml.Node
}

// Parse decodes a JSON object. Anything that is not a JSON object is
// rejected with ErrInvalidManifest. Numbers keep their source spelling.
func Parse(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidManifest)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidManifest)
	}
	return &Document{root: root}, nil
}

// decodeNode reads one JSON value from dec and builds the matching node.
func decodeNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				value, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				set(m, key, value)
			}
			_, err := dec.Token()
			return m, err
		case '[':
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				seq.Content = append(seq.Content, item)
			}
			_, err := dec.Token()
			return seq, err
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return stringNode(v), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.root.Content)/2)
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		keys = append(keys, d.root.Content[i].Value)
	}
	return keys
}

// String returns the top-level string field key.
func (d *Document) String(key string) (string, bool) {
	v := lookup(d.root, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
		return "", false
	}
	return v.Value, true
}

// SetString sets a top-level string field. An existing key keeps its
// position; a new key is appended.
func (d *Document) SetString(key, value string) {
	set(d.root, key, stringNode(value))
}

// Entries returns the string entries of the object stored under section, in
// document order. A missing section yields nil.
func (d *Document) Entries(section string) []Entry {
	m := lookup(d.root, section)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	entries := make([]Entry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		entries = append(entries, Entry{Key: m.Content[i].Value, Value: m.Content[i+1].Value})
	}
	return entries
}

// SetEntry sets section[key] = value, creating the section object at the end
// of the document when it does not exist yet.
func (d *Document) SetEntry(section, key, value string) error {
	m := lookup(d.root, section)
	if m == nil {
		m = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		set(d.root, section, m)
	}
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %q is not an object", ErrInvalidManifest, section)
	}
	set(m, key, stringNode(value))
	return nil
}

// Encode renders the document as JSON with two-space indentation followed
// by the platform line ending.
func (d *Document) Encode() []byte {
	var b bytes.Buffer
	writeValue(&b, d.root, 0)
	b.WriteString(lineEnding)
	return b.Bytes()
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func set(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, stringNode(key), value)
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

func writeValue(b *bytes.Buffer, n *yaml.Node, depth int) {
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			indent(b, depth+1)
			writeString(b, n.Content[i].Value)
			b.WriteString(": ")
			writeValue(b, n.Content[i+1], depth+1)
			if i+2 < len(n.Content) {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte('}')
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range n.Content {
			indent(b, depth+1)
			writeValue(b, item, depth+1)
			if i+1 < len(n.Content) {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(']')
	case yaml.AliasNode:
		writeValue(b, n.Alias, depth)
	default:
		// Numbers, booleans and null keep their source spelling.
		if n.ShortTag() == "!!str" {
			writeString(b, n.Value)
			return
		}
		b.WriteString(n.Value)
	}
}

func writeString(b *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.WriteString(strings.TrimSuffix(tmp.String(), "\n"))
}

func indent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
