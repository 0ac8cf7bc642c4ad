package geo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Property is one attribute of a feature.
type Property struct {
	Key   string
	Value string
}

// Properties is an ordered string-keyed map of string values.
// JSON and YAML encoding keep insertion order.
type Properties []Property

// Get returns the value stored under key.
func (p Properties) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set stores value under key. An existing key keeps its position.
func (p *Properties) Set(key, value string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Key: key, Value: value})
}

// Keys returns the keys in order.
func (p Properties) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	copy(out, p)
	return out
}

// MarshalJSON writes the properties as a JSON object in order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping document order.
// Non-string values are kept as their raw JSON text.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	out := Properties{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("properties: value of %q: %w", key, err)
		}

		value := string(raw)
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			value = s
		}
		out.Set(key, value)
	}

	*p = out
	return nil
}

// MarshalYAML returns an ordered mapping node. Values are always tagged as strings.
func (p Properties) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node keeping document order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected mapping, got node kind %d", node.Kind)
	}

	out := Properties{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		out.Set(node.Content[i].Value, node.Content[i+1].Value)
	}

	*p = out
	return nil
}
