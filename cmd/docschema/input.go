package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeInputs reads documents from r. JSON input is detected by a
// leading '{' or '['; anything else is read as YAML. Both formats may
// hold a single object, a list of objects, or a stream of either.
func decodeInputs(r io.Reader) ([]map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("no input documents")
	}

	if data[0] == '{' || data[0] == '[' {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeJSON(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	// Keep numbers exact until the schema decides their type.
	dec.UseNumber()

	var out []map[string]any
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("parse JSON input: %w", err)
		}
		docs, err := flatten(doc, len(out))
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}
}

func decodeYAML(data []byte) ([]map[string]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var out []map[string]any
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("parse YAML input: %w", err)
		}
		if doc == nil {
			continue
		}
		docs, err := flatten(doc, len(out))
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}
}

// flatten turns one decoded document into field maps. offset numbers
// the records for error messages.
func flatten(doc any, offset int) ([]map[string]any, error) {
	if m, ok := asObject(doc); ok {
		return []map[string]any{m}, nil
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("record %d: expected an object or a list of objects, got %T", offset, doc)
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		m, ok := asObject(item)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", offset+i, item)
		}
		out = append(out, m)
	}
	return out, nil
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
