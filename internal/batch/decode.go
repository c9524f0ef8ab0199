package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Stdin is the input name that reads from standard input.
const Stdin = "-"

// ErrDecode wraps every failure to parse an input document.
var ErrDecode = errors.New("decode document")

// Decode parses r as YAML when name ends in .yaml or .yml and as JSON
// otherwise. JSON numbers are kept as json.Number. An empty body decodes to nil.
func Decode(name string, r io.Reader) (any, error) {
	var doc any

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
		}
		doc = stringKeys(doc)
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
		}
	}

	return doc, nil
}

// Load reads and decodes each named file, or stdin for Stdin.
func Load(names []string, stdin io.Reader) ([]Input, error) {
	inputs := make([]Input, 0, len(names))
	for _, name := range names {
		doc, err := loadOne(name, stdin)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Name: name, Doc: doc})
	}
	return inputs, nil
}

func loadOne(name string, stdin io.Reader) (any, error) {
	if name == Stdin {
		return Decode(name, stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	return Decode(name, f)
}

// stringKeys rewrites the map[any]any that YAML produces for mappings with
// non-string keys ("2024: annual") into map[string]any, at every depth.
func stringKeys(v any) any {
	switch value := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[cast.ToString(k)] = stringKeys(item)
		}
		return out
	case map[string]any:
		for k, item := range value {
			value[k] = stringKeys(item)
		}
		return value
	case []any:
		for i, item := range value {
			value[i] = stringKeys(item)
		}
		return value
	default:
		return v
	}
}
