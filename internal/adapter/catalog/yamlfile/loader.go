// Package yamlfile reads and writes idle catalogs as YAML documents. Every
// document is checked against an embedded JSON schema before it is decoded.
package yamlfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"idleodyssey/internal/domain/idle"
)

var ErrInvalidDocument = errors.New("invalid catalog document")

//go:embed catalog.schema.json
var schemaJSON []byte

const schemaURL = "catalog.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Source loads a catalog from a YAML file on every call, so edits are picked
// up by whoever reloads.
type Source struct {
	Path string
}

func (s Source) Load(_ context.Context) (idle.Catalog, error) {
	return Load(s.Path)
}

func Load(path string) (idle.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return idle.Catalog{}, err
	}
	cat, err := Parse(raw)
	if err != nil {
		return idle.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse validates raw against the schema, decodes it and runs the catalog's
// own referential checks.
func Parse(raw []byte) (idle.Catalog, error) {
	if err := validate(raw); err != nil {
		return idle.Catalog{}, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return idle.Catalog{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	cat, err := doc.toCatalog()
	if err != nil {
		return idle.Catalog{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := cat.Validate(); err != nil {
		return idle.Catalog{}, err
	}
	return cat, nil
}

// validate runs the schema over the document's JSON form. YAML scalars are
// normalized through encoding/json so the validator sees plain JSON values.
func validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if tree == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	var v any
	if err := json.Unmarshal(asJSON, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

func Marshal(cat idle.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fromCatalog(cat)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Write(path string, cat idle.Catalog) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	raw, err := Marshal(cat)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
