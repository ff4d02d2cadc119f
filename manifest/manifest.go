// Package manifest reads deployment manifests and checks them against the
// blocks a store has processed.
package manifest

import (
	"context"
	"path"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/calebcase/ledgernum/integer"
)

// Error is the class of errors returned while reading a manifest.
var Error = errs.Class("manifest")

// Link points at a document by its resolver path.
type Link struct {
	Link string `yaml:"/"`
}

// ID returns the last path segment of the link.
func (l Link) ID() string {
	return path.Base(l.Link)
}

// Schema references the schema document.
type Schema struct {
	File Link `yaml:"file"`

	// Document is the schema text, filled in by Resolve.
	Document string `yaml:"-"`
}

// DataSource names a source of ledger data.
type DataSource struct {
	Kind    string `yaml:"kind"`
	Name    string `yaml:"name"`
	Network string `yaml:"network"`
}

// Graft starts a deployment from the data of an existing one.
type Graft struct {
	Base  string      `yaml:"base"`
	Block integer.Int `yaml:"block"`
}

// Manifest describes a deployment.
type Manifest struct {
	ID          string       `yaml:"-"`
	SpecVersion string       `yaml:"specVersion"`
	Schema      Schema       `yaml:"schema"`
	DataSources []DataSource `yaml:"dataSources"`
	Graft       *Graft       `yaml:"graft"`
}

// Parse decodes a YAML manifest.
func Parse(id string, data []byte) (m *Manifest, err error) {
	m = &Manifest{}

	err = yaml.Unmarshal(data, m)
	if err != nil {
		return nil, Error.New("%s: %v", id, err)
	}

	m.ID = id

	if m.Graft != nil {
		if m.Graft.Base == "" {
			return nil, Error.New("%s: graft is missing a base", id)
		}

		if m.Graft.Block.Sign() < 0 {
			return nil, Error.New("%s: negative graft block %s", id, m.Graft.Block)
		}
	}

	return m, nil
}

// Resolver fetches documents by link.
type Resolver interface {
	Cat(ctx context.Context, link string) ([]byte, error)
}

// Resolve fetches and parses the manifest at link along with its schema. The
// manifest ID is the last segment of the link.
func Resolve(ctx context.Context, link Link, r Resolver) (m *Manifest, err error) {
	data, err := r.Cat(ctx, link.Link)
	if err != nil {
		return nil, Error.New("resolve %s: %v", link.Link, err)
	}

	m, err = Parse(link.ID(), data)
	if err != nil {
		return nil, err
	}

	if m.Schema.File.Link == "" {
		return m, nil
	}

	schema, err := r.Cat(ctx, m.Schema.File.Link)
	if err != nil {
		return nil, Error.New("resolve schema %s: %v", m.Schema.File.Link, err)
	}

	m.Schema.Document = string(schema)

	return m, nil
}
