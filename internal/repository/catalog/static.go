// Package catalog loads and stores candidate lists.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
)

//go:embed seed.yaml
var defaultSeed []byte

// Static serves a fixed candidate list parsed once from YAML.
type Static struct {
	cands []candidate.Candidate
}

// ParseYAML decodes a seed document. Unknown fields are rejected.
func ParseYAML(data []byte) ([]candidate.Candidate, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return fromRecords(f.Candidates)
}

// Default returns the embedded seed catalog.
func Default() (*Static, error) {
	cands, err := ParseYAML(defaultSeed)
	if err != nil {
		return nil, fmt.Errorf("embedded seed: %w", err)
	}
	return &Static{cands: cands}, nil
}

// LoadFile reads a seed file. An empty path returns the embedded seed.
func LoadFile(path string) (*Static, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	cands, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return &Static{cands: cands}, nil
}

// NewStatic wraps an already built list.
func NewStatic(cands []candidate.Candidate) *Static {
	cp := make([]candidate.Candidate, len(cands))
	copy(cp, cands)
	return &Static{cands: cp}
}

// Candidates returns a copy of the list.
func (s *Static) Candidates(_ context.Context) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, len(s.cands))
	copy(out, s.cands)
	return out, nil
}

// File re-reads a seed file on every call, so a scheduled refresh picks up edits.
type File struct {
	path string
}

// NewFile creates a File loader for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Candidates reads and parses the file.
func (f *File) Candidates(ctx context.Context) ([]candidate.Candidate, error) {
	st, err := LoadFile(f.path)
	if err != nil {
		return nil, err
	}
	return st.Candidates(ctx)
}
