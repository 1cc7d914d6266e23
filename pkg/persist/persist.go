// Package persist writes and restores lingua's on-disk state files, such
// as the aggregator's incremental cache. State is written atomically: a
// temp file in the target directory is renamed over the destination, so a
// crashed save never leaves a half-written cache behind.
package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// jsonIndent is the indentation used for persisted JSON state.
const jsonIndent = "  "

// Codec serializes state to and from a stream.
type Codec interface {
	Encode(w io.Writer, state any) error
	Decode(r io.Reader, state any) error
	// Extension is the filename suffix identifying this codec's format.
	Extension() string
}

// JSONCodec encodes state as indented JSON.
type JSONCodec struct{}

// NewJSONCodec returns the standard JSON state codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Encode writes state as indented JSON.
func (c *JSONCodec) Encode(w io.Writer, state any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)

	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Decode reads JSON state.
func (c *JSONCodec) Decode(r io.Reader, state any) error {
	if err := json.NewDecoder(r).Decode(state); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// Extension returns ".json".
func (c *JSONCodec) Extension() string {
	return ".json"
}

// Persister saves and loads one state type under a fixed basename.
type Persister[T any] struct {
	basename string
	codec    Codec
}

// NewPersister binds a state type to its on-disk basename and codec.
func NewPersister[T any](basename string, codec Codec) *Persister[T] {
	return &Persister[T]{basename: basename, codec: codec}
}

func (p *Persister[T]) path(dir string) string {
	return filepath.Join(dir, p.basename+p.codec.Extension())
}

// Save builds the state via buildState and writes it atomically to dir.
func (p *Persister[T]) Save(dir string, buildState func() *T) error {
	state := buildState()

	tmp, err := os.CreateTemp(dir, p.basename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	if err := p.codec.Encode(tmp, state); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("encode state: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), p.path(dir)); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}

// Load reads the state file in dir and hands it to restoreState. A
// missing file is an error the caller can detect with
// errors.Is(err, os.ErrNotExist) on the wrapped cause.
func (p *Persister[T]) Load(dir string, restoreState func(*T)) error {
	file, err := os.Open(p.path(dir))
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()

	var state T

	if err := p.codec.Decode(file, &state); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}

	restoreState(&state)

	return nil
}
