// Package config provides the read-only key→value lookup aggregators
// may consult at init time. Absent keys always fall back to the given
// default; a reader never fails a lookup.
package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Reader interface {
	String(key, def string) string
	Int(key string, def int) int
	Bool(key string, def bool) bool
	Float(key string, def float64) float64
}

// KoanfReader backs Reader with a koanf tree, optionally scoped to a
// key prefix so each aggregator sees only its own section.
type KoanfReader struct {
	k      *koanf.Koanf
	prefix string
}

// Empty returns a reader with no keys; every lookup yields its
// default.
func Empty() *KoanfReader {
	return &KoanfReader{k: koanf.New(".")}
}

// FromFile loads a YAML configuration file.
func FromFile(path string) (*KoanfReader, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return &KoanfReader{k: k}, nil
}

// FromMap builds a reader from explicit key/value pairs.
func FromMap(pairs map[string]interface{}) *KoanfReader {
	k := koanf.New(".")
	for key, v := range pairs {
		_ = k.Set(key, v)
	}
	return &KoanfReader{k: k}
}

// Scoped returns a view of the reader under prefix, e.g.
// Scoped("aggregator.sum") resolves "precision" against
// "aggregator.sum.precision".
func (r *KoanfReader) Scoped(prefix string) *KoanfReader {
	full := prefix
	if r.prefix != "" {
		full = r.prefix + "." + prefix
	}
	return &KoanfReader{k: r.k, prefix: full}
}

func (r *KoanfReader) path(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + "." + key
}

func (r *KoanfReader) String(key, def string) string {
	if p := r.path(key); r.k.Exists(p) {
		return r.k.String(p)
	}
	return def
}

func (r *KoanfReader) Int(key string, def int) int {
	if p := r.path(key); r.k.Exists(p) {
		return r.k.Int(p)
	}
	return def
}

func (r *KoanfReader) Bool(key string, def bool) bool {
	if p := r.path(key); r.k.Exists(p) {
		return r.k.Bool(p)
	}
	return def
}

func (r *KoanfReader) Float(key string, def float64) float64 {
	if p := r.path(key); r.k.Exists(p) {
		return r.k.Float64(p)
	}
	return def
}
