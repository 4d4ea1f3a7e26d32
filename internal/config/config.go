// Package config reads INI scene descriptions and exposes typed accessors
// for the value shapes the scene format uses (ints, reals, booleans, strings
// and parenthesized real tuples).
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrConfig tags all scene configuration errors (missing keys, wrong types,
// unknown type strings). The CLI boundary matches it with errors.Is.
var ErrConfig = errors.New("config error")

// Scene is a parsed scene description.
type Scene struct {
	file *ini.File
	path string
}

// Load parses an INI scene file.
func Load(path string) (*Scene, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
	}
	return &Scene{file: f, path: path}, nil
}

// LoadString parses scene text directly (used by tests).
func LoadString(text string) (*Scene, error) {
	f, err := ini.Load([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &Scene{file: f, path: "<string>"}, nil
}

// Path returns the file the scene was loaded from.
func (s *Scene) Path() string { return s.path }

// Section returns a named section; keys of missing sections report missing.
func (s *Scene) Section(name string) *Section {
	return &Section{scene: s, name: name, section: s.file.Section(name)}
}

// HasSection reports whether the section exists in the file.
func (s *Scene) HasSection(name string) bool {
	ok, _ := s.file.GetSection(name)
	return ok != nil
}

// Section wraps one INI section with typed, error-reporting accessors.
type Section struct {
	scene   *Scene
	name    string
	section *ini.Section
}

func (c *Section) keyErr(key, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: [%s] %s: %s", ErrConfig, c.name, key, detail)
}

func (c *Section) raw(key string) (string, error) {
	if !c.section.HasKey(key) {
		return "", c.keyErr(key, "missing")
	}
	return c.section.Key(key).String(), nil
}

// Has reports whether the key exists.
func (c *Section) Has(key string) bool {
	return c.section.HasKey(key)
}

func (c *Section) String(key string) (string, error) {
	v, err := c.raw(key)
	if err != nil {
		return "", err
	}
	return strings.Trim(v, "\""), nil
}

func (c *Section) StringOr(key, def string) string {
	if v, err := c.String(key); err == nil {
		return v
	}
	return def
}

func (c *Section) Int(key string) (int, error) {
	v, err := c.raw(key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, c.keyErr(key, "not an integer: %q", v)
	}
	return i, nil
}

func (c *Section) IntOr(key string, def int) int {
	if v, err := c.Int(key); err == nil {
		return v
	}
	return def
}

func (c *Section) Float(key string) (float64, error) {
	v, err := c.raw(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, c.keyErr(key, "not a real: %q", v)
	}
	return f, nil
}

func (c *Section) FloatOr(key string, def float64) float64 {
	if v, err := c.Float(key); err == nil {
		return v
	}
	return def
}

func (c *Section) Bool(key string) (bool, error) {
	v, err := c.raw(key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, c.keyErr(key, "not a boolean: %q", v)
}

func (c *Section) BoolOr(key string, def bool) bool {
	if v, err := c.Bool(key); err == nil {
		return v
	}
	return def
}

// Tuple parses a parenthesized or bare comma-separated tuple of n reals,
// e.g. "(1, 0.5, 0)".
func (c *Section) Tuple(key string, n int) ([]float64, error) {
	v, err := c.raw(key)
	if err != nil {
		return nil, err
	}
	t := strings.TrimSpace(v)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	parts := strings.Split(t, ",")
	if len(parts) != n {
		return nil, c.keyErr(key, "expected %d components, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, c.keyErr(key, "component %d is not a real: %q", i, p)
		}
		out[i] = f
	}
	return out, nil
}

// IntTuple parses a tuple of n integers, e.g. "(0, 3)".
func (c *Section) IntTuple(key string, n int) ([]int, error) {
	t, err := c.Tuple(key, n)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, f := range t {
		out[i] = int(f)
	}
	return out, nil
}
