package breathing

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultKey = "default"

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// Catalog is an ordered, read-only set of exercises.
type Catalog struct {
	exercises []Exercise
	byKey     map[string]Exercise
}

// DefaultCatalog returns the built-in exercises.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes a YAML catalog. Every exercise must be valid, keys must
// be unique, and a "default" exercise must exist.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode breathing catalog: %w", err)
	}

	c := &Catalog{
		exercises: make([]Exercise, 0, len(file.Exercises)),
		byKey:     make(map[string]Exercise, len(file.Exercises)),
	}
	for _, ex := range file.Exercises {
		ex.Key = strings.ToLower(strings.TrimSpace(ex.Key))
		if ex.Key == "" {
			return nil, fmt.Errorf("%w: exercise %q has no key", ErrInvalidExercise, ex.Name)
		}
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("exercise %q: %w", ex.Key, err)
		}
		if _, dup := c.byKey[ex.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidExercise, ex.Key)
		}
		c.byKey[ex.Key] = ex
		c.exercises = append(c.exercises, ex)
	}

	if _, ok := c.byKey[DefaultKey]; !ok {
		return nil, fmt.Errorf("%w: catalog has no %q exercise", ErrInvalidExercise, DefaultKey)
	}
	return c, nil
}

func (c *Catalog) All() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

func (c *Catalog) Get(key string) (Exercise, bool) {
	ex, ok := c.byKey[strings.ToLower(strings.TrimSpace(key))]
	return ex, ok
}

// ForMood returns the exercise for mood, or the default exercise.
func (c *Catalog) ForMood(mood string) Exercise {
	if ex, ok := c.Get(mood); ok {
		return ex
	}
	return c.byKey[DefaultKey]
}

// Next returns the exercise after key in catalog order, wrapping around.
func (c *Catalog) Next(key string) Exercise {
	for i, ex := range c.exercises {
		if ex.Key == key {
			return c.exercises[(i+1)%len(c.exercises)]
		}
	}
	return c.exercises[0]
}
