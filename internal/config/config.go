package config

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/dshills/orderly/internal/config/loader"
	"github.com/dshills/orderly/internal/engine/tree"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ORDERLY_"

// Settings controls how a dataset is loaded into a map.
type Settings struct {
	Numeric    bool   `json:"numeric" yaml:"numeric"`
	Duplicates bool   `json:"duplicates" yaml:"duplicates"`
	Collation  string `json:"collation" yaml:"collation"`
	LogLevel   string `json:"logLevel" yaml:"logLevel"`
}

// Level returns the configured log level, defaulting to info.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	if s.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("settings.logLevel: %w", err)
	}
	return level, nil
}

// Entry is one key/value line of a dataset.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Dataset is a loaded dataset file.
type Dataset struct {
	Path     string
	Settings Settings
	Entries  []Entry
}

// Load reads the dataset at path from fsys and applies environment overrides.
// A nil fsys reads from the OS.
func Load(fsys loader.FileSystem, path string) (*Dataset, error) {
	l, err := loader.NewFileLoader(fsys, path)
	if err != nil {
		return nil, err
	}
	raw, err := l.Load()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	env, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if settings, ok := env["settings"]; ok {
		raw = loader.DeepMerge(raw, map[string]any{"settings": settings})
	}

	d, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

func decode(raw map[string]any) (*Dataset, error) {
	d := &Dataset{}

	if v, ok := raw["settings"]; ok {
		settings, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: settings is %T, want a table", ErrTypeMismatch, v)
		}
		var err error
		if d.Settings.Numeric, err = boolField(settings, "numeric"); err != nil {
			return nil, err
		}
		if d.Settings.Duplicates, err = boolField(settings, "duplicates"); err != nil {
			return nil, err
		}
		if v, ok := settings["logLevel"]; ok {
			d.Settings.LogLevel = fmt.Sprint(v)
		}
		if v, ok := settings["collation"]; ok {
			d.Settings.Collation = fmt.Sprint(v)
			if err := validCollation(d.Settings.Collation); err != nil {
				return nil, err
			}
		}
	}

	v, ok := raw["entries"]
	if !ok {
		return d, nil
	}
	entries, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: entries is %T, want a list", ErrTypeMismatch, v)
	}
	for i, e := range entries {
		fields, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %T, want a table", ErrTypeMismatch, i, e)
		}
		key, ok := fields["key"]
		if !ok {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingKey, i)
		}
		entry := Entry{Key: scalar(key)}
		if value, ok := fields["value"]; ok {
			entry.Value = scalar(value)
		}
		d.Entries = append(d.Entries, entry)
	}
	return d, nil
}

func boolField(m map[string]any, name string) (bool, error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: settings.%s is %T, want a bool", ErrTypeMismatch, name, v)
	}
	return b, nil
}

// scalar renders a decoded scalar as text.
func scalar(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Pairs returns the entries in file order as map entries.
func (d *Dataset) Pairs() iter.Seq[tree.Pair[string, string]] {
	return func(yield func(tree.Pair[string, string]) bool) {
		for _, e := range d.Entries {
			if !yield(tree.Pair[string, string]{Key: e.Key, Value: e.Value}) {
				return
			}
		}
	}
}

// NewMap builds a map ordered and configured by the dataset settings and holding
// its entries.
func (d *Dataset) NewMap(logger *slog.Logger) *tree.Map[string, string] {
	m := tree.New(tree.Config[string, string]{
		Compare:    d.Settings.Order(),
		ValueEq:    func(a, b string) bool { return a == b },
		Duplicates: d.Settings.Duplicates,
		Logger:     logger,
	})
	m.PutAll(d.Pairs())
	return m
}
