package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agent-sync/agent-sync/internal/branding"
	"github.com/agent-sync/agent-sync/internal/rules"
	"github.com/agent-sync/agent-sync/internal/schema"
	"go.yaml.in/yaml/v3"
)

const packageJSON = "package.json"

// ErrNotFound is returned by Find when no config file exists.
var ErrNotFound = errors.New("no config file found")

// Options controls where Load looks.
type Options struct {
	// Cwd is the project directory searched for config files.
	Cwd string

	// Path is an explicit config file, absolute or relative to Cwd.
	Path string

	// Version is the running agent-sync version, checked against the
	// config's requires constraint. Non-release versions skip the check.
	Version string
}

// Result is a loaded configuration and where it came from.
type Result struct {
	Config *rules.Config

	// FilePath is empty when no config file was found.
	FilePath string
}

// SearchPlaces returns the candidate config files, relative to the
// project directory, in the order they are tried.
func SearchPlaces() []string {
	rc := branding.RCFile()
	exts := []string{"", ".json", ".yaml", ".yml"}

	places := []string{packageJSON}
	for _, ext := range exts {
		places = append(places, rc+ext)
	}
	for _, ext := range exts {
		places = append(places, filepath.Join(".config", rc+ext))
	}
	return places
}

// Find returns the first config file in dir that holds agent-sync settings.
// A package.json without the agent-sync property does not count.
func Find(dir string) (string, error) {
	for _, place := range SearchPlaces() {
		path := filepath.Join(dir, place)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}

		if place == packageJSON {
			ok, err := hasPackageProperty(path)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
		}
		return path, nil
	}
	return "", ErrNotFound
}

// Load finds (or opens opts.Path), parses and validates the configuration.
// Missing config yields an empty rule list and no error.
func Load(opts Options) (*Result, error) {
	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		cwd = wd
	}

	path := opts.Path
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		found, err := Find(cwd)
		if errors.Is(err, ErrNotFound) {
			return &Result{Config: emptyConfig()}, nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, f, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	cfg, err := decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := checkRequires(cfg.Requires, opts.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Result{Config: cfg, FilePath: path}, nil
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

// readDocument returns the raw config document in path and how to parse it.
// For package.json only the agent-sync property is returned; a missing
// property yields an empty document.
func readDocument(path string) ([]byte, format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, formatYAML, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if filepath.Base(path) == packageJSON {
		prop, _, err := packageProperty(data)
		if err != nil {
			return nil, formatJSON, fmt.Errorf("parsing %s: %w", path, err)
		}
		return prop, formatJSON, nil
	}

	// Extensionless rc files are read as YAML, which also accepts JSON.
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return data, formatJSON, nil
	}
	return data, formatYAML, nil
}

// decode validates a config document against the schema and converts it to
// a rules.Config. Only a document with no content at all (empty, comments
// only, or null) decodes to an empty rule list; "{}" is checked like any
// other document and fails for lack of rules.
func decode(data []byte, f format) (*rules.Config, error) {
	var (
		doc    interface{}
		result *schema.ValidationResult
		err    error
	)

	switch f {
	case formatJSON:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("parsing JSON: %w", err)
			}
		}
		if doc == nil {
			return emptyConfig(), nil
		}
		result, err = schema.ValidateValue(doc)
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		if doc == nil {
			return emptyConfig(), nil
		}
		result, err = schema.Validate(data)
	}
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	var cfg rules.Config
	if f == formatJSON {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = []rules.Rule{}
	}
	return &cfg, nil
}

func emptyConfig() *rules.Config {
	return &rules.Config{Rules: []rules.Rule{}}
}

// checkRequires enforces the config's version constraint against the
// running version. Development builds ("dev", untagged) are not checked.
func checkRequires(constraint, version string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return fmt.Errorf("config requires %s %s, running %s", branding.CLIName(), constraint, v)
	}
	return nil
}

func hasPackageProperty(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	_, ok, err := packageProperty(data)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ok, nil
}

// packageProperty extracts the agent-sync property from package.json data.
func packageProperty(data []byte) (json.RawMessage, bool, error) {
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, false, err
	}
	prop, ok := pkg[branding.PackageProperty()]
	return prop, ok, nil
}
