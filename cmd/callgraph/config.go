package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/callgraph/pkg/indexer"
)

// ProjectConfig holds the contents of .callgraph/config.yaml.
type ProjectConfig struct {
	// WorkerConcurrency overrides the worker pool size used for parallel
	// extraction. 0 (default) auto-detects via util.GetOptimalPoolSize().
	WorkerConcurrency int `yaml:"worker_concurrency"`

	// Languages, if non-empty, restricts scanning to this subset of
	// "javascript", "typescript", "python", "rust".
	Languages []string `yaml:"languages"`

	// IgnoreGlobs are added to indexer.DefaultScanOptions()'s Exclude list.
	IgnoreGlobs []string `yaml:"ignore_globs"`
}

var languageIncludes = map[string][]string{
	"javascript": {"**/*.js", "**/*.jsx"},
	"typescript": {"**/*.ts", "**/*.tsx"},
	"python":     {"**/*.py"},
	"rust":       {"**/*.rs"},
}

// loadProjectConfig reads .callgraph/config.yaml from the current
// directory. Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".callgraph/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// scanOptionsFromConfig applies cfg's language subset and ignore globs on
// top of indexer.DefaultScanOptions(). A nil cfg returns the defaults
// unchanged.
func scanOptionsFromConfig(cfg *ProjectConfig) indexer.ScanOptions {
	opts := indexer.DefaultScanOptions()
	if cfg == nil {
		return opts
	}

	if len(cfg.Languages) > 0 {
		var include []string
		for _, lang := range cfg.Languages {
			include = append(include, languageIncludes[lang]...)
		}
		if len(include) > 0 {
			opts.Include = include
		}
	}

	opts.Exclude = append(opts.Exclude, cfg.IgnoreGlobs...)
	return opts
}
