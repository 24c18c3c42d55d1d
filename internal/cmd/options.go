package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/cachebust/cachebust"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// engineFlags holds the persistent flags shared by every asset command.
type engineFlags struct {
	configPath string
	publicDir  string
	algorithm  string
	seed       string
	prefix     string
	method     cachebust.BustMethod
	queryParam string
	contents   bool
	disabled   bool
	debug      bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Path to a TOML or YAML config file")
	pf.StringVarP(&f.publicDir, "public-dir", "d", ".", "Directory web paths resolve against")
	pf.StringVarP(&f.algorithm, "algorithm", "a", "crc32", "Hash algorithm (see 'cachebust algorithms')")
	pf.StringVarP(&f.seed, "seed", "s", "a4bb8768", "Seed mixed into every hash")
	pf.StringVarP(&f.prefix, "prefix", "p", "", "Prefix placed before the hash for file and path busting")
	pf.VarP(&f.method, "method", "m", "Bust method: file, path or query")
	pf.StringVarP(&f.queryParam, "query-param", "q", "c", "Query parameter name for query busting")
	pf.BoolVar(&f.contents, "contents", false, "Hash file contents instead of modification time")
	pf.BoolVar(&f.disabled, "disabled", false, "Return paths unchanged")
	pf.BoolVar(&f.debug, "debug", false, "Enable debug logging")
}

// builder merges the config file, if any, with the flags set explicitly on
// the command line. Flags win.
func (f *engineFlags) builder(cmd *cobra.Command) (*cachebust.Builder, error) {
	var opts cachebust.Options
	if f.configPath != "" {
		var err error
		opts, err = loadOptions(f.configPath)
		if err != nil {
			return nil, err
		}
	}
	b := opts.Builder()

	flags := cmd.Flags()
	if flags.Changed("public-dir") {
		b.PublicDirectory(f.publicDir)
	}
	if flags.Changed("algorithm") {
		b.Algorithm(f.algorithm)
	}
	if flags.Changed("seed") {
		b.Seed(f.seed)
	}
	if flags.Changed("prefix") {
		b.Prefix(f.prefix)
	}
	if flags.Changed("method") {
		b.BustMethod(f.method)
	}
	if flags.Changed("query-param") {
		b.QueryParam(f.queryParam)
	}
	if flags.Changed("contents") {
		b.UseFileContents(f.contents)
	}
	if flags.Changed("disabled") {
		b.Enabled(!f.disabled)
	}
	return b, nil
}

func (f *engineFlags) engine(cmd *cobra.Command) (*cachebust.Engine, error) {
	b, err := f.builder(cmd)
	if err != nil {
		return nil, err
	}
	e, err := b.Engine(cachebust.WithLogger(log.Logger))
	if err != nil {
		return nil, err
	}
	cfg := e.Config()
	log.Debug().
		Str("public_dir", cfg.PublicDirectory()).
		Str("algorithm", cfg.Algorithm()).
		Str("method", cfg.BustMethod().String()).
		Bool("enabled", cfg.Enabled()).
		Bool("contents", cfg.UseFileContents()).
		Msg("engine configured")
	return e, nil
}

// loadOptions decodes a config file, choosing the format by extension.
func loadOptions(path string) (cachebust.Options, error) {
	var opts cachebust.Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &opts)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &opts)
	default:
		return opts, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return opts, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return opts, nil
}
