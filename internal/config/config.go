package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/dshills/envhook/internal/errs"
)

// EnvPrefix prefixes every environment variable envhook reads.
const EnvPrefix = "ENVHOOK_"

// RepoFileName is the repository-level config file written by WriteRepoFile.
const RepoFileName = ".envhook.toml"

var repoFileNames = []string{".envhook.toml", ".envhook.yaml", ".envhook.yml"}

var userFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config represents the envhook configuration.
type Config struct {
	EnvFile        string `koanf:"env_file" toml:"env_file" yaml:"env_file"`
	SkipGitignore  bool   `koanf:"skip_gitignore" toml:"skip_gitignore" yaml:"skip_gitignore"`
	IgnoreFile     string `koanf:"ignore_file" toml:"ignore_file" yaml:"ignore_file"`
	TemplateSuffix string `koanf:"template_suffix" toml:"template_suffix" yaml:"template_suffix"`
	Marker         string `koanf:"marker" toml:"marker" yaml:"marker"`
	Format         string `koanf:"format" toml:"format" yaml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		EnvFile:        ".env",
		SkipGitignore:  false,
		IgnoreFile:     ".gitignore",
		TemplateSuffix: ".example",
		Marker:         ".git",
		Format:         "text",
	}
}

func (c Config) toMap() map[string]interface{} {
	return map[string]interface{}{
		"env_file":        c.EnvFile,
		"skip_gitignore":  c.SkipGitignore,
		"ignore_file":     c.IgnoreFile,
		"template_suffix": c.TemplateSuffix,
		"marker":          c.Marker,
		"format":          c.Format,
	}
}

// ConfigDir returns the user config directory for envhook.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "envhook")
}

// UserFile returns the first existing user config file on fs, or "" if none.
func UserFile(fs afero.Fs) string {
	return firstExisting(fs, ConfigDir(), userFileNames)
}

// RepoFile returns the first existing repository config file under root, or
// "" if none.
func RepoFile(fs afero.Fs, root string) string {
	if root == "" {
		return ""
	}
	return firstExisting(fs, root, repoFileNames)
}

func firstExisting(fs afero.Fs, dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := fs.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// fsProvider is a koanf provider reading one file from an afero filesystem.
type fsProvider struct {
	fs   afero.Fs
	path string
}

func (p *fsProvider) ReadBytes() ([]byte, error) { return afero.ReadFile(p.fs, p.path) }

func (p *fsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("fsProvider does not support Read")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// Load builds the effective config for the repository at root by merging:
// defaults <- user file <- repo file <- env <- overrides. Config files are
// read from fs. Overrides come from CLI flags and should only hold keys the
// user explicitly set.
func Load(fs afero.Fs, root string, overrides map[string]interface{}) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Default().toMap(), "."), nil); err != nil {
		return Config{}, errs.Wrapf(err, errs.ErrConfig, "loading defaults")
	}

	for _, path := range []string{UserFile(fs), RepoFile(fs, root)} {
		if path == "" {
			continue
		}
		if err := k.Load(&fsProvider{fs: fs, path: path}, parserFor(path)); err != nil {
			return Config{}, errs.Wrap(err, errs.ErrConfig, "loading config from", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, errs.Wrapf(err, errs.ErrConfig, "loading environment")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return Config{}, errs.Wrapf(err, errs.ErrConfig, "loading flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, errs.Wrapf(err, errs.ErrConfig, "decoding configuration")
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.EnvFile) == "" {
		return errs.New(errs.ErrConfig, "env_file must not be empty")
	}
	if strings.TrimSpace(cfg.IgnoreFile) == "" {
		return errs.New(errs.ErrConfig, "ignore_file must not be empty")
	}
	switch cfg.Format {
	case "text", "json":
	default:
		return errs.New(errs.ErrConfig, fmt.Sprintf("unsupported format %q (want text or json)", cfg.Format))
	}
	return nil
}

// WriteRepoFile writes cfg as TOML to RepoFileName under root. An existing
// file is left alone and reported through the returned bool.
func WriteRepoFile(fs afero.Fs, root string, cfg Config) (string, bool, error) {
	path := filepath.Join(root, RepoFileName)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return path, false, errs.Wrap(err, errs.ErrRead, "checking", path)
	}
	if exists {
		return path, false, nil
	}

	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return path, false, errs.Wrapf(err, errs.ErrConfig, "marshaling config")
	}
	header := "# envhook configuration\n# Values here are overridden by ENVHOOK_* variables and flags.\n\n"
	if err := afero.WriteFile(fs, path, append([]byte(header), data...), 0o644); err != nil {
		return path, false, errs.Wrap(err, errs.ErrWrite, "writing", path)
	}
	return path, true, nil
}
