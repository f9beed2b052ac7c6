// Package config loads releasecache settings from a TOML or YAML file and
// the environment.
//
// Precedence, lowest first: built-in defaults, the config file, RELEASECACHE_*
// environment variables, command-line flags (applied by the CLI).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/integrations"
	"github.com/t1nkr/releasecache/pkg/repository"
)

// Storage backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Duration is a time.Duration written as a string such as "5s" in config files.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds all settings.
type Config struct {
	Server   Server   `toml:"server" yaml:"server"`
	Storage  Storage  `toml:"storage" yaml:"storage"`
	Registry Registry `toml:"registry" yaml:"registry"`
	GitHub   GitHub   `toml:"github" yaml:"github"`
	Checks   Checks   `toml:"checks" yaml:"checks"`
	Log      Log      `toml:"log" yaml:"log"`
}

type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

type Storage struct {
	Backend string `toml:"backend" yaml:"backend"`
	Path    string `toml:"path" yaml:"path"`
	Redis   Redis  `toml:"redis" yaml:"redis"`
	Mongo   Mongo  `toml:"mongo" yaml:"mongo"`
}

type Redis struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Key      string `toml:"key" yaml:"key"`
}

type Mongo struct {
	URI        string `toml:"uri" yaml:"uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
	ID         string `toml:"id" yaml:"id"`
}

type Registry struct {
	Path string `toml:"path" yaml:"path"`
}

type GitHub struct {
	Owner   string   `toml:"owner" yaml:"owner"`
	APIBase string   `toml:"api_base" yaml:"api_base"`
	WebBase string   `toml:"web_base" yaml:"web_base"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
	Retries int      `toml:"retries" yaml:"retries"`
}

type Checks struct {
	DefaultFrequencyDays int  `toml:"default_frequency_days" yaml:"default_frequency_days"`
	DisableForce         bool `toml:"disable_force" yaml:"disable_force"`
}

type Log struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	links := repository.DefaultLinks("gusztavj")
	return &Config{
		Server: Server{Addr: ":8080"},
		Storage: Storage{
			Backend: BackendFile,
			Path:    "repository-store.json",
			Redis:   Redis{Addr: "localhost:6379", Key: "releasecache:store"},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: "releasecache", Collection: "store", ID: "repositories"},
		},
		Registry: Registry{Path: "repository-registry.json"},
		GitHub: GitHub{
			Owner:   links.Owner,
			APIBase: links.APIBase,
			WebBase: links.WebBase,
			Timeout: Duration{integrations.DefaultTimeout},
		},
		Checks: Checks{DefaultFrequencyDays: repository.DefaultCheckFrequencyDays},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file. The format follows the extension:
// .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Internal(err, "Could not read config file %s: %v", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return apperrors.Internal(err, "Could not parse config file %s: %v", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return apperrors.Internal(nil, "Unknown keys in config file %s: %v", path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return apperrors.Internal(err, "Could not parse config file %s: %v", path, err)
		}
	default:
		return apperrors.Internal(nil, "Config file %s has unsupported extension %q, use .toml, .yaml or .yml", path, ext)
	}
	return nil
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	str("RELEASECACHE_ADDR", &c.Server.Addr)
	str("RELEASECACHE_STORAGE_BACKEND", &c.Storage.Backend)
	str("RELEASECACHE_STORAGE_PATH", &c.Storage.Path)
	str("RELEASECACHE_REDIS_ADDR", &c.Storage.Redis.Addr)
	str("RELEASECACHE_REDIS_PASSWORD", &c.Storage.Redis.Password)
	str("RELEASECACHE_MONGO_URI", &c.Storage.Mongo.URI)
	str("RELEASECACHE_REGISTRY_PATH", &c.Registry.Path)
	str("RELEASECACHE_GITHUB_OWNER", &c.GitHub.Owner)
	str("RELEASECACHE_GITHUB_API_BASE", &c.GitHub.APIBase)
	str("RELEASECACHE_LOG_LEVEL", &c.Log.Level)
	str("RELEASECACHE_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("RELEASECACHE_GITHUB_TIMEOUT"); ok && v != "" {
		if err := c.GitHub.Timeout.UnmarshalText([]byte(v)); err != nil {
			return apperrors.Internal(err, "Invalid RELEASECACHE_GITHUB_TIMEOUT %q: %v", v, err)
		}
	}
	if v, ok := lookup("RELEASECACHE_DISABLE_FORCE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperrors.Internal(err, "Invalid RELEASECACHE_DISABLE_FORCE %q: %v", v, err)
		}
		c.Checks.DisableForce = b
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Path == "" {
			return apperrors.Internal(nil, "storage.path is required for the file backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return apperrors.Internal(nil, "storage.redis.addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Storage.Mongo.URI == "" {
			return apperrors.Internal(nil, "storage.mongo.uri is required for the mongo backend")
		}
	case BackendNone:
	default:
		return apperrors.Internal(nil, "Unknown storage.backend %q, use file, redis, mongo or none", c.Storage.Backend)
	}

	if c.Registry.Path == "" {
		return apperrors.Internal(nil, "registry.path is required")
	}
	if c.GitHub.Owner == "" {
		return apperrors.Internal(nil, "github.owner is required")
	}
	if err := apperrors.ValidateURL(c.GitHub.APIBase); err != nil {
		return err
	}
	if err := apperrors.ValidateURL(c.GitHub.WebBase); err != nil {
		return err
	}
	if c.GitHub.Timeout.Duration <= 0 {
		return apperrors.Internal(nil, "github.timeout shall be positive, got %s", c.GitHub.Timeout)
	}
	if c.GitHub.Retries < 0 {
		return apperrors.Internal(nil, "github.retries shall not be negative, got %d", c.GitHub.Retries)
	}
	if c.Checks.DefaultFrequencyDays < 1 {
		return apperrors.Internal(nil, "checks.default_frequency_days shall be a positive integer, got %d", c.Checks.DefaultFrequencyDays)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		return apperrors.Internal(nil, "Unknown log.format %q, use text, json or logfmt", c.Log.Format)
	}
	return nil
}

// Links returns the GitHub URL builder for the configured owner.
func (c *Config) Links() repository.Links {
	return repository.Links{Owner: c.GitHub.Owner, APIBase: c.GitHub.APIBase, WebBase: c.GitHub.WebBase}
}

// String renders the config as TOML with secrets masked.
func (c *Config) String() string {
	masked := *c
	if masked.Storage.Redis.Password != "" {
		masked.Storage.Redis.Password = "***"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(masked); err != nil {
		return fmt.Sprintf("%+v", masked)
	}
	return b.String()
}
