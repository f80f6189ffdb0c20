package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/bookshelf.yaml"
	envPrefix         = "BOOKSHELF_"
)

type Config struct {
	// Pipeline
	SourceEncoding    string `koanf:"source_encoding" default:"gbk" validate:"required"`
	DetectEncoding    bool   `koanf:"detect_encoding" default:"true"`
	HeadingMaxMatches int    `koanf:"heading_max_matches" default:"10000" validate:"min=0"`
	CategoryMaxHops   int    `koanf:"category_max_hops" default:"64" validate:"min=1"`
	IncludePrologues  bool   `koanf:"include_prologues" default:"true"`
	WorkerProcesses   int    `koanf:"worker_processes" default:"4" validate:"min=1"`
	OutputDir         string `koanf:"output_dir" default:"./out"`

	// Database
	DatabaseFilePath          string        `koanf:"database_file_path" validate:"required"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries" default:"5"`
	DatabaseDebug             bool          `koanf:"database_debug"`

	// Server
	ServerHost string `koanf:"server_host" default:"0.0.0.0"`
	ServerPort int    `koanf:"server_port" default:"3689"`
}

// New loads the config from defaults, then the YAML file named by CONFIG_FILE
// (if it exists), then BOOKSHELF_* environment variables.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.WithStack(err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config with defaults applied and an in-memory
// database, without reading the environment.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.DatabaseFilePath = ":memory:"
	cfg.DatabaseConnectRetryDelay = 10 * time.Millisecond
	cfg.ServerHost = "127.0.0.1"
	cfg.OutputDir = os.TempDir()
	return cfg
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := toSnakeCase(fe.StructField())
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("missing required config %s (set %s%s or %s in the config file)",
				key, envPrefix, strings.ToUpper(key), key))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("invalid config %s: failed %q check", key, fe.Tag()))
	}

	return errors.New(strings.Join(msgs, "; "))
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
