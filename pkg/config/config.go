package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/kmclassics.yaml"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path" required:"true"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries" default:"5"`
	Environment               string        `koanf:"environment" default:"development"`
	ServerHost                string        `koanf:"server_host" default:"0.0.0.0"`
	ServerPort                int           `koanf:"server_port" default:"3690"`

	// ImagesDir is where scanned page images live, named "<padded id>_<name>".
	ImagesDir      string `koanf:"images_dir" default:"./files"`
	ImageIDPadding int    `koanf:"image_id_padding" default:"4"`

	BookIDPrefix   string `koanf:"book_id_prefix" default:"MC"`
	BooksPerPage   int    `koanf:"books_per_page" default:"10"`
	GraphQLEnabled bool   `koanf:"graphql_enabled" default:"true"`
}

// New loads the configuration. Values are layered: struct defaults first,
// then the YAML file named by CONFIG_FILE, then environment variables.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	known := knownKeys()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a configuration backed by an in-memory database.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.ImagesDir = os.TempDir()
	cfg.Environment = "test"
	return cfg
}

// IsTest reports whether test-only endpoints should be exposed.
func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		keys[t.Field(i).Tag.Get("koanf")] = struct{}{}
	}
	return keys
}

func validateRequired(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	missing := []string{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("required") != "true" {
			continue
		}
		if v.Field(i).IsZero() {
			key := toSnakeCase(field.Name)
			missing = append(missing, fmt.Sprintf("%s (%s)", strings.ToUpper(key), key))
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
