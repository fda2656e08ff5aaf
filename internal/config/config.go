// Package config layers defaults, an optional YAML file, WRONGBOOK_*
// environment variables and command-line flags into one Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// EnvPrefix marks environment variables read as configuration.
	EnvPrefix = "WRONGBOOK_"
	// DefaultFile is read when --config is not given, if it exists.
	DefaultFile = "wrongbook.yaml"
)

// Config is the resolved application configuration.
type Config struct {
	DataFile string      `koanf:"data_file" validate:"required"`
	Quiz     QuizConfig  `koanf:"quiz"`
	Store    StoreConfig `koanf:"store"`
	Log      LogConfig   `koanf:"log"`
}

type QuizConfig struct {
	Size int `koanf:"size" validate:"min=1,max=1000"`
}

type StoreConfig struct {
	OnCorrupt string `koanf:"on_corrupt" validate:"oneof=fail reset"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data_file":        "data.json",
		"quiz.size":        10,
		"store.on_corrupt": "fail",
		"log.level":        "info",
		"log.format":       "text",
	}
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"data-file":  "data_file",
	"quiz-size":  "quiz.size",
	"on-corrupt": "store.on_corrupt",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// RegisterFlags adds the configuration flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := defaults()
	flags.String("config", DefaultFile, "Path to a YAML configuration file")
	flags.String("data-file", d["data_file"].(string), "Path to the JSON data file")
	flags.Int("quiz-size", d["quiz.size"].(int), "Maximum number of entries per quiz")
	flags.String("on-corrupt", d["store.on_corrupt"].(string), "What to do with an unreadable data file: fail or reset")
	flags.String("log-level", d["log.level"].(string), "Log level: debug, info, warn or error")
	flags.String("log-format", d["log.format"].(string), "Log format: text or json")
}

// Load resolves the configuration. Flags must already be parsed. A missing
// config file is only an error when it was named explicitly.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to read config flag: %w", err)
	}
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !errors.Is(statErr, fs.ErrNotExist) || flags.Changed("config") {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, statErr)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	flagKey := func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey turns WRONGBOOK_QUIZ__SIZE into quiz.size.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
