package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// ConfigFile is looked up in the working directory when --config is not set.
	ConfigFile = "lorehelper.yaml"
	// EnvPrefix marks environment overrides, e.g. LOREHELPER_OUTPUT_DIR.
	EnvPrefix = "LOREHELPER_"

	DefaultOutputDir = "."
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultAddr      = ":8080"
)

// Config holds the CLI settings.
type Config struct {
	OutputDir   string      `koanf:"output_dir"`
	TextsDir    string      `koanf:"texts_dir"`
	LogLevel    string      `koanf:"log_level"`
	LogFormat   string      `koanf:"log_format"`
	MetricsFile string      `koanf:"metrics_file"`
	Serve       ServeConfig `koanf:"serve"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

// ServeConfig holds the preview server settings.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// flagKeys maps flag names to config keys when they differ by more than
// dashes.
var flagKeys = map[string]string{
	"addr": "serve.addr",
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"output_dir": DefaultOutputDir,
		"log_level":  DefaultLogLevel,
		"log_format": DefaultLogFormat,
		"serve.addr": DefaultAddr,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file. An explicit path must exist; the default one may not.
	used := cfgFile
	if used == "" {
		if _, err := os.Stat(ConfigFile); err == nil {
			used = ConfigFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: LOREHELPER_SERVE_ADDR -> serve.addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "serve_"); ok {
		return "serve." + rest
	}
	return key
}
