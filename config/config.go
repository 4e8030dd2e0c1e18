package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	quellhttp "github.com/jmattson/quell/http"
)

// Config is the root configuration struct for the quell server.
type Config struct {
	Server ServerConfig         `mapstructure:"server"`
	Static StaticConfig         `mapstructure:"static"`
	CORS   quellhttp.CORSConfig `mapstructure:"cors"`
	Log    LogConfig            `mapstructure:"log"`
	Env    string               `mapstructure:"env"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// StaticConfig holds the static file layer configuration.
type StaticConfig struct {
	Mounts          []MountConfig     `mapstructure:"mounts" validate:"required,min=1,dive"`
	MaxAge          int               `mapstructure:"max_age" validate:"min=-1"`
	AllowAllOrigins bool              `mapstructure:"allow_all_origins"`
	Charset         string            `mapstructure:"charset" validate:"required"`
	MediaTypes      map[string]string `mapstructure:"media_types"`
	HashedETags     bool              `mapstructure:"hashed_etags"`
	Autorefresh     bool              `mapstructure:"autorefresh"`
}

// MountConfig pairs a root directory with the url prefix it is served under.
type MountConfig struct {
	Root   string `mapstructure:"root" validate:"required"`
	Prefix string `mapstructure:"prefix"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":        "server.port",
	"max-age":     "static.max_age",
	"autorefresh": "static.autorefresh",
	"etags":       "static.hashed_etags",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// the config-file flag itself is not a configuration key
		if f.Name == "config" {
			return
		}
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("static.max_age", 60)
	v.SetDefault("static.allow_all_origins", true)
	v.SetDefault("static.charset", "utf-8")
	v.SetDefault("static.hashed_etags", false)
	v.SetDefault("static.autorefresh", false)

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Unknown keys anywhere in the configuration are rejected.
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFiles[0], err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merge config file %s: %w", cf, err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("QUELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct; unknown keys are fatal
	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
