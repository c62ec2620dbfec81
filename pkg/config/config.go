package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CGPA"

type Config struct {
	DataFile string     `mapstructure:"data_file" validate:"required"`
	Log      LogConfig  `mapstructure:"log"`
	HTTP     HTTPConfig `mapstructure:"http"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"data":      "data_file",
	"log-level": "log.level",
	"log-file":  "log.file",
	"addr":      "http.addr",
}

// DefaultDataFile keeps the database next to the other per-user caches.
func DefaultDataFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "cgpa.db"
	}
	return filepath.Join(dir, "cgpa", "cgpa.db")
}

func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_file", DefaultDataFile())
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("http.addr", "127.0.0.1:8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags lets any of the known flags present in the set override the
// matching config key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding flag %s", name)
		}
	}
	return nil
}

// Load reads the optional config file and returns the validated settings.
// Precedence is flags, then environment, then file, then defaults.
func Load(v *viper.Viper, file string) (Config, error) {
	var cfg Config
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errors.Wrapf(err, "reading config %s", file)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoding config")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
