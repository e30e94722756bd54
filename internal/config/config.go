package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every user-tunable setting.
type Config struct {
	Theme     string
	Icons     bool
	Locale    string
	OutputDir string
	Checklist string // catalog file; empty selects the built-in checklist
	Watch     bool   // reload Checklist when it changes
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level    string
	Encoding string
	File     string
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"theme":     "theme",
	"icons":     "icons",
	"locale":    "locale",
	"out":       "output_dir",
	"checklist": "checklist",
	"watch":     "watch",
	"log-level": "logger.level",
	"log-file":  "logger.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "classic")
	v.SetDefault("icons", false)
	v.SetDefault("locale", "en-US")
	v.SetDefault("output_dir", "")
	v.SetDefault("checklist", "")
	v.SetDefault("watch", false)
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.file", "")
}

// Load merges defaults, an optional config file, COSTCHECK_* environment
// variables and flags, in increasing priority. file overrides the config
// file search; flags may be nil.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("costcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "costcheck"))
		}
	}

	v.SetEnvPrefix("COSTCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	return Config{
		Theme:     v.GetString("theme"),
		Icons:     v.GetBool("icons"),
		Locale:    v.GetString("locale"),
		OutputDir: v.GetString("output_dir"),
		Checklist: v.GetString("checklist"),
		Watch:     v.GetBool("watch"),
		Logger: LoggerConfig{
			Level:    v.GetString("logger.level"),
			Encoding: v.GetString("logger.encoding"),
			File:     v.GetString("logger.file"),
		},
	}, nil
}
