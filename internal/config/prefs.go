package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info" // log level when neither flag nor file sets one
	DefaultWorkers  = 0      // 0 means one worker per CPU
	EnvPrefix       = "DIRCLEAN"
)

// LogPrefs configures the logger.
type LogPrefs struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ReportPrefs configures report output.
type ReportPrefs struct {
	// Dir is where reports given as a bare file name are written.
	Dir string `mapstructure:"dir"`
}

// Prefs is the user preference file.
type Prefs struct {
	Log     LogPrefs    `mapstructure:"log"`
	Workers int         `mapstructure:"workers"`
	Trash   bool        `mapstructure:"trash"`
	Report  ReportPrefs `mapstructure:"report"`
}

// DefaultPrefsDir returns $XDG_CONFIG_HOME/dirclean or the platform
// equivalent.
func DefaultPrefsDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dirclean")
}

func setPrefDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("trash", false)
	v.SetDefault("report.dir", "")
}

// LoadPrefs reads the preference file. An explicit path must exist; the
// default location is optional. DIRCLEAN_* environment variables override
// file values (DIRCLEAN_LOG_LEVEL for log.level).
func LoadPrefs(path string) (Prefs, error) {
	v := viper.New()
	setPrefDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultPrefsDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Prefs{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var p Prefs
	if err := v.Unmarshal(&p); err != nil {
		return Prefs{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if p.Workers < 0 {
		return Prefs{}, fmt.Errorf("workers must not be negative, got %d", p.Workers)
	}
	return p, nil
}
