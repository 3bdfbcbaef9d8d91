// Package configmanager resolves the invocation-wide settings: the
// storage directory and the output style. Precedence is flags over the
// environment over the platform default, handled through viper.
package configmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrNoStorageLocation is returned when no storage directory was given
// and no platform default can be discovered.
var ErrNoStorageLocation = errors.New(
	"no user provided storage directory and unable to find the system default location")

const (
	envPrefix  = "SNOW_PLOW"
	appDirName = "snow-plow"
)

// Config holds the resolved settings for one command invocation.
type Config struct {
	// Dir is the directory holding the registry's storage file.
	Dir string `mapstructure:"config"`
	// Style controls when output is formatted with ANSI escape codes.
	Style notify.Mode `mapstructure:"style"`
}

// Manager binds flags and environment variables and produces a Config.
type Manager struct {
	viper *viper.Viper
}

// NewManager creates a manager bound to the command's flag set. The
// storage directory falls back to $SNOW_PLOW_CONFIG when the flag is not
// given.
func NewManager(flags *pflag.FlagSet) (*Manager, error) {
	viperInstance := viper.New()
	viperInstance.SetEnvPrefix(envPrefix)

	err := viperInstance.BindEnv("config")
	if err != nil {
		return nil, fmt.Errorf("bind environment variable: %w", err)
	}

	for _, name := range []string{"config", "style"} {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		err = viperInstance.BindPFlag(name, flag)
		if err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	viperInstance.SetDefault("style", string(notify.ModeAuto))

	return &Manager{viper: viperInstance}, nil
}

// Load resolves the configuration. When no storage directory was
// provided at all, the platform user config dir is used; failing that,
// ErrNoStorageLocation is returned.
func (m *Manager) Load() (Config, error) {
	var cfg Config

	err := m.viper.Unmarshal(&cfg, viper.DecodeHook(modeDecodeHook()))
	if err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}

	if cfg.Dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrNoStorageLocation, err)
		}

		cfg.Dir = filepath.Join(base, appDirName)
	}

	return cfg, nil
}

// modeDecodeHook converts and validates the style string into a
// notify.Mode during viper decoding.
func modeDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(notify.Mode("")) {
			return data, nil
		}

		mode := notify.ModeAuto

		err := mode.Set(data.(string))
		if err != nil {
			return nil, err
		}

		return mode, nil
	}
}
