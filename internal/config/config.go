package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"

	"github.com/spf13/viper"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyPackageManager = "package_manager"
	KeyAPIClient      = "api_client"
	KeySkipInstall    = "skip_install"
	KeyDisableGit     = "disable_git"
	KeyOffline        = "offline"
	KeyUpdateCheck    = "update_check"
)

// defaults are applied on Load.
var defaults = map[string]any{
	KeyPackageManager: "",
	KeyAPIClient:      "",
	KeySkipInstall:    false,
	KeyDisableGit:     false,
	KeyOffline:        false,
	KeyUpdateCheck:    true,
}

var boolKeys = []string{KeySkipInstall, KeyDisableGit, KeyOffline, KeyUpdateCheck}

// Keys returns every known key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a supported setting.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Dir returns the path to the config directory (~/.techpix/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.techpix/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set writes a config key-value pair and saves the config file. Boolean
// keys must hold a value strconv.ParseBool accepts.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	var stored any = value
	if slices.Contains(boolKeys, key) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config key %s expects true or false, got %q", key, value)
		}
		stored = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, stored)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
