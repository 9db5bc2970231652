// Package config loads the settings of the demo application from a YAML file,
// the environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xqrs/cellview"
	"github.com/xqrs/cellview/keybind"
)

// EnvPrefix is the prefix of environment variables overriding settings, e.g.
// CELLVIEW_LOG_LEVEL.
const EnvPrefix = "cellview"

type Config struct {
	Locale string      `mapstructure:"locale"`
	Log    LogConfig   `mapstructure:"log"`
	Items  ItemsConfig `mapstructure:"items"`
	List   ListConfig  `mapstructure:"list"`
	// Keys maps action names of the list and the demo to key strings.
	Keys map[string][]string `mapstructure:"keys"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ItemsConfig struct {
	// File holds one item per line. It takes precedence over Count.
	File  string `mapstructure:"file"`
	Count int    `mapstructure:"count"`
}

type ListConfig struct {
	EmptyText       string `mapstructure:"empty_text"`
	FixedCellLength int    `mapstructure:"fixed_cell_length"`
	Orientation     string `mapstructure:"orientation"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() map[string]any {
	return map[string]any{
		"locale":                 "en",
		"log.level":              "info",
		"log.file":               "",
		"items.file":             "",
		"items.count":            100,
		"list.empty_text":        "",
		"list.fixed_cell_length": 0,
		"list.orientation":       "vertical",
	}
}

// flagKeys maps flag names to the settings they override.
var flagKeys = map[string]string{
	"locale":            "locale",
	"log-level":         "log.level",
	"log-file":          "log.file",
	"items":             "items.file",
	"count":             "items.count",
	"empty-text":        "list.empty_text",
	"fixed-cell-length": "list.fixed_cell_length",
	"orientation":       "list.orientation",
}

// Load reads the settings. configFile, if not empty, is read instead of
// searching cellview.yaml in the user config directory and the working
// directory. Flags of cmd which were set take precedence over the
// environment, which takes precedence over the file.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("cellview")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "cellview"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			if flag := cmd.Flags().Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return c, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if _, err := c.Orientation(); err != nil {
		return c, err
	}
	return c, nil
}

// Orientation returns the configured list orientation.
func (c Config) Orientation() (cellview.Orientation, error) {
	switch strings.ToLower(c.List.Orientation) {
	case "", "vertical":
		return cellview.OrientationVertical, nil
	case "horizontal":
		return cellview.OrientationHorizontal, nil
	}
	return cellview.OrientationVertical, fmt.Errorf("unknown list orientation %q", c.List.Orientation)
}

// ApplyKeys overrides the bindings of km with the keys configured for
// their actions. An empty list of keys disables the action.
func (c Config) ApplyKeys(km *cellview.ListKeyMap) {
	for action, bind := range map[string]*keybind.Keybind{
		"select_previous": &km.SelectPrevious,
		"select_next":     &km.SelectNext,
		"focus_previous":  &km.FocusPrevious,
		"focus_next":      &km.FocusNext,
		"first":           &km.First,
		"last":            &km.Last,
		"page_up":         &km.PageUp,
		"page_down":       &km.PageDown,
		"activate":        &km.Activate,
	} {
		c.ApplyKey(action, bind)
	}
}

// ApplyKey overrides bind with the keys configured for action, if any.
func (c Config) ApplyKey(action string, bind *keybind.Keybind) {
	keys, ok := c.Keys[action]
	if !ok {
		return
	}
	bind.SetKeys(keys...)
	if len(keys) > 0 {
		help := bind.Help()
		bind.SetHelp(strings.Join(keys, "/"), help.Desc)
	}
}
