// Package config loads run settings for sportify.
//
// Settings are layered with viper: built-in defaults, then an optional YAML
// file, then SPORTIFY_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/sportify/internal/clock"
	"github.com/pfrederiksen/sportify/internal/render"
	"github.com/pfrederiksen/sportify/internal/scraper"
	"github.com/pfrederiksen/sportify/internal/sport"
)

const envPrefix = "SPORTIFY"

// Config holds the settings for one run
type Config struct {
	SourceURL   string            `mapstructure:"source_url" json:"source_url"`
	UserAgent   string            `mapstructure:"user_agent" json:"user_agent"`
	Timeout     time.Duration     `mapstructure:"timeout" json:"timeout"`
	Output      string            `mapstructure:"output" json:"output"`
	Offset      time.Duration     `mapstructure:"offset" json:"offset"`
	TimeLabel   string            `mapstructure:"time_label" json:"time_label"`
	Title       string            `mapstructure:"title" json:"title"`
	Brand       string            `mapstructure:"brand" json:"brand"`
	Stylesheet  string            `mapstructure:"stylesheet" json:"stylesheet"`
	Script      string            `mapstructure:"script" json:"script"`
	Sports      []string          `mapstructure:"sports" json:"sports"`
	Menu        []render.MenuItem `mapstructure:"menu" json:"menu"`
	Calendar    string            `mapstructure:"calendar" json:"calendar,omitempty"`
	MetricsFile string            `mapstructure:"metrics_file" json:"metrics_file,omitempty"`
	LogLevel    string            `mapstructure:"log_level" json:"log_level"`
}

// flagKeys maps config keys to the command-line flags that override them
var flagKeys = map[string]string{
	"source_url":   "url",
	"output":       "output",
	"offset":       "offset",
	"timeout":      "timeout",
	"calendar":     "calendar",
	"metrics_file": "metrics-file",
	"log_level":    "log-level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source_url", scraper.ScheduleURL)
	v.SetDefault("user_agent", scraper.UserAgent)
	v.SetDefault("timeout", scraper.Timeout)
	v.SetDefault("output", "index.html")
	v.SetDefault("offset", clock.DefaultOffset)
	v.SetDefault("time_label", "GMT")
	v.SetDefault("title", "Sportify - Your Sports Events Hub")
	v.SetDefault("brand", "Sportify")
	v.SetDefault("stylesheet", "styles.css")
	v.SetDefault("script", "script.js")
	v.SetDefault("calendar", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", "info")
}

// bindEnvs registers every Config key with the environment. AutomaticEnv
// alone only covers keys viper already knows from defaults or the file.
func bindEnvs(v *viper.Viper) error {
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		key, ok := t.Field(i).Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding env for %s: %w", key, err)
		}
	}
	return nil
}

// menuItemHook decodes "sport:Label" strings, as given in SPORTIFY_MENU,
// into menu entries
func menuItemHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(render.MenuItem{}) {
		return data, nil
	}
	slug, label, ok := strings.Cut(strings.TrimSpace(data.(string)), ":")
	if !ok {
		return nil, fmt.Errorf("menu entry %q must be sport:Label", data)
	}
	return map[string]interface{}{
		"sport": strings.TrimSpace(slug),
		"label": strings.TrimSpace(label),
	}, nil
}

// Load reads configuration from path (optional), the environment and flags (optional)
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.DecodeHookFuncType(menuItemHook),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if len(cfg.Sports) == 0 {
		cfg.Sports = append([]string(nil), sport.Default...)
	}
	if len(cfg.Menu) == 0 {
		cfg.Menu = render.DefaultMenu()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the settings needed for a run are present
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceURL) == "" {
		return errors.New("source_url is not set")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output is not set")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	for i, item := range c.Menu {
		if item.Sport == "" || item.Label == "" {
			return fmt.Errorf("menu entry %d needs both sport and label", i)
		}
	}
	return nil
}

// Layout returns the page layout described by the config
func (c *Config) Layout(year int) render.Layout {
	return render.Layout{
		Title:      c.Title,
		Brand:      c.Brand,
		Stylesheet: c.Stylesheet,
		Script:     c.Script,
		TimeLabel:  c.TimeLabel,
		Year:       year,
		Menu:       c.Menu,
	}
}
