// Package config loads the ssiform YAML configuration shared by the CLI
// commands and the HTTP server.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgen-ssi/pkg/publish"
)

// Form names one schema served by the HTTP server.
type Form struct {
	// ID selects the form inside the schema document and keys stored values.
	ID       string `yaml:"id"`
	Source   string `yaml:"source"`
	Format   string `yaml:"format"`
	Endpoint string `yaml:"endpoint"`
}

// Config is the root of the YAML document.
type Config struct {
	Forms    []Form `yaml:"forms"`
	UISchema string `yaml:"uiSchema"`
	Renderer string `yaml:"renderer"`
	Theme    struct {
		Name    string `yaml:"name"`
		Variant string `yaml:"variant"`
	} `yaml:"theme"`
	Server struct {
		Listen          string        `yaml:"listen"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	MQTT struct {
		Enabled        bool `yaml:"enabled"`
		publish.Config `yaml:",inline"`
	} `yaml:"mqtt"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Renderer == "" {
		c.Renderer = "vanilla"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:8080"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Store.Path == "" {
		c.Store.Path = "ssiform.db"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "ssi"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	for idx := range c.Forms {
		form := &c.Forms[idx]
		if form.Endpoint == "" && form.ID != "" {
			form.Endpoint = "/forms/" + form.ID
		}
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Forms))
	for idx, form := range c.Forms {
		if strings.TrimSpace(form.ID) == "" {
			return fmt.Errorf("config: forms[%d].id is required", idx)
		}
		if strings.TrimSpace(form.Source) == "" {
			return fmt.Errorf("config: forms[%d].source is required", idx)
		}
		if _, dup := seen[form.ID]; dup {
			return fmt.Errorf("config: duplicate form %q", form.ID)
		}
		seen[form.ID] = struct{}{}
	}
	if c.MQTT.Enabled && strings.TrimSpace(c.MQTT.Broker) == "" {
		return errors.New("config: mqtt.broker is required when mqtt is enabled")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Form returns the configured form with id.
func (c *Config) Form(id string) (Form, bool) {
	for _, form := range c.Forms {
		if form.ID == id {
			return form, true
		}
	}
	return Form{}, false
}

// NewLogger builds a logrus logger writing to out with the configured level
// and formatter.
func (c *Config) NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
