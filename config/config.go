// Package config resolves rml2csv settings with precedence
// defaults < config file < RML2CSV_* environment < command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appName = "rml2csv"

// Option documents one configuration key and its default.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns every supported key.
func Options() []Option {
	return []Option{
		{Key: "encoding", Default: "utf-8", Comment: "Charset of the emitted text (IANA name, e.g. iso-8859-7)"},
		{Key: "data", Default: "", Comment: "JSON bound to [[ ... ]] placeholders; @path reads it from a file"},
		{Key: "debug", Default: "", Comment: "Write the page-template model as JSON to this path"},
		{Key: "output", Default: "", Comment: "Output file; empty writes to stdout"},
		{Key: "verbose", Default: false, Comment: "Enable debug logging"},
	}
}

// Settings is the resolved configuration of one invocation.
type Settings struct {
	Encoding string `yaml:"encoding"`
	Data     string `yaml:"data"`
	Debug    string `yaml:"debug"`
	Output   string `yaml:"output"`
	Verbose  bool   `yaml:"verbose"`
}

// Load applies defaults, the config file (if any) and the environment to v,
// then returns the merged settings. Flags bound to v beforehand win.
func Load(v *viper.Viper) (Settings, error) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}

	if v.ConfigFileUsed() == "" {
		v.SetConfigName(appName)
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	s := Settings{
		Encoding: strings.TrimSpace(v.GetString("encoding")),
		Data:     v.GetString("data"),
		Debug:    v.GetString("debug"),
		Output:   v.GetString("output"),
		Verbose:  v.GetBool("verbose"),
	}
	if s.Encoding == "" {
		s.Encoding = "utf-8"
	}
	return s, nil
}

// BindData decodes the data setting: inline JSON, or @path to a JSON file.
// An empty setting yields nil.
func (s Settings) BindData() (any, error) {
	raw := strings.TrimSpace(s.Data)
	if raw == "" {
		return nil, nil
	}
	var content []byte
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read data file %s: %w", path, err)
		}
		content = b
	} else {
		content = []byte(raw)
	}
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decode data JSON: %w", err)
	}
	return data, nil
}

// YAML renders the settings for display.
func (s Settings) YAML() (string, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
