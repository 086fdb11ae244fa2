// Package credentials loads publishing credentials from a YAML file, applies
// environment overrides, and validates the result against an embedded JSON
// schema before anything touches the network.
package credentials

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("credentials: config file not found")
	ErrInvalid  = errors.New("credentials: config invalid")
	ErrExists   = errors.New("credentials: config file already exists")
)

// Environment overrides, applied after the file is read so secrets can stay
// out of the config on CI and shared machines.
const (
	EnvAtprotoHandle   = "ATPROTO_HANDLE"
	EnvAtprotoPassword = "ATPROTO_PASSWORD"
	EnvSMTPUser        = "SMTP_USER"
	EnvSMTPPassword    = "SMTP_PASSWORD"
)

//go:embed schema.json
var schemaSource []byte

// Atproto identifies the AT-Protocol account.
type Atproto struct {
	Host     string `yaml:"host" json:"host,omitempty"`
	Handle   string `yaml:"handle" json:"handle"`
	Password string `yaml:"password" json:"password"`
}

// SMTP holds email delivery settings.
type SMTP struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port,omitempty"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

// Config is the on-disk credential set.
type Config struct {
	Atproto Atproto `yaml:"atproto" json:"atproto"`
	SMTP    SMTP    `yaml:"smtp" json:"smtp"`
}

// Load reads, overrides, and validates the credential file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAtprotoHandle)); v != "" {
		cfg.Atproto.Handle = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAtprotoPassword)); v != "" {
		cfg.Atproto.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSMTPUser)); v != "" {
		cfg.SMTP.Username = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSMTPPassword)); v != "" {
		cfg.SMTP.Password = v
	}
}

// validate runs after overrides, so a secret provided only through the
// environment still satisfies the schema.
func validate(cfg *Config) error {
	compiled, err := compileSchema()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	encoded, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := compiled.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrInvalid, flattenIssues(validationErr))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("credentials.json", bytes.NewReader(schemaSource)); err != nil {
		return nil, err
	}
	return compiler.Compile("credentials.json")
}

func flattenIssues(err *jsonschema.ValidationError) string {
	var parts []string
	var walk func(node *jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			parts = append(parts, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(parts, "; ")
}

const exampleConfig = `# postkit credentials
#
# Secrets may be left blank here and supplied through the environment:
#   ATPROTO_HANDLE, ATPROTO_PASSWORD, SMTP_USER, SMTP_PASSWORD
atproto:
  # host defaults to https://bsky.social
  handle: you.bsky.social
  password: app-password
smtp:
  host: smtp.example.com
  port: 587
  username: you@example.com
  password: smtp-password
  from: you@example.com
  to: your-publication@substack.com
`

// Init writes an example credential file. Refuses to overwrite an existing
// file so a stray init never clobbers real secrets.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("write example config %s: %w", path, err)
	}
	return nil
}
