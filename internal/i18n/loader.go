package i18n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/language"
)

var (
	ErrFixtureInvalid  = errors.New("i18n: locale fixture invalid")
	ErrLoaderPathEmpty = errors.New("i18n: loader path cannot be empty")
)

const fixtureSchemaURL = "landing://i18n/fixture.schema.json"

const fixtureSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["default_locale", "locales", "variants"],
  "properties": {
    "default_locale": {"type": "string", "minLength": 1},
    "locales": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "variants": {
      "type": "object",
      "additionalProperties": false,
      "required": ["default"],
      "properties": {
        "default": {"type": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"},
        "overrides": {
          "type": "object",
          "additionalProperties": {"type": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"}
        }
      }
    }
  }
}`

// Fixture is the serialised locale configuration: supported locales, the
// default, and the locale to variant table.
type Fixture struct {
	DefaultLocale string          `json:"default_locale"`
	Locales       []string        `json:"locales"`
	Variants      VariantsFixture `json:"variants"`
}

// VariantsFixture is the variant mapping section of a Fixture.
type VariantsFixture struct {
	Default   string            `json:"default"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// Config returns the locale part of the fixture.
func (f *Fixture) Config() Config {
	if f == nil {
		return Config{}
	}
	return FromModuleConfig(f.DefaultLocale, f.Locales)
}

// FixtureError lists every problem found in a fixture.
type FixtureError struct {
	Issues []string
}

func (e *FixtureError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrFixtureInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrFixtureInvalid.Error(), strings.Join(e.Issues, "; "))
}

func (e *FixtureError) Unwrap() error {
	return ErrFixtureInvalid
}

// Loader reads locale fixtures from disk.
type Loader struct {
	path string
}

// NewLoader returns a loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, schema-validates and decodes the fixture.
func (l *Loader) Load(ctx context.Context) (*Fixture, error) {
	if l == nil || strings.TrimSpace(l.path) == "" {
		return nil, ErrLoaderPathEmpty
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open fixture %q: %w", l.path, err)
	}
	return DecodeFixture(bytes.NewReader(data))
}

// DecodeFixture validates r against the fixture schema and checks the
// cross-field rules the schema cannot express.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("i18n: read fixture: %w", err)
	}

	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}

	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("i18n: decode fixture: %w", err)
	}

	var issues []string
	cfg := fx.Config()
	for _, locale := range fx.Locales {
		if _, err := language.Parse(locale); err != nil {
			issues = append(issues, fmt.Sprintf("locale %q is not a BCP 47 tag", locale))
		}
	}
	if !cfg.Supports(fx.DefaultLocale) {
		issues = append(issues, fmt.Sprintf("default_locale %q is not in locales", fx.DefaultLocale))
	}
	for locale := range fx.Variants.Overrides {
		if !cfg.Supports(locale) {
			issues = append(issues, fmt.Sprintf("variant override for unsupported locale %q", locale))
		}
	}
	if len(issues) > 0 {
		return nil, &FixtureError{Issues: issues}
	}
	return &fx, nil
}

func validateAgainstSchema(data []byte) error {
	schema, err := jsonschema.CompileString(fixtureSchemaURL, fixtureSchema)
	if err != nil {
		return fmt.Errorf("i18n: compile fixture schema: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return &FixtureError{Issues: []string{err.Error()}}
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &FixtureError{Issues: collectIssues(verr)}
		}
		return &FixtureError{Issues: []string{err.Error()}}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []string {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{fmt.Sprintf("%s: %s", location, err.Message)}
	}
	var issues []string
	for _, cause := range err.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}
