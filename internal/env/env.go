package env

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pirogoeth/concourse-http-api-resource/internal/constants"
)

type Map map[string]string

// New returns a pointer to Env with all internal maps initialized.
// Using this helps avoid nil map checks when populating Build/Params.
func New() *Env {
	return &Env{Build: Map{}, Params: map[string]interface{}{}}
}

// Env supports layered variables:
// - Build: build metadata snapshot (BUILD_* variables plus ATC_EXTERNAL_URL)
// - Params: the merged source+params mapping for the current invocation
// Lookup and rendering give precedence to Params over Build.
// Note: zero values (nil maps) are handled gracefully.
type Env struct {
	Build  Map
	Params map[string]interface{}
}

// FromEnviron extracts the build-metadata subset from an environ snapshot
// in the "KEY=VALUE" form returned by os.Environ. Only variables whose name
// starts with the build prefix, or equals the external URL variable, are
// kept. Taking a snapshot instead of reading the process environment keeps
// rendering deterministic and testable.
func FromEnviron(environ []string) Map {
	m := Map{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if strings.HasPrefix(k, constants.BuildMetadataPrefix) || k == constants.ExternalURLVar {
			m[k] = v
		}
	}
	return m
}

// dataForTemplate builds the dot object for template execution supporting
// both flat lookups (e.g., {{.BUILD_NAME}}, {{.uri}}) and grouped lookups
// ({{.build.BUILD_NAME}}).
func (e *Env) dataForTemplate() map[string]interface{} {
	data := map[string]interface{}{}
	build := Map{}
	if e != nil && e.Build != nil {
		for k, v := range e.Build {
			data[k] = v
			build[k] = v
		}
	}
	if e != nil && e.Params != nil {
		for k, v := range e.Params {
			data[k] = v
		}
	}
	// Grouped access under .build
	data["build"] = build
	return data
}

// Lookup searches Params first, then Build. Non-string parameter values
// are not returned through Lookup; they are reachable only via templates.
func (e *Env) Lookup(key string) (string, bool) {
	if e != nil && e.Params != nil {
		if v, ok := e.Params[key]; ok {
			if s, isStr := v.(string); isStr {
				return s, true
			}
		}
	}
	if e != nil && e.Build != nil {
		if v, ok := e.Build[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Render substitutes {{.name}} placeholders in s against the layered
// values. Strings that contain no template markers pass through untouched.
// A placeholder referencing an absent key is an error: silent blanks in a
// rendered request are worse than a failed run.
func (e *Env) Render(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	t, err := template.New("param").Option("missingkey=error").Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", s, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, e.dataForTemplate()); err != nil {
		return "", fmt.Errorf("render template %q: %w", s, err)
	}
	return buf.String(), nil
}
