// Package testutil provides test utilities and helpers for profilecheck tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Document wraps body in an xmi:XMI root declaring the xmi and uml namespaces
// and a namespace for each profile prefix.
func Document(body string, profiles ...string) string {
	var ns strings.Builder
	for _, p := range profiles {
		fmt.Fprintf(&ns, "\n         xmlns:%s=\"http:///schemas/%s/1\"", p, p)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<xmi:XMI xmi:version="2.1"
         xmlns:xmi="http://schema.omg.org/spec/XMI/2.1"
         xmlns:uml="http://schema.omg.org/spec/UML/2.1"` + ns.String() + `>
` + body + `
</xmi:XMI>
`
}

// modelConfig holds the settings of a generated profile document.
type modelConfig struct {
	metaclass  string
	memberType string
	target     string
	stereotype string
}

// ModelOption is a functional option for CreateTempModel
type ModelOption func(*modelConfig)

// WithMetaclass sets the metaclass the stereotype extends (default Class).
func WithMetaclass(metaclass string) ModelOption {
	return func(c *modelConfig) {
		c.metaclass = metaclass
	}
}

// WithMemberType sets the uml type of the package member M1 (default Class).
func WithMemberType(typ string) ModelOption {
	return func(c *modelConfig) {
		c.memberType = typ
	}
}

// WithTarget sets the element the application points at (default M1).
func WithTarget(id string) ModelOption {
	return func(c *modelConfig) {
		c.target = id
	}
}

// WithApplied sets the element name of the application (default S).
func WithApplied(stereotype string) ModelOption {
	return func(c *modelConfig) {
		c.stereotype = stereotype
	}
}

// Model returns a document with profile P holding stereotype S1 (named S),
// package K1 holding member M1 (named M), and one application A1 of P:S.
// The defaults produce a document with no findings.
func Model(opts ...ModelOption) string {
	cfg := &modelConfig{
		metaclass:  "Class",
		memberType: "Class",
		target:     "M1",
		stereotype: "S",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	body := fmt.Sprintf(`  <uml:Model xmi:id="root" name="Data" visibility="public">
    <packagedElement xmi:type="uml:Profile" xmi:id="P1" name="P" visibility="public">
      <packagedElement xmi:type="uml:Stereotype" xmi:id="S1" name="S" visibility="public">
        <ownedAttribute xmi:type="uml:Property" xmi:id="S1_base" name="base_%s" visibility="private"/>
      </packagedElement>
    </packagedElement>
    <packagedElement xmi:type="uml:Package" xmi:id="K1" name="Pkg" visibility="public">
      <packagedElement xmi:type="uml:%s" xmi:id="M1" name="M" visibility="public"/>
    </packagedElement>
  </uml:Model>
  <P:%s xmi:id="A1" base_%s="%s"/>`,
		cfg.metaclass, cfg.memberType, cfg.stereotype, cfg.metaclass, cfg.target)
	return Document(body, "P")
}

// CreateTempModel writes Model(opts...) to dir/name and returns its path.
func CreateTempModel(t *testing.T, dir, name string, opts ...ModelOption) string {
	t.Helper()

	path := filepath.Join(dir, name)
	WriteFile(t, path, Model(opts...))
	return path
}

// CreateTempDir creates a temporary directory with cleanup.
func CreateTempDir(t *testing.T, prefix string) string {
	t.Helper()

	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// profilecheckEnvVars are configuration variables that would change command
// behavior under test.
var profilecheckEnvVars = []string{
	"PROFILECHECK_LOOSE_TYPE_MATCH",
	"PROFILECHECK_OUTPUT_FORMAT",
	"PROFILECHECK_COLOR",
	"PROFILECHECK_LOG_LEVEL",
	"PROFILECHECK_FAIL_ON_FINDINGS",
	"PROFILECHECK_MAX_DOCUMENT_BYTES",
	"PROFILECHECK_WATCH_DEBOUNCE_MS",
	"PROFILECHECK_SHOW_PROGRESS",
}

// ClearConfigEnv unsets the PROFILECHECK_* configuration variables for the
// duration of the test. Tests calling it cannot run in parallel.
func ClearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range profilecheckEnvVars {
		if _, exists := os.LookupEnv(key); !exists {
			continue
		}
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
