package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/profilecheck/internal/uml"
	"github.com/ariel-frischer/profilecheck/internal/validation"
	"github.com/ariel-frischer/profilecheck/internal/xmi"
)

func TestModel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts     []ModelOption
		wantCode uml.FindingCode
	}{
		"defaults are consistent": {},
		"unknown stereotype": {
			opts:     []ModelOption{WithApplied("Other")},
			wantCode: uml.CodeUnknownStereotype,
		},
		"dangling target": {
			opts:     []ModelOption{WithTarget("M2")},
			wantCode: uml.CodeUnknownElement,
		},
		"wrong member type": {
			opts:     []ModelOption{WithMemberType("Interface")},
			wantCode: uml.CodeTypeNotApplicable,
		},
		"matching metaclass": {
			opts: []ModelOption{WithMetaclass("Interface"), WithMemberType("Interface")},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			model, err := xmi.ParseBytes([]byte(Model(tc.opts...)))
			if err != nil {
				t.Fatalf("generated document does not parse: %v", err)
			}
			res := validation.New().Validate(model)

			if tc.wantCode == "" {
				if !res.Valid() {
					t.Errorf("expected no findings, got %v", res.Findings)
				}
				return
			}
			if len(res.Findings) != 1 || res.Findings[0].Code != tc.wantCode {
				t.Errorf("expected one %s finding, got %v", tc.wantCode, res.Findings)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	t.Parallel()

	doc := Document("<uml:Model xmi:id=\"m\"/>", "A", "B")
	for _, want := range []string{`xmlns:A="http:///schemas/A/1"`, `xmlns:B="http:///schemas/B/1"`, `<uml:Model xmi:id="m"/>`} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestCreateTempModel(t *testing.T) {
	t.Parallel()

	path := CreateTempModel(t, filepath.Join(t.TempDir(), "models"), "m.xmi")
	if !FileExists(path) {
		t.Fatalf("model was not written: %s", path)
	}
	if got := ReadFile(t, path); got != Model() {
		t.Error("written model differs from Model()")
	}
}

func TestCreateTempDir(t *testing.T) {
	t.Parallel()

	dir := CreateTempDir(t, "test-prefix")

	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		t.Fatalf("temp directory was not created: %s", dir)
	}

	if !info.IsDir() {
		t.Errorf("expected directory, got file: %s", dir)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	tests := map[string]struct {
		path    string
		content string
	}{
		"simple file": {
			path:    filepath.Join(tmpDir, "test.xmi"),
			content: "test content",
		},
		"nested file": {
			path:    filepath.Join(tmpDir, "nested", "dir", "test.xmi"),
			content: "nested content",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			WriteFile(t, tc.path, tc.content)

			if !FileExists(tc.path) {
				t.Errorf("file was not created: %s", tc.path)
			}

			got := ReadFile(t, tc.path)
			if got != tc.content {
				t.Errorf("content mismatch: got %q, want %q", got, tc.content)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.xmi")
	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := map[string]struct {
		path string
		want bool
	}{
		"existing file": {
			path: existingFile,
			want: true,
		},
		"non-existing file": {
			path: filepath.Join(tmpDir, "nonexistent.xmi"),
			want: false,
		},
		"existing directory": {
			path: tmpDir,
			want: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FileExists(tc.path); got != tc.want {
				t.Errorf("FileExists(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestClearConfigEnv(t *testing.T) {
	t.Setenv("PROFILECHECK_OUTPUT_FORMAT", "json")

	ClearConfigEnv(t)

	if _, ok := os.LookupEnv("PROFILECHECK_OUTPUT_FORMAT"); ok {
		t.Error("PROFILECHECK_OUTPUT_FORMAT still set")
	}
}
