package manifest

import (
	"errors"
	"path/filepath"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile(testPath("valid-package.json"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file string
		desc string
	}{
		{"invalid-missing-name.json", "missing required name field"},
		{"invalid-dependency-type.json", "dependency version is not a string"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s (%s)", tt.file, tt.desc)
			}
			if result.Summary() == "" {
				t.Error("expected a non-empty summary")
			}
		})
	}
}

func TestValidate_IssuePath(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-dependency-type.json"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	found := false
	for _, issue := range result.Issues {
		if issue.Path == "/dependencies/react" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an issue at /dependencies/react, got %+v", result.Issues)
	}
}

func TestValidateFile_NotJSON(t *testing.T) {
	_, err := ValidateFile(testPath("invalid-not-json.json"))
	if err == nil {
		t.Fatal("expected error for non-JSON manifest, got nil")
	}
	if !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("error = %v, want ErrInvalidManifest", err)
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	_, err := ValidateFile(testPath("nonexistent.json"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
