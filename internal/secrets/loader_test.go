package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TRUSTHIRE_TEST_TOKEN", "  from-env \n")

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr bool
	}{
		{
			name: "file wins over value and env",
			src:  Source{Value: "inline", File: writeFile(t, "from-file\n"), Env: "TRUSTHIRE_TEST_TOKEN"},
			want: "from-file",
		},
		{
			name: "value wins over env",
			src:  Source{Value: " inline ", Env: "TRUSTHIRE_TEST_TOKEN"},
			want: "inline",
		},
		{
			name: "env fallback",
			src:  Source{Env: "TRUSTHIRE_TEST_TOKEN"},
			want: "from-env",
		},
		{
			name:    "empty file",
			src:     Source{Name: "github token", File: writeFile(t, " \n"), Value: "inline"},
			wantErr: true,
		},
		{
			name:    "missing file",
			src:     Source{File: filepath.Join(t.TempDir(), "absent")},
			wantErr: true,
		},
		{
			name:    "nothing configured",
			src:     Source{Name: "gemini api key", Env: "TRUSTHIRE_TEST_UNSET"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	got, err := Optional(Source{Name: "github token"})
	if err != nil || got != "" {
		t.Fatalf("expected empty secret without error, got %q, %v", got, err)
	}

	_, err = Load(Source{Name: "github token"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	if _, err := Optional(Source{File: filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Fatal("expected file errors to be reported")
	}
}
