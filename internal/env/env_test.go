package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "# prefs\nDEMO_LOG_LEVEL=debug\n\nexport DEMO_SHOW_FPS = true\nDEMO_WINDOW_TITLE=\"my demo\"\nDEMO_EMPTY=\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	vars, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := map[string]string{
		"DEMO_LOG_LEVEL":    "debug",
		"DEMO_SHOW_FPS":     "true",
		"DEMO_WINDOW_TITLE": "my demo",
		"DEMO_EMPTY":        "",
	}
	if len(vars) != len(want) {
		t.Fatalf("vars = %v, want %v", vars, want)
	}
	for k, v := range want {
		if vars[k] != v {
			t.Fatalf("%s = %q, want %q", k, vars[k], v)
		}
	}
}

func TestReadMissingAndInvalid(t *testing.T) {
	vars, err := Read(filepath.Join(t.TempDir(), "missing"))
	if err != nil || len(vars) != 0 {
		t.Fatalf("Read(missing) = %v, %v", vars, err)
	}
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JUSTAKEY\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("line without = accepted")
	}
}

func TestGetenvPrefersProcess(t *testing.T) {
	t.Setenv("DEMO_ENV_TEST_A", "process")
	get := Getenv(map[string]string{"DEMO_ENV_TEST_A": "file", "DEMO_ENV_TEST_B": "file"})
	if got := get("DEMO_ENV_TEST_A"); got != "process" {
		t.Fatalf("A = %q", got)
	}
	if got := get("DEMO_ENV_TEST_B"); got != "file" {
		t.Fatalf("B = %q", got)
	}
}
