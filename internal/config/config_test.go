package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/northpower/dailysched/internal/constants"
)

// isolate points HOME at a temp dir and runs from an empty working dir so no
// real dailysched.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataFile != constants.DefaultExportFile {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.CatalogFile != "" || cfg.Log.Debug {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Snapshots.Keep != constants.DefaultSnapshots {
		t.Errorf("Snapshots.Keep = %d", cfg.Snapshots.Keep)
	}

	p := cfg.Policy()
	if !p.EnforceHoursRange || p.StrictCatalog || p.RequireWorkType {
		t.Errorf("default policy = %+v", p)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `data_file: /tmp/sched.json
log:
  debug: true
validation:
  strict_catalog: true
  enforce_hours_range: false
snapshots:
  keep: 3
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataFile != "/tmp/sched.json" || !cfg.Log.Debug || cfg.Snapshots.Keep != 3 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if p := cfg.Policy(); !p.StrictCatalog || p.EnforceHoursRange {
		t.Errorf("policy = %+v", p)
	}
}

func TestLoadSearchesWorkingDir(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "dailysched.yaml"), []byte("data_file: found.json\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataFile != "found.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("data_file: from-file.json\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DAILYSCHED_DATA_FILE", "from-env.json")
	t.Setenv("DAILYSCHED_VALIDATION_REQUIRE_WORK_TYPE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataFile != "from-env.json" {
		t.Errorf("DataFile = %q, want env value", cfg.DataFile)
	}
	if !cfg.Policy().RequireWorkType {
		t.Error("env did not enable RequireWorkType")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for an explicit missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("snapshots:\n  keep: -1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for negative snapshots.keep")
	}
}

func TestCatalog(t *testing.T) {
	dir := isolate(t)
	cfg := &Config{}
	cat, err := cfg.Catalog()
	if err != nil || len(cat.BusinessUnits) == 0 {
		t.Fatalf("default catalog: %v, %v", cat, err)
	}

	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte("business_units: [NTH]\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg.CatalogFile = path
	cat, err = cfg.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.BusinessUnits) != 1 || cat.BusinessUnits[0] != "NTH" {
		t.Errorf("BusinessUnits = %v", cat.BusinessUnits)
	}
}

func TestExpandPath(t *testing.T) {
	dir := isolate(t)
	if got := ExpandPath("~/x/y.json"); got != filepath.Join(dir, "x", "y.json") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath changed an absolute path: %q", got)
	}
	if got := ExpandPath("~user/x"); got != "~user/x" {
		t.Errorf("ExpandPath = %q", got)
	}
}
