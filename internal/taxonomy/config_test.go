package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreComplete(t *testing.T) {
	cfg := Default()
	if cfg.TaxonomyPrefix == "" {
		t.Error("defaults must set a taxonomy prefix")
	}
	if len(cfg.Namespaces) == 0 {
		t.Error("defaults must list required namespaces")
	}
	if len(cfg.SchemaHosts) == 0 {
		t.Error("defaults must list accepted schema hosts")
	}
	for _, size := range Sizes {
		if _, ok := cfg.Required[string(size)]; !ok {
			t.Errorf("defaults missing required-element table for %s", size)
		}
	}
	if _, ok := cfg.Required["all"]; !ok {
		t.Error("defaults missing the baseline required-element table")
	}
}

func TestRequiredForIsUnionOfBaselineAndTier(t *testing.T) {
	cfg := Default()
	micro := cfg.RequiredFor(Micro)
	small := cfg.RequiredFor(Small)

	if len(micro) != len(cfg.Required["all"]) {
		t.Errorf("micro set should equal the baseline, got %d elements", len(micro))
	}
	if len(small) <= len(micro) {
		t.Errorf("small set (%d) should extend the baseline (%d)", len(small), len(micro))
	}
	seen := map[string]bool{}
	for _, el := range small {
		if seen[el.Name] {
			t.Errorf("duplicate required element %s", el.Name)
		}
		seen[el.Name] = true
	}
}

func TestParseEntitySize(t *testing.T) {
	for _, s := range []string{"micro", "small", "medium", "large"} {
		if _, err := ParseEntitySize(s); err != nil {
			t.Errorf("ParseEntitySize(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseEntitySize("gigantic"); err == nil {
		t.Error("unknown size must be rejected")
	}
}

func TestDirectorsReportExemption(t *testing.T) {
	if Micro.RequiresDirectorsReport() {
		t.Error("micro entities are exempt from the directors' report")
	}
	for _, s := range []EntitySize{Small, Medium, Large} {
		if !s.RequiresDirectorsReport() {
			t.Errorf("%s entities must file a directors' report", s)
		}
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	override := "taxonomyPrefix: \"us-\"\nschemaHosts:\n  - \"xbrl.sec.gov\"\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TaxonomyPrefix != "us-" {
		t.Errorf("prefix = %q, want override", cfg.TaxonomyPrefix)
	}
	if len(cfg.SchemaHosts) != 1 || cfg.SchemaHosts[0] != "xbrl.sec.gov" {
		t.Errorf("schema hosts = %v, want override", cfg.SchemaHosts)
	}
	if len(cfg.Namespaces) == 0 {
		t.Error("tables absent from the file must keep their defaults")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("taxonomyPrefix: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("empty taxonomy prefix must fail validation")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
}
