package kb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signalsfoundry/clock-ephemeris/model"
)

func writeKernel(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write kernel: %v", err)
	}
	return path
}

const baseKernel = `{
  "bodies": [
    { "name": "CLOCK", "code": 2000000 },
    { "name": "MINUTE", "code": 2000060 },
    { "name": "HOUR", "code": 2003600 }
  ],
  "et0": "2000-01-01T00:00:00",
  "clock_spk": "clock.db"
}`

func TestFurnish_Base(t *testing.T) {
	pool, err := Furnish(writeKernel(t, "base.json", baseKernel))
	if err != nil {
		t.Fatalf("Furnish: %v", err)
	}

	minute, err := pool.Body("MINUTE")
	if err != nil {
		t.Fatalf("Body(MINUTE): %v", err)
	}
	want := model.Body{Name: "MINUTE", Code: 2000060}
	if diff := cmp.Diff(want, minute); diff != "" {
		t.Errorf("MINUTE mismatch (-want +got):\n%s", diff)
	}

	byCode, err := pool.BodyByCode(2003600)
	if err != nil {
		t.Fatalf("BodyByCode: %v", err)
	}
	if byCode.Name != "HOUR" {
		t.Errorf("code 2003600 resolved to %q, want HOUR", byCode.Name)
	}

	if pool.ET0() != -43200 {
		t.Errorf("ET0 = %g, want -43200", pool.ET0())
	}
	if pool.StorePath() != "clock.db" {
		t.Errorf("StorePath = %q", pool.StorePath())
	}
}

func TestFurnish_LaterKernelOverrides(t *testing.T) {
	base := writeKernel(t, "base.json", baseKernel)
	override := writeKernel(t, "override.json", `{"clock_spk": "other.db"}`)

	pool, err := Furnish(base, override)
	if err != nil {
		t.Fatalf("Furnish: %v", err)
	}
	if pool.StorePath() != "other.db" {
		t.Errorf("StorePath = %q, want override other.db", pool.StorePath())
	}
	// The body table survives an override kernel that doesn't touch it.
	if _, err := pool.Body("CLOCK"); err != nil {
		t.Errorf("CLOCK lost after override: %v", err)
	}
}

func TestFurnish_MissingET0(t *testing.T) {
	path := writeKernel(t, "noet0.json", `{"clock_spk": "clock.db"}`)
	if _, err := Furnish(path); err == nil {
		t.Fatal("expected an error when no kernel defines ET0")
	}
}

func TestFurnish_MissingFile(t *testing.T) {
	if _, err := Furnish(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing kernel file")
	}
}

func TestBody_Unknown(t *testing.T) {
	pool, err := Furnish(writeKernel(t, "base.json", baseKernel))
	if err != nil {
		t.Fatalf("Furnish: %v", err)
	}
	if _, err := pool.Body("PLUTO"); err == nil {
		t.Fatal("expected an error for an unknown body name")
	}
}
