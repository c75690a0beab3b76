package pricing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
)

func TestCatalog_Default(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	want := []string{
		"ENI SANNAZZARO GASOLIO",
		"ENI SANN GASOLIO",
		"ENI-SANN-GASOLIO",
		"ENI GASOLIO SANNAZZARO",
	}
	if diff := cmp.Diff(want, c.Candidates("ENI", "DIESEL", "SANNAZZARO")); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}

	got := c.Candidates("NEWCO", "HVO", "RHO")
	if diff := cmp.Diff([]string{"NEWCO RHO HVO"}, got); diff != "" {
		t.Errorf("default templates should dedupe identical labels (-want +got):\n%s", diff)
	}
}

func TestCatalog_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("products:\n  DIESEL: GAS\nbases:\n  LIVORNO: LI\nsuppliers:\n  ENI:\n    - \"ENI/{base_short}/{product}\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if diff := cmp.Diff([]string{"ENI/LI/GAS"}, c.Candidates("ENI", "DIESEL", "LIVORNO")); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}
	if got := c.Candidates("Q8", "DIESEL", "LIVORNO"); len(got) != 0 {
		t.Errorf("supplier without templates and no default = %v", got)
	}
}

func TestCatalog_Errors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}
	_, err := ParseCatalog([]byte("products: {}\n"))
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("empty catalog err = %v, want ErrInvalidInput", err)
	}
	if _, err := ParseCatalog([]byte("suppliers: [")); err == nil {
		t.Error("malformed yaml: want error")
	}
}
