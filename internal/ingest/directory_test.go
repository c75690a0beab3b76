package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/fuel-docs/constants"
)

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"a.xml",
		"b.TXT",
		"notes.docx",
		"sub/c.pdf",
		"sub/d.json",
		".cache/e.xml",
		".hidden.xml",
	}
	for _, f := range files {
		p := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	docs, stats, err := ScanDirectory(root, constants.KindInvoice, Options{SkipHidden: true})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, d := range docs {
		if d.Kind != constants.KindInvoice {
			t.Errorf("%s: kind %s", d.Path, d.Kind)
		}
		rel, _ := filepath.Rel(root, d.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"a.xml", "b.TXT", "sub/c.pdf", "sub/d.json"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("documents (-want +got):\n%s", diff)
	}
	if stats.Matched != 4 {
		t.Errorf("stats = %+v", stats)
	}

	docs, _, err = ScanDirectory(root, constants.KindInvoice, Options{Exts: []string{".XML"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Errorf("xml only, hidden included: got %d documents", len(docs))
	}

	if _, _, err := ScanDirectory(" ", constants.KindInvoice, Options{}); err == nil {
		t.Error("want error for empty root")
	}
}
