package segment

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const manifest = `TRASPORTI ROSSI SRL
Data carico: 15/03/2024

ORDINE N. 2024-001
Prodotto: GASOLIO AUTOTRAZIONE
Quantita: 15.000 LT

ORDINE N. 2024-002
Prodotto: BENZINA SP95
Quantita: 8.000 LT

ORDINE N° 17
Prodotto: GASOLIO AGRICOLO
`

func TestSplit(t *testing.T) {
	res := Split(manifest)

	if !strings.HasPrefix(res.Header, "TRASPORTI ROSSI SRL") || strings.Contains(res.Header, "ORDINE") {
		t.Errorf("header = %q", res.Header)
	}
	var ids []string
	for _, s := range res.Segments {
		ids = append(ids, s.OrderID)
		if !strings.HasPrefix(s.Text, "ORDINE") {
			t.Errorf("segment %d does not start with its boundary: %q", s.Index, s.Text)
		}
	}
	if diff := cmp.Diff([]string{"2024-001", "2024-002", "17"}, ids); diff != "" {
		t.Errorf("order ids (-want +got):\n%s", diff)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", res.Diagnostics)
	}
	if strings.Contains(res.Segments[0].Text, "BENZINA") {
		t.Errorf("segments bleed into each other: %q", res.Segments[0].Text)
	}
}

func TestSplit_DropsUnreadableID(t *testing.T) {
	text := "ORDINE N. 100\nProdotto: A\nORDINE N. ???\nProdotto: B\nORDINE N. 102\nProdotto: C"
	res := Split(text)

	if len(res.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(res.Segments))
	}
	if res.Segments[0].OrderID != "100" || res.Segments[1].OrderID != "102" {
		t.Errorf("ids = %q, %q", res.Segments[0].OrderID, res.Segments[1].OrderID)
	}
	if strings.Contains(res.Segments[0].Text, "Prodotto: B") {
		t.Errorf("dropped segment merged into previous one: %q", res.Segments[0].Text)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Segment != 2 {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
}

func TestSplit_NoBoundary(t *testing.T) {
	res := Split("  solo intestazione  ")
	if len(res.Segments) != 0 || res.Header != "solo intestazione" {
		t.Errorf("got %+v", res)
	}
}

func TestOrderID(t *testing.T) {
	cases := map[string]string{
		"2024-001\n":   "2024-001",
		" 17 del 12/3": "17",
		"ABC":          "",
		"12A":          "",
		"17-":          "",
		"":             "",
	}
	for in, want := range cases {
		if got := OrderID(in); got != want {
			t.Errorf("OrderID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplit_BoundarySpellings(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"numero", "ORDINE NUMERO 5\nProdotto: A\nORDINE NUM. 12\nProdotto: B\n", []string{"5", "12"}},
		{"nr and degree", "ORDINE NR 7\nProdotto: A\nORDINE N°8\nProdotto: B\n", []string{"7", "8"}},
		{"no marker", "VETTORE ROSSI\nORDINE 123\nProdotto: A\nORDINE: 124\nProdotto: B\n", []string{"123", "124"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Split(tc.text)
			var ids []string
			for _, s := range res.Segments {
				ids = append(ids, s.OrderID)
			}
			if diff := cmp.Diff(tc.want, ids); diff != "" {
				t.Errorf("order ids (-want +got):\n%s", diff)
			}
			if len(res.Diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %+v", res.Diagnostics)
			}
			if strings.Contains(res.Header, "ORDINE") {
				t.Errorf("boundary left in header: %q", res.Header)
			}
		})
	}
}

func TestSplit_WordAfterOrdineIsNotBoundary(t *testing.T) {
	res := Split("ORDINE DI CARICO\nVettore: ROSSI\nORDINE N. 1\nProdotto: A\n")
	if len(res.Segments) != 1 || len(res.Diagnostics) != 0 {
		t.Fatalf("got %+v", res)
	}
	if res.Header != "ORDINE DI CARICO\nVettore: ROSSI" {
		t.Errorf("header = %q", res.Header)
	}
}

func TestBoundaryID(t *testing.T) {
	cases := map[string]string{
		"ORDINE N. 2024-001\nProdotto: A": "2024-001",
		"ORDINE NUMERO 5":                 "5",
		"ORDINE 123 del 12/03":            "123",
		"Prodotto: A":                     "",
	}
	for in, want := range cases {
		if got := BoundaryID(in); got != want {
			t.Errorf("BoundaryID(%q) = %q, want %q", in, got, want)
		}
	}
}
