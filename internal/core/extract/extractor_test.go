package extract

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

const batchManifest = `TRASPORTI BIANCHI SRL
Vettore: TRASPORTI BIANCHI SRL, Via Po 3 Milano
P.IVA: IT01234567890
Data carico: 15/03/2024
Luogo di carico: Deposito ENI Sannazzaro
Autista: MARIO ROSSI (AUT042)
Targa trattore: AB 123 CD
Targa rimorchio: XA-456-YZ
Cisterna: TK778 scomparti 5
Rif. viaggio: v-2024-77

ORDINE N. 2024-001
Prodotto: GASOLIO AUTOTRAZIONE
Cliente: ROSSI CARBURANTI SPA, Via Roma 1 (C00123)
Indirizzo di consegna: Via Roma 1, Pavia
Cod. destinazione: D-77
Quantità: 15.000 LT

ORDINE N. 2024-002
Prodotto: BENZINA SP95
Cliente: VERDI SRL (C00999)
Quantità: 8.500 LT

ORDINE N. 2024-003
Cliente: SENZA PRODOTTO SRL
`

func TestBatchManifest(t *testing.T) {
	got, err := New(nil).BatchManifest(batchManifest)
	if err != nil {
		t.Fatalf("BatchManifest: %v", err)
	}

	wantHeader := entity.BatchHeader{
		CarrierName:     "TRASPORTI BIANCHI SRL",
		CarrierVATID:    "IT01234567890",
		LoadingDate:     "2024-03-15",
		LoadingLocation: "Deposito ENI Sannazzaro",
		DriverName:      "MARIO ROSSI",
		DriverCode:      "AUT042",
		TractorPlate:    "AB123CD",
		TrailerPlate:    "XA456YZ",
		TankContainerID: "TK778",
		BatchReference:  "V-2024-77",
	}
	if diff := cmp.Diff(wantHeader, got.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	wantOrders := []entity.OrderRecord{
		{
			OrderNumber:     "2024-001",
			Product:         "GASOLIO AUTOTRAZIONE",
			CustomerName:    "ROSSI CARBURANTI SPA",
			CustomerCode:    "C00123",
			DeliveryAddress: "Via Roma 1, Pavia",
			DestinationCode: "D-77",
			Quantity:        15000,
			QuantityUnit:    "LT",
		},
		{
			OrderNumber:  "2024-002",
			Product:      "BENZINA SP95",
			CustomerName: "VERDI SRL",
			CustomerCode: "C00999",
			Quantity:     8500,
			QuantityUnit: "LT",
		},
	}
	if diff := cmp.Diff(wantOrders, got.Orders); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].OrderID != "2024-003" {
		t.Errorf("diagnostics = %+v, want the order without product", got.Diagnostics)
	}

	again, err := New(nil).BatchManifest(batchManifest)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("extraction is not idempotent:\n%s", diff)
	}
}

func TestBatchManifest_SegmentsBecomeOrders(t *testing.T) {
	text := ""
	ids := []string{"10", "11", "12", "13"}
	for _, id := range ids {
		text += "ORDINE N. " + id + "\nProdotto: GASOLIO\nQuantità: 1.000 LT\n\n"
	}
	got, err := New(nil).BatchManifest(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Orders) != len(ids) {
		t.Fatalf("orders = %d, want %d", len(got.Orders), len(ids))
	}
	for i, o := range got.Orders {
		if o.OrderNumber != ids[i] {
			t.Errorf("order %d number = %q, want %q", i, o.OrderNumber, ids[i])
		}
	}
}

func TestOrderLine_QuantityFallbacks(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "unit adjacent skips small numbers",
			text: "ORDINE N. 5\nProdotto: GASOLIO\nCampione: 12 LT\nQuantità: 15.000 LT",
			want: 15000,
		},
		{
			name: "tabular value under label",
			text: "ORDINE N. 6\nProdotto: GASOLIO\nQuantità\n12.500",
			want: 12500,
		},
		{
			name: "structural price line",
			text: "ORDINE N. 7\nProdotto: GASOLIO\nFornitura 9.800 x 0,95 EUR/LT",
			want: 9800,
		},
		{
			name: "nothing plausible",
			text: "ORDINE N. 8\nProdotto: GASOLIO\nColli: 3",
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := New(nil).OrderLine(tc.text)
			if err != nil {
				t.Fatalf("OrderLine: %v", err)
			}
			if rec.Quantity != tc.want {
				t.Errorf("quantity = %v, want %v", rec.Quantity, tc.want)
			}
		})
	}
}

func TestOrderLine_QuantityUnit(t *testing.T) {
	cases := map[string]string{
		"ORDINE N. 9\nProdotto: GASOLIO\nFornitura 8000 X 0,95 €/LT":  "LT",
		"ORDINE N. 10\nProdotto: GASOLIO\nQuantità: 12.000 litri":     "LT",
		"ORDINE N. 11\nProdotto: GASOLIO\nPeso 9.800 x 1,10 EUR/KG": "KG",
		"ORDINE N. 12\nProdotto: GASOLIO\nColli: 3":                   "",
	}
	for text, want := range cases {
		rec, err := New(nil).OrderLine(text)
		if err != nil {
			t.Fatalf("OrderLine(%q): %v", text, err)
		}
		if rec.QuantityUnit != want {
			t.Errorf("OrderLine(%q).QuantityUnit = %q, want %q", text, rec.QuantityUnit, want)
		}
	}
	rec, _ := New(nil).OrderLine("ORDINE N. 9\nProdotto: GASOLIO\nFornitura 8000 X 0,95 €/LT")
	if rec.Quantity != 8000 {
		t.Errorf("quantity = %v, want 8000", rec.Quantity)
	}
}

func TestOrderLine_MissingMandatory(t *testing.T) {
	_, err := New(nil).OrderLine("ORDINE N. 300\nCliente: ROSSI")
	if !errors.Is(err, common.ErrNoRecord) {
		t.Fatalf("err = %v, want ErrNoRecord", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != common.CodeNoRecord {
		t.Errorf("err = %#v, want AppError with code %s", err, common.CodeNoRecord)
	}

	_, err = New(nil).OrderLine("   ")
	if !errors.Is(err, common.ErrNoData) {
		t.Errorf("blank segment err = %v, want ErrNoData", err)
	}
}

const loadingNote = `DOCUMENTO DI TRASPORTO
Documento n. 4587/24
Data carico: 14/03/2024
Vettore: TRASPORTI BIANCHI SRL
Mittente: ENI SPA, Raffineria di Sannazzaro
Destinatario: ROSSI CARBURANTI SPA (C00123)
Prodotto: GASOLIO AUTOTRAZIONE 10PPM
Peso lordo: 28.540 kg
Peso netto: 12.650 kg
Volume: 15.230 L
Note: consegna mattutina
`

func TestLoadingNote(t *testing.T) {
	got, err := New(nil).LoadingNote(loadingNote)
	if err != nil {
		t.Fatalf("LoadingNote: %v", err)
	}
	want := entity.LoadingNoteRecord{
		DocumentNumber:     "4587/24",
		LoadingDate:        "2024-03-14",
		CarrierName:        "TRASPORTI BIANCHI SRL",
		ShipperName:        "ENI SPA",
		ConsigneeName:      "ROSSI CARBURANTI SPA",
		ProductDescription: "GASOLIO AUTOTRAZIONE 10PPM",
		GrossWeightKg:      28540,
		NetWeightKg:        12650,
		VolumeLiters:       15230,
		Notes:              "consegna mattutina",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loading note mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadingNote_NoData(t *testing.T) {
	_, err := New(nil).LoadingNote("pagina vuota")
	if !errors.Is(err, common.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

const fiscalManifest = `e-DAS
Codice ARC: 24ITB00012345678901234
Versione: 1
Data emissione: 14/03/2024
Data spedizione: 14/03/2024

SPEDITORE
Denominazione: ENI SPA
Codice accisa: IT00PVA00012
Indirizzo: Via Emilia 1, Sannazzaro

DESTINATARIO
Denominazione: ROSSI CARBURANTI SPA
Codice accisa: IT00MIB00345
Indirizzo: Via Roma 1, Pavia

TRASPORTO
Trasportatore: TRASPORTI BIANCHI SRL
Conducente: MARIO ROSSI
Targa: AB123CD

PRODOTTO
Codice NC: 27101943
Descrizione: GASOLIO AUTOTRAZIONE
Peso netto: 12.650 kg
Volume a temperatura ambiente: 15.230 L
Volume a 15 °C: 15.102 L
Densità a temperatura ambiente: 0,8306
Densità a 15 °C: 0,8376
`

func TestFiscalManifest(t *testing.T) {
	got, err := New(nil).FiscalManifest(fiscalManifest)
	if err != nil {
		t.Fatalf("FiscalManifest: %v", err)
	}
	want := entity.FiscalManifestRecord{
		DocumentInfo: entity.ManifestDocumentInfo{
			ManifestID:   "24ITB00012345678901234",
			Version:      "1",
			IssueDate:    "2024-03-14",
			ShipmentDate: "2024-03-14",
		},
		SenderInfo:    entity.Party{Name: "ENI SPA", Code: "IT00PVA00012", Address: "Via Emilia 1, Sannazzaro"},
		RecipientInfo: entity.Party{Name: "ROSSI CARBURANTI SPA", Code: "IT00MIB00345", Address: "Via Roma 1, Pavia"},
		TransportInfo: entity.ManifestTransportInfo{
			CarrierName: "TRASPORTI BIANCHI SRL",
			DriverName:  "MARIO ROSSI",
			VehicleID:   "AB123CD",
		},
		ProductInfo: entity.ManifestProductInfo{
			Code:                "27101943",
			Description:         "GASOLIO AUTOTRAZIONE",
			NetWeightKg:         12650,
			VolumeAmbientLiters: 15230,
			Volume15CLiters:     15102,
			DensityAmbient:      0.8306,
			Density15C:          0.8376,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fiscal manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestExtraction_RepeatsIdentically(t *testing.T) {
	cases := []struct {
		name string
		run  func(e *Extractor) (any, error)
	}{
		{"invoice xml", func(e *Extractor) (any, error) { return e.InvoiceXML(eniInvoiceXML) }},
		{"invoice text", func(e *Extractor) (any, error) { return e.InvoiceText(eniInvoiceText) }},
		{"batch manifest", func(e *Extractor) (any, error) { return e.BatchManifest(batchManifest) }},
		{"loading note", func(e *Extractor) (any, error) { return e.LoadingNote(loadingNote) }},
		{"fiscal manifest", func(e *Extractor) (any, error) { return e.FiscalManifest(fiscalManifest) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(nil)
			first, err := tc.run(e)
			if err != nil {
				t.Fatalf("first run: %v", err)
			}
			again, err := tc.run(e)
			if err != nil {
				t.Fatalf("second run: %v", err)
			}
			fresh, err := tc.run(New(nil))
			if err != nil {
				t.Fatalf("fresh extractor: %v", err)
			}
			if diff := cmp.Diff(first, again); diff != "" {
				t.Errorf("second run differs (-first +second):\n%s", diff)
			}
			if diff := cmp.Diff(first, fresh); diff != "" {
				t.Errorf("fresh extractor differs (-first +fresh):\n%s", diff)
			}
		})
	}
}
