package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

const eniInvoiceXML = `<?xml version="1.0" encoding="UTF-8"?>
<p:FatturaElettronica versione="FPR12" xmlns:p="http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2">
  <FatturaElettronicaHeader>
    <CedentePrestatore>
      <DatiAnagrafici>
        <IdFiscaleIVA><IdPaese>IT</IdPaese><IdCodice>00905811006</IdCodice></IdFiscaleIVA>
        <Anagrafica><Denominazione>ENI S.p.A.</Denominazione></Anagrafica>
      </DatiAnagrafici>
      <Sede><Indirizzo>Piazzale Enrico Mattei 1</Indirizzo><CAP>00144</CAP><Comune>ROMA</Comune><Provincia>RM</Provincia></Sede>
    </CedentePrestatore>
    <CessionarioCommittente>
      <DatiAnagrafici>
        <IdFiscaleIVA><IdPaese>IT</IdPaese><IdCodice>01234567890</IdCodice></IdFiscaleIVA>
        <Anagrafica><Denominazione>ROSSI CARBURANTI S.p.A.</Denominazione></Anagrafica>
      </DatiAnagrafici>
      <Sede><Indirizzo>Via Roma 1</Indirizzo><CAP>27100</CAP><Comune>PAVIA</Comune><Provincia>PV</Provincia></Sede>
    </CessionarioCommittente>
  </FatturaElettronicaHeader>
  <FatturaElettronicaBody>
    <DatiGenerali>
      <DatiGeneraliDocumento>
        <TipoDocumento>TD01</TipoDocumento>
        <Divisa>EUR</Divisa>
        <Data>2024-03-15</Data>
        <Numero>FT-2024/0815</Numero>
        <ImportoTotaleDocumento>17655.48</ImportoTotaleDocumento>
      </DatiGeneraliDocumento>
      <DatiDDT><NumeroDDT>4587/24</NumeroDDT><DataDDT>2024-03-14</DataDDT></DatiDDT>
      <DatiTrasporto>
        <IndirizzoResa><Indirizzo>Via Roma 1</Indirizzo><CAP>27100</CAP><Comune>PAVIA</Comune><Provincia>PV</Provincia></IndirizzoResa>
      </DatiTrasporto>
    </DatiGenerali>
    <DatiBeniServizi>
      <DettaglioLinee>
        <NumeroLinea>1</NumeroLinea>
        <CodiceArticolo><CodiceTipo>INTERNO</CodiceTipo><CodiceValore>gas10</CodiceValore></CodiceArticolo>
        <Descrizione>GASOLIO AUTOTRAZIONE 10PPM</Descrizione>
        <Quantita>15230.00</Quantita>
        <UnitaMisura>LITRI</UnitaMisura>
        <PrezzoUnitario>0.95000</PrezzoUnitario>
        <PrezzoTotale>14468.50</PrezzoTotale>
        <AliquotaIVA>22.00</AliquotaIVA>
        <AltriDatiGestionali><TipoDato>DAS</TipoDato><RiferimentoTesto>24ITB00012345678901234</RiferimentoTesto></AltriDatiGestionali>
      </DettaglioLinee>
      <DettaglioLinee>
        <NumeroLinea>2</NumeroLinea>
        <Descrizione>CONTRIBUTO TRASPORTO</Descrizione>
        <Quantita>1.00</Quantita>
        <UnitaMisura>NR</UnitaMisura>
        <PrezzoUnitario>3.00</PrezzoUnitario>
        <PrezzoTotale>3.00</PrezzoTotale>
        <AliquotaIVA>22.00</AliquotaIVA>
      </DettaglioLinee>
      <DettaglioLinee>
        <NumeroLinea>3</NumeroLinea>
        <Descrizione>ARROTONDAMENTO</Descrizione>
        <Quantita>0.00</Quantita>
        <PrezzoUnitario>0.25</PrezzoUnitario>
        <PrezzoTotale>0.25</PrezzoTotale>
        <AliquotaIVA>0.00</AliquotaIVA>
      </DettaglioLinee>
      <DatiRiepilogo>
        <AliquotaIVA>22.00</AliquotaIVA>
        <ImponibileImporto>14471.50</ImponibileImporto>
        <Imposta>3183.73</Imposta>
      </DatiRiepilogo>
      <DatiRiepilogo>
        <AliquotaIVA>0.00</AliquotaIVA>
        <Natura>N1</Natura>
        <ImponibileImporto>0.25</ImponibileImporto>
        <Imposta>0.00</Imposta>
      </DatiRiepilogo>
    </DatiBeniServizi>
  </FatturaElettronicaBody>
</p:FatturaElettronica>
`

func TestInvoiceXML(t *testing.T) {
	got, err := New(nil).Invoice(eniInvoiceXML)
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}

	if got.InvoiceNumber != "FT-2024/0815" || got.Date != "2024-03-15" {
		t.Errorf("number/date = %q / %q", got.InvoiceNumber, got.Date)
	}
	if !strings.Contains(got.Issuer.Name, "ENI") {
		t.Errorf("issuer name = %q, want it to contain ENI", got.Issuer.Name)
	}
	wantIssuer := entity.InvoiceParty{Name: "ENI S.p.A.", TaxID: "IT00905811006", Address: "Piazzale Enrico Mattei 1, 00144 ROMA, RM"}
	if diff := cmp.Diff(wantIssuer, got.Issuer); diff != "" {
		t.Errorf("issuer mismatch (-want +got):\n%s", diff)
	}
	if got.Client.Name != "ROSSI CARBURANTI S.p.A." || got.Client.TaxID != "IT01234567890" {
		t.Errorf("client = %+v", got.Client)
	}

	wantAmounts := entity.InvoiceAmounts{Net: 14471.75, Tax: 3183.73, Total: 17655.48}
	if diff := cmp.Diff(wantAmounts, got.Amounts); diff != "" {
		t.Errorf("amounts mismatch (-want +got):\n%s", diff)
	}

	if len(got.Lines) != 2 {
		t.Fatalf("lines = %d, want 2 (zero-quantity line dropped)", len(got.Lines))
	}
	wantLine := entity.InvoiceLine{
		LineNumber:    1,
		ProductCode:   "GAS10",
		Description:   "GASOLIO AUTOTRAZIONE 10PPM",
		Quantity:      15230,
		UnitOfMeasure: "LITRI",
		UnitValue:     0.95,
		TotalValue:    14468.5,
		VATRate:       22,
		ExtraData:     "DAS: 24ITB00012345678901234",
	}
	if diff := cmp.Diff(wantLine, got.Lines[0]); diff != "" {
		t.Errorf("line 1 mismatch (-want +got):\n%s", diff)
	}

	td := got.TransportDetails
	if !strings.Contains(td.ProductType, "GASOLIO") || td.Quantity != 15230 || td.UnitOfMeasure != "LITRI" {
		t.Errorf("transport details = %+v", td)
	}
	if td.ReferenceNumber != "4587/24" || td.DeliveryAddress != "Via Roma 1, 27100 PAVIA, PV" || td.UnitPrice != 0.95 {
		t.Errorf("transport details = %+v", td)
	}
}

func TestInvoiceXML_TotalFallsBackToNetPlusTax(t *testing.T) {
	doc := strings.Replace(eniInvoiceXML, "<ImportoTotaleDocumento>17655.48</ImportoTotaleDocumento>", "", 1)
	got, err := New(nil).InvoiceXML(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Amounts.Total != got.Amounts.Net+got.Amounts.Tax {
		t.Errorf("total = %v, want net+tax = %v", got.Amounts.Total, got.Amounts.Net+got.Amounts.Tax)
	}
}

func TestInvoiceXML_Errors(t *testing.T) {
	e := New(nil)

	if _, err := e.InvoiceXML("<Ordine><Numero>1</Numero></Ordine>"); !errors.Is(err, common.ErrNoData) {
		t.Errorf("foreign xml err = %v, want ErrNoData", err)
	}

	noNumber := strings.Replace(eniInvoiceXML, "<Numero>FT-2024/0815</Numero>", "", 1)
	_, err := e.InvoiceXML(noNumber)
	if !errors.Is(err, common.ErrNoRecord) {
		t.Fatalf("err = %v, want ErrNoRecord", err)
	}
	if !strings.Contains(err.Error(), fieldInvoiceNumber) {
		t.Errorf("err %q does not name the missing field", err)
	}
}

const eniInvoiceText = `FATTURA ELETTRONICA
Fattura n. FT-2024/0815
Data documento: 15/03/2024

Cedente/prestatore
Denominazione: ENI S.p.A.
Partita IVA: IT00905811006
Indirizzo: Piazzale Enrico Mattei 1, 00144 ROMA (RM)

Cessionario/committente
Denominazione: ROSSI CARBURANTI S.p.A.
Partita IVA: IT01234567890
Indirizzo: Via Roma 1, 27100 PAVIA (PV)

DDT n. 4587/24
Luogo di consegna: Via Roma 1, 27100 PAVIA

LINEA 1
Codice articolo: GAS10
Descrizione: GASOLIO AUTOTRAZIONE 10PPM
Quantità: 15.230,00
Unità di misura: LITRI
Prezzo unitario: 0,95000
Prezzo totale: 14.468,50
Aliquota IVA: 22,00

LINEA 2
Descrizione: CONTRIBUTO TRASPORTO
Quantità: 1,00
Unità di misura: NR
Prezzo unitario: 3,00
Prezzo totale: 3,00
Aliquota IVA: 22,00

Riepilogo
Totale imponibile: 14.471,50
Totale imposta: 3.183,73
Totale documento: 17.655,23
`

func TestInvoiceText(t *testing.T) {
	got, err := New(nil).Invoice(eniInvoiceText)
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	want := entity.InvoiceRecord{
		InvoiceNumber: "FT-2024/0815",
		Date:          "2024-03-15",
		Issuer:        entity.InvoiceParty{Name: "ENI S.p.A.", TaxID: "IT00905811006", Address: "Piazzale Enrico Mattei 1, 00144 ROMA (RM)"},
		Client:        entity.InvoiceParty{Name: "ROSSI CARBURANTI S.p.A.", TaxID: "IT01234567890", Address: "Via Roma 1, 27100 PAVIA (PV)"},
		Amounts:       entity.InvoiceAmounts{Net: 14471.5, Tax: 3183.73, Total: 17655.23},
		TransportDetails: entity.TransportDetails{
			ProductType:     "GASOLIO AUTOTRAZIONE",
			Quantity:        15230,
			UnitPrice:       0.95,
			ReferenceNumber: "4587/24",
			DeliveryAddress: "Via Roma 1, 27100 PAVIA",
			UnitOfMeasure:   "LITRI",
		},
		Lines: []entity.InvoiceLine{
			{LineNumber: 1, ProductCode: "GAS10", Description: "GASOLIO AUTOTRAZIONE 10PPM", Quantity: 15230, UnitOfMeasure: "LITRI", UnitValue: 0.95, TotalValue: 14468.5, VATRate: 22},
			{LineNumber: 2, Description: "CONTRIBUTO TRASPORTO", Quantity: 1, UnitOfMeasure: "NR", UnitValue: 3, TotalValue: 3, VATRate: 22},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("invoice mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoiceText_Errors(t *testing.T) {
	e := New(nil)
	if _, err := e.Invoice(""); !errors.Is(err, common.ErrNoData) {
		t.Errorf("empty err = %v, want ErrNoData", err)
	}
	_, err := e.InvoiceText("Data documento: 15/03/2024\nTotale documento: 100,00")
	if !errors.Is(err, common.ErrNoRecord) {
		t.Errorf("err = %v, want ErrNoRecord", err)
	}
}

func TestInvoice_NonNegative(t *testing.T) {
	doc := strings.Replace(eniInvoiceXML, "<PrezzoTotale>3.00</PrezzoTotale>", "<PrezzoTotale>-3.00</PrezzoTotale>", 1)
	got, err := New(nil).InvoiceXML(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range got.Lines {
		if l.TotalValue < 0 || l.Quantity < 0 || l.UnitValue < 0 {
			t.Errorf("negative value on line %+v", l)
		}
	}
}
