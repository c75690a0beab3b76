package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/core/segment"
)

const (
	fieldCarrierName     = "carrierName"
	fieldCarrierVATID    = "carrierVATID"
	fieldCarrierAddress  = "carrierAddress"
	fieldLoadingDate     = "loadingDate"
	fieldLoadingLocation = "loadingLocation"
	fieldLoadingStatus   = "loadingStatus"
	fieldDriverName      = "driverName"
	fieldDriverCode      = "driverCode"
	fieldTractorPlate    = "tractorPlate"
	fieldTrailerPlate    = "trailerPlate"
	fieldTankContainer   = "tankContainerId"
	fieldBatchReference  = "batchReference"

	fieldOrderNumber     = "orderNumber"
	fieldProduct         = "product"
	fieldCustomerName    = "customerName"
	fieldCustomerCode    = "customerCode"
	fieldDeliveryAddress = "deliveryAddress"
	fieldDestinationCode = "destinationCode"
	fieldQuantity        = "quantity"
	fieldQuantityUnit    = "quantityUnit"
	fieldIdentifier      = "identifier"

	fieldDocumentNumber = "documentNumber"
	fieldShipperName    = "shipperName"
	fieldConsigneeName  = "consigneeName"
	fieldProductDesc    = "productDescription"
	fieldGrossWeight    = "grossWeightKg"
	fieldNetWeight      = "netWeightKg"
	fieldVolume         = "volumeLiters"
	fieldNotes          = "notes"

	fieldManifestID      = "manifestId"
	fieldVersion         = "version"
	fieldIssueDate       = "issueDate"
	fieldShipmentDate    = "shipmentDate"
	fieldSenderName      = "sender.name"
	fieldSenderCode      = "sender.code"
	fieldSenderAddress   = "sender.address"
	fieldDepositorName   = "depositor.name"
	fieldDepositorCode   = "depositor.code"
	fieldDepositorAddr   = "depositor.address"
	fieldRecipientName   = "recipient.name"
	fieldRecipientCode   = "recipient.code"
	fieldRecipientAddr   = "recipient.address"
	fieldTransportName   = "transport.carrierName"
	fieldTransportDriver = "transport.driverName"
	fieldTransportPlate  = "transport.vehicleId"
	fieldProductCode     = "product.code"
	fieldProductDescr    = "product.description"
	fieldProductNet      = "product.netWeight"
	fieldVolumeAmbient   = "product.volumeAmbient"
	fieldVolume15C       = "product.volume15C"
	fieldDensityAmbient  = "product.densityAmbient"
	fieldDensity15C      = "product.density15C"

	fieldInvoiceNumber  = "invoiceNumber"
	fieldDate           = "date"
	fieldIssuerName     = "issuer.name"
	fieldIssuerTaxID    = "issuer.taxId"
	fieldIssuerAddress  = "issuer.address"
	fieldClientName     = "client.name"
	fieldClientTaxID    = "client.taxId"
	fieldClientAddress  = "client.address"
	fieldNet            = "amounts.net"
	fieldTax            = "amounts.tax"
	fieldTotal          = "amounts.total"
	fieldTransportRef   = "transport.referenceNumber"
	fieldDeliveryAddr   = "transport.deliveryAddress"
	fieldTransportQty   = "transport.quantity"
	fieldTransportPrice = "transport.unitPrice"

	fieldLineNumber  = "lineNumber"
	fieldLineCode    = "productCode"
	fieldLineDesc    = "description"
	fieldLineQty     = "quantity"
	fieldLineUoM     = "unitOfMeasure"
	fieldLineUnit    = "unitValue"
	fieldLineTotal   = "totalValue"
	fieldLineVATRate = "vatRate"
	fieldLineExtra   = "extraData"
)

var quantityLabels = []string{`Quantit[àa]`, `Q\.t[àa]`, `\bQTA\b`}

// quantity is the fallback chain shared by order lines and rendered invoices.
var quantity = Plausible(100, UnitAdjacent, AfterLabel(quantityLabels...), Structural)

var (
	reVATID      = regexp.MustCompile(`(?i)(?:P(?:artita)?\.?[ \t]?I\.?V\.?A\.?|Id(?:entificativo)?[ \t]+fiscale(?:[ \t]+ai[ \t]+fini[ \t]+IVA)?)[ \t]*[:.]?[ \t]*((?:[A-Z]{2}[ \t]?)?\d{11})\b`)
	reFiscalCode = regexp.MustCompile(`(?i)Codice[ \t]+fiscale[ \t]*[:.]?[ \t]*([A-Z0-9]{11,16})\b`)
)

// boundaryID reads the order number from the segment's "ORDINE N." line.
func boundaryID(region string) (string, bool) {
	id := segment.BoundaryID(region)
	return id, id != ""
}

// taxID reads a VAT number ("IT 01234567890") falling back to the fiscal code.
var taxID = FirstOf(Pattern(reVATID), Pattern(reFiscalCode))

// compactUpper normalizes codes written with spacing ("IT 0123 4567").
func compactUpper(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// BatchHeaderSchema reads the carrier preamble before the first order of a batch manifest.
var BatchHeaderSchema = Schema{
	Name: "batch_header",
	Rules: []Rule{
		{Field: fieldCarrierName, Match: Labeled(`Vettore`, `Trasportatore`, `Ragione[ \t]+sociale`), Post: NamePart},
		{Field: fieldCarrierVATID, Match: taxID, Post: compactUpper},
		{Field: fieldCarrierAddress, Match: Labeled(`Indirizzo[ \t]+vettore`, `Sede(?:[ \t]+legale)?`, `Indirizzo`), Post: Collapse},
		{Field: fieldLoadingDate, Match: Labeled(`Data[ \t]+(?:di[ \t]+)?carico`, `Data`), Post: DayFirstDate},
		{Field: fieldLoadingLocation, Match: Labeled(`Luogo[ \t]+(?:di[ \t]+)?carico`, `Base[ \t]+(?:di[ \t]+)?carico`, `Deposito`), Post: Collapse},
		{Field: fieldLoadingStatus, Match: Labeled(`Stato(?:[ \t]+carico)?`), Post: Upper},
		{Field: fieldDriverName, Match: Labeled(`Autista`, `Conducente`), Post: NamePart},
		{Field: fieldDriverCode, Match: Labeled(`Autista`, `Conducente`), Post: CodePart},
		{Field: fieldTractorPlate, Match: Labeled(`Targa[ \t]+(?:trattore|motrice)`, `Trattore`, `Motrice`), Post: Plate},
		{Field: fieldTrailerPlate, Match: Labeled(`Targa[ \t]+(?:semi)?rimorchio`, `(?:Semi)?rimorchio`), Post: Plate},
		{Field: fieldTankContainer, Match: Labeled(`Cisterna`, `Container`, `Tank`), Post: Chain(FirstToken, Upper)},
		{Field: fieldBatchReference, Match: Labeled(`Rif(?:erimento)?\.?[ \t]+(?:lotto|viaggio)`, `Codice[ \t]+viaggio`, `Viaggio[ \t]+n[°.]?`), Post: Chain(FirstToken, Upper)},
	},
}

// OrderLineSchema reads one order segment. The boundary line carries the order number.
var OrderLineSchema = Schema{
	Name: "order_line",
	Rules: []Rule{
		{Field: fieldOrderNumber, Match: boundaryID},
		{Field: fieldProduct, Match: Labeled(`Prodotto`, `Articolo`, `Descrizione`), Post: Collapse},
		{Field: fieldCustomerName, Match: Labeled(`Cliente`, `Destinatario`), Post: NamePart},
		{Field: fieldCustomerCode, Match: Labeled(`Cliente`, `Destinatario`), Post: CodePart},
		{Field: fieldCustomerCode, Match: Labeled(`Cod(?:ice)?\.?[ \t]+cliente`), Post: Chain(FirstToken, Upper)},
		{Field: fieldDeliveryAddress, Match: Labeled(`Indirizzo[ \t]+(?:di[ \t]+)?consegna`, `Luogo[ \t]+(?:di[ \t]+)?consegna`, `Destinazione`), Post: Collapse},
		{Field: fieldDestinationCode, Match: Labeled(`Cod(?:ice)?\.?[ \t]+dest(?:inazione|\.)?`, `Punto[ \t]+(?:di[ \t]+)?consegna`), Post: Chain(FirstToken, Upper)},
		{Field: fieldQuantity, Match: quantity},
		{Field: fieldQuantityUnit, Match: UnitOf},
		{Field: fieldIdentifier, Match: Labeled(`Rif(?:erimento)?\.?[ \t]+(?:ordine|cliente)`, `Identificativo`, `ID[ \t]+riga`), Post: Chain(FirstToken, Upper)},
	},
	Required: []string{fieldOrderNumber, fieldProduct},
}

// LoadingNoteSchema reads the carrier's loading note.
var LoadingNoteSchema = Schema{
	Name: "loading_note",
	Rules: []Rule{
		{Field: fieldDocumentNumber, Match: Labeled(`(?:Documento|DDT|Bolla)[ \t]+(?:n[°.]?|numero)`, `Numero[ \t]+(?:documento|bolla)`, `N[°.][ \t]*documento`), Post: Chain(FirstToken, Upper)},
		{Field: fieldLoadingDate, Match: Labeled(`Data[ \t]+(?:di[ \t]+)?carico`, `Data[ \t]+documento`, `Data`), Post: DayFirstDate},
		{Field: fieldCarrierName, Match: Labeled(`Vettore`, `Trasportatore`), Post: NamePart},
		{Field: fieldShipperName, Match: Labeled(`Mittente`, `Speditore`, `Caricatore`), Post: NamePart},
		{Field: fieldConsigneeName, Match: Labeled(`Destinatario`, `Ricevente`), Post: NamePart},
		{Field: fieldProductDesc, Match: Labeled(`Descrizione[ \t]+(?:prodotto|merce)`, `Prodotto`, `Merce`), Post: Collapse},
		{Field: fieldGrossWeight, Match: Labeled(`Peso[ \t]+lordo`), Post: Number},
		{Field: fieldNetWeight, Match: Labeled(`Peso[ \t]+netto`), Post: Number},
		{Field: fieldVolume, Match: Labeled(`Volume(?:[ \t]+ambiente)?`, `Litri`, `Quantit[àa][ \t]+litri`), Post: Number},
		{Field: fieldNotes, Match: Labeled(`Note`, `Annotazioni`), Post: Collapse},
	},
}

var (
	reManifestHeading = regexp.MustCompile(`(?m)^[ \t]*(?:DATI[ \t]+)?(?:SPEDITORE|MITTENTE|DEPOSITARIO|DESTINATARIO|TRASPORTO|TRASPORTATORE|PRODOTTO|MERCE)[ \t]*:?[ \t]*$`)

	senderSection    = Section(regexp.MustCompile(`(?m)^[ \t]*(?:DATI[ \t]+)?(?:SPEDITORE|MITTENTE)[ \t]*:?[ \t]*$`), reManifestHeading)
	depositorSection = Section(regexp.MustCompile(`(?m)^[ \t]*(?:DATI[ \t]+)?DEPOSITARIO[ \t]*:?[ \t]*$`), reManifestHeading)
	recipientSection = Section(regexp.MustCompile(`(?m)^[ \t]*(?:DATI[ \t]+)?DESTINATARIO[ \t]*:?[ \t]*$`), reManifestHeading)
	transportSection = Section(regexp.MustCompile(`(?m)^[ \t]*(?:DATI[ \t]+)?(?:TRASPORTO|TRASPORTATORE)[ \t]*:?[ \t]*$`), reManifestHeading)
	productSection   = Section(regexp.MustCompile(`(?m)^[ \t]*(?:DATI[ \t]+)?(?:PRODOTTO|MERCE)[ \t]*:?[ \t]*$`), reManifestHeading)

	partyName    = Labeled(`Denominazione`, `Ragione[ \t]+sociale`, `Nome`)
	partyCode    = FirstOf(Labeled(`Codice[ \t]+(?:accisa|ditta|deposito)`, `Codice`), taxID)
	partyAddress = Labeled(`Indirizzo`, `Sede`)
)

// FiscalManifestSchema reads the excise manifest (e-DAS) rendering.
var FiscalManifestSchema = Schema{
	Name: "fiscal_manifest",
	Rules: []Rule{
		{Field: fieldManifestID, Match: Labeled(`(?:Codice[ \t]+)?ARC`, `Codice[ \t]+di[ \t]+riferimento[ \t]+amministrativo`, `e-?DAS[ \t]+(?:n[°.]?|numero)`, `Numero[ \t]+DAS`), Post: Chain(FirstToken, Upper)},
		{Field: fieldVersion, Match: Labeled(`Versione`), Post: FirstToken},
		{Field: fieldIssueDate, Match: Labeled(`Data[ \t]+(?:di[ \t]+)?(?:emissione|validazione)`), Post: DayFirstDate},
		{Field: fieldShipmentDate, Match: Labeled(`Data[ \t]+(?:di[ \t]+)?(?:spedizione|inizio[ \t]+trasporto)`), Post: DayFirstDate},

		{Field: fieldSenderName, Scope: senderSection, Match: partyName, Post: NamePart},
		{Field: fieldSenderCode, Scope: senderSection, Match: partyCode, Post: compactUpper},
		{Field: fieldSenderAddress, Scope: senderSection, Match: partyAddress, Post: Collapse},
		{Field: fieldDepositorName, Scope: depositorSection, Match: partyName, Post: NamePart},
		{Field: fieldDepositorCode, Scope: depositorSection, Match: partyCode, Post: compactUpper},
		{Field: fieldDepositorAddr, Scope: depositorSection, Match: partyAddress, Post: Collapse},
		{Field: fieldRecipientName, Scope: recipientSection, Match: partyName, Post: NamePart},
		{Field: fieldRecipientCode, Scope: recipientSection, Match: partyCode, Post: compactUpper},
		{Field: fieldRecipientAddr, Scope: recipientSection, Match: partyAddress, Post: Collapse},

		{Field: fieldTransportName, Scope: transportSection, Match: Labeled(`Trasportatore`, `Vettore`, `Denominazione`), Post: NamePart},
		{Field: fieldTransportDriver, Scope: transportSection, Match: Labeled(`Conducente`, `Autista`), Post: NamePart},
		{Field: fieldTransportPlate, Scope: transportSection, Match: Labeled(`Targa`, `Veicolo`, `Mezzo`), Post: Plate},

		{Field: fieldProductCode, Scope: productSection, Match: Labeled(`Codice[ \t]+NC`, `Codice[ \t]+prodotto`, `Codice`), Post: Chain(FirstToken, Upper)},
		{Field: fieldProductDescr, Scope: productSection, Match: Labeled(`Descrizione`), Post: Collapse},
		{Field: fieldProductNet, Scope: productSection, Match: Labeled(`Peso[ \t]+netto`), Post: Number},
		{Field: fieldVolumeAmbient, Scope: productSection, Match: Labeled(`Volume[ \t]+a[ \t]+temperatura[ \t]+ambiente`, `Volume[ \t]+ambiente`, `Litri[ \t]+ambiente`), Post: Number},
		{Field: fieldVolume15C, Scope: productSection, Match: Labeled(`Volume[ \t]+a[ \t]+15[ \t]*°?[ \t]*C`, `Litri[ \t]+a[ \t]+15[ \t]*°?[ \t]*C?`), Post: Number},
		{Field: fieldDensityAmbient, Scope: productSection, Match: Labeled(`Densit[àa][ \t]+a[ \t]+temperatura[ \t]+ambiente`, `Densit[àa][ \t]+ambiente`), Post: Number},
		{Field: fieldDensity15C, Scope: productSection, Match: Labeled(`Densit[àa][ \t]+a[ \t]+15[ \t]*°?[ \t]*C`), Post: Number},
	},
}

var (
	reInvoiceHeading = regexp.MustCompile(`(?im)^[ \t]*(?:Cedente|Cessionario|Dati[ \t]+generali|Dettaglio|Riepilog|Dati[ \t]+(?:di[ \t]+)?trasporto|(?:LINEA|RIGA)[ \t]*(?:N[R.°]?[ \t]*)?\d)`)

	issuerSection = Section(regexp.MustCompile(`(?im)^[ \t]*Cedente(?:[ \t]*/[ \t]*|[ \t]+)prestatore.*$`), reInvoiceHeading)
	clientSection = Section(regexp.MustCompile(`(?im)^[ \t]*Cessionario(?:[ \t]*/[ \t]*|[ \t]+)committente.*$`), reInvoiceHeading)
)

// InvoiceFromTextSchema reads the header of a rendered e-invoice. Lines are read
// separately with TextLineSchema.
var InvoiceFromTextSchema = Schema{
	Name: "invoice_text",
	Rules: []Rule{
		{Field: fieldInvoiceNumber, Match: Labeled(`Fattura[ \t]+(?:n[°.]?|numero)`, `Numero[ \t]+(?:documento|fattura)`, `N[°.][ \t]*fattura`), Post: FirstToken},
		{Field: fieldDate, Match: Labeled(`Data[ \t]+(?:documento|fattura)`, `Data`), Post: DayFirstDate},

		{Field: fieldIssuerName, Scope: issuerSection, Match: partyName, Post: NamePart},
		{Field: fieldIssuerTaxID, Scope: issuerSection, Match: taxID, Post: compactUpper},
		{Field: fieldIssuerAddress, Scope: issuerSection, Match: partyAddress, Post: Collapse},
		{Field: fieldClientName, Scope: clientSection, Match: partyName, Post: NamePart},
		{Field: fieldClientTaxID, Scope: clientSection, Match: taxID, Post: compactUpper},
		{Field: fieldClientAddress, Scope: clientSection, Match: partyAddress, Post: Collapse},

		{Field: fieldNet, Match: Labeled(`Totale[ \t]+imponibile`, `Imponibile`), Post: Number},
		{Field: fieldTax, Match: Labeled(`Totale[ \t]+(?:imposta|IVA)`, `Imposta`), Post: Number},
		{Field: fieldTotal, Match: Labeled(`Totale[ \t]+(?:documento|fattura|da[ \t]+pagare)`), Post: Number},

		{Field: fieldTransportRef, Match: Labeled(`DDT[ \t]*(?:n[°.]?|numero)`, `Documento[ \t]+di[ \t]+trasporto(?:[ \t]+n[°.]?)?`, `Rif(?:erimento)?\.?[ \t]*DDT`), Post: Chain(FirstToken, Upper)},
		{Field: fieldDeliveryAddr, Match: Labeled(`Luogo[ \t]+di[ \t]+consegna`, `Indirizzo[ \t]+(?:di[ \t]+)?(?:consegna|resa)`, `Destinazione[ \t]+merce`), Post: Collapse},
		{Field: fieldTransportQty, Match: quantity},
		{Field: fieldTransportPrice, Match: Labeled(`Prezzo[ \t]+unitario`), Post: Number},
	},
	Required: []string{fieldInvoiceNumber, fieldDate},
}

// TextLineSchema reads one "LINEA N" block of a rendered e-invoice.
var TextLineSchema = Schema{
	Name: "invoice_text_line",
	Rules: []Rule{
		{Field: fieldLineCode, Match: Labeled(`Cod(?:ice)?\.?[ \t]+(?:articolo|prodotto)`, `Codice`), Post: Chain(FirstToken, Upper)},
		{Field: fieldLineDesc, Match: Labeled(`Descrizione`), Post: Collapse},
		{Field: fieldLineQty, Match: Labeled(quantityLabels...), Post: Number},
		{Field: fieldLineUoM, Match: Labeled(`Unit[àa][ \t]+di[ \t]+misura`, `U\.?M\.?`), Post: Upper},
		{Field: fieldLineUnit, Match: Labeled(`Prezzo[ \t]+unitario`), Post: Number},
		{Field: fieldLineTotal, Match: Labeled(`Prezzo[ \t]+totale`, `Importo`, `Totale[ \t]+riga`), Post: Number},
		{Field: fieldLineVATRate, Match: Labeled(`Aliquota(?:[ \t]+IVA)?`, `IVA[ \t]*%`), Post: Number},
		{Field: fieldLineExtra, Match: Labeled(`Altri[ \t]+dati(?:[ \t]+gestionali)?`, `Riferimento[ \t]+testo`), Post: Collapse},
	},
}

func partyRules(block, name, taxIDField, address string) []Rule {
	in := Within(block)
	return []Rule{
		{Field: name, Scope: in, Match: Element("Denominazione"), Post: Collapse},
		{Field: name, Scope: in, Match: Join(" ", Element("Nome"), Element("Cognome")), Post: Collapse},
		{Field: taxIDField, Scope: in, Match: Join("", Element("IdFiscaleIVA", "IdPaese"), Element("IdFiscaleIVA", "IdCodice")), Post: compactUpper},
		{Field: taxIDField, Scope: in, Match: Element("CodiceFiscale"), Post: compactUpper},
		{Field: address, Scope: in, Match: Join(", ",
			Element("Sede", "Indirizzo"),
			Join(" ", Element("Sede", "CAP"), Element("Sede", "Comune")),
			Element("Sede", "Provincia"),
		), Post: Collapse},
	}
}

// InvoiceFromXMLSchema reads the header of a FatturaPA document. Lines are read
// separately with XMLLineSchema, one DettaglioLinee block at a time.
var InvoiceFromXMLSchema = Schema{
	Name:     "invoice_xml",
	Rules:    invoiceXMLRules(),
	Required: []string{fieldInvoiceNumber, fieldDate},
}

func invoiceXMLRules() []Rule {
	rules := []Rule{
		{Field: fieldInvoiceNumber, Match: Element("DatiGeneraliDocumento", "Numero"), Post: Collapse},
		{Field: fieldDate, Match: Element("DatiGeneraliDocumento", "Data"), Post: ISODate},
	}
	rules = append(rules, partyRules("CedentePrestatore", fieldIssuerName, fieldIssuerTaxID, fieldIssuerAddress)...)
	rules = append(rules, partyRules("CessionarioCommittente", fieldClientName, fieldClientTaxID, fieldClientAddress)...)
	return append(rules,
		Rule{Field: fieldNet, Match: SumOf("DatiRiepilogo", "ImponibileImporto")},
		Rule{Field: fieldTax, Match: SumOf("DatiRiepilogo", "Imposta")},
		Rule{Field: fieldTotal, Match: Element("DatiGeneraliDocumento", "ImportoTotaleDocumento"), Post: XMLNumber},
		Rule{Field: fieldTransportRef, Match: Element("DatiDDT", "NumeroDDT"), Post: Collapse},
		Rule{Field: fieldTransportRef, Match: Element("DatiOrdineAcquisto", "IdDocumento"), Post: Collapse},
		Rule{Field: fieldDeliveryAddr, Match: Join(", ",
			Element("DatiTrasporto", "IndirizzoResa", "Indirizzo"),
			Join(" ", Element("DatiTrasporto", "IndirizzoResa", "CAP"), Element("DatiTrasporto", "IndirizzoResa", "Comune")),
			Element("DatiTrasporto", "IndirizzoResa", "Provincia"),
		), Post: Collapse},
	)
}

// XMLLineSchema reads one DettaglioLinee block.
var XMLLineSchema = Schema{
	Name: "invoice_xml_line",
	Rules: []Rule{
		{Field: fieldLineNumber, Match: Element("NumeroLinea"), Post: XMLNumber},
		{Field: fieldLineCode, Match: Element("CodiceArticolo", "CodiceValore"), Post: Upper},
		{Field: fieldLineDesc, Match: Element("Descrizione"), Post: Collapse},
		{Field: fieldLineQty, Match: Element("Quantita"), Post: XMLNumber},
		{Field: fieldLineUoM, Match: Element("UnitaMisura"), Post: Upper},
		{Field: fieldLineUnit, Match: Element("PrezzoUnitario"), Post: XMLNumber},
		{Field: fieldLineTotal, Match: Element("PrezzoTotale"), Post: XMLNumber},
		{Field: fieldLineVATRate, Match: Element("AliquotaIVA"), Post: XMLNumber},
		{Field: fieldLineExtra, Match: otherManagementData},
	},
}

// otherManagementData flattens every AltriDatiGestionali block of a line.
func otherManagementData(region string) (string, bool) {
	var parts []string
	for _, b := range blocks(region, "AltriDatiGestionali") {
		kind, _ := Element("TipoDato")(b)
		ref, _ := FirstOf(Element("RiferimentoTesto"), Element("RiferimentoNumero"), Element("RiferimentoData"))(b)
		switch {
		case kind != "" && ref != "":
			parts = append(parts, kind+": "+ref)
		case ref != "":
			parts = append(parts, ref)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}
