package pricing

import (
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/dates"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// Price table layout: row 1 is the header, column A is unused, column B holds the date
// and columns C onward hold one price series each.
const (
	dateColumn  = 1
	firstColumn = 2
)

// OpenXLSX loads the price table from a workbook on disk.
func OpenXLSX(path, sheet string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewAppError(common.CodePriceTable, "open price table "+path, err)
	}
	defer f.Close()
	return LoadXLSX(f, sheet)
}

// LoadXLSX reads the price table from r. An empty sheet name selects the first sheet.
// Dates may be Excel serials, ISO text or US-style m/d/yy text; rows without a readable
// date are skipped.
func LoadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, common.NewAppError(common.CodePriceTable, "read workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, common.NewAppError(common.CodePriceTable, "workbook has no sheets", common.ErrNoData)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, common.NewAppError(common.CodePriceTable, "read sheet "+sheet, err)
	}
	if len(rows) < 2 {
		return nil, common.NewAppError(common.CodePriceTable, "sheet "+sheet+" has no price rows", common.ErrNoData)
	}

	header := rows[0]
	out := make([]entity.PriceRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if len(cells) <= dateColumn {
			continue
		}
		d, ok := dates.Parse(cells[dateColumn], dates.MonthFirst)
		if !ok {
			continue
		}
		pr := entity.PriceRow{Date: d.Format(dates.ISO), Prices: make(map[string]decimal.Decimal)}
		for c := firstColumn; c < len(cells) && c < len(header); c++ {
			label := strings.TrimSpace(header[c])
			if label == "" {
				continue
			}
			if p, ok := parsePrice(cells[c]); ok {
				pr.Prices[label] = p
			}
		}
		out = append(out, pr)
	}
	return NewTable(out)
}

// parsePrice reads a cell as a positive price. Text cells may use a decimal comma.
func parsePrice(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.NewReplacer("€", "", " ", "", "\u00a0", "").Replace(cell))
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	p, err := decimal.NewFromString(s)
	if err != nil || !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}
