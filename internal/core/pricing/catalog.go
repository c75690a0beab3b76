package pricing

import (
	_ "embed"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the column-label templates of the price table. It is data rather than
// code because suppliers relabel their columns without notice.
type Catalog struct {
	Products  map[string]string   `yaml:"products"`
	Bases     map[string]string   `yaml:"bases"`
	Suppliers map[string][]string `yaml:"suppliers"`
	Default   []string            `yaml:"default"`
}

// LoadCatalog reads a catalog file; an empty path yields the embedded default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "read price catalog "+path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, common.NewAppError(common.CodeConfig, "parse price catalog", err)
	}
	if len(c.Suppliers) == 0 && len(c.Default) == 0 {
		return nil, common.NewAppError(common.CodeConfig, "price catalog has no templates", common.ErrInvalidInput)
	}
	return &c, nil
}

// Candidates expands the templates of supplier into concrete column labels, in order and
// without duplicates.
func (c *Catalog) Candidates(supplier, product, base string) []string {
	templates, ok := c.Suppliers[supplier]
	if !ok {
		templates = c.Default
	}
	productLabel := c.Products[product]
	if productLabel == "" {
		productLabel = product
	}
	short := c.Bases[base]
	if short == "" {
		short = base
	}
	r := strings.NewReplacer(
		"{supplier}", supplier,
		"{base_short}", short,
		"{base}", base,
		"{product}", productLabel,
	)
	seen := make(map[string]bool, len(templates))
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		label := strings.TrimSpace(r.Replace(t))
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}
