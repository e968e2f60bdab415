package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Marker is the placeholder a template carries where the result document is
// embedded. It doubles as a JS comment so templates stay valid on their own.
const Marker = "/* __PORTFOLIO_DATA__ */"

// BuildHTML embeds the portfolio result document into an HTML template by
// placeholder substitution and writes the self-contained page to outPath.
func BuildHTML(templatePath, outPath string, res types.PortfolioResult) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template %s: %w", templatePath, err)
	}
	if !bytes.Contains(tmpl, []byte(Marker)) {
		return fmt.Errorf("template %s has no %q marker", templatePath, Marker)
	}
	data, err := json.MarshalIndent(model(res), "", "  ")
	if err != nil {
		return err
	}
	page := bytes.Replace(tmpl, []byte(Marker), data, 1)
	return os.WriteFile(outPath, page, 0o644)
}
