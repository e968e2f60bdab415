// Package render turns portfolio results into console tables, JSON files
// and self-contained HTML pages.
package render

import (
	"io"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Renderer renders portfolio results to an output writer.
type Renderer interface {
	Render(w io.Writer, results []types.PortfolioResult, opts Options) error
}

type Options struct {
	Color           bool
	MaxColWidth     int
	DisplayCurrency string
	TableWidth      int // clamp total table width, 0 for unlimited
}
