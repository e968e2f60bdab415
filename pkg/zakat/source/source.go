// Package source loads portfolio specifications from YAML files.
package source

import (
	"context"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Source loads portfolios from a specification (e.g., filepath).
type Source interface {
	Load(ctx context.Context, spec string) ([]types.Portfolio, error)
}
