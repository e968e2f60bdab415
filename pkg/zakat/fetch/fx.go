package fetch

import (
	"context"
	"fmt"

	"github.com/komsit37/zakat/pkg/zakat/fx"
)

// DefaultFxURL serves rates relative to 1 USD, free and keyless.
const DefaultFxURL = "https://open.er-api.com/v6/latest/USD"

// Rates fetches the FX rate table and adds synthetic minor-unit entries.
// The table is immutable for the rest of the run.
func (s *Service) Rates(ctx context.Context) (fx.Table, error) {
	var payload struct {
		Result string             `json:"result"`
		Base   string             `json:"base_code"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := jwget(ctx, s.http, s.fxURL, &payload); err != nil {
		return nil, fmt.Errorf("fetch fx rates: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("fx rate api returned %q", payload.Result)
	}
	return fx.WithMinorUnits(fx.Table(payload.Rates)), nil
}
