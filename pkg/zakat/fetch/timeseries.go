package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/komsit37/zakat/pkg/zakat/classify"
	"github.com/komsit37/zakat/pkg/zakat/types"
)

// balanceSheet fetches the line items the classifier can consume from the
// fundamentals-timeseries endpoint. Quarterly figures are preferred as more
// recent; annual figures are the fallback. An empty record with a nil error
// means the endpoint answered but reported nothing usable.
func (s *Service) balanceSheet(ctx context.Context, ticker string) (types.Record, string, string, error) {
	names := classify.FieldNames()
	params := make([]string, 0, 2*len(names))
	for _, n := range names {
		params = append(params, "quarterly"+n, "annual"+n)
	}

	now := time.Now().UTC()
	addr := fmt.Sprintf(
		"https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries/%s?symbol=%s&type=%s&period1=%d&period2=%d",
		url.PathEscape(ticker), url.QueryEscape(ticker), strings.Join(params, ","),
		now.AddDate(-2, 0, 0).Unix(), now.Unix(),
	)

	var jobj any
	if err := jwget(ctx, s.http, addr, &jobj); err != nil {
		return nil, "", "", err
	}

	jval, err := jsonpath.Get("$.timeseries.result", jobj)
	if err != nil {
		return nil, "", "", fmt.Errorf("unexpected timeseries payload for %s: %w", ticker, err)
	}
	items, ok := jval.([]any)
	if !ok {
		return nil, "", "", fmt.Errorf("unexpected timeseries payload for %s", ticker)
	}

	quarterly, qDate := types.Record{}, ""
	annual, aDate := types.Record{}, ""
	for _, it := range items {
		name, asOf, raw, ok := latestValue(it)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(name, "quarterly"):
			quarterly[strings.TrimPrefix(name, "quarterly")] = raw
			if asOf > qDate {
				qDate = asOf
			}
		case strings.HasPrefix(name, "annual"):
			annual[strings.TrimPrefix(name, "annual")] = raw
			if asOf > aDate {
				aDate = asOf
			}
		}
	}

	if len(quarterly) > 0 {
		return quarterly, qDate, "quarterly", nil
	}
	if len(annual) > 0 {
		return annual, aDate, "annual", nil
	}
	return types.Record{}, "", "", nil
}

// latestValue pulls the most recent reported value out of one timeseries
// result item. Rows are chronological; trailing entries can be null.
func latestValue(item any) (name, asOfDate string, raw float64, ok bool) {
	m, isMap := item.(map[string]any)
	if !isMap {
		return "", "", 0, false
	}
	jval, err := jsonpath.Get("$.meta.type[0]", m)
	if err != nil {
		return "", "", 0, false
	}
	name, isStr := jval.(string)
	if !isStr {
		return "", "", 0, false
	}
	rows, isList := m[name].([]any)
	if !isList {
		return "", "", 0, false
	}
	for i := len(rows) - 1; i >= 0; i-- {
		row, isMap := rows[i].(map[string]any)
		if !isMap {
			continue
		}
		rv, isMap := row["reportedValue"].(map[string]any)
		if !isMap {
			continue
		}
		v, isNum := rv["raw"].(float64)
		if !isNum {
			continue
		}
		asOf, _ := row["asOfDate"].(string)
		return name, asOf, v, true
	}
	return "", "", 0, false
}
