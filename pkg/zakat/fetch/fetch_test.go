package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCachingClient(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := newCachingClient(dir, false)
	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != `{"ok":true}` {
			t.Fatalf("request %d: body = %q", i, body)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}

	// offline mode replays the same cache
	offline := newCachingClient(dir, true)
	resp, err := offline.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if hits != 1 {
		t.Errorf("offline client reached the server")
	}

	// and fails on a miss instead of going out
	if _, err := offline.Get(srv.URL + "/other"); err == nil {
		t.Error("offline miss should fail")
	}
}

func TestCachingClientSkipsErrorResponses(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newCachingClient(t.TempDir(), false)
	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	if hits != 2 {
		t.Errorf("server hit %d times, want 2 (errors must not be cached)", hits)
	}
}

func tsItem(name string, rows ...any) map[string]any {
	return map[string]any{
		"meta": map[string]any{"type": []any{name}},
		name:   rows,
	}
}

func tsRow(asOf string, raw float64) map[string]any {
	return map[string]any{
		"asOfDate":      asOf,
		"reportedValue": map[string]any{"raw": raw},
	}
}

func TestLatestValue(t *testing.T) {
	item := tsItem("quarterlyCashAndCashEquivalents",
		tsRow("2025-12-31", 50),
		tsRow("2026-03-31", 80),
		nil, // trailing null row
	)
	name, asOf, raw, ok := latestValue(item)
	if !ok {
		t.Fatal("expected a value")
	}
	if name != "quarterlyCashAndCashEquivalents" || asOf != "2026-03-31" || raw != 80 {
		t.Errorf("got (%q, %q, %v)", name, asOf, raw)
	}
}

func TestLatestValueMalformed(t *testing.T) {
	testCases := []struct {
		name string
		item any
	}{
		{"not a map", "x"},
		{"no meta", map[string]any{}},
		{"no rows", map[string]any{"meta": map[string]any{"type": []any{"quarterlyReceivables"}}}},
		{"all rows null", tsItem("quarterlyReceivables", nil, nil)},
		{"no raw value", tsItem("quarterlyReceivables", map[string]any{"asOfDate": "2026-03-31"})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, ok := latestValue(tc.item); ok {
				t.Error("expected no value")
			}
		})
	}
}

func TestRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result":"success","base_code":"USD","rates":{"USD":1,"GBP":0.8,"JPY":150}}`)
	}))
	defer srv.Close()

	s := New(Options{FxURL: srv.URL, CacheDir: t.TempDir()})
	table, err := s.Rates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Rate("GBP") != 0.8 || table.Rate("JPY") != 150 {
		t.Errorf("rates wrong: %v", table)
	}
	// pence entries are synthesized from GBP
	if table.Rate("GBp") != 80 || table.Rate("GBX") != 80 {
		t.Errorf("minor units missing: GBp=%v GBX=%v", table.Rate("GBp"), table.Rate("GBX"))
	}
}

func TestRatesFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result":"error","error-type":"invalid-key"}`)
	}))
	defer srv.Close()

	s := New(Options{FxURL: srv.URL, CacheDir: t.TempDir()})
	if _, err := s.Rates(context.Background()); err == nil || !strings.Contains(err.Error(), `"error"`) {
		t.Fatalf("want api failure error, got %v", err)
	}
}

func TestPaceFirstFetchIsImmediate(t *testing.T) {
	s := New(Options{Delay: time.Hour, CacheDir: t.TempDir()})
	done := make(chan struct{})
	go func() {
		s.pace(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first pace call should not sleep")
	}
}

func TestPaceHonorsCancel(t *testing.T) {
	s := New(Options{Delay: time.Hour, CacheDir: t.TempDir()})
	s.pace(context.Background()) // consume the free first slot

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		s.pace(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pace should return once the context is cancelled")
	}
}
