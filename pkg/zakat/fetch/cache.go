package fetch

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache caches HTTP responses on disk. The cache key includes the UTC
// day, so entries expire daily; raw market data is refreshed between runs,
// never within one.
type diskCache struct {
	base    http.RoundTripper
	dir     string
	offline bool
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	day := time.Now().UTC().Format("2006-01-02")
	key := fmt.Sprintf("%x", sha1.Sum([]byte(day+" "+req.Method+" "+req.URL.String())))

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}
	if c.offline {
		return nil, fmt.Errorf("offline: no cached response for %s", req.URL.Host+req.URL.Path)
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// a failed cache write only costs a refetch tomorrow
	_ = c.put(key, resp)
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// newCachingClient returns an HTTP client whose responses are cached in dir
// with daily expiry. With offline set, only cached responses are served.
func newCachingClient(dir string, offline bool) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	_ = os.MkdirAll(dir, 0o755)
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir, offline: offline}}
}
