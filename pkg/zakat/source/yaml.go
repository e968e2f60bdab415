package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// YAMLSource loads portfolios from a YAML file or from every .yaml/.yml
// file under a directory.
type YAMLSource struct{}

// Load expects spec to be a file or directory path.
func (YAMLSource) Load(ctx context.Context, spec string) ([]types.Portfolio, error) { //nolint:revive // ctx reserved for future use
	info, err := os.Stat(spec)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return loadFile(spec)
	}

	var files []string
	err = filepath.WalkDir(spec, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var all []types.Portfolio
	for _, f := range files {
		ps, err := loadFile(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		all = append(all, ps...)
	}
	return all, nil
}

func loadFile(path string) ([]types.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ps, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// A portfolio with no name takes the file name.
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range ps {
		if strings.TrimSpace(ps[i].Name) == "" {
			ps[i].Name = base
		}
	}
	return ps, nil
}

// Parse reads one of two YAML shapes: a single portfolio document, or a map
// with a top-level "portfolios" list.
func Parse(data []byte) ([]types.Portfolio, error) {
	var multi struct {
		Portfolios []types.Portfolio `yaml:"portfolios"`
	}
	if err := yaml.Unmarshal(data, &multi); err == nil && len(multi.Portfolios) > 0 {
		return validate(multi.Portfolios)
	}

	var single types.Portfolio
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	if len(single.Holdings) == 0 {
		return nil, fmt.Errorf("no holdings found")
	}
	return validate([]types.Portfolio{single})
}

func validate(ps []types.Portfolio) ([]types.Portfolio, error) {
	for _, p := range ps {
		for i, h := range p.Holdings {
			if strings.TrimSpace(h.Ticker) == "" {
				return nil, fmt.Errorf("portfolio %q: holding %d has no ticker", p.Name, i)
			}
		}
	}
	return ps, nil
}
