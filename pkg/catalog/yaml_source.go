package catalog

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSource loads the catalog definition from a YAML file on every Load call,
// so a restart or reload picks up edited plan tables without a deploy.
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source reading the catalog definition from path.
//
// Expected document shape:
//
//	tiers:
//	  starter:
//	    features: [bulk_import, sms_notifications]
//	    limits:
//	      students: {limit: 200, kind: hard, reset: never}
//	      ai_tokens: {limit: 10000, kind: soft, reset: monthly, overage_rate: 0.002}
//	categories:
//	  ai: [ai_lesson_plan, ai_grading]
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

// Load reads, parses and validates the YAML file.
func (s *yamlSource) Load(ctx context.Context) (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	cat, err := New(def)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	return cat, nil
}
