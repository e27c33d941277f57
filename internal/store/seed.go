package store

import (
	"context"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-scorecard/pkg/scorecard"
)

// Seed is the YAML layout accepted by LoadSeed.
//
//	rules:
//	  - rule_no: 1
//	    rule_id: q1
//	    bp_section: bp1
//	    ...
//	forms:
//	  42:
//	    q1: "yes"
type Seed struct {
	Rules []scorecard.Rule         `yaml:"rules"`
	Forms map[int64]scorecard.Form `yaml:"forms"`
}

// ReadSeed decodes seed data. Unknown fields are an error.
func ReadSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var seed Seed
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &seed, nil
}

// LoadSeed stores every rule and form of seed.
func (s *Store) LoadSeed(ctx context.Context, seed *Seed) error {
	if err := s.SaveRules(ctx, seed.Rules); err != nil {
		return err
	}
	for id, form := range seed.Forms {
		if err := s.SaveForm(ctx, id, form); err != nil {
			return err
		}
	}
	return nil
}
