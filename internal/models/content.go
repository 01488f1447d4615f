package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content/world.yaml
var worldYAML []byte

// LoadWorld parses and validates the embedded world content.
func LoadWorld() (*World, error) {
	var w World
	if err := yaml.Unmarshal(worldYAML, &w); err != nil {
		return nil, fmt.Errorf("parse world content: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world content: %w", err)
	}
	return &w, nil
}

// Validate checks the cross-references the engine relies on: a catalog
// of unique ids, family balls and keys that exist, and door keys that
// are obtainable somewhere.
func (w *World) Validate() error {
	if len(w.Balls) == 0 {
		return fmt.Errorf("ball catalog is empty")
	}
	seen := make(map[BallID]bool, len(w.Balls))
	for _, b := range w.Balls {
		if b.ID == "" {
			return fmt.Errorf("ball with empty id")
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate ball id %q", b.ID)
		}
		seen[b.ID] = true
	}

	if _, ok := w.BallByID(w.FirstBall); !ok {
		return fmt.Errorf("first ball %q not in catalog", w.FirstBall)
	}

	obtainable := map[KeyID]bool{KeyAuto: true}
	for _, k := range w.Keys {
		obtainable[k.KeyID] = true
	}
	for _, f := range w.Family {
		if _, ok := w.BallByID(f.BallID); !ok {
			return fmt.Errorf("family member %q gives unknown ball %q", f.CharacterID, f.BallID)
		}
		if f.KeyID == "" || f.KeyID == KeyAuto {
			return fmt.Errorf("family member %q has no key to give", f.CharacterID)
		}
		if f.Birthdate == (Birthdate{}) {
			return fmt.Errorf("family member %q has no birthdate", f.CharacterID)
		}
		obtainable[f.KeyID] = true
	}

	for _, d := range w.Doors {
		if d.RequiredKey == "" {
			return fmt.Errorf("door %q has empty required key", d.ID)
		}
		if !obtainable[d.RequiredKey] {
			return fmt.Errorf("door %q requires key %q which nothing grants", d.ID, d.RequiredKey)
		}
		if d.Region.Width <= 0 || d.Region.Height <= 0 {
			return fmt.Errorf("door %q has a degenerate region", d.ID)
		}
	}

	for _, s := range w.BallSpawns {
		if _, ok := w.BallByID(s.BallID); !ok {
			return fmt.Errorf("ball spawn references unknown ball %q", s.BallID)
		}
		if s.BallID == w.FirstBall {
			return fmt.Errorf("first ball %q must not spawn on the map", s.BallID)
		}
	}
	return nil
}
