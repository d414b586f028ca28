package main

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/viam-labs/openspace-planner/geom"
	"github.com/viam-labs/openspace-planner/openspace"
)

// scenario is the on-disk shape a scenario file decodes into: start/goal
// poses, a workspace bound, obstacle and soft-boundary polygons, and an
// optional config override layered on top of openspace.DefaultConfig.
type scenario struct {
	Start     geom.Pose       `json:"start"`
	Goal      geom.Pose       `json:"goal"`
	Workspace geom.Workspace  `json:"workspace"`
	Obstacles [][]r2.Point    `json:"obstacles"`
	SoftBound [][]r2.Point    `json:"soft_boundaries"`
	LastStraight bool         `json:"reeds_shepp_last_straight"`
	Config    *openspace.Config `json:"config"`
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, errors.Wrap(err, "reading scenario file")
	}
	defaults := openspace.DefaultConfig()
	s := scenario{Config: &defaults}
	if err := json.Unmarshal(data, &s); err != nil {
		return scenario{}, errors.Wrap(err, "parsing scenario file")
	}
	return s, nil
}

func (s scenario) resolvedConfig() openspace.Config {
	if s.Config == nil {
		return openspace.DefaultConfig()
	}
	return *s.Config
}
