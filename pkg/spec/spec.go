package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the file LoadProject looks for in a project directory.
const ProjectFile = "city.yaml"

// DefaultConfig returns the configuration applied before a project file is
// decoded on top of it. MinDistanceBetweenPOIs and BoundsSize have usable
// defaults but projects are expected to set them.
func DefaultConfig() Config {
	return Config{
		MinDistanceBetweenPOIs: 100,
		BoundsSize:             1024,
		SpreadMode:             SpreadPoisson,
		RNGSeed:                1,
		QuadrantMinimum:        1,
		GridJitterAmount:       20,
		MaxSnapDistance:        96,
		RepositionPercentage:   0.3,
		TileSize:               16,
		LocalRoadSpacingTiles:  6,
		DistrictRadiusPerPOI:   48,
		MaxFillDensity:         0.25,
		AccessibilityThreshold: 0.95,
		SpacingAcceptRatio:     0.8,
		QuadrantRetries:        3,
		HybridIterations:       40,
		PoissonAttempts:        30,
		GoalSearchRadius:       5,
	}
}

// Load reads a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data)
}

// Parse decodes project YAML on top of DefaultConfig.
func Parse(data []byte) (*Project, error) {
	project := Project{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	return &project, nil
}

// LoadProject loads a project from a project directory.
// It looks for city.yaml in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	return Load(filepath.Join(projectDir, ProjectFile))
}
