package domain

import "time"

// Config represents the iro configuration loaded from iro.yaml.
type Config struct {
	Engine EngineConfig
	Play   PlayConfig
	Paths  PathsConfig
}

type EngineConfig struct {
	// Path overrides the bundled engine location. Relative paths resolve against the workspace root.
	Path        string
	Depth       int
	MoveTimeout time.Duration
}

type PlayConfig struct {
	Computer  bool
	HumanSide Side
}

type PathsConfig struct {
	GamesDir string
}

// DefaultConfig provides sane defaults if iro.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			Depth:       6,
			MoveTimeout: 30 * time.Second,
		},
		Play: PlayConfig{
			Computer:  true,
			HumanSide: SideWhite,
		},
		Paths: PathsConfig{
			GamesDir: "games",
		},
	}
}

// WorkspaceSpec describes where a workspace is scaffolded.
type WorkspaceSpec struct {
	Root string
}
