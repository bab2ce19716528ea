package config

// YAMLConfig mirrors iro.yaml. Pointers and strings stay unset when a key is missing so that
// defaults survive.
type YAMLConfig struct {
	Iro YAMLIro `yaml:"iro"`
}

type YAMLIro struct {
	Engine YAMLEngine `yaml:"engine"`
	Play   YAMLPlay   `yaml:"play"`
	Paths  YAMLPaths  `yaml:"paths"`
}

type YAMLEngine struct {
	Path        string `yaml:"path"`
	Depth       *int   `yaml:"depth"`
	MoveTimeout string `yaml:"move_timeout"`
}

type YAMLPlay struct {
	Computer  *bool  `yaml:"computer"`
	HumanSide string `yaml:"human_side"`
}

type YAMLPaths struct {
	GamesDir string `yaml:"games_dir"`
}
