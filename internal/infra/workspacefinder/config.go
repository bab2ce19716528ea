package workspacefinder

import (
	"path/filepath"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/config"
)

// ConfigFile is the file that marks a workspace root.
const ConfigFile = "iro.yaml"

// LoadConfig loads iro.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return config.Load(filepath.Join(root, ConfigFile))
}
