package ports

import "github.com/Irokanade/iro-chess-gui/internal/domain"

// WorkspaceInitializer lays out a workspace: iro.yaml, the games directory, the engine/<os>
// directories and the log directory. Existing files are left alone unless force is set.
type WorkspaceInitializer interface {
	Init(ws domain.WorkspaceSpec, force bool) error
}
