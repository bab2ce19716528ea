package usecase

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute scaffolds a workspace at root, which is made absolute first.
func (uc *InitWorkspace) Execute(root string, force bool) error {
	if strings.TrimSpace(root) == "" {
		return &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindInvalidConfig, Err: errors.New("workspace root is empty")}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindExecution, Path: root, Err: err}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force)
}
