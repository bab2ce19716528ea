package usecase

import (
	"path/filepath"
	"testing"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

type recordingInitializer struct {
	got   domain.WorkspaceSpec
	force bool
	calls int
}

func (r *recordingInitializer) Init(ws domain.WorkspaceSpec, force bool) error {
	r.got, r.force = ws, force
	r.calls++
	return nil
}

func TestInitWorkspace_MakesRootAbsolute(t *testing.T) {
	rec := &recordingInitializer{}
	if err := NewInitWorkspace(rec).Execute("some/dir", true); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !filepath.IsAbs(rec.got.Root) || filepath.Base(rec.got.Root) != "dir" {
		t.Fatalf("expected absolute root, got %q", rec.got.Root)
	}
	if !rec.force {
		t.Fatalf("force flag was not passed through")
	}
}

func TestInitWorkspace_RejectsEmptyRoot(t *testing.T) {
	rec := &recordingInitializer{}
	err := NewInitWorkspace(rec).Execute("  ", false)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("initializer must not run")
	}
}
