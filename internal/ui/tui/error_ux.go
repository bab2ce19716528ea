package tui

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/uci"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into a short status line.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, usecase.ErrEmptyGame) {
		return "Nothing to save"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "uci."):
				return "Engine binary not found"
			case strings.HasPrefix(oe.Op, "gamestore."):
				return "Game not found"
			case strings.Contains(oe.Op, "workspacefinder.findroot"):
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindIllegalMove:
			if errors.Is(err, domain.ErrGameOver) {
				return "The game is over"
			}
			return "Illegal move"

		case domain.KindEngine:
			switch {
			case errors.Is(err, uci.ErrNoBestMove):
				return "Engine has no move"
			case errors.Is(err, context.DeadlineExceeded):
				return "Engine timed out"
			case errors.Is(err, domain.ErrIllegalMove):
				return "Engine played an illegal move"
			}
			return "Engine error (see logs)"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}
	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
