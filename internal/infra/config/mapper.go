package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

// MaxDepth bounds engine.depth.
const MaxDepth = 64

// MapConfig applies the parsed file on top of domain.DefaultConfig.
func MapConfig(path string, y YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	e := y.Iro.Engine
	if p := strings.TrimSpace(e.Path); p != "" {
		cfg.Engine.Path = p
	}
	if e.Depth != nil {
		if *e.Depth < 1 || *e.Depth > MaxDepth {
			return domain.DefaultConfig(), invalidField(path, "engine.depth", fmt.Sprintf("must be between 1 and %d, got %d", MaxDepth, *e.Depth))
		}
		cfg.Engine.Depth = *e.Depth
	}
	if s := strings.TrimSpace(e.MoveTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return domain.DefaultConfig(), invalidField(path, "engine.move_timeout", err.Error())
		}
		if d < 0 {
			return domain.DefaultConfig(), invalidField(path, "engine.move_timeout", "must not be negative")
		}
		cfg.Engine.MoveTimeout = d
	}

	p := y.Iro.Play
	if p.Computer != nil {
		cfg.Play.Computer = *p.Computer
	}
	if strings.TrimSpace(p.HumanSide) != "" {
		side, err := domain.ParseSide(p.HumanSide)
		if err != nil {
			return domain.DefaultConfig(), invalidField(path, "play.human_side", fmt.Sprintf("unknown side %q", p.HumanSide))
		}
		cfg.Play.HumanSide = side
	}

	if d := strings.TrimSpace(y.Iro.Paths.GamesDir); d != "" {
		cfg.Paths.GamesDir = d
	}
	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
