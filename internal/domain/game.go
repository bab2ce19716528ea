package domain

import (
	"fmt"
	"strings"
	"time"
)

// Side is the color a player controls.
type Side string

const (
	SideWhite Side = "white"
	SideBlack Side = "black"
)

// ParseSide accepts "white"/"black" and the single letters "w"/"b".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return SideWhite, nil
	case "black", "b":
		return SideBlack, nil
	}
	return "", fmt.Errorf("%w: unknown side %q", ErrInvalidConfig, s)
}

func (s Side) Other() Side {
	if s == SideBlack {
		return SideWhite
	}
	return SideBlack
}

// Mode tells whether the second player is the engine or another human.
type Mode string

const (
	ModeEngine    Mode = "engine"
	ModeTwoPlayer Mode = "two_player"
)

// Outcome is the result of a game, or OutcomeOngoing while it is still being played.
type Outcome string

const (
	OutcomeOngoing   Outcome = "ongoing"
	OutcomeWhiteWins Outcome = "white_wins"
	OutcomeBlackWins Outcome = "black_wins"
	OutcomeStalemate Outcome = "stalemate"
	OutcomeFiftyMove Outcome = "fifty_move_draw"
)

func (o Outcome) Finished() bool {
	return o != "" && o != OutcomeOngoing
}

// Label is the human readable form shown at the end of a game.
func (o Outcome) Label() string {
	switch o {
	case OutcomeWhiteWins:
		return "Checkmate! White wins"
	case OutcomeBlackWins:
		return "Checkmate! Black wins"
	case OutcomeStalemate:
		return "Stalemate"
	case OutcomeFiftyMove:
		return "Draw by fifty-move rule"
	default:
		return "In progress"
	}
}

// Position is what an engine needs to pick a move: where the game started and what was played.
// An empty StartFEN means the standard starting position.
type Position struct {
	StartFEN string
	Moves    []string
}

// GameRecord is a persisted game.
type GameRecord struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Mode      Mode   `json:"mode"`
	HumanSide Side   `json:"human_side,omitempty"`
	Engine    string `json:"engine,omitempty"`

	StartFEN string   `json:"start_fen"`
	Moves    []string `json:"moves"`
	FinalFEN string   `json:"final_fen"`
	Outcome  Outcome  `json:"outcome"`
}

// GameSummary is one line of the game index.
type GameSummary struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Mode      Mode      `json:"mode"`
	Outcome   Outcome   `json:"outcome"`
	Moves     int       `json:"moves"`
	StartedAt time.Time `json:"started_at"`
}
