// Package gamestore persists game records as JSON files under the workspace games directory.
package gamestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/logger"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

const (
	defaultGamesDir = "games"
	indexFile       = "index.jsonl"
)

type JSONStore struct {
	rootDir      string
	gamesDirName string
	writeIndex   bool
	now          func() time.Time
	newID        func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: games/index.jsonl. It gets one line per game file,
// written the first time that file is saved.
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator replaces uuid generation for records saved without an ID.
func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	gamesDir := cfg.Paths.GamesDir
	if strings.TrimSpace(gamesDir) == "" {
		gamesDir = defaultGamesDir
	}

	s := &JSONStore{
		rootDir:      root,
		gamesDirName: gamesDir,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.GameStore = (*JSONStore)(nil)

func (s *JSONStore) dir() string {
	if filepath.IsAbs(s.gamesDirName) {
		return s.gamesDirName
	}
	return filepath.Join(s.rootDir, s.gamesDirName)
}

// SaveGame writes the record and returns its id.
func (s *JSONStore) SaveGame(game domain.GameRecord) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "gamestore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	toSave := game
	if strings.TrimSpace(toSave.ID) == "" {
		toSave.ID = s.newID()
	}
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = s.now()
	}
	toSave.StartedAt = toSave.StartedAt.UTC()
	if toSave.EndedAt.IsZero() {
		toSave.EndedAt = s.now()
	}
	toSave.EndedAt = toSave.EndedAt.UTC()
	if toSave.Moves == nil {
		toSave.Moves = []string{}
	}
	if toSave.Outcome == "" {
		toSave.Outcome = domain.OutcomeOngoing
	}

	filename := fmt.Sprintf("%s_%s.json", toSave.StartedAt.Format("20060102T150405Z"), shortID(toSave.ID))
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "gamestore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	_, statErr := os.Stat(path)
	resave := statErr == nil

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "gamestore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "gamestore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex && !resave {
		if err := s.appendIndex(dir, summarize(filename, toSave)); err != nil {
			// the game itself is on disk, so a stale index is not fatal
			logger.L().Warn("gamestore.index.failed", "game", toSave.ID, "path", filepath.Join(dir, indexFile), "err", err)
		}
	}

	return toSave.ID, nil
}

func (s *JSONStore) appendIndex(dir string, sum domain.GameSummary) error {
	line, err := json.Marshal(sum)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

type storedGame struct {
	file   string
	record domain.GameRecord
}

// scan decodes every record in the games directory. Unreadable files are skipped.
func (s *JSONStore) scan() ([]storedGame, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "gamestore.scan",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	out := make([]storedGame, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var rec domain.GameRecord
		if err := json.Unmarshal(b, &rec); err != nil || rec.ID == "" {
			continue
		}
		out = append(out, storedGame{file: e.Name(), record: rec})
	}
	return out, nil
}

// ListGames returns summaries of stored games, newest first.
func (s *JSONStore) ListGames() ([]domain.GameSummary, error) {
	games, err := s.scan()
	if err != nil {
		return nil, err
	}

	out := make([]domain.GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, summarize(g.file, g.record))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].File > out[j].File
	})
	return out, nil
}

// LoadGame finds a game by full id, unique id prefix, or file name.
func (s *JSONStore) LoadGame(id string) (domain.GameRecord, error) {
	g, err := s.find(id)
	if err != nil {
		return domain.GameRecord{}, err
	}
	return g.record, nil
}

// QueryGame evaluates a JSONPath expression (e.g. "$.moves[0]") against the stored game.
func (s *JSONStore) QueryGame(id, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "gamestore.query",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("empty jsonpath expression"),
		}
	}

	g, err := s.find(id)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir(), g.file)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{Op: "gamestore.query", Kind: domain.KindExecution, Path: path, Err: err}
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &domain.OpError{Op: "gamestore.query", Kind: domain.KindExecution, Path: path, Err: err}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "gamestore.query",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
		}
	}
	return val, nil
}

func (s *JSONStore) find(id string) (storedGame, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" {
		return storedGame{}, &domain.OpError{
			Op:   "gamestore.load",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("game id is empty"),
		}
	}

	games, err := s.scan()
	if err != nil {
		return storedGame{}, err
	}

	var matches []storedGame
	for _, g := range games {
		if g.record.ID == id || strings.TrimSuffix(g.file, ".json") == id {
			return g, nil
		}
		if strings.HasPrefix(g.record.ID, id) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 0:
		return storedGame{}, &domain.OpError{
			Op:   "gamestore.load",
			Kind: domain.KindNotFound,
			Path: s.dir(),
			Err:  fmt.Errorf("game %q: %w", id, domain.ErrNotFound),
		}
	case 1:
		return matches[0], nil
	default:
		return storedGame{}, &domain.OpError{
			Op:   "gamestore.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("game id prefix %q matches %d games", id, len(matches)),
		}
	}
}

func summarize(file string, g domain.GameRecord) domain.GameSummary {
	return domain.GameSummary{
		ID:        g.ID,
		File:      file,
		Mode:      g.Mode,
		Outcome:   g.Outcome,
		Moves:     len(g.Moves),
		StartedAt: g.StartedAt,
	}
}

// shortID keeps the first eight alphanumerics of id for the file name.
func shortID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if b.Len() == 8 {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "game"
	}
	return b.String()
}
