package gamestore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

func sampleGame(id string, start time.Time) domain.GameRecord {
	return domain.GameRecord{
		ID:        id,
		StartedAt: start,
		EndedAt:   start.Add(3 * time.Minute),
		Mode:      domain.ModeEngine,
		HumanSide: domain.SideWhite,
		StartFEN:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:     []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		FinalFEN:  "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		Outcome:   domain.OutcomeBlackWins,
	}
}

func TestSaveGame_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveGame(sampleGame("0f8fad5b-d9cb-469f-a165-70867728950e", start))
	if err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}
	if id != "0f8fad5b-d9cb-469f-a165-70867728950e" {
		t.Fatalf("unexpected id %q", id)
	}

	wantFile := filepath.Join(tmp, "games", "20260203T101112Z_0f8fad5b.json")
	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("expected file at %s: %v", wantFile, err)
	}

	var decoded domain.GameRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Outcome != domain.OutcomeBlackWins {
		t.Fatalf("expected outcome black_wins, got=%q", decoded.Outcome)
	}
	if len(decoded.Moves) != 4 || decoded.Moves[3] != "d8h4" {
		t.Fatalf("unexpected moves %v", decoded.Moves)
	}

	if _, err := os.Stat(wantFile + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file should be renamed away, stat err=%v", err)
	}
}

func TestSaveGame_GeneratesIDAndTimestamps(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	store := NewJSONStore(tmp, domain.DefaultConfig(),
		WithNow(func() time.Time { return now }),
		WithIDGenerator(func() string { return "abc-123-def-456" }),
	)

	id, err := store.SaveGame(domain.GameRecord{Mode: domain.ModeTwoPlayer})
	if err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}
	if id != "abc-123-def-456" {
		t.Fatalf("expected generated id, got %q", id)
	}

	got, err := store.LoadGame(id)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if !got.StartedAt.Equal(now) || !got.EndedAt.Equal(now) {
		t.Fatalf("expected timestamps from clock, got %s / %s", got.StartedAt, got.EndedAt)
	}
	if got.Outcome != domain.OutcomeOngoing || got.Moves == nil {
		t.Fatalf("expected ongoing game with empty move list, got %+v", got)
	}
	if _, err := os.Stat(filepath.Join(tmp, "games", "20260501T080000Z_abc123de.json")); err != nil {
		t.Fatalf("expected file named from short id: %v", err)
	}
}

func TestSaveGame_UsesDefaultUUID(t *testing.T) {
	store := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	id, err := store.SaveGame(domain.GameRecord{})
	if err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Fatalf("expected uuid, got %q", id)
	}
}

func TestSaveGame_AppendsIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	start := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	for _, id := range []string{"11111111-aaaa", "22222222-bbbb"} {
		if _, err := store.SaveGame(sampleGame(id, start)); err != nil {
			t.Fatalf("SaveGame error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "games", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var sum domain.GameSummary
		if err := json.Unmarshal(sc.Bytes(), &sum); err != nil {
			t.Fatalf("index line: %v", err)
		}
		ids = append(ids, sum.ID)
		if sum.Moves != 4 {
			t.Fatalf("expected 4 moves in summary, got %d", sum.Moves)
		}
	}
	if len(ids) != 2 || ids[0] != "11111111-aaaa" || ids[1] != "22222222-bbbb" {
		t.Fatalf("unexpected index ids %v", ids)
	}
}

func TestSaveGame_ResaveDoesNotDuplicateIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	start := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	game := sampleGame("33333333-cccc", start)
	game.Moves = game.Moves[:2]
	if _, err := store.SaveGame(game); err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}
	game.Moves = sampleGame("33333333-cccc", start).Moves
	if _, err := store.SaveGame(game); err != nil {
		t.Fatalf("SaveGame (again) error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "games", "index.jsonl"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if n := strings.Count(string(b), "\n"); n != 1 {
		t.Fatalf("expected one index line, got %d:\n%s", n, b)
	}

	loaded, err := store.LoadGame("33333333")
	if err != nil {
		t.Fatalf("LoadGame error: %v", err)
	}
	if len(loaded.Moves) != 4 {
		t.Fatalf("expected the later save to win, got %v", loaded.Moves)
	}
}

func TestSaveGame_IndexFailureKeepsGame(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	// a directory where the index file should be makes the append fail
	if err := os.MkdirAll(filepath.Join(tmp, "games", indexFile), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	id, err := store.SaveGame(sampleGame("44444444-dddd", time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}
	if _, err := store.LoadGame(id); err != nil {
		t.Fatalf("LoadGame error: %v", err)
	}
}

func TestListGames_NewestFirst(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"aaaa0001", "aaaa0002", "bbbb0003"} {
		if _, err := store.SaveGame(sampleGame(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveGame error: %v", err)
		}
	}

	// stray files are ignored
	if err := os.WriteFile(filepath.Join(tmp, "games", "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	list, err := store.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 games, got %d", len(list))
	}
	if list[0].ID != "bbbb0003" || list[2].ID != "aaaa0001" {
		t.Fatalf("expected newest first, got %v", list)
	}
}

func TestListGames_MissingDir(t *testing.T) {
	store := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	list, err := store.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no games, got %d", len(list))
	}
}

func TestLoadGame_ByPrefixAndFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"aaaa0001", "aaaa0002", "bbbb0003"} {
		if _, err := store.SaveGame(sampleGame(id, start)); err != nil {
			t.Fatalf("SaveGame error: %v", err)
		}
	}

	g, err := store.LoadGame("bbbb")
	if err != nil {
		t.Fatalf("LoadGame prefix: %v", err)
	}
	if g.ID != "bbbb0003" {
		t.Fatalf("unexpected game %q", g.ID)
	}

	g, err = store.LoadGame("20260101T000000Z_aaaa0002.json")
	if err != nil {
		t.Fatalf("LoadGame by file: %v", err)
	}
	if g.ID != "aaaa0002" {
		t.Fatalf("unexpected game %q", g.ID)
	}

	_, err = store.LoadGame("aaaa")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected ambiguous prefix error, got %v", err)
	}

	_, err = store.LoadGame("zzzz")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = store.LoadGame("  ")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestQueryGame(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := store.SaveGame(sampleGame("cafe0001", start)); err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}

	v, err := store.QueryGame("cafe", "$.moves[3]")
	if err != nil {
		t.Fatalf("QueryGame: %v", err)
	}
	if v != "d8h4" {
		t.Fatalf("expected d8h4, got %v", v)
	}

	v, err = store.QueryGame("cafe0001", "$.outcome")
	if err != nil {
		t.Fatalf("QueryGame: %v", err)
	}
	if v != string(domain.OutcomeBlackWins) {
		t.Fatalf("expected outcome, got %v", v)
	}

	if _, err := store.QueryGame("cafe", "$.moves["); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid jsonpath error, got %v", err)
	}
	if _, err := store.QueryGame("cafe", ""); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected empty expression error, got %v", err)
	}
}
