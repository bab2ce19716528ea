package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

// TestHelperProcess is not a real test. It is re-executed by fakeEngine as a UCI engine.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	mode := os.Getenv("FAKE_ENGINE_MODE")

	out := bufio.NewWriter(os.Stdout)
	reply := func(lines ...string) {
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		_ = out.Flush()
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		cmd := strings.TrimSpace(sc.Text())
		switch {
		case cmd == "uci":
			if mode == "mute" {
				continue
			}
			reply("id name fake", "id author tests", "uciok")
		case cmd == "isready":
			reply("readyok")
		case strings.HasPrefix(cmd, "position"):
			reply("info string " + cmd)
		case strings.HasPrefix(cmd, "go"):
			switch mode {
			case "none":
				reply("bestmove (none)")
			case "slow":
			default:
				reply("info depth 1 score cp 20 pv e7e5", "info depth 2 score cp 15 pv e7e5 g1f3", "bestmove e7e5 ponder g1f3")
			}
		case cmd == "stop":
			reply("bestmove a7a6")
		case cmd == "quit":
			if mode == "stubborn" {
				continue
			}
			os.Exit(0)
		}
	}
	if mode == "stubborn" {
		time.Sleep(time.Minute)
	}
	os.Exit(0)
}

func fakeEngine(t *testing.T, mode string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithArgs("-test.run=^TestHelperProcess$"),
		WithEnv("GO_WANT_HELPER_PROCESS=1", "FAKE_ENGINE_MODE="+mode),
		WithCloseWait(500 * time.Millisecond),
	}, opts...)
	return New(os.Args[0], opts...)
}

func TestResolveEnginePath(t *testing.T) {
	root := filepath.Join("work", "iro")

	got := ResolveEnginePath(root, "")
	want := filepath.Join(root, "engine", osDir(runtime.GOOS), "iro-chess"+exeSuffix(runtime.GOOS))
	assert.Equal(t, want, got)

	assert.Equal(t, filepath.Join(root, "bin", "sf"), ResolveEnginePath(root, "bin/sf"))

	abs, err := filepath.Abs("/opt/engine")
	require.NoError(t, err)
	assert.Equal(t, abs, ResolveEnginePath(root, abs))

	assert.Equal(t, "mac", osDir("darwin"))
	assert.Equal(t, "windows", osDir("windows"))
	assert.Equal(t, "linux", osDir("freebsd"))
	assert.Equal(t, ".exe", exeSuffix("windows"))
}

func TestPositionCommand(t *testing.T) {
	assert.Equal(t, "position startpos", PositionCommand(domain.Position{}))
	assert.Equal(t, "position startpos moves e2e4 e7e5",
		PositionCommand(domain.Position{Moves: []string{"e2e4", "e7e5"}}))
	assert.Equal(t, "position fen 8/8/8/8/8/8/8/K6k w - - 0 1 moves a1b1",
		PositionCommand(domain.Position{StartFEN: "8/8/8/8/8/8/8/K6k w - - 0 1", Moves: []string{"a1b1"}}))
}

func TestStartMissingBinary(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nope"))

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, c.Close(), "closing a never started client is a no-op")
}

func TestSendBeforeStart(t *testing.T) {
	c := New("engine")
	err := c.Send("uci")
	assert.True(t, domain.IsKind(err, domain.KindEngine))
}

func TestBestMove(t *testing.T) {
	c := fakeEngine(t, "normal")
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	move, err := c.BestMove(context.Background(), domain.Position{Moves: []string{"e2e4"}})
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move)

	// the client stays usable for the next request
	move, err = c.BestMove(context.Background(), domain.Position{Moves: []string{"e2e4", "e7e5", "g1f3"}})
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move)
}

func TestBestMoveNone(t *testing.T) {
	c := fakeEngine(t, "none")
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	_, err := c.BestMove(context.Background(), domain.Position{})
	assert.ErrorIs(t, err, ErrNoBestMove)
}

func TestBestMoveCancelSendsStop(t *testing.T) {
	c := fakeEngine(t, "slow")
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := c.BestMove(ctx, domain.Position{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, domain.IsKind(err, domain.KindEngine))
}

func TestMoveTimeoutOption(t *testing.T) {
	c := fakeEngine(t, "slow", WithMoveTimeout(50*time.Millisecond))
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	_, err := c.BestMove(context.Background(), domain.Position{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandshakeTimeout(t *testing.T) {
	c := fakeEngine(t, "mute")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := c.Start(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindEngine))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandshakeTimeoutWithoutCallerDeadline(t *testing.T) {
	c := fakeEngine(t, "mute", WithHandshakeTimeout(200*time.Millisecond))

	start := time.Now()
	err := c.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewBoundsHandshakeByDefault(t *testing.T) {
	c := New("engine")
	assert.Equal(t, defaultHandshake, c.handshakeTimeout)
}

func TestCloseIsIdempotentAndKillsStubbornEngine(t *testing.T) {
	c := fakeEngine(t, "stubborn")
	require.NoError(t, c.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, c.Close())
		assert.NoError(t, c.Close())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}
