// Package uci drives a chess engine subprocess over the Universal Chess Interface.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

// ErrNoBestMove is returned when the engine answers "bestmove (none)" or "bestmove 0000".
var ErrNoBestMove = errors.New("engine has no move")

const (
	defaultDepth     = 6
	defaultCloseWait = 2 * time.Second
	defaultHandshake = 10 * time.Second
	binaryName       = "iro-chess"
)

// ResolveEnginePath returns the engine binary to run. A non-empty override wins and is resolved
// against root when relative; otherwise the bundled engine under <root>/engine/<os>/ is used.
func ResolveEnginePath(root, override string) string {
	if p := strings.TrimSpace(override); p != "" {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	return filepath.Join(root, "engine", osDir(runtime.GOOS), binaryName+exeSuffix(runtime.GOOS))
}

func osDir(goos string) string {
	switch goos {
	case "darwin":
		return "mac"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}

func exeSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

// PositionCommand renders the "position" command for pos.
func PositionCommand(pos domain.Position) string {
	var sb strings.Builder
	if pos.StartFEN == "" {
		sb.WriteString("position startpos")
	} else {
		sb.WriteString("position fen ")
		sb.WriteString(pos.StartFEN)
	}
	if len(pos.Moves) > 0 {
		sb.WriteString(" moves ")
		sb.WriteString(strings.Join(pos.Moves, " "))
	}
	return sb.String()
}

type Option func(*Client)

// WithDepth sets the search depth passed to "go depth".
func WithDepth(depth int) Option {
	return func(c *Client) {
		if depth > 0 {
			c.depth = depth
		}
	}
}

// WithMoveTimeout bounds each BestMove call. Zero means no bound beyond the caller's context.
func WithMoveTimeout(d time.Duration) Option {
	return func(c *Client) { c.moveTimeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithArgs passes extra arguments to the engine binary.
func WithArgs(args ...string) Option {
	return func(c *Client) { c.args = append([]string(nil), args...) }
}

// WithEnv appends environment variables for the engine process.
func WithEnv(env ...string) Option {
	return func(c *Client) { c.env = append(c.env, env...) }
}

// WithHandshakeTimeout bounds the uci/isready exchange in Start. Zero leaves only the caller's context.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) { c.handshakeTimeout = d }
}

// WithCloseWait sets how long Close waits after "quit" before killing the process.
func WithCloseWait(d time.Duration) Option {
	return func(c *Client) { c.closeWait = d }
}

// Client is a running engine. It is safe for concurrent use; requests are serialized.
type Client struct {
	path             string
	args             []string
	env              []string
	depth            int
	moveTimeout      time.Duration
	handshakeTimeout time.Duration
	closeWait        time.Duration
	log              *slog.Logger

	reqMu   sync.Mutex
	writeMu sync.Mutex

	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
	quit  chan struct{}
	exit  chan error

	closeOnce sync.Once
}

var _ ports.MoveEngine = (*Client)(nil)

func New(path string, opts ...Option) *Client {
	c := &Client{
		path:             path,
		depth:            defaultDepth,
		handshakeTimeout: defaultHandshake,
		closeWait:        defaultCloseWait,
		log:              slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Path() string { return c.path }

// Start launches the engine and completes the uci/isready handshake.
func (c *Client) Start(ctx context.Context) error {
	info, err := os.Stat(c.path)
	if err != nil {
		return &domain.OpError{
			Op:   "uci.start",
			Kind: domain.KindNotFound,
			Path: c.path,
			Err:  fmt.Errorf("engine binary: %w", domain.ErrNotFound),
		}
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		if err := os.Chmod(c.path, info.Mode().Perm()|0o755); err != nil {
			return &domain.OpError{Op: "uci.chmod", Kind: domain.KindExecution, Path: c.path, Err: err}
		}
	}

	cmd := exec.Command(c.path, c.args...)
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &domain.OpError{Op: "uci.start", Kind: domain.KindExecution, Path: c.path, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &domain.OpError{Op: "uci.start", Kind: domain.KindExecution, Path: c.path, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &domain.OpError{Op: "uci.start", Kind: domain.KindEngine, Path: c.path, Err: err}
	}

	c.cmd = cmd
	c.stdin = stdin
	c.lines = make(chan string, 64)
	c.quit = make(chan struct{})
	c.exit = make(chan error, 1)

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		c.readLoop(stdout)
	}()
	// Wait closes stdout, so it must not run before the reader has drained it.
	go func() {
		<-readDone
		c.exit <- cmd.Wait()
	}()

	c.log.Info("engine.start", "path", c.path, "pid", cmd.Process.Pid)

	if c.handshakeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.handshakeTimeout)
		defer cancel()
	}
	if err := c.handshake(ctx); err != nil {
		_ = c.Close()
		return &domain.OpError{Op: "uci.handshake", Kind: domain.KindEngine, Path: c.path, Err: err}
	}
	return nil
}

func (c *Client) handshake(ctx context.Context) error {
	if err := c.Send("uci"); err != nil {
		return err
	}
	if _, err := c.waitFor(ctx, "uciok"); err != nil {
		return err
	}
	if err := c.Send("isready"); err != nil {
		return err
	}
	_, err := c.waitFor(ctx, "readyok")
	return err
}

func (c *Client) readLoop(r io.Reader) {
	defer close(c.lines)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		case <-c.quit:
			return
		}
	}
}

// Send writes one command line to the engine.
func (c *Client) Send(command string) error {
	if c.stdin == nil {
		return &domain.OpError{Op: "uci.send", Kind: domain.KindEngine, Err: errors.New("engine not started")}
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.log.Debug("engine.send", "cmd", command)
	if _, err := io.WriteString(c.stdin, command+"\n"); err != nil {
		return &domain.OpError{Op: "uci.send", Kind: domain.KindEngine, Path: c.path, Err: err}
	}
	return nil
}

// waitFor consumes output lines until one starts with prefix.
func (c *Client) waitFor(ctx context.Context, prefix string) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-c.lines:
			if !ok {
				return "", fmt.Errorf("engine exited while waiting for %q: %w", prefix, io.ErrUnexpectedEOF)
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
		}
	}
}

// BestMove asks the engine for a move in pos and returns it in UCI notation.
func (c *Client) BestMove(ctx context.Context, pos domain.Position) (string, error) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	if c.moveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.moveTimeout)
		defer cancel()
	}

	if err := c.Send(PositionCommand(pos)); err != nil {
		return "", err
	}
	if err := c.Send(fmt.Sprintf("go depth %d", c.depth)); err != nil {
		return "", err
	}

	start := time.Now()
	line, err := c.waitFor(ctx, "bestmove")
	if err != nil {
		if ctx.Err() != nil {
			c.abortSearch()
		}
		return "", &domain.OpError{Op: "uci.bestmove", Kind: domain.KindEngine, Path: c.path, Err: err}
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "(none)" || fields[1] == "0000" {
		return "", &domain.OpError{Op: "uci.bestmove", Kind: domain.KindEngine, Path: c.path, Err: ErrNoBestMove}
	}

	c.log.Info("engine.bestmove", "move", fields[1], "plies", len(pos.Moves), "ms", time.Since(start).Milliseconds())
	return fields[1], nil
}

// abortSearch stops a running search and discards its bestmove so the next request starts clean.
func (c *Client) abortSearch() {
	if err := c.Send("stop"); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.closeWait)
	defer cancel()
	_, _ = c.waitFor(ctx, "bestmove")
}

// Close sends "quit" and kills the engine if it has not exited within the close wait.
// It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		if c.cmd == nil {
			return
		}

		_ = c.Send("quit")
		_ = c.stdin.Close()
		close(c.quit)

		t := time.NewTimer(c.closeWait)
		defer t.Stop()
		select {
		case <-c.exit:
		case <-t.C:
			c.log.Warn("engine.kill", "path", c.path)
			_ = c.cmd.Process.Kill()
			<-c.exit
		}
		c.log.Info("engine.stop", "path", c.path)
	})
	return nil
}
