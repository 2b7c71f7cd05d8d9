package tui

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wallrow/internal/config"
	"github.com/vovakirdan/wallrow/internal/match"
	"github.com/vovakirdan/wallrow/internal/registry"
	"github.com/vovakirdan/wallrow/internal/storage"
)

// testSession is the part of an SSH session the handlers touch.
type testSession struct {
	ssh.Session
	user     string
	stderr   bytes.Buffer
	exitCode int
}

func (s *testSession) User() string { return s.user }
func (s *testSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50022}
}
func (s *testSession) Stderr() io.ReadWriter { return &s.stderr }
func (s *testSession) Exit(code int) error   { s.exitCode = code; return nil }

func newTestServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "results.db")

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	require.NotNil(t, srv.store)
	return srv
}

func TestNewSSHServerRejectsBadGame(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Game.Board.WinLen = 0

	_, err := NewSSHServer(cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestHostKeyPathCreatesDirectory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "keys", "host_key")

	got, err := hostKeyPath(p)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	assert.Equal(t, ":23234", cfg.Address)
	assert.Equal(t, config.DefaultPreset, cfg.Preset)
	require.NoError(t, cfg.Game.Validate())
}

func TestShutdownWaitsForRunningSessions(t *testing.T) {
	srv := newTestServer(t)

	started := make(chan struct{})
	release := make(chan struct{})
	saved := make(chan error, 1)
	handler := srv.loggingMiddleware(func(ssh.Session) {
		close(started)
		<-release
		_, err := srv.store.SaveResult(storage.Result{
			Preset: config.PresetClassic, Rows: 3, Cols: 3, WinLen: 3,
			PlayerX: "alice", PlayerO: "blocker",
			Reason: match.ReasonDraw.String(), Moves: 9,
		})
		saved <- err
	})
	go handler(&testSession{user: "alice"})
	<-started

	shut := make(chan error, 1)
	go func() { shut <- srv.Shutdown() }()

	select {
	case <-shut:
		t.Fatal("shutdown returned while a session was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-saved, "ledger still open for the finishing session")
	require.NoError(t, <-shut)

	_, err := srv.store.RecentResults(1)
	assert.Error(t, err, "ledger closed after shutdown")
}

func TestTeaHandlerReportsSetupError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Players.O = registry.Stdin
	srv := &SSHServer{
		config: SSHServerConfig{Game: cfg, Preset: config.PresetClassic},
		logger: log.New(io.Discard),
	}
	sess := &testSession{user: "bob"}

	model, opts := srv.teaHandler(sess)
	assert.Nil(t, model)
	assert.Nil(t, opts)
	assert.Contains(t, sess.stderr.String(), "cannot start game")
	assert.Contains(t, sess.stderr.String(), ErrInteractiveBot.Error())
	assert.Equal(t, 1, sess.exitCode)
}
