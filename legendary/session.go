package legendary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"go-legendary-launch/constants"
)

// ErrMissingCredential is returned when a login is attempted without an
// authorization code. No subprocess is started in that case.
var ErrMissingCredential = errors.New("missing credential: no authorization code provided")

// LoginError reports a login attempt after which the session marker did
// not appear. Output holds the captured CLI output for diagnostics.
type LoginError struct {
	Output string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %s", e.Output)
}

// Session is the capability set the app needs from the legendary CLI
// and its state directory. Tests provide a stand-in instead of shelling
// out.
type Session interface {
	IsLoggedIn() bool
	Login(ctx context.Context, code string) error
	Logout()
	RefreshList(ctx context.Context)
	LaunchGame(ctx context.Context, appName string) error
	UserName() (string, bool)
}

// CLISession implements Session by invoking the legendary binary and
// inspecting its config root. The marker file, not the exit code, is
// the source of truth for login state.
type CLISession struct {
	fs   afero.Fs
	exec CommandExecutor
	root string
	bin  string
	log  zerolog.Logger
}

// NewCLISession creates a session manager over the given config root
// and binary.
func NewCLISession(fs afero.Fs, exec CommandExecutor, root, bin string, log zerolog.Logger) *CLISession {
	if bin == "" {
		bin = constants.DefaultBinary
	}
	return &CLISession{fs: fs, exec: exec, root: root, bin: bin, log: log}
}

// IsLoggedIn checks for the session marker file. No caching, no side
// effects.
func (s *CLISession) IsLoggedIn() bool {
	_, err := s.fs.Stat(s.userPath())
	return err == nil
}

// Login runs `legendary auth --code <code>` and waits for it to exit.
// The exit code is ignored; the marker file appearing is the sole
// success signal.
func (s *CLISession) Login(ctx context.Context, code string) error {
	if code == "" {
		return ErrMissingCredential
	}

	out, err := s.exec.Output(ctx, s.command("auth", "--code", code))
	if err != nil {
		s.log.Debug().Err(err).Msg("auth subprocess reported an error")
	}

	if s.IsLoggedIn() {
		return nil
	}

	diag := string(out)
	if diag == "" && err != nil {
		diag = err.Error()
	}
	return &LoginError{Output: diag}
}

// Logout removes the session marker and its companion lock file.
// Idempotent: already-absent files are fine.
func (s *CLISession) Logout() {
	_ = s.fs.Remove(s.userPath())
	_ = s.fs.Remove(filepath.Join(s.root, constants.UserLockFile))
}

// RefreshList fires `legendary list --third-party` detached so a later
// metadata load sees fresh files. Spawn failures are logged, never
// surfaced.
func (s *CLISession) RefreshList(ctx context.Context) {
	if err := s.exec.Start(ctx, s.command("list", "--third-party")); err != nil {
		s.log.Warn().Err(err).Msg("failed to start list refresh")
	}
}

// LaunchGame fires `legendary launch <appName>` detached.
func (s *CLISession) LaunchGame(ctx context.Context, appName string) error {
	if appName == "" {
		return errors.New("no app name given")
	}
	if err := s.exec.Start(ctx, s.command("launch", appName)); err != nil {
		return fmt.Errorf("failed to launch %s: %w", appName, err)
	}
	return nil
}

// UserName reads the display name from the marker file. Absence or a
// parse failure yields ok = false, never an error.
func (s *CLISession) UserName() (string, bool) {
	data, err := afero.ReadFile(s.fs, s.userPath())
	if err != nil {
		return "", false
	}

	var user struct {
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return "", false
	}
	if user.DisplayName == "" {
		return "", false
	}
	return user.DisplayName, true
}

func (s *CLISession) userPath() string {
	return filepath.Join(s.root, constants.UserFile)
}

func (s *CLISession) command(args ...string) Command {
	return Command{
		Name: s.bin,
		Args: args,
		Dir:  s.root,
		Env:  []string{constants.ConfigPathEnv + "=" + s.root},
	}
}
