package legendary

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/cfg/legendary"

// FakeCommandExecutor implements CommandExecutor
type FakeCommandExecutor struct {
	OutputData []byte
	OutputErr  error
	StartErr   error

	// OnOutput runs before Output returns, to simulate CLI side effects
	// like writing the marker file.
	OnOutput func(cmd Command)

	OutputCalls []Command
	StartCalls  []Command
}

func (f *FakeCommandExecutor) Output(_ context.Context, cmd Command) ([]byte, error) {
	f.OutputCalls = append(f.OutputCalls, cmd)
	if f.OnOutput != nil {
		f.OnOutput(cmd)
	}
	return f.OutputData, f.OutputErr
}

func (f *FakeCommandExecutor) Start(_ context.Context, cmd Command) error {
	f.StartCalls = append(f.StartCalls, cmd)
	return f.StartErr
}

func newTestSession(t *testing.T) (*CLISession, afero.Fs, *FakeCommandExecutor) {
	t.Helper()
	fs := afero.NewMemMapFs()
	exec := &FakeCommandExecutor{}
	return NewCLISession(fs, exec, root, "legendary", zerolog.Nop()), fs, exec
}

func writeMarker(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, root+"/user.json", []byte(content), 0o644))
}

func TestIsLoggedInTracksMarkerFile(t *testing.T) {
	t.Parallel()
	s, fs, _ := newTestSession(t)

	assert.False(t, s.IsLoggedIn())

	writeMarker(t, fs, `{"displayName":"gamer"}`)
	assert.True(t, s.IsLoggedIn())

	require.NoError(t, fs.Remove(root+"/user.json"))
	assert.False(t, s.IsLoggedIn())
}

func TestLoginEmptyCode(t *testing.T) {
	t.Parallel()
	s, _, exec := newTestSession(t)

	err := s.Login(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Empty(t, exec.OutputCalls, "no subprocess should run without a code")
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	s, fs, exec := newTestSession(t)

	exec.OnOutput = func(Command) {
		writeMarker(t, fs, `{"displayName":"gamer"}`)
	}

	require.NoError(t, s.Login(context.Background(), "abc123"))

	require.Len(t, exec.OutputCalls, 1)
	cmd := exec.OutputCalls[0]
	assert.Equal(t, "legendary", cmd.Name)
	assert.Equal(t, []string{"auth", "--code", "abc123"}, cmd.Args)
	assert.Equal(t, root, cmd.Dir)
	assert.Contains(t, cmd.Env, "LEGENDARY_CONFIG_PATH="+root)
}

func TestLoginSuccessIgnoresExitCode(t *testing.T) {
	t.Parallel()
	s, fs, exec := newTestSession(t)

	exec.OutputErr = errors.New("exit status 1")
	exec.OnOutput = func(Command) {
		writeMarker(t, fs, `{}`)
	}

	assert.NoError(t, s.Login(context.Background(), "abc123"))
}

func TestLoginFailureCarriesOutput(t *testing.T) {
	t.Parallel()
	s, _, exec := newTestSession(t)

	exec.OutputData = []byte("ERROR: invalid authorization code")

	err := s.Login(context.Background(), "bogus")
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "ERROR: invalid authorization code", loginErr.Output)
}

func TestLoginFailureWithSpawnError(t *testing.T) {
	t.Parallel()
	s, _, exec := newTestSession(t)

	exec.OutputErr = errors.New("exec: legendary: executable file not found")

	err := s.Login(context.Background(), "abc")
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Contains(t, loginErr.Output, "not found")
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()
	s, fs, _ := newTestSession(t)

	writeMarker(t, fs, `{}`)
	require.NoError(t, afero.WriteFile(fs, root+"/user.json.lock", []byte{}, 0o644))

	s.Logout()
	assert.False(t, s.IsLoggedIn())
	_, err := fs.Stat(root + "/user.json.lock")
	assert.Error(t, err)

	// Second logout with nothing left to delete must not panic or fail.
	s.Logout()
	assert.False(t, s.IsLoggedIn())
}

func TestRefreshList(t *testing.T) {
	t.Parallel()
	s, _, exec := newTestSession(t)

	s.RefreshList(context.Background())

	require.Len(t, exec.StartCalls, 1)
	cmd := exec.StartCalls[0]
	assert.Equal(t, []string{"list", "--third-party"}, cmd.Args)
	assert.Equal(t, root, cmd.Dir)
	assert.Contains(t, cmd.Env, "LEGENDARY_CONFIG_PATH="+root)
}

func TestRefreshListSwallowsSpawnErrors(t *testing.T) {
	t.Parallel()
	s, _, exec := newTestSession(t)

	exec.StartErr = errors.New("spawn failed")
	s.RefreshList(context.Background()) // must not panic
	assert.Len(t, exec.StartCalls, 1)
}

func TestLaunchGame(t *testing.T) {
	t.Parallel()
	s, _, exec := newTestSession(t)

	require.NoError(t, s.LaunchGame(context.Background(), "Anemone"))
	require.Len(t, exec.StartCalls, 1)
	assert.Equal(t, []string{"launch", "Anemone"}, exec.StartCalls[0].Args)

	assert.Error(t, s.LaunchGame(context.Background(), ""))
}

func TestUserName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		marker string
		noFile bool
		want   string
		wantOK bool
	}{
		{name: "absent marker", noFile: true, wantOK: false},
		{name: "malformed marker", marker: "{", wantOK: false},
		{name: "marker without display name", marker: `{"account_id":"x"}`, wantOK: false},
		{name: "valid marker", marker: `{"displayName":"gamer","account_id":"x"}`, want: "gamer", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, fs, _ := newTestSession(t)
			if !tt.noFile {
				writeMarker(t, fs, tt.marker)
			}

			name, ok := s.UserName()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestNewCLISessionDefaultsBinary(t *testing.T) {
	t.Parallel()
	s := NewCLISession(afero.NewMemMapFs(), &FakeCommandExecutor{}, root, "", zerolog.Nop())
	assert.Equal(t, "legendary", s.bin)
}
