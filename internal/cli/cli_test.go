package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/server"
	"github.com/dmitrijs2005/playerprofile/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t         *testing.T
	tokenFile string
	dir       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("PROFILE_DATABASE_DRIVER", "sqlite")
	t.Setenv("PROFILE_DATABASE_DSN", filepath.Join(dir, "profiles.db"))
	t.Setenv("PROFILE_BLOB_DIR", filepath.Join(dir, "static"))
	t.Setenv("PROFILE_SESSION_BACKEND", "sql")

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	return &harness{t: t, tokenFile: filepath.Join(dir, "token"), dir: dir}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer

	cmd, st := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(append([]string{"--token-file", h.tokenFile}, args...))

	err := execute(context.Background(), cmd, st)
	assert.Nil(h.t, st.app, "app must be closed after every command")
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) registerAndLogin() {
	h.t.Helper()
	h.mustRun("register", "--user", "vivi", "--first-name", "Vivianne", "--last-name", "Miedema",
		"--dob", "1996-07-15", "--city", "Hoogeveen", "--country", "Netherlands", "--email", "vivi@example.com")
	h.mustRun("login", "--user", "vivi")
}

func TestCLI_Migrate(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("migrate")
	assert.Contains(t, out, "up to date")
}

func TestCLI_RegisterLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	tok, err := loadToken(h.tokenFile)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	fi, err := os.Stat(h.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	out := h.mustRun("whoami")
	assert.Contains(t, out, "Account: vivi")
	assert.Contains(t, out, "Vivianne Miedema")

	out = h.mustRun("-o", "json", "whoami")
	var account map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &account))
	assert.Equal(t, "vivi", account["Username"])
	assert.NotContains(t, account, "SecretHash")

	h.mustRun("logout")
	_, err = os.Stat(h.tokenFile)
	assert.True(t, os.IsNotExist(err))

	_, err = h.run("whoami")
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	h.mustRun("logout")
}

func TestCLI_LoginWrongSecret(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()
	require.NoError(t, removeToken(h.tokenFile))

	readPassword = func(int) ([]byte, error) { return []byte("nope"), nil }
	_, err := h.run("login", "--user", "vivi")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	tok, err := loadToken(h.tokenFile)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestCLI_RegisterDuplicate(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	_, err := h.run("register", "--user", "vivi", "--first-name", "V", "--last-name", "M",
		"--dob", "1996-07-15", "--city", "C", "--country", "NL", "--email", "v2@example.com")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestCLI_Profile(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	out := h.mustRun("profile", "show")
	assert.Contains(t, out, "no profile saved yet")

	img := filepath.Join(h.dir, "face.png")
	require.NoError(t, os.WriteFile(img, append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...), 0o600))

	out = h.mustRun("profile", "set", "--birth-country", "Netherlands", "--passport-country", "Netherlands",
		"--height", "175", "--weight", "65", "--foot", "right", "--position", "Forward", "--headshot", img)
	assert.Contains(t, out, "Height: 175 cm")

	out = h.mustRun("profile", "show")
	assert.Contains(t, out, "Position: Forward (right foot)")
	assert.Contains(t, out, "Headshot: /static/headshots/")

	_, err := h.run("profile", "set", "--birth-country", "Netherlands", "--passport-country", "Netherlands",
		"--weight", "65", "--foot", "right", "--position", "Forward")
	require.ErrorIs(t, err, common.ErrInvalidInput, "height is required")
}

func TestCLI_Career(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	out := h.mustRun("career", "list")
	assert.Contains(t, out, "no career entries")

	h.mustRun("career", "add", "--season", "2022/23", "--team", "Arsenal", "--competition", "WSL",
		"--appearances", "10", "--starts", "9", "--subs", "1", "--yellow", "0", "--red", "0",
		"--assists", "3", "--goals", "6", "--saves", "0")

	out = h.mustRun("career", "list")
	assert.Contains(t, out, "2022/23")
	assert.Contains(t, out, "Arsenal")

	_, err := h.run("career", "add", "--season", "2023/24", "--team", "Arsenal", "--competition", "WSL",
		"--appearances", "1")
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCLI_Sweep(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("sweep")
	assert.Contains(t, out, "0 expired session(s) removed")
}

func TestTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	tok, err := loadToken(path)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, saveToken(path, "abc\n"))
	tok, err = loadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, removeToken(path))
	require.NoError(t, removeToken(path))
}

func TestCLI_AppInitError(t *testing.T) {
	h := newHarness(t)

	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(context.Context, *config.Config, io.Writer) (*server.App, error) {
		return nil, errors.New("store down")
	}

	_, err := h.run("migrate")
	require.EqualError(t, err, "store down")
}

func TestCLI_InvalidConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("PROFILE_SESSION_BACKEND", "memcached")

	_, err := h.run("migrate")
	require.Error(t, err)
}

func TestCLI_ClosesAppWhenCommandFails(t *testing.T) {
	h := newHarness(t)

	var opened *server.App
	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(ctx context.Context, c *config.Config, w io.Writer) (*server.App, error) {
		app, err := orig(ctx, c, w)
		opened = app
		return app, err
	}

	_, err := h.run("whoami")
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	require.NotNil(t, opened)
	require.Error(t, opened.Migrate(context.Background()), "store is closed")
}
