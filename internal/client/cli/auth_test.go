package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPasswords(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(*bufio.Reader, string, io.Writer) ([]byte, error) {
		v := pw[i%len(pw)]
		i++
		return []byte(v), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func TestRegister_Success(t *testing.T) {
	h := newHarness("alice@example.org\nAlice\n")
	stubPasswords(t, "password123", "password123")

	require.NoError(t, h.app.Register(context.Background()))
	assert.Equal(t, "alice@example.org", h.session.reg.Email)
	assert.Equal(t, "Alice", h.session.reg.Name)
	assert.Equal(t, "password123", h.session.reg.Password)
	assert.Equal(t, "password123", h.session.reg.Confirm)
	assert.Contains(t, h.out.String(), "Registration successful")
}

func TestRegister_ErrorIsReported(t *testing.T) {
	h := newHarness("bad\n\n")
	stubPasswords(t, "x")
	h.session.regErr = &common.AuthenticationError{Op: "register", Err: common.NewValidationError("email", "invalid email format")}

	err := h.app.Register(context.Background())
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, h.out.String(), "Error: email: invalid email format")
}

func TestLogin_SuccessLoadsGoals(t *testing.T) {
	h := newHarness("a@b.com\n")
	stubPasswords(t, "secret123")

	require.NoError(t, h.app.Login(context.Background()))
	assert.Equal(t, "a@b.com", h.session.loginEmail)
	assert.Equal(t, "secret123", h.session.loginPassword)
	assert.Equal(t, 1, h.goals.refreshes)
	assert.Contains(t, h.out.String(), "Logged in as a@b.com")
}

func TestLogin_Failure(t *testing.T) {
	h := newHarness("a@b.com\n")
	stubPasswords(t, "wrong")
	h.session.loginErr = &common.AuthenticationError{Op: "login", Err: &common.NetworkError{Op: "login", StatusCode: 401, Err: common.ErrUnauthorized}}

	err := h.app.Login(context.Background())
	assert.ErrorIs(t, err, common.ErrAuthentication)
	assert.Zero(t, h.goals.refreshes)
	assert.Contains(t, h.out.String(), "Invalid email or password.")
}

func TestLogoutAndWhoami(t *testing.T) {
	h := newHarness("")
	h.signIn()

	require.NoError(t, h.app.Whoami(context.Background()))
	assert.Contains(t, h.out.String(), "Ann <a@b.com>")

	require.NoError(t, h.app.Logout(context.Background()))
	assert.False(t, h.app.isLoggedIn())

	h.out.Reset()
	require.NoError(t, h.app.Whoami(context.Background()))
	assert.Equal(t, "Not logged in.\n", h.out.String())
}
