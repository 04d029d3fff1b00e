package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) rec(name string) error { f.calls = append(f.calls, name); return nil }

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.rec("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.rec("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.rec("logout")
}
func (f *fakeExec) Whoami(context.Context) error        { return f.rec("whoami") }
func (f *fakeExec) Refresh(context.Context) error       { return f.rec("refresh") }
func (f *fakeExec) Goals(context.Context) error         { return f.rec("goals") }
func (f *fakeExec) AddGoal(context.Context) error       { return f.rec("addgoal") }
func (f *fakeExec) EditGoal(context.Context) error      { return f.rec("editgoal") }
func (f *fakeExec) DeleteGoal(context.Context) error    { return f.rec("delgoal") }
func (f *fakeExec) Workouts(context.Context) error      { return f.rec("workouts") }
func (f *fakeExec) AddWorkout(context.Context) error    { return f.rec("addworkout") }
func (f *fakeExec) EditWorkout(context.Context) error   { return f.rec("editworkout") }
func (f *fakeExec) DeleteWorkout(context.Context) error { return f.rec("delworkout") }

func run(t *testing.T, exec *fakeExec, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(status)" }, r, &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}

	out := run(t, exec,
		"help",
		"goals",
		"login",
		"help",
		"g",
		"addgoal",
		"editgoal",
		"delgoal",
		"w",
		"addworkout",
		"editworkout",
		"delworkout",
		"refresh",
		"whoami",
		"foobar",
		"logout",
		"exit",
	)

	assert.Equal(t, []string{
		"login", "goals", "addgoal", "editgoal", "delgoal",
		"workouts", "addworkout", "editworkout", "delworkout",
		"refresh", "whoami", "logout",
	}, exec.calls)
	assert.Contains(t, out, helpAnonymous)
	assert.Contains(t, out, helpSignedIn)
	assert.Contains(t, out, "Please log in first.")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "fittrack (status)> ")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	out := run(t, exec, "", "register")

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.NotContains(t, out, "Bye!")
}

func TestRunREPL_Quit(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	run(t, exec, "quit", "goals")
	assert.Empty(t, exec.calls)
}

func TestRunREPL_CancelledContext(t *testing.T) {
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register\n")), &out)
	assert.Empty(t, exec.calls)
}
