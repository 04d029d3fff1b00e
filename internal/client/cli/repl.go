package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Goals(ctx context.Context) error
	AddGoal(ctx context.Context) error
	EditGoal(ctx context.Context) error
	DeleteGoal(ctx context.Context) error
	Workouts(ctx context.Context) error
	AddWorkout(ctx context.Context) error
	EditWorkout(ctx context.Context) error
	DeleteWorkout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: goals, addgoal, editgoal, delgoal, workouts, addworkout, editworkout, delworkout, refresh, whoami, logout, exit"
)

// runREPL reads one command per line from r and dispatches it to a. The loop
// exits on EOF, on "exit"/"quit" or when ctx is cancelled.
//
//	Not logged in:
//	  - help | register | login | exit | quit
//
//	Logged in:
//	  - help
//	  - goals (g), addgoal, editgoal, delgoal
//	  - workouts (w), addworkout, editworkout, delworkout
//	  - refresh, whoami, logout
//	  - exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "fittrack %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		if !a.isLoggedIn() && requiresLogin(cmd) {
			fmt.Fprintln(w, "Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "refresh":
			_ = a.Refresh(ctx)

		case "g", "goals":
			_ = a.Goals(ctx)
		case "addgoal":
			_ = a.AddGoal(ctx)
		case "editgoal":
			_ = a.EditGoal(ctx)
		case "delgoal":
			_ = a.DeleteGoal(ctx)

		case "w", "workouts":
			_ = a.Workouts(ctx)
		case "addworkout":
			_ = a.AddWorkout(ctx)
		case "editworkout":
			_ = a.EditWorkout(ctx)
		case "delworkout":
			_ = a.DeleteWorkout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "help", "register", "login", "exit", "quit":
		return false
	}
	return true
}
