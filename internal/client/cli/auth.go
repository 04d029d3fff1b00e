package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/cryptox"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for the sign-up form and creates the account. It does not
// sign in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(confirm)

	reg := models.Registration{Email: email, Name: name, Password: string(password), Confirm: string(confirm)}
	if err := a.session.Register(ctx, reg); err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. You can log in now.")
	return nil
}

// Login prompts for credentials and signs in. Goals are loaded right after;
// workouts are picked up by the background refresh.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.displayName())

	if err := a.goals.Refresh(ctx); err != nil {
		a.report(ctx, err)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Current()
	if !s.Authenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if s.User.Name != "" {
		fmt.Fprintf(a.out, "%s <%s> (id %s)\n", s.User.Name, s.User.Email, s.User.ID)
	} else {
		fmt.Fprintf(a.out, "%s (id %s)\n", s.User.Email, s.User.ID)
	}
	return nil
}

// Refresh reloads goals and workouts; the first error is returned.
func (a *App) Refresh(ctx context.Context) error {
	gerr := a.goals.Refresh(ctx)
	if gerr != nil {
		a.report(ctx, gerr)
	}
	werr := a.workouts.Refresh(ctx)
	if werr != nil {
		a.report(ctx, werr)
	}
	if gerr != nil {
		return gerr
	}
	if werr != nil {
		return werr
	}
	fmt.Fprintf(a.out, "%d goal(s), %d workout(s)\n", len(a.goals.List()), len(a.workouts.List()))
	return nil
}
