package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookit/internal/client/client"
	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/client/session"
	"github.com/dmitrijs2005/bookit/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the new account's details and signs it in.
func (a *App) Register(ctx context.Context) error {
	var p models.RegisterPayload
	var err error

	if p.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if p.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if p.Phone, err = getSimpleText(a.reader, "Enter phone (optional)", a.out); err != nil {
		return err
	}
	kind, err := getSimpleText(a.reader, "Account type: user or vendor [user]", a.out)
	if err != nil {
		return err
	}
	p.UserType = models.Role(strings.ToLower(kind))

	password, err := a.readPassword("Enter password")
	if err != nil {
		return err
	}
	p.Password = password

	user, err := a.session.Register(ctx, p)
	if err != nil {
		a.report("Registration failed", err)
		return err
	}

	a.welcome(user)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := a.readPassword("Enter password")
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		a.report("Login failed", err)
		return err
	}

	a.welcome(user)
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	a.loggingOut.Store(true)
	a.session.Logout(ctx)
	a.loggingOut.Store(false)
	a.router.Reset()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// ChangePassword prompts for the current and new password and submits
// the change.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := a.readPassword("Current password")
	if err != nil {
		return err
	}
	next, err := a.readPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Confirm new password")
	if err != nil {
		return err
	}

	msg, err := a.session.ChangePassword(ctx, current, next, confirm)
	if err != nil {
		a.report("Password change failed", err)
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) welcome(user *models.UserProfile) {
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	fmt.Fprintf(a.out, "-> %s\n", a.router.AfterAuth(user))
}

// report prints a user-facing explanation of err.
func (a *App) report(action string, err error) {
	fmt.Fprintf(a.out, "%s: %s\n", action, describe(err))
}

func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, session.ErrNotAuthenticated):
		return "please log in first"
	case errors.Is(err, session.ErrSuperseded):
		return "cancelled by a newer action"
	case errors.Is(err, common.ErrStorageUnavailable):
		return "local storage unavailable"
	default:
		return err.Error()
	}
}
