package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/client/view"
)

// Login prompts for credentials, offering the last typed username, and
// authenticates. The controller reports failures to the user.
func (a *App) Login(ctx context.Context) error {
	forms := a.ctrl.View().Forms

	username, err := getTextWithDefault(a.reader, "Enter username", forms.LoginUsername, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	a.ctrl.UpdateForms(func(f *view.Forms) {
		f.LoginUsername = username
		f.LoginPassword = password
	})
	if err := a.ctrl.Login(ctx); err != nil {
		return err
	}

	a.printLoggedIn()
	return nil
}

// Register prompts for a username and the password twice.
func (a *App) Register(ctx context.Context) error {
	forms := a.ctrl.View().Forms

	username, err := getTextWithDefault(a.reader, "Choose a username", forms.RegisterUsername, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Choose a password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	a.ctrl.UpdateForms(func(f *view.Forms) {
		f.RegisterUsername = username
		f.RegisterPassword = password
		f.RegisterConfirm = confirm
	})
	return a.ctrl.Register(ctx)
}

// Accounts lists saved accounts, most recently used first.
func (a *App) Accounts(ctx context.Context) error {
	accounts := a.ctrl.View().Accounts
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No saved accounts")
		return nil
	}
	for _, acc := range accounts {
		fmt.Fprintf(a.out, "  %-20s last used %s\n", acc.Username, acc.LastUsedTime().Format(time.DateTime))
	}
	return nil
}

// Use logs in with a saved account.
func (a *App) Use(ctx context.Context, username string) error {
	if err := a.ctrl.LoginSaved(ctx, username); err != nil {
		return err
	}
	a.printLoggedIn()
	return nil
}

// Forget removes a saved account without asking.
func (a *App) Forget(ctx context.Context, username string) error {
	if err := a.ctrl.RemoveAccount(ctx, username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %s\n", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.ctrl.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) printLoggedIn() {
	fmt.Fprintf(a.out, "Logged in as %s\n", a.ctrl.View().Username)
}
