// Package controller is the UI-agnostic command surface of the client. A
// front end fills in view.Forms, calls a command, and re-renders from
// View(). Messages for the user go to a Notifier.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinbank/internal/client/services"
	"github.com/dmitrijs2005/coinbank/internal/client/view"
	"github.com/dmitrijs2005/coinbank/internal/common"
	"github.com/dmitrijs2005/coinbank/internal/logging"
)

// Notifier shows a message to the user and returns once it has been shown.
type Notifier interface {
	Notify(msg string)
}

// Refresher reloads displayed data; satisfied by *services.Loader.
type Refresher interface {
	RefreshAll(ctx context.Context)
	RefreshCard(ctx context.Context)
	RefreshTransactions(ctx context.Context)
}

// Stopper is the part of the poller the controller needs.
type Stopper interface {
	Stop()
}

type Controller struct {
	sessions services.SessionManager
	actions  services.Actions
	loader   Refresher
	poller   Stopper
	view     *view.State
	notify   Notifier
	log      logging.Logger
}

func New(sessions services.SessionManager, actions services.Actions, loader Refresher, poller Stopper,
	state *view.State, notify Notifier, log logging.Logger) *Controller {
	return &Controller{
		sessions: sessions,
		actions:  actions,
		loader:   loader,
		poller:   poller,
		view:     state,
		notify:   notify,
		log:      log,
	}
}

// View returns the current view snapshot.
func (c *Controller) View() view.Snapshot {
	return c.view.Snapshot()
}

// UpdateForms edits the form fields before a command reads them.
func (c *Controller) UpdateForms(fn func(f *view.Forms)) {
	c.view.UpdateForms(fn)
}

// LoggedIn reports whether a session is active.
func (c *Controller) LoggedIn() bool {
	_, ok := c.sessions.Current()
	return ok
}

// Init loads saved accounts and tries to resume the previous session.
// A session that cannot be resumed silently leads to the login screen.
func (c *Controller) Init(ctx context.Context) {
	c.loadAccounts(ctx)

	session, ok := c.sessions.RestoreSession(ctx)
	if !ok {
		c.showScreen(view.ScreenLogin)
		return
	}

	c.view.SetUsername(session.Username)
	c.showScreen(view.ScreenMain)
	c.SetTab(ctx, view.TabTransfer)
}

// Login uses the login form fields. The password field is cleared only
// when the attempt fails.
func (c *Controller) Login(ctx context.Context) error {
	forms := c.view.Snapshot().Forms

	session, err := c.sessions.Login(ctx, forms.LoginUsername, forms.LoginPassword)
	if err != nil {
		c.view.UpdateForms(func(f *view.Forms) { f.LoginPassword = "" })
		c.report(err)
		return err
	}

	c.view.SetUsername(session.Username)
	c.showScreen(view.ScreenMain)
	c.loadAccounts(ctx)
	return nil
}

// LoginSaved fills the login form from a saved account and logs in.
func (c *Controller) LoginSaved(ctx context.Context, username string) error {
	account, err := c.sessions.Account(ctx, username)
	if err != nil {
		if errors.Is(err, services.ErrNotSaved) {
			c.notify.Notify(fmt.Sprintf("No saved account %q", username))
		} else {
			c.log.Error(ctx, "failed to read saved accounts", "error", err)
			c.notify.Notify("Failed to read saved accounts")
		}
		return err
	}

	c.view.UpdateForms(func(f *view.Forms) {
		f.LoginUsername = account.Username
		f.LoginPassword = account.Password
	})
	return c.Login(ctx)
}

// RemoveAccount forgets a saved account without asking.
func (c *Controller) RemoveAccount(ctx context.Context, username string) error {
	if err := c.sessions.RemoveAccount(ctx, username); err != nil {
		c.log.Error(ctx, "failed to remove account", "username", username, "error", err)
		c.notify.Notify("Failed to remove account")
		return err
	}
	c.loadAccounts(ctx)
	return nil
}

// Register uses the registration form fields and clears them on success.
func (c *Controller) Register(ctx context.Context) error {
	forms := c.view.Snapshot().Forms

	msg, err := c.sessions.Register(ctx, forms.RegisterUsername, forms.RegisterPassword, forms.RegisterConfirm)
	if err != nil {
		c.report(err)
		return err
	}

	c.view.UpdateForms(func(f *view.Forms) {
		f.RegisterUsername = ""
		f.RegisterPassword = ""
		f.RegisterConfirm = ""
	})
	c.notify.Notify(msg)
	return nil
}

// Logout always ends on the login screen.
func (c *Controller) Logout(ctx context.Context) {
	c.sessions.Logout(ctx)
	c.showScreen(view.ScreenLogin)
	c.view.ResetAccountData()
}

// SetTab switches the main-screen tab. The history and card tabs reload
// their data.
func (c *Controller) SetTab(ctx context.Context, tab view.Tab) {
	c.view.SetTab(tab)

	switch tab {
	case view.TabHistory:
		c.loader.RefreshTransactions(ctx)
	case view.TabCard:
		c.loader.RefreshCard(ctx)
	}
}

func (c *Controller) Transfer(ctx context.Context) error {
	forms := c.view.Snapshot().Forms
	return c.run(c.actions.Transfer(ctx, forms.TransferAmount, forms.RecipientID))
}

// PayBill clears the bill field once the payment went through.
func (c *Controller) PayBill(ctx context.Context) error {
	forms := c.view.Snapshot().Forms
	if err := c.run(c.actions.PayBill(ctx, forms.BillID)); err != nil {
		return err
	}
	c.view.UpdateForms(func(f *view.Forms) { f.BillID = "" })
	return nil
}

// CreateBill clears the amount and payer fields once the bill exists.
func (c *Controller) CreateBill(ctx context.Context) error {
	forms := c.view.Snapshot().Forms
	if err := c.run(c.actions.CreateBill(ctx, forms.BillAmount, forms.FromUserID)); err != nil {
		return err
	}
	c.view.UpdateForms(func(f *view.Forms) {
		f.BillAmount = ""
		f.FromUserID = ""
	})
	return nil
}

func (c *Controller) ResetCard(ctx context.Context) error {
	return c.run(c.actions.ResetCard(ctx))
}

func (c *Controller) CopyCard(ctx context.Context) error {
	return c.run(c.actions.CopyCard(ctx))
}

// Refresh reloads balance, card and history at once.
func (c *Controller) Refresh(ctx context.Context) {
	c.loader.RefreshAll(ctx)
}

// showScreen switches screens. Leaving for the login screen stops polling;
// the main screen is only entered once the session manager started it.
func (c *Controller) showScreen(screen view.Screen) {
	if screen == view.ScreenLogin {
		c.poller.Stop()
	}
	c.view.SetScreen(screen)
}

func (c *Controller) loadAccounts(ctx context.Context) {
	accounts, err := c.sessions.ListAccounts(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to load saved accounts", "error", err)
		return
	}
	c.view.SetAccounts(accounts)
}

func (c *Controller) run(msg string, err error) error {
	if err != nil {
		c.report(err)
		return err
	}
	c.notify.Notify(msg)
	return nil
}

// report shows err unless the user cancelled the operation.
func (c *Controller) report(err error) {
	if msg := Message(err); msg != "" {
		c.notify.Notify(msg)
	}
}

// Message is the text to show for err; "" for a cancelled operation.
func Message(err error) string {
	if errors.Is(err, common.ErrCancelled) {
		return ""
	}
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var uerr *common.UserError
	if errors.As(err, &uerr) {
		return uerr.Message
	}
	return err.Error()
}
