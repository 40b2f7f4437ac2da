package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coinbank/internal/client/view"
)

func (a *App) Balance(ctx context.Context) error {
	fmt.Fprintf(a.out, "Balance: %s\n", a.ctrl.View().Balance)
	return nil
}

// Transfer prompts for amount and recipient; previous answers are offered
// as defaults and kept after the transfer.
func (a *App) Transfer(ctx context.Context) error {
	forms := a.ctrl.View().Forms

	amount, err := getTextWithDefault(a.reader, "Amount", forms.TransferAmount, a.out)
	if err != nil {
		return err
	}
	recipient, err := getTextWithDefault(a.reader, "Recipient ID", forms.RecipientID, a.out)
	if err != nil {
		return err
	}

	a.ctrl.UpdateForms(func(f *view.Forms) {
		f.TransferAmount = amount
		f.RecipientID = recipient
	})
	return a.ctrl.Transfer(ctx)
}

func (a *App) PayBill(ctx context.Context) error {
	billID, err := getTextWithDefault(a.reader, "Bill ID", a.ctrl.View().Forms.BillID, a.out)
	if err != nil {
		return err
	}

	a.ctrl.UpdateForms(func(f *view.Forms) { f.BillID = billID })
	return a.ctrl.PayBill(ctx)
}

// CreateBill bills another user; the current user receives the payment.
func (a *App) CreateBill(ctx context.Context) error {
	forms := a.ctrl.View().Forms

	amount, err := getTextWithDefault(a.reader, "Amount", forms.BillAmount, a.out)
	if err != nil {
		return err
	}
	from, err := getTextWithDefault(a.reader, "Bill user ID", forms.FromUserID, a.out)
	if err != nil {
		return err
	}

	a.ctrl.UpdateForms(func(f *view.Forms) {
		f.BillAmount = amount
		f.FromUserID = from
	})
	return a.ctrl.CreateBill(ctx)
}

func (a *App) Card(ctx context.Context) error {
	a.ctrl.SetTab(ctx, view.TabCard)
	fmt.Fprintf(a.out, "Card: %s\n", a.ctrl.View().Card)
	return nil
}

func (a *App) CopyCard(ctx context.Context) error {
	return a.ctrl.CopyCard(ctx)
}

func (a *App) ResetCard(ctx context.Context) error {
	return a.ctrl.ResetCard(ctx)
}

func (a *App) History(ctx context.Context) error {
	a.ctrl.SetTab(ctx, view.TabHistory)
	renderHistory(a.out, a.ctrl.View())
	return nil
}

// Tab switches the active tab and shows its content.
func (a *App) Tab(ctx context.Context, name string) error {
	tab, ok := view.ParseTab(name)
	if !ok {
		fmt.Fprintf(a.out, "Unknown tab: %s\n", name)
		return fmt.Errorf("unknown tab %q", name)
	}

	switch tab {
	case view.TabCard:
		return a.Card(ctx)
	case view.TabHistory:
		return a.History(ctx)
	}
	a.ctrl.SetTab(ctx, tab)
	return a.Balance(ctx)
}

func (a *App) Refresh(ctx context.Context) error {
	a.ctrl.Refresh(ctx)
	return a.Balance(ctx)
}
