package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
	"github.com/dmitrijs2005/coinbank/internal/client/models"
	"github.com/dmitrijs2005/coinbank/internal/common"
	"github.com/dmitrijs2005/coinbank/internal/logging"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount accepted for transfers and bills.
var MaxAmount = decimal.NewFromInt(999999999)

const (
	msgTransferInvalid = "Please enter valid amount and recipient ID"
	msgAmountTooLarge  = "Amount too large"
	msgTransferFailed  = "Transfer failed"
	msgTransferDone    = "Transfer completed successfully!"

	msgBillIDRequired = "Please enter a bill ID"
	msgPayBillFailed  = "Failed to pay bill"
	msgBillPaid       = "Bill paid successfully!"

	msgBillInvalid       = "Please enter valid amount and user ID"
	msgCreateBillFailed  = "Failed to create bill"
	msgBillCreatedFormat = "Bill created successfully!\nBill ID: %s"

	msgResetCardConfirm = "Are you sure you want to reset your card? This will generate a new card code."
	msgResetCardFailed  = "Failed to reset card."
	msgCardResetFormat  = "Card reset successfully! New code: %s"

	msgCopied           = "Card code copied to clipboard!"
	msgCopyManualFormat = "Failed to copy. Please copy manually: %s"
	msgNoCardCode       = "Failed to get card code"
	msgCopyFailed       = "Failed to copy card code."
)

// Actions are the user-initiated bank operations. Each validates its input
// locally, asks for confirmation where needed, and issues at most one
// mutating API call. The returned string is the success message.
//
// Errors are *common.ValidationError (nothing was sent), *common.UserError
// (the call failed; Message is what to show) or common.ErrCancelled.
type Actions interface {
	Transfer(ctx context.Context, amount, recipientID string) (string, error)
	PayBill(ctx context.Context, billID string) (string, error)
	CreateBill(ctx context.Context, amount, fromUserID string) (string, error)
	ResetCard(ctx context.Context) (string, error)
	CopyCard(ctx context.Context) (string, error)
}

type actions struct {
	bank      BankClient
	state     *SessionState
	loader    *Loader
	confirm   Confirmer
	clipboard Clipboard
	log       logging.Logger
}

func NewActions(bank BankClient, state *SessionState, loader *Loader, confirm Confirmer, clipboard Clipboard, log logging.Logger) Actions {
	return &actions{
		bank:      bank,
		state:     state,
		loader:    loader,
		confirm:   confirm,
		clipboard: clipboard,
		log:       log,
	}
}

func (a *actions) session() (models.Session, error) {
	s, ok := a.state.Current()
	if !ok {
		return models.Session{}, common.NewUserError(msgLoginFirst, ErrNoSession)
	}
	return s, nil
}

// parseAmount accepts a decimal that is still positive once rounded to the
// wire precision and not above MaxAmount. id is checked together with the
// amount so both share invalidMsg.
func parseAmount(raw, id, invalidMsg string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err == nil {
		amount = amount.Round(api.AmountDecimals)
	}
	if err != nil || !amount.IsPositive() || id == "" {
		return decimal.Zero, common.NewValidationError(invalidMsg)
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, common.NewValidationError(msgAmountTooLarge)
	}
	return amount, nil
}

func (a *actions) Transfer(ctx context.Context, amount, recipientID string) (string, error) {
	recipientID = strings.TrimSpace(recipientID)
	value, err := parseAmount(amount, recipientID, msgTransferInvalid)
	if err != nil {
		return "", err
	}
	if _, err := a.session(); err != nil {
		return "", err
	}

	resp, err := a.bank.Transfer(ctx, recipientID, value)
	if err != nil {
		a.log.Warn(ctx, "transfer failed", "to_id", recipientID, "error", err)
		return "", common.NewUserError(describe(err, msgTransferFailed), err)
	}
	if !resp.Success {
		return "", rejected(resp.Error, msgTransferFailed)
	}

	a.log.Info(ctx, "transfer sent", "to_id", recipientID, "amount", value.String())
	a.loader.RefreshBalance(ctx)
	a.loader.RefreshTransactions(ctx)
	return msgTransferDone, nil
}

func (a *actions) PayBill(ctx context.Context, billID string) (string, error) {
	billID = strings.TrimSpace(billID)
	if billID == "" {
		return "", common.NewValidationError(msgBillIDRequired)
	}
	if _, err := a.session(); err != nil {
		return "", err
	}
	if !a.confirm.Confirm(ctx, fmt.Sprintf("Pay bill %s?", billID)) {
		return "", common.ErrCancelled
	}

	resp, err := a.bank.PayBill(ctx, billID)
	if err != nil {
		a.log.Warn(ctx, "pay bill failed", "bill_id", billID, "error", err)
		return "", common.NewUserError(describe(err, msgPayBillFailed), err)
	}
	if !resp.Success {
		return "", rejected(resp.Error, msgPayBillFailed)
	}

	a.log.Info(ctx, "bill paid", "bill_id", billID)
	a.loader.RefreshBalance(ctx)
	a.loader.RefreshTransactions(ctx)
	return msgBillPaid, nil
}

// CreateBill bills fromUserID; the current user is always the payee.
func (a *actions) CreateBill(ctx context.Context, amount, fromUserID string) (string, error) {
	fromUserID = strings.TrimSpace(fromUserID)
	value, err := parseAmount(amount, fromUserID, msgBillInvalid)
	if err != nil {
		return "", err
	}
	session, err := a.session()
	if err != nil {
		return "", err
	}

	resp, err := a.bank.CreateBill(ctx, fromUserID, session.UserID, value)
	if err != nil {
		a.log.Warn(ctx, "create bill failed", "from_id", fromUserID, "error", err)
		return "", common.NewUserError(describe(err, msgCreateBillFailed), err)
	}
	if !resp.Success || resp.BillID == "" {
		return "", rejected(resp.Error, msgCreateBillFailed)
	}

	a.log.Info(ctx, "bill created", "bill_id", resp.BillID.String(), "from_id", fromUserID)
	return fmt.Sprintf(msgBillCreatedFormat, resp.BillID), nil
}

func (a *actions) ResetCard(ctx context.Context) (string, error) {
	if _, err := a.session(); err != nil {
		return "", err
	}
	if !a.confirm.Confirm(ctx, msgResetCardConfirm) {
		return "", common.ErrCancelled
	}

	resp, err := a.bank.ResetCard(ctx)
	if err != nil {
		a.log.Warn(ctx, "reset card failed", "error", err)
		return "", common.NewUserError(describeTransient(err, msgResetCardFailed), err)
	}
	if resp.NewCode == "" {
		return "", common.NewUserError(msgResetCardFailed, ErrRejected)
	}

	a.loader.RefreshCard(ctx)
	return fmt.Sprintf(msgCardResetFormat, resp.NewCode), nil
}

// CopyCard fetches the card code and puts it on the clipboard. When the
// clipboard is unavailable the error message carries the code so the user
// can copy it by hand.
func (a *actions) CopyCard(ctx context.Context) (string, error) {
	if _, err := a.session(); err != nil {
		return "", err
	}

	resp, err := a.bank.Card(ctx)
	if err != nil {
		a.log.Warn(ctx, "get card failed", "error", err)
		return "", common.NewUserError(describeTransient(err, msgCopyFailed), err)
	}
	if resp.CardCode == "" {
		return "", common.NewUserError(msgNoCardCode, ErrRejected)
	}

	if err := a.clipboard.Copy(resp.CardCode); err != nil {
		a.log.Info(ctx, "clipboard unavailable", "error", err)
		return "", common.NewUserError(fmt.Sprintf(msgCopyManualFormat, resp.CardCode), err)
	}
	return msgCopied, nil
}

func rejected(serverMsg, fallback string) error {
	if serverMsg == "" {
		serverMsg = fallback
	}
	return common.NewUserError(serverMsg, ErrRejected)
}
