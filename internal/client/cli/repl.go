package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	beginCommand() (end func())

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Accounts(ctx context.Context) error
	Use(ctx context.Context, username string) error
	Forget(ctx context.Context, username string) error

	Balance(ctx context.Context) error
	Transfer(ctx context.Context) error
	PayBill(ctx context.Context) error
	CreateBill(ctx context.Context) error
	Card(ctx context.Context) error
	CopyCard(ctx context.Context) error
	ResetCard(ctx context.Context) error
	History(ctx context.Context) error
	Tab(ctx context.Context, name string) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, register, accounts, use <username>, forget <username>, exit"
	helpLoggedIn  = "Available commands: balance, transfer, pay, bill, card, copy, reset, history, tab <transfer|card|history>, refresh, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the Coin Bank CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command handlers share reader for their own
// prompts. The loop exits on EOF, on context cancellation, or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               show available commands
//	  - login              authenticate
//	  - register           create an account
//	  - accounts           list saved accounts
//	  - use <username>     log in with a saved account
//	  - forget <username>  remove a saved account
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - help               show available commands
//	  - balance            show the balance
//	  - transfer           send coins
//	  - pay                pay a bill
//	  - bill               create a bill
//	  - card               show the card code
//	  - copy               copy the card code to the clipboard
//	  - reset              reset the card code
//	  - history            show recent transactions
//	  - tab <name>         switch tab (transfer, card, history)
//	  - refresh            reload balance, card and history
//	  - logout             log out
//	  - exit | quit        leave the program
//
// Errors returned by command handlers have already been shown to the user
// by the handlers themselves; the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(fmt.Sprintf("coinbank %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "login", "register", "accounts", "use", "forget":
			if a.isLoggedIn() {
				printlnFn("Please logout first")
				continue
			}
			end := a.beginCommand()
			dispatchLoggedOut(ctx, a, cmd, args)
			end()

		case "balance", "transfer", "pay", "bill", "card", "copy", "reset", "history", "tab", "refresh", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			end := a.beginCommand()
			dispatchLoggedIn(ctx, a, cmd, args)
			end()

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchLoggedOut(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "login":
		_ = a.Login(ctx)
	case "register":
		_ = a.Register(ctx)
	case "accounts":
		_ = a.Accounts(ctx)
	case "use":
		if len(args) == 0 {
			printlnFn("Usage: use <username>")
			return
		}
		_ = a.Use(ctx, args[0])
	case "forget":
		if len(args) == 0 {
			printlnFn("Usage: forget <username>")
			return
		}
		_ = a.Forget(ctx, args[0])
	}
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "balance":
		_ = a.Balance(ctx)
	case "transfer":
		_ = a.Transfer(ctx)
	case "pay":
		_ = a.PayBill(ctx)
	case "bill":
		_ = a.CreateBill(ctx)
	case "card":
		_ = a.Card(ctx)
	case "copy":
		_ = a.CopyCard(ctx)
	case "reset":
		_ = a.ResetCard(ctx)
	case "history":
		_ = a.History(ctx)
	case "tab":
		if len(args) == 0 {
			printlnFn("Usage: tab <transfer|card|history>")
			return
		}
		_ = a.Tab(ctx, args[0])
	case "refresh":
		_ = a.Refresh(ctx)
	case "logout":
		_ = a.Logout(ctx)
	}
}
