package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) beginCommand() func()               { return func() {} }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Accounts(ctx context.Context) error { return f.record("accounts") }
func (f *fakeExec) Use(ctx context.Context, username string) error {
	f.loggedIn = true
	return f.record("use " + username)
}
func (f *fakeExec) Forget(ctx context.Context, username string) error {
	return f.record("forget " + username)
}
func (f *fakeExec) Balance(ctx context.Context) error    { return f.record("balance") }
func (f *fakeExec) Transfer(ctx context.Context) error   { return f.record("transfer") }
func (f *fakeExec) PayBill(ctx context.Context) error    { return f.record("pay") }
func (f *fakeExec) CreateBill(ctx context.Context) error { return f.record("bill") }
func (f *fakeExec) Card(ctx context.Context) error       { return f.record("card") }
func (f *fakeExec) CopyCard(ctx context.Context) error   { return f.record("copy") }
func (f *fakeExec) ResetCard(ctx context.Context) error  { return f.record("reset") }
func (f *fakeExec) History(ctx context.Context) error    { return f.record("history") }
func (f *fakeExec) Tab(ctx context.Context, name string) error {
	return f.record("tab " + name)
}
func (f *fakeExec) Refresh(ctx context.Context) error { return f.record("refresh") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

// captureOutput swaps the print seams for a buffer of printed lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	origPrintln, origPrint := printlnFn, printFn
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"accounts",
		"login",
		"help",
		"balance",
		"transfer",
		"pay",
		"bill",
		"card",
		"copy",
		"reset",
		"history",
		"tab card",
		"refresh",
		"foobar",
		"logout",
		"use bob",
		"exit",
		"balance",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"accounts", "login", "balance", "transfer", "pay", "bill", "card", "copy", "reset",
		"history", "tab card", "refresh", "logout", "use bob",
	}, exec.calls)

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_GuardsByLoginState(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("transfer\nlogout\n")))
	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{"Please login first", "Please login first", ""}, *out)

	*out = nil
	exec = &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\nregister\nquit\n")))
	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{"Please logout first", "Please logout first", "Bye!"}, *out)
}

func TestRunREPL_UsageMessages(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("use\nforget\nlogin\ntab\nquit\n")))

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.Contains(t, *out, "Usage: use <username>")
	assert.Contains(t, *out, "Usage: forget <username>")
	assert.Contains(t, *out, "Usage: tab <transfer|card|history>")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("balance")))

	assert.Equal(t, []string{"balance"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("balance\n")))

	assert.Empty(t, exec.calls)
}
