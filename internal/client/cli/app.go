package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
	"github.com/dmitrijs2005/coinbank/internal/client/clipboard"
	"github.com/dmitrijs2005/coinbank/internal/client/config"
	"github.com/dmitrijs2005/coinbank/internal/client/controller"
	"github.com/dmitrijs2005/coinbank/internal/client/polling"
	"github.com/dmitrijs2005/coinbank/internal/client/services"
	"github.com/dmitrijs2005/coinbank/internal/client/storage"
	"github.com/dmitrijs2005/coinbank/internal/client/view"
	"github.com/dmitrijs2005/coinbank/internal/filex"
	"github.com/dmitrijs2005/coinbank/internal/logging"
)

// closeGrace bounds how long Close waits for a running command.
var closeGrace = 5 * time.Second

type App struct {
	config  *config.Config
	ctrl    *controller.Controller
	poller  *polling.Poller
	db      *sql.DB
	logFile io.WriteCloser
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	// cmdMu is held while a REPL command runs.
	cmdMu sync.Mutex
}

// NewApp wires the client against stdin/stdout. Logs go to the configured
// log file so they never mix with the REPL.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	ctx := context.Background()

	for _, path := range []string{c.DBPath, c.LogFile} {
		if path == "" {
			continue
		}
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	logFile, err := openLog(c.LogFile)
	if err != nil {
		return nil, err
	}
	log := logging.New(logFile, c.LogLevel)

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		_ = logFile.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		db:      db,
		logFile: logFile,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}

	state := services.NewSessionState()
	bank := api.NewClient(c.BaseURL, nil, state, log.With("component", "api"))
	screen := view.NewState()
	loader := services.NewLoader(bank, state, screen, log.With("component", "loader"))
	a.poller = polling.New(loader, c.PollInterval, log.With("component", "poller"))

	sessions := services.NewSessionManager(bank, storage.NewStore(db), state, a.poller, log.With("component", "session"))
	actions := services.NewActions(bank, state, loader, a, clipboard.System{}, log.With("component", "actions"))
	a.ctrl = controller.New(sessions, actions, loader, a.poller, screen, a, log)

	return a, nil
}

// Run restores the previous session, if any, and blocks in the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.log.Info(ctx, "client started", "base_url", a.config.BaseURL)

	a.ctrl.Init(ctx)
	fmt.Fprintln(a.out, "Welcome to Coin Bank CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		a.printLoggedIn()
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close waits for the running command, if any, then stops polling and
// releases the database and log file. No command starts after Close.
func (a *App) Close() error {
	if !a.waitIdle(closeGrace) {
		a.log.Warn(context.Background(), "closing while a command is still running")
	}
	a.poller.Stop()
	dbErr := a.db.Close()
	logErr := a.logFile.Close()
	if dbErr != nil {
		return dbErr
	}
	return logErr
}

func (a *App) beginCommand() func() {
	a.cmdMu.Lock()
	return a.cmdMu.Unlock
}

// waitIdle takes the command lock, giving up after d.
func (a *App) waitIdle(d time.Duration) bool {
	locked := make(chan struct{})
	go func() {
		a.cmdMu.Lock()
		close(locked)
	}()

	select {
	case <-locked:
		return true
	case <-time.After(d):
		return false
	}
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	snap := a.ctrl.View()
	return fmt.Sprintf("(%s %s)", snap.Username, snap.Balance)
}

// Notify implements controller.Notifier.
func (a *App) Notify(msg string) {
	fmt.Fprintln(a.out, msg)
}

// Confirm implements services.Confirmer. Anything but y/yes declines.
func (a *App) Confirm(ctx context.Context, prompt string) bool {
	answer, err := getSimpleText(a.reader, prompt+" [y/N]", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openLog opens path for appending; an empty path means stderr.
func openLog(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
