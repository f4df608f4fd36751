package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=engine.go -destination=engine_mock.go -package=conversation

// EventKind tells how the user interacted with the bot.
type EventKind int

// Event kinds
const (
	EventCommand EventKind = iota // Slash command, e.g. /start
	EventText                     // Free text message
	EventChoice                   // Press of an inline keyboard button
)

// Event is one inbound user interaction.
type Event struct {
	ChatID   int64
	Username string
	Kind     EventKind
	Command  string // Command name without the slash, for EventCommand
	Text     string // Message text, for EventText
	Choice   string // Button data, for EventChoice
}

// Choice is an inline keyboard button.
type Choice struct {
	Label string
	Data  string
}

// Transport delivers bot replies to a chat.
type Transport interface {
	Prompt(ctx context.Context, chatID int64, text string, keyboard [][]Choice) error // Sends a question, with buttons when keyboard is not empty
	Confirm(ctx context.Context, chatID int64, text string) error                     // Sends a plain message
}

// SessionStore keeps the in-progress dialog of each chat.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*models.Session, error) // Returns nil when the chat has no dialog
	Save(ctx context.Context, chatID int64, s *models.Session) error
	Delete(ctx context.Context, chatID int64) error
}

// Registry resolves users and the accounts they own.
type Registry interface {
	RegisterUser(ctx context.Context, chatID int64, username string) (bool, error)
	Accounts(ctx context.Context, chatID int64) ([]models.Account, error)
	HasAccount(ctx context.Context, chatID int64) (bool, error)
	Account(ctx context.Context, chatID, accountID int64) (*models.Account, error)
}

// Ledger commits accounts and transactions.
type Ledger interface {
	CreateAccount(ctx context.Context, chatID int64, info models.AccountInfo, initial decimal.Decimal) (models.Account, error)
	RecordTransaction(ctx context.Context, account models.Account, amount decimal.Decimal, category, description string) (models.Transaction, decimal.Decimal, error)
}

// Balances reads current account balances.
type Balances interface {
	CurrentBalance(ctx context.Context, chatID, accountID int64) (decimal.Decimal, bool, error)
}

// Engine drives the CreateAccount and AddTransaction dialogs. Events of one chat are
// handled one at a time; different chats proceed in parallel.
type Engine struct {
	sessions  SessionStore
	registry  Registry
	ledger    Ledger
	balances  Balances
	transport Transport
	now       func() time.Time

	mu    sync.Mutex
	locks map[int64]*chatLock
}

type chatLock struct {
	sync.Mutex
	refs int
}

// NewEngine creates a new Engine.
func NewEngine(
	sessions SessionStore,
	registry Registry,
	ledger Ledger,
	balances Balances,
	transport Transport,
) *Engine {
	return &Engine{
		sessions:  sessions,
		registry:  registry,
		ledger:    ledger,
		balances:  balances,
		transport: transport,
		now:       time.Now,
		locks:     make(map[int64]*chatLock),
	}
}

// Handle processes one event. Persistence failures are reported to the user and end the
// dialog; the returned error is non-nil only when a reply could not be delivered or the
// session store failed.
func (e *Engine) Handle(ctx context.Context, ev Event) error {
	unlock := e.lock(ev.ChatID)
	defer unlock()

	if _, err := e.registry.RegisterUser(ctx, ev.ChatID, ev.Username); err != nil {
		logger.Log.Errorw("failed to register user", "chat_id", ev.ChatID, "error", err)
	}

	if ev.Kind == EventCommand {
		return e.handleCommand(ctx, ev)
	}

	s, err := e.sessions.Get(ctx, ev.ChatID)
	if err != nil {
		logger.Log.Errorw("failed to load session", "chat_id", ev.ChatID, "error", err)
		return e.storeFailed(ctx, ev.ChatID, err)
	}
	if s == nil {
		logger.Log.Debugw("no dialog in progress, ignoring event", "chat_id", ev.ChatID, "kind", ev.Kind)
		return nil
	}

	switch s.Dialog {
	case models.DialogCreateAccount:
		return e.stepCreateAccount(ctx, ev, s)
	case models.DialogAddTransaction:
		return e.stepAddTransaction(ctx, ev, s)
	default:
		logger.Log.Errorw("unknown dialog in session, dropping it", "chat_id", ev.ChatID, "dialog", s.Dialog)
		return e.sessions.Delete(ctx, ev.ChatID)
	}
}

func (e *Engine) lock(chatID int64) func() {
	e.mu.Lock()
	l, ok := e.locks[chatID]
	if !ok {
		l = &chatLock{}
		e.locks[chatID] = l
	}
	l.refs++
	e.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		e.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.locks, chatID)
		}
		e.mu.Unlock()
	}
}

// advance stores the session at its next state.
func (e *Engine) advance(ctx context.Context, chatID int64, s *models.Session, next models.DialogState) error {
	s.State = next
	s.UpdatedAt = e.now().UTC()
	if err := e.sessions.Save(ctx, chatID, s); err != nil {
		logger.Log.Errorw("failed to save session", "chat_id", chatID, "dialog", s.Dialog, "state", next, "error", err)
		return e.storeFailed(ctx, chatID, err)
	}
	return nil
}

// storeFailed tells the user the session store is unavailable and returns err.
func (e *Engine) storeFailed(ctx context.Context, chatID int64, err error) error {
	if sendErr := e.transport.Confirm(ctx, chatID, msgFailure); sendErr != nil {
		logger.Log.Errorw("failed to report session store failure", "chat_id", chatID, "error", sendErr)
	}
	return err
}

// finish ends the dialog and sends the final message.
func (e *Engine) finish(ctx context.Context, chatID int64, text string) error {
	if err := e.sessions.Delete(ctx, chatID); err != nil {
		logger.Log.Errorw("failed to clear session", "chat_id", chatID, "error", err)
	}
	return e.transport.Confirm(ctx, chatID, text)
}

// fail reports a failed operation to the user and ends the dialog without retrying.
func (e *Engine) fail(ctx context.Context, chatID int64, dialog models.DialogKind, err error) error {
	if errors.Is(err, models.ErrSchemaViolation) {
		logger.Log.Errorw("ledger schema violation, this is a defect", "chat_id", chatID, "dialog", dialog, "error", err)
	} else {
		logger.Log.Errorw("dialog failed", "chat_id", chatID, "dialog", dialog, "error", err)
	}
	return e.finish(ctx, chatID, msgFailure)
}
