package payments

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"sync"
	"time"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"blocktrack/core/events"
	"blocktrack/core/types"
	"blocktrack/observability/metrics"
)

// DefaultRecentLimit bounds RecentTransactions when the caller passes no
// limit.
const DefaultRecentLimit = 5

var (
	// ErrNoWallet is returned when a mutating operation runs without an
	// active wallet session.
	ErrNoWallet = errors.New("payments: wallet not connected")
	// ErrRecipientInvalid is returned when the recipient participant is
	// unknown or has no wallet address.
	ErrRecipientInvalid = errors.New("payments: invalid recipient")
	// ErrInsufficientBalance is returned when the sender's remote balance
	// does not cover the amount.
	ErrInsufficientBalance = errors.New("payments: insufficient balance")
	// ErrNotFound is returned when a payment id does not resolve.
	ErrNotFound = errors.New("payments: payment not found")
	// ErrInvalidAmount is returned for non-positive or unparseable amounts.
	ErrInvalidAmount = errors.New("payments: amount must be a positive decimal")
)

// Session exposes the live wallet account, if any.
type Session interface {
	Account() (string, bool)
}

// BalanceSource reports the authoritative remote balance as a decimal ether
// string.
type BalanceSource interface {
	GetBalance(ctx context.Context, account string) (string, error)
}

// ParticipantResolver resolves recipient participant ids.
type ParticipantResolver interface {
	GetParticipant(id string) (*types.Participant, bool)
}

// Store is the slice of the repository the ledger needs.
type Store interface {
	LoadPayments() []*types.Payment
	SavePayments(payments []*types.Payment)
}

// Ledger is the ordered collection of payment records, most recent first.
// Local payment creation is treated as immediately settled; no pending
// confirmation state is modelled.
type Ledger struct {
	mu       sync.Mutex
	payments []*types.Payment

	session      Session
	balances     BalanceSource
	participants ParticipantResolver
	store        Store
	emitter      events.Emitter
	nowFn        func() int64

	// senderMu serialises the balance-check-then-append sequence per
	// sender so overlapping creates cannot both pass against a stale
	// balance.
	sendersMu sync.Mutex
	senders   map[string]*sync.Mutex
}

// NewLedger loads the persisted ledger and wires its collaborators.
func NewLedger(store Store, session Session, balances BalanceSource, participants ParticipantResolver) (*Ledger, error) {
	if store == nil {
		return nil, errors.New("payments: store not configured")
	}
	return &Ledger{
		payments:     store.LoadPayments(),
		session:      session,
		balances:     balances,
		participants: participants,
		store:        store,
		emitter:      events.NoopEmitter{},
		nowFn:        nowMillis,
		senders:      make(map[string]*sync.Mutex),
	}, nil
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// SetEmitter configures the event emitter. Passing nil resets to no-op.
func (l *Ledger) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		l.emitter = events.NoopEmitter{}
		return
	}
	l.emitter = emitter
}

// SetNowFunc overrides the time source; tests use it for deterministic
// timestamps.
func (l *Ledger) SetNowFunc(now func() int64) {
	if now == nil {
		l.nowFn = nowMillis
		return
	}
	l.nowFn = now
}

func (l *Ledger) senderLock(account string) *sync.Mutex {
	l.sendersMu.Lock()
	defer l.sendersMu.Unlock()
	mu, ok := l.senders[account]
	if !ok {
		mu = &sync.Mutex{}
		l.senders[account] = mu
	}
	return mu
}

// parseDecimal parses a positive decimal amount string.
func parseDecimal(raw string) (*big.Rat, error) {
	rat, ok := new(big.Rat).SetString(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return rat, nil
}

// checkBalance fetches the sender's remote balance and verifies it covers the
// amount.
func (l *Ledger) checkBalance(ctx context.Context, sender string, amount *big.Rat) error {
	balanceStr, err := l.balances.GetBalance(ctx, sender)
	if err != nil {
		return err
	}
	balance, ok := new(big.Rat).SetString(balanceStr)
	if !ok {
		return fmt.Errorf("payments: unparseable remote balance %q", balanceStr)
	}
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, balanceStr, amount.FloatString(6))
	}
	return nil
}

// generateID derives a collision-resistant payment id from the creation
// instant and fresh randomness.
func generateID(now int64) string {
	var entropy [32]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// crypto/rand never fails on supported platforms; keep the id
		// derivation total regardless.
		copy(entropy[:], gethcrypto.Keccak256([]byte(strconv.FormatInt(now, 10))))
	}
	seed := strconv.FormatInt(now, 10) + hex.EncodeToString(entropy[:])
	return gethcrypto.Keccak256Hash([]byte(seed)).Hex()
}

// CreatePayment validates the recipient and the sender's remote balance, then
// prepends a settled payment to the ledger. The balance check and the append
// are serialised per sender.
func (l *Ledger) CreatePayment(ctx context.Context, toParticipantID, amount, productID string) (*types.Payment, error) {
	sender, ok := l.session.Account()
	if !ok {
		return nil, ErrNoWallet
	}

	recipient, ok := l.participants.GetParticipant(toParticipantID)
	if !ok {
		metrics.Payments().Rejected("recipient_unknown")
		return nil, fmt.Errorf("%w: participant %s not found", ErrRecipientInvalid, toParticipantID)
	}
	if recipient.WalletAddress == "" {
		metrics.Payments().Rejected("recipient_no_wallet")
		return nil, fmt.Errorf("%w: participant %s has no wallet address", ErrRecipientInvalid, toParticipantID)
	}

	parsed, err := parseDecimal(amount)
	if err != nil {
		metrics.Payments().Rejected("invalid_amount")
		return nil, err
	}
	if parsed.Sign() <= 0 {
		metrics.Payments().Rejected("invalid_amount")
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	senderMu := l.senderLock(sender)
	senderMu.Lock()
	defer senderMu.Unlock()

	if err := l.checkBalance(ctx, sender, parsed); err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			metrics.Payments().Rejected("insufficient_balance")
		}
		return nil, err
	}

	now := l.nowFn()
	payment := &types.Payment{
		ID:        generateID(now),
		From:      sender,
		To:        recipient.WalletAddress,
		Amount:    amount,
		ProductID: productID,
		Timestamp: now,
		Completed: true,
	}

	l.mu.Lock()
	l.payments = append([]*types.Payment{payment}, l.payments...)
	l.store.SavePayments(l.payments)
	l.mu.Unlock()

	metrics.Payments().Created()
	l.emitter.Emit(events.PaymentCreated{
		ID:        payment.ID,
		From:      payment.From,
		To:        payment.To,
		Amount:    payment.Amount,
		ProductID: payment.ProductID,
		Timestamp: payment.Timestamp,
	})
	return payment.Clone(), nil
}

// CompletePayment re-checks the payer's balance and marks the payment
// complete. Completing an already-completed payment is a no-op.
func (l *Ledger) CompletePayment(ctx context.Context, paymentID string) error {
	if _, ok := l.session.Account(); !ok {
		return ErrNoWallet
	}

	l.mu.Lock()
	var payment *types.Payment
	for _, p := range l.payments {
		if p.ID == paymentID {
			payment = p
			break
		}
	}
	l.mu.Unlock()
	if payment == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, paymentID)
	}

	amount, err := parseDecimal(payment.Amount)
	if err != nil {
		return err
	}

	senderMu := l.senderLock(payment.From)
	senderMu.Lock()
	defer senderMu.Unlock()

	if err := l.checkBalance(ctx, payment.From, amount); err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			metrics.Payments().Rejected("insufficient_balance")
		}
		return err
	}

	l.mu.Lock()
	changed := !payment.Completed
	payment.Completed = true
	if changed {
		l.store.SavePayments(l.payments)
	}
	l.mu.Unlock()

	metrics.Payments().Completed()
	if changed {
		l.emitter.Emit(events.PaymentCompleted{ID: paymentID})
	}
	return nil
}

// GetBalance reports the session account's remote balance, or "0.0" when no
// wallet is connected.
func (l *Ledger) GetBalance(ctx context.Context) (string, error) {
	account, ok := l.session.Account()
	if !ok {
		return "0.0", nil
	}
	return l.balances.GetBalance(ctx, account)
}

// RecentTransactions returns up to limit payments ordered by descending
// timestamp. The master ledger order is untouched: the sort runs on a copy.
func (l *Ledger) RecentTransactions(limit int) []*types.Payment {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	l.mu.Lock()
	sorted := make([]*types.Payment, len(l.payments))
	copy(sorted, l.payments)
	l.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]*types.Payment, len(sorted))
	for i, p := range sorted {
		out[i] = p.Clone()
	}
	return out
}

// Payments returns a copy of the ledger in its stored order (most recent
// first).
func (l *Ledger) Payments() []*types.Payment {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*types.Payment, len(l.payments))
	for i, p := range l.payments {
		out[i] = p.Clone()
	}
	return out
}
