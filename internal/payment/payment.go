// Package payment handles in-game purchases: requests are validated, created
// and completed through a Gateway, then recorded.
package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starpath/internal/core"
)

var (
	ErrInvalidRequest   = errors.New("payment: invalid request")
	ErrUnknownPayment   = errors.New("payment: unknown payment")
	ErrAlreadyCompleted = errors.New("payment: already completed")
)

// Status is the lifecycle state of a payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Request asks for a purchase on behalf of a player.
type Request struct {
	Player string
	Amount float64
	Memo   string
}

// Validate checks the request before it reaches a gateway.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Player) == "" {
		return fmt.Errorf("%w: player is required", ErrInvalidRequest)
	}
	if !core.IsFinite(r.Amount) || r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive number, got %v", ErrInvalidRequest, r.Amount)
	}
	return nil
}

// ParseAmount parses a user-supplied amount.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", ErrInvalidRequest, s)
	}
	return v, nil
}

// Payment is a payment as seen by a gateway.
type Payment struct {
	ID        string
	Player    string
	Amount    float64
	Memo      string
	TxID      string
	Status    Status
	CreatedAt time.Time
}

// Gateway creates and completes payments with a payment provider.
type Gateway interface {
	CreatePayment(ctx context.Context, req Request) (Payment, error)
	CompletePayment(ctx context.Context, paymentID string) (Payment, error)
}

// Record is a payment row for persistence.
type Record struct {
	PaymentID string
	Player    string
	Amount    float64
	Memo      string
	TxID      string
	Status    string
}

// Recorder persists payments.
// This allows the service to record payments without depending on the storage package.
type Recorder interface {
	RecordPayment(rec Record) error
}

// LocalGateway is an in-process gateway that approves every payment.
// Payment ids are "pi_" followed by the creation time in milliseconds.
type LocalGateway struct {
	mu      sync.Mutex
	now     func() time.Time
	lastID  int64
	pending map[string]Payment
}

// NewLocalGateway creates a gateway using the wall clock.
func NewLocalGateway() *LocalGateway {
	return &LocalGateway{
		now:     time.Now,
		pending: make(map[string]Payment),
	}
}

// CreatePayment registers a pending payment.
func (g *LocalGateway) CreatePayment(ctx context.Context, req Request) (Payment, error) {
	if err := ctx.Err(); err != nil {
		return Payment{}, err
	}
	if err := req.Validate(); err != nil {
		return Payment{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	stamp := now.UnixMilli()
	if stamp <= g.lastID {
		stamp = g.lastID + 1
	}
	g.lastID = stamp

	p := Payment{
		ID:        "pi_" + strconv.FormatInt(stamp, 10),
		Player:    req.Player,
		Amount:    req.Amount,
		Memo:      req.Memo,
		Status:    StatusPending,
		CreatedAt: now,
	}
	g.pending[p.ID] = p
	return p, nil
}

// CompletePayment approves a pending payment and assigns a transaction id.
func (g *LocalGateway) CompletePayment(ctx context.Context, paymentID string) (Payment, error) {
	if err := ctx.Err(); err != nil {
		return Payment{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.pending[paymentID]
	if !ok {
		return Payment{}, fmt.Errorf("%w: %s", ErrUnknownPayment, paymentID)
	}
	if p.Status == StatusCompleted {
		return p, fmt.Errorf("%w: %s", ErrAlreadyCompleted, paymentID)
	}
	p.Status = StatusCompleted
	p.TxID = "tx_" + strings.TrimPrefix(p.ID, "pi_")
	g.pending[paymentID] = p
	return p, nil
}

// Service runs purchases through a gateway and records them.
type Service struct {
	gateway  Gateway
	recorder Recorder // Optional, can be nil
	logger   *log.Logger
}

// NewService creates a purchase service. A nil logger discards output.
func NewService(gw Gateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{gateway: gw, logger: logger}
}

// SetRecorder sets the optional payment recorder.
func (s *Service) SetRecorder(rec Recorder) {
	s.recorder = rec
}

// Purchase validates, creates and completes a payment, then records it.
// A payment the gateway fails to complete is recorded as failed.
func (s *Service) Purchase(ctx context.Context, req Request) (Payment, error) {
	if err := req.Validate(); err != nil {
		return Payment{}, err
	}

	p, err := s.gateway.CreatePayment(ctx, req)
	if err != nil {
		return Payment{}, fmt.Errorf("payment: create: %w", err)
	}
	s.logger.Debug("payment created", "id", p.ID, "player", p.Player, "amount", p.Amount)

	completed, err := s.gateway.CompletePayment(ctx, p.ID)
	if err != nil {
		p.Status = StatusFailed
		s.logger.Warn("payment failed", "id", p.ID, "err", err)
		if recErr := s.record(p); recErr != nil {
			return p, errors.Join(fmt.Errorf("payment: complete: %w", err), recErr)
		}
		return p, fmt.Errorf("payment: complete: %w", err)
	}

	if err := s.record(completed); err != nil {
		return completed, err
	}
	s.logger.Info("payment completed", "id", completed.ID, "player", completed.Player, "amount", completed.Amount, "txid", completed.TxID)
	return completed, nil
}

func (s *Service) record(p Payment) error {
	if s.recorder == nil {
		return nil
	}
	err := s.recorder.RecordPayment(Record{
		PaymentID: p.ID,
		Player:    p.Player,
		Amount:    p.Amount,
		Memo:      p.Memo,
		TxID:      p.TxID,
		Status:    string(p.Status),
	})
	if err != nil {
		return fmt.Errorf("payment: record %s: %w", p.ID, err)
	}
	return nil
}
