package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/starpath/internal/payment"
)

// PaymentEntry is a recorded payment.
type PaymentEntry struct {
	ID        int64
	PaymentID string
	Player    string
	Amount    float64
	Memo      string
	TxID      string
	Status    string // "pending", "completed", "failed"
	CreatedAt time.Time
}

// SavePayment records a payment. A payment ID seen before updates the
// existing row's transaction and status.
// Returns the ID of the record.
func (s *Store) SavePayment(p PaymentEntry) (int64, error) {
	_, err := s.db.Exec(
		`INSERT INTO payments (payment_id, player, amount, memo, txid, status)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(payment_id) DO UPDATE SET
		   txid = excluded.txid,
		   status = excluded.status`,
		p.PaymentID, p.Player, p.Amount, p.Memo, p.TxID, p.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save payment: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM payments WHERE payment_id = ?", p.PaymentID).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get payment ID: %w", err)
	}
	return id, nil
}

// RecordPayment implements payment.Recorder.
func (s *Store) RecordPayment(rec payment.Record) error {
	_, err := s.SavePayment(PaymentEntry{
		PaymentID: rec.PaymentID,
		Player:    rec.Player,
		Amount:    rec.Amount,
		Memo:      rec.Memo,
		TxID:      rec.TxID,
		Status:    rec.Status,
	})
	return err
}

// Ensure Store implements Recorder
var _ payment.Recorder = (*Store)(nil)

// PaymentByID retrieves a payment by its gateway ID. Returns nil if not found.
func (s *Store) PaymentByID(paymentID string) (*PaymentEntry, error) {
	var p PaymentEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, payment_id, player, amount, memo, txid, status, created_at
		 FROM payments
		 WHERE payment_id = ?`,
		paymentID,
	).Scan(&p.ID, &p.PaymentID, &p.Player, &p.Amount, &p.Memo, &p.TxID, &p.Status, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query payment: %w", err)
	}
	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}

// Payments retrieves a player's payments, newest first.
func (s *Store) Payments(player string, limit int) ([]PaymentEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, payment_id, player, amount, memo, txid, status, created_at
		 FROM payments
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query payments: %w", err)
	}
	defer rows.Close()

	var entries []PaymentEntry
	for rows.Next() {
		var p PaymentEntry
		var createdAt any
		if err := rows.Scan(&p.ID, &p.PaymentID, &p.Player, &p.Amount, &p.Memo, &p.TxID, &p.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
