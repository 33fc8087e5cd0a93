package contact

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const selectColumns = `id::text, name, email, phone, message, status, last_error, created_at, sent_at`

func (r *postgresRepo) Create(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	const q = `
INSERT INTO contact_messages (id, name, email, phone, message, status)
VALUES ($1, $2, $3, $4, $5, 'pending')
RETURNING ` + selectColumns
	out, err := scanMessage(r.pool.QueryRow(ctx, q,
		msg.ID,
		strings.TrimSpace(msg.Name),
		strings.ToLower(strings.TrimSpace(msg.Email)),
		strings.TrimSpace(msg.Phone),
		msg.Message,
	))
	if err != nil {
		r.logger.Printf("contact repo: create email=%s: %v", msg.Email, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `SELECT ` + selectColumns + ` FROM contact_messages WHERE id = $1`
	return scanMessage(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	const q = `
UPDATE contact_messages
SET status = 'sent', sent_at = $2, last_error = '', attempts = attempts + 1
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, id, at.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkFailed(ctx context.Context, id, reason string) error {
	const q = `
UPDATE contact_messages
SET status = 'failed', last_error = $2, attempts = attempts + 1
WHERE id = $1 AND status <> 'sent'
`
	tag, err := r.pool.Exec(ctx, q, id, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("contact repo: mark failed id=%s matched no pending row", id)
	}
	return nil
}

func scanMessage(row pgx.Row) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Status, &m.LastError, &m.CreatedAt, &m.SentAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
