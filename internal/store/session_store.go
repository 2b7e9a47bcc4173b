package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/lookbook/internal/domain"
	"github.com/vbonduro/lookbook/internal/gallery"
)

// SessionStore persists the ratings and comments of visitor sessions.
type SessionStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

// Load returns the stored state of sessionID. Unknown sessions load as empty.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (gallery.State, error) {
	st := gallery.State{Ratings: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, `
		SELECT image_id, value FROM ratings WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return gallery.State{}, fmt.Errorf("failed to load ratings: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var imageID string
		var value int
		if err := rows.Scan(&imageID, &value); err != nil {
			return gallery.State{}, fmt.Errorf("failed to scan rating: %w", err)
		}
		st.Ratings[imageID] = value
	}
	if err := rows.Err(); err != nil {
		return gallery.State{}, fmt.Errorf("error iterating ratings: %w", err)
	}

	comments, err := s.listComments(ctx, sessionID)
	if err != nil {
		return gallery.State{}, err
	}
	st.Comments = comments

	return st, nil
}

func (s *SessionStore) listComments(ctx context.Context, sessionID string) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_id, author, text, outfit_link, created_at FROM comments
		WHERE session_id = ? ORDER BY rowid ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	defer closeRows(rows)

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ImageID, &c.Author, &c.Text, &c.OutfitLink, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

// Save writes st for sessionID in one transaction. Rows already stored are left
// untouched, so ratings stay write-once and comments keep their original order.
func (s *SessionStore) Save(ctx context.Context, sessionID string, st gallery.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, last_seen_at) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET last_seen_at = excluded.last_seen_at
	`, sessionID, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	for imageID, value := range st.Ratings {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO ratings (session_id, image_id, value) VALUES (?, ?, ?)
		`, sessionID, imageID, value); err != nil {
			return fmt.Errorf("failed to save rating for %s: %w", imageID, err)
		}
	}

	for _, c := range st.Comments {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO comments (id, session_id, image_id, author, text, outfit_link, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, sessionID, c.ImageID, c.Author, c.Text, c.OutfitLink, c.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to save comment %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// Summary aggregates every stored session.
func (s *SessionStore) Summary(ctx context.Context) (*domain.Summary, error) {
	sum := &domain.Summary{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM sessions),
			(SELECT COUNT(*) FROM ratings),
			(SELECT COUNT(*) FROM comments)
	`).Scan(&sum.Sessions, &sum.Ratings, &sum.Comments)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT image_id, SUM(ratings), SUM(total), SUM(comments) FROM (
			SELECT image_id, COUNT(*) AS ratings, SUM(value) AS total, 0 AS comments
			FROM ratings GROUP BY image_id
			UNION ALL
			SELECT image_id, 0, 0, COUNT(*) FROM comments GROUP BY image_id
		)
		GROUP BY image_id
		ORDER BY image_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize images: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var is domain.ImageStats
		var total int
		if err := rows.Scan(&is.ImageID, &is.Ratings, &total, &is.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan image summary: %w", err)
		}
		if is.Ratings > 0 {
			is.Average = float64(total) / float64(is.Ratings)
		}
		sum.Images = append(sum.Images, is)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image summary: %w", err)
	}

	return sum, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}
