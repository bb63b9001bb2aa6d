package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/campuslink/pkg/models"
	"go.uber.org/zap"
)

// Task operations

// CreateTask inserts a to-do item for a user
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := models.Validate(task); err != nil {
		return err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedDate.IsZero() {
		task.CreatedDate = time.Now().UTC()
	}
	query := `INSERT INTO tasks (id, user_id, title, done, due_date, created_date) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, task.ID, task.UserID, task.Title, task.Done,
		nullTime(task.DueDate), task.CreatedDate)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// ListTasks returns a user's tasks, open ones first, then by due date
func (s *Store) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `SELECT id, user_id, title, done, due_date, created_date FROM tasks WHERE user_id=?
			  ORDER BY done, due_date IS NULL, due_date, created_date`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task := &models.Task{}
		var due sql.NullTime
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Done, &due, &task.CreatedDate); err != nil {
			return nil, err
		}
		task.DueDate = timePtr(due)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CompleteTask marks a task as done
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET done=1 WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return expectOne(res, "task", id)
}

// Message operations

// SendMessage stores a direct message. Both users must exist.
func (s *Store) SendMessage(ctx context.Context, msg *models.Message) error {
	if err := models.Validate(msg); err != nil {
		return err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedDate.IsZero() {
		msg.CreatedDate = time.Now().UTC()
	}
	query := `INSERT INTO messages (id, sender_id, recipient_id, body, created_date, read_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, msg.ID, msg.SenderID, msg.RecipientID, msg.Body,
		msg.CreatedDate, nullTime(msg.ReadAt))
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	s.logger.Debug("message sent", zap.String("id", msg.ID), zap.String("recipient_id", msg.RecipientID))
	return nil
}

// Inbox returns messages addressed to userID, newest first
func (s *Store) Inbox(ctx context.Context, userID string) ([]*models.Message, error) {
	query := `SELECT id, sender_id, recipient_id, body, created_date, read_at FROM messages
			  WHERE recipient_id=? ORDER BY created_date DESC, id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query inbox: %w", err)
	}
	defer rows.Close()

	msgs := []*models.Message{}
	for rows.Next() {
		m := &models.Message{}
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedDate, &readAt); err != nil {
			return nil, err
		}
		m.ReadAt = timePtr(readAt)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// MarkRead stamps a message as read if it is still unread
func (s *Store) MarkRead(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET read_at=? WHERE id=? AND read_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return expectOne(res, "unread message", id)
}

// Session operations. A single row holds the active session.

// SaveSession persists the active session, replacing any previous one
func (s *Store) SaveSession(ctx context.Context, userID string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO sessions (slot, user_id, started_at) VALUES (1, ?, ?)`,
		userID, startedAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the active session's user and start time, or ErrNotFound
func (s *Store) LoadSession(ctx context.Context) (string, time.Time, error) {
	var userID string
	var startedAt time.Time
	err := s.db.QueryRowContext(ctx, `SELECT user_id, started_at FROM sessions WHERE slot=1`).Scan(&userID, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, fmt.Errorf("session: %w", ErrNotFound)
	}
	return userID, startedAt, err
}

// ClearSession removes the active session
func (s *Store) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
