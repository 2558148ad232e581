// Package repository persists saved filter views: named, serialized
// filter trees a host can reload and run later.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renatomen/tasknotes-sub005/internal/filter"
)

// ErrViewNotFound indicates the named saved view does not exist.
var ErrViewNotFound = errors.New("saved view not found")

// SavedView is a named filter tree with persistence metadata.
type SavedView struct {
	ID        string
	Name      string
	Tree      filter.Node
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists saved views in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveView stores tree under name, replacing any previous tree with that
// name. The tree is deep-cloned before serialization so the stored view
// never aliases the caller's tree.
func (s *Store) SaveView(ctx context.Context, name string, tree filter.Node) (*SavedView, error) {
	if name == "" {
		return nil, fmt.Errorf("view name is required")
	}
	if err := filter.Validate(tree, filter.Strict); err != nil {
		return nil, fmt.Errorf("refusing to save incomplete view %q: %w", name, err)
	}

	cloned := filter.CloneNode(tree)
	data, err := filter.MarshalNode(cloned)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize view %q: %w", name, err)
	}

	now := time.Now().UTC()
	view := &SavedView{
		ID:        uuid.NewString(),
		Name:      name,
		Tree:      cloned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_views (id, name, tree, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			tree = excluded.tree,
			updated_at = excluded.updated_at`,
		view.ID, view.Name, string(data), view.CreatedAt, view.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save view %q: %w", name, err)
	}
	return view, nil
}

// GetView loads the saved view with the given name.
func (s *Store) GetView(ctx context.Context, name string) (*SavedView, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, tree, created_at, updated_at
		FROM saved_views WHERE name = ?`, name)
	return scanView(row)
}

// ListViews returns all saved views ordered by name.
func (s *Store) ListViews(ctx context.Context) ([]*SavedView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tree, created_at, updated_at
		FROM saved_views ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	defer rows.Close()

	var views []*SavedView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	return views, nil
}

// DeleteView removes the named saved view.
func (s *Store) DeleteView(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_views WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete view %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete view %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("view %q: %w", name, ErrViewNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(row rowScanner) (*SavedView, error) {
	var view SavedView
	var tree string
	err := row.Scan(&view.ID, &view.Name, &tree, &view.CreatedAt, &view.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrViewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan view: %w", err)
	}

	node, err := filter.UnmarshalNode([]byte(tree))
	if err != nil {
		return nil, fmt.Errorf("failed to decode view %q: %w", view.Name, err)
	}
	view.Tree = node
	return &view, nil
}
