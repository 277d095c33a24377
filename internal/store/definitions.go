// ABOUTME: Block definition records and their key/value meta.
// ABOUTME: Implements the definition store the loader, admin editor and seeder use.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2389/blockyard/internal/blocks"
	"github.com/oklog/ulid/v2"
)

// newID generates a ULID using crypto/rand entropy.
func newID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// DefinitionQuery filters ListDefinitions.
type DefinitionQuery struct {
	PostType string
	Status   blocks.Status // empty means any status
	Search   string        // substring match on title
}

// CreateDefinition inserts a new definition record and returns it.
func (s *Store) CreateDefinition(ctx context.Context, title string, status blocks.Status) (*blocks.Definition, error) {
	now := time.Now().UTC()
	def := &blocks.Definition{
		ID:        newID(),
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO definitions (id, post_type, title, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, def.ID, blocks.PostType, def.Title, string(def.Status), def.CreatedAt, def.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert definition: %w", err)
	}
	return def, nil
}

// GetDefinition loads one definition with its meta.
func (s *Store) GetDefinition(ctx context.Context, id string) (*blocks.Definition, error) {
	defs, err := s.listDefinitions(ctx, "d.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, ErrNotFound
	}
	return &defs[0], nil
}

// UpdateDefinition changes title and status.
func (s *Store) UpdateDefinition(ctx context.Context, id, title string, status blocks.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE definitions SET title = ?, status = ?, updated_at = ? WHERE id = ?
	`, title, string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update definition: %w", err)
	}
	return requireRow(res)
}

// DeleteDefinition removes a definition and, by cascade, its meta.
func (s *Store) DeleteDefinition(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM definitions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete definition: %w", err)
	}
	return requireRow(res)
}

// ListPublished returns the published definitions of postType in insertion order.
func (s *Store) ListPublished(ctx context.Context, postType string) ([]blocks.Definition, error) {
	return s.ListDefinitions(ctx, DefinitionQuery{PostType: postType, Status: blocks.StatusPublish})
}

// ListDefinitions returns definitions matching q in insertion order.
func (s *Store) ListDefinitions(ctx context.Context, q DefinitionQuery) ([]blocks.Definition, error) {
	postType := q.PostType
	if postType == "" {
		postType = blocks.PostType
	}
	where := []string{"d.post_type = ?"}
	args := []any{postType}
	if q.Status != "" {
		where = append(where, "d.status = ?")
		args = append(args, string(q.Status))
	}
	if q.Search != "" {
		where = append(where, `d.title LIKE ? ESCAPE '\'`)
		args = append(args, likeContains(q.Search))
	}
	return s.listDefinitions(ctx, strings.Join(where, " AND "), args...)
}

// CountDefinitions returns the number of definitions per status.
func (s *Store) CountDefinitions(ctx context.Context) (map[blocks.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM definitions WHERE post_type = ? GROUP BY status
	`, blocks.PostType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[blocks.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[blocks.ParseStatus(status)] += n
	}
	return counts, rows.Err()
}

// GetMeta returns the value stored under key. The bool is false when the key
// was never written or holds an empty value.
func (s *Store) GetMeta(ctx context.Context, id string, key blocks.MetaKey) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT meta_value FROM definition_meta WHERE definition_id = ? AND meta_key = ?
	`, id, key.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, value != "", nil
}

// SetMeta writes key for definition id. Concurrent writers to the same key
// resolve by last write wins.
func (s *Store) SetMeta(ctx context.Context, id string, key blocks.MetaKey, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO definition_meta (definition_id, meta_key, meta_value)
		VALUES (?, ?, ?)
		ON CONFLICT(definition_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value
	`, id, key.String(), value)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrNotFound
		}
		return fmt.Errorf("set meta %s: %w", key, err)
	}
	return nil
}

func (s *Store) listDefinitions(ctx context.Context, where string, args ...any) ([]blocks.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.title, d.status, d.created_at, d.updated_at
		FROM definitions d
		WHERE `+where+`
		ORDER BY d.rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}

	var defs []blocks.Definition
	index := make(map[string]int)
	for rows.Next() {
		var def blocks.Definition
		var status string
		if err := rows.Scan(&def.ID, &def.Title, &status, &def.CreatedAt, &def.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		def.Status = blocks.ParseStatus(status)
		index[def.ID] = len(defs)
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(defs) == 0 {
		return defs, nil
	}

	metaRows, err := s.db.QueryContext(ctx, `
		SELECT m.definition_id, m.meta_key, m.meta_value
		FROM definition_meta m
		JOIN definitions d ON d.id = m.definition_id
		WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list definition meta: %w", err)
	}
	defer metaRows.Close()

	for metaRows.Next() {
		var id, name, value string
		if err := metaRows.Scan(&id, &name, &value); err != nil {
			return nil, err
		}
		key, ok := blocks.ParseMetaKey(name)
		if !ok {
			continue
		}
		if i, ok := index[id]; ok {
			defs[i].Meta.Set(key, value)
		}
	}
	return defs, metaRows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
