package relationship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"reposit/internal/core"
)

// SQLStore persists relationships in postgres or a local sqlite file,
// behind the same SQL. Reads go through a small LRU so hot relationships
// skip the database.
type SQLStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error

	readCache *lru.Cache[string, core.Relationship]
}

// NewPostgres opens a postgres-backed store via the pgx stdlib driver.
func NewPostgres(dsn string) (*SQLStore, error) {
	return newSQLStore("pgx", strings.TrimSpace(dsn))
}

// NewSQLite opens a sqlite-backed store at the given path.
func NewSQLite(path string) (*SQLStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	return newSQLStore("sqlite", path)
}

func newSQLStore(driver, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, core.Relationship](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db, readCache: cache}, nil
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS relationships (
				id          TEXT PRIMARY KEY,
				left_item   TEXT NOT NULL,
				right_item  TEXT NOT NULL,
				left_place  INTEGER NOT NULL DEFAULT 0,
				right_place INTEGER NOT NULL DEFAULT 0,
				type_id     TEXT NOT NULL DEFAULT ''
			)`)
	})
	return s.schemaErr
}

func (s *SQLStore) Get(ctx context.Context, id string) (core.Relationship, error) {
	if s == nil || s.db == nil {
		return core.Relationship{}, fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return core.Relationship{}, fmt.Errorf("relationship id is required")
	}
	if rel, ok := s.readCache.Get(key); ok {
		return rel, nil
	}
	if err := s.ensureSchema(ctx); err != nil {
		return core.Relationship{}, fmt.Errorf("ensure schema: %w", err)
	}

	var rel core.Relationship
	err := s.db.QueryRowContext(ctx, `
		SELECT id, left_item, right_item, left_place, right_place, type_id
		FROM relationships WHERE id = $1`, key).
		Scan(&rel.ID, &rel.LeftItemLink, &rel.RightItemLink, &rel.LeftPlace, &rel.RightPlace, &rel.TypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Relationship{}, ErrNotFound
	}
	if err != nil {
		return core.Relationship{}, err
	}
	s.readCache.Add(key, rel)
	return rel, nil
}

func (s *SQLStore) Put(ctx context.Context, rel core.Relationship) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(rel.ID) == "" {
		return fmt.Errorf("relationship id is required")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relationships (id, left_item, right_item, left_place, right_place, type_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			left_item = EXCLUDED.left_item,
			right_item = EXCLUDED.right_item,
			left_place = EXCLUDED.left_place,
			right_place = EXCLUDED.right_place,
			type_id = EXCLUDED.type_id`,
		rel.ID, rel.LeftItemLink, rel.RightItemLink, rel.LeftPlace, rel.RightPlace, rel.TypeID)
	if err != nil {
		return err
	}
	s.readCache.Add(rel.ID, rel)
	return nil
}

func (s *SQLStore) SetPlace(ctx context.Context, id string, side core.Side, place int) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return fmt.Errorf("relationship id is required")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	column := "right_place"
	if side == core.SideLeft {
		column = "left_place"
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE relationships SET %s = $1 WHERE id = $2`, column),
		place, key)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.readCache.Remove(key)
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return fmt.Errorf("relationship id is required")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = $1`, key)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.readCache.Remove(key)
	return nil
}

func (s *SQLStore) ListByItem(ctx context.Context, itemLink string) ([]core.Relationship, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store is nil")
	}
	itemLink = strings.TrimSpace(itemLink)
	if itemLink == "" {
		return nil, fmt.Errorf("item link is required")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, left_item, right_item, left_place, right_place, type_id
		FROM relationships
		WHERE left_item = $1 OR right_item = $1
		ORDER BY id`, itemLink)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rels := make([]core.Relationship, 0, 8)
	for rows.Next() {
		var rel core.Relationship
		if err := rows.Scan(&rel.ID, &rel.LeftItemLink, &rel.RightItemLink, &rel.LeftPlace, &rel.RightPlace, &rel.TypeID); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}
