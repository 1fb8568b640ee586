// Package iostore implements the store.Store contract over
// PostgreSQL (pgx) and SQLite (modernc). This is an impure I/O
// package; the contract lives in pkg/store.
package iostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placenames/pndb/pkg/store"
	"github.com/twpayne/go-geom"
	"golang.org/x/sync/singleflight"
)

// pgStore implements store.Store using a pgx connection pool.
type pgStore struct {
	pool *pgxpool.Pool

	// ensure-operations for the same name are deduplicated, so the
	// destination lookup stays race-free even if a future caller
	// runs imports concurrently.
	sf singleflight.Group
}

// NewPostgres creates a PostgreSQL-backed store over an existing
// connection pool. The pool stays owned by the caller; Close is a
// no-op here.
func NewPostgres(pool *pgxpool.Pool) store.Store {
	return &pgStore{pool: pool}
}

func (s *pgStore) Close() error {
	return nil
}

func (s *pgStore) EnsureUser(
	ctx context.Context,
	login string,
) (*store.User, error) {
	v, err, _ := s.sf.Do("user:"+login, func() (any, error) {
		u := &store.User{Login: login}
		err := s.pool.QueryRow(ctx,
			"SELECT id FROM users WHERE login = $1", login,
		).Scan(&u.ID)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, UserError(login, err)
		}

		u.ID = uuid.New()
		_, err = s.pool.Exec(ctx,
			`INSERT INTO users (id, login, created_at)
			 VALUES ($1, $2, $3)`,
			u.ID, login, time.Now(),
		)
		if err != nil {
			return nil, UserError(login, err)
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.User), nil
}

func (s *pgStore) EnsureCollection(
	ctx context.Context,
	name, description string,
	creator *store.User,
) (*store.Collection, error) {
	v, err, _ := s.sf.Do("collection:"+name, func() (any, error) {
		c := &store.Collection{Name: name}
		err := s.pool.QueryRow(ctx,
			`SELECT id, description, creator_id
			 FROM collections WHERE name = $1`, name,
		).Scan(&c.ID, &c.Description, &c.CreatorID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, CollectionError(name, err)
		}

		c.ID = uuid.New()
		c.Description = description
		c.CreatorID = creator.ID
		_, err = s.pool.Exec(ctx,
			`INSERT INTO collections
			 (id, name, description, creator_id, public, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, name, description, creator.ID, false, time.Now(),
		)
		if err != nil {
			return nil, CollectionError(name, err)
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Collection), nil
}

func (s *pgStore) EnsureFolder(
	ctx context.Context,
	coll *store.Collection,
	name, description string,
	creator *store.User,
) (*store.Folder, error) {
	key := "folder:" + coll.ID.String() + ":" + name
	v, err, _ := s.sf.Do(key, func() (any, error) {
		f := &store.Folder{CollectionID: coll.ID, Name: name}
		err := s.pool.QueryRow(ctx,
			`SELECT id, description, creator_id
			 FROM folders WHERE collection_id = $1 AND name = $2`,
			coll.ID, name,
		).Scan(&f.ID, &f.Description, &f.CreatorID)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, FolderError(name, err)
		}

		f.ID = uuid.New()
		f.Description = description
		f.CreatorID = creator.ID
		_, err = s.pool.Exec(ctx,
			`INSERT INTO folders
			 (id, collection_id, name, description, creator_id,
			  public, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			f.ID, coll.ID, name, description, creator.ID,
			false, time.Now(),
		)
		if err != nil {
			return nil, FolderError(name, err)
		}
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Folder), nil
}

func (s *pgStore) CreateItem(
	ctx context.Context,
	folder *store.Folder,
	name, description string,
	creator *store.User,
) (*store.Item, error) {
	item := &store.Item{
		ID:          uuid.New(),
		FolderID:    folder.ID,
		Name:        name,
		Description: description,
		CreatorID:   creator.ID,
	}
	now := time.Now()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO items
		 (id, folder_id, name, description, creator_id,
		  created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, folder.ID, name, description, creator.ID, now, now,
	)
	if err != nil {
		return nil, ItemError(name, err)
	}
	return item, nil
}

func (s *pgStore) SetItemMetadata(
	ctx context.Context,
	item *store.Item,
	meta map[string]any,
) error {
	data, err := encodeMetadata(meta)
	if err != nil {
		return MetadataError(item.Name, err)
	}
	_, err = s.pool.Exec(ctx,
		"UPDATE items SET meta = $1, updated_at = $2 WHERE id = $3",
		data, time.Now(), item.ID,
	)
	if err != nil {
		return MetadataError(item.Name, err)
	}
	return nil
}

func (s *pgStore) SetItemGeometry(
	ctx context.Context,
	item *store.Item,
	point *geom.Point,
) error {
	data, err := encodeGeometry(point)
	if err != nil {
		return GeometryError(item.Name, err)
	}
	_, err = s.pool.Exec(ctx,
		"UPDATE items SET "+store.GeospatialField+
			" = $1, updated_at = $2 WHERE id = $3",
		data, time.Now(), item.ID,
	)
	if err != nil {
		return GeometryError(item.Name, err)
	}
	return nil
}
