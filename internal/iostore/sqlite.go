package iostore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/placenames/pndb/pkg/store"
	"github.com/twpayne/go-geom"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqliteStore implements store.Store over a local SQLite file for
// offline imports. The schema is created on open.
type sqliteStore struct {
	db *sql.DB
	sf singleflight.Group
}

// sqliteDDL mirrors pkg/schema for the SQLite backend. SQLite has no
// uuid or jsonb types; identifiers and JSON documents are TEXT.
var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		creator_id TEXT,
		public BOOLEAN,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		collection_id TEXT,
		name TEXT NOT NULL,
		description TEXT,
		creator_id TEXT,
		public BOOLEAN,
		created_at TIMESTAMP,
		UNIQUE (collection_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		folder_id TEXT,
		name TEXT NOT NULL,
		description TEXT,
		creator_id TEXT,
		meta TEXT,
		geo TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_folder ON items (folder_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_name ON items (name)`,
}

// NewSQLite opens (and if needed initializes) a SQLite-backed store
// at the given path.
func NewSQLite(path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenSQLiteError(path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, OpenSQLiteError(path, err)
	}
	for _, ddl := range sqliteDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, OpenSQLiteError(path, err)
		}
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) EnsureUser(
	ctx context.Context,
	login string,
) (*store.User, error) {
	v, err, _ := s.sf.Do("user:"+login, func() (any, error) {
		u := &store.User{Login: login}
		var id string
		err := s.db.QueryRowContext(ctx,
			"SELECT id FROM users WHERE login = ?", login,
		).Scan(&id)
		if err == nil {
			u.ID, err = uuid.Parse(id)
			if err != nil {
				return nil, UserError(login, err)
			}
			return u, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, UserError(login, err)
		}

		u.ID = uuid.New()
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO users (id, login, created_at) VALUES (?, ?, ?)",
			u.ID.String(), login, time.Now(),
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

func (s *sqliteStore) EnsureCollection(
	ctx context.Context,
	name, description string,
	creator *store.User,
) (*store.Collection, error) {
	v, err, _ := s.sf.Do("collection:"+name, func() (any, error) {
		c := &store.Collection{Name: name}
		var id, creatorID string
		err := s.db.QueryRowContext(ctx,
			`SELECT id, description, creator_id
			 FROM collections WHERE name = ?`, name,
		).Scan(&id, &c.Description, &creatorID)
		if err == nil {
			return scanCollection(c, id, creatorID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, CollectionError(name, err)
		}

		c.ID = uuid.New()
		c.Description = description
		c.CreatorID = creator.ID
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO collections
			 (id, name, description, creator_id, public, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID.String(), name, description, creator.ID.String(),
			false, time.Now(),
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

func scanCollection(
	c *store.Collection, id, creatorID string,
) (*store.Collection, error) {
	var err error
	if c.ID, err = uuid.Parse(id); err != nil {
		return nil, CollectionError(c.Name, err)
	}
	if c.CreatorID, err = uuid.Parse(creatorID); err != nil {
		return nil, CollectionError(c.Name, err)
	}
	return c, nil
}

func (s *sqliteStore) EnsureFolder(
	ctx context.Context,
	coll *store.Collection,
	name, description string,
	creator *store.User,
) (*store.Folder, error) {
	key := "folder:" + coll.ID.String() + ":" + name
	v, err, _ := s.sf.Do(key, func() (any, error) {
		f := &store.Folder{CollectionID: coll.ID, Name: name}
		var id, creatorID string
		err := s.db.QueryRowContext(ctx,
			`SELECT id, description, creator_id
			 FROM folders WHERE collection_id = ? AND name = ?`,
			coll.ID.String(), name,
		).Scan(&id, &f.Description, &creatorID)
		if err == nil {
			if f.ID, err = uuid.Parse(id); err != nil {
				return nil, FolderError(name, err)
			}
			if f.CreatorID, err = uuid.Parse(creatorID); err != nil {
				return nil, FolderError(name, err)
			}
			return f, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, FolderError(name, err)
		}

		f.ID = uuid.New()
		f.Description = description
		f.CreatorID = creator.ID
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO folders
			 (id, collection_id, name, description, creator_id,
			  public, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID.String(), coll.ID.String(), name, description,
			creator.ID.String(), false, time.Now(),
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

func (s *sqliteStore) CreateItem(
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
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items
		 (id, folder_id, name, description, creator_id,
		  created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(), folder.ID.String(), name, description,
		creator.ID.String(), now, now,
	)
	if err != nil {
		return nil, ItemError(name, err)
	}
	return item, nil
}

func (s *sqliteStore) SetItemMetadata(
	ctx context.Context,
	item *store.Item,
	meta map[string]any,
) error {
	data, err := encodeMetadata(meta)
	if err != nil {
		return MetadataError(item.Name, err)
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE items SET meta = ?, updated_at = ? WHERE id = ?",
		string(data), time.Now(), item.ID.String(),
	)
	if err != nil {
		return MetadataError(item.Name, err)
	}
	return nil
}

func (s *sqliteStore) SetItemGeometry(
	ctx context.Context,
	item *store.Item,
	point *geom.Point,
) error {
	data, err := encodeGeometry(point)
	if err != nil {
		return GeometryError(item.Name, err)
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE items SET "+store.GeospatialField+
			" = ?, updated_at = ? WHERE id = ?",
		string(data), time.Now(), item.ID.String(),
	)
	if err != nil {
		return GeometryError(item.Name, err)
	}
	return nil
}
