package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/descent/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	display_name TEXT NOT NULL,
	level INTEGER NOT NULL,
	xp INTEGER NOT NULL,
	color INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS buildings (
	id INTEGER PRIMARY KEY,
	type TEXT NOT NULL,
	x REAL NOT NULL,
	z REAL NOT NULL,
	rotation REAL NOT NULL,
	depth INTEGER NOT NULL,
	owner_id TEXT NOT NULL,
	contents TEXT,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS resources (
	id INTEGER PRIMARY KEY,
	type TEXT NOT NULL,
	x REAL NOT NULL,
	z REAL NOT NULL,
	depth INTEGER NOT NULL,
	hp INTEGER NOT NULL,
	max_hp INTEGER NOT NULL,
	is_harvestable INTEGER NOT NULL,
	respawn_at INTEGER NOT NULL,
	drops TEXT NOT NULL
);
`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) GetUser(ctx context.Context, username string) (*models.User, error) {
	q := `
	SELECT username, password_hash, display_name, level, xp, color, created_at
	FROM users WHERE username = ?;
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, q, username).Scan(
		&user.Username, &user.PasswordHash, &user.DisplayName,
		&user.Level, &user.Xp, &user.Color, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}

	return user, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := r.GetUser(ctx, user.Username); err == nil {
		return &ErrAlreadyExists{}
	} else if !IsNotFound(err) {
		return err
	}

	q := `
	INSERT INTO users (username, password_hash, display_name, level, xp, color, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, user.Username, user.PasswordHash,
		user.DisplayName, user.Level, user.Xp, user.Color, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) SaveUser(ctx context.Context, user *models.User) error {
	q := `
	UPDATE users SET password_hash = ?, display_name = ?, level = ?, xp = ?, color = ?
	WHERE username = ?;
	`
	result, err := r.db.ExecContext(ctx, q, user.PasswordHash, user.DisplayName,
		user.Level, user.Xp, user.Color, user.Username)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if affected == 0 {
		return &ErrNotFound{}
	}

	return nil
}

func (r *SQLiteRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users;").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %v", err)
	}
	return count, nil
}

func (r *SQLiteRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	q := `
	SELECT id, type, x, z, rotation, depth, owner_id, contents, created_at FROM buildings;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %v", err)
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		var contents sql.NullString
		if err := rows.Scan(&b.ID, &b.Type, &b.X, &b.Z, &b.Rotation,
			&b.Depth, &b.OwnerID, &contents, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan building: %v", err)
		}
		if contents.Valid {
			if err := json.Unmarshal([]byte(contents.String), &b.Contents); err != nil {
				return nil, fmt.Errorf("failed to parse building contents: %v", err)
			}
		}
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

func (r *SQLiteRepository) SaveBuildings(ctx context.Context, buildings []models.Building) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM buildings;"); err != nil {
		return fmt.Errorf("failed to clear buildings: %v", err)
	}

	q := `
	INSERT INTO buildings (id, type, x, z, rotation, depth, owner_id, contents, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, b := range buildings {
		var contents interface{}
		if b.Contents != nil {
			encoded, err := json.Marshal(b.Contents)
			if err != nil {
				return fmt.Errorf("failed to marshal building contents: %v", err)
			}
			contents = string(encoded)
		}
		if _, err := tx.ExecContext(ctx, q, b.ID, b.Type, b.X, b.Z, b.Rotation,
			b.Depth, b.OwnerID, contents, b.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert building: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListResources(ctx context.Context) ([]models.Resource, error) {
	q := `
	SELECT id, type, x, z, depth, hp, max_hp, is_harvestable, respawn_at, drops FROM resources;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %v", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var res models.Resource
		var drops string
		if err := rows.Scan(&res.ID, &res.Type, &res.X, &res.Z, &res.Depth,
			&res.Hp, &res.MaxHp, &res.IsHarvestable, &res.RespawnAt, &drops); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %v", err)
		}
		if err := json.Unmarshal([]byte(drops), &res.Drops); err != nil {
			return nil, fmt.Errorf("failed to parse resource drops: %v", err)
		}
		resources = append(resources, res)
	}

	return resources, rows.Err()
}

func (r *SQLiteRepository) SaveResources(ctx context.Context, resources []models.Resource) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM resources;"); err != nil {
		return fmt.Errorf("failed to clear resources: %v", err)
	}

	q := `
	INSERT INTO resources (id, type, x, z, depth, hp, max_hp, is_harvestable, respawn_at, drops)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, res := range resources {
		drops, err := json.Marshal(res.Drops)
		if err != nil {
			return fmt.Errorf("failed to marshal resource drops: %v", err)
		}
		if _, err := tx.ExecContext(ctx, q, res.ID, res.Type, res.X, res.Z, res.Depth,
			res.Hp, res.MaxHp, res.IsHarvestable, res.RespawnAt, string(drops)); err != nil {
			return fmt.Errorf("failed to insert resource: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
