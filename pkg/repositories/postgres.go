package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cbodonnell/descent/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	display_name TEXT NOT NULL,
	level INTEGER NOT NULL,
	xp INTEGER NOT NULL,
	color INTEGER NOT NULL,
	created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS buildings (
	id INTEGER PRIMARY KEY,
	type TEXT NOT NULL,
	x DOUBLE PRECISION NOT NULL,
	z DOUBLE PRECISION NOT NULL,
	rotation DOUBLE PRECISION NOT NULL,
	depth INTEGER NOT NULL,
	owner_id TEXT NOT NULL,
	contents JSONB,
	created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS resources (
	id INTEGER PRIMARY KEY,
	type TEXT NOT NULL,
	x DOUBLE PRECISION NOT NULL,
	z DOUBLE PRECISION NOT NULL,
	depth INTEGER NOT NULL,
	hp INTEGER NOT NULL,
	max_hp INTEGER NOT NULL,
	is_harvestable BOOLEAN NOT NULL,
	respawn_at BIGINT NOT NULL,
	drops JSONB NOT NULL
);
`

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository creates a new PostgresRepository.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) GetUser(ctx context.Context, username string) (*models.User, error) {
	q := `
	SELECT username, password_hash, display_name, level, xp, color, created_at
	FROM users WHERE username = $1;
	`
	user := &models.User{}
	err := r.conn.QueryRow(ctx, q, username).Scan(
		&user.Username, &user.PasswordHash, &user.DisplayName,
		&user.Level, &user.Xp, &user.Color, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	q := `
	INSERT INTO users (username, password_hash, display_name, level, xp, color, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (username) DO NOTHING;
	`
	tag, err := r.conn.Exec(ctx, q, user.Username, user.PasswordHash,
		user.DisplayName, user.Level, user.Xp, user.Color, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrAlreadyExists{}
	}

	return nil
}

func (r *PostgresRepository) SaveUser(ctx context.Context, user *models.User) error {
	q := `
	UPDATE users SET password_hash = $2, display_name = $3, level = $4, xp = $5, color = $6
	WHERE username = $1;
	`
	tag, err := r.conn.Exec(ctx, q, user.Username, user.PasswordHash,
		user.DisplayName, user.Level, user.Xp, user.Color)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{}
	}

	return nil
}

func (r *PostgresRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM users;").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %v", err)
	}
	return count, nil
}

func (r *PostgresRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	q := `
	SELECT id, type, x, z, rotation, depth, owner_id, contents, created_at FROM buildings;
	`
	rows, err := r.conn.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %v", err)
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		var contents []byte
		if err := rows.Scan(&b.ID, &b.Type, &b.X, &b.Z, &b.Rotation,
			&b.Depth, &b.OwnerID, &contents, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan building: %v", err)
		}
		if contents != nil {
			if err := json.Unmarshal(contents, &b.Contents); err != nil {
				return nil, fmt.Errorf("failed to parse building contents: %v", err)
			}
		}
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

func (r *PostgresRepository) SaveBuildings(ctx context.Context, buildings []models.Building) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM buildings;"); err != nil {
		return fmt.Errorf("failed to clear buildings: %v", err)
	}

	q := `
	INSERT INTO buildings (id, type, x, z, rotation, depth, owner_id, contents, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, b := range buildings {
		var contents []byte
		if b.Contents != nil {
			contents, err = json.Marshal(b.Contents)
			if err != nil {
				return fmt.Errorf("failed to marshal building contents: %v", err)
			}
		}
		if _, err := tx.Exec(ctx, q, b.ID, b.Type, b.X, b.Z, b.Rotation,
			b.Depth, b.OwnerID, contents, b.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert building: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListResources(ctx context.Context) ([]models.Resource, error) {
	q := `
	SELECT id, type, x, z, depth, hp, max_hp, is_harvestable, respawn_at, drops FROM resources;
	`
	rows, err := r.conn.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %v", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var res models.Resource
		var drops []byte
		if err := rows.Scan(&res.ID, &res.Type, &res.X, &res.Z, &res.Depth,
			&res.Hp, &res.MaxHp, &res.IsHarvestable, &res.RespawnAt, &drops); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %v", err)
		}
		if err := json.Unmarshal(drops, &res.Drops); err != nil {
			return nil, fmt.Errorf("failed to parse resource drops: %v", err)
		}
		resources = append(resources, res)
	}

	return resources, rows.Err()
}

func (r *PostgresRepository) SaveResources(ctx context.Context, resources []models.Resource) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM resources;"); err != nil {
		return fmt.Errorf("failed to clear resources: %v", err)
	}

	q := `
	INSERT INTO resources (id, type, x, z, depth, hp, max_hp, is_harvestable, respawn_at, drops)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, res := range resources {
		drops, err := json.Marshal(res.Drops)
		if err != nil {
			return fmt.Errorf("failed to marshal resource drops: %v", err)
		}
		if _, err := tx.Exec(ctx, q, res.ID, res.Type, res.X, res.Z, res.Depth,
			res.Hp, res.MaxHp, res.IsHarvestable, res.RespawnAt, drops); err != nil {
			return fmt.Errorf("failed to insert resource: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
