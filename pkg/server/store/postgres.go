/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/unikorn-cloud/posts/pkg/server/store/migrations"
)

// Postgres persists records in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing connection, the schema is assumed to exist.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		db: db,
	}
}

// OpenPostgres connects to the database and brings the schema up to date.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()

		return nil, err
	}

	return NewPostgres(db), nil
}

// Migrate applies the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	return nil
}

// uniqueViolation is the SQLSTATE of a duplicate key.
const uniqueViolation = "23505"

func conflict(err error, kind string, id int64) error {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s %d", ErrConflict, kind, id)
	}

	return fmt.Errorf("db error: %w", err)
}

func notFound(err error, kind string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}

	return fmt.Errorf("db error: %w", err)
}

func (p *Postgres) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	defer rows.Close()

	var result []Post

	for rows.Next() {
		var post Post

		if err := rows.Scan(&post.ID, &post.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (p *Postgres) GetPost(ctx context.Context, id int64) (*Post, error) {
	post := &Post{}

	if err := p.db.QueryRowContext(ctx, `SELECT id, name FROM posts WHERE id = $1`, id).Scan(&post.ID, &post.Name); err != nil {
		return nil, notFound(err, "post", id)
	}

	return post, nil
}

func (p *Postgres) CreatePost(ctx context.Context, name string) (*Post, error) {
	post := &Post{
		Name: name,
	}

	if err := p.db.QueryRowContext(ctx, `INSERT INTO posts (name) VALUES ($1) RETURNING id`, name).Scan(&post.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (p *Postgres) UpdatePost(ctx context.Context, id int64, name *string) (*Post, error) {
	post := &Post{}

	query := `UPDATE posts SET name = COALESCE($2, name) WHERE id = $1 RETURNING id, name`

	if err := p.db.QueryRowContext(ctx, query, id, name).Scan(&post.ID, &post.Name); err != nil {
		return nil, notFound(err, "post", id)
	}

	return post, nil
}

func (p *Postgres) DeletePost(ctx context.Context, id int64) error {
	var deleted int64

	if err := p.db.QueryRowContext(ctx, `DELETE FROM posts WHERE id = $1 RETURNING id`, id).Scan(&deleted); err != nil {
		return notFound(err, "post", id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(row scanner) (*Pet, error) {
	pet := &Pet{}

	var photoURLs string

	if err := row.Scan(&pet.ID, &pet.Name, &pet.Status, &photoURLs); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(photoURLs), &pet.PhotoURLs); err != nil {
		return nil, fmt.Errorf("decoding photo urls: %w", err)
	}

	return pet, nil
}

func encodePhotoURLs(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}

	data, err := json.Marshal(urls)
	if err != nil {
		return "", fmt.Errorf("encoding photo urls: %w", err)
	}

	return string(data), nil
}

func (p *Postgres) ListPets(ctx context.Context, statuses []string) ([]Pet, error) {
	query := `SELECT id, name, status, photo_urls FROM pets WHERE cardinality($1::text[]) = 0 OR status = ANY($1) ORDER BY id`

	if statuses == nil {
		statuses = []string{}
	}

	rows, err := p.db.QueryContext(ctx, query, statuses)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	defer rows.Close()

	var result []Pet

	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		result = append(result, *pet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (p *Postgres) GetPet(ctx context.Context, id int64) (*Pet, error) {
	pet, err := scanPet(p.db.QueryRowContext(ctx, `SELECT id, name, status, photo_urls FROM pets WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "pet", id)
	}

	return pet, nil
}

func (p *Postgres) CreatePet(ctx context.Context, pet *Pet) (*Pet, error) {
	photoURLs, err := encodePhotoURLs(pet.PhotoURLs)
	if err != nil {
		return nil, err
	}

	if pet.ID == 0 {
		created, err := scanPet(p.db.QueryRowContext(ctx, `INSERT INTO pets (name, status, photo_urls) VALUES ($1, $2, $3) RETURNING id, name, status, photo_urls`, pet.Name, pet.Status, photoURLs))
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		return created, nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	created, err := scanPet(tx.QueryRowContext(ctx, `INSERT INTO pets (id, name, status, photo_urls) VALUES ($1, $2, $3, $4) RETURNING id, name, status, photo_urls`, pet.ID, pet.Name, pet.Status, photoURLs))
	if err != nil {
		return nil, conflict(err, "pet", pet.ID)
	}

	// Generated IDs must not collide with explicit ones.
	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('pets', 'id'), GREATEST((SELECT MAX(id) FROM pets), 1))`); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (p *Postgres) UpdatePet(ctx context.Context, pet *Pet) (*Pet, error) {
	photoURLs, err := encodePhotoURLs(pet.PhotoURLs)
	if err != nil {
		return nil, err
	}

	query := `UPDATE pets SET name = $2, status = $3, photo_urls = $4 WHERE id = $1 RETURNING id, name, status, photo_urls`

	updated, err := scanPet(p.db.QueryRowContext(ctx, query, pet.ID, pet.Name, pet.Status, photoURLs))
	if err != nil {
		return nil, notFound(err, "pet", pet.ID)
	}

	return updated, nil
}

func (p *Postgres) DeletePet(ctx context.Context, id int64) error {
	var deleted int64

	if err := p.db.QueryRowContext(ctx, `DELETE FROM pets WHERE id = $1 RETURNING id`, id).Scan(&deleted); err != nil {
		return notFound(err, "pet", id)
	}

	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
