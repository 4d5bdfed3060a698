package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/FarukBas12/servistakip-sub000/internal/project"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (name, customer, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, p.Name, p.Customer).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT id, name, customer, created_at FROM projects WHERE id = $1`

	var p project.Project

	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Customer, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, project.ErrNotFound
		}

		return nil, fmt.Errorf("getting project: %w", err)
	}

	return &p, nil
}

func (s *Store) List(ctx context.Context) ([]*project.Project, error) {
	query := `SELECT id, name, customer, created_at FROM projects ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project

	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Customer, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, &p)
	}

	return projects, nil
}
