package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id::text AS id, first_name, last_name, username, email, role, status,
	verified, created_at, updated_at`

// UserByID returns one user.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, wrap("userByID query", err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[User])
	if err != nil {
		return nil, wrap("userByID scan", err)
	}
	return &u, nil
}

// UsersByIDs fetches all users in ids with one statement, keyed by id.
// Ids with no matching row are absent from the map.
func (s *Store) UsersByIDs(ctx context.Context, ids []string) (map[string]User, error) {
	out := make(map[string]User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, wrap("usersByIDs query", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[User])
	if err != nil {
		return nil, wrap("usersByIDs scan", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
