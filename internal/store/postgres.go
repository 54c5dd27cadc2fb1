package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

type postgresStore struct {
	db   *sql.DB
	name string
}

// NewPostgres stores documents as JSONB rows of a single documents table.
// The schema is created by the goose migrations in internal/database.
func NewPostgres(db *sql.DB, name string) Store {
	return &postgresStore{db: db, name: name}
}

func (s *postgresStore) Driver() string { return "postgres" }

func (s *postgresStore) Name() string { return s.name }

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *postgresStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}
	return names, nil
}

func (s *postgresStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	body, err := encodeBody(doc)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	id := NewID()
	query := `
		INSERT INTO documents (id, collection, body)
		VALUES ($1, $2, $3::jsonb)
	`

	if _, err := s.db.ExecContext(ctx, query, id, collection, string(raw)); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	return id, nil
}

func (s *postgresStore) Find(ctx context.Context, collection string, q Query, out any) error {
	where, args, err := postgresWhere(collection, q)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		SELECT body || jsonb_build_object('%s', id)
		FROM documents
		WHERE %s
		ORDER BY seq ASC
	`, idField, where)

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var raws [][]byte
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		raws = append(raws, raw)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s: %w", collection, err)
	}

	return decodeBodies(raws, out)
}

func (s *postgresStore) Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	set, err := encodeBody(fields)
	if err != nil {
		return false, err
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return false, fmt.Errorf("failed to encode update: %w", err)
	}

	query := `
		UPDATE documents
		SET body = body || $3::jsonb
		WHERE collection = $1 AND id = $2
	`

	result, err := s.db.ExecContext(ctx, query, collection, oid.Hex(), string(raw))
	if err != nil {
		return false, fmt.Errorf("failed to update %s: %w", collection, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *postgresStore) Increment(ctx context.Context, collection, id, field string, delta int) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	// A single UPDATE keeps the read-modify-write atomic per row
	query := `
		UPDATE documents
		SET body = jsonb_set(body, ARRAY[$3::text], to_jsonb(COALESCE((body->>$3::text)::numeric, 0) + $4))
		WHERE collection = $1 AND id = $2
	`

	result, err := s.db.ExecContext(ctx, query, collection, oid.Hex(), field, delta)
	if err != nil {
		return false, fmt.Errorf("failed to increment %s.%s: %w", collection, field, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *postgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// postgresWhere builds the WHERE clause and its positional arguments.
// Field names are always bound as parameters, never interpolated.
func postgresWhere(collection string, q Query) (string, []any, error) {
	clauses := []string{"collection = $1"}
	args := []any{collection}

	if len(q.IDs) > 0 {
		oids, err := parseIDs(q.IDs)
		if err != nil {
			return "", nil, err
		}
		hexes := make([]string, len(oids))
		for i, oid := range oids {
			hexes[i] = oid.Hex()
		}
		args = append(args, hexes)
		clauses = append(clauses, fmt.Sprintf("id = ANY($%d::text[])", len(args)))
	}

	for field, value := range q.Equals {
		args = append(args, field, value)
		clauses = append(clauses, fmt.Sprintf("body->>$%d::text = $%d::text", len(args)-1, len(args)))
	}

	if q.Match != nil && q.Match.Term != "" && len(q.Match.Fields) > 0 {
		args = append(args, "%"+escapeLike(q.Match.Term)+"%")
		pattern := len(args)

		var or []string
		for _, field := range q.Match.Fields {
			args = append(args, field)
			or = append(or, fmt.Sprintf("body->>$%d::text ILIKE $%d::text", len(args), pattern))
		}
		clauses = append(clauses, "("+strings.Join(or, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args, nil
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
