package words

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema for the optional Postgres-backed theme source.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS words (
	theme TEXT NOT NULL,
	word  TEXT NOT NULL,
	PRIMARY KEY (theme, word)
);`

// LoadThemesFromPostgres reads every theme,word pair from the words table.
// Rooms themselves are never persisted; the database only seeds the Bank at
// boot.
func LoadThemesFromPostgres(ctx context.Context, dsn string) (map[string][]string, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect word store: %w", err)
	}
	defer pool.Close()

	return loadThemes(ctx, pool)
}

func loadThemes(ctx context.Context, pool *pgxpool.Pool) (map[string][]string, error) {
	rows, err := pool.Query(ctx, `SELECT theme, word FROM words ORDER BY theme, word`)
	if err != nil {
		return nil, fmt.Errorf("query word store: %w", err)
	}
	defer rows.Close()

	themes := make(map[string][]string)
	for rows.Next() {
		var theme, word string
		if err := rows.Scan(&theme, &word); err != nil {
			return nil, fmt.Errorf("scan word row: %w", err)
		}
		themes[theme] = append(themes[theme], word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read word rows: %w", err)
	}
	return themes, nil
}
