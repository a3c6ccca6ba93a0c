package platforms

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB es el subconjunto de pgxpool.Pool que usa el repositorio.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a la tabla platforms.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de plataformas.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// List devuelve todas las plataformas ordenadas por id.
func (repository *Repository) List(ctx context.Context) ([]Platform, error) {
	const query = `SELECT id, name, manufacturer, notes FROM platforms ORDER BY id;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	platforms := make([]Platform, 0)
	for rows.Next() {
		var platform Platform
		if err := rows.Scan(&platform.ID, &platform.Name, &platform.Manufacturer, &platform.Notes); err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return platforms, nil
}

// NameIndex arma el índice nombre → id en una sola consulta.
// Las claves van en minúsculas y sin espacios en los extremos.
func (repository *Repository) NameIndex(ctx context.Context) (map[string]int64, error) {
	const query = `SELECT id, name FROM platforms;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		index[IndexKey(name)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return index, nil
}

// Insert crea una plataforma. El índice único sobre lower(name) dispara 23505.
func (repository *Repository) Insert(ctx context.Context, input CreatePlatformInput) (Platform, error) {
	const query = `
		INSERT INTO platforms (name, manufacturer, notes)
		VALUES ($1, $2, $3)
		RETURNING id, name, manufacturer, notes;`

	var platform Platform
	err := repository.database.QueryRow(ctx, query, input.Name, input.Manufacturer, input.Notes).
		Scan(&platform.ID, &platform.Name, &platform.Manufacturer, &platform.Notes)
	if err != nil {
		var postgresError *pgconn.PgError
		if errors.As(err, &postgresError) && postgresError.Code == "23505" {
			return Platform{}, ErrorDuplicateName
		}
		return Platform{}, err
	}
	return platform, nil
}

// IndexKey normaliza un nombre para buscarlo en NameIndex.
func IndexKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
