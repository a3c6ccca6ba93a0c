package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB es el subconjunto de pgxpool.Pool que usa el repositorio.
// Permite testear con fakes sin levantar Postgres.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository accede a la tabla items.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de items.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// Columnas que devuelve cualquier lectura; el orden lo respeta scanItem.
// Los importes salen como texto para no pasar por float.
const selectColumns = `
	i.id, i.title, i.platform_id, p.name, i.region, i.condition, i.kind,
	i.has_box, i.has_manual, i.purchase_price::text, i.purchase_date,
	i.estimated_value::text, i.notes, i.publisher, i.developer, i.genre,
	i.release_year, i.barcode, i.created_at, i.updated_at`

const insertItemSQL = `
	INSERT INTO items (
		title, platform_id, region, condition, kind, has_box, has_manual,
		purchase_price, purchase_date, estimated_value, notes,
		publisher, developer, genre, release_year, barcode
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10::numeric, $11, $12, $13, $14, $15, $16)`

var sortClauses = map[string]string{
	"title_asc":    "i.title ASC, i.id ASC",
	"title_desc":   "i.title DESC, i.id ASC",
	"value_asc":    "COALESCE(i.estimated_value, 0) ASC, i.title ASC",
	"value_desc":   "COALESCE(i.estimated_value, 0) DESC, i.title ASC",
	"created_asc":  "i.created_at ASC, i.id ASC",
	"created_desc": "i.created_at DESC, i.id ASC",
}

// DefaultSort es el orden cuando el cliente no pide otro.
const DefaultSort = "title_asc"

// ValidSort indica si el criterio de orden es conocido.
func ValidSort(sort string) bool {
	_, ok := sortClauses[sort]
	return ok
}

func insertArgs(input CreateItemInput) []any {
	return []any{
		input.Title, input.PlatformID, input.Region, input.Condition.String(), input.Kind.String(),
		input.HasBox, input.HasManual, input.PurchasePrice, input.PurchaseDate, input.EstimatedValue,
		input.Notes, input.Publisher, input.Developer, input.Genre, input.ReleaseYear, input.Barcode,
	}
}

// Insert crea un item y devuelve el registro persistido junto al nombre de la plataforma.
func (repository *Repository) Insert(ctx context.Context, input CreateItemInput) (Item, error) {
	query := `
		WITH i AS (` + insertItemSQL + `
			RETURNING *
		)
		SELECT ` + selectColumns + `
		FROM i JOIN platforms p ON p.id = i.platform_id;`

	item, err := scanItem(repository.database.QueryRow(ctx, query, insertArgs(input)...))
	if err != nil {
		return Item{}, mapWriteError(err)
	}
	return item, nil
}

// InsertItems persiste todos los items en una sola transacción.
// Si cualquier fila falla no queda ninguna guardada.
func (repository *Repository) InsertItems(ctx context.Context, inputs []CreateItemInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	tx, err := repository.database.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	// No-op si ya se hizo commit.
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, input := range inputs {
		batch.Queue(insertItemSQL, insertArgs(input)...)
	}

	results := tx.SendBatch(ctx, batch)
	for index := range inputs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("insert item %d of %d: %w", index+1, len(inputs), mapWriteError(err))
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(inputs), nil
}

// buildWhere arma el WHERE de List/Count. firstArg es el número del primer placeholder.
func buildWhere(filter ListFilter, firstArg int) (string, []any) {
	var conditions []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, firstArg+len(args)-1))
	}

	if filter.Query != "" {
		add("(i.title ILIKE '%%' || $%[1]d || '%%' OR i.notes ILIKE '%%' || $%[1]d || '%%')", filter.Query)
	}
	if filter.Platform != "" {
		add("lower(p.name) = lower($%d)", filter.Platform)
	}
	if filter.Kind != "" {
		add("i.kind = $%d", filter.Kind)
	}
	if filter.Region != "" {
		add("i.region = $%d", filter.Region)
	}
	if filter.Genre != "" {
		add("i.genre = $%d", filter.Genre)
	}
	if filter.IsCIB != nil {
		add("(i.has_box AND i.has_manual) = $%d", *filter.IsCIB)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List devuelve una página de items aplicando filtros y orden.
func (repository *Repository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Item, error) {
	orderBy, ok := sortClauses[filter.Sort]
	if !ok {
		orderBy = sortClauses[DefaultSort]
	}

	where, whereArgs := buildWhere(filter, 3)
	query := `SELECT ` + selectColumns + `
		FROM items i JOIN platforms p ON p.id = i.platform_id` + where + `
		ORDER BY ` + orderBy + `
		LIMIT $1 OFFSET $2;`

	args := append([]any{limit, offset}, whereArgs...)
	return repository.queryItems(ctx, query, args...)
}

// Count devuelve el total de items que cumplen los filtros.
func (repository *Repository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter, 1)
	query := `SELECT COUNT(*) FROM items i JOIN platforms p ON p.id = i.platform_id` + where + `;`

	var total int
	if err := repository.database.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// All devuelve todos los items para export, en orden de alta.
func (repository *Repository) All(ctx context.Context) ([]Item, error) {
	query := `SELECT ` + selectColumns + `
		FROM items i JOIN platforms p ON p.id = i.platform_id
		ORDER BY i.created_at ASC, i.id ASC;`
	return repository.queryItems(ctx, query)
}

func (repository *Repository) queryItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := repository.database.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID obtiene un item; pgx.ErrNoRows se propaga para que el service lo traduzca.
func (repository *Repository) GetByID(ctx context.Context, id string) (Item, error) {
	query := `SELECT ` + selectColumns + `
		FROM items i JOIN platforms p ON p.id = i.platform_id
		WHERE i.id = $1;`
	return scanItem(repository.database.QueryRow(ctx, query, id))
}

// Update aplica un PATCH parcial y devuelve el registro actualizado.
func (repository *Repository) Update(ctx context.Context, id string, input UpdateItemInput) (Item, error) {
	var sets []string
	args := []any{id}

	set := func(column, cast string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d%s", column, len(args), cast))
	}
	// Los anulables se escriben si vienen con valor o si el cliente mandó null.
	nullable := func(key, column, cast string, value any, isNil bool) {
		if !isNil || input.Present[key] {
			set(column, cast, value)
		}
	}

	if input.Title != nil {
		set("title", "", *input.Title)
	}
	if input.PlatformID != nil {
		set("platform_id", "", *input.PlatformID)
	}
	if input.Region != nil {
		set("region", "", *input.Region)
	}
	if input.Condition != nil {
		set("condition", "", input.Condition.String())
	}
	if input.Kind != nil {
		set("kind", "", input.Kind.String())
	}
	if input.HasBox != nil {
		set("has_box", "", *input.HasBox)
	}
	if input.HasManual != nil {
		set("has_manual", "", *input.HasManual)
	}
	nullable("purchase_price", "purchase_price", "::numeric", input.PurchasePrice, input.PurchasePrice == nil)
	nullable("purchase_date", "purchase_date", "", input.PurchaseDate, input.PurchaseDate == nil)
	nullable("estimated_value", "estimated_value", "::numeric", input.EstimatedValue, input.EstimatedValue == nil)
	nullable("notes", "notes", "", input.Notes, input.Notes == nil)
	nullable("publisher", "publisher", "", input.Publisher, input.Publisher == nil)
	nullable("developer", "developer", "", input.Developer, input.Developer == nil)
	nullable("genre", "genre", "", input.Genre, input.Genre == nil)
	nullable("release_year", "release_year", "", input.ReleaseYear, input.ReleaseYear == nil)
	nullable("barcode", "barcode", "", input.Barcode, input.Barcode == nil)

	if len(sets) == 0 {
		return Item{}, ErrorInvalidInput
	}
	sets = append(sets, "updated_at = now()")

	query := `
		WITH i AS (
			UPDATE items SET ` + strings.Join(sets, ", ") + `
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + selectColumns + `
		FROM i JOIN platforms p ON p.id = i.platform_id;`

	item, err := scanItem(repository.database.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, mapWriteError(err)
	}
	return item, nil
}

// Delete elimina un item por ID.
func (repository *Repository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM items WHERE id = $1 RETURNING id;`

	var deletedID string
	if err := repository.database.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrorNotFound
		}
		return err
	}
	return nil
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	var condition, kind string
	err := row.Scan(
		&item.ID, &item.Title, &item.PlatformID, &item.PlatformName, &item.Region, &condition, &kind,
		&item.HasBox, &item.HasManual, &item.PurchasePrice, &item.PurchaseDate,
		&item.EstimatedValue, &item.Notes, &item.Publisher, &item.Developer, &item.Genre,
		&item.ReleaseYear, &item.Barcode, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return Item{}, err
	}

	// Valores fuera del enum (datos viejos) caen en los defaults.
	if item.Condition, _ = ParseCondition(condition); item.Condition == 0 {
		item.Condition = DefaultCondition
	}
	if item.Kind, _ = ParseKind(kind); item.Kind == 0 {
		item.Kind = DefaultKind
	}
	item.IsCIB = item.CIB()
	return item, nil
}

// mapWriteError traduce violaciones de constraints a errores de dominio.
func mapWriteError(err error) error {
	var postgresError *pgconn.PgError
	if errors.As(err, &postgresError) {
		switch postgresError.Code {
		case "23503": // foreign_key_violation
			return ErrorUnknownPlatform
		case "23514", "22003": // check_violation, numeric_value_out_of_range
			return ErrorInvalidInput
		}
	}
	return err
}
