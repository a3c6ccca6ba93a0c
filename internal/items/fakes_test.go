package items

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeDB struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	beginFn    func(ctx context.Context) (pgx.Tx, error)

	lastQuery      string
	lastArgs       []any
	queryRowCalled bool
	queryCalled    bool
	beginCalled    bool
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.queryRowCalled = true
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryRowFn == nil {
		return &fakeRow{err: errors.New("unexpected QueryRow call")}
	}
	return db.queryRowFn(ctx, sql, args...)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.queryCalled = true
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.queryFn(ctx, sql, args...)
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	db.beginCalled = true
	if db.beginFn == nil {
		return nil, errors.New("unexpected Begin call")
	}
	return db.beginFn(ctx)
}

// fakeTx implementa solo lo que usa InsertItems; el resto del
// interface queda en nil y paniquea si se llama.
type fakeTx struct {
	pgx.Tx

	batch     *pgx.Batch
	results   *fakeBatchResults
	commitErr error

	committed  bool
	rolledBack bool
}

func (tx *fakeTx) SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults {
	tx.batch = batch
	return tx.results
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

type fakeBatchResults struct {
	// execErrs[i] es el error del i-ésimo Exec.
	execErrs []error
	closeErr error

	execCalls int
	closed    bool
}

func (results *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	index := results.execCalls
	results.execCalls++
	if index < len(results.execErrs) && results.execErrs[index] != nil {
		return pgconn.CommandTag{}, results.execErrs[index]
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (results *fakeBatchResults) Query() (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (results *fakeBatchResults) QueryRow() pgx.Row {
	return &fakeRow{err: errors.New("not implemented")}
}

func (results *fakeBatchResults) Close() error {
	results.closed = true
	return results.closeErr
}

type fakeRow struct {
	values []any
	err    error
}

func (row *fakeRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	return assignValues(dest, row.values)
}

type fakeRows struct {
	rows    [][]any
	idx     int
	closed  bool
	err     error
	scanErr error
}

func (rows *fakeRows) Close() {
	rows.closed = true
}

func (rows *fakeRows) Err() error {
	return rows.err
}

func (rows *fakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (rows *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (rows *fakeRows) Next() bool {
	if rows.closed {
		return false
	}
	if rows.idx >= len(rows.rows) {
		rows.closed = true
		return false
	}
	rows.idx++
	return true
}

func (rows *fakeRows) Scan(dest ...any) error {
	if rows.scanErr != nil {
		return rows.scanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.rows[rows.idx-1])
}

func (rows *fakeRows) Values() ([]any, error) {
	return nil, errors.New("not implemented")
}

func (rows *fakeRows) RawValues() [][]byte {
	return nil
}

func (rows *fakeRows) Conn() *pgx.Conn {
	return nil
}

func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		if d == nil {
			continue
		}
		if err := assignValue(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest any, value any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("dest is not pointer")
	}
	if value == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}
	valueValue := reflect.ValueOf(value)
	destElem := destValue.Elem()
	if destElem.Kind() == reflect.Ptr {
		ptrValue := reflect.New(destElem.Type().Elem())
		ptrValue.Elem().Set(valueValue.Convert(destElem.Type().Elem()))
		destElem.Set(ptrValue)
		return nil
	}
	destElem.Set(valueValue.Convert(destElem.Type()))
	return nil
}

// itemRowValues arma la fila tal como la devuelve selectColumns.
func itemRowValues(item Item) []any {
	return []any{
		item.ID, item.Title, item.PlatformID, item.PlatformName, item.Region,
		item.Condition.String(), item.Kind.String(), item.HasBox, item.HasManual,
		deref(item.PurchasePrice), item.PurchaseDate, deref(item.EstimatedValue),
		deref(item.Notes), deref(item.Publisher), deref(item.Developer), deref(item.Genre),
		derefInt(item.ReleaseYear), deref(item.Barcode), item.CreatedAt, item.UpdatedAt,
	}
}

func deref(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func derefInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func normalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func stringPointer(value string) *string {
	return &value
}

func integerPointer(value int) *int {
	return &value
}
