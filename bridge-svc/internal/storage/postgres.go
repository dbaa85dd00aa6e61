package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"menu-bridge/bridge-svc/internal/domain"

	"github.com/lib/pq"
)

var (
	errNoRows        = errors.New("no rows to insert")
	errEmptyPatch    = errors.New("empty update patch")
	errMissingFilter = errors.New("refusing to modify rows without a filter")
)

// PostgresStore answers the bridge's structured queries against the
// restaurant schema.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Select(ctx context.Context, q domain.Query) ([]domain.Row, error) {
	columns := "*"
	if len(q.Columns) > 0 {
		columns = quoteAll(q.Columns)
	}

	var query strings.Builder
	fmt.Fprintf(&query, "SELECT %s FROM %s", columns, pq.QuoteIdentifier(q.Table))

	where, args := whereClause(q.Filters, 1)
	query.WriteString(where)

	if q.Order != nil {
		direction := "DESC"
		if q.Order.Ascending {
			direction = "ASC"
		}
		fmt.Fprintf(&query, " ORDER BY %s %s", pq.QuoteIdentifier(q.Order.Column), direction)
	}

	rows, err := s.DB.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *PostgresStore) Insert(ctx context.Context, table string, rows []domain.Row) ([]domain.Row, error) {
	if len(rows) == 0 {
		return nil, errNoRows
	}

	columns := unionKeys(rows)
	args := make([]any, 0, len(rows)*len(columns))
	tuples := make([]string, 0, len(rows))
	for _, row := range rows {
		placeholders := make([]string, len(columns))
		for i, c := range columns {
			args = append(args, row[c])
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING *",
		pq.QuoteIdentifier(table), quoteAll(columns), strings.Join(tuples, ", "))

	result, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer result.Close()
	return scanRows(result)
}

func (s *PostgresStore) Update(ctx context.Context, table string, patch domain.Row, filters []domain.Filter) ([]domain.Row, error) {
	if len(patch) == 0 {
		return nil, errEmptyPatch
	}
	if len(filters) == 0 {
		return nil, errMissingFilter
	}

	columns := unionKeys([]domain.Row{patch})
	sets := make([]string, len(columns))
	args := make([]any, 0, len(columns)+len(filters))
	for i, c := range columns {
		args = append(args, patch[c])
		sets[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), len(args))
	}

	where, whereArgs := whereClause(filters, len(args)+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), where)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *PostgresStore) Delete(ctx context.Context, table string, filters []domain.Filter) error {
	if len(filters) == 0 {
		return errMissingFilter
	}
	where, args := whereClause(filters, 1)
	_, err := s.DB.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(table)+where, args...)
	return err
}

func whereClause(filters []domain.Filter, firstArg int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		column := pq.QuoteIdentifier(f.Column)
		switch f.Op {
		case domain.OpIn:
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", column, firstArg+i))
			args = append(args, pq.Array(f.Value))
		default:
			conds = append(conds, fmt.Sprintf("%s = $%d", column, firstArg+i))
			args = append(args, f.Value)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRows(rows *sql.Rows) ([]domain.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []domain.Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(domain.Row, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func unionKeys(rows []domain.Row) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func quoteAll(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}
