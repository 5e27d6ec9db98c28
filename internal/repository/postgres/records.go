package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/service/records"
)

const uniqueViolation = "23505"

// RecordStore implements records.Store against PostgreSQL.
type RecordStore struct{ db *sql.DB }

// NewRecordStore creates a Postgres-backed record store.
func NewRecordStore(db *sql.DB) *RecordStore { return &RecordStore{db: db} }

func (r *RecordStore) Insert(ctx context.Context, kind domain.RecordKind, row map[string]any) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	row = withID(row)
	cols, args := columnsAndArgs(row)

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, quoteAll(cols), placeholders(1, len(cols)))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(fmt.Sprintf("insert %s", kind), err)
	}
	return nil
}

func (r *RecordStore) Upsert(ctx context.Context, kind domain.RecordKind, conflictColumn string, row map[string]any) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	if _, ok := row[conflictColumn]; !ok {
		return fmt.Errorf("upsert %s: row has no %s", kind, conflictColumn)
	}
	row = withID(row)
	cols, args := columnsAndArgs(row)

	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == "id" || c == conflictColumn {
			continue
		}
		q := pq.QuoteIdentifier(c)
		sets = append(sets, q+" = EXCLUDED."+q)
	}
	action := "DO NOTHING"
	if len(sets) > 0 {
		action = "DO UPDATE SET " + strings.Join(sets, ", ")
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s`,
		table, quoteAll(cols), placeholders(1, len(cols)), pq.QuoteIdentifier(conflictColumn), action)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(fmt.Sprintf("upsert %s", kind), err)
	}
	return nil
}

func (r *RecordStore) Update(ctx context.Context, kind domain.RecordKind, match, patch map[string]any) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	if len(match) == 0 || len(patch) == 0 {
		return 0, fmt.Errorf("update %s: empty match or patch", kind)
	}

	setCols, setArgs := columnsAndArgs(patch)
	whereCols, whereArgs := columnsAndArgs(match)

	sets := make([]string, len(setCols))
	for i, c := range setCols {
		sets[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), i+1)
	}
	conds := make([]string, len(whereCols))
	for i, c := range whereCols {
		conds[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), len(setCols)+i+1)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s`, table, strings.Join(sets, ", "), strings.Join(conds, " AND "))
	res, err := r.db.ExecContext(ctx, query, append(setArgs, whereArgs...)...)
	if err != nil {
		return 0, mapError(fmt.Sprintf("update %s", kind), err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *RecordStore) List(ctx context.Context, kind domain.RecordKind, f records.ListFilter) ([]domain.Record, int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}

	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, f.City)
		conds = append(conds, fmt.Sprintf("city = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", kind, err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = total
	}
	query := fmt.Sprintf(`SELECT to_jsonb(t) FROM %s t%s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`,
		table, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", kind, err)
		}
		rec := domain.Record{}
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", kind, err)
	}
	return out, total, nil
}

func tableFor(kind domain.RecordKind) (string, error) {
	t := kind.Table()
	if t == "" {
		return "", records.ErrUnknownKind
	}
	return pq.QuoteIdentifier(t), nil
}

func withID(row map[string]any) map[string]any {
	if _, ok := row["id"]; ok {
		return row
	}
	out := make(map[string]any, len(row)+1)
	for k, v := range row {
		out[k] = v
	}
	out["id"] = uuid.New().String()
	return out
}

// columnsAndArgs returns sorted column names and their driver-ready values.
func columnsAndArgs(row map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = toDriverValue(row[c])
	}
	return cols, args
}

func toDriverValue(v any) any {
	switch t := v.(type) {
	case []string:
		return pq.Array(t)
	case map[string]any:
		return jsonValue{t}
	}
	return v
}

// jsonValue stores a map in a jsonb column.
type jsonValue struct{ v map[string]any }

func (j jsonValue) Value() (driver.Value, error) {
	b, err := json.Marshal(j.v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func quoteAll(cols []string) string {
	q := make([]string, len(cols))
	for i, c := range cols {
		q[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(q, ", ")
}

func placeholders(start, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(p, ", ")
}

func mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return records.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
