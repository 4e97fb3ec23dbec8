package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

// Querier subconjunto común de *pgxpool.Pool y pgx.Tx usado por los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// where acumula condiciones AND con placeholders numerados. Cada "?" de una condición
// se reemplaza por el mismo $n.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(w.args))))
}

// addMany añade una condición con varios argumentos referenciados como ?1, ?2, ...
func (w *where) addMany(clause string, args ...any) {
	base := len(w.args)
	w.args = append(w.args, args...)
	// de mayor a menor para que ?1 no pise ?10
	for i := len(args); i >= 1; i-- {
		clause = strings.ReplaceAll(clause, "?"+strconv.Itoa(i), "$"+strconv.Itoa(base+i))
	}
	w.clauses = append(w.clauses, clause)
}

// eq añade column = ? si value no está vacío.
func (w *where) eq(column, value string) {
	if value != "" {
		w.add(column+" = ?", value)
	}
}

// in añade column = ANY(?) si la lista no está vacía.
func (w *where) in(column string, values []string) {
	if len(values) > 0 {
		w.add(column+" = ANY(?)", values)
	}
}

// notIn añade column <> ALL(?) si la lista no está vacía.
func (w *where) notIn(column string, values []string) {
	if len(values) > 0 {
		w.add(column+" <> ALL(?)", values)
	}
}

// between restringe column al rango cerrado; extremos cero no filtran.
func (w *where) between(column string, r repository.DateRange) {
	if !r.Start.IsZero() {
		w.add(column+" >= ?", r.Start)
	}
	if !r.End.IsZero() {
		w.add(column+" <= ?", r.End)
	}
}

// sql devuelve " WHERE ..." o "" si no hay condiciones.
func (w *where) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// likePattern escapa los comodines de LIKE y envuelve en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
