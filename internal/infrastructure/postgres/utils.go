package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasSQLState(err, "23505")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p. ej. stock >= 0.
func isCheckViolation(err error) bool {
	return hasSQLState(err, "23514")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return hasSQLState(err, "23503")
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern patrón ILIKE "contiene": % y _ del usuario se buscan literalmente.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// orderClause traduce el campo lógico de ListQuery a columna usando el whitelist dado.
// Campos desconocidos caen en created_at; la dirección por defecto es DESC.
func orderClause(q repository.ListQuery, columns map[string]string, alias string) string {
	col, ok := columns[q.OrderBy]
	if !ok {
		col = "created_at"
	}
	if alias != "" {
		col = alias + "." + col
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	// id como desempate para que la paginación sea estable
	idCol := "id"
	if alias != "" {
		idCol = alias + ".id"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s %s", col, dir, idCol, dir)
}

// limitClause añade LIMIT y/o OFFSET según lo que traiga la consulta.
func limitClause(q repository.ListQuery, args []any) (string, []any) {
	switch {
	case q.Limit > 0:
		args = append(args, q.Limit, q.Offset)
		return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
	case q.Offset > 0:
		args = append(args, q.Offset)
		return fmt.Sprintf(" OFFSET $%d", len(args)), args
	}
	return "", args
}
