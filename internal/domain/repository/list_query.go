package repository

// ListQuery parámetros comunes de listado. OrderBy debe ser un campo ya validado
// por el caso de uso (nombre lógico, p. ej. "createdAt"); el adaptador lo traduce a columna.
type ListQuery struct {
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}
