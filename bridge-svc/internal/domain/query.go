package domain

// Row is a remote table row keyed by column name.
type Row map[string]any

type FilterOp string

const (
	OpEq FilterOp = "eq"
	OpIn FilterOp = "in"
)

type Filter struct {
	Column string
	Op     FilterOp
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

func In(column string, values any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

type OrderBy struct {
	Column    string
	Ascending bool
}

// Query describes a select against one remote table. Empty Columns selects
// every column.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   *OrderBy
}

func Asc(column string) *OrderBy {
	return &OrderBy{Column: column, Ascending: true}
}

func Desc(column string) *OrderBy {
	return &OrderBy{Column: column}
}
