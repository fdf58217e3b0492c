package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

// Page sets LIMIT/OFFSET for a 1-based page.
func (b *SelectBuilder) Page(page, size int) *SelectBuilder {
	if page < 1 {
		page = 1
	}
	b.limit = size
	b.offset = (page - 1) * size
	return b
}

// Count returns a COUNT(*) query with the same table and filters.
func (b *SelectBuilder) Count() *SelectBuilder {
	return &SelectBuilder{
		columns: []string{"COUNT(*)"},
		table:   b.table,
		where:   append([]Condition(nil), b.where...),
	}
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &writer{}
	w.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	appendWhere(w, b.where)
	if len(b.groupBy) > 0 {
		w.write(" GROUP BY ", strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		w.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.write(" OFFSET ", strconv.Itoa(b.offset))
	}

	return w.buf.String(), w.args, nil
}
