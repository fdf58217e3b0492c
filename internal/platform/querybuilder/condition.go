package querybuilder

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Condition renders one predicate of a WHERE clause.
type Condition interface {
	appendSQL(w *writer)
}

// writer accumulates SQL text and positional ($n) arguments.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

func (w *writer) write(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

// expand replaces every ? in expr with the next positional argument.
func (w *writer) expand(expr string, exprArgs []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) appendSQL(w *writer) {
	w.write(c.column, " ", c.op, " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition  { return compare{column: column, op: "=", value: value} }
func Neq(column string, value any) Condition { return compare{column: column, op: "<>", value: value} }
func Lt(column string, value any) Condition  { return compare{column: column, op: "<", value: value} }

// ILike matches column case-insensitively against %value%, escaping LIKE wildcards.
func ILike(column, value string) Condition {
	return compare{column: column, op: "ILIKE", value: "%" + escapeLike(value) + "%"}
}

// ArrayContains matches rows whose text[] column holds value.
func ArrayContains(column string, value string) Condition {
	return compare{column: column, op: "@>", value: pq.Array([]string{value})}
}

type inList struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inList{column: column, values: values}
}

// InStrings is In for string slices.
func InStrings(column string, values []string) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return inList{column: column, values: out}
}

func (c inList) appendSQL(w *writer) {
	if len(c.values) == 0 {
		w.write("1=0")
		return
	}
	w.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.write(", ")
		}
		w.bind(v)
	}
	w.write(")")
}

type nullCheck struct {
	column string
	not    bool
}

func IsNull(column string) Condition    { return nullCheck{column: column} }
func IsNotNull(column string) Condition { return nullCheck{column: column, not: true} }

func (c nullCheck) appendSQL(w *writer) {
	if c.not {
		w.write(c.column, " IS NOT NULL")
		return
	}
	w.write(c.column, " IS NULL")
}

type rawExpr struct {
	expr string
	args []any
}

// Expr embeds a raw predicate; each ? is bound to the next argument.
func Expr(expr string, args ...any) Condition {
	return rawExpr{expr: expr, args: args}
}

func (c rawExpr) appendSQL(w *writer) {
	w.expand(c.expr, c.args)
}

type anyOf struct {
	conditions []Condition
}

// Or joins conditions with OR inside parentheses.
func Or(conditions ...Condition) Condition {
	return anyOf{conditions: conditions}
}

func (c anyOf) appendSQL(w *writer) {
	if len(c.conditions) == 0 {
		w.write("1=0")
		return
	}
	w.write("(")
	for i, cond := range c.conditions {
		if i > 0 {
			w.write(" OR ")
		}
		cond.appendSQL(w)
	}
	w.write(")")
}

func appendWhere(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.write(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.write(" AND ")
		}
		c.appendSQL(w)
	}
}

func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}
