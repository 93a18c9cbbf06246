package ast

import (
	"fmt"
	"strings"
)

// InsertStatement represents an instruction to insert rows into a table.
// Each element of Values is one parenthesized row of expressions, parallel
// to Columns.
type InsertStatement struct {
	Table   string
	Columns []string
	Values  [][]Expression
}

func (*InsertStatement) iStatement() {}

func (*InsertStatement) Mutates() bool { return true }

func (*InsertStatement) ReturnsRows() bool { return false }

func (s *InsertStatement) String() string {
	rows := make([]string, len(s.Values))
	for i, row := range s.Values {
		exprs := make([]string, len(row))
		for j, e := range row {
			exprs[j] = fmt.Sprintf("%s", e)
		}
		rows[i] = fmt.Sprintf("(%s)", strings.Join(exprs, ", "))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s;",
		s.Table, strings.Join(s.Columns, ", "), strings.Join(rows, ", "))
}
