package ast

import (
	"fmt"
	"strings"
)

// Ordering is the direction of an ORDER BY clause.
type Ordering int

const (
	// OrderUnspecified means the clause carried no ASC or DESC.
	OrderUnspecified Ordering = iota
	OrderAscending
	OrderDescending
)

func (o Ordering) String() string {
	switch o {
	case OrderAscending:
		return "ASC"
	case OrderDescending:
		return "DESC"
	default:
		return ""
	}
}

// OrderBy is an ORDER BY clause: a list of terms with one trailing ASC or
// DESC applying to the whole clause.
type OrderBy struct {
	Terms []Expression
	Order Ordering
}

// SelectStatement represents an instruction to select/filter rows from a table
type SelectStatement struct {
	Columns []Expression
	Table   string
	Where   Expression
	OrderBy *OrderBy
	Limit   *uint32
	Offset  *uint32
}

func (*SelectStatement) iStatement() {}

func (*SelectStatement) Mutates() bool { return false }

func (*SelectStatement) ReturnsRows() bool { return true }

func (s *SelectStatement) String() string {
	var b strings.Builder
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = fmt.Sprintf("%s", c)
	}
	fmt.Fprintf(&b, "SELECT %s", strings.Join(cols, ", "))
	if s.Table != "" {
		fmt.Fprintf(&b, " FROM %s", s.Table)
	}
	if s.Where != nil {
		fmt.Fprintf(&b, " WHERE %s", s.Where)
	}
	if s.OrderBy != nil {
		terms := make([]string, len(s.OrderBy.Terms))
		for i, term := range s.OrderBy.Terms {
			terms[i] = fmt.Sprintf("%s", term)
		}
		fmt.Fprintf(&b, " ORDER BY %s", strings.Join(terms, ", "))
		if s.OrderBy.Order != OrderUnspecified {
			fmt.Fprintf(&b, " %s", s.OrderBy.Order)
		}
	}
	if s.Limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *s.Limit)
	}
	if s.Offset != nil {
		fmt.Fprintf(&b, " OFFSET %d", *s.Offset)
	}
	b.WriteString(";")
	return b.String()
}
