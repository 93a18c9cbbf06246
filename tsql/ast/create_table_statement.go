package ast

import (
	"fmt"
	"strings"
)

// ColumnType is a column's declared data type.
type ColumnType int

const (
	ColumnTypeInt ColumnType = iota
	ColumnTypeFloat
	ColumnTypeText
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeInt:
		return "INT"
	case ColumnTypeFloat:
		return "FLOAT"
	case ColumnTypeText:
		return "TEXT"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// ColumnDefinition represents a specification for a column in a table
type ColumnDefinition struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	Nullable   bool
}

func (c ColumnDefinition) String() string {
	s := fmt.Sprintf("%s %s", c.Name, c.Type)
	if c.PrimaryKey {
		s += " PRIMARY KEY"
	}
	if c.Nullable {
		s += " NULLABLE"
	}
	return s
}

// CreateTableStatement represents an instruction to create a table
type CreateTableStatement struct {
	TableName string
	Columns   []ColumnDefinition
}

func (*CreateTableStatement) iStatement() {}

func (*CreateTableStatement) Mutates() bool { return true }

func (*CreateTableStatement) ReturnsRows() bool { return false }

func (s *CreateTableStatement) String() string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.String()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", s.TableName, strings.Join(cols, ", "))
}
