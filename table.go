package finfo

import (
	"strings"
)

// listMode selects the table the ls operation applies to directory entries.
type listMode uint8

const (
	// listDefault applies the registry defaults.
	listDefault listMode = iota
	// listChild applies a distinct child table.
	listChild
	// listSelf applies the same table again, recursing without re-parsing.
	listSelf
)

// Table is an activation table: which registry operations run, and what the
// ls operation applies to directory entries. Tables are built by Parse and
// never modified afterwards, so one table may be shared by any number of
// nested listings.
type Table struct {
	enabled [numOps]bool
	list    listMode
	child   *Table
}

var defaultTable = func() *Table {
	t := &Table{}
	for i, spec := range registry {
		t.enabled[i] = spec.enabled
	}
	return t
}()

// DefaultTable returns the table of default-enabled operations.
func DefaultTable() *Table {
	return defaultTable
}

// Enabled reports whether op runs under this table.
func (t *Table) Enabled(op OpKind) bool {
	return op >= 0 && op < numOps && t.enabled[op]
}

// EnabledOps returns the enabled operations in registry order.
func (t *Table) EnabledOps() []OpKind {
	ops := make([]OpKind, 0, numOps)
	for i, on := range t.enabled {
		if on {
			ops = append(ops, OpKind(i))
		}
	}
	return ops
}

// Children returns the table ls applies to the entries of a directory.
func (t *Table) Children() *Table {
	switch t.list {
	case listSelf:
		return t
	case listChild:
		return t.child
	}
	return defaultTable
}

// Recursive reports whether ls re-applies this very table to subdirectories.
func (t *Table) Recursive() bool {
	return t.list == listSelf
}

// String returns the table in oplist syntax. Parsing the result with
// ParseInfo yields an equivalent table.
func (t *Table) String() string {
	return t.format(",", "+")
}

func (t *Table) format(delim, subdelim string) string {
	var tokens []string
	for _, op := range t.EnabledOps() {
		if op != OpLs {
			tokens = append(tokens, op.String())
			continue
		}
		switch t.list {
		case listSelf:
			tokens = append(tokens, "recursive")
		case listChild:
			tokens = append(tokens, op.String()+":"+t.child.format(subdelim, ""))
		default:
			tokens = append(tokens, op.String())
		}
	}
	return strings.Join(tokens, delim)
}
