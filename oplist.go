package finfo

import (
	"strings"
)

// Oplist syntax.
const (
	// InfoDelimiter separates top-level operation tokens.
	InfoDelimiter = ","
	// SubDelimiter separates the tokens of an ls sub-oplist.
	SubDelimiter = "+"
	// RecursiveToken is shorthand for ls applying its own table to subdirectories.
	RecursiveToken = "recursive"
)

// ParseInfo parses a top-level oplist such as "stat,digest,ls:lstat+recursive".
func ParseInfo(spec string) (*Table, error) {
	t, _, err := Parse(spec, InfoDelimiter, true)
	return t, err
}

// Parse builds a fresh activation table from spec. Tokens are separated by
// any character of delim; empty tokens are ignored. A token may carry
// sub-operations after a colon, which only ls accepts, and only when
// allowSuboptions is set. Sub-operations are parsed with SubDelimiter and
// may not nest further.
//
// The token "recursive" enables ls and reports recursion: the returned
// table's ls then re-applies the table itself to subdirectories, taking
// precedence over any ls sub-operations given at the same level.
func Parse(spec, delim string, allowSuboptions bool) (*Table, bool, error) {
	t := &Table{}
	recursive := false

	tokens := strings.FieldsFunc(spec, func(r rune) bool {
		return strings.ContainsRune(delim, r)
	})
	for _, token := range tokens {
		if token == RecursiveToken {
			recursive = true
			token = OpLs.String()
		}

		name, subspec, hasSub := strings.Cut(token, ":")

		op, ok := LookupOp(name)
		if !ok {
			return nil, false, &OplistError{Token: name, Reason: "unknown operation"}
		}
		t.enabled[op] = true

		if hasSub && !allowSuboptions {
			return nil, false, &OplistError{Token: token, Reason: "sub-options cannot have sub-options"}
		}

		if op != OpLs {
			if hasSub {
				return nil, false, &OplistError{Token: name, Reason: "operation does not accept options"}
			}
			continue
		}

		if !hasSub {
			t.list = listDefault
			t.child = nil
			continue
		}

		child, _, err := Parse(subspec, SubDelimiter, false)
		if err != nil {
			return nil, false, err
		}
		t.list = listChild
		t.child = child
	}

	if recursive {
		t.list = listSelf
		t.child = nil
	}

	return t, recursive, nil
}
