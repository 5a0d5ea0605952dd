package finfo

// OpKind identifies an operation in the registry. The set is closed; report
// fields appear in OpKind order.
type OpKind int

const (
	OpStat OpKind = iota
	OpLstat
	OpReadlink
	OpLs
	OpDigest
	OpMime

	numOps
)

type opSpec struct {
	name    string
	enabled bool // default enablement
	summary string
}

var registry = [numOps]opSpec{
	OpStat:     {name: "stat", enabled: true, summary: "metadata, following symbolic links"},
	OpLstat:    {name: "lstat", summary: "metadata of the link itself"},
	OpReadlink: {name: "readlink", summary: "symbolic link target"},
	OpLs:       {name: "ls", summary: "directory listing; accepts sub-operations"},
	OpDigest:   {name: "digest", summary: "hex digest of the content"},
	OpMime:     {name: "mime", summary: "content type sniffed from the leading bytes"},
}

// String returns the operation name used in oplists and reports.
func (k OpKind) String() string {
	if k < 0 || k >= numOps {
		return "unknown"
	}
	return registry[k].name
}

// DefaultEnabled reports whether the operation runs when no oplist is given.
func (k OpKind) DefaultEnabled() bool {
	return k >= 0 && k < numOps && registry[k].enabled
}

// Summary returns a one-line description of the operation.
func (k OpKind) Summary() string {
	if k < 0 || k >= numOps {
		return ""
	}
	return registry[k].summary
}

// Ops returns every registered operation in registry order.
func Ops() []OpKind {
	ops := make([]OpKind, numOps)
	for i := range ops {
		ops[i] = OpKind(i)
	}
	return ops
}

// LookupOp returns the operation registered under name.
func LookupOp(name string) (OpKind, bool) {
	for i, spec := range registry {
		if spec.name == name {
			return OpKind(i), true
		}
	}
	return 0, false
}
