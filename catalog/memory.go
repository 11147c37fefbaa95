package catalog

import (
	"strings"

	"github.com/arcdb/sqlplan/sql"
)

// MemoryCatalog is a map-backed Catalog test double, grounded on the
// teacher's memory.Database (memory/database.go): a plain map plus a
// case-insensitive lookup helper, with no persistence or concurrency
// control of its own.
type MemoryCatalog struct {
	relations map[string]sql.Node
	functions map[string]FunctionInfo
}

var _ Catalog = (*MemoryCatalog)(nil)

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		relations: map[string]sql.Node{},
		functions: map[string]FunctionInfo{},
	}
}

// AddRelation registers a resolved relation node under name.
func (c *MemoryCatalog) AddRelation(name string, relation sql.Node) {
	c.relations[name] = relation
}

// AddFunction registers a function builder under its own Name().
func (c *MemoryCatalog) AddFunction(fn FunctionInfo) {
	c.functions[fn.Name()] = fn
}

func (c *MemoryCatalog) LookupRelation(name string, sensitivity sql.CaseSensitivity) (sql.Node, error) {
	if n, ok := lookup(c.relations, name, sensitivity); ok {
		return n, nil
	}
	return nil, sql.ErrTableNotFound.New(name)
}

func (c *MemoryCatalog) LookupFunction(name string, sensitivity sql.CaseSensitivity) (FunctionInfo, error) {
	if f, ok := lookup(c.functions, name, sensitivity); ok {
		return f, nil
	}
	return nil, sql.ErrFunctionNotFound.New(name)
}

func lookup[V any](m map[string]V, name string, sensitivity sql.CaseSensitivity) (V, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	if sensitivity == sql.CaseSensitive {
		var zero V
		return zero, false
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
