package analyzer

import (
	"strings"

	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// resolveAliases implements spec.md §4.4's ResolveAliases: convert each
// AutoAlias(child) whose child is resolved into a real Alias named after
// the SQL rendering of child, stripped of quoting, or an anonymous
// fallback name if that rendering is empty.
func resolveAliases(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		auto, ok := e.(*expression.AutoAlias)
		if !ok {
			return e, transform.SameTree, nil
		}
		child := auto.UnaryChild()
		if !child.Resolved() {
			return e, transform.SameTree, nil
		}
		return expression.NewAlias(autoAliasName(child), child), transform.NewTree, nil
	})
}

// autoAliasName renders child's display name for an implicit alias, per
// spec.md §4.4: quote/back-tick characters stripped, anonymous fallback
// when the rendering is empty.
func autoAliasName(child sql.Expression) string {
	name := strings.Trim(child.String(), "`\"")
	if name == "" {
		return "_col"
	}
	return name
}
