// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plan implements the concrete LogicalPlan node kinds from
// spec.md §3: unresolved and resolved relations, Project, Filter, Sort,
// Limit, Join, the set operators, With (CTE), Distinct, and the two
// aggregate-lifecycle nodes UnresolvedAggregate/Aggregate.
//
// Grounded on the teacher's sql/plan package, most directly common.go
// (UnaryNode/BinaryNode/NillaryNode) generalized from sql.Node's RowIter-
// carrying original to this core's Resolved/Output/WithChildren contract.
package plan

import "github.com/arcdb/sqlplan/sql"

// IsUnary reports whether node has exactly one child.
func IsUnary(node sql.Node) bool { return len(node.Children()) == 1 }

// IsBinary reports whether node has exactly two children.
func IsBinary(node sql.Node) bool { return len(node.Children()) == 2 }

// NillaryWithChildren is the common WithChildren implementation for every
// node kind with no plan children (UnresolvedRelation, resolved relations).
func NillaryWithChildren(node sql.Node, children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenCount.New(node, len(children), 0)
	}
	return node, nil
}

// UnaryNode is embedded by every node kind with exactly one plan child.
type UnaryNode struct {
	Child sql.Node
}

func (n UnaryNode) Resolved() bool { return n.Child.Resolved() }

func (n UnaryNode) Children() []sql.Node { return []sql.Node{n.Child} }

// BinaryNode is embedded by every node kind with exactly two plan children.
type BinaryNode struct {
	Left  sql.Node
	Right sql.Node
}

func (n BinaryNode) Resolved() bool { return n.Left.Resolved() && n.Right.Resolved() }

func (n BinaryNode) Children() []sql.Node { return []sql.Node{n.Left, n.Right} }

// expressionsResolved reports whether every expression in exprs is resolved.
func expressionsResolved(exprs ...sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}
