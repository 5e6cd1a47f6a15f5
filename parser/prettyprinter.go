/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"devt.de/krotik/common/errorutil"
)

/*
Map of pretty printer templates for AST nodes

There is special treatment for NodeIDENTIFIER, NodeSTRING, NodeEXACT,
NodeAPPROX, NodeIN and NodeNOTIN.
*/
var prettyPrinterMap = map[string]*template.Template{
	NodeTRUE:  template.Must(template.New(NodeTRUE).Parse("true")),
	NodeFALSE: template.Must(template.New(NodeFALSE).Parse("false")),

	// Boolean operations

	NodeOR + "_2":  template.Must(template.New(NodeOR).Parse("{{.c1}} OR {{.c2}}")),
	NodeAND + "_2": template.Must(template.New(NodeAND).Parse("{{.c1}} AND {{.c2}}")),
	NodeNOT + "_1": template.Must(template.New(NodeNOT).Parse("NOT {{.c1}}")),

	NodeGEQ + "_2": template.Must(template.New(NodeGEQ).Parse("{{.c1}} >= {{.c2}}")),
	NodeLEQ + "_2": template.Must(template.New(NodeLEQ).Parse("{{.c1}} <= {{.c2}}")),
	NodeNEQ + "_2": template.Must(template.New(NodeNEQ).Parse("{{.c1}} <> {{.c2}}")),
	NodeEQ + "_2":  template.Must(template.New(NodeEQ).Parse("{{.c1}} = {{.c2}}")),
	NodeGT + "_2":  template.Must(template.New(NodeGT).Parse("{{.c1}} > {{.c2}}")),
	NodeLT + "_2":  template.Must(template.New(NodeLT).Parse("{{.c1}} < {{.c2}}")),

	NodeISNULL + "_1":    template.Must(template.New(NodeISNULL).Parse("{{.c1}} IS NULL")),
	NodeISNOTNULL + "_1": template.Must(template.New(NodeISNOTNULL).Parse("{{.c1}} IS NOT NULL")),

	// String operations

	NodeLIKE + "_2": template.Must(template.New(NodeLIKE).Parse("{{.c1}} LIKE {{.c2}}")),
	NodeLIKE + "_3": template.Must(template.New(NodeLIKE).Parse("{{.c1}} LIKE {{.c2}} ESCAPE {{.c3}}")),

	// Range operations

	NodeBETWEEN + "_3": template.Must(template.New(NodeBETWEEN).Parse("{{.c1}} BETWEEN {{.c2}} AND {{.c3}}")),

	// Simple arithmetic expressions

	NodePLUS + "_2":  template.Must(template.New(NodePLUS).Parse("{{.c1}} + {{.c2}}")),
	NodeMINUS + "_1": template.Must(template.New(NodeMINUS).Parse("-{{.c1}}")),
	NodeMINUS + "_2": template.Must(template.New(NodeMINUS).Parse("{{.c1}} - {{.c2}}")),
	NodeTIMES + "_2": template.Must(template.New(NodeTIMES).Parse("{{.c1}} * {{.c2}}")),
	NodeDIV + "_2":   template.Must(template.New(NodeDIV).Parse("{{.c1}} / {{.c2}}")),
}

/*
Map of nodes which may need to be enclosed in brackets to preserve their
precedence.
*/
var bracketPrecedenceMap = map[string]bool{
	NodeOR:        true,
	NodeAND:       true,
	NodeNOT:       true,
	NodeGEQ:       true,
	NodeLEQ:       true,
	NodeNEQ:       true,
	NodeEQ:        true,
	NodeGT:        true,
	NodeLT:        true,
	NodeISNULL:    true,
	NodeISNOTNULL: true,
	NodeIN:        true,
	NodeNOTIN:     true,
	NodeLIKE:      true,
	NodeBETWEEN:   true,
	NodePLUS:      true,
	NodeMINUS:     true,
	NodeTIMES:     true,
	NodeDIV:       true,
}

var plainIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$.]*$`)

/*
quoteIdentifier returns a given identifier in selector syntax. Identifiers
which do not have plain identifier syntax or which would collide with a
reserved word are quoted.
*/
func quoteIdentifier(val string) string {

	if plainIdentifierRegex.MatchString(val) {
		if _, ok := keywordMap[strings.ToLower(val)]; !ok {
			return val
		}
	}

	return fmt.Sprintf("\"%s\"", strings.Replace(val, "\"", "\"\"", -1))
}

/*
quoteString returns a given string literal in selector syntax.
*/
func quoteString(val string) string {
	return fmt.Sprintf("'%s'", strings.Replace(val, "'", "''", -1))
}

/*
needBrackets decides if a given child of a given AST node must be enclosed
in brackets to preserve the meaning of the parse tree.
*/
func needBrackets(ast *ASTNode, child *ASTNode, index int) bool {

	if _, ok := bracketPrecedenceMap[child.Name]; !ok {
		return false
	}

	if ast.binding > child.binding {
		return true
	}

	if ast.binding == child.binding {

		// Nodes on the comparison level never associate

		if ast.binding == bindingComparison {
			return true
		}

		// Right operands of - and / need brackets when the precedence is equal

		if index > 0 && len(ast.Children) > 1 &&
			(ast.Name == NodeMINUS || ast.Name == NodeDIV) {
			return true
		}
	}

	return false
}

/*
PrettyPrint produces a pretty printed selector expression from a given AST.
The produced string parses back to the same tree.
*/
func PrettyPrint(ast *ASTNode) (string, error) {
	var visit func(ast *ASTNode) (string, error)

	visit = func(ast *ASTNode) (string, error) {

		// Handle nodes which are rendered from their token value

		switch ast.Name {
		case NodeIDENTIFIER:
			return quoteIdentifier(ast.Token.Val), nil
		case NodeSTRING:
			return quoteString(ast.Token.Val), nil
		case NodeEXACT, NodeAPPROX:
			return ast.Token.Val, nil
		}

		var children map[string]string
		var tempKey = ast.Name
		var buf bytes.Buffer

		// First pretty print children

		if len(ast.Children) > 0 {
			children = make(map[string]string)
			for i, child := range ast.Children {
				res, err := visit(child)
				if err != nil {
					return "", err
				}

				if needBrackets(ast, child, i) {
					res = fmt.Sprintf("(%v)", res)
				}

				children[fmt.Sprint("c", i+1)] = res
			}

			tempKey += fmt.Sprint("_", len(children))
		}

		// Handle special cases requiring children

		if ast.Name == NodeIN || ast.Name == NodeNOTIN {

			buf.WriteString(children["c1"])
			if ast.Name == NodeNOTIN {
				buf.WriteString(" NOT IN (")
			} else {
				buf.WriteString(" IN (")
			}

			for i := 1; i < len(children); i++ {
				buf.WriteString(children[fmt.Sprint("c", i+1)])
				if i < len(children)-1 {
					buf.WriteString(", ")
				}
			}

			buf.WriteString(")")

			return buf.String(), nil
		}

		// Retrieve the template

		temp, ok := prettyPrinterMap[tempKey]
		if !ok {
			return "", fmt.Errorf("Could not find template for %v (tempkey: %v)",
				ast.Name, tempKey)
		}

		// Use the children as parameters for template

		errorutil.AssertOk(temp.Execute(&buf, children))

		return buf.String(), nil
	}

	return visit(ast)
}
