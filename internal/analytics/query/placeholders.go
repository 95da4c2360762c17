/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package query

import (
	"strconv"
	"strings"
)

// renumberPlaceholders rewrites every $n placeholder of sql to $(n+offset).
// Text inside single-quoted literals and double-quoted identifiers is copied
// unchanged; doubled quotes inside them are escapes, not terminators.
func renumberPlaceholders(sql string, offset int) string {
	if offset == 0 || !strings.Contains(sql, "$") {
		return sql
	}
	var b strings.Builder
	b.Grow(len(sql) + 8)

	for i := 0; i < len(sql); {
		switch c := sql[i]; c {
		case '\'', '"':
			end := quotedEnd(sql, i)
			b.WriteString(sql[i:end])
			i = end
		case '$':
			j := i + 1
			for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
				j++
			}
			if j == i+1 {
				b.WriteByte(c)
				i++
				continue
			}
			n, _ := strconv.Atoi(sql[i+1 : j])
			b.WriteString("$" + strconv.Itoa(n+offset))
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// quotedEnd returns the index just past the quoted section opening at start.
// An unterminated section runs to the end of sql.
func quotedEnd(sql string, start int) int {
	quote := sql[start]
	for i := start + 1; i < len(sql); i++ {
		if sql[i] != quote {
			continue
		}
		if i+1 < len(sql) && sql[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(sql)
}

// shiftPlaceholders returns q with the placeholders of every expression
// renumbered by offset.
func (q RenderableSQLQuery) shiftPlaceholders(offset int) RenderableSQLQuery {
	if offset == 0 {
		return q
	}
	shifted := RenderableSQLQuery{
		selectFields: make([]Field, len(q.selectFields)),
		orderClauses: make([]OrderClause, len(q.orderClauses)),
	}
	for i, f := range q.selectFields {
		f.expression = Raw(renumberPlaceholders(f.expression.Render(), offset))
		shifted.selectFields[i] = f
	}
	for i, o := range q.orderClauses {
		o.expression = Raw(renumberPlaceholders(o.expression.Render(), offset))
		shifted.orderClauses[i] = o
	}
	return shifted
}
