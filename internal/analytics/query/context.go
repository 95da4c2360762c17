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
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/common"
)

// Aliases names the SQL aliases used by the subquery templates.
type Aliases struct {
	TrackedEntity      string // outer tracked entity row, e.g. t_1
	Enrollment         string // enrollment derived table
	Event              string // event derived table
	EnrollmentSubquery string // enrollment scope nested under an event filter
}

// DefaultAliases returns t_1, en, ev and "enrollmentSubqueryAlias".
func DefaultAliases() Aliases {
	return Aliases{
		TrackedEntity:      "t_1",
		Enrollment:         "en",
		Event:              "ev",
		EnrollmentSubquery: `"enrollmentSubqueryAlias"`,
	}
}

// AliasesFromConfig maps configured aliases, keeping defaults for empty entries.
func AliasesFromConfig(cfg common.AliasConfig) Aliases {
	a := DefaultAliases()
	if cfg.TrackedEntity != "" {
		a.TrackedEntity = cfg.TrackedEntity
	}
	if cfg.Enrollment != "" {
		a.Enrollment = cfg.Enrollment
	}
	if cfg.Event != "" {
		a.Event = cfg.Event
	}
	if cfg.EnrollmentSubquery != "" {
		a.EnrollmentSubquery = cfg.EnrollmentSubquery
	}
	return a
}

// ContextOption customizes a QueryContext.
type ContextOption func(*QueryContext)

// WithAliases replaces the default aliases.
func WithAliases(a Aliases) ContextOption {
	return func(c *QueryContext) { c.aliases = a }
}

// QueryContext carries the request-scoped state shared by all builders of one
// statement: the tracked entity type, the alias strategy and the bound
// parameters. Bind is safe for concurrent use, but placeholder numbers then
// follow call order; builders running concurrently bind on a Fork each and
// the forks are folded back with Rebase in a fixed order.
type QueryContext struct {
	trackedEntityType model.TrackedEntityType
	aliases           Aliases

	mu     sync.Mutex
	params []any
}

var tableSuffixPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// NewQueryContext rejects tracked entity types whose uid cannot be used as an
// analytics table name suffix.
func NewQueryContext(trackedEntityType model.TrackedEntityType, opts ...ContextOption) (*QueryContext, error) {
	if !tableSuffixPattern.MatchString(common.TableSuffix(trackedEntityType.UID)) {
		return nil, common.NewErrBadRequest(fmt.Sprintf("TEQUERY-CONTEXT-TET Invalid tracked entity type uid: %q", trackedEntityType.UID))
	}
	c := &QueryContext{trackedEntityType: trackedEntityType, aliases: DefaultAliases()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *QueryContext) TrackedEntityType() model.TrackedEntityType { return c.trackedEntityType }

func (c *QueryContext) Aliases() Aliases { return c.aliases }

// Fork returns a context with the same tracked entity type and aliases and
// no bound parameters. Its placeholders start at $1.
func (c *QueryContext) Fork() *QueryContext {
	return &QueryContext{trackedEntityType: c.trackedEntityType, aliases: c.aliases}
}

// Bind registers value and returns its positional placeholder ($1, $2, ...).
func (c *QueryContext) Bind(value any) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = append(c.params, value)
	return "$" + strconv.Itoa(len(c.params))
}

// Params returns the bound values in placeholder order.
func (c *QueryContext) Params() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.params...)
}

// Rebase appends the parameters of fork to c and returns fragment, built on
// fork, with its placeholders shifted past the parameters c already held.
func (c *QueryContext) Rebase(fork *QueryContext, fragment RenderableSQLQuery) RenderableSQLQuery {
	forked := fork.Params()

	c.mu.Lock()
	offset := len(c.params)
	c.params = append(c.params, forked...)
	c.mu.Unlock()

	return fragment.shiftPlaceholders(offset)
}

// MainTable is the tracked entity analytics table.
func (c *QueryContext) MainTable() string {
	return "analytics_te_" + common.TableSuffix(c.trackedEntityType.UID)
}

func (c *QueryContext) EnrollmentTable() string {
	return "analytics_te_enrollment_" + common.TableSuffix(c.trackedEntityType.UID)
}

func (c *QueryContext) EventTable() string {
	return "analytics_te_event_" + common.TableSuffix(c.trackedEntityType.UID)
}
