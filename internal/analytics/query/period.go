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
	"regexp"
	"strconv"
	"time"

	"github.com/dhis2/te-analytics-go/internal/common"
)

// Period is a half-open date range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

var (
	yearPattern    = regexp.MustCompile(`^(\d{4})$`)
	quarterPattern = regexp.MustCompile(`^(\d{4})Q([1-4])$`)
	monthPattern   = regexp.MustCompile(`^(\d{4})(\d{2})$`)
	dayPattern     = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	isoDayPattern  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ParsePeriod parses a period identifier: yyyy, yyyyQn, yyyyMM, yyyyMMdd or yyyy-MM-dd.
func ParsePeriod(id string) (Period, error) {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	day := func(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

	switch {
	case yearPattern.MatchString(id):
		g := yearPattern.FindStringSubmatch(id)
		start := day(atoi(g[1]), 1, 1)
		return Period{Start: start, End: start.AddDate(1, 0, 0)}, nil
	case quarterPattern.MatchString(id):
		g := quarterPattern.FindStringSubmatch(id)
		start := day(atoi(g[1]), (atoi(g[2])-1)*3+1, 1)
		return Period{Start: start, End: start.AddDate(0, 3, 0)}, nil
	case monthPattern.MatchString(id):
		g := monthPattern.FindStringSubmatch(id)
		month := atoi(g[2])
		if month < 1 || month > 12 {
			break
		}
		start := day(atoi(g[1]), month, 1)
		return Period{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case dayPattern.MatchString(id), isoDayPattern.MatchString(id):
		g := dayPattern.FindStringSubmatch(id)
		if g == nil {
			g = isoDayPattern.FindStringSubmatch(id)
		}
		start := day(atoi(g[1]), atoi(g[2]), atoi(g[3]))
		// time.Date normalizes out-of-range days, reject those instead
		if int(start.Month()) != atoi(g[2]) || start.Day() != atoi(g[3]) {
			break
		}
		return Period{Start: start, End: start.AddDate(0, 0, 1)}, nil
	}
	return Period{}, common.NewErrBadRequest("TEQUERY-PERIOD-PARSE Invalid period: " + id)
}

// StartDate formats Start as yyyy-MM-dd.
func (p Period) StartDate() string { return p.Start.Format(time.DateOnly) }

// EndDate formats the exclusive End as yyyy-MM-dd.
func (p Period) EndDate() string { return p.End.Format(time.DateOnly) }
