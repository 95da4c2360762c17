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

package model

import "strings"

// StaticDimension enumerates the fixed columns of the analytics tables that can
// be requested as dimensions next to data elements and attributes.
type StaticDimension int

const (
	StaticNone StaticDimension = iota
	EventDate
	ScheduledDate
	OrgUnit
	EventStatus
	EnrollmentStatus
	EnrollmentDate
	IncidentDate
	Created
	LastUpdated
)

type staticDimensionInfo struct {
	name      string
	column    string
	header    string
	valueType ValueType
	scheduled bool
}

// column is the analytics table column; header is the name exposed in keys and aliases.
var staticDimensions = map[StaticDimension]staticDimensionInfo{
	EventDate:        {name: "EVENT_DATE", column: "occurreddate", header: "eventdate", valueType: ValueTypeDate},
	ScheduledDate:    {name: "SCHEDULED_DATE", column: "scheduleddate", header: "scheduleddate", valueType: ValueTypeDate, scheduled: true},
	OrgUnit:          {name: "OU", column: "ou", header: "ou", valueType: ValueTypeOrgUnit},
	EventStatus:      {name: "EVENT_STATUS", column: "status", header: "eventstatus", valueType: ValueTypeText, scheduled: true},
	EnrollmentStatus: {name: "ENROLLMENT_STATUS", column: "status", header: "enrollmentstatus", valueType: ValueTypeText},
	EnrollmentDate:   {name: "ENROLLMENT_DATE", column: "enrollmentdate", header: "enrollmentdate", valueType: ValueTypeDate},
	IncidentDate:     {name: "INCIDENT_DATE", column: "occurreddate", header: "incidentdate", valueType: ValueTypeDate},
	Created:          {name: "CREATED", column: "created", header: "created", valueType: ValueTypeDateTime},
	LastUpdated:      {name: "LAST_UPDATED", column: "lastupdated", header: "lastupdated", valueType: ValueTypeDateTime},
}

// ParseStaticDimension resolves the enumerator name (e.g. "EVENT_DATE").
func ParseStaticDimension(name string) (StaticDimension, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for d, info := range staticDimensions {
		if info.name == name {
			return d, true
		}
	}
	return StaticNone, false
}

func (d StaticDimension) String() string {
	if info, ok := staticDimensions[d]; ok {
		return info.name
	}
	return "NONE"
}

// ColumnName is the analytics table column holding the value.
func (d StaticDimension) ColumnName() string { return staticDimensions[d].column }

// HeaderName is the name used in keys and select aliases.
func (d StaticDimension) HeaderName() string { return staticDimensions[d].header }

func (d StaticDimension) ValueType() ValueType { return staticDimensions[d].valueType }

// IncludesScheduledEvents reports whether the dimension must see events that are
// scheduled but have not occurred yet.
func (d StaticDimension) IncludesScheduledEvents() bool { return staticDimensions[d].scheduled }

func (d StaticDimension) IsValid() bool {
	_, ok := staticDimensions[d]
	return ok
}
