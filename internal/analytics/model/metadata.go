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

// Package model defines the metadata objects and dimension descriptions consumed by
// the tracked entity analytics query assembler.
package model

// UIDProvider is implemented by every metadata object a dimension can be scoped to.
type UIDProvider interface {
	GetUID() string
}

// Program is a tracker program. Enrollments are scoped to one program.
type Program struct {
	UID  string `json:"uid"`
	Name string `json:"name,omitempty"`
}

func (p Program) GetUID() string { return p.UID }

// ProgramStage is a stage of a Program. Events are scoped to one stage.
type ProgramStage struct {
	UID  string `json:"uid"`
	Name string `json:"name,omitempty"`
}

func (s ProgramStage) GetUID() string { return s.UID }

// TrackedEntityType selects the family of analytics tables a query runs against.
type TrackedEntityType struct {
	UID  string `json:"uid"`
	Name string `json:"name,omitempty"`
}

func (t TrackedEntityType) GetUID() string { return t.UID }

// LegendSet groups numeric value ranges into named legends.
type LegendSet struct {
	ID  int64  `json:"id"`
	UID string `json:"uid"`
}

func (l LegendSet) GetUID() string { return l.UID }
