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

import (
	"errors"
	"fmt"
)

// Level is the hierarchy tier a dimension is scoped to.
type Level int

const (
	LevelUnknown Level = iota
	LevelTrackedEntity
	LevelEnrollment
	LevelEvent
	LevelEventDataElement
)

func (l Level) String() string {
	switch l {
	case LevelTrackedEntity:
		return "TRACKED_ENTITY"
	case LevelEnrollment:
		return "ENROLLMENT"
	case LevelEvent:
		return "EVENT"
	case LevelEventDataElement:
		return "EVENT_DATA_ELEMENT"
	}
	return "UNKNOWN"
}

// ErrStageWithoutProgram is returned when an identifier addresses a program
// stage without the program it belongs to.
var ErrStageWithoutProgram = errors.New("program stage requires a program")

// DimensionIdentifier identifies one requested dimension and the hierarchy
// level it is scoped to.
type DimensionIdentifier struct {
	Program      ElementWithOffset[Program]
	ProgramStage ElementWithOffset[ProgramStage]
	Dimension    DimensionParam
}

// NewDimensionIdentifier validates the program/stage combination.
func NewDimensionIdentifier(program ElementWithOffset[Program], stage ElementWithOffset[ProgramStage], dimension DimensionParam) (DimensionIdentifier, error) {
	if stage.IsPresent() && !program.IsPresent() {
		return DimensionIdentifier{}, fmt.Errorf("dimension %q: %w", dimension.UID(), ErrStageWithoutProgram)
	}
	return DimensionIdentifier{Program: program, ProgramStage: stage, Dimension: dimension}, nil
}

// TrackedEntityDimension scopes dimension to the tracked entity level.
func TrackedEntityDimension(dimension DimensionParam) DimensionIdentifier {
	return DimensionIdentifier{Dimension: dimension}
}

// EnrollmentDimension scopes dimension to the nth enrollment in program.
func EnrollmentDimension(program Program, offset int, dimension DimensionParam) DimensionIdentifier {
	return DimensionIdentifier{Program: Of(program, offset), Dimension: dimension}
}

// EventDimension scopes dimension to the nth event of stage within the nth enrollment in program.
func EventDimension(program Program, programOffset int, stage ProgramStage, stageOffset int, dimension DimensionParam) DimensionIdentifier {
	return DimensionIdentifier{
		Program:      Of(program, programOffset),
		ProgramStage: Of(stage, stageOffset),
		Dimension:    dimension,
	}
}

// Level derives the hierarchy tier from the addressed program and stage.
// Data elements addressed at event level are one tier deeper.
func (d DimensionIdentifier) Level() Level {
	switch {
	case !d.Program.IsPresent() && !d.ProgramStage.IsPresent():
		return LevelTrackedEntity
	case d.Program.IsPresent() && !d.ProgramStage.IsPresent():
		return LevelEnrollment
	case d.Program.IsPresent() && d.ProgramStage.IsPresent():
		if d.Dimension.IsOfType(ParamDataElement) {
			return LevelEventDataElement
		}
		return LevelEvent
	}
	return LevelUnknown
}

func (d DimensionIdentifier) IsTeDimension() bool { return d.Level() == LevelTrackedEntity }

func (d DimensionIdentifier) IsEnrollmentDimension() bool { return d.Level() == LevelEnrollment }

// IsEventDimension is true for static event fields and event data elements.
func (d DimensionIdentifier) IsEventDimension() bool {
	l := d.Level()
	return l == LevelEvent || l == LevelEventDataElement
}

// Prefix is "" at tracked entity level, "prg[o]" at enrollment level and
// "prg[o].stg[o]" at event level.
func (d DimensionIdentifier) Prefix() string {
	switch {
	case d.Program.IsPresent() && d.ProgramStage.IsPresent():
		return d.Program.String() + "." + d.ProgramStage.String()
	case d.Program.IsPresent():
		return d.Program.String()
	case d.ProgramStage.IsPresent():
		return d.ProgramStage.String()
	}
	return ""
}

// Key identifies the logical field: identifiers with equal keys collapse into one select field.
func (d DimensionIdentifier) Key() string {
	prefix := d.Prefix()
	if prefix == "" {
		return d.Dimension.UID()
	}
	return prefix + "." + d.Dimension.UID()
}

func (d DimensionIdentifier) String() string { return d.Key() }
