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

import "fmt"

// ElementWithOffset wraps an optional hierarchy element together with the offset
// selecting which of its repeatable occurrences a dimension addresses.
//
// The zero value is empty: the dimension does not address this level.
type ElementWithOffset[T UIDProvider] struct {
	element T
	offset  int
	present bool
}

// Of wraps element with the given offset.
func Of[T UIDProvider](element T, offset int) ElementWithOffset[T] {
	return ElementWithOffset[T]{element: element, offset: offset, present: true}
}

// None returns an empty ElementWithOffset.
func None[T UIDProvider]() ElementWithOffset[T] {
	return ElementWithOffset[T]{}
}

func (e ElementWithOffset[T]) IsPresent() bool { return e.present }

// Element returns the wrapped element and whether it is present.
func (e ElementWithOffset[T]) Element() (T, bool) { return e.element, e.present }

func (e ElementWithOffset[T]) Offset() int { return e.offset }

// UID returns the element UID, or "" when empty.
func (e ElementWithOffset[T]) UID() string {
	if !e.present {
		return ""
	}
	return e.element.GetUID()
}

// String renders the element as "uid[offset]", or "" when empty.
func (e ElementWithOffset[T]) String() string {
	if !e.present {
		return ""
	}
	return fmt.Sprintf("%s[%d]", e.element.GetUID(), e.offset)
}
