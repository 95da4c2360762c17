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

package common

import (
	"errors"
	"strings"
)

const (
	badRequestPrefix     = "400 Bad Request: "
	notFoundPrefix       = "404 Not Found: "
	internalServerPrefix = "500 Internal Server Error: "
)

// ErrorHandler is the message document written by the CLI when a command fails.
type ErrorHandler struct {
	MessageType   string `json:"messageType"`
	Text          string `json:"text"`
	Code          string `json:"code,omitempty"`
	CorrelationId string `json:"correlationId,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

func NewErrorHandler(messageType string, text error, code string, correlationId string, timestamp string) *ErrorHandler {
	return &ErrorHandler{
		MessageType:   messageType,
		Text:          text.Error(),
		Code:          code,
		CorrelationId: correlationId,
		Timestamp:     timestamp,
	}
}

// NewErrorHandlerFor classifies err and fills Code with the matching status.
func NewErrorHandlerFor(err error, correlationId string) *ErrorHandler {
	code := "500"
	switch {
	case IsErrBadRequest(err):
		code = "400"
	case IsErrNotFound(err):
		code = "404"
	}
	return NewErrorHandler("Error", err, code, correlationId, GetCurrentTimestamp())
}

func NewErrNotFound(elementId string) error {
	return errors.New(notFoundPrefix + elementId)
}

func NewErrBadRequest(message string) error {
	return errors.New(badRequestPrefix + message)
}

func NewInternalServerError(message string) error {
	return errors.New(internalServerPrefix + message)
}

func IsErrNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), notFoundPrefix)
}

func IsErrBadRequest(err error) bool {
	return err != nil && strings.Contains(err.Error(), badRequestPrefix)
}

func IsInternalServerError(err error) bool {
	return err != nil && strings.Contains(err.Error(), internalServerPrefix)
}
