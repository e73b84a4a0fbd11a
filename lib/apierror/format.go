// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package apierror

import (
	"errors"
	"fmt"
	"strings"
)

// statusMessages maps HTTP status codes to user-facing sentences.
// Used when the server provides neither validation errors nor a
// message of its own.
var statusMessages = map[int]string{
	400: "The provided data is invalid. Please check your input.",
	401: "You must be signed in to perform this action.",
	403: "You do not have permission to perform this action.",
	404: "The requested resource could not be found.",
	409: "This resource already exists or a conflict was detected.",
	422: "The provided data is not valid.",
	429: "Too many requests. Please wait a moment and try again.",
	500: "A server error occurred. Please try again in a few moments.",
	502: "The server is temporarily unreachable. Please try again.",
	503: "The service is temporarily unavailable. Please try again later.",
}

// ruleMessages maps validation rule names to default messages, used
// when a field error arrives without a message.
var ruleMessages = map[string]string{
	"required":  "this field is required",
	"email":     "the email address is not valid",
	"minLength": "the value is too short",
	"maxLength": "the value is too long",
	"unique":    "this value already exists",
	"exists":    "this resource does not exist",
	"min":       "the value is too small",
	"max":       "the value is too large",
}

// fieldLabels maps API field names to display labels. Unknown fields
// fall back to the raw name.
var fieldLabels = map[string]string{
	"title":       "Title",
	"name":        "Name",
	"description": "Description",
	"email":       "Email",
	"password":    "Password",
	"status":      "Status",
	"level":       "Priority",
	"categoryId":  "Category",
}

// TransportMessage is the connectivity-failure sentence. Exported so
// UI code can test against it.
const TransportMessage = "Could not reach the server. Check your internet connection."

// UnknownMessage is the final fallback sentence.
const UnknownMessage = "An unknown error occurred. Please try again."

// Format turns any error into one user-facing message. For *Error
// values the decision order is: validation errors, server message,
// mapped status sentence, generic status sentence, connectivity
// message. Other errors render their own message; nil or empty
// errors render the unknown-error sentence.
func Format(err error) string {
	if err == nil {
		return UnknownMessage
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if len(apiErr.Errors) > 0 {
			return formatValidationErrors(apiErr.Errors)
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Kind == KindTransport {
			return TransportMessage
		}
		if apiErr.StatusCode != 0 {
			if message, ok := statusMessages[apiErr.StatusCode]; ok {
				return message
			}
			return fmt.Sprintf("Error %d: something went wrong.", apiErr.StatusCode)
		}
		return UnknownMessage
	}

	if message := err.Error(); message != "" {
		return message
	}
	return UnknownMessage
}

// formatValidationErrors renders field errors: a single error as one
// line, several as a bulleted list under a header, in input order.
func formatValidationErrors(validationErrors []ValidationError) string {
	if len(validationErrors) == 1 {
		entry := validationErrors[0]
		return fieldLabel(entry.Field) + ": " + validationMessage(entry)
	}

	var builder strings.Builder
	builder.WriteString("Validation errors:")
	for _, entry := range validationErrors {
		builder.WriteString("\n• ")
		builder.WriteString(fieldLabel(entry.Field))
		builder.WriteString(": ")
		builder.WriteString(validationMessage(entry))
	}
	return builder.String()
}

// validationMessage picks the message for one field error: the
// server's message if present, the rule default otherwise, a generic
// sentence as the last resort.
func validationMessage(entry ValidationError) string {
	if entry.Message != "" {
		return entry.Message
	}
	if message, ok := ruleMessages[entry.Rule]; ok {
		return message
	}
	return "the value is not valid"
}

// fieldLabel returns the display label for an API field name.
func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
