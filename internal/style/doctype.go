package style

import "strings"

// DocType is the engine's document type as reported in the status frame.
type DocType string

const (
	DocText         DocType = "text"
	DocPresentation DocType = "presentation"
	DocDrawing      DocType = "drawing"
	DocSpreadsheet  DocType = "spreadsheet"
)

// ParseDocType normalizes a raw type string. Unknown values are kept as-is so
// they fall through to the empty-catalog branch.
func ParseDocType(raw string) DocType {
	return DocType(strings.ToLower(strings.TrimSpace(raw)))
}

// Family returns the style family used when applying a style to a document of
// this type. Only text and presentation documents have one.
func (d DocType) Family() (string, bool) {
	switch d {
	case DocText:
		return "ParagraphStyles", true
	case DocPresentation:
		return "Default", true
	default:
		return "", false
	}
}
