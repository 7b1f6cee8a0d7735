// Package schemas holds the JSON Schemas for the documents this module produces.
package schemas

import _ "embed"

// ResumeDocumentFile is the file name of the resume document schema.
const ResumeDocumentFile = "resume_document.schema.json"

// ResumeDocument is the JSON Schema a serialized types.ResumeDocument must satisfy.
//
//go:embed resume_document.schema.json
var ResumeDocument []byte
