package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-structurer/internal/db"
	"github.com/jonathan/resume-structurer/internal/enhance"
	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/parsing"
	"github.com/jonathan/resume-structurer/internal/types"
)

// multipartOverhead is the allowance for multipart framing on top of the file itself
const multipartOverhead = 1 << 20

// ParseRequest represents the request body for /parse
type ParseRequest struct {
	Text       *string `json:"text"`
	SourceName string  `json:"source_name,omitempty"`
}

// ParseResponse represents the response for /parse and /upload
type ParseResponse struct {
	ID            string                `json:"id,omitempty"`
	Resume        *types.ResumeDocument `json:"resume"`
	LowConfidence bool                  `json:"low_confidence"`
	Metadata      *ingestion.Metadata   `json:"metadata,omitempty"`
}

// EnhanceDocumentRequest represents the request body for /enhance/document
type EnhanceDocumentRequest struct {
	Resume  *types.ResumeDocument `json:"resume"`
	Context enhance.Context       `json:"context"`
}

// ListResumesResponse represents the response for GET /resumes
type ListResumesResponse struct {
	Resumes []db.ParsedResumeSummary `json:"resumes"`
	Total   int                      `json:"total"`
	Limit   int                      `json:"limit"`
	Offset  int                      `json:"offset"`
}

// decodeBody reads a size-limited JSON body into v, writing the error response on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxUploadBytes)).Decode(v)
	if err == nil {
		return true
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		s.fail(w, &ErrTooLarge{Limit: s.maxUploadBytes})
		return false
	}
	s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
	return false
}

// handleParse structures resume text sent as JSON
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Text == nil {
		s.fail(w, parsing.ErrInvalidInput)
		return
	}

	doc := s.parser.Parse(*req.Text)
	resp := ParseResponse{
		Resume:        doc,
		LowConfidence: s.parser.IsLowConfidence(doc),
	}
	resp.ID = s.persist(r.Context(), &db.ParsedResume{
		SourceName:    req.SourceName,
		Format:        db.FormatText,
		ContentHash:   ingestion.ComputeHash([]byte(*req.Text)),
		Document:      doc,
		LowConfidence: resp.LowConfidence,
	})

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleUpload extracts, cleans and structures an uploaded resume file
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.fail(w, &ErrTooLarge{Limit: s.maxUploadBytes})
			return
		}
		s.fail(w, &ErrValidation{Field: "file", Message: "a multipart file field named 'file' is required"})
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadBytes {
		s.fail(w, &ErrTooLarge{Limit: s.maxUploadBytes})
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		s.fail(w, err)
		return
	}
	if int64(len(data)) > s.maxUploadBytes {
		s.fail(w, &ErrTooLarge{Limit: s.maxUploadBytes})
		return
	}

	text, meta, err := ingestion.IngestBytes(header.Filename, data)
	if err != nil {
		log.Printf("[upload] %s rejected: %v", header.Filename, err)
		s.fail(w, err)
		return
	}

	parser := s.parser
	if meta.Format == ingestion.FormatDOCX {
		parser = s.docxParser
	}
	doc := parser.Parse(text)
	resp := ParseResponse{
		Resume:        doc,
		LowConfidence: parser.IsLowConfidence(doc),
		Metadata:      meta,
	}
	resp.ID = s.persist(r.Context(), &db.ParsedResume{
		SourceName:    meta.Filename,
		Format:        string(meta.Format),
		ContentHash:   meta.Hash,
		Document:      doc,
		LowConfidence: resp.LowConfidence,
	})

	log.Printf("[upload] parsed %s (%s, %d bytes, low_confidence=%t)", meta.Filename, meta.Format, meta.Bytes, resp.LowConfidence)
	s.jsonResponse(w, http.StatusOK, resp)
}

// persist stores a parse result when storage is configured and returns its ID.
// A storage failure is logged; the parse result is still returned to the caller.
func (s *Server) persist(ctx context.Context, rec *db.ParsedResume) string {
	if s.store == nil {
		return ""
	}
	id, err := s.store.SaveParsedResume(ctx, rec)
	if err != nil {
		log.Printf("[server] failed to store parse result: %v", err)
		return ""
	}
	return id.String()
}

// handleEnhance rewrites a single resume field
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.fail(w, &ErrUnavailable{Feature: "enhancement"})
		return
	}

	var req enhance.Request
	if !s.decodeBody(w, r, &req) {
		return
	}

	resp, err := s.enhancer.Enhance(r.Context(), req)
	if err != nil {
		log.Printf("[enhance] %s failed: %v", req.FieldType, err)
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleEnhanceDocument rewrites every eligible field of a parsed resume
func (s *Server) handleEnhanceDocument(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.fail(w, &ErrUnavailable{Feature: "enhancement"})
		return
	}

	var req EnhanceDocumentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Resume == nil {
		s.fail(w, &ErrValidation{Field: "resume", Message: "is required"})
		return
	}

	doc, err := s.enhancer.EnhanceDocument(r.Context(), req.Resume, req.Context)
	if err != nil {
		log.Printf("[enhance] document failed: %v", err)
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": doc})
}

// handleListResumes lists stored parse results
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Feature: "storage"})
		return
	}

	limit, err := queryInt(r, "limit", db.DefaultListLimit)
	if err != nil {
		s.fail(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.fail(w, err)
		return
	}

	resumes, total, err := s.store.ListParsedResumes(r.Context(), limit, offset)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResumesResponse{
		Resumes: resumes,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// handleGetResume returns a stored parse result
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, &ErrUnavailable{Feature: "storage"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.fail(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	rec, err := s.store.GetParsedResume(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if rec == nil {
		s.fail(w, &ErrNotFound{Resource: "resume", ID: idStr})
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a non-negative integer"}
	}
	return v, nil
}
