package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Default caps for one ranking run.
const (
	DefaultMaxSections   = 10
	DefaultExcerptLength = 1000
)

// ErrInvalidRequest is returned when a run request matches neither accepted shape.
var ErrInvalidRequest = errors.New("invalid input format")

// Query is the relevance target of a run: who is reading and what they need done.
type Query struct {
	Persona string `json:"persona"`
	Job     string `json:"job_to_be_done"`
}

// DocumentRef points at one input document.
type DocumentRef struct {
	Path  string `json:"filename"`
	Title string `json:"title,omitempty"`
}

// RunRequest is the input of one ranking run.
type RunRequest struct {
	Documents     []DocumentRef `json:"documents"`
	Query         Query         `json:"query"`
	MaxSections   int           `json:"max_sections,omitempty"`
	ExcerptLength int           `json:"excerpt_length,omitempty"`
}

// Validate checks document paths and fills in default caps.
// A request with no documents or an empty job is valid; an empty job
// leaves only section shape to score.
func (r *RunRequest) Validate() error {
	for i, d := range r.Documents {
		if strings.TrimSpace(d.Path) == "" {
			return fmt.Errorf("%w: document %d has no filename", ErrInvalidRequest, i)
		}
	}
	if r.MaxSections <= 0 {
		r.MaxSections = DefaultMaxSections
	}
	if r.ExcerptLength <= 0 {
		r.ExcerptLength = DefaultExcerptLength
	}
	return nil
}

// metadataShape is the request form that echoes a previous digest's metadata block.
type metadataShape struct {
	Metadata *struct {
		InputDocuments []string `json:"input_documents"`
		Persona        string   `json:"persona"`
		JobToBeDone    string   `json:"job_to_be_done"`
	} `json:"metadata"`
}

// explicitShape is the request form with explicit documents, persona and job objects.
type explicitShape struct {
	Documents []DocumentRef `json:"documents"`
	Persona   *struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone *struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// ParseRunRequest decodes a run request in either accepted JSON shape and validates it.
func ParseRunRequest(data []byte) (*RunRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var req *RunRequest
	_, hasMetadata := raw["metadata"]
	_, hasDocuments := raw["documents"]
	_, hasPersona := raw["persona"]
	_, hasJob := raw["job_to_be_done"]

	switch {
	case hasMetadata:
		var m metadataShape
		if err := json.Unmarshal(data, &m); err != nil || m.Metadata == nil {
			return nil, fmt.Errorf("%w: malformed metadata block", ErrInvalidRequest)
		}
		req = &RunRequest{
			Query: Query{Persona: m.Metadata.Persona, Job: m.Metadata.JobToBeDone},
		}
		for _, name := range m.Metadata.InputDocuments {
			req.Documents = append(req.Documents, DocumentRef{Path: name})
		}
	case hasDocuments && hasPersona && hasJob:
		var e explicitShape
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		req = &RunRequest{Documents: e.Documents}
		if e.Persona != nil {
			req.Query.Persona = e.Persona.Role
		}
		if e.JobToBeDone != nil {
			req.Query.Job = e.JobToBeDone.Task
		}
	default:
		return nil, fmt.Errorf("%w: expected metadata or documents/persona/job_to_be_done", ErrInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
