package models

// DigestMetadata describes the run that produced a digest.
type DigestMetadata struct {
	InputDocuments   []string `json:"input_documents"`
	SkippedDocuments []string `json:"skipped_documents,omitempty"`
	Persona          string   `json:"persona"`
	JobToBeDone      string   `json:"job_to_be_done"`
	// ProcessingTimestamp is RFC 3339 local time.
	ProcessingTimestamp   string  `json:"processing_timestamp"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// ExtractedSection is the summary view of one selected section.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// SubsectionAnalysis is the detailed view of one selected section, with its refined excerpt.
type SubsectionAnalysis struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	RefinedText    string `json:"refined_text"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// Digest is the output of one ranking run.
// ExtractedSections and SubsectionAnalysis hold the same sections in rank order.
type Digest struct {
	Metadata           DigestMetadata       `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// NewDigest returns a digest with empty (non-nil) section lists.
func NewDigest(meta DigestMetadata) *Digest {
	if meta.InputDocuments == nil {
		meta.InputDocuments = []string{}
	}
	return &Digest{
		Metadata:           meta,
		ExtractedSections:  []ExtractedSection{},
		SubsectionAnalysis: []SubsectionAnalysis{},
	}
}
