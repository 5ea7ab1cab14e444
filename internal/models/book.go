package models

import "strings"

// ExtractedBookInfo is the result of running every field extractor over one
// user message. Absent fields are nil pointers or empty strings; Confidence
// is a completeness heuristic in [0,1].
type ExtractedBookInfo struct {
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	Price      *float64  `json:"price,omitempty"`
	Quantity   *int      `json:"quantity,omitempty"`
	Location   string    `json:"location,omitempty"`
	Condition  Condition `json:"condition,omitempty"`
	Confidence float64   `json:"confidence"`
	Language   Language  `json:"language"`
}

// IsValid reports whether the info is complete enough to act on: both title
// and author must be non-blank.
func (b ExtractedBookInfo) IsValid() bool {
	return strings.TrimSpace(b.Title) != "" && strings.TrimSpace(b.Author) != ""
}
