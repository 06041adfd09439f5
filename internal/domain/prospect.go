package domain

import "strings"

// Prospect is one normalized opportunity record, whatever upstream it came
// from. Everything except ID is optional; adapters fill what they can.
type Prospect struct {
	ID            string `json:"id"`
	Title         string `json:"title,omitempty"`
	URL           string `json:"url,omitempty"`
	Organization  string `json:"organization,omitempty"`
	Location      string `json:"location,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"` // YYYY-MM-DD
	BidDueDate    string `json:"bidDueDate,omitempty"`
	Catalyst      string `json:"catalyst,omitempty"`
	Fit           string `json:"fit,omitempty"`
	Reasoning     string `json:"reasoning,omitempty"`
	Type          string `json:"type,omitempty"` // web | news | Government Contract | Research | error
	Source        string `json:"source,omitempty"`
	Host          string `json:"host,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`

	// Score is assigned during aggregation; it ranks, never filters.
	Score int `json:"score"`
}

// DedupeKey is the identity used to collapse duplicates: the URL when
// present, else the title, else the id. Case-insensitive.
func (p Prospect) DedupeKey() string {
	if p.URL != "" {
		return strings.ToLower(p.URL)
	}
	if p.Title != "" {
		return strings.ToLower(p.Title)
	}
	return p.ID
}
