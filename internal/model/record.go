// Package model defines the raw source records and merged lead types
// flowing through the aggregation engine.
package model

// ProfileRecord is a partial identity record from the professional-profile
// source. Immutable once created by the collaborator that fetched it.
type ProfileRecord struct {
	FullName     string `json:"full_name"`
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
	Location     string `json:"location,omitempty"`
	ProfileURL   string `json:"profile_url,omitempty"`
	Email        string `json:"email,omitempty"`
}

// NamedEmail is a (name, email) pair discovered on an organization's site.
type NamedEmail struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// WebsiteRecord is a partial contact record from the company-website
// source. Immutable once created.
type WebsiteRecord struct {
	Organization string       `json:"organization" yaml:"organization"`
	Pairs        []NamedEmail `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	FormatHint   string       `json:"format_hint,omitempty" yaml:"format_hint,omitempty"`
}
