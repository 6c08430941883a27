package types

import "time"

// Document is a stored file reference such as a receipt, manual, or
// contract. Property, asset, and worker associations are all optional.
type Document struct {
	ID             string     `json:"id"`
	PropertyID     string     `json:"property_id,omitempty"`
	AssetID        string     `json:"asset_id,omitempty"`
	WorkerID       string     `json:"worker_id,omitempty"`
	Title          string     `json:"title"`
	DocumentType   string     `json:"document_type"`
	FileURI        string     `json:"file_uri"`
	MimeType       string     `json:"mime_type"`
	FileSize       int64      `json:"file_size"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DocumentPatch lists the document fields Update may change.
type DocumentPatch struct {
	PropertyID     *string
	AssetID        *string
	WorkerID       *string
	Title          *string
	DocumentType   *string
	FileURI        *string
	MimeType       *string
	FileSize       *int64
	ExpirationDate *time.Time
	Notes          *string
}

// Note is free-form text, optionally attached to a property or an asset.
type Note struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id,omitempty"`
	AssetID    string    `json:"asset_id,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsPinned   bool      `json:"is_pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NotePatch lists the note fields Update may change.
type NotePatch struct {
	PropertyID *string
	AssetID    *string
	Title      *string
	Content    *string
	IsPinned   *bool
}
