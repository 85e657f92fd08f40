package ingest

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Attachment is one file from an inbound email, content already decoded
type Attachment struct {
	Filename string
	MimeType string
	Content  []byte
}

// InboundMessage is one normalized email handed to the pipeline. MessageID
// is the idempotency key; the message itself is never persisted.
type InboundMessage struct {
	MessageID   string
	Sender      string
	Subject     string
	ReceivedAt  time.Time
	TenantID    string
	Attachments []Attachment
}

// Format priority for extraction: structured formats are cheaper and more
// reliable than documents needing vision inference, so they go first.
const (
	formatCSV         = 0
	formatSpreadsheet = 1
	formatDocument    = 2
)

func formatPriority(a Attachment) int {
	mt := strings.ToLower(a.MimeType)
	ext := strings.ToLower(filepath.Ext(a.Filename))

	switch {
	case ext == ".csv" || ext == ".tsv" || mt == "text/csv" || mt == "application/csv":
		return formatCSV
	case ext == ".xlsx" || ext == ".xls" || ext == ".ods" ||
		strings.Contains(mt, "spreadsheet") || mt == "application/vnd.ms-excel":
		return formatSpreadsheet
	default:
		return formatDocument
	}
}

// sortAttachments orders attachments cheapest-to-extract first, preserving
// the original order within each format class
func sortAttachments(atts []Attachment) []Attachment {
	sorted := make([]Attachment, len(atts))
	copy(sorted, atts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return formatPriority(sorted[i]) < formatPriority(sorted[j])
	})
	return sorted
}
