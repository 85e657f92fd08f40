package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jyelen1110/alfies-server/internal/ingest"
)

// ingestEmailRequest is the wire format of the ingestion entrypoint
type ingestEmailRequest struct {
	Sender       string `json:"sender"`
	Subject      string `json:"subject"`
	ReceivedDate string `json:"receivedDate"` // ISO-8601
	MessageID    string `json:"messageId"`
	TenantID     string `json:"tenantId"`
	Attachments  []struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		Content     string `json:"content"` // base64
	} `json:"attachments"`
}

// ingestEmailResponse is the success payload
type ingestEmailResponse struct {
	Success           bool     `json:"success"`
	OrderID           string   `json:"orderId"`
	ItemCount         int      `json:"itemCount"`
	Subtotal          float64  `json:"subtotal"`
	Tax               float64  `json:"tax"`
	Total             float64  `json:"total"`
	HasUnmatchedItems bool     `json:"hasUnmatchedItems"`
	UnmatchedItems    []string `json:"unmatchedItems,omitempty"`
	UnmatchedCount    int      `json:"unmatchedCount"`
}

// ingestEmail is the HTTP entrypoint of the ingestion pipeline
func (r *Router) ingestEmail(w http.ResponseWriter, req *http.Request) {
	if r.ingestor == nil {
		respondError(w, http.StatusServiceUnavailable, "ingestion pipeline not configured")
		return
	}

	var body ingestEmailRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	msg, err := body.toMessage()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := r.ingestor.Ingest(req.Context(), msg)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrDuplicateMessage):
			respondError(w, http.StatusConflict, "already processed or in progress")
		case errors.Is(err, ingest.ErrNoItemsExtracted),
			errors.Is(err, ingest.ErrNoMatchedItems),
			errors.Is(err, ingest.ErrNoSupplier):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ Ingestion of message %s failed: %v", msg.MessageID, err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "ingestion failed",
				"details": err.Error(),
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, ingestEmailResponse{
		Success:           true,
		OrderID:           result.OrderID,
		ItemCount:         result.ItemCount,
		Subtotal:          result.Subtotal,
		Tax:               result.Tax,
		Total:             result.Total,
		HasUnmatchedItems: len(result.UnmatchedItems) > 0,
		UnmatchedItems:    result.UnmatchedItems,
		UnmatchedCount:    len(result.UnmatchedItems),
	})
}

// toMessage validates and converts the wire request into a pipeline message
func (b *ingestEmailRequest) toMessage() (ingest.InboundMessage, error) {
	if b.MessageID == "" {
		return ingest.InboundMessage{}, fmt.Errorf("messageId is required")
	}
	if b.TenantID == "" {
		return ingest.InboundMessage{}, fmt.Errorf("tenantId is required")
	}

	receivedAt := time.Now().UTC()
	if b.ReceivedDate != "" {
		t, err := time.Parse(time.RFC3339, b.ReceivedDate)
		if err != nil {
			return ingest.InboundMessage{}, fmt.Errorf("receivedDate must be ISO-8601")
		}
		receivedAt = t
	}

	msg := ingest.InboundMessage{
		MessageID:  b.MessageID,
		Sender:     b.Sender,
		Subject:    b.Subject,
		ReceivedAt: receivedAt,
		TenantID:   b.TenantID,
	}
	for _, att := range b.Attachments {
		content, err := base64.StdEncoding.DecodeString(att.Content)
		if err != nil {
			return ingest.InboundMessage{}, fmt.Errorf("attachment %s: content is not valid base64", att.Filename)
		}
		msg.Attachments = append(msg.Attachments, ingest.Attachment{
			Filename: att.Filename,
			MimeType: att.ContentType,
			Content:  content,
		})
	}
	return msg, nil
}
