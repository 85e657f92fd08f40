package extract

import (
	"context"
	"encoding/json"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jyelen1110/alfies-server/internal/ai"
	"github.com/jyelen1110/alfies-server/internal/matching"
	"github.com/jyelen1110/alfies-server/internal/utils"
)

// Result is the normalized output of extracting one attachment.
// An attachment that cannot be interpreted yields an empty Result, not an
// error; the coordinator decides whether to try another attachment.
type Result struct {
	CustomerName string                     `json:"customer_name"`
	Items        []matching.ParsedOrderItem `json:"items"`
}

// Generator is the slice of the Gemini client the extractor needs
type Generator interface {
	GenerateFromParts(ctx context.Context, parts ...genai.Part) (string, error)
}

// GeminiExtractor turns raw attachments into structured order data by
// delegating interpretation to Gemini
type GeminiExtractor struct {
	gen Generator
}

// NewGeminiExtractor creates an extractor backed by the given model client
func NewGeminiExtractor(gen Generator) *GeminiExtractor {
	return &GeminiExtractor{gen: gen}
}

// Extract parses one attachment. Text formats (CSV, plain text) are decoded
// and sent as prompt text; PDFs, spreadsheets and images are sent as
// document-vision blobs. Transport errors are returned; malformed model
// output is swallowed to an empty Result.
func (e *GeminiExtractor) Extract(ctx context.Context, filename, mimeType string, content []byte) (Result, error) {
	parts := []genai.Part{genai.Text(ai.OrderExtractionPrompt)}

	if IsTextFormat(filename, mimeType) {
		parts = append(parts, genai.Text("Document content:\n\n"+string(content)))
	} else {
		parts = append(parts, genai.Blob{MIMEType: blobMIMEType(filename, mimeType), Data: content})
	}

	raw, err := e.gen.GenerateFromParts(ctx, parts...)
	if err != nil {
		return Result{}, err
	}

	res := decodeExtraction(raw)
	if len(res.Items) == 0 {
		log.Printf("📄 Extraction yielded no usable items from %s", filename)
	}
	return res, nil
}

// IsTextFormat reports whether an attachment can be sent to the model as
// decoded text rather than a binary blob
func IsTextFormat(filename, mimeType string) bool {
	mt := strings.ToLower(mimeType)
	if strings.HasPrefix(mt, "text/") || mt == "application/csv" || mt == "application/json" {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv":
		return true
	}
	return false
}

// blobMIMEType picks the mime type declared on the attachment, falling back
// to a guess from the extension when the mail client sent a generic one
func blobMIMEType(filename, mimeType string) string {
	mt := strings.ToLower(mimeType)
	if mt != "" && mt != "application/octet-stream" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".xls":
		return "application/vnd.ms-excel"
	}
	return "application/octet-stream"
}

// extractionPayload mirrors the shape requested in the prompt, loosely
// typed so a slightly-off response still decodes
type extractionPayload struct {
	CustomerName string `json:"customer_name"`
	Items        []struct {
		Name      string      `json:"name"`
		Code      string      `json:"code"`
		SKU       string      `json:"sku"`
		Quantity  json.Number `json:"quantity"`
		Unit      string      `json:"unit"`
		UnitPrice json.Number `json:"unit_price"`
	} `json:"items"`
}

// decodeExtraction validates raw model output into the strict item shape.
// Anything unparseable collapses to an empty Result; items missing a name
// or a positive quantity are dropped, never returned half-filled.
func decodeExtraction(raw string) Result {
	cleaned := utils.SanitizeJSON(raw)
	if cleaned == "" {
		return Result{}
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		log.Printf("⚠️ Discarding malformed extraction output: %v", err)
		return Result{}
	}

	res := Result{CustomerName: strings.TrimSpace(payload.CustomerName)}
	for _, it := range payload.Items {
		name := strings.TrimSpace(it.Name)
		qty, err := it.Quantity.Float64()
		if name == "" || err != nil || qty <= 0 {
			continue
		}
		price, _ := it.UnitPrice.Float64()
		res.Items = append(res.Items, matching.ParsedOrderItem{
			Name:      name,
			Code:      strings.TrimSpace(it.Code),
			SKU:       strings.TrimSpace(it.SKU),
			Quantity:  qty,
			Unit:      strings.TrimSpace(it.Unit),
			UnitPrice: price,
		})
	}
	return res
}
