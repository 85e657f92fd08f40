package extract

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

type stubGenerator struct {
	response string
	err      error
	gotParts []genai.Part
}

func (s *stubGenerator) GenerateFromParts(ctx context.Context, parts ...genai.Part) (string, error) {
	s.gotParts = parts
	return s.response, s.err
}

func TestDecodeExtraction(t *testing.T) {
	raw := `{
		"customer_name": " The Corner Cafe ",
		"items": [
			{"name": "Widget", "code": "ABC123", "quantity": 2, "unit": "each", "unit_price": 5.50},
			{"name": "Gadget", "quantity": 3.5}
		]
	}`

	res := decodeExtraction(raw)
	if res.CustomerName != "The Corner Cafe" {
		t.Errorf("customer name = %q", res.CustomerName)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if res.Items[0].Code != "ABC123" || res.Items[0].Quantity != 2 || res.Items[0].UnitPrice != 5.50 {
		t.Errorf("item 1 wrong: %+v", res.Items[0])
	}
	// Fractional quantities (e.g. 3.5 kg) are preserved
	if res.Items[1].Quantity != 3.5 {
		t.Errorf("fractional quantity not decoded: %+v", res.Items[1])
	}
}

func TestDecodeExtractionStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"customer_name\": \"Cafe\", \"items\": [{\"name\": \"Widget\", \"quantity\": 1}]}\n```"

	res := decodeExtraction(raw)
	if len(res.Items) != 1 || res.Items[0].Name != "Widget" {
		t.Fatalf("fenced output not decoded: %+v", res)
	}
}

func TestDecodeExtractionDropsInvalidItems(t *testing.T) {
	raw := `{
		"items": [
			{"name": "", "quantity": 5},
			{"name": "No Quantity"},
			{"name": "Negative", "quantity": -2},
			{"name": "Zero", "quantity": 0},
			{"name": "Keeper", "quantity": 1}
		]
	}`

	res := decodeExtraction(raw)
	if len(res.Items) != 1 || res.Items[0].Name != "Keeper" {
		t.Errorf("boundary validation failed, got %+v", res.Items)
	}
}

func TestDecodeExtractionMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "{\"items\": \"oops\"}"} {
		res := decodeExtraction(raw)
		if len(res.Items) != 0 {
			t.Errorf("malformed input %q should yield empty result, got %+v", raw, res)
		}
	}
}

func TestIsTextFormat(t *testing.T) {
	cases := []struct {
		filename string
		mimeType string
		want     bool
	}{
		{"order.csv", "", true},
		{"order.txt", "", true},
		{"data", "text/plain", true},
		{"data", "application/csv", true},
		{"scan.pdf", "application/pdf", false},
		{"order.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", false},
		{"photo.jpg", "image/jpeg", false},
	}

	for _, c := range cases {
		if got := IsTextFormat(c.filename, c.mimeType); got != c.want {
			t.Errorf("IsTextFormat(%q, %q) = %v, want %v", c.filename, c.mimeType, got, c.want)
		}
	}
}

func TestExtractSendsTextAsPrompt(t *testing.T) {
	gen := &stubGenerator{response: `{"items": [{"name": "Widget", "quantity": 1}]}`}
	e := NewGeminiExtractor(gen)

	res, err := e.Extract(context.Background(), "order.csv", "text/csv", []byte("item,qty\nWidget,1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %+v", res)
	}

	// Prompt plus the decoded CSV text, no binary blob
	if len(gen.gotParts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(gen.gotParts))
	}
	if _, ok := gen.gotParts[1].(genai.Text); !ok {
		t.Errorf("CSV should be sent as text, got %T", gen.gotParts[1])
	}
}

func TestExtractSendsBinaryAsBlob(t *testing.T) {
	gen := &stubGenerator{response: `{"items": []}`}
	e := NewGeminiExtractor(gen)

	if _, err := e.Extract(context.Background(), "scan.pdf", "application/octet-stream", []byte("%PDF-1.4")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blob, ok := gen.gotParts[1].(genai.Blob)
	if !ok {
		t.Fatalf("PDF should be sent as blob, got %T", gen.gotParts[1])
	}
	// Generic mail-client mime type replaced by an extension guess
	if blob.MIMEType != "application/pdf" {
		t.Errorf("blob mime = %q, want application/pdf", blob.MIMEType)
	}
}
