package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jyelen1110/alfies-server/internal/matching"
	"github.com/jyelen1110/alfies-server/internal/models"
	"gorm.io/datatypes"
)

// Pipeline outcome errors. Handlers map these onto HTTP statuses.
var (
	ErrDuplicateMessage = errors.New("message already processed or in progress")
	ErrNoItemsExtracted = errors.New("no order items could be extracted from any attachment")
	ErrNoMatchedItems   = errors.New("no extracted items matched the inventory")
	ErrNoSupplier       = errors.New("no active supplier configured for tenant")
)

// Result summarizes a successful ingestion run
type Result struct {
	ImportID       string   `json:"import_id"`
	OrderID        string   `json:"order_id"`
	ItemCount      int      `json:"item_count"`
	Subtotal       float64  `json:"subtotal"`
	Tax            float64  `json:"tax"`
	Total          float64  `json:"total"`
	UnmatchedItems []string `json:"unmatched_items,omitempty"`
}

// Coordinator orchestrates one ingestion run per inbound message: claim,
// extract, resolve, materialize, record. It holds no per-run state and is
// safe for concurrent use; the unique messageId claim is the only defense
// against two triggers racing on the same message.
type Coordinator struct {
	imports      ImportStore
	catalog      CatalogStore
	customers    CustomerStore
	extractor    Extractor
	materializer *Materializer
}

// NewCoordinator wires the ingestion pipeline
func NewCoordinator(imports ImportStore, catalog CatalogStore, customers CustomerStore, orders OrderStore, extractor Extractor) *Coordinator {
	return &Coordinator{
		imports:      imports,
		catalog:      catalog,
		customers:    customers,
		extractor:    extractor,
		materializer: NewMaterializer(orders),
	}
}

// rawSnapshot is the forensic record stored on the import row
type rawSnapshot struct {
	CustomerName   string                     `json:"customer_name,omitempty"`
	ParsedItems    []matching.ParsedOrderItem `json:"parsed_items,omitempty"`
	MatchedCount   int                        `json:"matched_count"`
	UnmatchedItems []string                   `json:"unmatched_items,omitempty"`
}

// Ingest runs the full pipeline for one message.
//
// Guarantees: exactly one terminal import-record update per claimed run, and
// zero or one order created. A duplicate messageId returns
// ErrDuplicateMessage with no side effects.
func (c *Coordinator) Ingest(ctx context.Context, msg InboundMessage) (*Result, error) {
	rec := &models.ImportRecord{
		TenantID:   msg.TenantID,
		MessageID:  msg.MessageID,
		Sender:     msg.Sender,
		Subject:    msg.Subject,
		ReceivedAt: msg.ReceivedAt,
		Status:     models.ImportStatusProcessing,
	}

	claimed, err := c.imports.Claim(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to claim message: %w", err)
	}
	if !claimed {
		log.Printf("⏭️ Skipping duplicate message %s", msg.MessageID)
		return nil, ErrDuplicateMessage
	}

	result, snapshot, err := c.run(ctx, msg)
	if err != nil {
		c.fail(ctx, rec.ID, err, snapshot)
		return nil, err
	}

	result.ImportID = rec.ID

	status := models.ImportStatusSuccess
	if len(result.UnmatchedItems) > 0 {
		status = models.ImportStatusPartial
	}
	if ferr := c.imports.Finish(ctx, rec.ID, status, "", &result.OrderID, marshalSnapshot(snapshot)); ferr != nil {
		// The order exists; surface the bookkeeping failure rather than hide it
		return nil, fmt.Errorf("order %s created but import record update failed: %w", result.OrderID, ferr)
	}

	log.Printf("✅ Ingested message %s → order %s (%d items, %d unmatched)",
		msg.MessageID, result.OrderID, result.ItemCount, len(result.UnmatchedItems))
	return result, nil
}

// run performs everything between the claim and the terminal status write
func (c *Coordinator) run(ctx context.Context, msg InboundMessage) (*Result, *rawSnapshot, error) {
	snapshot := &rawSnapshot{}

	supplier, err := c.catalog.DefaultSupplier(ctx, msg.TenantID)
	if err != nil {
		return nil, snapshot, fmt.Errorf("failed to load supplier: %w", err)
	}
	if supplier == nil {
		return nil, snapshot, ErrNoSupplier
	}

	parsed, customerName := c.extractFromAttachments(ctx, msg)
	snapshot.CustomerName = customerName
	snapshot.ParsedItems = parsed
	if len(parsed) == 0 {
		return nil, snapshot, ErrNoItemsExtracted
	}

	inventory, aliases, err := c.catalog.InventorySnapshot(ctx, msg.TenantID, supplier.ID)
	if err != nil {
		return nil, snapshot, fmt.Errorf("failed to load inventory: %w", err)
	}

	var customerID *string
	if customerName != "" {
		candidates, err := c.customers.ActiveCustomers(ctx, msg.TenantID)
		if err != nil {
			return nil, snapshot, fmt.Errorf("failed to load customers: %w", err)
		}
		if customer := matching.ResolveCustomer(customerName, candidates); customer != nil {
			customerID = &customer.ID
		} else {
			log.Printf("👤 No customer account matched %q, order will be unlinked", customerName)
		}
	}

	match := matching.MatchItems(parsed, inventory, aliases)
	snapshot.MatchedCount = len(match.Matched)
	snapshot.UnmatchedItems = match.Unmatched
	if len(match.Matched) == 0 {
		return nil, snapshot, ErrNoMatchedItems
	}

	order, err := c.materializer.Materialize(ctx, msg, supplier.ID, customerID, match.Matched, match.Unmatched)
	if err != nil {
		return nil, snapshot, err
	}

	return &Result{
		OrderID:        order.ID,
		ItemCount:      len(match.Matched),
		Subtotal:       order.Subtotal,
		Tax:            order.Tax,
		Total:          order.Total,
		UnmatchedItems: match.Unmatched,
	}, snapshot, nil
}

// extractFromAttachments tries attachments cheapest-format-first and stops
// at the first one yielding items, to bound extraction cost. Per-attachment
// failures are logged and the next attachment tried; they never abort the
// run by themselves. The first non-empty customer name seen is kept even if
// that attachment yielded no items.
func (c *Coordinator) extractFromAttachments(ctx context.Context, msg InboundMessage) ([]matching.ParsedOrderItem, string) {
	var parsed []matching.ParsedOrderItem
	var customerName string

	for _, att := range sortAttachments(msg.Attachments) {
		res, err := c.extractor.Extract(ctx, att.Filename, att.MimeType, att.Content)
		if err != nil {
			log.Printf("⚠️ Extraction failed for %s: %v", att.Filename, err)
			continue
		}
		if customerName == "" {
			customerName = res.CustomerName
		}
		if len(res.Items) > 0 {
			parsed = append(parsed, res.Items...)
			break
		}
	}

	return parsed, customerName
}

// fail writes the terminal failed status, keeping whatever was parsed so far
// for forensics. Errors here are logged, not returned; the original pipeline
// error is the one the caller needs.
func (c *Coordinator) fail(ctx context.Context, importID string, cause error, snapshot *rawSnapshot) {
	if err := c.imports.Finish(ctx, importID, models.ImportStatusFailed, cause.Error(), nil, marshalSnapshot(snapshot)); err != nil {
		log.Printf("❌ Failed to record import failure for %s: %v", importID, err)
	}
}

func marshalSnapshot(s *rawSnapshot) datatypes.JSON {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
