package mailbox

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jyelen1110/alfies-server/internal/config"
	"github.com/jyelen1110/alfies-server/internal/ingest"
)

// Ingestor runs the order ingestion pipeline for one message
type Ingestor interface {
	Ingest(ctx context.Context, msg ingest.InboundMessage) (*ingest.Result, error)
}

// fetchBatchSize caps how many unread messages one poll cycle pulls
const fetchBatchSize = 25

// Service polls the configured mailbox for unread order emails and feeds
// them through the ingestion pipeline.
type Service struct {
	fetcher  *Fetcher
	filter   *ProcessedFilter
	pacer    *Pacer
	ingestor Ingestor
	cfg      config.MailboxConfig
	stop     chan struct{}
}

// NewService creates a mailbox polling service
func NewService(fetcher *Fetcher, filter *ProcessedFilter, ingestor Ingestor, cfg config.MailboxConfig) *Service {
	return &Service{
		fetcher:  fetcher,
		filter:   filter,
		pacer:    NewPacer(cfg.MessagesPerMin),
		ingestor: ingestor,
		cfg:      cfg,
		stop:     make(chan struct{}),
	}
}

// Start begins the background polling loop
func (s *Service) Start() {
	if !s.cfg.Enabled || s.cfg.Address == "" {
		log.Println("Mailbox polling disabled: MAILBOX_ENABLED or MAILBOX_ADDRESS not set")
		return
	}

	go func() {
		log.Printf("📬 Mailbox poller started for %s", s.cfg.Address)

		// Initial poll delay so startup migrations settle first
		time.Sleep(5 * time.Second)
		s.pollOnce()

		interval := time.Duration(s.cfg.PollMinutes) * time.Minute
		if s.cfg.PollMinutes <= 0 {
			interval = 5 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.pollOnce()
			case <-s.stop:
				log.Println("🛑 Mailbox poller stopped")
				return
			}
		}
	}()
}

// Stop halts the polling loop
func (s *Service) Stop() {
	close(s.stop)
}

// pollOnce fetches unread messages and runs each through the pipeline.
// Individual message failures are logged and do not abort the cycle.
func (s *Service) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	messages, err := s.fetcher.FetchUnread(ctx, s.cfg.TenantID, fetchBatchSize)
	if err != nil {
		log.Printf("❌ Mailbox: fetch failed: %v", err)
		return
	}
	if len(messages) == 0 {
		return
	}
	log.Printf("📬 Mailbox: %d unread message(s)", len(messages))

	for providerID, msg := range messages {
		select {
		case <-s.stop:
			return
		default:
		}
		s.processMessage(ctx, providerID, msg)
	}
}

func (s *Service) processMessage(ctx context.Context, providerID string, msg ingest.InboundMessage) {
	isNew, err := s.filter.IsNew(ctx, msg.MessageID)
	if err != nil {
		// Redis down: the database claim still dedupes, keep going
		log.Printf("⚠️ Mailbox: dedup check failed for %s: %v", msg.MessageID, err)
	} else if !isNew {
		if err := s.fetcher.MarkRead(ctx, providerID); err != nil {
			log.Printf("⚠️ Mailbox: failed to mark %s read: %v", providerID, err)
		}
		return
	}

	if err := s.pacer.Wait(ctx); err != nil {
		// Shutting down before dispatch: release the dedup mark so the
		// next cycle picks the message up again
		s.filter.Forget(context.Background(), msg.MessageID)
		return
	}

	result, err := s.ingestor.Ingest(ctx, msg)
	switch {
	case errors.Is(err, ingest.ErrDuplicateMessage):
		// Already claimed by a concurrent run; just mark it read
	case err != nil:
		log.Printf("❌ Mailbox: ingestion failed for %s (%s): %v", msg.MessageID, msg.Subject, err)
		// The failure is recorded as an import for review; the message
		// is still marked read so the cycle does not loop on it
	default:
		log.Printf("✅ Mailbox: order %s created from %s (%d items)",
			result.OrderID, msg.Sender, result.ItemCount)
	}

	if err := s.fetcher.MarkRead(ctx, providerID); err != nil {
		log.Printf("⚠️ Mailbox: failed to mark %s read: %v", providerID, err)
	}
}
