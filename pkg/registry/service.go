package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vitalboard/platform/pkg/common/logger"
	"github.com/vitalboard/platform/pkg/common/models"
	"github.com/vitalboard/platform/pkg/normalizer"
	"github.com/vitalboard/platform/pkg/risk"
)

const serviceName = "risk-service"

// EventPublisher is satisfied by the kafka producer. Publishing is
// best-effort: a failed publish never rolls back a persisted mutation.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

// Service owns the record collection: every mutation is a read-modify-write
// of the whole serialized document against the store, so the collection is
// only ever observed in a pre- or post-operation state.
type Service struct {
	store    Store
	engine   *risk.Engine
	producer EventPublisher

	// Serializes mutating operations so concurrent appends and imports
	// never interleave their read-modify-write cycles. Readers see either
	// the pre- or post-state of an operation.
	writeMu sync.Mutex
}

func NewService(store Store, engine *risk.Engine, opts ...Option) *Service {
	svc := &Service{store: store, engine: engine}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

type Option func(*Service)

func WithPublisher(producer EventPublisher) Option {
	return func(s *Service) {
		s.producer = producer
	}
}

// AddEntry handles one manual submission: the strict validation gate first,
// then normalize, score, prepend, persist. A ValidationError leaves the
// stored collection untouched.
func (s *Service) AddEntry(ctx context.Context, data map[string]interface{}) (models.Record, error) {
	if err := normalizer.ValidateSubmission(data); err != nil {
		return models.Record{}, err
	}

	return s.appendRecord(ctx, data)
}

// IngestRecord appends one record arriving off the intake topic. Bulk data
// skips the form gate on purpose; it only gets the lenient normalization,
// exactly like an element of an imported document.
func (s *Service) IngestRecord(ctx context.Context, data map[string]interface{}) (models.Record, error) {
	return s.appendRecord(ctx, data)
}

func (s *Service) appendRecord(ctx context.Context, data map[string]interface{}) (models.Record, error) {
	rec := normalizer.Normalize(data)
	rec.Risk = s.engine.Score(rec)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	list, err := s.loadCollection(ctx)
	if err != nil {
		return models.Record{}, err
	}
	list = append([]models.Record{rec}, list...)

	if err := s.saveCollection(ctx, list); err != nil {
		return models.Record{}, err
	}

	s.publish(ctx, models.EventRecordScored, map[string]interface{}{
		"fullname": rec.Fullname,
		"risk":     rec.Risk,
		"created":  rec.Created,
	})

	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]models.Record, error) {
	return s.loadCollection(ctx)
}

func (s *Service) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	list, err := s.loadCollection(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	return Aggregate(list), nil
}

// Import replaces the whole collection with the records reconstructed from
// the supplied document. A ParseError aborts before any write. Returns the
// number of imported records.
func (s *Service) Import(ctx context.Context, document []byte) (int, error) {
	list, err := DecodeCollection(document, s.engine)
	if err != nil {
		return 0, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.saveCollection(ctx, list); err != nil {
		return 0, err
	}

	s.publish(ctx, models.EventCollectionImported, map[string]interface{}{
		"count": len(list),
	})

	return len(list), nil
}

// Export serializes the current collection as the canonical pretty-printed
// JSON document.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	list, err := s.loadCollection(ctx)
	if err != nil {
		return nil, err
	}
	return EncodeCollection(list)
}

// loadCollection reads the persisted document. Absent and unparsable both
// default to the empty collection; a store that cannot be reached is a real
// error and is surfaced.
func (s *Service) loadCollection(ctx context.Context) ([]models.Record, error) {
	document, present, err := s.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	if !present {
		return []models.Record{}, nil
	}

	var list []models.Record
	if err := json.Unmarshal(document, &list); err != nil {
		logger.Log.WithError(err).Warn("Stored collection unparsable, defaulting to empty")
		return []models.Record{}, nil
	}
	if list == nil {
		list = []models.Record{}
	}
	return list, nil
}

func (s *Service) saveCollection(ctx context.Context, list []models.Record) error {
	document, err := EncodeCollection(list)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := s.store.Write(ctx, document); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, serviceName, data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Error("failed to publish event")
	}
}
