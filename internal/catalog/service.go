package catalog

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/catalog-api/pkg/model"
)

// MaxPageSize is the largest page a single List call may return.
const MaxPageSize = 50

const productCreatedSubject = "evt.catalog.product_created.v1"

// Store defines the persistence operations the service depends on.
// Implementations must return ListProducts ordered ascending by creation
// time with the product ID as tie-break, so pagination stays stable.
type Store interface {
	InsertProduct(ctx context.Context, p model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, skip, take int) ([]model.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

// EventPublisher publishes canonical event envelopes. Optional — a nil
// publisher disables eventing.
type EventPublisher interface {
	PublishEnvelope(ctx context.Context, subject string, env *model.Envelope) error
}

// CreateParams carries an already-deserialized create request.
type CreateParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// Service is the business-logic authority for the product catalog. It is
// stateless; all durable state lives in the Store, so every method is safe
// to call concurrently.
type Service struct {
	store  Store
	pub    EventPublisher
	logger *zap.Logger
}

// NewService creates a catalog service. pub may be nil.
func NewService(store Store, pub EventPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, pub: pub, logger: logger}
}

// Create normalizes and validates the request, persists a new product and
// returns it. On success the returned ID is immediately usable for lookup.
// Store failures propagate unchanged.
func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Product, error) {
	name, err := normalizeName(params.Name)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(params.Price); err != nil {
		return nil, err
	}

	product := model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: normalizeDescription(params.Description),
		Price:       params.Price,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.InsertProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	s.publishCreated(ctx, product)

	return &product, nil
}

// GetByID returns the product with the given ID, or (nil, nil) when no
// record matches. Absence is not an error.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// List returns one page of products ordered by creation time ascending.
// page is 1-indexed; pageSize must be in [1, MaxPageSize].
func (s *Service) List(ctx context.Context, page, pageSize int) (*model.PagedResult, error) {
	if page < 1 || pageSize < 1 || pageSize > MaxPageSize {
		return nil, outOfRange("page must be at least 1 and pageSize must be between 1 and %d", MaxPageSize)
	}

	count, err := s.store.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	skip := (page - 1) * pageSize
	items, err := s.store.ListProducts(ctx, skip, pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Product{}
	}

	return &model.PagedResult{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: count,
		TotalPages: int(math.Ceil(float64(count) / float64(pageSize))),
	}, nil
}

// publishCreated emits a product_created event. Publishing is best-effort:
// the product is already durable, so failures are logged and swallowed.
func (s *Service) publishCreated(ctx context.Context, p model.Product) {
	if s.pub == nil {
		return
	}

	payload, err := json.Marshal(model.ProductCreatedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price.StringFixed(2),
		CreatedAt: p.CreatedAt,
	})
	if err != nil {
		s.logger.Error("catalog.event_marshal_failed", zap.Error(err))
		return
	}

	env := &model.Envelope{
		ID:            uuid.New(),
		CorrelationID: p.ID,
		Topic:         productCreatedSubject,
		EventType:     "product_created",
		Version:       "v1",
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}

	if err := s.pub.PublishEnvelope(ctx, productCreatedSubject, env); err != nil {
		s.logger.Error("catalog.event_publish_failed",
			zap.String("product_id", p.ID.String()),
			zap.Error(err))
	}
}
