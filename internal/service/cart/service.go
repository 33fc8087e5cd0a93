package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"storefront/internal/domain"
)

// Remote is the cart data access the session layer depends on.
type Remote interface {
	GetCart(ctx context.Context, cartID, countryCode string) (*domain.Cart, error)
	CreateCart(ctx context.Context, merchandiseID string, quantity int, countryCode string) (*domain.Cart, error)
	AddToCart(ctx context.Context, cartID, merchandiseID string, quantity int, countryCode string) (*domain.Cart, error)
	UpdateCartLine(ctx context.Context, cartID, lineID string, quantity int, countryCode string) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, cartID string, lineIDs []string, countryCode string) (*domain.Cart, error)
	UpdateCartCountry(ctx context.Context, cartID, countryCode string) (*domain.Cart, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// ValidationError reports a request the session layer refuses before any
// remote call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type Service struct {
	remote Remote
	events eventPublisher
	logger *log.Logger

	mutations  metric.Int64Counter
	syncs      metric.Int64Counter
	recoveries metric.Int64Counter
}

// New builds the cart session service. events may be nil.
func New(remote Remote, events eventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	meter := otel.Meter("storefront/cart")
	mutations, _ := meter.Int64Counter("cart_mutations_total",
		metric.WithDescription("Cart mutations by operation and outcome"))
	syncs, _ := meter.Int64Counter("cart_country_sync_total",
		metric.WithDescription("Cart country reconciliation attempts by outcome"))
	recoveries, _ := meter.Int64Counter("cart_stale_recoveries_total",
		metric.WithDescription("Stale carts replaced by a new cart"))
	return &Service{
		remote:     remote,
		events:     events,
		logger:     logger,
		mutations:  mutations,
		syncs:      syncs,
		recoveries: recoveries,
	}
}

type AddInput struct {
	CartID        string
	MerchandiseID string
	Quantity      int
	Country       string
}

type UpdateInput struct {
	CartID   string
	LineID   string
	Quantity *int
	Country  string
}

type RemoveInput struct {
	CartID  string
	LineIDs []string
	Country string
}

// Result is a successful mutation. CartID is the identity the caller should
// persist; it differs from the input when a cart was created or recovered.
type Result struct {
	CartID    string
	Cart      *domain.Cart
	Created   bool
	Recovered bool
}

// SyncResult describes a best-effort country reconciliation.
type SyncResult struct {
	Attempted bool
	Updated   bool
	Err       error
}

// SyncCountry aligns the cart's buyer country with the visitor's country.
// Failures are returned in the result and never block the caller.
func (s *Service) SyncCountry(ctx context.Context, cartID, country string) SyncResult {
	country = strings.ToUpper(strings.TrimSpace(country))
	if cartID == "" || country == "" {
		return SyncResult{}
	}
	res := SyncResult{Attempted: true}
	cart, err := s.remote.GetCart(ctx, cartID, country)
	if err != nil {
		res.Err = err
		s.syncs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		return res
	}
	if cart == nil || cart.BuyerIdentity.CountryCode == "" || strings.EqualFold(cart.BuyerIdentity.CountryCode, country) {
		s.syncs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unchanged")))
		return res
	}
	if _, err := s.remote.UpdateCartCountry(ctx, cartID, country); err != nil {
		res.Err = err
		s.syncs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		return res
	}
	res.Updated = true
	s.syncs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "updated")))
	s.logger.Printf("cart service: synced country cart_id=%s country=%s from=%s", cartID, country, cart.BuyerIdentity.CountryCode)
	return res
}

func (s *Service) sync(ctx context.Context, cartID, country string) {
	if res := s.SyncCountry(ctx, cartID, country); res.Err != nil {
		s.logger.Printf("cart service: sync country cart_id=%s country=%s: %v", cartID, country, res.Err)
	}
}

// Get returns the current cart, or nil when there is none.
func (s *Service) Get(ctx context.Context, cartID, country string) (*domain.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, nil
	}
	return s.remote.GetCart(ctx, cartID, country)
}

// Add puts merchandise into the visitor's cart, creating one when needed. A
// cart the platform no longer knows is replaced by a new one exactly once.
func (s *Service) Add(ctx context.Context, in AddInput) (*Result, error) {
	merchandiseID := strings.TrimSpace(in.MerchandiseID)
	if merchandiseID == "" {
		return nil, &ValidationError{Message: "merchandiseId is required"}
	}
	if in.Quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be positive"}
	}

	cartID := strings.TrimSpace(in.CartID)
	if cartID == "" {
		return s.create(ctx, merchandiseID, in.Quantity, in.Country, domain.CartCreated)
	}

	s.sync(ctx, cartID, in.Country)

	cart, err := s.remote.AddToCart(ctx, cartID, merchandiseID, in.Quantity, in.Country)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Printf("cart service: stale cart_id=%s, creating a new cart", cartID)
		s.recoveries.Add(ctx, 1)
		res, err := s.create(ctx, merchandiseID, in.Quantity, in.Country, domain.CartRecovered)
		if res != nil {
			res.Recovered = true
		}
		return res, err
	}
	if err != nil {
		s.record(ctx, "add", err)
		return nil, err
	}
	s.record(ctx, "add", nil)
	s.publish(ctx, domain.CartEvent{
		Type:          domain.CartLinesAdded,
		CartID:        cart.ID,
		Country:       in.Country,
		MerchandiseID: merchandiseID,
	}, cart)
	return &Result{CartID: cart.ID, Cart: cart}, nil
}

func (s *Service) create(ctx context.Context, merchandiseID string, quantity int, country, eventType string) (*Result, error) {
	cart, err := s.remote.CreateCart(ctx, merchandiseID, quantity, country)
	if err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}
	s.record(ctx, "create", nil)
	s.publish(ctx, domain.CartEvent{
		Type:          eventType,
		CartID:        cart.ID,
		Country:       country,
		MerchandiseID: merchandiseID,
	}, cart)
	return &Result{CartID: cart.ID, Cart: cart, Created: true}, nil
}

// UpdateLine sets a line's quantity. Zero removes the line.
func (s *Service) UpdateLine(ctx context.Context, in UpdateInput) (*Result, error) {
	cartID := strings.TrimSpace(in.CartID)
	lineID := strings.TrimSpace(in.LineID)
	if cartID == "" || lineID == "" || in.Quantity == nil {
		return nil, &ValidationError{Message: "cartId, lineId and quantity are required"}
	}
	if *in.Quantity < 0 {
		return nil, &ValidationError{Message: "quantity must not be negative"}
	}

	s.sync(ctx, cartID, in.Country)

	var (
		cart *domain.Cart
		err  error
	)
	if *in.Quantity == 0 {
		cart, err = s.remote.RemoveFromCart(ctx, cartID, []string{lineID}, in.Country)
	} else {
		cart, err = s.remote.UpdateCartLine(ctx, cartID, lineID, *in.Quantity, in.Country)
	}
	s.record(ctx, "update", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.CartEvent{
		Type:    domain.CartLineUpdated,
		CartID:  cart.ID,
		Country: in.Country,
		LineIDs: []string{lineID},
	}, cart)
	return &Result{CartID: cart.ID, Cart: cart}, nil
}

// RemoveLines deletes lines from the cart. Ids the cart does not hold are
// left to the platform, which ignores them.
func (s *Service) RemoveLines(ctx context.Context, in RemoveInput) (*Result, error) {
	cartID := strings.TrimSpace(in.CartID)
	lineIDs := make([]string, 0, len(in.LineIDs))
	for _, id := range in.LineIDs {
		if id = strings.TrimSpace(id); id != "" {
			lineIDs = append(lineIDs, id)
		}
	}
	if cartID == "" || len(lineIDs) == 0 {
		return nil, &ValidationError{Message: "cartId and lineIds are required"}
	}

	s.sync(ctx, cartID, in.Country)

	cart, err := s.remote.RemoveFromCart(ctx, cartID, lineIDs, in.Country)
	s.record(ctx, "remove", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.CartEvent{
		Type:    domain.CartLinesRemoved,
		CartID:  cart.ID,
		Country: in.Country,
		LineIDs: lineIDs,
	}, cart)
	return &Result{CartID: cart.ID, Cart: cart}, nil
}

func (s *Service) record(ctx context.Context, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

func (s *Service) publish(ctx context.Context, ev domain.CartEvent, cart *domain.Cart) {
	if s.events == nil {
		return
	}
	ev.EventID = uuid.NewString()
	ev.OccurredAt = time.Now().UTC()
	if cart != nil {
		ev.TotalQuantity = cart.TotalQuantity
	}
	if err := s.events.Publish(ctx, ev.CartID, ev); err != nil {
		s.logger.Printf("cart service: publish %s cart_id=%s: %v", ev.Type, ev.CartID, err)
	}
}
