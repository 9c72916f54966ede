package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Fikiresilase/mini-finance/internal/ledger"
	"github.com/Fikiresilase/mini-finance/internal/store"
)

// SalesRecorder captures the ledger side of a sell operation.
type SalesRecorder interface {
	Append(ctx context.Context, sale ledger.Sale) error
}

// SoldHook observes successful sell operations. Hook failures are logged and
// never fail the sale.
type SoldHook interface {
	HandleItemSold(ctx context.Context, sale ledger.Sale) error
}

// Service owns the item and category collections. Sell is the only operation
// that touches both the items collection and the sales ledger; the two writes
// share no transaction boundary.
type Service struct {
	store    *store.Store
	recorder SalesRecorder
	logger   *slog.Logger
	validate *validator.Validate
	hooks    []SoldHook
	now      func() time.Time
	newID    func() string
}

// NewService builds the catalog service.
func NewService(st *store.Store, recorder SalesRecorder, logger *slog.Logger, hooks ...SoldHook) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		recorder: recorder,
		logger:   logger,
		validate: validator.New(),
		hooks:    hooks,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithIDFunc overrides item ID generation for testing.
func (s *Service) WithIDFunc(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

// AddItem validates the request, assigns a fresh ID, appends the item and
// persists the full collection. An unseen category is registered implicitly.
func (s *Service) AddItem(ctx context.Context, req CreateItemRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, asValidationError(err)
	}

	item := Item{
		ID:            s.newID(),
		Name:          req.Name,
		OriginalPrice: req.OriginalPrice,
		SellingPrice:  req.SellingPrice,
		Stock:         req.Stock,
		Category:      req.Category,
		ImageURI:      req.ImageURI,
	}

	items := store.Load[Item](ctx, s.store, store.CollectionItems)
	items = append(items, item)
	if err := store.Save(ctx, s.store, store.CollectionItems, items); err != nil {
		return Item{}, fmt.Errorf("catalog: persist items: %w", err)
	}

	if _, _, err := s.AddCategory(ctx, req.Category); err != nil {
		s.logger.Warn("register item category", slog.String("category", req.Category), slog.Any("error", err))
	}

	return item, nil
}

// AddCategory appends {label, value: label} unless the label is empty or the
// value already exists (case-sensitive); both are silent no-ops. The added
// flag reports whether the collection changed.
func (s *Service) AddCategory(ctx context.Context, label string) (Category, bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Category{}, false, nil
	}

	categories := s.ListCategories(ctx)
	for _, cat := range categories {
		if cat.Value == label {
			return cat, false, nil
		}
	}

	category := Category{Label: label, Value: label}
	categories = append(categories, category)
	if err := store.Save(ctx, s.store, store.CollectionCategories, categories); err != nil {
		return Category{}, false, fmt.Errorf("catalog: persist categories: %w", err)
	}
	return category, true, nil
}

// ListCategories returns the persisted categories, seeding the defaults the
// first time the collection is found empty.
func (s *Service) ListCategories(ctx context.Context) []Category {
	categories := store.Load[Category](ctx, s.store, store.CollectionCategories)
	if len(categories) > 0 {
		return categories
	}
	seeded := make([]Category, len(DefaultCategories))
	copy(seeded, DefaultCategories)
	if err := store.Save(ctx, s.store, store.CollectionCategories, seeded); err != nil {
		s.logger.Warn("seed default categories", slog.Any("error", err))
	}
	return seeded
}

// ListItems returns items in insertion order, optionally restricted to one
// category and to items still in stock. An empty filter or CategoryAll
// matches every category.
func (s *Service) ListItems(ctx context.Context, filterCategory string, onlyInStock bool) []Item {
	items := store.Load[Item](ctx, s.store, store.CollectionItems)
	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if filterCategory != "" && filterCategory != CategoryAll && item.Category != filterCategory {
			continue
		}
		if onlyInStock && item.Stock <= 0 {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// Sell decrements the item's stock by exactly one, persists the items
// collection, then records a frozen sale snapshot through the ledger. The two
// writes are independent; if the ledger append fails after the stock write
// succeeded, the inconsistency is reported to the caller and logged, not
// reconciled.
func (s *Service) Sell(ctx context.Context, itemID string) (ledger.Sale, error) {
	items := store.Load[Item](ctx, s.store, store.CollectionItems)
	idx := -1
	for i := range items {
		if items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ledger.Sale{}, ErrNotFound
	}
	if items[idx].Stock <= 0 {
		return ledger.Sale{}, ErrOutOfStock
	}

	items[idx].Stock--
	if err := store.Save(ctx, s.store, store.CollectionItems, items); err != nil {
		return ledger.Sale{}, fmt.Errorf("catalog: persist items: %w", err)
	}

	sale := ledger.Sale{
		ItemID:        items[idx].ID,
		Name:          items[idx].Name,
		Price:         items[idx].SellingPrice,
		OriginalPrice: items[idx].OriginalPrice,
		Category:      items[idx].Category,
		Timestamp:     s.now(),
	}
	if err := s.recorder.Append(ctx, sale); err != nil {
		s.logger.Error("sale append failed after stock decrement",
			slog.String("item_id", itemID), slog.Any("error", err))
		return ledger.Sale{}, fmt.Errorf("catalog: record sale: %w", err)
	}

	for _, hook := range s.hooks {
		if err := hook.HandleItemSold(ctx, sale); err != nil {
			s.logger.Warn("sold hook", slog.String("item_id", itemID), slog.Any("error", err))
		}
	}
	return sale, nil
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, verr := range verrs {
		fields[verr.Field()] = verr.Tag()
	}
	return &ValidationError{Fields: fields}
}
