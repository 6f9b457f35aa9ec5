package repository

import (
	"context"
	"errors"

	"github.com/blendsoftware/catalog/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog.
// Callers depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs and substitution of the storage
// engine behind the same contract.
//
// All operations are synchronous and blocking; the repository performs no
// internal locking, retries, or timeouts. Concurrent callers rely on the
// storage engine's own isolation. Errors propagate unmodified: a
// ValidationError for contract violations, a PersistenceError for store
// failures.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, p *model.Product) error
	Find(ctx context.Context, id int64) (*model.Product, bool, error)
	All(ctx context.Context) ([]model.Product, error)

	// Finders return lazy, restartable sequences: no SQL runs until the
	// Query is consumed, and each consumption re-issues it.
	FindByName(name string) *Query
	FindByAvailability(available bool) *Query
	FindByCategory(c model.Category) *Query
	FindByPrice(price decimal.Decimal) *Query

	// Unit runs fn against a transaction-bound repository: commit when fn
	// returns nil, rollback on error or panic. One unit of work, released
	// on every exit path.
	Unit(ctx context.Context, fn func(ProductRepository) error) error

	// Reset returns a repository on a fresh session, discarding any cached
	// statement or instance state carried over from a previous unit of work.
	Reset() ProductRepository
}

type gormProductRepo struct{ db *gorm.DB }

// NewProductRepository binds the catalog to an explicitly constructed store
// handle. The handle is injected, never ambient; infra.NewDatabase produces
// one with the schema already in place.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepo{db: db}
}

// Create inserts a row for a Product whose id is unset and assigns the
// store-generated id onto the instance. An already-assigned id is a
// ValidationError: identity is immutable once granted.
func (r *gormProductRepo) Create(ctx context.Context, p *model.Product) error {
	if p.ID != nil {
		return model.NewValidationError("create with assigned id %d", *p.ID)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return model.NewPersistenceError("create", err)
	}
	return nil
}

// Update overwrites the stored row's mutable columns with the instance's
// current values. It never inserts: a Product with no assigned id has no row
// to overwrite and is rejected up front.
func (r *gormProductRepo) Update(ctx context.Context, p *model.Product) error {
	if p.ID == nil {
		return model.NewValidationError("update without id")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", *p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"available":   p.Available,
			"category":    p.Category,
		}).Error
	if err != nil {
		return model.NewPersistenceError("update", err)
	}
	return nil
}

// Delete removes the row matching the instance's id. Deleting a row that is
// already gone is not an error, so calling Delete twice is safe.
func (r *gormProductRepo) Delete(ctx context.Context, p *model.Product) error {
	if p.ID == nil {
		return model.NewValidationError("delete without id")
	}
	if err := r.db.WithContext(ctx).Delete(&model.Product{}, *p.ID).Error; err != nil {
		return model.NewPersistenceError("delete", err)
	}
	return nil
}

// Find performs an exact lookup by id. A missing row is an explicit absent
// result, never an error.
func (r *gormProductRepo) Find(ctx context.Context, id int64) (*model.Product, bool, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, model.NewPersistenceError("find", err)
	}
	return &p, true, nil
}

// All returns every stored row hydrated as an entity. Order is unspecified.
func (r *gormProductRepo) All(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, model.NewPersistenceError("all", err)
	}
	return products, nil
}

// FindByName matches the name exactly, case-sensitively.
func (r *gormProductRepo) FindByName(name string) *Query {
	return newQuery(r.db, "name = ?", name)
}

func (r *gormProductRepo) FindByAvailability(available bool) *Query {
	return newQuery(r.db, "available = ?", available)
}

func (r *gormProductRepo) FindByCategory(c model.Category) *Query {
	return newQuery(r.db, "category = ?", c)
}

// FindByPrice matches on exact decimal equality. The caller's value is bound
// as a decimal so the store compares exact numerics; it is never coerced
// through a binary float on the way in.
func (r *gormProductRepo) FindByPrice(price decimal.Decimal) *Query {
	return newQuery(r.db, "price = ?", price)
}

func (r *gormProductRepo) Unit(ctx context.Context, fn func(ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductRepo{db: tx})
	})
}

func (r *gormProductRepo) Reset() ProductRepository {
	return &gormProductRepo{db: r.db.Session(&gorm.Session{NewDB: true})}
}
