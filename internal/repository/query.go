package repository

import (
	"context"

	"github.com/blendsoftware/catalog/internal/model"

	"gorm.io/gorm"
)

// eachBatchSize bounds how many rows Each hydrates per round trip.
const eachBatchSize = 100

// Query is a lazy, restartable finder result. Construction records the
// condition only; every Count, All, or Each call re-issues the SQL, so a
// Query may be consumed repeatedly and each consumption observes current
// store state. Callers can layer further filtering or pagination without the
// repository committing to one fetch size.
type Query struct {
	db   *gorm.DB
	cond string
	args []any
}

func newQuery(db *gorm.DB, cond string, args ...any) *Query {
	return &Query{db: db, cond: cond, args: args}
}

func (q *Query) scope(ctx context.Context) *gorm.DB {
	return q.db.WithContext(ctx).Model(&model.Product{}).Where(q.cond, q.args...)
}

// Count re-issues the query and returns the number of matching rows.
func (q *Query) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.scope(ctx).Count(&n).Error; err != nil {
		return 0, model.NewPersistenceError("count", err)
	}
	return n, nil
}

// All re-issues the query and materializes every matching row.
func (q *Query) All(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := q.scope(ctx).Find(&products).Error; err != nil {
		return nil, model.NewPersistenceError("query", err)
	}
	return products, nil
}

// Each streams matching rows in batches, invoking fn per entity. A non-nil
// error from fn stops iteration and is returned to the caller unmodified.
func (q *Query) Each(ctx context.Context, fn func(*model.Product) error) error {
	var batch []model.Product
	var callerErr error
	res := q.scope(ctx).FindInBatches(&batch, eachBatchSize, func(_ *gorm.DB, _ int) error {
		for i := range batch {
			if err := fn(&batch[i]); err != nil {
				callerErr = err
				return err
			}
		}
		return nil
	})
	if callerErr != nil {
		return callerErr
	}
	if res.Error != nil {
		return model.NewPersistenceError("query", res.Error)
	}
	return nil
}
