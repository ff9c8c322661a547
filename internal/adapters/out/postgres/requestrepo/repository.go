package requestrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormRequestRepository implements ports.RequestRepository on PostgreSQL.
type GormRequestRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ ports.RequestRepository = (*GormRequestRepository)(nil)

// NewGormRequestRepository bounds every statement by timeout; zero disables the bound.
func NewGormRequestRepository(db *gorm.DB, timeout time.Duration) *GormRequestRepository {
	return &GormRequestRepository{db: db, timeout: timeout}
}

func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewConflictError("request", aggregate.ID(), "already exists")
		}
		return err
	}
	return nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRequestRepository) List(
	ctx context.Context,
	filter ports.RequestFilter,
) ([]*request.DeliveryRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&RequestDTO{})
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		q = q.Where("status IN ?", statuses)
	}
	if filter.DriverID != nil {
		q = q.Where("driver_id = ?", filter.DriverID.Bytes())
	}
	if !filter.CreatedBefore.IsZero() {
		q = q.Where("created_at < ?", filter.CreatedBefore.UTC())
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = ports.DefaultListLimit
	}

	var dtos []RequestDTO
	if err := q.Order("created_at, id").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*request.DeliveryRequest, 0, len(dtos))
	for _, dto := range dtos {
		agg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	return result, nil
}

// ConditionalUpdate issues exactly one statement:
//
//	UPDATE delivery_requests SET status = ?, driver_id = ?, updated_at = ?
//	WHERE id = ? AND status = ? AND driver_id IS NULL   -- or driver_id = ?
//
// PostgreSQL re-evaluates the WHERE clause after acquiring the row lock, so of several
// concurrent statements with the same precondition at most one affects a row.
func (r *GormRequestRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	expected request.State,
	patch ports.RequestPatch,
) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(expected.Status))
	if expected.DriverID == nil {
		q = q.Where("driver_id IS NULL")
	} else {
		q = q.Where("driver_id = ?", expected.DriverID.Bytes())
	}

	var driverID any = gorm.Expr("NULL")
	if patch.DriverID != nil {
		driverID = patch.DriverID.Bytes()
	}

	result := q.Updates(map[string]any{
		"status":     int(patch.Status),
		"driver_id":  driverID,
		"updated_at": patch.UpdatedAt.UTC(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormRequestRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
