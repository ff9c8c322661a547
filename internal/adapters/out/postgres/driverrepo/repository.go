package driverrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverDirectory implements ports.DriverDirectory on the drivers table.
type GormDriverDirectory struct {
	db *gorm.DB
}

var _ ports.DriverDirectory = (*GormDriverDirectory)(nil)

func NewGormDriverDirectory(db *gorm.DB) *GormDriverDirectory {
	return &GormDriverDirectory{db: db}
}

func (r *GormDriverDirectory) ListAvailable(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).Where("available = ?", true).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("driver %s: %w", dto.ID, err)
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

func (r *GormDriverDirectory) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Upsert inserts the driver or overwrites every column of an existing row.
func (r *GormDriverDirectory) Upsert(ctx context.Context, d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
