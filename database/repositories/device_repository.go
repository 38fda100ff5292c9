package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/platefork/recipe-core/model"
)

// DeviceRepository stores push-notification targets, one per
// (user, device name) pair.
type DeviceRepository interface {
	Register(ctx context.Context, device *model.RegisteredDevice) error
	ListByUser(ctx context.Context, userID string) ([]*model.RegisteredDevice, error)
	Remove(ctx context.Context, userID, deviceName string) error
}

type deviceRepository struct {
	db *bun.DB
}

func NewDeviceRepository(db *bun.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Register(ctx context.Context, device *model.RegisteredDevice) error {
	device.CreatedAt = time.Now()
	res, err := r.db.NewInsert().
		Model(device).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return &model.StoreError{Op: "device register", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrDuplicateDevice
	}
	return nil
}

func (r *deviceRepository) ListByUser(ctx context.Context, userID string) ([]*model.RegisteredDevice, error) {
	var devices []*model.RegisteredDevice
	err := r.db.NewSelect().
		Model(&devices).
		Where("dev.user_id = ?", userID).
		Order("dev.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, &model.StoreError{Op: "device list", Err: err}
	}
	return devices, nil
}

func (r *deviceRepository) Remove(ctx context.Context, userID, deviceName string) error {
	res, err := r.db.NewDelete().
		Model((*model.RegisteredDevice)(nil)).
		Where("user_id = ? AND device_name = ?", userID, deviceName).
		Exec(ctx)
	if err != nil {
		return &model.StoreError{Op: "device remove", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrDeviceNotFound
	}
	return nil
}
