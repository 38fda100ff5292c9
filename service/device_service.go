package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/platefork/recipe-core/database/repositories"
	"github.com/platefork/recipe-core/model"
)

// DeviceService manages the push-notification device registry. Delivery is
// out of scope; this only stores tokens.
type DeviceService struct {
	devices repositories.DeviceRepository
}

func NewDeviceService(devices repositories.DeviceRepository) *DeviceService {
	return &DeviceService{devices: devices}
}

// Register stores a device token. Registering the same (user, device name)
// pair twice fails with a conflict.
func (s *DeviceService) Register(ctx context.Context, userID string, in model.DeviceInput) (*model.RegisteredDevice, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	device := &model.RegisteredDevice{
		ID:         uuid.NewString(),
		UserID:     userID,
		DeviceName: in.DeviceName,
		PushToken:  in.PushToken,
	}
	if err := s.devices.Register(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) List(ctx context.Context, userID string) ([]*model.RegisteredDevice, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id")
	}
	return s.devices.ListByUser(ctx, userID)
}

func (s *DeviceService) Remove(ctx context.Context, userID, deviceName string) error {
	var bad []string
	if userID == "" {
		bad = append(bad, "user_id")
	}
	if deviceName == "" {
		bad = append(bad, "device_name")
	}
	if len(bad) > 0 {
		return model.NewValidationError(bad...)
	}
	return s.devices.Remove(ctx, userID, deviceName)
}
