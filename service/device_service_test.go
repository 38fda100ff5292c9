package service

import (
	"context"
	"errors"
	"testing"

	"github.com/platefork/recipe-core/database/repositories"
	"github.com/platefork/recipe-core/model"
	"github.com/platefork/recipe-core/pkg/testsupport"
)

func TestDeviceService_RegisterListRemove(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewDeviceService(repositories.NewDeviceRepository(db))
	user := testsupport.SeedUser(t, db, "avery")
	ctx := context.Background()

	device, err := svc.Register(ctx, user.ID, model.DeviceInput{DeviceName: "phone", PushToken: "tok-1"})
	if err != nil {
		t.Fatalf("failed to register device: %v", err)
	}
	if device.ID == "" {
		t.Error("expected a generated device id")
	}

	devices, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("expected 1 device but got %d", len(devices))
	}

	if err := svc.Remove(ctx, user.ID, "phone"); err != nil {
		t.Fatalf("failed to remove device: %v", err)
	}
	if err := svc.Remove(ctx, user.ID, "phone"); !errors.Is(err, model.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound but got: %v", err)
	}
}

func TestDeviceService_DuplicateRegistrationConflicts(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewDeviceService(repositories.NewDeviceRepository(db))
	user := testsupport.SeedUser(t, db, "avery")
	ctx := context.Background()

	if _, err := svc.Register(ctx, user.ID, model.DeviceInput{DeviceName: "phone", PushToken: "tok-1"}); err != nil {
		t.Fatalf("failed to register device: %v", err)
	}
	_, err := svc.Register(ctx, user.ID, model.DeviceInput{DeviceName: "phone", PushToken: "tok-2"})
	if !errors.Is(err, model.ErrDuplicateDevice) {
		t.Errorf("expected ErrDuplicateDevice but got: %v", err)
	}
}

func TestDeviceService_Validation(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewDeviceService(repositories.NewDeviceRepository(db))
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", model.DeviceInput{DeviceName: "phone", PushToken: "tok"}); !model.IsValidation(err) {
		t.Errorf("expected validation error for missing user but got: %v", err)
	}
	if _, err := svc.Register(ctx, "u1", model.DeviceInput{}); !model.IsValidation(err) {
		t.Errorf("expected validation error for empty input but got: %v", err)
	}
	if err := svc.Remove(ctx, "u1", ""); !model.IsValidation(err) {
		t.Errorf("expected validation error for missing device name but got: %v", err)
	}
}
