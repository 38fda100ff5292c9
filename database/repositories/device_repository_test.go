package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/platefork/recipe-core/model"
	"github.com/platefork/recipe-core/pkg/testsupport"
)

func TestDeviceRepository_RegisterAndList(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewDeviceRepository(db)
	user := testsupport.SeedUser(t, db, "avery")
	ctx := context.Background()

	device := &model.RegisteredDevice{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		DeviceName: "phone",
		PushToken:  "tok-1",
	}
	if err := repo.Register(ctx, device); err != nil {
		t.Fatalf("failed to register device: %v", err)
	}

	devices, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(devices) != 1 || devices[0].DeviceName != "phone" {
		t.Errorf("unexpected device list: %+v", devices)
	}
}

func TestDeviceRepository_DuplicateName(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewDeviceRepository(db)
	user := testsupport.SeedUser(t, db, "avery")
	ctx := context.Background()

	first := &model.RegisteredDevice{ID: uuid.NewString(), UserID: user.ID, DeviceName: "phone", PushToken: "tok-1"}
	if err := repo.Register(ctx, first); err != nil {
		t.Fatalf("failed to register device: %v", err)
	}

	dup := &model.RegisteredDevice{ID: uuid.NewString(), UserID: user.ID, DeviceName: "phone", PushToken: "tok-2"}
	if err := repo.Register(ctx, dup); !errors.Is(err, model.ErrDuplicateDevice) {
		t.Errorf("expected ErrDuplicateDevice but got: %v", err)
	}

	// The same device name under another user is fine.
	blake := testsupport.SeedUser(t, db, "blake")
	other := &model.RegisteredDevice{ID: uuid.NewString(), UserID: blake.ID, DeviceName: "phone", PushToken: "tok-3"}
	if err := repo.Register(ctx, other); err != nil {
		t.Errorf("expected cross-user registration to succeed but got: %v", err)
	}
}

func TestDeviceRepository_Remove(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewDeviceRepository(db)
	user := testsupport.SeedUser(t, db, "avery")
	ctx := context.Background()

	device := &model.RegisteredDevice{ID: uuid.NewString(), UserID: user.ID, DeviceName: "phone", PushToken: "tok-1"}
	if err := repo.Register(ctx, device); err != nil {
		t.Fatalf("failed to register device: %v", err)
	}

	if err := repo.Remove(ctx, user.ID, "phone"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Remove(ctx, user.ID, "phone"); !errors.Is(err, model.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound but got: %v", err)
	}
}
