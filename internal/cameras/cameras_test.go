package cameras_test

import (
	"context"
	"testing"

	"github.com/parksense/parksense-backend/internal/cameras"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newService(t *testing.T) *cameras.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Camera{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return cameras.NewService(db)
}

func TestCreateDefaultsStatusOffline(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, cameras.CreateInput{ZoneID: "zone-1", Name: "gate-cam"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != "offline" {
		t.Fatalf("got status %q, want offline", created.Status)
	}

	explicit, err := svc.Create(ctx, cameras.CreateInput{ZoneID: "zone-1", Name: "lot-cam", Status: "online"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if explicit.Status != "online" {
		t.Fatalf("got status %q, want online", explicit.Status)
	}
}

func TestListFiltersByZone(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, zone := range []string{"zone-1", "zone-1", "zone-2"} {
		if _, err := svc.Create(ctx, cameras.CreateInput{ZoneID: zone, Name: "cam"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := svc.List(ctx, resource.ListQuery{Filter: map[string]string{"zone_id": "zone-1"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("got total %d, want 2", page.Total)
	}
}
