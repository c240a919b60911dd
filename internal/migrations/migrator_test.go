package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		(err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

func TestRegisteredSortedAndUnique(t *testing.T) {
	migs := Registered()
	require.Len(t, migs, 9)
	seen := map[string]bool{}
	for i, m := range migs {
		assert.False(t, seen[m.Version], "duplicate version %s", m.Version)
		seen[m.Version] = true
		if i > 0 {
			assert.Less(t, migs[i-1].Version, m.Version)
		}
		assert.NotNil(t, m.Up)
		assert.NotNil(t, m.Down)
	}
	assert.Equal(t, "create_core_tables", migs[0].Name)
	assert.Equal(t, "add_company_to_reviews", migs[len(migs)-1].Name)
}

func TestUpAppliesEverythingOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	m := NewMigrator(db)

	n, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	n, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	mg := db.Migrator()
	for _, table := range []string{
		"roles", "users", "cities", "locations", "bus_companies", "type_buses",
		"buses", "bus_routes", "trips", "points", "coupons", "orders", "tickets",
		"reviews", "staff", "partners", "company_policies", "cancellation_rules",
		"coupon_usages", "trip_points",
	} {
		assert.True(t, mg.HasTable(table), table)
	}
	assert.True(t, mg.HasColumn("locations", "is_active"))
	assert.True(t, mg.HasColumn("points", "is_active"))
	assert.False(t, mg.HasColumn("points", "trip_id"))
	assert.False(t, mg.HasColumn("points", "time"))
	assert.True(t, mg.HasColumn("type_buses", "bus_company_id"))
	assert.True(t, mg.HasColumn("reviews", "bus_company_id"))

	var roles []string
	require.NoError(t, db.Table("roles").Order("id").Pluck("name", &roles).Error)
	assert.Equal(t, []string{"user", "company", "admin"}, roles)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 9)
	for _, s := range status {
		assert.True(t, s.Applied, s.Version)
		assert.NotNil(t, s.AppliedAt)
	}
}

func TestDownRollsBackInReverse(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	m := NewMigrator(db)
	_, err := m.Up(ctx)
	require.NoError(t, err)

	ok, err := m.Down(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, db.Migrator().HasColumn("reviews", "bus_company_id"))

	for {
		ok, err := m.Down(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	assert.False(t, db.Migrator().HasTable("users"))
	assert.False(t, db.Migrator().HasTable("trip_points"))

	status, err := m.Status(ctx)
	require.NoError(t, err)
	for _, s := range status {
		assert.False(t, s.Applied, s.Version)
	}
}

func seedTrip(t *testing.T, db *gorm.DB) (tripID uint) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Exec(`INSERT INTO cities (id, name, is_active, created_at, updated_at) VALUES (1, 'Hà Nội', 1, ?, ?), (2, 'Đà Nẵng', 1, ?, ?)`, now, now, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO bus_companies (id, name, is_active, created_at, updated_at) VALUES (1, 'Nhà xe A', 1, ?, ?)`, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO type_buses (id, name, total_seats, created_at, updated_at) VALUES (1, 'Giường nằm', 40, ?, ?)`, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO buses (id, bus_company_id, type_bus_id, license_plate, is_active, created_at, updated_at) VALUES (1, 1, 1, '29B-12345', 1, ?, ?)`, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO bus_routes (id, bus_company_id, from_city_id, to_city_id, distance, duration_minutes, base_price, is_active, created_at, updated_at) VALUES (1, 1, 1, 2, 760, 900, 450000, 1, ?, ?)`, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO trips (id, bus_route_id, bus_id, departure_time, arrival_time, price, status, total_seats, available_seats, created_at, updated_at) VALUES (1, 1, 1, ?, ?, 450000, 'scheduled', 40, 40, ?, ?)`, now.Add(24*time.Hour), now.Add(39*time.Hour), now, now).Error)
	return 1
}

func TestCreateTripPointsCopiesLegacyPoints(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	all := Registered()
	before := &Migrator{db: db, migrations: all[:6]}
	_, err := before.Up(ctx)
	require.NoError(t, err)

	tripID := seedTrip(t, db)
	at := time.Date(2030, 1, 2, 6, 30, 0, 0, time.UTC)
	now := time.Now().UTC()
	require.NoError(t, db.Exec(`INSERT INTO points (id, trip_id, location_name, type, time, is_active, created_at, updated_at) VALUES (1, ?, 'Bến xe Mỹ Đình', 'pickup', ?, 1, ?, ?)`, tripID, at, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO points (id, location_name, type, is_active, created_at, updated_at) VALUES (2, 'Bến xe Trung tâm', 'dropoff', 1, ?, ?)`, now, now).Error)

	_, err = NewMigrator(db).Up(ctx)
	require.NoError(t, err)

	var links []v7TripPoint
	require.NoError(t, db.Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, tripID, links[0].TripID)
	assert.Equal(t, uint(1), links[0].PointID)
	assert.True(t, links[0].Time.Equal(at))

	var count int64
	require.NoError(t, db.Table("points").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestTripPointUniqueness(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := NewMigrator(db).Up(ctx)
	require.NoError(t, err)
	tripID := seedTrip(t, db)

	now := time.Now().UTC()
	require.NoError(t, db.Exec(`INSERT INTO points (id, location_name, type, is_active, created_at, updated_at) VALUES (1, 'Bến xe Mỹ Đình', 'pickup', 1, ?, ?)`, now, now).Error)
	at := time.Date(2030, 1, 2, 6, 30, 0, 0, time.UTC)
	link := v7TripPoint{TripID: tripID, PointID: 1, Time: at, IsActive: true}
	require.NoError(t, db.Omit("Trip", "Point").Create(&link).Error)

	dup := v7TripPoint{TripID: tripID, PointID: 1, Time: at, IsActive: true}
	err = db.Omit("Trip", "Point").Create(&dup).Error
	assert.True(t, isUniqueViolation(err), "got %v", err)

	other := v7TripPoint{TripID: tripID, PointID: 1, Time: at.Add(time.Hour), IsActive: true}
	require.NoError(t, db.Omit("Trip", "Point").Create(&other).Error)
}

func TestCouponUsageUniqueTriple(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := NewMigrator(db).Up(ctx)
	require.NoError(t, err)
	tripID := seedTrip(t, db)

	now := time.Now().UTC()
	require.NoError(t, db.Exec(`INSERT INTO users (id, full_name, email, phone, password_hash, role_id, is_active, created_at, updated_at) VALUES (1, 'Nguyễn An', 'an@example.com', '0912345678', 'x', 1, 1, ?, ?)`, now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO coupons (id, code, discount_type, discount_value, max_discount_value, max_uses, used_count, valid_from, valid_to, status, created_at, updated_at) VALUES (1, 'TET2030', 'percentage', 10, 0, 100, 0, ?, ?, 'active', ?, ?)`, now, now.Add(time.Hour), now, now).Error)
	require.NoError(t, db.Exec(`INSERT INTO orders (id, code, user_id, trip_id, subtotal, discount, total, status, created_at, updated_at) VALUES (1, 'BK-1', 1, ?, 100, 10, 90, 'pending', ?, ?)`, tripID, now, now).Error)

	usage := v5CouponUsage{UserID: 1, CouponID: 1, OrderID: 1, UsedAt: now, IsActive: true}
	require.NoError(t, db.Omit("User", "Coupon", "Order").Create(&usage).Error)

	dup := v5CouponUsage{UserID: 1, CouponID: 1, OrderID: 1, UsedAt: now, IsActive: true}
	err = db.Omit("User", "Coupon", "Order").Create(&dup).Error
	assert.True(t, isUniqueViolation(err), "got %v", err)

	// deleting the order cascades to its usage
	require.NoError(t, db.Exec(`DELETE FROM orders WHERE id = 1`).Error)
	var count int64
	require.NoError(t, db.Table("coupon_usages").Count(&count).Error)
	assert.Zero(t, count)
}
