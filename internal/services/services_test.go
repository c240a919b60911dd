package services

import (
	"testing"
	"time"

	"busbooking/internal/domain/models"
	"busbooking/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func newCoupon(t *testing.T, db *gorm.DB, c models.Coupon) models.Coupon {
	t.Helper()
	if c.ValidFrom.IsZero() {
		c.ValidFrom = time.Now().Add(-time.Hour)
	}
	if c.ValidTo.IsZero() {
		c.ValidTo = time.Now().Add(24 * time.Hour)
	}
	if c.DiscountType == "" {
		c.DiscountType = models.DiscountPercentage
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func newTripPoint(t *testing.T, db *gorm.DB, tripID uint, name string, typ models.PointType, at time.Time) models.Point {
	t.Helper()
	p := models.Point{LocationName: name, Type: typ, IsActive: true}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&models.TripPoint{TripID: tripID, PointID: p.ID, Time: at, IsActive: true}).Error)
	return p
}

// seeded bundles a migrated database with the standard fixture and a customer.
type seeded struct {
	db   *gorm.DB
	f    testutil.Fixture
	user models.User
}

func seed(t *testing.T, seats int) seeded {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, seats)
	u := testutil.NewUser(t, db, "khach@example.com", testutil.RoleUserID, hashPassword(t, "secret1"))
	return seeded{db: db, f: f, user: u}
}
