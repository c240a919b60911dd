package repositories

import (
	"context"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestCrudListFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cities := NewCityRepository(db)
	hn := models.City{Name: "Hà Nội", IsActive: true}
	require.NoError(t, cities.Create(ctx, &hn))
	hcm := models.City{Name: "Hồ Chí Minh", IsActive: true}
	require.NoError(t, cities.Create(ctx, &hcm))

	repo := NewLocationRepository(db)
	for i, name := range []string{"Bến xe Mỹ Đình", "Bến xe Giáp Bát", "Bến xe Nước Ngầm", "Bến xe Miền Đông"} {
		loc := models.Location{CityID: hn.ID, Name: name, IsActive: i != 2}
		if i == 3 {
			loc.CityID = hcm.ID
		}
		require.NoError(t, repo.Create(ctx, &loc))
	}

	page, err := repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.TotalItems)
	assert.Equal(t, 1, page.TotalPage)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, domain.DefaultPageSize, page.PageSize)
	require.NotNil(t, page.Items[0].City)

	page, err = repo.List(ctx, domain.ListFilter{IsActive: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bến xe Nước Ngầm", page.Items[0].Name)

	page, err = repo.List(ctx, domain.ListFilter{Search: "bến xe m"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)

	page, err = repo.List(ctx, domain.ListFilter{TypeOrCityID: "2"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bến xe Miền Đông", page.Items[0].Name)

	page, err = repo.List(ctx, domain.ListFilter{PageSize: 3, PageNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.TotalItems)
	assert.Equal(t, 2, page.TotalPage)
	assert.Len(t, page.Items, 1)

	page, err = repo.List(ctx, domain.ListFilter{PageNumber: 9})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestCrudPatchWritesOnlyPresentKeys(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewPointRepository(db)
	p := models.Point{LocationName: "Ngã tư Sở", Type: models.PointPickup, IsActive: true}
	require.NoError(t, repo.Create(ctx, &p))

	got, err := repo.Patch(ctx, p.ID, []byte(`{"locationName":"Ngã tư Vọng"}`))
	require.NoError(t, err)
	assert.Equal(t, "Ngã tư Vọng", got.LocationName)
	assert.True(t, got.IsActive)
	assert.Equal(t, models.PointPickup, got.Type)

	got, err = repo.Patch(ctx, p.ID, []byte(`{"isActive":false,"id":999}`))
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Ngã tư Vọng", got.LocationName)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, domain.IsNotFound(err))
}

func TestCrudPatchRunsModelHooks(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	f := testutil.Seed(t, db, 10)
	repo := NewTripCrudRepository(db)

	_, err := repo.Patch(ctx, f.Trip.ID, []byte(`{"arrivalTime":"2000-01-01T00:00:00Z"}`))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = repo.Patch(ctx, f.Trip.ID, []byte(`{"status":"flying"}`))
	assert.True(t, domain.IsValidation(err))

	_, err = repo.Patch(ctx, f.Trip.ID, []byte(`{"totalSeats":5}`))
	assert.True(t, domain.IsValidation(err))
	var stored models.Trip
	require.NoError(t, db.First(&stored, f.Trip.ID).Error)
	assert.Equal(t, 10, stored.TotalSeats)
	assert.Equal(t, 10, stored.AvailableSeats)

	got, err := repo.Patch(ctx, f.Trip.ID, []byte(`{"price":500000}`))
	require.NoError(t, err)
	assert.Equal(t, int64(500000), got.Price)
	require.NotNil(t, got.BusRoute)
	require.NotNil(t, got.BusRoute.FromCity)
}

func TestCrudPatchRejectsMalformedBody(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCityRepository(db)
	c := models.City{Name: "Huế", IsActive: true}
	require.NoError(t, repo.Create(ctx, &c))

	_, err := repo.Patch(ctx, c.ID, []byte(`[1,2]`))
	assert.True(t, domain.IsValidation(err))

	_, err = repo.Patch(ctx, 4242, []byte(`{"name":"x"}`))
	assert.True(t, domain.IsNotFound(err))
}

func TestCrudCreateDuplicateIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(db)
	now := time.Now().UTC()
	c := models.Coupon{Code: "HE2030", DiscountType: models.DiscountFixed, DiscountValue: 50000, MaxUses: 10, ValidFrom: now, ValidTo: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, &c))
	assert.Equal(t, models.CouponActive, c.Status)

	dup := c
	err := repo.Create(ctx, &dup)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "got %v", err)
}

func TestCrudCreateIgnoresClientID(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCityRepository(db)
	c := models.City{ID: 77, Name: "Vinh", IsActive: true}
	require.NoError(t, repo.Create(ctx, &c))
	assert.NotEqual(t, uint(77), c.ID)
}

func TestCrudDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	f := testutil.Seed(t, db, 10)

	err := NewCityRepository(db).Delete(ctx, 4242)
	assert.True(t, domain.IsNotFound(err))

	// deleting the company cascades to its routes and trips
	require.NoError(t, NewBusCompanyRepository(db).Delete(ctx, f.Company.ID))
	_, err = NewTripCrudRepository(db).GetByID(ctx, f.Trip.ID)
	assert.True(t, domain.IsNotFound(err))

	// cities are still referenced by nothing now
	require.NoError(t, NewCityRepository(db).Delete(ctx, f.From.ID))
}

func TestCouponActiveFilterUsesStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(db)
	now := time.Now().UTC()
	for _, st := range []models.CouponStatus{models.CouponActive, models.CouponInactive, models.CouponExpired} {
		c := models.Coupon{Code: "C-" + string(st), DiscountType: models.DiscountPercentage, DiscountValue: 10, MaxUses: 1, ValidFrom: now, ValidTo: now, Status: st}
		require.NoError(t, repo.Create(ctx, &c))
	}
	page, err := repo.List(ctx, domain.ListFilter{IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)

	page, err = repo.List(ctx, domain.ListFilter{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
}
