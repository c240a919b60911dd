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

func TestOrderCreateListAndCancel(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	f := testutil.Seed(t, db, 10)
	user := testutil.NewUser(t, db, "an@example.com", testutil.RoleUserID, "x")
	repo := OrderRepository{DB: db}

	order := models.Order{Code: "BK-abcdef12", UserID: user.ID, TripID: f.Trip.ID, Subtotal: 900000, Total: 900000, Status: models.OrderPending}
	tickets := []models.Ticket{
		{TripID: f.Trip.ID, UserID: user.ID, SeatNumber: 4, PassengerName: "A", PassengerPhone: "0912345678", Price: 450000, Status: models.TicketBooked},
		{TripID: f.Trip.ID, UserID: user.ID, SeatNumber: 2, PassengerName: "B", PassengerPhone: "0912345679", Price: 450000, Status: models.TicketBooked},
	}
	require.NoError(t, repo.CreateWithTickets(ctx, &order, tickets))
	require.NotZero(t, order.ID)
	require.Len(t, order.Tickets, 2)

	seats, err := TripRepository{DB: db}.BookedSeats(ctx, f.Trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, seats)

	page, err := repo.ListByUser(ctx, user.ID, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Len(t, page.Items[0].Tickets, 2)
	assert.Equal(t, 2, page.Items[0].Tickets[0].SeatNumber)
	require.NotNil(t, page.Items[0].Trip)

	first := order.Tickets[0].ID
	require.NoError(t, repo.MarkTicketCancelled(ctx, first, 1000, time.Now()))
	err = repo.MarkTicketCancelled(ctx, first, 1000, time.Now())
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, repo.CancelOrderIfEmpty(ctx, order.ID))
	o, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)

	require.NoError(t, repo.MarkTicketCancelled(ctx, order.Tickets[1].ID, 0, time.Now()))
	require.NoError(t, repo.CancelOrderIfEmpty(ctx, order.ID))
	o, err = repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, o.Status)

	detail, err := repo.TicketDetail(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, models.TicketCancelled, detail.Status)
	assert.Equal(t, int64(1000), detail.RefundAmount)
	require.NotNil(t, detail.CancelledAt)
	require.NotNil(t, detail.Trip)
	require.NotNil(t, detail.Trip.BusRoute)
	assert.Equal(t, "Đà Nẵng", detail.Trip.BusRoute.ToCity.Name)
}

func TestCouponRedeemGuardsMaxUses(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	f := testutil.Seed(t, db, 10)
	user := testutil.NewUser(t, db, "an@example.com", testutil.RoleUserID, "x")
	now := time.Now().UTC()
	coupon := models.Coupon{Code: "once", DiscountType: models.DiscountFixed, DiscountValue: 1000, MaxUses: 1, ValidFrom: now, ValidTo: now.Add(time.Hour)}
	require.NoError(t, db.Create(&coupon).Error)

	repo := CouponUsageRepository{DB: db}
	found, err := repo.FindByCode(ctx, " ONCE ")
	require.NoError(t, err)
	assert.Equal(t, coupon.ID, found.ID)

	orders := OrderRepository{DB: db}
	o1 := models.Order{Code: "BK-00000001", UserID: user.ID, TripID: f.Trip.ID, Status: models.OrderPending}
	o2 := models.Order{Code: "BK-00000002", UserID: user.ID, TripID: f.Trip.ID, Status: models.OrderPending}
	require.NoError(t, orders.CreateWithTickets(ctx, &o1, nil))
	require.NoError(t, orders.CreateWithTickets(ctx, &o2, nil))

	require.NoError(t, repo.Redeem(ctx, coupon.ID, user.ID, o1.ID, now))
	err = repo.Redeem(ctx, coupon.ID, user.ID, o2.ID, now)
	assert.True(t, domain.IsConflict(err))

	var c models.Coupon
	require.NoError(t, db.First(&c, coupon.ID).Error)
	assert.Equal(t, 1, c.UsedCount)

	_, err = repo.FindByCode(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestTicketStatusIsClosedOnPatch(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	f := testutil.Seed(t, db, 10)
	user := testutil.NewUser(t, db, "an@example.com", testutil.RoleUserID, "x")

	order := models.Order{Code: "BK-closed01", UserID: user.ID, TripID: f.Trip.ID, Subtotal: 450000, Total: 450000}
	tickets := []models.Ticket{{TripID: f.Trip.ID, UserID: user.ID, SeatNumber: 1, PassengerName: "A", PassengerPhone: "0912345678", Price: 450000}}
	require.NoError(t, OrderRepository{DB: db}.CreateWithTickets(ctx, &order, tickets))
	assert.Equal(t, models.OrderPending, order.Status)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, models.TicketBooked, order.Tickets[0].Status)

	_, err := NewTicketRepository(db).Patch(ctx, order.Tickets[0].ID, []byte(`{"status":"lost"}`))
	assert.True(t, domain.IsValidation(err), "%v", err)

	got, err := NewTicketRepository(db).Patch(ctx, order.Tickets[0].ID, []byte(`{"passengerName":"B"}`))
	require.NoError(t, err)
	assert.Equal(t, models.TicketBooked, got.Status)
}
