package api

import (
	stdhttp "net/http"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is what the router needs from main.
type Deps struct {
	DB       *gorm.DB
	Tokens   *services.TokenManager
	Location *time.Location
	Now      func() time.Time
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.LogError("", "http", "trusted_proxies", err)
	}

	r.NoRoute(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusNotFound, "route_not_found", "Không tìm thấy đường dẫn", gin.H{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := &h.Handler{DB: deps.DB, Tokens: deps.Tokens, Location: deps.Location, Now: deps.Now}

	auth := middleware.Auth(deps.Tokens)
	staff := []gin.HandlerFunc{auth, middleware.RequireRoles(domain.RoleAdmin, domain.RoleCompany)}
	admin := []gin.HandlerFunc{auth, middleware.RequireRoles(domain.RoleAdmin)}
	var public []gin.HandlerFunc

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/register", hd.Register)
		authGroup.POST("/login", middleware.RateLimit(env.LoginRatePerMinute, env.LoginRateBurst), hd.Login)
		authGroup.GET("/me", auth, hd.Me)
		authGroup.PATCH("/profile", auth, hd.UpdateProfile)
		authGroup.PATCH("/profile/avatar", auth, hd.UpdateAvatar)
		authGroup.PATCH("/profile/password", auth, hd.ChangePassword)

		// Home
		home := api.Group("/home")
		home.GET("/featured-routes", hd.FeaturedRoutes)
		home.GET("/active-coupons", hd.ActiveCoupons)
		home.GET("/featured-reviews", hd.FeaturedReviews)

		// Trips: search, detail and seat map are customer facing; the rest
		// is generic back-office CRUD.
		trips := h.NewResource(hd, repositories.NewTripCrudRepository)
		api.POST("/trips/search", hd.SearchTrips)
		api.GET("/trips/seats/:id", hd.TripSeats)
		api.GET("/trips", trips.List)
		api.GET("/trips/:id", hd.TripDetail)
		mountWrites(api, "/trips", staff, trips.Create, trips.Update, trips.Delete)

		// Orders & tickets
		api.POST("/orders/checkout", auth, hd.Checkout)
		api.GET("/orders/mine", auth, hd.MyOrders)
		api.GET("/tickets/:id/e-ticket", auth, hd.TicketPDF)
		api.POST("/tickets/:id/cancel", auth, hd.CancelTicket)
		h.NewResource(hd, repositories.NewTicketRepository).Mount(api, "/tickets", staff, staff)

		api.POST("/coupons/validate", hd.ValidateCoupon)
		h.NewResource(hd, repositories.NewCouponRepository).OwnedBy("bus_company_id", "companyId").Mount(api, "/coupons", staff, staff)

		// Catalog
		h.NewResource(hd, repositories.NewCityRepository).Mount(api, "/cities", public, admin)
		h.NewResource(hd, repositories.NewLocationRepository).Mount(api, "/locations", public, staff)
		h.NewResource(hd, repositories.NewPointRepository).Mount(api, "/points", public, staff)
		h.NewResource(hd, repositories.NewBusCompanyRepository).Mount(api, "/bus-companies", public, admin)
		h.NewResource(hd, repositories.NewTypeBusRepository).OwnedBy("bus_company_id", "busCompanyId").Mount(api, "/type-buses", public, staff)
		h.NewResource(hd, repositories.NewBusRepository).OwnedBy("bus_company_id", "companyId").Mount(api, "/buses", public, staff)
		h.NewResource(hd, repositories.NewBusRouteRepository).OwnedBy("bus_company_id", "companyId").Mount(api, "/bus-routes", public, staff)
		h.NewResource(hd, repositories.NewTripPointRepository).Mount(api, "/trip-points", public, staff)
		h.NewResource(hd, repositories.NewCompanyPolicyRepository).OwnedBy("bus_company_id", "companyId").Mount(api, "/company-policies", public, staff)
		h.NewResource(hd, repositories.NewCancellationRuleRepository).OwnedBy("bus_company_id", "companyId").Mount(api, "/cancellation-rules", public, staff)
		h.NewResource(hd, repositories.NewStaffRepository).OwnedBy("bus_company_id", "companyId").Mount(api, "/staff", staff, staff)

		// Reviews: customers post their own, staff moderate.
		reviews := h.NewResource(hd, repositories.NewReviewRepository).OwnedBy("bus_company_id", "companyId")
		api.GET("/reviews", reviews.List)
		api.GET("/reviews/:id", reviews.Get)
		api.POST("/reviews", auth, hd.CreateReview)
		mountWrites(api, "/reviews", staff, nil, reviews.Update, reviews.Delete)

		// Users: creation hashes a password so it has its own handler.
		users := h.NewResource(hd, repositories.NewUserCrudRepository)
		api.GET("/users", chain(admin, users.List)...)
		api.GET("/users/:id", chain(admin, users.Get)...)
		api.POST("/users", chain(admin, hd.CreateUser)...)
		mountWrites(api, "/users", admin, nil, users.Update, users.Delete)

		// Partners: anyone may apply, only admins review.
		partners := h.NewResource(hd, repositories.NewPartnerRepository)
		api.POST("/partners", hd.RegisterPartner)
		api.GET("/partners", chain(admin, partners.List)...)
		api.GET("/partners/:id", chain(admin, partners.Get)...)
		mountWrites(api, "/partners", admin, nil, partners.Update, partners.Delete)

		// Company area
		company := api.Group("/company", middleware.OptionalAuth(deps.Tokens), middleware.CompanyArea())
		company.GET("/profile", hd.CompanyProfile)
		company.GET("/policies", hd.CompanyPolicies)
		company.GET("/cancellation-rules", hd.CompanyCancellationRules)
	}

	h.SetRouter(r)
	return r
}

func chain(mw []gin.HandlerFunc, hf gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), hf)
}

// mountWrites registers create (when given), PUT, PATCH and DELETE.
func mountWrites(g *gin.RouterGroup, path string, mw []gin.HandlerFunc, create, update, del gin.HandlerFunc) {
	if create != nil {
		g.POST(path, chain(mw, create)...)
	}
	g.PUT(path+"/:id", chain(mw, update)...)
	g.PATCH(path+"/:id", chain(mw, update)...)
	g.DELETE(path+"/:id", chain(mw, del)...)
}
