package validation

// SignIn is the login form.
type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignUp is the registration form.
type SignUp struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,vnphone"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type UpdateProfile struct {
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Phone    string `json:"phone" validate:"required,vnphone"`
}

type UpdateAvatar struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url,max=512"`
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// PartnerRegistration is the public "become a partner" form.
type PartnerRegistration struct {
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Company  string `json:"company" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,vnphone"`
	Message  string `json:"message" validate:"max=1000"`
}

// AdminCreateUser is the back-office form for accounts with a chosen role.
type AdminCreateUser struct {
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,vnphone"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=user company admin"`
}

type Passenger struct {
	SeatNumber int    `json:"seatNumber" validate:"required,gte=1"`
	FullName   string `json:"fullName" validate:"required,min=2,max=50"`
	Phone      string `json:"phone" validate:"required,vnphone"`
}

type Checkout struct {
	TripID         uint        `json:"tripId" validate:"required"`
	Passengers     []Passenger `json:"passengers" validate:"required,min=1,max=10,dive"`
	PickupPointID  *uint       `json:"pickupPointId"`
	DropoffPointID *uint       `json:"dropoffPointId"`
	CouponCode     string      `json:"couponCode" validate:"omitempty,max=50"`
}

type Review struct {
	TripID      uint   `json:"tripId" validate:"required"`
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	CommentText string `json:"commentText" validate:"max=1000"`
}

type CouponCheck struct {
	Code   string `json:"code" validate:"required,max=50"`
	TripID uint   `json:"tripId" validate:"required"`
	Seats  int    `json:"seats" validate:"required,gte=1"`
}

type TripSearch struct {
	FromCityID    uint   `json:"fromCityId" validate:"required"`
	ToCityID      uint   `json:"toCityId" validate:"required,nefield=FromCityID"`
	DepartureDate string `json:"departureDate" validate:"required,datetime=2006-01-02"`
	Seats         int    `json:"seats" validate:"omitempty,gte=1"`
	PageSize      int    `json:"pageSize" validate:"omitempty,gte=1"`
	PageNumber    int    `json:"pageNumber" validate:"omitempty,gte=1"`
}
