package auth

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest presents the current token pair for rotation.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RegisterRequest creates a user under a given role.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Confirmation string `json:"confirmation" validate:"required,eqfield=Password"`
	RoleID       string `json:"roleId" validate:"required,uuid4"`
}
