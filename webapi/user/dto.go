package user

// UpdateUserRequest renames a user or changes their email.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest changes the caller's password.
type ResetPasswordRequest struct {
	OldPassword  string `json:"oldPassword" validate:"required"`
	NewPassword  string `json:"newPassword" validate:"required,min=8,max=72"`
	Confirmation string `json:"confirmation" validate:"required,eqfield=NewPassword"`
}
