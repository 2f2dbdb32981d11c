package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	AvatarURL *string `json:"avatar_url"`
	Theme     *string `json:"theme"  validate:"omitempty,oneof=light dark"`
	Locale    *string `json:"locale" validate:"omitempty,min=2,max=10"`
}

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Role     string `json:"role"      validate:"required,oneof=admin vendedor contabilidad tester"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Role     *string `json:"role"      validate:"omitempty,oneof=admin vendedor contabilidad tester"`
	Password *string `json:"password"  validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProfileResponse struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	IsTestUser bool    `json:"is_test_user"`
	FullName   string  `json:"full_name"`
	AvatarURL  *string `json:"avatar_url"`
	Theme      string  `json:"theme"`
	Locale     string  `json:"locale"`
	// DemoTier is empty for non-demo identities.
	DemoTier string `json:"demo_tier,omitempty"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         ProfileResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}
