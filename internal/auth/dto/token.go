package dto

// UserSummary is the principal projection embedded in auth responses.
type UserSummary struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthResponse is the token bundle returned by register/login/refresh.
// When a step-up is required no tokens are present and the matching
// Requires* flag is set instead.
type AuthResponse struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	TokenType    string       `json:"token_type,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"` // milliseconds
	User         *UserSummary `json:"user,omitempty"`

	RequiresTwoFactor         bool `json:"requires_two_factor,omitempty"`
	RequiresEmailVerification bool `json:"requires_email_verification,omitempty"`
}
