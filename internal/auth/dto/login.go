package dto

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TwoFactorLoginInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
