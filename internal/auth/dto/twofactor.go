package dto

type TwoFactorSetupOutput struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

type TwoFactorEnableInput struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}
