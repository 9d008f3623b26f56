package model

// TokenPair is the access/refresh pair returned by signup, signin and
// refresh. The refresh token value is also persisted onto the user row.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
