package models

// Token pair issued by the auth service on login or refresh
// ExpiresIn is the access token lifetime in seconds
type TokenPair struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenTypeBearer is the only token type the service issues
const TokenTypeBearer = "Bearer"
