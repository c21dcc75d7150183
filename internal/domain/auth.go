package domain

// TokenKind differentiates access vs refresh tokens via the "type" claim.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Session is the request-scoped identity reconstructed from a verified
// access token plus a store lookup. It lives no longer than the request.
type Session struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	RoleID   int    `json:"role_id"`
	RoleName string `json:"role_name"`
}

// TokenPair bundles the access and refresh tokens issued together at
// registration and login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
