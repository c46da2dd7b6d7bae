package helpers

// EnhancedClaims couples the token claims with the profile loaded from
// storage for the request.
type EnhancedClaims struct {
	*CustomClaims
	UserID string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

func (ec *EnhancedClaims) IsFutsalOwner() bool {
	return ec.Role == "futsal_owner"
}

func (ec *EnhancedClaims) HasRole(role string) bool {
	return ec.Role == role
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}
