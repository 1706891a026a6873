package contextkeys

type contextKey string

const (
	StaffClaimsKey contextKey = "StaffClaims"
)
