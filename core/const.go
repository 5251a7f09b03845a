package core

const (
	RequesterIdCtxKey     = "lk-requesterId"
	RequesterClaimsCtxKey = "lk-requesterClaims"
)

// SessionCookieName is the cookie the gateway and browser clients present
// instead of an Authorization header.
const SessionCookieName = "lk_session"
