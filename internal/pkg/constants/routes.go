package constants

// Static route constants
const (
	PublicRoute    = "/"
	ShareRoute     = "/s"
	GetMatchedPath = "/get-matched"
)
