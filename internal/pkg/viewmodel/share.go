package viewmodel

import "github.com/pythh/hotmatch/app/models"

// SharePage carries everything the public share view template needs.
type SharePage struct {
	Title      string
	Summary    string
	ShareType  string
	Payload    *models.SharePayload
	CanComment bool
	ViewCount  int
	CreatedAt  string
	ExpiresAt  string
}

// ShareUnavailable renders the expired/revoked/unknown-link page. Revoked and
// expired links present identically so the page leaks nothing about which
// state the token is in.
type ShareUnavailable struct {
	Title   string
	Message string
}
