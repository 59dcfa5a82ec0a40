package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// ShareLinkState is the lifecycle state of a managed share link.
type ShareLinkState string

const (
	StateNoLink   ShareLinkState = "no_link"
	StateCreating ShareLinkState = "creating"
	StateHasLink  ShareLinkState = "has_link"
	StateRevoking ShareLinkState = "revoking"
)

// ErrOperationInFlight is returned when a create or revoke is attempted while
// another lifecycle operation is still running.
var ErrOperationInFlight = errors.New("share link operation already in flight")

// ShareLink is one entry of the caller's link history.
type ShareLink struct {
	ID        uint       `json:"id"`
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ShareType string     `json:"share_type"`
	Summary   string     `json:"summary"`
	ViewCount int        `json:"view_count"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
}

// IsLive reports whether the link still resolves at the given time.
func (l *ShareLink) IsLive(now time.Time) bool {
	if l.RevokedAt != nil {
		return false
	}
	return l.ExpiresAt == nil || l.ExpiresAt.After(now)
}

// CreateShareLinkParams configures Create.
type CreateShareLinkParams struct {
	Payload       interface{}
	Visibility    string
	CanComment    bool
	ExpiresInDays int // 0 means the link never expires
}

// CreatedShareLink is the POST /api/v1/share-links response body.
type CreatedShareLink struct {
	ID        uint       `json:"id"`
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ListShareLinks returns the caller's full link history, newest first.
func (c *Client) ListShareLinks(ctx context.Context) ([]ShareLink, error) {
	var out []ShareLink
	if err := c.do(ctx, "GET", "/api/v1/share-links", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateShareLink creates a link of the given type over a payload snapshot.
func (c *Client) CreateShareLink(ctx context.Context, shareType string, params CreateShareLinkParams) (*CreatedShareLink, error) {
	payload, err := json.Marshal(params.Payload)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"share_type":  shareType,
		"payload":     json.RawMessage(payload),
		"can_comment": params.CanComment,
	}
	if params.Visibility != "" {
		body["visibility"] = params.Visibility
	}
	if params.ExpiresInDays > 0 {
		body["expires_in_days"] = params.ExpiresInDays
	}

	var out CreatedShareLink
	if err := c.do(ctx, "POST", "/api/v1/share-links", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeShareLink revokes a link by token. Idempotent on the server.
func (c *Client) RevokeShareLink(ctx context.Context, token string) error {
	return c.do(ctx, "DELETE", "/api/v1/share-links/"+token, nil, nil)
}

// ShareLinkManager drives the lifecycle of the single "current" link for one
// share type. The server keeps the full history; the manager surfaces only
// the newest link that is still live, and treats everything it cannot verify
// pessimistically: a link counts as gone only once the server confirms the
// revocation.
type ShareLinkManager struct {
	client    *Client
	shareType string
	now       func() time.Time

	mu      sync.Mutex
	state   ShareLinkState
	current *ShareLink
}

// NewShareLinkManager creates a manager for one share type.
func NewShareLinkManager(c *Client, shareType string) *ShareLinkManager {
	return &ShareLinkManager{
		client:    c,
		shareType: shareType,
		now:       time.Now,
		state:     StateNoLink,
	}
}

// State returns the current lifecycle state.
func (m *ShareLinkManager) State() ShareLinkState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked()
	return m.state
}

// Current returns the managed link, or nil when there is none.
func (m *ShareLinkManager) Current() *ShareLink {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked()
	if m.current == nil {
		return nil
	}
	link := *m.current
	return &link
}

// expireLocked drops an adopted link whose expiry has passed. Expiry is
// checked against the clock on every read, so a link cannot outlive its
// expires_at between loads. Caller holds m.mu.
func (m *ShareLinkManager) expireLocked() {
	if m.state == StateHasLink && m.current != nil && !m.current.IsLive(m.now()) {
		m.current = nil
		m.state = StateNoLink
	}
}

// Load fetches the link history and adopts the newest live link of the
// manager's share type. Revoked and expired entries are filtered defensively
// even though the server already marks them.
func (m *ShareLinkManager) Load(ctx context.Context) error {
	links, err := m.client.ListShareLinks(ctx)
	if err != nil {
		return err
	}

	now := m.now()
	var newest *ShareLink
	for i := range links {
		link := &links[i]
		if link.ShareType != m.shareType || !link.IsLive(now) {
			continue
		}
		if newest == nil || link.CreatedAt.After(newest.CreatedAt) {
			newest = link
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if newest != nil {
		adopted := *newest
		m.current = &adopted
		m.state = StateHasLink
	} else {
		m.current = nil
		m.state = StateNoLink
	}
	return nil
}

// Create makes a new link the current one. Rejects double submits while a
// create or revoke is running. On failure the previous state is restored, so
// an existing link is never lost to a failed replacement.
func (m *ShareLinkManager) Create(ctx context.Context, params CreateShareLinkParams) (*ShareLink, error) {
	m.mu.Lock()
	if m.state == StateCreating || m.state == StateRevoking {
		m.mu.Unlock()
		return nil, ErrOperationInFlight
	}
	prevState := m.state
	m.state = StateCreating
	m.mu.Unlock()

	created, err := m.client.CreateShareLink(ctx, m.shareType, params)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = prevState
		return nil, err
	}

	link := &ShareLink{
		ID:        created.ID,
		Token:     created.Token,
		URL:       created.URL,
		ShareType: m.shareType,
		CreatedAt: created.CreatedAt,
		ExpiresAt: created.ExpiresAt,
	}
	m.current = link
	m.state = StateHasLink

	adopted := *link
	return &adopted, nil
}

// Revoke kills the current link. Pessimistic: the link stays visible until
// the server confirms, so a failed revoke never pretends the link is dead.
func (m *ShareLinkManager) Revoke(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateCreating || m.state == StateRevoking {
		m.mu.Unlock()
		return ErrOperationInFlight
	}
	m.expireLocked()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	token := m.current.Token
	m.state = StateRevoking
	m.mu.Unlock()

	err := m.client.RevokeShareLink(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateHasLink
		return err
	}

	m.current = nil
	m.state = StateNoLink
	return nil
}
