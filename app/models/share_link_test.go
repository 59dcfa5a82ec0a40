package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShareLinkLifecycleStates(t *testing.T) {
	now := time.Now()

	link := &ShareLink{Token: "tok"}
	assert.True(t, link.IsActive(now), "fresh link with no expiry must be active")

	past := now.Add(-time.Hour)
	link = &ShareLink{Token: "tok", ExpiresAt: &past}
	assert.True(t, link.IsExpired(now))
	assert.False(t, link.IsActive(now), "expired link must not be active")

	future := now.Add(time.Hour)
	link = &ShareLink{Token: "tok", ExpiresAt: &future}
	assert.False(t, link.IsExpired(now))
	assert.True(t, link.IsActive(now))

	revoked := &ShareLink{Token: "tok", RevokedAt: &past}
	assert.True(t, revoked.IsRevoked())
	assert.False(t, revoked.IsActive(now), "revoked link must not be active")
}

func TestShareLinkPublicURL(t *testing.T) {
	link := &ShareLink{Token: "a1B2c3D4e5F6g7H8i"}
	assert.Equal(t, "https://pythh.app/s/a1B2c3D4e5F6g7H8i", link.PublicURL("https://pythh.app"))
}

func TestShareLinkPayloadRoundTrip(t *testing.T) {
	payload := &SharePayload{
		Type: ShareTypeDashboard,
		Dashboard: &DashboardSummary{
			StartupName: "Lumenfold",
			SignalScore: 91.5,
			MatchCount:  14,
		},
	}
	raw, err := payload.Raw()
	assert.NoError(t, err)

	link := &ShareLink{Token: "tok", ShareType: ShareTypeDashboard, Payload: raw}
	decoded, err := link.DecodePayload()
	assert.NoError(t, err)
	assert.Equal(t, "Lumenfold", decoded.Dashboard.StartupName)
	assert.Equal(t, 14, decoded.Dashboard.MatchCount)
}
