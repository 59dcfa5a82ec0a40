package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateShareLinkRequestValidation(t *testing.T) {
	t.Parallel()

	payload := json.RawMessage(`{"startup_name":"Acme","total_matches":4,"strong_matches":1,"avg_confidence":0.7}`)

	tests := []struct {
		name    string
		req     CreateShareLinkRequest
		wantErr bool
	}{
		{
			name: "valid dashboard request",
			req:  CreateShareLinkRequest{ShareType: "dashboard", Payload: payload},
		},
		{
			name: "valid with expiry",
			req:  CreateShareLinkRequest{ShareType: "pipeline", Payload: payload, ExpiresInDays: intPtr(30)},
		},
		{
			name:    "missing share type",
			req:     CreateShareLinkRequest{Payload: payload},
			wantErr: true,
		},
		{
			name:    "unknown share type",
			req:     CreateShareLinkRequest{ShareType: "cap_table", Payload: payload},
			wantErr: true,
		},
		{
			name:    "missing payload",
			req:     CreateShareLinkRequest{ShareType: "dashboard"},
			wantErr: true,
		},
		{
			name:    "expiry below minimum",
			req:     CreateShareLinkRequest{ShareType: "dashboard", Payload: payload, ExpiresInDays: intPtr(0)},
			wantErr: true,
		},
		{
			name:    "expiry above maximum",
			req:     CreateShareLinkRequest{ShareType: "dashboard", Payload: payload, ExpiresInDays: intPtr(366)},
			wantErr: true,
		},
		{
			name:    "bad visibility value",
			req:     CreateShareLinkRequest{ShareType: "dashboard", Payload: payload, Visibility: "public"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := shareLinkValidator.Struct(&tc.req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
