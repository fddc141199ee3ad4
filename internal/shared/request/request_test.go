package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"favorites-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	UserID *int `json:"user_id"`
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/favorite/planet/1", strings.NewReader(`{"user_id": 4}`))

	p, err := DecodeJSON[payload](httptest.NewRecorder(), req)
	require.NoError(t, err)
	require.NotNil(t, p.UserID)
	assert.Equal(t, 4, *p.UserID)
}

func TestDecodeJSONMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"empty":   "",
		"null":    "null",
		"invalid": "{user_id:",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/people", strings.NewReader(body))

			_, err := DecodeJSON[payload](httptest.NewRecorder(), req)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeMalformed, errors.GetType(err))
		})
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/people", strings.NewReader(body))

	_, err := DecodeJSON[map[string]string](httptest.NewRecorder(), req)
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.Status)
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value string
		id    int
		ok    bool
	}{
		{"12", 12, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1e3", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/people/x", nil)
			req.SetPathValue("id", tt.value)

			id, err := PathID(req, "id")
			if !tt.ok {
				require.Error(t, err)
				assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
		})
	}
}
