package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantType   string
		wantDetail string
		wantPaths  []string
		sentinel   error
	}{
		{
			name:       "plain detail",
			status:     http.StatusNotFound,
			body:       `{"type":"ResourceNotFound","detail":"Customer not found"}`,
			wantType:   "ResourceNotFound",
			wantDetail: "Customer not found",
			sentinel:   ErrNotFound,
		},
		{
			name:   "validation detail",
			status: http.StatusUnprocessableEntity,
			body: `{"type":"ValidationError","detail":[
				{"loc":["body","events",1,"customer_id"],"msg":"Field required","type":"missing","input":{}},
				{"loc":["body","metadata","plan"],"msg":"too long","type":"string_too_long","ctx":{"max_length":500}}
			]}`,
			wantType:   "ValidationError",
			wantDetail: "validation failed",
			wantPaths:  []string{"events[1].customer_id", "metadata.plan"},
			sentinel:   ErrUnprocessable,
		},
		{
			name:       "not json",
			status:     http.StatusTooManyRequests,
			body:       "slow down\n",
			wantDetail: "slow down",
			sentinel:   ErrRateLimited,
		},
		{
			name:       "empty body",
			status:     http.StatusForbidden,
			wantDetail: "Forbidden",
			sentinel:   ErrUnauthorized,
		},
		{
			name:       "server error",
			status:     http.StatusBadGateway,
			body:       `{"type":"BadGateway"}`,
			wantType:   "BadGateway",
			wantDetail: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)

			var paths []string
			for _, d := range apiErr.Validation {
				paths = append(paths, d.Path())
			}
			assert.Equal(t, tt.wantPaths, paths)

			if tt.sentinel != nil {
				assert.True(t, errors.Is(apiErr, tt.sentinel))
			} else {
				assert.Nil(t, apiErr.Unwrap())
			}
			require.NotEmpty(t, apiErr.Error())
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Type:       "ValidationError",
		Validation: []ValidationDetail{{Loc: []any{"body", "email"}, Msg: "value is not a valid email address"}},
	}
	assert.Equal(t, "api error 422 ValidationError: email: value is not a valid email address", err.Error())

	err = &APIError{StatusCode: http.StatusInternalServerError, Detail: "boom"}
	assert.Equal(t, "api error 500: boom", err.Error())
}
