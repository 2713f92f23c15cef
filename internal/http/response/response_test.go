package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		want       ErrorEnvelope
	}{
		{
			name:       "api error",
			err:        fmt.Errorf("wrapped: %w", apierr.NotFound("damage_not_found", "damage 7 not found")),
			wantStatus: http.StatusNotFound,
			want:       ErrorEnvelope{Error: APIError{Message: "damage 7 not found", Code: "damage_not_found"}},
		},
		{
			name:       "server-side api error keeps code only",
			err:        apierr.New(http.StatusServiceUnavailable, "repository_unavailable", errors.New("dial tcp: connection refused")),
			wantStatus: http.StatusServiceUnavailable,
			want:       ErrorEnvelope{Error: APIError{Message: "internal server error", Code: "repository_unavailable"}},
		},
		{
			name:       "plain error is hidden",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			want:       ErrorEnvelope{Error: APIError{Message: "internal server error", Code: "internal_error"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var got ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("body (-want +got):\n%s", diff)
			}
		})
	}
}
