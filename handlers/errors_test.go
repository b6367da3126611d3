package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"propcare/services/access"
	"propcare/services/cases"
	"propcare/services/interval"
	"propcare/services/matching"
	"propcare/services/scheduling"
	"propcare/services/session"

	"github.com/gin-gonic/gin"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err       error
		want      int
		emptyBody bool
	}{
		{access.ErrAccessDenied, http.StatusForbidden, true},
		{fmt.Errorf("wrapped: %w", access.ErrAccessDenied), http.StatusForbidden, true},
		{access.ErrImpersonationStateInconsistent, http.StatusForbidden, true},
		{session.ErrNotSuperAdmin, http.StatusForbidden, true},
		{interval.ErrMalformedInterval, http.StatusBadRequest, false},
		{cases.ErrUnknownUnit, http.StatusBadRequest, false},
		{scheduling.ErrInvalidDate, http.StatusBadRequest, false},
		{matching.ErrNoOverlappingProposal, http.StatusUnprocessableEntity, false},
		{matching.ErrNoFullyFreeSlot, http.StatusConflict, false},
		{matching.ErrNoProposals, http.StatusConflict, false},
		{scheduling.ErrNoContractor, http.StatusConflict, false},
		{session.ErrUnknownOrg, http.StatusNotFound, false},
		{errors.New("mongo: timeout"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.emptyBody && w.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", w.Body.String())
			}
			if !c.IsAborted() {
				t.Error("context should be aborted")
			}
		})
	}
}
