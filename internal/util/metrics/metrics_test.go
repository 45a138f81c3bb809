package metrics_utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_RecordAuthorization_CountsByDecision(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordAuthorization("edit_basic", true)
	m.RecordAuthorization("edit_basic", false)
	m.RecordAuthorization("edit_basic", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthorizationDecisionsTotal.WithLabelValues("edit_basic", "allow")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthorizationDecisionsTotal.WithLabelValues("edit_basic", "deny")))
}

func Test_RecordMembershipMutation_CountsByOutcome(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordMembershipMutation("add_member", nil)
	m.RecordMembershipMutation("add_member", errors.New("conflict"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MembershipMutationsTotal.WithLabelValues("add_member", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MembershipMutationsTotal.WithLabelValues("add_member", "error")))
}

func Test_Middleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/vendors/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	router.GET("/metrics", Handler())

	counter := GetMetrics().HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/vendors/:id", "204")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vendors/42", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vendors_http_requests_total")
}
