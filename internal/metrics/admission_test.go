package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdmissionMetrics(t *testing.T) {
	t.Run("Success_CreateAdmissionMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		admissionMetrics, err := NewAdmissionMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, admissionMetrics)
	})
}

func TestAdmissionMetrics_RecordAdmission(t *testing.T) {
	provider, err := NewProvider("admission_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	am, err := NewAdmissionMetrics(provider.MeterProvider(), "admission_test")
	require.NoError(t, err)

	ctx := context.Background()
	am.RecordAdmission(ctx, "api", true)
	am.RecordAdmission(ctx, "api", true)
	am.RecordAdmission(ctx, "api", false)
	am.RecordAdmission(ctx, "auth", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	assertBizMetricLine(
		t,
		output,
		`admission_test_admission_decisions_total`,
		`class="api".*outcome="allowed"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`admission_test_admission_decisions_total`,
		`class="api".*outcome="limited"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`admission_test_admission_decisions_total`,
		`class="auth".*outcome="limited"`,
		`1`,
	)
}

func TestNewNoOpAdmissionMetrics(t *testing.T) {
	noOp := NewNoOpAdmissionMetrics()

	assert.NotNil(t, noOp)

	t.Run("NoOp_RecordAdmissionDoesNotPanic", func(t *testing.T) {
		noOp.RecordAdmission(context.Background(), "api", true)
		noOp.RecordAdmission(context.Background(), "auth", false)
	})
}
