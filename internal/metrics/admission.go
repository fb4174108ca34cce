package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AdmissionMetrics records rate limiter admission decisions. It satisfies
// ratelimit.DecisionRecorder so the admission middleware can report every
// allow/limit outcome per route class.
type AdmissionMetrics struct {
	decisionCounter metric.Int64Counter
}

// NewAdmissionMetrics creates a new AdmissionMetrics using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "social").
// Returns error if the counter cannot be initialized.
func NewAdmissionMetrics(meterProvider metric.MeterProvider, namespace string) (*AdmissionMetrics, error) {
	meter := meterProvider.Meter(namespace)

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_admission_decisions_total", namespace),
		metric.WithDescription("Total number of rate limiter admission decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create admission decision counter: %w", err)
	}

	return &AdmissionMetrics{
		decisionCounter: decisionCounter,
	}, nil
}

// RecordAdmission increments the decision counter with class and outcome labels.
// Outcome is "allowed" for admitted requests and "limited" for rejected ones.
func (a *AdmissionMetrics) RecordAdmission(ctx context.Context, class string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "limited"
	}
	a.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("class", class),
			attribute.String("outcome", outcome),
		),
	)
}

// NoOpAdmissionMetrics is a no-op implementation for when metrics are disabled.
type NoOpAdmissionMetrics struct{}

// NewNoOpAdmissionMetrics creates a no-op admission decision recorder.
func NewNoOpAdmissionMetrics() *NoOpAdmissionMetrics {
	return &NoOpAdmissionMetrics{}
}

// RecordAdmission does nothing when metrics are disabled.
func (n *NoOpAdmissionMetrics) RecordAdmission(ctx context.Context, class string, allowed bool) {
	// No-op
}
