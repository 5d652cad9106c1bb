package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name used for run metrics.
const PushJob = "classroom_extract"

// Push sends the registered collectors to a Pushgateway. A batch run has no
// scrape endpoint, so this is the only way its metrics leave the process.
func Push(ctx context.Context, gatewayURL, runID string) error {
	if gatewayURL == "" {
		return nil
	}
	RegisterMetrics()

	pusher := push.New(gatewayURL, PushJob).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("instance", "extract")
	if runID != "" {
		pusher = pusher.Grouping("run_id", runID)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
