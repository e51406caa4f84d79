package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/adapters/repository"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

func newStatusFixture(t *testing.T) *StatusService {
	t.Helper()
	repo := repository.NewStatusReportRepository(newTestStore(t))
	return NewStatusService(repo, logger.NewNop())
}

func TestSubmitReportDefaults(t *testing.T) {
	svc := newStatusFixture(t)

	report, err := svc.SubmitReport(context.Background(), ports.SubmitStatusRequest{
		ServerName:  "web-1",
		ServiceName: "nginx",
		Content:     "up",
		IsSuccess:   true,
	})
	require.NoError(t, err)

	assert.NotZero(t, report.ID)
	assert.NotEmpty(t, report.Time)
	assert.NotEmpty(t, report.ReceivedAt)
	assert.NotNil(t, report.Extra)
}

func TestSubmitReportUpsertsByNaturalKey(t *testing.T) {
	svc := newStatusFixture(t)
	ctx := context.Background()

	first, err := svc.SubmitReport(ctx, ports.SubmitStatusRequest{
		ServerName:  "web-1",
		ServiceName: "nginx",
		Content:     "up",
		IsSuccess:   true,
	})
	require.NoError(t, err)

	second, err := svc.SubmitReport(ctx, ports.SubmitStatusRequest{
		ServerName:  "web-1",
		ServiceName: "nginx",
		Content:     "down",
		IsSuccess:   false,
		Extra:       map[string]any{"exit_code": float64(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	reports, err := svc.ListReports(ctx, ports.StatusReportFilter{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "down", reports[0].Content)
	assert.False(t, reports[0].IsSuccess)
	assert.Equal(t, map[string]any{"exit_code": float64(1)}, reports[0].Extra)
}

func TestSubmitReportDistinctServicesCoexist(t *testing.T) {
	svc := newStatusFixture(t)
	ctx := context.Background()

	for _, service := range []string{"nginx", "postgres"} {
		_, err := svc.SubmitReport(ctx, ports.SubmitStatusRequest{
			ServerName:  "web-1",
			ServiceName: service,
			Content:     "up",
			IsSuccess:   true,
		})
		require.NoError(t, err)
	}
	_, err := svc.SubmitReport(ctx, ports.SubmitStatusRequest{
		ServerName:  "db-1",
		ServiceName: "postgres",
		Content:     "up",
		IsSuccess:   true,
	})
	require.NoError(t, err)

	reports, err := svc.ListReports(ctx, ports.StatusReportFilter{})
	require.NoError(t, err)
	assert.Len(t, reports, 3)
}

func TestListReportsServerFilterAndLimit(t *testing.T) {
	svc := newStatusFixture(t)
	ctx := context.Background()

	for _, r := range []struct{ server, service string }{
		{"web-1", "nginx"},
		{"web-1", "redis"},
		{"db-1", "postgres"},
	} {
		_, err := svc.SubmitReport(ctx, ports.SubmitStatusRequest{
			ServerName:  r.server,
			ServiceName: r.service,
			Content:     "up",
			IsSuccess:   true,
		})
		require.NoError(t, err)
	}

	filtered, err := svc.ListReports(ctx, ports.StatusReportFilter{ServerName: "web-1"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	limited, err := svc.ListReports(ctx, ports.StatusReportFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
