package services

import (
	"context"
	"fmt"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// StatusService handles server-health report operations
type StatusService struct {
	statusRepo ports.StatusReportRepository
	logger     *logger.Logger
}

// NewStatusService creates a new status service
func NewStatusService(statusRepo ports.StatusReportRepository, logger *logger.Logger) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
		logger:     logger,
	}
}

// SubmitReport upserts a report by its (server_name, service_name) natural
// key: a repeat report overwrites the stored row instead of duplicating it.
// A missing time defaults to the current local timestamp.
func (s *StatusService) SubmitReport(ctx context.Context, req ports.SubmitStatusRequest) (*entities.StatusReport, error) {
	reportTime := req.Time
	if reportTime == "" {
		reportTime = nowTimestamp()
	}

	report := &entities.StatusReport{
		ServerName:  req.ServerName,
		ServiceName: req.ServiceName,
		Content:     req.Content,
		IsSuccess:   req.IsSuccess,
		Time:        reportTime,
		Extra:       req.Extra,
		ReceivedAt:  nowTimestamp(),
	}
	if report.Extra == nil {
		report.Extra = map[string]any{}
	}

	if err := s.statusRepo.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to submit status report: %w", err)
	}

	s.logger.Info("Status report received", "server", report.ServerName,
		"service", report.ServiceName, "success", report.IsSuccess)

	return report, nil
}

// ListReports returns reports newest-received first, optionally filtered by
// server name, capped at the filter limit (default 100).
func (s *StatusService) ListReports(ctx context.Context, filter ports.StatusReportFilter) ([]*entities.StatusReport, error) {
	reports, err := s.statusRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list status reports: %w", err)
	}
	return reports, nil
}
