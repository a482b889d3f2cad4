// Copyright (c) 2026 BoiBritto. All rights reserved.

package report

import (
	"context"
	"log/slog"
	"strings"

	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates report intake and self-service listing.
type Service struct {
	reports ReportRepository
	logger  *slog.Logger
}

// NewService constructs a new report [Service].
func NewService(reports ReportRepository, logger *slog.Logger) *Service {
	return &Service{
		reports: reports,
		logger:  logger,
	}
}

// # Intake

// CreateInput carries the fields of a report submission.
type CreateInput struct {
	ReportType  string `json:"report_type"`
	TargetID    string `json:"target_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

/*
Create validates and files a new report from the requester.

Checks run in a fixed order: required fields, then the target type
allow-list, then the reason allow-list, then target existence, and
lastly duplicate detection at the storage layer.

Returns:
  - *Report: The created report, status pending
  - error: Validation errors or apperr.Conflict on a duplicate report
*/
func (service *Service) Create(context context.Context, reporterID string, input CreateInput) (*Report, error) {
	reportType := ReportType(input.ReportType)
	targetID := strings.TrimSpace(input.TargetID)
	reason := Reason(input.Reason)
	description := strings.TrimSpace(input.Description)

	validator := &validate.Validator{}
	validator.Required(FieldReportType, input.ReportType)
	validator.Required(FieldTargetID, targetID)
	validator.Required(FieldReason, input.Reason)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if !reportType.Valid() {
		return nil, apperr.ValidationError("Unknown report type: " + input.ReportType)
	}
	if !reason.Valid() {
		return nil, apperr.ValidationError("Unknown report reason: " + input.Reason)
	}
	validator.MaxLen(FieldDescription, description, MaxDescriptionLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.reports.TargetExists(context, reportType, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Report target")
	}

	report := &Report{
		ID:          uuidv7.New(),
		ReporterID:  reporterID,
		ReportType:  reportType,
		TargetID:    targetID,
		Reason:      reason,
		Description: description,
		Status:      StatusPending,
	}

	if err := service.reports.Create(context, report); err != nil {
		return nil, err
	}

	service.logger.Info("report_created",
		slog.String("report_id", report.ID),
		slog.String("report_type", string(reportType)),
		slog.String("target_id", targetID),
	)

	return report, nil
}

// # Self-Service Listing

/*
ListMine returns the requester's own reports matching the filter.

Returns:
  - []*Report: Matching reports, newest first
  - int: Total matching reports
  - error: Validation or storage errors
*/
func (service *Service) ListMine(context context.Context, reporterID string, status, reportType string, limit, offset int) ([]*Report, int, error) {
	filter := ListFilter{
		ReporterID: reporterID,
		Status:     Status(status),
		Type:       ReportType(reportType),
	}

	if status != "" && !filter.Status.Valid() {
		return nil, 0, apperr.ValidationError("Unknown report status: " + status)
	}
	if reportType != "" && !filter.Type.Valid() {
		return nil, 0, apperr.ValidationError("Unknown report type: " + reportType)
	}

	return service.reports.ListByReporter(context, filter, limit, offset)
}
