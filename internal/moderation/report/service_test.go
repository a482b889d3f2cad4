// Copyright (c) 2026 BoiBritto. All rights reserved.

package report_test

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/moderation/report"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
)

// # Test Doubles

type targetKey struct {
	kind report.ReportType
	id   string
}

// fakeReportRepo is an in-memory ReportRepository with a registry of
// resolvable targets.
type fakeReportRepo struct {
	reports []*report.Report
	targets map[targetKey]bool
	clock   time.Time
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		targets: make(map[targetKey]bool),
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeReportRepo) addTarget(kind report.ReportType, id string) {
	f.targets[targetKey{kind: kind, id: id}] = true
}

func (f *fakeReportRepo) ListByReporter(_ context.Context, filter report.ListFilter, limit, offset int) ([]*report.Report, int, error) {
	var matched []*report.Report
	for _, r := range f.reports {
		if r.ReporterID != filter.ReporterID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Type != "" && r.ReportType != filter.Type {
			continue
		}
		matched = append(matched, r)
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeReportRepo) TargetExists(_ context.Context, reportType report.ReportType, targetID string) (bool, error) {
	return f.targets[targetKey{kind: reportType, id: targetID}], nil
}

func (f *fakeReportRepo) Create(_ context.Context, r *report.Report) error {
	for _, existing := range f.reports {
		if existing.ReporterID == r.ReporterID && existing.ReportType == r.ReportType && existing.TargetID == r.TargetID {
			return apperr.Conflict("You have already reported this content")
		}
	}
	r.CreatedAt = f.clock
	r.UpdatedAt = f.clock
	f.clock = f.clock.Add(time.Minute)
	clone := *r
	f.reports = append(f.reports, &clone)
	return nil
}

func newService(repo *fakeReportRepo) *report.Service {
	return report.NewService(repo, slog.New(slog.DiscardHandler))
}

// # Intake Tests

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		input      report.CreateInput
		wantStatus int
	}{
		{
			name:  "valid_report",
			input: report.CreateInput{ReportType: "blog", TargetID: "b1", Reason: "spam"},
		},
		{
			name:       "missing_target_id",
			input:      report.CreateInput{ReportType: "blog", Reason: "spam"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown_report_type",
			input:      report.CreateInput{ReportType: "playlist", TargetID: "b1", Reason: "spam"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown_reason",
			input:      report.CreateInput{ReportType: "blog", TargetID: "b1", Reason: "boring"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "description_too_long",
			input: report.CreateInput{
				ReportType:  "blog",
				TargetID:    "b1",
				Reason:      "spam",
				Description: strings.Repeat("x", report.MaxDescriptionLen+1),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing_target_resource",
			input:      report.CreateInput{ReportType: "blog", TargetID: "ghost", Reason: "spam"},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeReportRepo()
			repo.addTarget(report.TargetBlog, "b1")
			service := newService(repo)

			created, err := service.Create(context.Background(), "reporter", tt.input)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperr.As(err).HTTPStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, report.StatusPending, created.Status)
			assert.Equal(t, "reporter", created.ReporterID)
		})
	}
}

func TestService_Create_TypeCheckedBeforeTarget(t *testing.T) {
	// An unknown type must fail validation even when no target lookup
	// could possibly succeed.
	service := newService(newFakeReportRepo())

	_, err := service.Create(context.Background(), "reporter",
		report.CreateInput{ReportType: "playlist", TargetID: "ghost", Reason: "boring"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	assert.Contains(t, apperr.As(err).Message, "report type")
}

func TestService_Create_DuplicateConflicts(t *testing.T) {
	repo := newFakeReportRepo()
	repo.addTarget(report.TargetDiscussion, "d1")
	repo.addTarget(report.TargetComment, "d1")
	service := newService(repo)

	input := report.CreateInput{ReportType: "discussion", TargetID: "d1", Reason: "harassment"}

	_, err := service.Create(context.Background(), "reporter", input)
	require.NoError(t, err)

	_, err = service.Create(context.Background(), "reporter", input)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	// Same target id under a different type is a distinct report.
	_, err = service.Create(context.Background(), "reporter",
		report.CreateInput{ReportType: "comment", TargetID: "d1", Reason: "harassment"})
	require.NoError(t, err)

	// Another reporter may flag the same target.
	_, err = service.Create(context.Background(), "other", input)
	require.NoError(t, err)
}

// # Listing Tests

func TestService_ListMine(t *testing.T) {
	repo := newFakeReportRepo()
	repo.addTarget(report.TargetBlog, "b1")
	repo.addTarget(report.TargetUser, "u1")
	service := newService(repo)

	_, err := service.Create(context.Background(), "reporter",
		report.CreateInput{ReportType: "blog", TargetID: "b1", Reason: "spam"})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), "reporter",
		report.CreateInput{ReportType: "user", TargetID: "u1", Reason: "impersonation"})
	require.NoError(t, err)

	t.Run("lists_own_reports_only", func(t *testing.T) {
		_, total, err := service.ListMine(context.Background(), "reporter", "", "", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		_, total, err = service.ListMine(context.Background(), "stranger", "", "", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("type_filter_narrows", func(t *testing.T) {
		reports, total, err := service.ListMine(context.Background(), "reporter", "", "user", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, reports, 1)
		assert.Equal(t, report.TargetUser, reports[0].ReportType)
	})

	t.Run("status_filter_narrows", func(t *testing.T) {
		_, total, err := service.ListMine(context.Background(), "reporter", "pending", "", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		_, total, err = service.ListMine(context.Background(), "reporter", "dismissed", "", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("unknown_filters_rejected", func(t *testing.T) {
		_, _, err := service.ListMine(context.Background(), "reporter", "archived", "", 10, 0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

		_, _, err = service.ListMine(context.Background(), "reporter", "", "playlist", 10, 0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
