// Copyright (c) 2026 BoiBritto. All rights reserved.

package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boibritto/boibritto-api/internal/platform/database/schema"
	"github.com/boibritto/boibritto-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// duplicateReportMsg surfaces the unique (reporterid, reporttype, targetid)
// constraint.
const duplicateReportMsg = "You have already reported this content"

// reportRepository implements the [ReportRepository] interface using pgx.
type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository constructs a PostgreSQL backed report store.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

// reportColumns lists the entity columns in scan order for alias p.
func reportColumns() string {
	t := schema.ModerationReport
	return fmt.Sprintf("p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s",
		t.ID, t.ReporterID, t.ReportType, t.TargetID, t.Reason, t.Description, t.Status, t.CreatedAt, t.UpdatedAt)
}

/*
ListByReporter retrieves the reporter's reports, newest first.
*/
func (repository *reportRepository) ListByReporter(context context.Context, filter ListFilter, limit, offset int) ([]*Report, int, error) {
	t := schema.ModerationReport

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s p
		WHERE p.%s = $%d
	`, reportColumns(), t.Table, t.ReporterID, argID))
	args = append(args, filter.ReporterID)
	argID++

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", t.Status, argID))
		args = append(args, filter.Status)
		argID++
	}

	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", t.ReportType, argID))
		args = append(args, filter.Type)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	var totalCount int

	for rows.Next() {
		var report Report
		err := rows.Scan(
			&report.ID,
			&report.ReporterID,
			&report.ReportType,
			&report.TargetID,
			&report.Reason,
			&report.Description,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan report: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, totalCount, nil
}

/*
TargetExists checks the table backing the given report target type for a
row with the target ID.
*/
func (repository *reportRepository) TargetExists(context context.Context, reportType ReportType, targetID string) (bool, error) {
	var table, idColumn string

	switch reportType {
	case TargetCollection:
		table, idColumn = schema.LibraryCollection.Table, schema.LibraryCollection.ID
	case TargetBlog:
		table, idColumn = schema.SocialBlog.Table, schema.SocialBlog.ID
	case TargetDiscussion:
		table, idColumn = schema.SocialDiscussion.Table, schema.SocialDiscussion.ID
	case TargetComment:
		table, idColumn = schema.SocialComment.Table, schema.SocialComment.ID
	case TargetUserBook:
		table, idColumn = schema.CoreBook.Table, schema.CoreBook.ID
	case TargetUser:
		table, idColumn = schema.UserAccount.Table, schema.UserAccount.ID
	default:
		return false, nil
	}

	// The id columns are UUIDs but the target id arrives as opaque text;
	// comparing as text keeps malformed ids a clean "not found".
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s::text = $1)`, table, idColumn)

	var exists bool
	if err := repository.pool.QueryRow(context, query, targetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to resolve report target: %w", err)
	}

	return exists, nil
}

/*
Create inserts a new report row.
*/
func (repository *reportRepository) Create(context context.Context, report *Report) error {
	t := schema.ModerationReport
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		t.Table, t.ID, t.ReporterID, t.ReportType, t.TargetID, t.Reason, t.Description, t.Status,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		report.ID,
		report.ReporterID,
		report.ReportType,
		report.TargetID,
		report.Reason,
		report.Description,
		report.Status,
	).Scan(&report.CreatedAt, &report.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, duplicateReportMsg)
	}

	return nil
}
