// Copyright (c) 2026 BoiBritto. All rights reserved.

package report

import "context"

// # Report Data Access

// ReportRepository defines the data access contract for moderation reports.
type ReportRepository interface {

	/*
		ListByReporter returns the reporter's own reports matching the
		filter, newest first.

		Returns:
		  - []*Report: Matching reports
		  - int: Total matching reports
		  - error: Storage failures
	*/
	ListByReporter(context context.Context, filter ListFilter, limit, offset int) ([]*Report, int, error)

	/*
		TargetExists reports whether a resource of the given type exists.

		The lookup switches exhaustively over the report target types; an
		unknown type is a programming error and returns false.
	*/
	TargetExists(context context.Context, reportType ReportType, targetID string) (bool, error)

	/*
		Create persists a new report.

		Returns:
		  - error: apperr.Conflict when the reporter already reported the
		    same (type, target) pair
	*/
	Create(context context.Context, report *Report) error
}
