package schema

// ModerationReportTable represents the 'moderation.report' table
type ModerationReportTable struct {
	Table       string
	ID          string
	ReporterID  string
	ReportType  string
	TargetID    string
	Reason      string
	Description string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// ModerationReport is the schema definition for moderation.report
var ModerationReport = ModerationReportTable{
	Table:       "moderation.report",
	ID:          "id",
	ReporterID:  "reporterid",
	ReportType:  "reporttype",
	TargetID:    "targetid",
	Reason:      "reason",
	Description: "description",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// UniqueReporterTarget is the unique constraint guarding duplicate reports.
const UniqueReporterTarget = "report_reporter_target_key"
