// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package report implements the moderation intake: members flag content or
other members, and each report lands in a pending queue for moderators.

Reports target a polymorphic resource identified by (type, target id).
A member may report a given target at most once; the database enforces
the uniqueness and the service surfaces it as a conflict.
*/
package report

import (
	"time"
)

// # Report Targets

// ReportType identifies the kind of resource a report points at.
type ReportType string

const (
	TargetCollection ReportType = "collection"
	TargetBlog       ReportType = "blog"
	TargetDiscussion ReportType = "discussion"
	TargetComment    ReportType = "comment"
	TargetUserBook   ReportType = "userbook"
	TargetUser       ReportType = "user"
)

// Valid reports whether t is a known report target type.
func (t ReportType) Valid() bool {
	switch t {
	case TargetCollection, TargetBlog, TargetDiscussion, TargetComment, TargetUserBook, TargetUser:
		return true
	}
	return false
}

// # Report Reasons

// Reason is the closed vocabulary of reporting grounds.
type Reason string

const (
	ReasonSpam               Reason = "spam"
	ReasonHarassment         Reason = "harassment"
	ReasonHateSpeech         Reason = "hate_speech"
	ReasonSexualContent      Reason = "sexual_content"
	ReasonViolence           Reason = "violence"
	ReasonSelfHarm           Reason = "self_harm"
	ReasonMisinformation     Reason = "misinformation"
	ReasonCopyrightViolation Reason = "copyright_violation"
	ReasonImpersonation      Reason = "impersonation"
	ReasonPrivacyViolation   Reason = "privacy_violation"
	ReasonOther              Reason = "other"
)

// Valid reports whether r is one of the accepted reasons.
func (r Reason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonHarassment, ReasonHateSpeech, ReasonSexualContent,
		ReasonViolence, ReasonSelfHarm, ReasonMisinformation,
		ReasonCopyrightViolation, ReasonImpersonation, ReasonPrivacyViolation,
		ReasonOther:
		return true
	}
	return false
}

// # Report Status

// Status is the moderation lifecycle state of a report.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusActionTaken Status = "action_taken"
	StatusDismissed   Status = "dismissed"
)

// Valid reports whether s is a known moderation status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusActionTaken, StatusDismissed:
		return true
	}
	return false
}

// # Domain Entities

// Report represents one member's flag against a target resource.
type Report struct {
	ID          string     `json:"id"`
	ReporterID  string     `json:"reporter_id"`
	ReportType  ReportType `json:"report_type"`
	TargetID    string     `json:"target_id"`
	Reason      Reason     `json:"reason"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListFilter narrows a reporter's own report listing.
type ListFilter struct {
	ReporterID string
	Status     Status
	Type       ReportType
}

// # Limits

// MaxDescriptionLen bounds the optional free-text description.
const MaxDescriptionLen = 200

// # Field Identifiers

const (
	FieldReportType  = "report_type"
	FieldTargetID    = "target_id"
	FieldReason      = "reason"
	FieldDescription = "description"
)
