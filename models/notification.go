package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type NotificationType string

const (
	NotificationTypeIssuePledgeCreated             NotificationType = "issue_pledge_created"
	NotificationTypeIssuePledgedPullRequestCreated NotificationType = "issue_pledged_pull_request_created"
	NotificationTypeIssuePledgedPullRequestMerged  NotificationType = "issue_pledged_pull_request_merged"
	NotificationTypeIssuePledgedBranchCreated      NotificationType = "issue_pledged_branch_created"
)

type Notification struct {
	ID             string           `db:"id"              json:"id"`
	UserID         *string          `db:"user_id"         json:"user_id"`
	EmailAddr      *string          `db:"email_addr"      json:"email_addr"`
	OrganizationID *string          `db:"organization_id" json:"organization_id"`
	Type           NotificationType `db:"type"            json:"type"`
	IssueID        *string          `db:"issue_id"        json:"issue_id"`
	PledgeID       *string          `db:"pledge_id"       json:"pledge_id"`
	PullRequestID  *string          `db:"pull_request_id" json:"pull_request_id"`
	Payload        types.JSONText   `db:"payload"         json:"payload"`
	DedupKey       string           `db:"dedup_key"       json:"dedup_key"`
	CreatedAt      time.Time        `db:"created_at"      json:"created_at"`
}
