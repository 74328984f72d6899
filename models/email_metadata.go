package models

// EmailMetadata is the immutable set of values one notification email template needs
type EmailMetadata interface {
	NotificationType() NotificationType
}

type MaintainerPledgeCreatedMetadata struct {
	Username     string
	PledgerName  string
	IssueURL     string
	IssueTitle   string
	PledgeAmount string
}

func (MaintainerPledgeCreatedMetadata) NotificationType() NotificationType {
	return NotificationTypeIssuePledgeCreated
}

// PledgedIssuePullRequestMetadata is shared by the pull request created and merged emails
type PledgedIssuePullRequestMetadata struct {
	Username                   string
	IssueURL                   string
	IssueTitle                 string
	PullRequestURL             string
	PullRequestTitle           string
	PullRequestCreatorUsername string
	RepoOwner                  string
	RepoName                   string
}

type PledgedIssuePullRequestCreatedMetadata struct {
	PledgedIssuePullRequestMetadata
}

func (PledgedIssuePullRequestCreatedMetadata) NotificationType() NotificationType {
	return NotificationTypeIssuePledgedPullRequestCreated
}

type PledgedIssuePullRequestMergedMetadata struct {
	PledgedIssuePullRequestMetadata
}

func (PledgedIssuePullRequestMergedMetadata) NotificationType() NotificationType {
	return NotificationTypeIssuePledgedPullRequestMerged
}

type PledgedIssueBranchCreatedMetadata struct {
	Username              string
	IssueURL              string
	IssueTitle            string
	BranchCreatorUsername string
}

func (PledgedIssueBranchCreatedMetadata) NotificationType() NotificationType {
	return NotificationTypeIssuePledgedBranchCreated
}
