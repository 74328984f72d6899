package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"fundbackend/clients"
	"fundbackend/core"
	"fundbackend/models"
)

type NotificationsRepository interface {
	GetNotificationByID(ctx context.Context, id string) (mo.Option[*models.Notification], error)
}

type IssuesRepository interface {
	GetIssueByID(ctx context.Context, id string) (mo.Option[*models.Issue], error)
}

type PledgesRepository interface {
	GetPledgeByID(ctx context.Context, id string) (mo.Option[*models.Pledge], error)
}

type PullRequestsRepository interface {
	GetPullRequestByID(ctx context.Context, id string) (mo.Option[*models.PullRequest], error)
}

type OrganizationsRepository interface {
	GetOrganizationByID(ctx context.Context, id string) (mo.Option[*models.Organization], error)
}

type UsersRepository interface {
	GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error)
}

// Repositories groups the read-only stores the email metadata is assembled from
type Repositories struct {
	Notifications NotificationsRepository
	Issues        IssuesRepository
	Pledges       PledgesRepository
	PullRequests  PullRequestsRepository
	Organizations OrganizationsRepository
	Users         UsersRepository
}

type NotificationsService struct {
	repos       Repositories
	emailSender clients.EmailSender
}

func NewNotificationsService(repos Repositories, emailSender clients.EmailSender) *NotificationsService {
	return &NotificationsService{
		repos:       repos,
		emailSender: emailSender,
	}
}

// EmailMetadata collects the values the email for the notification needs.
// None when the type is unknown or a related record is missing.
func (s *NotificationsService) EmailMetadata(
	ctx context.Context,
	user *models.User,
	notification *models.Notification,
) (mo.Option[models.EmailMetadata], error) {
	switch notification.Type {
	case models.NotificationTypeIssuePledgeCreated:
		return s.pledgeCreatedMetadata(ctx, user, notification)
	case models.NotificationTypeIssuePledgedPullRequestCreated:
		return s.pullRequestMetadata(ctx, user, notification, false)
	case models.NotificationTypeIssuePledgedPullRequestMerged:
		return s.pullRequestMetadata(ctx, user, notification, true)
	case models.NotificationTypeIssuePledgedBranchCreated:
		return s.branchCreatedMetadata(ctx, user, notification)
	default:
		log.Printf("⚠️ Unknown notification type %s for notification %s", notification.Type, notification.ID)
		return mo.None[models.EmailMetadata](), nil
	}
}

func (s *NotificationsService) pledgeCreatedMetadata(
	ctx context.Context,
	user *models.User,
	notification *models.Notification,
) (mo.Option[models.EmailMetadata], error) {
	issue, err := s.issue(ctx, notification)
	if err != nil || issue.IsAbsent() {
		return mo.None[models.EmailMetadata](), err
	}
	pledge, err := s.pledge(ctx, notification)
	if err != nil || pledge.IsAbsent() {
		return mo.None[models.EmailMetadata](), err
	}
	pledgerName, err := s.pledgerName(ctx, pledge.MustGet())
	if err != nil || pledgerName.IsAbsent() {
		return mo.None[models.EmailMetadata](), err
	}

	return mo.Some[models.EmailMetadata](models.MaintainerPledgeCreatedMetadata{
		Username:     user.Username,
		PledgerName:  pledgerName.MustGet(),
		IssueURL:     issue.MustGet().URL(),
		IssueTitle:   issue.MustGet().Title,
		PledgeAmount: formatCents(pledge.MustGet().Amount),
	}), nil
}

func (s *NotificationsService) pullRequestMetadata(
	ctx context.Context,
	user *models.User,
	notification *models.Notification,
	merged bool,
) (mo.Option[models.EmailMetadata], error) {
	issue, err := s.issue(ctx, notification)
	if err != nil || issue.IsAbsent() {
		return mo.None[models.EmailMetadata](), err
	}
	pullRequest, err := s.pullRequest(ctx, notification)
	if err != nil || pullRequest.IsAbsent() {
		return mo.None[models.EmailMetadata](), err
	}

	pr := pullRequest.MustGet()
	shared := models.PledgedIssuePullRequestMetadata{
		Username:                   user.Username,
		IssueURL:                   issue.MustGet().URL(),
		IssueTitle:                 issue.MustGet().Title,
		PullRequestURL:             pr.URL(),
		PullRequestTitle:           pr.Title,
		PullRequestCreatorUsername: pr.AuthorLogin,
		RepoOwner:                  pr.RepositoryOwner,
		RepoName:                   pr.RepositoryName,
	}

	if merged {
		return mo.Some[models.EmailMetadata](models.PledgedIssuePullRequestMergedMetadata{
			PledgedIssuePullRequestMetadata: shared,
		}), nil
	}
	return mo.Some[models.EmailMetadata](models.PledgedIssuePullRequestCreatedMetadata{
		PledgedIssuePullRequestMetadata: shared,
	}), nil
}

type branchCreatedPayload struct {
	BranchCreatorUsername string `json:"branch_creator_username"`
}

func (s *NotificationsService) branchCreatedMetadata(
	ctx context.Context,
	user *models.User,
	notification *models.Notification,
) (mo.Option[models.EmailMetadata], error) {
	issue, err := s.issue(ctx, notification)
	if err != nil || issue.IsAbsent() {
		return mo.None[models.EmailMetadata](), err
	}

	var payload branchCreatedPayload
	if len(notification.Payload) > 0 {
		if err := json.Unmarshal(notification.Payload, &payload); err != nil {
			return mo.None[models.EmailMetadata](), fmt.Errorf("failed to decode notification payload: %w", err)
		}
	}
	if payload.BranchCreatorUsername == "" {
		log.Printf("⚠️ Notification %s has no branch creator", notification.ID)
		return mo.None[models.EmailMetadata](), nil
	}

	return mo.Some[models.EmailMetadata](models.PledgedIssueBranchCreatedMetadata{
		Username:              user.Username,
		IssueURL:              issue.MustGet().URL(),
		IssueTitle:            issue.MustGet().Title,
		BranchCreatorUsername: payload.BranchCreatorUsername,
	}), nil
}

func (s *NotificationsService) issue(
	ctx context.Context,
	notification *models.Notification,
) (mo.Option[*models.Issue], error) {
	if notification.IssueID == nil {
		return mo.None[*models.Issue](), nil
	}
	issue, err := s.repos.Issues.GetIssueByID(ctx, *notification.IssueID)
	if err != nil {
		return mo.None[*models.Issue](), fmt.Errorf("failed to get notification issue: %w", err)
	}
	return issue, nil
}

func (s *NotificationsService) pledge(
	ctx context.Context,
	notification *models.Notification,
) (mo.Option[*models.Pledge], error) {
	if notification.PledgeID == nil {
		return mo.None[*models.Pledge](), nil
	}
	pledge, err := s.repos.Pledges.GetPledgeByID(ctx, *notification.PledgeID)
	if err != nil {
		return mo.None[*models.Pledge](), fmt.Errorf("failed to get notification pledge: %w", err)
	}
	return pledge, nil
}

func (s *NotificationsService) pullRequest(
	ctx context.Context,
	notification *models.Notification,
) (mo.Option[*models.PullRequest], error) {
	if notification.PullRequestID == nil {
		return mo.None[*models.PullRequest](), nil
	}
	pr, err := s.repos.PullRequests.GetPullRequestByID(ctx, *notification.PullRequestID)
	if err != nil {
		return mo.None[*models.PullRequest](), fmt.Errorf("failed to get notification pull request: %w", err)
	}
	return pr, nil
}

// pledgerName prefers the pledging organization and falls back to the pledging user
func (s *NotificationsService) pledgerName(ctx context.Context, pledge *models.Pledge) (mo.Option[string], error) {
	if pledge.ByOrganizationID != nil {
		org, err := s.repos.Organizations.GetOrganizationByID(ctx, *pledge.ByOrganizationID)
		if err != nil {
			return mo.None[string](), fmt.Errorf("failed to get pledging organization: %w", err)
		}
		if org, ok := org.Get(); ok {
			return mo.Some(org.Name), nil
		}
	}
	if pledge.ByUserID != nil {
		user, err := s.repos.Users.GetUserByID(ctx, *pledge.ByUserID)
		if err != nil {
			return mo.None[string](), fmt.Errorf("failed to get pledging user: %w", err)
		}
		if user, ok := user.Get(); ok {
			return mo.Some(user.Username), nil
		}
	}
	return mo.None[string](), nil
}

func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// RenderEmail renders the HTML body for the metadata's notification type
func (s *NotificationsService) RenderEmail(metadata models.EmailMetadata) (string, error) {
	tmpl, ok := emailTemplates[metadata.NotificationType()]
	if !ok {
		return "", fmt.Errorf("no email template for notification type %s", metadata.NotificationType())
	}

	var body strings.Builder
	if err := tmpl.Execute(&body, metadata); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", metadata.NotificationType(), err)
	}
	return body.String(), nil
}

func (s *NotificationsService) Subject(metadata models.EmailMetadata) string {
	switch m := metadata.(type) {
	case models.MaintainerPledgeCreatedMetadata:
		return fmt.Sprintf("New $%s pledge on %s", m.PledgeAmount, m.IssueTitle)
	case models.PledgedIssuePullRequestCreatedMetadata:
		return fmt.Sprintf("New pull request for %s", m.IssueTitle)
	case models.PledgedIssuePullRequestMergedMetadata:
		return fmt.Sprintf("Pull request merged for %s", m.IssueTitle)
	case models.PledgedIssueBranchCreatedMetadata:
		return fmt.Sprintf("Work has started on %s", m.IssueTitle)
	default:
		return "Notification"
	}
}

// SendEmail renders the notification for the user and delivers it.
// Returns false when the notification has nothing to render.
func (s *NotificationsService) SendEmail(ctx context.Context, user *models.User, notificationID string) (bool, error) {
	log.Printf("📋 Starting to send email for notification %s to user %s", notificationID, user.ID)

	maybeNotification, err := s.repos.Notifications.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return false, fmt.Errorf("failed to get notification: %w", err)
	}
	notification, ok := maybeNotification.Get()
	if !ok {
		return false, fmt.Errorf("notification %s: %w", notificationID, core.ErrNotFound)
	}

	maybeMetadata, err := s.EmailMetadata(ctx, user, notification)
	if err != nil {
		return false, err
	}
	metadata, ok := maybeMetadata.Get()
	if !ok {
		log.Printf("⚠️ Nothing to render for notification %s", notificationID)
		return false, nil
	}

	body, err := s.RenderEmail(metadata)
	if err != nil {
		return false, err
	}

	recipient := user.Email
	if notification.EmailAddr != nil && *notification.EmailAddr != "" {
		recipient = *notification.EmailAddr
	}
	if recipient == "" {
		return false, fmt.Errorf("no email address for notification %s", notificationID)
	}

	messageID, err := s.emailSender.SendEmail(ctx, clients.EmailMessage{
		To:      recipient,
		Subject: s.Subject(metadata),
		HTML:    body,
		Text:    plainText(body),
	})
	if err != nil {
		return false, fmt.Errorf("failed to send notification email: %w", err)
	}

	log.Printf("📋 Completed successfully - sent email %s for notification %s", messageID, notificationID)
	return true, nil
}

func plainText(body string) string {
	return html.UnescapeString(strictPolicy.Sanitize(body))
}
