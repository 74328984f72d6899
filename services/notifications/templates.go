package notifications

import (
	"text/template"

	"github.com/microcosm-cc/bluemonday"

	"fundbackend/models"
)

// Every interpolated value goes through clean; the markup in the emails comes from the templates only
var strictPolicy = bluemonday.StrictPolicy()

var templateFuncs = template.FuncMap{
	"clean": strictPolicy.Sanitize,
}

const maintainerPledgeCreatedTemplate = `Hi {{clean .Username}},

{{clean .PledgerName}} has pledged ${{clean .PledgeAmount}} to <a href="{{clean .IssueURL}}">{{clean .IssueTitle}}</a>.`

const pledgedIssuePullRequestCreatedTemplate = `Hi {{clean .Username}},

{{clean .PullRequestCreatorUsername}} just opened a <a href="{{clean .PullRequestURL}}">pull request</a> to {{clean .RepoOwner}}/{{clean .RepoName}} that solves
the issue <a href="{{clean .IssueURL}}">{{clean .IssueTitle}}</a> that you've backed!`

const pledgedIssuePullRequestMergedTemplate = `Hi {{clean .Username}},

{{clean .PullRequestCreatorUsername}} just merged a <a href="{{clean .PullRequestURL}}">pull request</a> to {{clean .RepoOwner}}/{{clean .RepoName}} that solves
the issue <a href="{{clean .IssueURL}}">{{clean .IssueTitle}}</a> that you've backed!

The money will soon be paid out to {{clean .RepoOwner}}.`

const pledgedIssueBranchCreatedTemplate = `Hi {{clean .Username}},

{{clean .BranchCreatorUsername}} just created a branch for the issue <a href="{{clean .IssueURL}}">{{clean .IssueTitle}}</a> that you've backed!`

var emailTemplates = map[models.NotificationType]*template.Template{
	models.NotificationTypeIssuePledgeCreated: mustParse(
		models.NotificationTypeIssuePledgeCreated, maintainerPledgeCreatedTemplate,
	),
	models.NotificationTypeIssuePledgedPullRequestCreated: mustParse(
		models.NotificationTypeIssuePledgedPullRequestCreated, pledgedIssuePullRequestCreatedTemplate,
	),
	models.NotificationTypeIssuePledgedPullRequestMerged: mustParse(
		models.NotificationTypeIssuePledgedPullRequestMerged, pledgedIssuePullRequestMergedTemplate,
	),
	models.NotificationTypeIssuePledgedBranchCreated: mustParse(
		models.NotificationTypeIssuePledgedBranchCreated, pledgedIssueBranchCreatedTemplate,
	),
}

func mustParse(notificationType models.NotificationType, text string) *template.Template {
	return template.Must(template.New(string(notificationType)).Funcs(templateFuncs).Parse(text))
}
