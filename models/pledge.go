package models

import (
	"fmt"
	"time"
)

// Issue is read joined with its repository so the public URL can be built without extra lookups
type Issue struct {
	ID              string    `db:"id"               json:"id"`
	Number          int       `db:"number"           json:"number"`
	Title           string    `db:"title"            json:"title"`
	RepositoryID    string    `db:"repository_id"    json:"repository_id"`
	RepositoryName  string    `db:"repository_name"  json:"repository_name"`
	RepositoryOwner string    `db:"repository_owner" json:"repository_owner"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

func (i *Issue) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", i.RepositoryOwner, i.RepositoryName, i.Number)
}

// Pledge amounts are stored in cents
type Pledge struct {
	ID               string    `db:"id"                 json:"id"`
	IssueID          string    `db:"issue_id"           json:"issue_id"`
	Amount           int64     `db:"amount"             json:"amount"`
	State            string    `db:"state"              json:"state"`
	ByOrganizationID *string   `db:"by_organization_id" json:"by_organization_id"`
	ByUserID         *string   `db:"by_user_id"         json:"by_user_id"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
}

type PullRequest struct {
	ID              string    `db:"id"               json:"id"`
	Number          int       `db:"number"           json:"number"`
	Title           string    `db:"title"            json:"title"`
	AuthorLogin     string    `db:"author_login"     json:"author_login"`
	RepositoryName  string    `db:"repository_name"  json:"repository_name"`
	RepositoryOwner string    `db:"repository_owner" json:"repository_owner"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

func (p *PullRequest) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", p.RepositoryOwner, p.RepositoryName, p.Number)
}
