package models

import (
	"encoding/json"

	"github.com/jmoiron/sqlx/types"
)

type SubscriptionBenefitType string

const SubscriptionBenefitTypeDiscord SubscriptionBenefitType = "discord"

type SubscriptionBenefit struct {
	ID          string                  `db:"id"          json:"id"`
	Type        SubscriptionBenefitType `db:"type"        json:"type"`
	Description string                  `db:"description" json:"description"`
	Properties  types.JSONText          `db:"properties"  json:"properties"`
}

// DiscordBenefitProperties is the shape of Properties for discord benefits
type DiscordBenefitProperties struct {
	RoleID string `json:"role_id"`
}

// DiscordProperties decodes the benefit properties; malformed properties decode to the zero value
func (b *SubscriptionBenefit) DiscordProperties() DiscordBenefitProperties {
	var props DiscordBenefitProperties
	if len(b.Properties) == 0 {
		return props
	}
	_ = json.Unmarshal(b.Properties, &props)
	return props
}

type Subscription struct {
	ID                 string  `db:"id"                   json:"id"`
	UserID             string  `db:"user_id"              json:"user_id"`
	SubscriptionTierID string  `db:"subscription_tier_id" json:"subscription_tier_id"`
	TierOrganizationID *string `db:"tier_organization_id" json:"tier_organization_id"`
}
