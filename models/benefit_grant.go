package models

type BenefitGrantStatus string

const (
	BenefitGrantStatusGranted BenefitGrantStatus = "granted"
	BenefitGrantStatusSkipped BenefitGrantStatus = "skipped"
	BenefitGrantStatusFailed  BenefitGrantStatus = "failed"
)

// Reasons attached to skipped and failed grants
const (
	BenefitGrantReasonNoRole             = "no_role"
	BenefitGrantReasonNoOrganization     = "no_organization"
	BenefitGrantReasonNoGuild            = "no_guild"
	BenefitGrantReasonNoAccount          = "no_account"
	BenefitGrantReasonNoDiscordIdentity  = "no_discord_identity"
	BenefitGrantReasonDiscordAddMember   = "discord_add_member"
	BenefitGrantReasonRevokeNotSupported = "revoke_not_supported"
)

// BenefitGrantResult tells granted, skipped and failed outcomes apart.
// Member holds the Discord member or role document when granted.
type BenefitGrantResult struct {
	Status BenefitGrantStatus `json:"status"`
	Reason string             `json:"reason,omitempty"`
	Member map[string]any     `json:"member,omitempty"`
}

func GrantedBenefit(member map[string]any) BenefitGrantResult {
	return BenefitGrantResult{Status: BenefitGrantStatusGranted, Member: member}
}

func SkippedBenefit(reason string) BenefitGrantResult {
	return BenefitGrantResult{Status: BenefitGrantStatusSkipped, Reason: reason}
}

func FailedBenefit(reason string) BenefitGrantResult {
	return BenefitGrantResult{Status: BenefitGrantStatusFailed, Reason: reason}
}

// String renders the result as status or status:reason
func (r BenefitGrantResult) String() string {
	if r.Reason == "" {
		return string(r.Status)
	}
	return string(r.Status) + ":" + r.Reason
}
