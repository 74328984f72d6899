package api

import (
	"encoding/json"

	"github.com/bwmarrin/discordgo"

	"fundbackend/models"
)

// DomainUserToAPIUser converts a domain User model to an API UserModel
func DomainUserToAPIUser(domainUser *models.User) *UserModel {
	if domainUser == nil {
		return nil
	}

	return &UserModel{
		ID:        domainUser.ID,
		Username:  domainUser.Username,
		CreatedAt: domainUser.CreatedAt,
		UpdatedAt: domainUser.UpdatedAt,
	}
}

// DomainDiscordServerToAPIDiscordServer converts a stored guild link to its API model
func DomainDiscordServerToAPIDiscordServer(server *models.DiscordServer) *DiscordServer {
	if server == nil {
		return nil
	}

	metadata := json.RawMessage("{}")
	if len(server.GuildMetadata) > 0 {
		metadata = json.RawMessage(server.GuildMetadata)
	}

	return &DiscordServer{
		ID:             server.ID,
		GuildID:        server.GuildID,
		GuildName:      server.GuildName,
		GuildIcon:      server.GuildIcon,
		GuildMetadata:  metadata,
		OrganizationID: server.OrganizationID,
		CreatedAt:      server.CreatedAt,
	}
}

// DiscordgoUserToAPIDiscordUser converts the Discord identity document to its API model
func DiscordgoUserToAPIDiscordUser(user *discordgo.User) *DiscordUser {
	if user == nil {
		return nil
	}

	return &DiscordUser{
		ID:         user.ID,
		Username:   user.Username,
		GlobalName: user.GlobalName,
		Avatar:     user.Avatar,
	}
}
