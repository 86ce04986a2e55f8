package utils

import (
	"slices"

	"botswatter/models"

	"github.com/bwmarrin/discordgo"
)

// Auth provides methods for authorization checks.
type Auth struct {
	config models.AuthConfig
}

// NewAuth creates a new Auth instance from the commands.auth configuration.
func NewAuth(cfg models.AuthConfig) *Auth {
	return &Auth{config: cfg}
}

// IsDeveloper checks if a user is a developer.
func (a *Auth) IsDeveloper(userID string) bool {
	return slices.Contains(a.config.Developers, userID)
}

// IsAdmin checks if a member holds one of the configured admin roles.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	for _, roleID := range member.Roles {
		if slices.Contains(a.config.AdminsRoles, roleID) {
			return true
		}
	}
	return false
}

// CheckPermission allows developers, configured admin roles, members with the
// Administrator bit, and members holding every bit in required.
func (a *Auth) CheckPermission(member *discordgo.Member, required int64) bool {
	if member == nil {
		return false
	}
	if member.User != nil && a.IsDeveloper(member.User.ID) {
		return true
	}
	if a.IsAdmin(member) {
		return true
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return required != 0 && member.Permissions&required == required
}
