package utils

import "github.com/bwmarrin/discordgo"

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the interaction member may manage the game:
// either the Discord administrator permission or one of the configured
// admin roles.
func IsAdmin(member *discordgo.Member, adminRoleIDs []string) bool {
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, role := range member.Roles {
		if contains(adminRoleIDs, role) {
			return true
		}
	}
	return false
}
