package dispatch

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeExactAndSuperset(t *testing.T) {
	d := &Descriptor{Name: "ban", RequiredPermissions: discordgo.PermissionBanMembers}

	require.True(t, Authorize(discordgo.PermissionBanMembers, d).Allowed)
	require.True(t, Authorize(discordgo.PermissionBanMembers|discordgo.PermissionKickMembers, d).Allowed)
}

func TestAuthorizeNoRequirement(t *testing.T) {
	d := &Descriptor{Name: "help"}
	require.True(t, Authorize(0, d).Allowed)
}

func TestAuthorizeReportsOnlyMissingBits(t *testing.T) {
	d := &Descriptor{
		Name:                "heavy",
		RequiredPermissions: discordgo.PermissionBanMembers | discordgo.PermissionManageRoles | discordgo.PermissionManageMessages,
	}

	decision := Authorize(discordgo.PermissionManageRoles, d)
	require.False(t, decision.Allowed)
	require.Equal(t, int64(discordgo.PermissionBanMembers|discordgo.PermissionManageMessages), decision.Missing)
}

func TestAuthorizeAdministratorBitIsNotAWildcard(t *testing.T) {
	// The gate compares raw bits; broader-permission semantics are resolved
	// upstream by the platform before the mask reaches us.
	d := &Descriptor{Name: "ban", RequiredPermissions: discordgo.PermissionBanMembers}
	require.False(t, Authorize(discordgo.PermissionAdministrator, d).Allowed)
}

func TestPermissionNamesSortedAndComplete(t *testing.T) {
	names := PermissionNames(discordgo.PermissionManageRoles | discordgo.PermissionBanMembers)
	require.Equal(t, []string{"Ban Members", "Manage Roles"}, names)
}

func TestPermissionNamesUnknownBitRendersAsHex(t *testing.T) {
	names := PermissionNames(int64(1) << 55)
	require.Equal(t, []string{"0x80000000000000"}, names)
}

func TestPermissionNamesEmptyMask(t *testing.T) {
	require.Empty(t, PermissionNames(0))
}
