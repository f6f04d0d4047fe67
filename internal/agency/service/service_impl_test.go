package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/setterhq/setter-crm/internal/agency/domain"
	agencyrepo "github.com/setterhq/setter-crm/internal/agency/repository"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	profilerepo "github.com/setterhq/setter-crm/internal/profile/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAgencyService(t *testing.T) (domain.Service, domain.Repository, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&profiledomain.Profile{},
		&domain.Agency{},
		&domain.AgencyMember{},
		&domain.AgencyInvitation{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	profiles := profilerepo.NewRepository(gdb)
	repo := agencyrepo.NewRepository(gdb, profiles, zap.NewNop())
	return NewService(node, gdb, repo, zap.NewNop()), repo, gdb
}

func TestCreateAgencyAddsOwnerMembership(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupAgencyService(t)
	ownerID := snowflake.ID(100)

	agency, err := svc.Create(ctx, ownerID, domain.CreateAgencyRequest{Name: "Closers Inc"})
	require.NoError(t, err)
	assert.NotEmpty(t, agency.Slug)

	member, err := repo.GetMembership(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, domain.RoleOwner, member.Role)
	assert.Equal(t, agency.ID, member.AgencyID)
}

func TestCreateAgencyRejectsExistingMember(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAgencyService(t)
	ownerID := snowflake.ID(101)

	_, err := svc.Create(ctx, ownerID, domain.CreateAgencyRequest{Name: "First"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, ownerID, domain.CreateAgencyRequest{Name: "Second"})
	assert.ErrorIs(t, err, domain.ErrAlreadyInAgency)
}

func TestResolveMembershipRowWinsOverOwnership(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupAgencyService(t)
	userID := snowflake.ID(102)

	// The user owns agency B on paper but holds a setter membership in
	// agency A; the membership row decides.
	ownerOnly := &domain.Agency{ID: snowflake.ID(2001), Name: "Owned", Slug: "owned", OwnerID: userID}
	require.NoError(t, repo.CreateAgency(ctx, ownerOnly))

	memberOf := &domain.Agency{ID: snowflake.ID(2002), Name: "Joined", Slug: "joined", OwnerID: snowflake.ID(999)}
	require.NoError(t, repo.CreateAgency(ctx, memberOf))
	require.NoError(t, repo.AddMember(ctx, &domain.AgencyMember{
		ID:       snowflake.ID(3001),
		AgencyID: memberOf.ID,
		UserID:   userID,
		Role:     domain.RoleSetter,
	}))

	scope, err := svc.Resolve(ctx, userID)
	require.NoError(t, err)
	require.True(t, scope.HasAgency())
	assert.Equal(t, memberOf.ID, scope.Agency.ID)
	assert.Equal(t, domain.RoleSetter, scope.Role)
}

func TestResolveFallsBackToOwnership(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupAgencyService(t)
	userID := snowflake.ID(103)

	owned := &domain.Agency{ID: snowflake.ID(2003), Name: "Legacy", Slug: "legacy", OwnerID: userID}
	require.NoError(t, repo.CreateAgency(ctx, owned))

	scope, err := svc.Resolve(ctx, userID)
	require.NoError(t, err)
	require.True(t, scope.HasAgency())
	assert.Equal(t, owned.ID, scope.Agency.ID)
	assert.Equal(t, domain.RoleOwner, scope.Role)
}

func TestResolveSoloUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAgencyService(t)

	scope, err := svc.Resolve(ctx, snowflake.ID(104))
	require.NoError(t, err)
	assert.False(t, scope.HasAgency())
}

func TestInviteMemberRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAgencyService(t)

	owner := snowflake.ID(105)
	agency, err := svc.Create(ctx, owner, domain.CreateAgencyRequest{Name: "Team"})
	require.NoError(t, err)

	setterScope := domain.Scope{UserID: snowflake.ID(106), Agency: agency, Role: domain.RoleSetter}
	_, err = svc.InviteMember(ctx, setterScope, domain.InviteRequest{Email: "new@example.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	ownerScope := domain.Scope{UserID: owner, Agency: agency, Role: domain.RoleOwner}
	invite, err := svc.InviteMember(ctx, ownerScope, domain.InviteRequest{Email: "New@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", invite.Email)
	assert.Equal(t, domain.RoleSetter, invite.Role)
}

func TestInviteMemberRejectsOwnerRole(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAgencyService(t)

	owner := snowflake.ID(107)
	agency, err := svc.Create(ctx, owner, domain.CreateAgencyRequest{Name: "Team"})
	require.NoError(t, err)

	scope := domain.Scope{UserID: owner, Agency: agency, Role: domain.RoleOwner}
	_, err = svc.InviteMember(ctx, scope, domain.InviteRequest{Email: "x@example.com", Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAcceptInvitationToleratesRetriedAccept(t *testing.T) {
	ctx := context.Background()
	svc, repo, gdb := setupAgencyService(t)

	owner := snowflake.ID(108)
	agency, err := svc.Create(ctx, owner, domain.CreateAgencyRequest{Name: "Team"})
	require.NoError(t, err)

	scope := domain.Scope{UserID: owner, Agency: agency, Role: domain.RoleOwner}
	invite, err := svc.InviteMember(ctx, scope, domain.InviteRequest{Email: "joiner@example.com"})
	require.NoError(t, err)

	joiner := snowflake.ID(109)
	// Simulate a retry: the member row already landed but the status
	// flip did not.
	require.NoError(t, repo.AddMember(ctx, &domain.AgencyMember{
		ID:       snowflake.ID(3002),
		AgencyID: agency.ID,
		UserID:   joiner,
		Role:     domain.RoleSetter,
	}))

	require.NoError(t, svc.AcceptInvitation(ctx, joiner, "joiner@example.com", invite.ID))

	var memberCount int64
	require.NoError(t, gdb.Model(&domain.AgencyMember{}).
		Where("agency_id = ? AND user_id = ?", agency.ID, joiner).
		Count(&memberCount).Error)
	assert.Equal(t, int64(1), memberCount)

	updated, err := repo.GetInvitation(ctx, invite.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusAccepted, updated.Status)

	// Accepting an already accepted invite fails cleanly.
	err = svc.AcceptInvitation(ctx, joiner, "joiner@example.com", invite.ID)
	assert.ErrorIs(t, err, domain.ErrInviteNotPending)
}

func TestAcceptInvitationChecksEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAgencyService(t)

	owner := snowflake.ID(110)
	agency, err := svc.Create(ctx, owner, domain.CreateAgencyRequest{Name: "Team"})
	require.NoError(t, err)

	scope := domain.Scope{UserID: owner, Agency: agency, Role: domain.RoleOwner}
	invite, err := svc.InviteMember(ctx, scope, domain.InviteRequest{Email: "right@example.com"})
	require.NoError(t, err)

	err = svc.AcceptInvitation(ctx, snowflake.ID(111), "wrong@example.com", invite.ID)
	assert.ErrorIs(t, err, domain.ErrInviteWrongEmail)
}

func TestRemoveMemberProtectsOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAgencyService(t)

	owner := snowflake.ID(113)
	agency, err := svc.Create(ctx, owner, domain.CreateAgencyRequest{Name: "Team"})
	require.NoError(t, err)

	scope := domain.Scope{UserID: owner, Agency: agency, Role: domain.RoleOwner}
	err = svc.RemoveMember(ctx, scope, owner)
	assert.ErrorIs(t, err, domain.ErrCannotRemoveOwner)
}
