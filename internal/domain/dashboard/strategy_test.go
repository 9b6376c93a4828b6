package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownRolesHaveFacets(t *testing.T) {
	for _, role := range KnownRoles() {
		p, err := Resolve(role)

		require.NoError(t, err, role)
		assert.NotEmpty(t, p.Facets, role)
		assert.NotNil(t, p.Merge, role)
	}
}

func TestResolve_UnknownRole(t *testing.T) {
	for _, role := range []Role{"", "ADMIN", "MENTOR"} {
		_, err := Resolve(role)

		assert.ErrorIs(t, err, ErrUnknownRole, role)
		var ure *UnknownRoleError
		assert.ErrorAs(t, err, &ure)
	}
}

func TestResolve_Aliases(t *testing.T) {
	producer, err := Resolve("producer")
	require.NoError(t, err)
	assert.Equal(t, RoleStartup, producer.Role)

	consumer, err := Resolve(" Investor ")
	require.NoError(t, err)
	assert.Equal(t, RoleInvestor, consumer.Role)
}

func TestResolve_ReturnsCopyOfFacets(t *testing.T) {
	p, err := Resolve(RoleStartup)
	require.NoError(t, err)
	p.Facets[0] = "tampered"

	again, err := Resolve(RoleStartup)
	require.NoError(t, err)
	assert.Equal(t, FacetProfileCompletion, again.Facets[0])
}

// ============================================
// Merge functions
// ============================================

func TestStartupMerge_PassesValuesThrough(t *testing.T) {
	p, _ := Resolve(RoleStartup)

	got := p.Merge(NewResults(
		FacetResult{Facet: FacetProfileCompletion, Value: 80},
		FacetResult{Facet: FacetGeneratedContent, Value: 3},
		FacetResult{Facet: FacetMatches, Value: 5},
		FacetResult{Facet: FacetActiveRelationships, Value: 2},
		FacetResult{Facet: FacetMilestones, Value: 1},
	))

	assert.Equal(t, Fields{80, 3, 5, 2, 1}, got)
}

func TestStartupMerge_FailedFacetDefaultsToZero(t *testing.T) {
	p, _ := Resolve(RoleStartup)

	got := p.Merge(NewResults(
		FacetResult{Facet: FacetProfileCompletion, Value: 80},
		FacetResult{Facet: FacetMatches, Value: 7, Err: ErrNoSource},
	))

	assert.Equal(t, Fields{ProfileCompletion: 80}, got)
}

func TestInvestorMerge_FixedCompletion(t *testing.T) {
	p, _ := Resolve(RoleInvestor)

	got := p.Merge(NewResults(FacetResult{Facet: FacetActiveRelationships, Value: 4}))
	assert.Equal(t, Fields{ProfileCompletion: 100, ActiveRelationshipCount: 4}, got)

	none := p.Merge(NewResults())
	assert.Equal(t, Fields{ProfileCompletion: 100}, none)
}

func TestFields_Normalize(t *testing.T) {
	got := Fields{ProfileCompletion: 140, MatchCount: -2, MilestoneCount: 3}.Normalize()

	assert.Equal(t, Fields{ProfileCompletion: 100, MilestoneCount: 3}, got)
	assert.Equal(t, 0, Fields{ProfileCompletion: -5}.Normalize().ProfileCompletion)
}

func TestResults_Failed(t *testing.T) {
	r := NewResults(
		FacetResult{Facet: FacetMatches, Err: ErrNoSource},
		FacetResult{Facet: FacetMilestones, Value: 1},
	)

	assert.Equal(t, []Facet{FacetMatches}, r.Failed())
	v, ok := r.Value(FacetMilestones)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = r.Value(FacetGeneratedContent)
	assert.False(t, ok)
}
