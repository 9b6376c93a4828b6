package dashboard

import "strings"

// Role is the user role tag issued by the identity resolver.
type Role string

const (
	// RoleStartup is the producer role: it owns a profile, pitches and milestones.
	RoleStartup Role = "STARTUP"
	// RoleInvestor is the consumer role: it only has relationships.
	RoleInvestor Role = "INVESTOR"
	RoleAdmin    Role = "ADMIN"
)

// investorProfileCompletion is reported for investors, whose profile has no
// partial-completion notion once created.
const investorProfileCompletion = 100

var roleAliases = map[string]Role{
	"PRODUCER": RoleStartup,
	"CONSUMER": RoleInvestor,
}

// ParseRole normalizes a role tag. It does not check that a profile exists.
func ParseRole(s string) Role {
	r := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := roleAliases[r]; ok {
		return alias
	}
	return Role(r)
}

// MergeFunc maps facet outcomes to snapshot fields. It must be pure.
type MergeFunc func(Results) Fields

// RoleProfile says which facets a role aggregates and how they combine.
type RoleProfile struct {
	Role   Role
	Facets []Facet
	Merge  MergeFunc
}

var profiles = map[Role]RoleProfile{
	RoleStartup: {
		Role: RoleStartup,
		Facets: []Facet{
			FacetProfileCompletion,
			FacetGeneratedContent,
			FacetMatches,
			FacetActiveRelationships,
			FacetMilestones,
		},
		Merge: func(r Results) Fields {
			return Fields{
				ProfileCompletion:       r.Int(FacetProfileCompletion),
				GeneratedContentCount:   r.Int(FacetGeneratedContent),
				MatchCount:              r.Int(FacetMatches),
				ActiveRelationshipCount: r.Int(FacetActiveRelationships),
				MilestoneCount:          r.Int(FacetMilestones),
			}
		},
	},
	RoleInvestor: {
		Role:   RoleInvestor,
		Facets: []Facet{FacetActiveRelationships},
		Merge: func(r Results) Fields {
			return Fields{
				ProfileCompletion:       investorProfileCompletion,
				ActiveRelationshipCount: r.Int(FacetActiveRelationships),
			}
		},
	},
}

// Resolve returns the profile for role. Unknown roles yield an error
// matching ErrUnknownRole.
func Resolve(role Role) (RoleProfile, error) {
	p, ok := profiles[ParseRole(string(role))]
	if !ok {
		return RoleProfile{}, &UnknownRoleError{Role: role}
	}
	p.Facets = append([]Facet(nil), p.Facets...)
	return p, nil
}

// KnownRoles lists the roles that have a profile.
func KnownRoles() []Role {
	return []Role{RoleStartup, RoleInvestor}
}
