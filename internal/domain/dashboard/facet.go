package dashboard

import "context"

// Facet names one independently fetchable slice of a user's status.
type Facet string

const (
	FacetProfileCompletion   Facet = "profile_completion"
	FacetGeneratedContent    Facet = "generated_content"
	FacetMatches             Facet = "matches"
	FacetActiveRelationships Facet = "active_relationships"
	FacetMilestones          Facet = "milestones"
)

// Source fetches the value of one facet for a user. Implementations are
// expected to honour ctx cancellation but are not required to.
type Source interface {
	Fetch(ctx context.Context, userID string) (int, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, userID string) (int, error)

func (f SourceFunc) Fetch(ctx context.Context, userID string) (int, error) {
	return f(ctx, userID)
}

// Sources maps each facet to the client that owns it.
type Sources map[Facet]Source

// FacetResult is the outcome of one fetch during a single aggregation pass.
type FacetResult struct {
	Facet Facet
	Value int
	Err   error
}

func (r FacetResult) OK() bool { return r.Err == nil }

// Results is the set of facet outcomes handed to a merge function.
type Results struct {
	byFacet map[Facet]FacetResult
}

// NewResults indexes results by facet.
func NewResults(results ...FacetResult) Results {
	m := make(map[Facet]FacetResult, len(results))
	for _, r := range results {
		m[r.Facet] = r
	}
	return Results{byFacet: m}
}

// Value returns the fetched value and whether the facet succeeded.
func (r Results) Value(f Facet) (int, bool) {
	res, ok := r.byFacet[f]
	if !ok || !res.OK() {
		return 0, false
	}
	return res.Value, true
}

// Int returns the fetched value, or 0 when the facet failed or was not fetched.
func (r Results) Int(f Facet) int {
	v, _ := r.Value(f)
	return v
}

// Failed lists the facets that did not produce a value, in no particular order.
func (r Results) Failed() []Facet {
	var out []Facet
	for f, res := range r.byFacet {
		if !res.OK() {
			out = append(out, f)
		}
	}
	return out
}
