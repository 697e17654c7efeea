package catalog

// Policy selects which price limit makes a listing qualify. Exactly one
// policy is active per deployment.
type Policy string

const (
	// PolicyStrict qualifies a price at or below the reference price
	PolicyStrict Policy = "strict"
	// PolicyCeiling qualifies a price at or below the model's ceiling
	// when one is set, falling back to the reference price otherwise
	PolicyCeiling Policy = "ceiling"
)

// Evaluate reports whether the price qualifies as a deal for the model
// under the given policy. The bound is inclusive: a price exactly at
// the limit qualifies.
func Evaluate(policy Policy, m Model, price int) bool {
	limit := m.ReferencePrice
	if policy == PolicyCeiling && m.Ceiling > 0 {
		limit = m.Ceiling
	}
	return price <= limit
}
