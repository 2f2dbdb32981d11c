// Package license implements demo-mode feature gating. The three reserved
// demo accounts map to nested tiers; every other identity (authenticated or
// not) is "not demo" and sees every feature — real users are gated by the
// capability matrix instead.
package license

// Tier identifies a demo license level.
type Tier string

const (
	TierNone       Tier = "" // not a demo account
	TierBasic      Tier = "basic"
	TierSales      Tier = "sales"
	TierEnterprise Tier = "enterprise"
)

// Feature names used across the API and UI.
const (
	FeatureDashboard = "dashboard"
	FeatureProducts  = "products"
	FeatureCustomers = "customers"
	FeatureSales     = "sales"
	FeatureSuppliers = "suppliers"
	FeaturePurchases = "purchases"
	FeatureAlerts    = "alerts"
	FeatureReports   = "reports"
	FeatureSearch    = "search"
	FeatureUsers     = "users"
)

// orderedFeatures is the single source of truth for tier contents. Tiers are
// prefixes of this list, so basic ⊂ sales ⊂ enterprise holds by construction
// instead of by hand-maintained literals.
var orderedFeatures = []string{
	// basic
	FeatureDashboard,
	FeatureProducts,
	FeatureCustomers,
	FeatureSearch,
	// sales
	FeatureSales,
	FeatureAlerts,
	// enterprise
	FeatureSuppliers,
	FeaturePurchases,
	FeatureReports,
	FeatureUsers,
}

var tierCutoffs = map[Tier]int{
	TierBasic:      4,
	TierSales:      6,
	TierEnterprise: len(orderedFeatures),
}

// demoAccounts maps the reserved demo addresses to their tier. Exact match
// only — no domain wildcards.
var demoAccounts = map[string]Tier{
	"basic@demo.com":      TierBasic,
	"sales@demo.com":      TierSales,
	"enterprise@demo.com": TierEnterprise,
}

// Gate answers "is feature X visible for this identity" queries.
type Gate struct{}

func NewGate() *Gate { return &Gate{} }

// TierFor classifies an email. TierNone means not in demo mode.
func (g *Gate) TierFor(email string) Tier {
	return demoAccounts[email]
}

// HasFeature reports whether the identity may see the named feature.
// Non-demo identities see everything.
func (g *Gate) HasFeature(email, feature string) bool {
	tier := g.TierFor(email)
	if tier == TierNone {
		return true
	}
	cutoff := tierCutoffs[tier]
	for i := 0; i < cutoff; i++ {
		if orderedFeatures[i] == feature {
			return true
		}
	}
	return false
}

// Features returns the tier's full feature list (empty slice for non-demo —
// callers should treat that as "all features").
func (g *Gate) Features(tier Tier) []string {
	cutoff, ok := tierCutoffs[tier]
	if !ok {
		return nil
	}
	out := make([]string, cutoff)
	copy(out, orderedFeatures[:cutoff])
	return out
}
