package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	g := NewGate()

	assert.Equal(t, TierBasic, g.TierFor("basic@demo.com"))
	assert.Equal(t, TierSales, g.TierFor("sales@demo.com"))
	assert.Equal(t, TierEnterprise, g.TierFor("enterprise@demo.com"))

	// Exact match only — no domain wildcards, no case folding.
	assert.Equal(t, TierNone, g.TierFor("other@demo.com"))
	assert.Equal(t, TierNone, g.TierFor("BASIC@demo.com"))
	assert.Equal(t, TierNone, g.TierFor("ana@opero.local"))
	assert.Equal(t, TierNone, g.TierFor(""))
}

func TestTiersAreNested(t *testing.T) {
	g := NewGate()
	basic := g.Features(TierBasic)
	sales := g.Features(TierSales)
	enterprise := g.Features(TierEnterprise)

	assert.Len(t, basic, 4)
	assert.Len(t, sales, 6)
	assert.Len(t, enterprise, 10)

	// basic ⊂ sales ⊂ enterprise by construction
	assert.Equal(t, basic, sales[:len(basic)])
	assert.Equal(t, sales, enterprise[:len(sales)])

	assert.Nil(t, g.Features(TierNone))
}

func TestHasFeature(t *testing.T) {
	g := NewGate()

	// Non-demo identities see everything.
	assert.True(t, g.HasFeature("ana@opero.local", FeatureReports))
	assert.True(t, g.HasFeature("ana@opero.local", FeatureUsers))

	assert.True(t, g.HasFeature("basic@demo.com", FeatureDashboard))
	assert.True(t, g.HasFeature("basic@demo.com", FeatureSearch))
	assert.False(t, g.HasFeature("basic@demo.com", FeatureSales))
	assert.False(t, g.HasFeature("basic@demo.com", FeatureReports))

	assert.True(t, g.HasFeature("sales@demo.com", FeatureSales))
	assert.True(t, g.HasFeature("sales@demo.com", FeatureAlerts))
	assert.False(t, g.HasFeature("sales@demo.com", FeaturePurchases))

	assert.True(t, g.HasFeature("enterprise@demo.com", FeatureUsers))
}

func TestAllowed(t *testing.T) {
	g := NewGate()
	email := "ana@opero.local"

	// tester is read-only everywhere.
	assert.True(t, g.Allowed("tester", email, CapViewProducts))
	assert.True(t, g.Allowed("tester", email, CapViewReports))
	assert.False(t, g.Allowed("tester", email, CapManageProducts))
	assert.False(t, g.Allowed("tester", email, CapCreateSales))
	assert.False(t, g.Allowed("tester", email, CapExportReports))

	// vendedor sells but never purchases or administers.
	assert.True(t, g.Allowed("vendedor", email, CapCreateSales))
	assert.False(t, g.Allowed("vendedor", email, CapCreatePurchases))
	assert.False(t, g.Allowed("vendedor", email, CapManageUsers))
	assert.False(t, g.Allowed("vendedor", email, CapViewReports))

	// contabilidad reads trade and exports reports, manages nothing.
	assert.True(t, g.Allowed("contabilidad", email, CapViewSales))
	assert.True(t, g.Allowed("contabilidad", email, CapExportReports))
	assert.False(t, g.Allowed("contabilidad", email, CapManageCustomers))

	assert.True(t, g.Allowed("admin", email, CapManageUsers))
	assert.True(t, g.Allowed("admin", email, CapAdjustStock))

	// Unknown role or capability never passes.
	assert.False(t, g.Allowed("intern", email, CapViewProducts))
	assert.False(t, g.Allowed("admin", email, "products.archive"))
}

func TestDemoAccountsAreReadOnly(t *testing.T) {
	g := NewGate()

	// Demo accounts carry the tester role; whatever their tier shows, no
	// mutating capability may pass for them.
	mutating := []string{
		CapManageProducts, CapDeleteProducts, CapAdjustStock,
		CapManageCustomers, CapManageSuppliers,
		CapCreateSales, CapCreatePurchases,
		CapExportReports, CapManageUsers,
	}
	for _, email := range []string{"basic@demo.com", "sales@demo.com", "enterprise@demo.com"} {
		for _, capability := range mutating {
			assert.False(t, g.Allowed("tester", email, capability),
				"%s must not hold %s", email, capability)
		}
	}
}

func TestAllowedDemoFeatureGate(t *testing.T) {
	g := NewGate()

	// The role permits the capability, but the basic tier hides the sales
	// feature, so the demo account is still denied.
	assert.True(t, g.Allowed("vendedor", "basic@demo.com", CapViewProducts))
	assert.False(t, g.Allowed("vendedor", "basic@demo.com", CapCreateSales))
	assert.True(t, g.Allowed("vendedor", "sales@demo.com", CapCreateSales))

	assert.False(t, g.Allowed("admin", "sales@demo.com", CapCreatePurchases))
	assert.True(t, g.Allowed("admin", "enterprise@demo.com", CapCreatePurchases))
}
