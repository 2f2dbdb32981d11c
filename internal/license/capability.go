package license

// Capability names. One route = one capability; the matrix below is the only
// place role lists are written down, so pages cannot drift apart.
const (
	CapViewProducts    = "products.view"
	CapManageProducts  = "products.manage"
	CapDeleteProducts  = "products.delete"
	CapAdjustStock     = "products.adjust_stock"
	CapViewCustomers   = "customers.view"
	CapManageCustomers = "customers.manage"
	CapViewSuppliers   = "suppliers.view"
	CapManageSuppliers = "suppliers.manage"
	CapViewSales       = "sales.view"
	CapCreateSales     = "sales.create"
	CapViewPurchases   = "purchases.view"
	CapCreatePurchases = "purchases.create"
	CapViewAlerts      = "alerts.view"
	CapViewMovements   = "movements.view"
	CapViewReports     = "reports.view"
	CapExportReports   = "reports.export"
	CapViewDashboard   = "dashboard.view"
	CapSearch          = "search"
	CapManageUsers     = "users.manage"
)

// capabilityMatrix: capability → roles allowed. tester is read-only
// everywhere; contabilidad reads trade/reports but manages nothing;
// vendedor runs day-to-day trade; admin does everything.
var capabilityMatrix = map[string][]string{
	CapViewProducts:    {"admin", "vendedor", "contabilidad", "tester"},
	CapManageProducts:  {"admin", "vendedor"},
	CapDeleteProducts:  {"admin"},
	CapAdjustStock:     {"admin"},
	CapViewCustomers:   {"admin", "vendedor", "contabilidad", "tester"},
	CapManageCustomers: {"admin", "vendedor"},
	CapViewSuppliers:   {"admin", "vendedor", "contabilidad", "tester"},
	CapManageSuppliers: {"admin"},
	CapViewSales:       {"admin", "vendedor", "contabilidad", "tester"},
	CapCreateSales:     {"admin", "vendedor"},
	CapViewPurchases:   {"admin", "vendedor", "contabilidad", "tester"},
	CapCreatePurchases: {"admin"},
	CapViewAlerts:      {"admin", "vendedor", "contabilidad", "tester"},
	CapViewMovements:   {"admin", "vendedor", "contabilidad", "tester"},
	CapViewReports:     {"admin", "contabilidad", "tester"},
	CapExportReports:   {"admin", "contabilidad"},
	CapViewDashboard:   {"admin", "vendedor", "contabilidad", "tester"},
	CapSearch:          {"admin", "vendedor", "contabilidad", "tester"},
	CapManageUsers:     {"admin"},
}

// capabilityFeature maps capabilities to the demo feature that must be
// visible for the demo tiers to exercise them.
var capabilityFeature = map[string]string{
	CapViewProducts:    FeatureProducts,
	CapManageProducts:  FeatureProducts,
	CapDeleteProducts:  FeatureProducts,
	CapAdjustStock:     FeatureProducts,
	CapViewCustomers:   FeatureCustomers,
	CapManageCustomers: FeatureCustomers,
	CapViewSuppliers:   FeatureSuppliers,
	CapManageSuppliers: FeatureSuppliers,
	CapViewSales:       FeatureSales,
	CapCreateSales:     FeatureSales,
	CapViewPurchases:   FeaturePurchases,
	CapCreatePurchases: FeaturePurchases,
	CapViewAlerts:      FeatureAlerts,
	CapViewMovements:   FeatureAlerts,
	CapViewReports:     FeatureReports,
	CapExportReports:   FeatureReports,
	CapViewDashboard:   FeatureDashboard,
	CapSearch:          FeatureSearch,
	CapManageUsers:     FeatureUsers,
}

// Allowed is the single role×capability lookup consumed by the middleware.
// Demo accounts additionally need the backing feature in their tier.
func (g *Gate) Allowed(role, email, capability string) bool {
	roles, ok := capabilityMatrix[capability]
	if !ok {
		return false
	}
	roleOK := false
	for _, r := range roles {
		if r == role {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return false
	}
	if feature, ok := capabilityFeature[capability]; ok {
		return g.HasFeature(email, feature)
	}
	return true
}
