package role

// Role describes one rehearsable job role. The catalog is a closed
// enumeration supplied to the UI; the session itself accepts any role string
// unchanged, so the catalog is advisory rather than a validation gate.
type Role struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Seed returns the default rehearsal roles.
func Seed() []Role {
	return []Role{
		{ID: "marketing-associate", Title: "Marketing Associate", Description: "Campaign planning, channel metrics, audience positioning."},
		{ID: "business-development-representative", Title: "Business Development Representative", Description: "Outbound prospecting, qualification, objection handling."},
		{ID: "product-manager", Title: "Product Manager", Description: "Roadmaps, prioritization, cross-functional delivery."},
		{ID: "customer-success-representative", Title: "Customer Success Representative", Description: "Onboarding, retention, escalation management."},
		{ID: "data-analyst", Title: "Data Analyst", Description: "SQL, dashboards, experiment readouts."},
		{ID: "content-creator", Title: "Content Creator", Description: "Editorial voice, publishing cadence, audience growth."},
		{ID: "ai-engineer", Title: "AI Engineer", Description: "Model integration, evaluation, production ML systems."},
	}
}
