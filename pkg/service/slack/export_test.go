package slack

// Export internal functions for testing
var (
	BuildSummary = buildSummary
	BuildDetail  = buildDetail
)
