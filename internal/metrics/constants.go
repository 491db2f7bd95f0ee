package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Gacha metric names
const (
	MetricNameDrawsTotal     = "gacha_draws_total"
	MetricNamePityTriggers   = "gacha_pity_triggers_total"
	MetricNamePullRequests   = "gacha_pull_requests_total"
	MetricNameDiamondsSpent  = "gacha_diamonds_spent_total"
	MetricNameDiamondsEarned = "gacha_diamonds_earned_total"
	MetricNameProfileCache   = "gacha_profile_cache_lookups_total"
	MetricNameConfigReloads  = "gacha_config_reload_checks_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextDrawsTotal           = "Draw outcomes by rarity tier"
	HelpTextPityTriggers         = "Draw outcomes by the rule that selected the tier"
	HelpTextPullRequests         = "Pull requests by draw count and result"
	HelpTextDiamondsSpent        = "Diamonds debited for draws"
	HelpTextDiamondsEarned       = "Diamonds granted by rewards"
	HelpTextProfileCache         = "Profile cache lookups by result"
	HelpTextConfigReloads        = "Pool config re-validations after a file change"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelTier    = "tier"
	LabelTrigger = "trigger"
	LabelCount   = "count"
	LabelResult  = "result"
	LabelSource  = "source"
)

// Label values
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultValid = "valid"
	ResultBad   = "invalid"

	CountInvalid = "invalid"

	SourceSignIn = "sign_in"
	SourceRedeem = "redeem"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
