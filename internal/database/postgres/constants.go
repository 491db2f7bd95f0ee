package postgres

const tablePullHistory = "pull_history"

const userColumns = `user_id, diamonds, total_pulls, pulls_since_tier3, pulls_since_tier2,
	tier3_count, tier2_count, tier1_count, last_sign_in, created_at`
