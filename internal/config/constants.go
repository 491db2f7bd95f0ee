package config

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Error Messages
const (
	ErrMsgParseEnv          = "parse env"
	ErrMsgInvalidStorage    = "STORAGE must be postgres or memory"
	ErrMsgDatabaseURL       = "DATABASE_URL must be set when STORAGE=postgres"
	ErrMsgInvalidPort       = "PORT must be between 1 and 65535"
	ErrMsgInvalidGRPCPort   = "GRPC_PORT must be between 0 and 65535"
	ErrMsgPortsCollide      = "PORT and GRPC_PORT must differ"
	ErrMsgInvalidCacheSize  = "PROFILE_CACHE_SIZE must be >= 1"
	ErrMsgInvalidCacheTTL   = "PROFILE_CACHE_TTL must be > 0"
	ErrMsgPoolWithoutGame   = "POOL requires GAME"
	ErrMsgInvalidWatchEvery = "CONFIG_WATCH_INTERVAL must be >= 0"
)
