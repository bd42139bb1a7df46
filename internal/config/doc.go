// Package config handles configuration loading for the atelier backend.
//
// Configuration is loaded from YAML files with environment variable
// expansion and validation. Development defaults are provided for every
// field so a bare `atelier serve` works with no config file edits.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${ATELIER_JWT_SECRET}"
//
// In addition, ATELIER_JWT_SECRET, ATELIER_DEV_PASSWORD and GEMINI_API_KEY
// override their config file counterparts directly when set.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "127.0.0.1:8080"
//
//	database:
//	  path: "atelier.db"
//
//	auth:
//	  jwt_secret: "${ATELIER_JWT_SECRET}"   # insecure default for dev
//	  dev_password: "${ATELIER_DEV_PASSWORD}"
//	  token_ttl: "720h"                     # 30 days
//
//	ai:
//	  api_key: "${GEMINI_API_KEY}"
//	  model: "gemini-2.0-flash"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// The auth defaults are development stand-ins and must be overridden for
// any non-local deployment.
package config
