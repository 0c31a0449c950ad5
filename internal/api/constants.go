package api

// API limits and constants.
const (
	// MaxUploadSize is the maximum allowed size for image uploads (10 MB).
	MaxUploadSize = 10 << 20

	// OpenAPIPath serves the admin API description.
	OpenAPIPath = "/admin/api/openapi"
)

// Cache-Control header values.
const (
	CacheShort   = "public, max-age=60"
	CacheNoStore = "no-store"
)
