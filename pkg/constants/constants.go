// Package constants holds values shared across hemicycle packages:
// timeouts, permissions, limits and the default dataset locations.
package constants

import "time"

// Timeouts
const (
	// DefaultHTTPTimeout bounds a single dataset download.
	DefaultHTTPTimeout = 30 * time.Second

	// LoadTimeout bounds the whole fetch-and-reconcile pipeline.
	LoadTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the API server waits for in-flight requests.
	ShutdownTimeout = 10 * time.Second

	// DefaultRefreshInterval is how often a long-running client reloads the
	// datasets when auto-updates are on.
	DefaultRefreshInterval = 1 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limits
const (
	// MaxDatasetBytes caps how much of a dataset response is read.
	MaxDatasetBytes = 64 << 20

	// DefaultPageSize is the default number of members per API page.
	DefaultPageSize = 100

	// MaxPageSize is the maximum allowed page size.
	MaxPageSize = 1000
)

// Cache
const (
	// CacheTTL is how long a computed seat layout stays cached by the server.
	CacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often expired layouts are evicted.
	CacheCleanupInterval = 5 * time.Minute
)

// Dataset locations
const (
	// DefaultVotingSource is the voting dataset read when none is configured.
	DefaultVotingSource = "data.json"

	// DefaultContactsSource is the contact directory read when none is configured.
	DefaultContactsSource = "contacts.json"

	// DefaultConfigPath is the user config file.
	DefaultConfigPath = "~/.hemicycle.yaml"
)

// Presentation
const (
	// Unknown is shown for absent contact fields.
	Unknown = "Bilinmiyor"

	// DefaultImageURL is used for members without a portrait.
	DefaultImageURL = "https://cdn.tbmm.gov.tr/TBMMWeb/resim/mv_resim_default.png"

	// BillSearchURL is the parliament site search endpoint used for bill links.
	BillSearchURL = "https://www.tbmm.gov.tr/Arama/Sonuc"

	// ShortTitleLength is the rune count kept in abbreviated bill titles.
	ShortTitleLength = 45

	// DefaultLayoutWidth is the container width used when none is given.
	DefaultLayoutWidth = 1000.0
)
