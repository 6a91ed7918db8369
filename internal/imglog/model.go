// Package imglog manages the append-only upload log and its persistence.
package imglog

// LogEntry is one record per successful upload. Entries are immutable
// once written; re-uploads under the same filename append new rows and
// resolution picks the newest by CreatedAt.
type LogEntry struct {
	// ID is the provider-assigned handle (Telegram file_id) or a
	// generated UUID. Treated as the application-level primary key.
	ID string `json:"id"`
	// URL is a relative pointer into the owning provider's namespace
	// at write time. Historical rows may hold absolute or mangled
	// values; see the urlfix package.
	URL string `json:"url"`
	// Provider is the raw stored tag. Normalize it through the
	// provider package before use: historical spellings vary.
	Provider string `json:"provider"`
	// Filename is the logical user-facing name. Not unique.
	Filename string `json:"filename"`
	// CreatedAt is the upload timestamp in milliseconds since epoch,
	// the ordering key and the pagination cursor.
	CreatedAt int64 `json:"created_at"`
}
