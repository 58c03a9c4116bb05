package types

import "time"

// Platform is an operating system a game ships assets for, derived from
// the key names of a metadata file's asset_infos object.
type Platform string

const (
	PlatformWindows Platform = "Windows"
	PlatformMac     Platform = "Mac"
	PlatformLinux   Platform = "Linux"
)

// KeyImage is one artwork descriptor from a game's metadata.keyImages list.
type KeyImage struct {
	Alt        string    `json:"alt,omitempty"`
	Kind       string    `json:"kind"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	SizeBytes  int64     `json:"size_bytes"`
}

// Game represents one entry of the legendary library, built from that
// game's metadata file and the installed state.
type Game struct {
	// ID is AppName when present, otherwise a token generated for this
	// load only. Records without an AppName never survive filtering, so
	// the token never reaches the frontend.
	ID             string     `json:"id"`
	AppName        string     `json:"app_name"`
	Title          string     `json:"title"`
	Platforms      []Platform `json:"platforms"`
	Image          *KeyImage  `json:"image,omitempty"`
	IsDownloaded   bool       `json:"is_downloaded"`
	RequiresUpdate bool       `json:"requires_update"`

	// SourcePath is the metadata file this record was read from. The
	// update check re-reads it to compare build versions.
	SourcePath string `json:"-"`
}

// UserInfo is the display information stored in the session marker file.
type UserInfo struct {
	DisplayName string `json:"display_name"`
}
