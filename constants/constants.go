package constants

// Event Names
const (
	EventLibraryLoaded = "library-loaded"
	EventLoginStatus   = "login-status"
)

// Legendary on-disk layout, relative to its config root
const (
	UserFile      = "user.json"
	UserLockFile  = "user.json.lock"
	InstalledFile = "installed.json"
	MetadataDir   = "metadata"
)

// ConfigPathEnv points the legendary CLI at a config root.
const ConfigPathEnv = "LEGENDARY_CONFIG_PATH"

// DefaultBinary is the binary name used when the config does not
// override it.
const DefaultBinary = "legendary"

// Path Components
const (
	AppDir     = "go-legendary-launch"
	ConfigFile = "config.json"
	LogFile    = "launcher.log"
)

// Artwork kinds in priority order. BoxArt and BoxArtTall win outright;
// BoxLogo and Thumbnail are fallbacks.
const (
	ImageBoxArt     = "BoxArt"
	ImageBoxArtTall = "BoxArtTall"
	ImageBoxLogo    = "BoxLogo"
	ImageThumbnail  = "Thumbnail"
)
