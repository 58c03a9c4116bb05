package library

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"go-legendary-launch/metadata"
	"go-legendary-launch/types"
)

// MetadataProvider defines the on-disk state reads needed for building
// the library listing.
type MetadataProvider interface {
	Games() []types.Game
	Installed() map[string]metadata.InstalledEntry
	BuildVersion(sourcePath string) (string, bool)
}

// Service builds the reconciled, sorted game list.
type Service struct {
	meta MetadataProvider
	log  zerolog.Logger
}

// New creates a new Library service.
func New(meta MetadataProvider, log zerolog.Logger) *Service {
	return &Service{meta: meta, log: log}
}

// Load produces the full library listing: metadata records cross
// referenced against the installed state, sorted by title. The listing
// is recomputed wholesale on every call.
func (s *Service) Load() []types.Game {
	games := s.meta.Games()
	installed := s.meta.Installed()

	if len(installed) > 0 {
		for i := range games {
			entry, ok := installed[games[i].AppName]
			if !ok {
				continue
			}
			games[i].IsDownloaded = true
			games[i].RequiresUpdate = s.requiresUpdate(&games[i], entry.Version)
		}
	}

	sortByTitle(games)

	s.log.Info().Int("games", len(games)).Int("installed", len(installed)).Msg("library loaded")
	return games
}

// requiresUpdate compares the installed version against the metadata
// build version. Any failure to read the build version means no update
// is flagged, so a broken file never blocks the listing.
func (s *Service) requiresUpdate(game *types.Game, installedVersion string) bool {
	buildVersion, ok := s.meta.BuildVersion(game.SourcePath)
	if !ok {
		s.log.Debug().Str("app", game.AppName).Msg("update check skipped, build version unreadable")
		return false
	}
	return buildVersion != installedVersion
}

// sortByTitle orders records by title, case-insensitive ascending. The
// sort is stable so equal titles keep their discovery order.
func sortByTitle(games []types.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return strings.ToLower(games[i].Title) < strings.ToLower(games[j].Title)
	})
}
