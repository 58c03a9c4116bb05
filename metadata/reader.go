package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"go-legendary-launch/constants"
	"go-legendary-launch/types"
)

// gameDoc is the subset of a legendary metadata file this app reads.
// Every field is optional: a missing or mistyped key decodes to its zero
// value instead of failing the document.
type gameDoc struct {
	AppName    string               `json:"app_name"`
	AppTitle   string               `json:"app_title"`
	AssetInfos map[string]assetInfo `json:"asset_infos"`
	Metadata   struct {
		KeyImages []keyImageDoc `json:"keyImages"`
	} `json:"metadata"`
}

type assetInfo struct {
	BuildVersion string `json:"build_version"`
}

type keyImageDoc struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	Alt          string `json:"alt"`
	UploadedDate string `json:"uploadedDate"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int64  `json:"size"`
}

// InstalledEntry is one value of legendary's installed.json mapping.
type InstalledEntry struct {
	Version string `json:"version"`
}

// Reader scans the legendary config root for game metadata and install
// state. All reads are best-effort: a broken file costs one record, not
// the whole listing.
type Reader struct {
	fs   afero.Fs
	root string
	log  zerolog.Logger
}

// NewReader creates a Reader over the given config root.
func NewReader(fs afero.Fs, root string, log zerolog.Logger) *Reader {
	return &Reader{fs: fs, root: root, log: log}
}

// Games walks <root>/metadata and parses every JSON file into a record.
// Hidden files and directories are skipped, as are files missing an
// app_name or any platform. A missing metadata directory yields an empty
// slice.
func (r *Reader) Games() []types.Game {
	dir := filepath.Join(r.root, constants.MetadataDir)
	if _, err := r.fs.Stat(dir); err != nil {
		return nil
	}

	var games []types.Game
	err := afero.Walk(r.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			r.log.Debug().Err(err).Str("path", path).Msg("metadata walk error")
			return nil
		}
		name := info.Name()
		if info.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".json") {
			return nil
		}

		game, ok := r.parseFile(path)
		if !ok {
			return nil
		}
		games = append(games, game)
		return nil
	})
	if err != nil {
		r.log.Debug().Err(err).Str("dir", dir).Msg("metadata walk failed")
	}
	return games
}

// parseFile reads one metadata file and applies the retention rules.
func (r *Reader) parseFile(path string) (types.Game, bool) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		r.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable metadata file")
		return types.Game{}, false
	}

	var doc gameDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		r.log.Debug().Err(err).Str("path", path).Msg("skipping malformed metadata file")
		return types.Game{}, false
	}

	game := types.Game{
		AppName:    doc.AppName,
		Title:      doc.AppTitle,
		Platforms:  platformsOf(doc.AssetInfos),
		Image:      pickImage(doc.Metadata.KeyImages),
		SourcePath: path,
	}

	if game.AppName != "" {
		game.ID = game.AppName
	} else {
		game.ID = uuid.NewString()
	}

	if game.AppName == "" || len(game.Platforms) == 0 {
		return types.Game{}, false
	}
	return game, true
}

// Installed parses <root>/installed.json. An absent or unparsable file
// yields an empty mapping, never an error.
func (r *Reader) Installed() map[string]InstalledEntry {
	path := filepath.Join(r.root, constants.InstalledFile)
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return map[string]InstalledEntry{}
	}

	installed := map[string]InstalledEntry{}
	if err := json.Unmarshal(data, &installed); err != nil {
		r.log.Debug().Err(err).Str("path", path).Msg("ignoring unparsable installed state")
		return map[string]InstalledEntry{}
	}
	return installed
}

// BuildVersion re-reads one game's metadata file and returns its
// asset_infos build_version, preferring Windows, then Mac, then Linux.
// Any failure reports ok = false.
func (r *Reader) BuildVersion(sourcePath string) (string, bool) {
	data, err := afero.ReadFile(r.fs, sourcePath)
	if err != nil {
		return "", false
	}

	var doc gameDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", false
	}

	for _, platform := range []types.Platform{types.PlatformWindows, types.PlatformMac, types.PlatformLinux} {
		if info, ok := doc.AssetInfos[string(platform)]; ok && info.BuildVersion != "" {
			return info.BuildVersion, true
		}
	}
	return "", false
}

// platformsOf maps well-known asset_infos keys to platforms, in a fixed
// order so records compare predictably.
func platformsOf(assets map[string]assetInfo) []types.Platform {
	var platforms []types.Platform
	for _, p := range []types.Platform{types.PlatformWindows, types.PlatformMac, types.PlatformLinux} {
		if _, ok := assets[string(p)]; ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

// pickImage selects a representative artwork. A BoxArt or BoxArtTall
// wins as soon as it appears; until then the last BoxLogo or Thumbnail
// seen is kept.
func pickImage(images []keyImageDoc) *types.KeyImage {
	var picked *keyImageDoc
	for i := range images {
		img := &images[i]
		switch img.Type {
		case constants.ImageBoxArt, constants.ImageBoxArtTall:
			picked = img
		case constants.ImageBoxLogo, constants.ImageThumbnail:
			picked = img
			continue
		default:
			continue
		}
		break
	}
	if picked == nil {
		return nil
	}

	uploaded, _ := time.Parse(time.RFC3339, picked.UploadedDate)
	return &types.KeyImage{
		Alt:        picked.Alt,
		Kind:       picked.Type,
		URL:        picked.URL,
		UploadedAt: uploaded,
		Width:      picked.Width,
		Height:     picked.Height,
		SizeBytes:  picked.Size,
	}
}
