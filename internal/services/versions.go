package services

import (
	"errors"
	"sort"

	"twsave/internal/models"
)

// CurrentVersion is the only format version the builder produces.
const CurrentVersion = "2.0.0"

var (
	ErrUnsupportedVersion = errors.New("unsupported save version")
	ErrMalformedContainer = errors.New("malformed container")
)

// versionShape captures where version-dependent fields live in a save.
// Supporting a new format version means adding one row here.
type versionShape struct {
	// userSummary extracts the classic user summary from the info block.
	userSummary func(info models.SaveInfo) (models.UserSummary, bool)
}

var formatTable = map[string]versionShape{
	"1.0.0": {userSummary: classicIndexSummary},
	"1.1.0": {userSummary: gdprInfoSummary},
	"2.0.0": {userSummary: gdprInfoSummary},
}

// classicIndexSummary reads the 1.0.0 nesting: info.index.info.
func classicIndexSummary(info models.SaveInfo) (models.UserSummary, bool) {
	if info.Index == nil {
		return models.UserSummary{}, false
	}
	return info.Index.Info, true
}

// gdprInfoSummary reads the 1.1.0+ nesting: info.info.user.
func gdprInfoSummary(info models.SaveInfo) (models.UserSummary, bool) {
	if info.Info == nil {
		return models.UserSummary{}, false
	}
	return info.Info.User, true
}

// SupportedVersions lists every format version the restorer accepts.
func SupportedVersions() []string {
	versions := make([]string, 0, len(formatTable))
	for v := range formatTable {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// IsVersionSupported reports whether a save with the given version can be
// restored by this build.
func IsVersionSupported(version string) bool {
	_, ok := formatTable[version]
	return ok
}
