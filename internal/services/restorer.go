package services

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"twsave/internal/archive"
	"twsave/internal/models"
	"twsave/internal/packer"
	"twsave/internal/providers"
)

const (
	reasonUnsupportedVersion = "unsupported_version"
	reasonMalformedContainer = "malformed_container"
)

// RestoreFrom resolves a deferred save producer, then restores it.
func (cs *ConverterService) RestoreFrom(load func() (*models.Save, error)) (*archive.Archive, error) {
	save, err := load()
	if err != nil {
		return nil, err
	}
	return cs.Restore(save)
}

// Restore rebuilds an archive from a save of any supported format version.
// The version gate runs before anything else; a failure past it leaves the
// returned archive partially loaded and it must be discarded.
func (cs *ConverterService) Restore(save *models.Save) (*archive.Archive, error) {
	start := time.Now()

	shape, ok := formatTable[save.Info.Version]
	if !ok {
		cs.metrics.IncRestoreFailures(reasonUnsupportedVersion)
		cs.logger.Errorf(providers.TypeRestore, "Rejected save with version %q", save.Info.Version)
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, save.Info.Version)
	}

	arch := archive.NewArchive()
	if summary, ok := shape.userSummary(save.Info); ok {
		arch.LoadClassicUserInfo(summary)
	}

	if save.Tweets != nil {
		tweets, err := cs.resolveTweets(save.Tweets)
		if err != nil {
			return nil, cs.failRestore("tweets", err)
		}
		arch.LoadClassicTweets(tweets)
	}

	if save.Info.IsGDPR {
		arch.UpgradeToGDPR()
	}

	if save.DMs != nil {
		file, err := cs.resolveDMs(save.DMs)
		if err != nil {
			return nil, cs.failRestore("dms", err)
		}
		arch.LoadArchivePart(models.ArchivePart{DMs: []models.DMFile{file}})
	}

	part := models.ArchivePart{}
	if len(save.Mutes) > 0 {
		part.Mutes = save.Mutes
	}
	if len(save.Blocks) > 0 {
		part.Blocks = save.Blocks
	}
	if len(save.Followers) > 0 {
		part.Followers = save.Followers
	}
	if len(save.Followings) > 0 {
		part.Followings = save.Followings
	}
	if len(save.Moments) > 0 {
		part.Moments = save.Moments
	}
	arch.LoadArchivePart(part)

	if save.Lists != nil {
		arch.SetLists(*save.Lists)
	}

	if save.AdArchive != nil {
		ads, err := cs.resolveAds(save.AdArchive)
		if err != nil {
			return nil, cs.failRestore("ad archive", err)
		}
		if ads != nil {
			arch.SetAds(*ads)
		}
	}

	if len(save.User) > 0 {
		arch.LoadUserPartial(save.User)
	}

	// GDPR-only data: favorites and screen-name history exist only in that
	// interpretation mode.
	if arch.InGDPRMode() {
		if len(save.Favorites) > 0 {
			arch.AddFavorites(save.Favorites)
		}
		if len(save.ScreenNameHistory) > 0 {
			arch.LoadArchivePart(models.ArchivePart{
				ScreenNameHistory: models.NormalizeScreenNameHistory(save.ScreenNameHistory),
			})
		}
	}

	cs.metrics.IncRestoresTotal(save.Info.Version)
	cs.metrics.ObserveRestoreDuration(time.Since(start))
	cs.logger.Infof(providers.TypeRestore, "Restored save version %s", save.Info.Version)
	return arch, nil
}

func (cs *ConverterService) failRestore(group string, err error) error {
	cs.metrics.IncRestoreFailures(reasonMalformedContainer)
	cs.logger.Errorf(providers.TypeRestore, "Restore failed while loading %s: %s", group, err)
	return err
}

func (cs *ConverterService) resolveTweets(field *models.TweetsField) ([]models.Tweet, error) {
	if field.Container == nil {
		return field.Records, nil
	}
	doc, err := cs.packer.ReadDocument(field.Container, packer.TweetDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedContainer, err)
	}
	var tweets []models.Tweet
	if err := json.Unmarshal(doc, &tweets); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %s", ErrMalformedContainer, packer.TweetDocument, err)
	}
	return tweets, nil
}

func (cs *ConverterService) resolveDMs(field *models.DMsField) (models.DMFile, error) {
	if field.Container == nil {
		return models.DMFile(field.Bundles), nil
	}
	doc, err := cs.packer.ReadDocument(field.Container, packer.DMDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedContainer, err)
	}
	var file models.DMFile
	if err := json.Unmarshal(doc, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %s", ErrMalformedContainer, packer.DMDocument, err)
	}
	return file, nil
}

func (cs *ConverterService) resolveAds(field *models.AdsField) (*models.AdArchive, error) {
	if field.Container == nil {
		return field.Data, nil
	}
	doc, err := cs.packer.ReadDocument(field.Container, packer.AdsDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedContainer, err)
	}
	var ads models.AdArchive
	if err := json.Unmarshal(doc, &ads); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %s", ErrMalformedContainer, packer.AdsDocument, err)
	}
	return &ads, nil
}
