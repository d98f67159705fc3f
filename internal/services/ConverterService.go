package services

import (
	"reflect"
	"slices"
	"time"

	"twsave/internal/archive"
	"twsave/internal/models"
	"twsave/internal/packer"
	"twsave/internal/providers"
	"twsave/internal/structures"
)

// SaveOptions names which top-level groups a build copies into the save.
// User maps attribute names to an include flag; only selected names whose
// dump value is truthy are copied.
type SaveOptions struct {
	Tweets     bool
	DMs        bool
	Mutes      bool
	Favorites  bool
	Blocks     bool
	Followers  bool
	Followings bool
	Moments    bool
	Lists      bool
	AdArchive  bool
	User       map[string]bool
}

// DefaultSaveOptions selects tweets, dms, mutes, favorites and blocks, with
// no user attributes.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{
		Tweets:    true,
		DMs:       true,
		Mutes:     true,
		Favorites: true,
		Blocks:    true,
	}
}

// OptionsFromConfig converts the configured default selection.
func OptionsFromConfig(conf *structures.Config) SaveOptions {
	return SaveOptions{
		Tweets:     conf.Save.Tweets,
		DMs:        conf.Save.DMs,
		Mutes:      conf.Save.Mutes,
		Favorites:  conf.Save.Favorites,
		Blocks:     conf.Save.Blocks,
		Followers:  conf.Save.Followers,
		Followings: conf.Save.Followings,
		Moments:    conf.Save.Moments,
		Lists:      conf.Save.Lists,
		AdArchive:  conf.Save.AdArchive,
		User:       conf.Save.User,
	}
}

type ConverterServiceInterface interface {
	Build(arch archive.ArchiveInterface, opts SaveOptions) *models.Save
	Restore(save *models.Save) (*archive.Archive, error)
	RestoreFrom(load func() (*models.Save, error)) (*archive.Archive, error)
}

type ConverterService struct {
	packer  packer.PackerInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewConverterService(packer packer.PackerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ConverterServiceInterface {
	return &ConverterService{
		packer:  packer,
		logger:  logger,
		metrics: metrics,
	}
}

// Build copies the selected groups of the archive into a new save stamped
// with CurrentVersion. It never fails for a well-formed archive: groups
// absent from the archive simply stay absent from the save.
func (cs *ConverterService) Build(arch archive.ArchiveInterface, opts SaveOptions) *models.Save {
	start := time.Now()

	save := &models.Save{
		Info: models.SaveInfo{
			Version: CurrentVersion,
			IsGDPR:  arch.InGDPRMode(),
			Info:    &models.GDPRInfo{User: arch.UserSummary()},
		},
	}

	if opts.Tweets {
		if container := arch.TweetContainer(); container != nil {
			save.Tweets = &models.TweetsField{Container: container}
		} else if tweets := arch.Tweets(); len(tweets) > 0 {
			save.Tweets = &models.TweetsField{Records: slices.Clone(tweets)}
		}
	}

	if opts.DMs {
		if container := arch.DMContainer(); container != nil {
			save.DMs = &models.DMsField{Container: container}
		} else if convs := arch.Conversations(); len(convs) > 0 {
			bundles := make([]models.ConversationBundle, 0, len(convs))
			for i := range convs {
				bundles = append(bundles, convs[i].Flatten())
			}
			save.DMs = &models.DMsField{Bundles: bundles}
		}
	}

	if opts.Mutes {
		if ids := arch.Mutes(); len(ids) > 0 {
			save.Mutes = slices.Clone(ids)
		}
	}
	if opts.Blocks {
		if ids := arch.Blocks(); len(ids) > 0 {
			save.Blocks = slices.Clone(ids)
		}
	}
	if opts.Followers {
		if ids := arch.Followers(); len(ids) > 0 {
			save.Followers = slices.Clone(ids)
		}
	}
	if opts.Followings {
		if ids := arch.Followings(); len(ids) > 0 {
			save.Followings = slices.Clone(ids)
		}
	}
	if opts.Favorites {
		if favs := arch.Favorites(); len(favs) > 0 {
			save.Favorites = slices.Clone(favs)
		}
	}
	if opts.Moments {
		if moments := arch.Moments(); len(moments) > 0 {
			save.Moments = slices.Clone(moments)
		}
	}
	if opts.Lists {
		if lists := arch.Lists(); !lists.IsEmpty() {
			save.Lists = &models.ArchiveLists{
				Created:    slices.Clone(lists.Created),
				MemberOf:   slices.Clone(lists.MemberOf),
				Subscribed: slices.Clone(lists.Subscribed),
			}
		}
	}
	if opts.AdArchive {
		if container := arch.AdContainer(); container != nil {
			save.AdArchive = &models.AdsField{Container: container}
		} else if ads := arch.Ads(); !ads.IsEmpty() {
			save.AdArchive = &models.AdsField{Data: &ads}
		}
	}

	if len(opts.User) > 0 {
		attrs := make(map[string]any)
		for name, value := range arch.UserDump() {
			if opts.User[name] && truthy(value) {
				attrs[name] = value
			}
		}
		if len(attrs) > 0 {
			save.User = attrs
		}
	}

	// Screen-name history is summary data: always carried, selection or not,
	// in the current unwrapped shape.
	if history := arch.ScreenNameHistory(); len(history) > 0 {
		entries := make([]models.ScreenNameEntry, 0, len(history))
		for _, change := range history {
			entries = append(entries, models.ScreenNameEntry{ScreenNameChange: change})
		}
		save.ScreenNameHistory = entries
	}

	cs.metrics.IncSavesTotal()
	cs.metrics.ObserveSaveDuration(time.Since(start))
	cs.logger.Infof(providers.TypeSave, "Built save version %s for user %s", CurrentVersion, save.Info.Info.User.ScreenName)
	return save
}

// truthy mirrors the selection semantics for user-dump values: empty
// strings, zero numbers, false, nil and empty collections are excluded.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
