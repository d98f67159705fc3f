// Package archive holds the in-memory representation of a parsed Twitter
// export that the snapshot converter reads from and restores into.
package archive

import (
	"go.uber.org/atomic"

	"twsave/internal/models"
)

// ArchiveInterface is the collaborator surface the converter works against:
// read accessors for every data group plus the partial-load methods used
// during restore.
type ArchiveInterface interface {
	Tweets() []models.Tweet
	TweetContainer() []byte
	Conversations() []models.Conversation
	DMContainer() []byte
	Mutes() []string
	Blocks() []string
	Followers() []string
	Followings() []string
	Moments() []models.Moment
	Lists() models.ArchiveLists
	Ads() models.AdArchive
	AdContainer() []byte
	UserSummary() models.UserSummary
	UserDump() map[string]any
	ScreenNameHistory() []models.ScreenNameChange
	Favorites() []models.Favorite
	InGDPRMode() bool

	LoadClassicUserInfo(summary models.UserSummary)
	LoadClassicTweets(tweets []models.Tweet)
	LoadArchivePart(part models.ArchivePart)
	LoadUserPartial(attrs map[string]any)
	AddFavorites(favorites []models.Favorite)
	SetLists(lists models.ArchiveLists)
	SetAds(ads models.AdArchive)
	UpgradeToGDPR()
}

// Archive is the concrete in-memory implementation. It is not safe for
// concurrent use; each converter call owns its archive exclusively.
type Archive struct {
	gdpr atomic.Bool

	user     models.UserSummary
	userDump map[string]any

	tweets         []models.Tweet
	tweetContainer []byte

	conversations []models.Conversation
	dmContainer   []byte

	mutes      []string
	blocks     []string
	followers  []string
	followings []string

	moments     []models.Moment
	lists       models.ArchiveLists
	ads         models.AdArchive
	adContainer []byte

	favorites   []models.Favorite
	favoriteIDs map[string]struct{}

	screenNames []models.ScreenNameChange
}

func NewArchive() *Archive {
	return &Archive{
		userDump:    make(map[string]any),
		favoriteIDs: make(map[string]struct{}),
	}
}

// NewGDPRArchive creates an archive that starts in GDPR mode, as archives
// parsed from GDPR-style exports do.
func NewGDPRArchive() *Archive {
	a := NewArchive()
	a.gdpr.Store(true)
	return a
}

func (a *Archive) Tweets() []models.Tweet                   { return a.tweets }
func (a *Archive) TweetContainer() []byte                   { return a.tweetContainer }
func (a *Archive) Conversations() []models.Conversation     { return a.conversations }
func (a *Archive) DMContainer() []byte                      { return a.dmContainer }
func (a *Archive) Mutes() []string                          { return a.mutes }
func (a *Archive) Blocks() []string                         { return a.blocks }
func (a *Archive) Followers() []string                      { return a.followers }
func (a *Archive) Followings() []string                     { return a.followings }
func (a *Archive) Moments() []models.Moment                 { return a.moments }
func (a *Archive) Lists() models.ArchiveLists               { return a.lists }
func (a *Archive) Ads() models.AdArchive                    { return a.ads }
func (a *Archive) AdContainer() []byte                      { return a.adContainer }
func (a *Archive) UserSummary() models.UserSummary          { return a.user }
func (a *Archive) UserDump() map[string]any                 { return a.userDump }
func (a *Archive) ScreenNameHistory() []models.ScreenNameChange { return a.screenNames }
func (a *Archive) Favorites() []models.Favorite             { return a.favorites }
func (a *Archive) InGDPRMode() bool                         { return a.gdpr.Load() }

// UpgradeToGDPR flips the archive into GDPR interpretation mode. Repeated
// calls are no-ops.
func (a *Archive) UpgradeToGDPR() {
	a.gdpr.CompareAndSwap(false, true)
}

func (a *Archive) LoadClassicUserInfo(summary models.UserSummary) {
	a.user = summary
}

// LoadClassicTweets appends classic-format tweet data. It never clears
// previously loaded tweets.
func (a *Archive) LoadClassicTweets(tweets []models.Tweet) {
	a.tweets = append(a.tweets, tweets...)
}

// LoadArchivePart applies every non-nil field of the part. Nil fields leave
// the corresponding archive state untouched.
func (a *Archive) LoadArchivePart(part models.ArchivePart) {
	if part.Mutes != nil {
		a.mutes = part.Mutes
	}
	if part.Blocks != nil {
		a.blocks = part.Blocks
	}
	if part.Followers != nil {
		a.followers = part.Followers
	}
	if part.Followings != nil {
		a.followings = part.Followings
	}
	if part.Moments != nil {
		a.moments = part.Moments
	}
	if part.ScreenNameHistory != nil {
		a.screenNames = part.ScreenNameHistory
	}
	for _, file := range part.DMs {
		for _, bundle := range file {
			a.conversations = append(a.conversations, models.Conversation{
				ID:     bundle.ConversationID,
				Events: bundle.Messages,
			})
		}
	}
}

// LoadUserPartial merges the supplied attributes into the user dump; only
// supplied keys are applied.
func (a *Archive) LoadUserPartial(attrs map[string]any) {
	for name, value := range attrs {
		a.userDump[name] = value
	}
}

// AddFavorites appends favorites additively, skipping tweet ids already
// present.
func (a *Archive) AddFavorites(favorites []models.Favorite) {
	for _, fav := range favorites {
		if _, ok := a.favoriteIDs[fav.TweetID]; ok {
			continue
		}
		a.favoriteIDs[fav.TweetID] = struct{}{}
		a.favorites = append(a.favorites, fav)
	}
}

func (a *Archive) SetLists(lists models.ArchiveLists) {
	a.lists = lists
}

func (a *Archive) SetAds(ads models.AdArchive) {
	a.ads = ads
}

// Seeding helpers for building archives programmatically (and for tests):
// the parser that fills a real archive lives outside this module.

func (a *Archive) SetTweets(tweets []models.Tweet)            { a.tweets = tweets }
func (a *Archive) SetTweetContainer(container []byte)         { a.tweetContainer = container }
func (a *Archive) SetConversations(c []models.Conversation)   { a.conversations = c }
func (a *Archive) SetDMContainer(container []byte)            { a.dmContainer = container }
func (a *Archive) SetAdContainer(container []byte)            { a.adContainer = container }
func (a *Archive) SetMutes(ids []string)                      { a.mutes = ids }
func (a *Archive) SetBlocks(ids []string)                     { a.blocks = ids }
func (a *Archive) SetFollowers(ids []string)                  { a.followers = ids }
func (a *Archive) SetFollowings(ids []string)                 { a.followings = ids }
func (a *Archive) SetMoments(moments []models.Moment)         { a.moments = moments }
func (a *Archive) SetUserSummary(user models.UserSummary)     { a.user = user }
func (a *Archive) SetUserDump(dump map[string]any)            { a.userDump = dump }
func (a *Archive) SetScreenNameHistory(h []models.ScreenNameChange) { a.screenNames = h }
