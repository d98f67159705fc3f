package services

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twsave/internal/models"
	"twsave/internal/packer"
	"twsave/internal/testutil"
)

func gdprInfo(version string) models.SaveInfo {
	return models.SaveInfo{
		Version: version,
		IsGDPR:  true,
		Info:    &models.GDPRInfo{User: models.UserSummary{ID: "1", ScreenName: "alice"}},
	}
}

func TestRestore_VersionGate(t *testing.T) {
	svc, metrics := newTestService()

	save := &models.Save{
		Info:  models.SaveInfo{Version: "0.9.0"},
		Mutes: []string{"5"},
	}
	arch, err := svc.Restore(save)

	assert.Nil(t, arch)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Equal(t, 1, metrics.RestoreFailures["unsupported_version"])
}

func TestRestore_Roundtrip_FullSelection(t *testing.T) {
	svc, _ := newTestService()
	original := seededArchive()

	save := svc.Build(original, fullSelection())
	restored, err := svc.Restore(save)
	require.NoError(t, err)

	assert.Equal(t, original.UserSummary(), restored.UserSummary())
	assert.Equal(t, original.Tweets(), restored.Tweets())
	assert.Equal(t, original.Mutes(), restored.Mutes())
	assert.Equal(t, original.Blocks(), restored.Blocks())
	assert.Equal(t, original.Followers(), restored.Followers())
	assert.Equal(t, original.Followings(), restored.Followings())
	assert.Equal(t, original.Moments(), restored.Moments())
	assert.Equal(t, original.Lists(), restored.Lists())
	assert.Equal(t, original.Ads(), restored.Ads())
	assert.Equal(t, original.Favorites(), restored.Favorites())
	assert.Equal(t, original.ScreenNameHistory(), restored.ScreenNameHistory())
	assert.True(t, restored.InGDPRMode())

	// conversations round-trip modulo flattening
	require.Len(t, restored.Conversations(), 1)
	origBundle := original.Conversations()[0].Flatten()
	restBundle := restored.Conversations()[0].Flatten()
	assert.Equal(t, origBundle, restBundle)

	// only the selected, truthy user attributes survive
	assert.Equal(t, "+123", restored.UserDump()["phone_number"])
	assert.Equal(t, true, restored.UserDump()["verified"])
	_, hasTimezone := restored.UserDump()["timezone"]
	assert.False(t, hasTimezone)
}

func TestRestore_V1UserSummaryLocation(t *testing.T) {
	svc, _ := newTestService()

	save := &models.Save{
		Info: models.SaveInfo{
			Version: "1.0.0",
			Index:   &models.ClassicIndex{Info: models.UserSummary{ID: "1", ScreenName: "alice"}},
		},
	}
	arch, err := svc.Restore(save)
	require.NoError(t, err)
	assert.Equal(t, "alice", arch.UserSummary().ScreenName)
}

func TestRestore_ScreenNameHistoryShapes(t *testing.T) {
	svc, _ := newTestService()

	wrapped := &models.Save{
		Info: gdprInfo("1.0.0"),
		ScreenNameHistory: []models.ScreenNameEntry{
			{Wrapped: &models.ScreenNameChange{ChangedFrom: "a", ChangedTo: "b"}},
		},
	}
	wrapped.Info.Index = &models.ClassicIndex{}
	wrapped.Info.Info = nil

	unwrapped := &models.Save{
		Info: gdprInfo("1.1.0"),
		ScreenNameHistory: []models.ScreenNameEntry{
			{ScreenNameChange: models.ScreenNameChange{ChangedFrom: "a", ChangedTo: "b"}},
		},
	}

	fromWrapped, err := svc.Restore(wrapped)
	require.NoError(t, err)
	fromUnwrapped, err := svc.Restore(unwrapped)
	require.NoError(t, err)

	expected := []models.ScreenNameChange{{ChangedFrom: "a", ChangedTo: "b"}}
	assert.Equal(t, expected, fromWrapped.ScreenNameHistory())
	assert.Equal(t, expected, fromUnwrapped.ScreenNameHistory())
}

func TestRestore_GDPROnlyDataSkippedInClassicMode(t *testing.T) {
	svc, _ := newTestService()

	save := &models.Save{
		Info: models.SaveInfo{
			Version: "2.0.0",
			IsGDPR:  false,
			Info:    &models.GDPRInfo{},
		},
		Favorites: []models.Favorite{{TweetID: "1"}},
		ScreenNameHistory: []models.ScreenNameEntry{
			{ScreenNameChange: models.ScreenNameChange{ChangedTo: "alice"}},
		},
	}
	arch, err := svc.Restore(save)
	require.NoError(t, err)

	assert.False(t, arch.InGDPRMode())
	assert.Empty(t, arch.Favorites())
	assert.Empty(t, arch.ScreenNameHistory())
}

func TestRestore_TweetContainerEqualsPlainSequence(t *testing.T) {
	logger := &testutil.MockLogger{}
	p := packer.NewPacker(testutil.NewMockCache(), logger)
	svc := NewConverterService(p, logger, testutil.NewMockMetrics())

	tweets := []models.Tweet{{IDStr: "1", Text: "one"}, {IDStr: "2", Text: "two"}}
	doc, err := json.Marshal(tweets)
	require.NoError(t, err)
	container, err := p.WriteContainer(map[string][]byte{packer.TweetDocument: doc})
	require.NoError(t, err)

	fromContainer, err := svc.Restore(&models.Save{
		Info:   gdprInfo("2.0.0"),
		Tweets: &models.TweetsField{Container: container},
	})
	require.NoError(t, err)

	fromSequence, err := svc.Restore(&models.Save{
		Info:   gdprInfo("2.0.0"),
		Tweets: &models.TweetsField{Records: tweets},
	})
	require.NoError(t, err)

	assert.Equal(t, fromSequence.Tweets(), fromContainer.Tweets())
	assert.Len(t, fromContainer.Tweets(), 2)
}

func TestRestore_DMContainer(t *testing.T) {
	logger := &testutil.MockLogger{}
	p := packer.NewPacker(testutil.NewMockCache(), logger)
	svc := NewConverterService(p, logger, testutil.NewMockMetrics())

	file := models.DMFile{
		{ConversationID: "1-2", Messages: []models.DMEvent{
			{MessageCreate: &models.DirectMessage{ID: "10", Text: "hi", CreatedAt: "2020-01-01T00:00:00.000Z"}},
		}},
	}
	doc, err := json.Marshal(file)
	require.NoError(t, err)
	container, err := p.WriteContainer(map[string][]byte{packer.DMDocument: doc})
	require.NoError(t, err)

	arch, err := svc.Restore(&models.Save{
		Info: gdprInfo("2.0.0"),
		DMs:  &models.DMsField{Container: container},
	})
	require.NoError(t, err)

	require.Len(t, arch.Conversations(), 1)
	assert.Equal(t, "1-2", arch.Conversations()[0].ID)
}

func TestRestore_AdContainer(t *testing.T) {
	logger := &testutil.MockLogger{}
	p := packer.NewPacker(testutil.NewMockCache(), logger)
	svc := NewConverterService(p, logger, testutil.NewMockMetrics())

	ads := models.AdArchive{Impressions: []models.AdImpression{{AdvertiserName: "acme"}}}
	doc, err := json.Marshal(ads)
	require.NoError(t, err)
	container, err := p.WriteContainer(map[string][]byte{packer.AdsDocument: doc})
	require.NoError(t, err)

	arch, err := svc.Restore(&models.Save{
		Info:      gdprInfo("2.0.0"),
		AdArchive: &models.AdsField{Container: container},
	})
	require.NoError(t, err)
	assert.Equal(t, ads, arch.Ads())
}

func TestRestore_MalformedContainer(t *testing.T) {
	svc, metrics := newTestService()

	// container without the expected tweet.json
	logger := &testutil.MockLogger{}
	p := packer.NewPacker(testutil.NewMockCache(), logger)
	container, err := p.WriteContainer(map[string][]byte{packer.DMDocument: []byte(`[]`)})
	require.NoError(t, err)

	_, err = svc.Restore(&models.Save{
		Info:   gdprInfo("2.0.0"),
		Tweets: &models.TweetsField{Container: container},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedContainer)
	assert.Equal(t, 1, metrics.RestoreFailures["malformed_container"])
}

func TestRestore_EmptyFieldsAreNoops(t *testing.T) {
	svc, _ := newTestService()

	arch, err := svc.Restore(&models.Save{Info: gdprInfo("2.0.0")})
	require.NoError(t, err)

	assert.Empty(t, arch.Tweets())
	assert.Empty(t, arch.Conversations())
	assert.Empty(t, arch.Mutes())
	assert.Empty(t, arch.Favorites())
	assert.Empty(t, arch.UserDump())
}

func TestRestoreFrom_ResolvesDeferredSave(t *testing.T) {
	svc, _ := newTestService()

	arch, err := svc.RestoreFrom(func() (*models.Save, error) {
		return &models.Save{Info: gdprInfo("2.0.0"), Mutes: []string{"5"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, arch.Mutes())
}

func TestRestoreFrom_PropagatesLoadError(t *testing.T) {
	svc, _ := newTestService()

	loadErr := errors.New("read failed")
	arch, err := svc.RestoreFrom(func() (*models.Save, error) {
		return nil, loadErr
	})
	assert.Nil(t, arch)
	assert.ErrorIs(t, err, loadErr)
}

func TestRestore_CountsByVersion(t *testing.T) {
	svc, metrics := newTestService()

	_, err := svc.Restore(&models.Save{Info: gdprInfo("1.1.0")})
	require.NoError(t, err)
	_, err = svc.Restore(&models.Save{Info: gdprInfo("2.0.0")})
	require.NoError(t, err)
	_, err = svc.Restore(&models.Save{Info: gdprInfo("2.0.0")})
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.Restores["1.1.0"])
	assert.Equal(t, 2, metrics.Restores["2.0.0"])
}
