package models

import (
	"bytes"
	"encoding/base64"

	json "github.com/goccy/go-json"
)

// ClassicIndex is the 1.0.0 nesting of the user summary (info.index.info).
type ClassicIndex struct {
	Info UserSummary `json:"info"`
}

// GDPRInfo is the 1.1.0+ nesting of the user summary (info.info.user).
type GDPRInfo struct {
	User UserSummary `json:"user"`
}

// SaveInfo is the version-tagged metadata block, the only mandatory save
// field. Which of Index/Info carries the user summary depends on the format
// version that produced the save.
type SaveInfo struct {
	Version string        `json:"version"`
	IsGDPR  bool          `json:"is_gdpr"`
	Index   *ClassicIndex `json:"index,omitempty"`
	Info    *GDPRInfo     `json:"info,omitempty"`
}

// ScreenNameEntry carries one history record in either historical shape:
// the 1.0.0 wrapper {"screenNameChange": {...}} or the inner record inline.
type ScreenNameEntry struct {
	ScreenNameChange
	Wrapped *ScreenNameChange `json:"screenNameChange,omitempty"`
}

// NormalizeScreenNameHistory resolves the history to the inner record shape.
// The first element is probed for the wrapper key; the whole sequence is in
// one shape or the other, never mixed.
func NormalizeScreenNameHistory(entries []ScreenNameEntry) []ScreenNameChange {
	if len(entries) == 0 {
		return nil
	}
	out := make([]ScreenNameChange, 0, len(entries))
	if entries[0].Wrapped != nil {
		for _, e := range entries {
			if e.Wrapped != nil {
				out = append(out, *e.Wrapped)
			}
		}
		return out
	}
	for _, e := range entries {
		out = append(out, e.ScreenNameChange)
	}
	return out
}

// TweetsField is either a legacy binary container (zip holding tweet.json)
// or a plain tweet sequence. On the wire a container is a base64 string, a
// sequence a JSON array.
type TweetsField struct {
	Container []byte
	Records   []Tweet
}

func (f TweetsField) MarshalJSON() ([]byte, error) {
	if f.Container != nil {
		return json.Marshal(base64.StdEncoding.EncodeToString(f.Container))
	}
	return json.Marshal(f.Records)
}

func (f *TweetsField) UnmarshalJSON(data []byte) error {
	if raw, ok, err := containerBytes(data); err != nil || ok {
		f.Container = raw
		return err
	}
	return json.Unmarshal(data, &f.Records)
}

// DMsField is either a legacy binary container (zip holding dm.json) or a
// sequence of per-conversation bundles.
type DMsField struct {
	Container []byte
	Bundles   []ConversationBundle
}

func (f DMsField) MarshalJSON() ([]byte, error) {
	if f.Container != nil {
		return json.Marshal(base64.StdEncoding.EncodeToString(f.Container))
	}
	return json.Marshal(f.Bundles)
}

func (f *DMsField) UnmarshalJSON(data []byte) error {
	if raw, ok, err := containerBytes(data); err != nil || ok {
		f.Container = raw
		return err
	}
	return json.Unmarshal(data, &f.Bundles)
}

// AdsField is either a legacy binary container (zip holding ads.json) or the
// ad archive object itself.
type AdsField struct {
	Container []byte
	Data      *AdArchive
}

func (f AdsField) MarshalJSON() ([]byte, error) {
	if f.Container != nil {
		return json.Marshal(base64.StdEncoding.EncodeToString(f.Container))
	}
	return json.Marshal(f.Data)
}

func (f *AdsField) UnmarshalJSON(data []byte) error {
	if raw, ok, err := containerBytes(data); err != nil || ok {
		f.Container = raw
		return err
	}
	return json.Unmarshal(data, &f.Data)
}

// containerBytes decodes data as a base64 container string. ok reports
// whether data was a string at all.
func containerBytes(data []byte) ([]byte, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil, false, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, true, err
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, true, err
	}
	return raw, true, nil
}

// Save is the portable serialized form of an archive. Every field except
// Info is optional; a nil field means "not selected at save time" and must
// stay distinct from an empty-but-present collection.
type Save struct {
	Info              SaveInfo          `json:"info"`
	Tweets            *TweetsField      `json:"tweets,omitempty"`
	DMs               *DMsField         `json:"dms,omitempty"`
	Mutes             []string          `json:"mutes,omitempty"`
	Blocks            []string          `json:"blocks,omitempty"`
	Followers         []string          `json:"followers,omitempty"`
	Followings        []string          `json:"followings,omitempty"`
	Moments           []Moment          `json:"moments,omitempty"`
	Lists             *ArchiveLists     `json:"lists,omitempty"`
	AdArchive         *AdsField         `json:"ad_archive,omitempty"`
	ScreenNameHistory []ScreenNameEntry `json:"screen_name_history,omitempty"`
	Favorites         []Favorite        `json:"favorites,omitempty"`
	User              map[string]any    `json:"user,omitempty"`
}

// ArchivePart is the unit of the archive's generic partial-load interface.
// Nil fields are not applied; loading a part never clears existing state.
type ArchivePart struct {
	Mutes             []string
	Blocks            []string
	Followers         []string
	Followings        []string
	Moments           []Moment
	DMs               []DMFile
	ScreenNameHistory []ScreenNameChange
}
