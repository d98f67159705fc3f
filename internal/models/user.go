package models

// UserSummary is the classic-format user index entry carried in every save's
// info block.
type UserSummary struct {
	ID              string `json:"id"`
	ScreenName      string `json:"screen_name"`
	FullName        string `json:"full_name,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Location        string `json:"location,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	ProfileImageURL string `json:"profile_image_url_https,omitempty"`
}

type ScreenNameChange struct {
	AccountID   string `json:"accountId,omitempty"`
	ChangedAt   string `json:"changedAt,omitempty"`
	ChangedFrom string `json:"changedFrom,omitempty"`
	ChangedTo   string `json:"changedTo,omitempty"`
}

type Favorite struct {
	TweetID     string `json:"tweetId"`
	FullText    string `json:"fullText,omitempty"`
	ExpandedURL string `json:"expandedUrl,omitempty"`
}
