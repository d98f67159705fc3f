package models

// Tweet is a classic-format tweet record. The converter copies these
// verbatim; only the fields needed by consumers are typed, the rest of the
// export payload is not carried.
type Tweet struct {
	IDStr         string     `json:"id_str"`
	Text          string     `json:"text,omitempty"`
	FullText      string     `json:"full_text,omitempty"`
	CreatedAt     string     `json:"created_at,omitempty"`
	FavoriteCount int64      `json:"favorite_count,omitempty"`
	RetweetCount  int64      `json:"retweet_count,omitempty"`
	Retweeted     bool       `json:"retweeted,omitempty"`
	User          *TweetUser `json:"user,omitempty"`
}

type TweetUser struct {
	IDStr      string `json:"id_str"`
	ScreenName string `json:"screen_name"`
	Name       string `json:"name,omitempty"`
}
