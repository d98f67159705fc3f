package models

type AdImpression struct {
	AdvertiserName  string `json:"advertiserName,omitempty"`
	ImpressionTime  string `json:"impressionTime,omitempty"`
	DisplayLocation string `json:"displayLocation,omitempty"`
	PromotedTweetID string `json:"promotedTweetId,omitempty"`
}

type AdEngagementAttribute struct {
	EngagementTime string `json:"engagementTime,omitempty"`
	EngagementType string `json:"engagementType,omitempty"`
}

type AdEngagement struct {
	Impression  AdImpression            `json:"impressionAttributes"`
	Engagements []AdEngagementAttribute `json:"engagementAttributes,omitempty"`
}

type AdConversion struct {
	AdvertiserName string `json:"advertiserName,omitempty"`
	ConversionTime string `json:"conversionTime,omitempty"`
	ConversionType string `json:"conversionType,omitempty"`
}

// AdArchive holds the four ad-data record collections (ads.json layout).
type AdArchive struct {
	Impressions       []AdImpression `json:"impressions,omitempty"`
	Engagements       []AdEngagement `json:"engagements,omitempty"`
	OnlineConversions []AdConversion `json:"online_conversions,omitempty"`
	MobileConversions []AdConversion `json:"mobile_conversions,omitempty"`
}

func (a *AdArchive) IsEmpty() bool {
	return len(a.Impressions) == 0 && len(a.Engagements) == 0 &&
		len(a.OnlineConversions) == 0 && len(a.MobileConversions) == 0
}

type Moment struct {
	MomentID  string `json:"momentId"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ArchiveLists holds the three list memberships as list slugs/URLs.
type ArchiveLists struct {
	Created    []string `json:"created,omitempty"`
	MemberOf   []string `json:"member_of,omitempty"`
	Subscribed []string `json:"subscribed,omitempty"`
}

func (l *ArchiveLists) IsEmpty() bool {
	return len(l.Created) == 0 && len(l.MemberOf) == 0 && len(l.Subscribed) == 0
}
