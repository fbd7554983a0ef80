package reddit

// Listing mirrors the part of reddit's listing JSON this program consumes:
// { data: { children: [ { data: {...} } ], after: string|null } }.
type Listing struct {
	Data struct {
		Children []Child `json:"children"`
		After    *string `json:"after"`
	} `json:"data"`
}

// Child wraps one post record.
type Child struct {
	Data Post `json:"data"`
}

// Post is the per-post slice of the listing. Immutable once decoded.
type Post struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Domain      string       `json:"domain"`
	Subreddit   string       `json:"subreddit"`
	Ups         int          `json:"ups"`
	SecureMedia *SecureMedia `json:"secure_media"`
}

// SecureMedia holds the reddit-hosted video block, when present.
type SecureMedia struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
}

// RedditVideo carries the direct mp4 fallback for v.redd.it posts.
type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
}

// FallbackVideoURL returns secure_media.reddit_video.fallback_url, or ""
// when any link of the chain is absent.
func (p *Post) FallbackVideoURL() string {
	if p.SecureMedia == nil || p.SecureMedia.RedditVideo == nil {
		return ""
	}
	return p.SecureMedia.RedditVideo.FallbackURL
}
