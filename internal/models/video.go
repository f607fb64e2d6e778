package models

const (
	DefaultCaption = "Sem legenda"
	ManualCaption  = "Vídeo novo"
	DefaultMusic   = "Música Desconhecida"
)

// Video lives inside its owner's user record. ID is a unix-millisecond
// timestamp string on the upload path and absent on the manual add path,
// so it is neither unique nor guaranteed present.
type Video struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Caption  string `json:"caption"`
	Music    string `json:"music"`
}

// MusicInfo is the nested music object of feed entries.
type MusicInfo struct {
	Title string `json:"title"`
}

// FeedEntry is a video reshaped for the feed: the flat video fields plus
// the aliases the frontend player consumes (no_watermark for the url,
// title for the caption, music wrapped in an object).
type FeedEntry struct {
	ID          string    `json:"id,omitempty"`
	URL         string    `json:"url,omitempty"`
	Username    string    `json:"username,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Caption     string    `json:"caption,omitempty"`
	NoWatermark string    `json:"no_watermark"`
	Title       string    `json:"title"`
	Music       MusicInfo `json:"music"`
}

// NewFeedEntry tags a stored video with its owner's current identity.
func NewFeedEntry(v Video, username, avatar string) FeedEntry {
	return FeedEntry{
		ID:          v.ID,
		URL:         v.URL,
		Username:    username,
		Avatar:      avatar,
		Caption:     v.Caption,
		NoWatermark: v.URL,
		Title:       v.Caption,
		Music:       MusicInfo{Title: v.Music},
	}
}

// Comment is one entry in a video's comment thread.
type Comment struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// CommentWithAvatar is a stored comment enriched with the commenter's
// current avatar; the avatar is empty when the user no longer resolves.
type CommentWithAvatar struct {
	Comment
	Avatar string `json:"avatar"`
}
