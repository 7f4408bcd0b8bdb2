package model

import "time"

// RawArticle is the inbound feed message produced by the ingestion service.
// ArticleID is a stable hash of the source URL and acts as the idempotency
// key for the whole pipeline.
type RawArticle struct {
	ArticleID      string    `json:"article_id"`
	URL            string    `json:"url"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Source         string    `json:"source"`
	PublishedDate  time.Time `json:"published_date"`
	FetchTimestamp time.Time `json:"fetch_timestamp"`
	Author         string    `json:"author,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
}
