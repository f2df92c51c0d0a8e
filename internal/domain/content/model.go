package content

import "time"

// ContentType is the format of a content item
type ContentType string

const (
	TypePost    ContentType = "post"
	TypeArticle ContentType = "article"
	TypeImage   ContentType = "image"
	TypeVideo   ContentType = "video"
	TypeStory   ContentType = "story"
	TypeReel    ContentType = "reel"
)

// Types lists every content type in display order.
var Types = []ContentType{TypePost, TypeArticle, TypeImage, TypeVideo, TypeStory, TypeReel}

// Status represents the editorial lifecycle of a content item
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// PlatformRef associates a content item with a target platform
type PlatformRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PlatformID string `json:"platformId"`
}

// Item is a piece of content in the library
type Item struct {
	ID          string        `json:"id"`
	UserID      string        `json:"createdBy"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ContentType ContentType   `json:"contentType"`
	Status      Status        `json:"status"`
	Platforms   []PlatformRef `json:"platforms"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
}

// PlatformIDs returns the platform ids the item targets.
func (i *Item) PlatformIDs() []string {
	ids := make([]string, 0, len(i.Platforms))
	for _, p := range i.Platforms {
		ids = append(ids, p.PlatformID)
	}
	return ids
}

// Page is one page of a filtered content listing
type Page struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
}

// SearchResult represents a full-text hit with relevance
type SearchResult struct {
	Item    Item    `json:"item"`
	Rank    float64 `json:"rank"`
	Snippet string  `json:"snippet,omitempty"`
}
