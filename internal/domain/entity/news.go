package entity

import (
	"strings"
	"time"
)

type NewsCategory string

const (
	NewsGeneral      NewsCategory = "general"
	NewsTournament   NewsCategory = "tournament"
	NewsTeam         NewsCategory = "team"
	NewsPlayer       NewsCategory = "player"
	NewsAnnouncement NewsCategory = "announcement"
)

type News struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Content     string       `json:"content"`
	Category    NewsCategory `json:"category"`
	Tags        StringSlice  `json:"tags"`
	AuthorID    string       `json:"authorId"`
	AuthorName  string       `json:"authorName"`
	ImageURL    string       `json:"imageUrl"`
	IsPublished bool         `json:"isPublished"`
	IsFeatured  bool         `json:"isFeatured"`
	ViewCount   int          `json:"viewCount"`
	PublishedAt time.Time    `json:"publishedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// HasTag matches tags case-insensitively.
func (n *News) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (n *News) ToMap() Document {
	tags := []string(n.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Document{
		"id":          n.ID,
		"title":       n.Title,
		"summary":     n.Summary,
		"content":     n.Content,
		"category":    string(n.Category),
		"tags":        tags,
		"authorId":    n.AuthorID,
		"authorName":  n.AuthorName,
		"imageUrl":    n.ImageURL,
		"isPublished": n.IsPublished,
		"isFeatured":  n.IsFeatured,
		"viewCount":   n.ViewCount,
		"publishedAt": n.PublishedAt,
		"createdAt":   n.CreatedAt,
		"updatedAt":   n.UpdatedAt,
	}
}

func NewsFromMap(doc Document) (*News, error) {
	var news News
	if err := decodeDocument(doc, &news); err != nil {
		return nil, err
	}
	return &news, nil
}
