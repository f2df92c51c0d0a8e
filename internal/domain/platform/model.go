package platform

import (
	"strings"
	"time"
)

// Type identifies a social network
type Type string

const (
	TypeInstagram Type = "instagram"
	TypeFacebook  Type = "facebook"
	TypeTwitter   Type = "twitter"
	TypeLinkedIn  Type = "linkedin"
	TypeTikTok    Type = "tiktok"
	TypeYouTube   Type = "youtube"
)

var displayNames = map[Type]string{
	TypeInstagram: "Instagram",
	TypeFacebook:  "Facebook",
	TypeTwitter:   "Twitter",
	TypeLinkedIn:  "LinkedIn",
	TypeTikTok:    "TikTok",
	TypeYouTube:   "YouTube",
}

// ParseType validates a platform type name, case-insensitively.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(s))
	if _, ok := displayNames[t]; !ok {
		return "", false
	}
	return t, true
}

// DisplayName returns the human name of the platform type.
func (t Type) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// Platform is a social network account content can be published to
type Platform struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
	Connected   bool      `json:"connected"`
	AccountName string    `json:"accountName,omitempty"`
	AccountID   string    `json:"accountId,omitempty"`
	IconURL     string    `json:"iconUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
