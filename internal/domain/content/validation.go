package content

import "strings"

// ValidType reports whether t is a known content type.
func ValidType(t ContentType) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known content status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ValidateCreateInput validates fields required to create a content item.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	if req.ContentType != "" && !ValidType(req.ContentType) {
		return ErrInvalidType
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ValidateUpdateInput validates the optional fields of an update.
func ValidateUpdateInput(req UpdateRequest) error {
	if strings.TrimSpace(req.ID) == "" {
		return ErrInvalidInput
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return ErrInvalidInput
	}
	if req.ContentType != nil && !ValidType(*req.ContentType) {
		return ErrInvalidType
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// NormalizeTags trims tags, drops empties and duplicates, and keeps first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func normalizePlatforms(platforms []PlatformRef) []PlatformRef {
	out := make([]PlatformRef, 0, len(platforms))
	seen := make(map[string]struct{}, len(platforms))
	for _, p := range platforms {
		if p.PlatformID == "" {
			p.PlatformID = p.ID
		}
		if p.PlatformID == "" {
			continue
		}
		if _, ok := seen[p.PlatformID]; ok {
			continue
		}
		seen[p.PlatformID] = struct{}{}
		if p.ID == "" {
			p.ID = p.PlatformID
		}
		out = append(out, p)
	}
	return out
}
