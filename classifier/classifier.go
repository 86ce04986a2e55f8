// Package classifier decides whether a message carries image content and which
// autoban phrase, if any, its text contains. It performs no I/O.
package classifier

import (
	"strings"

	"botswatter/models"
)

// Classify runs both checks over msg.
func Classify(msg models.InboundMessage, keywords []string) models.MatchResult {
	phrase, ok := MatchKeyword(msg.Content, keywords)
	return models.MatchResult{
		IsImage:        IsImage(msg),
		Matched:        ok,
		MatchedKeyword: phrase,
	}
}

// IsImage reports whether any attachment has an image content type or any embed
// carries an image or a thumbnail. Link previews with a thumbnail count as images.
func IsImage(msg models.InboundMessage) bool {
	for _, a := range msg.Attachments {
		if strings.HasPrefix(a.ContentType, "image") {
			return true
		}
	}
	for _, e := range msg.Embeds {
		if e.HasImage || e.HasThumbnail {
			return true
		}
	}
	return false
}

// MatchKeyword returns the first keyword, in configured order, that occurs in text.
// Keywords are expected to be stored lower-cased.
func MatchKeyword(text string, keywords []string) (string, bool) {
	if len(keywords) == 0 {
		return "", false
	}
	content := strings.ToLower(text)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(content, k) {
			return k, true
		}
	}
	return "", false
}
