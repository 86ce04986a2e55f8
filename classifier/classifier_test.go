package classifier

import (
	"testing"

	"botswatter/models"

	"github.com/stretchr/testify/assert"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		msg  models.InboundMessage
		want bool
	}{
		{"no content", models.InboundMessage{Content: "hello"}, false},
		{"png attachment", models.InboundMessage{Attachments: []models.Attachment{{ContentType: "image/png"}}}, true},
		{"image after text file", models.InboundMessage{Attachments: []models.Attachment{
			{ContentType: "text/plain"}, {ContentType: "image/gif"},
		}}, true},
		{"only non-image attachments", models.InboundMessage{Attachments: []models.Attachment{
			{ContentType: "application/pdf"}, {ContentType: "video/mp4"}, {ContentType: ""},
		}}, false},
		{"embed image", models.InboundMessage{Embeds: []models.Embed{{HasImage: true}}}, true},
		{"embed thumbnail", models.InboundMessage{Embeds: []models.Embed{{HasThumbnail: true}}}, true},
		{"bare embed", models.InboundMessage{Embeds: []models.Embed{{}}}, false},
		{"non-image attachment with image embed", models.InboundMessage{
			Attachments: []models.Attachment{{ContentType: "audio/ogg"}},
			Embeds:      []models.Embed{{HasImage: true}},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsImage(tt.msg))
		})
	}
}

func TestMatchKeyword_FirstConfiguredWins(t *testing.T) {
	keywords := []string{"raid", "spam link", "link"}

	phrase, ok := MatchKeyword("check out this SPAM LINK now", keywords)
	assert.True(t, ok)
	assert.Equal(t, "spam link", phrase)

	// Both "raid" and "link" occur; configuration order decides, not position in the text.
	phrase, ok = MatchKeyword("link to the raid", keywords)
	assert.True(t, ok)
	assert.Equal(t, "raid", phrase)
}

func TestMatchKeyword_NoFalsePositives(t *testing.T) {
	keywords := []string{"spam link", "raid"}

	_, ok := MatchKeyword("spam and a link, separately", keywords)
	assert.False(t, ok)

	_, ok = MatchKeyword("", keywords)
	assert.False(t, ok)

	_, ok = MatchKeyword("anything", nil)
	assert.False(t, ok)
}

func TestMatchKeyword_EmptyPhraseIgnored(t *testing.T) {
	_, ok := MatchKeyword("harmless text", []string{""})
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	msg := models.InboundMessage{
		Content:     "Raid tonight",
		Attachments: []models.Attachment{{ContentType: "image/jpeg"}},
	}
	got := Classify(msg, []string{"raid"})
	assert.Equal(t, models.MatchResult{IsImage: true, Matched: true, MatchedKeyword: "raid"}, got)
}
