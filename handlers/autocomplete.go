package handlers

import (
	log "log/slog"
	"strings"
	"unicode/utf8"

	"botswatter/bot"

	"github.com/bwmarrin/discordgo"
)

const (
	// maxChoices is the most autocomplete choices Discord accepts.
	maxChoices = 25
	// maxChoiceLength caps both the name and the value of a choice, in characters.
	maxChoiceLength = 100
)

// HandleAutocomplete handles all autocomplete interactions.
func HandleAutocomplete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "autoban" || len(data.Options) == 0 || data.Options[0].Name != "remove" {
		return
	}
	for _, opt := range data.Options[0].Options {
		if opt.Name == "phrase" && opt.Focused {
			handlePhraseAutocomplete(b, s, i, opt.StringValue())
		}
	}
}

func handlePhraseAutocomplete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, typed string) {
	keywords, err := b.Store.GetKeywords(b.Context(), i.GuildID)
	if err != nil {
		log.Error("could not load autoban phrases for autocomplete", "guild", i.GuildID, "error", err)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: phraseChoices(keywords, typed),
		},
	})
	if err != nil {
		log.Error("error responding to autocomplete interaction", "error", err)
	}
}

func phraseChoices(keywords []string, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))
	seen := make(map[string]struct{}, len(keywords))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(keywords), maxChoices))
	for _, k := range keywords {
		if _, dup := seen[k]; dup || !strings.Contains(k, typed) {
			continue
		}
		seen[k] = struct{}{}
		// A shortened value would no longer match the stored phrase, so long phrases are left out.
		if utf8.RuneCountInString(k) > maxChoiceLength {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: k, Value: k})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}
