package render

import "github.com/bwmarrin/discordgo"

// Navigation custom IDs routed back to the pagination manager.
const (
	CustomIDPrev = "pager:prev"
	CustomIDNext = "pager:next"
)

// NavRow builds the previous/next button row for a page, disabling the
// button at each boundary.
func NavRow(page PageContext) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomIDPrev,
					Disabled: page.AtStart(),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.PrimaryButton,
					CustomID: CustomIDNext,
					Disabled: page.AtEnd(),
				},
			},
		},
	}
}
