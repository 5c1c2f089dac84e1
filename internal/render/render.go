// Package render turns result items into Discord embeds and navigation
// controls. Rendering is a pure function of the item and page metadata; the
// package knows nothing about commands or sessions.
package render

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is the accent color used on every embed the bot sends.
const EmbedColor = 0x40E0D0

// ItemKind selects the render strategy for a result item.
type ItemKind string

const (
	KindMovie  ItemKind = "movie"
	KindSeries ItemKind = "series"
	KindMeme   ItemKind = "meme"
)

// Item is one opaque result payload plus the kind tag that picks its layout.
type Item struct {
	Kind          ItemKind
	Title         string
	Overview      string
	ImageURL      string
	Rating        float64
	Date          string
	OriginalTitle string
	SourceNote    string
}

// PageContext carries the page metadata a renderer needs: position, total,
// and the boundary flags derived from them.
type PageContext struct {
	Index int
	Total int
}

// AtStart reports whether the page is the first one.
func (p PageContext) AtStart() bool { return p.Index == 0 }

// AtEnd reports whether the page is the last one.
func (p PageContext) AtEnd() bool { return p.Index >= p.Total-1 }

type renderFunc func(Item, PageContext) *discordgo.MessageEmbed

// renderers is the flat kind-dispatch table. Unknown kinds fall back to the
// generic layout.
var renderers = map[ItemKind]renderFunc{
	KindMovie:  movieEmbed,
	KindSeries: seriesEmbed,
	KindMeme:   memeEmbed,
}

// Page renders one item at the given page position.
func Page(item Item, page PageContext) *discordgo.MessageEmbed {
	if fn, ok := renderers[item.Kind]; ok {
		return fn(item, page)
	}
	return baseEmbed(item, page)
}

func baseEmbed(item Item, page PageContext) *discordgo.MessageEmbed {
	overview := item.Overview
	if overview == "" {
		overview = "No description available."
	}
	embed := &discordgo.MessageEmbed{
		Title:       item.Title,
		Description: overview,
		Color:       EmbedColor,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Result %d of %d • Rating: ⭐ %.1f/10", page.Index+1, page.Total, item.Rating),
		},
	}
	if item.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: item.ImageURL}
	}
	return embed
}

func movieEmbed(item Item, page PageContext) *discordgo.MessageEmbed {
	embed := baseEmbed(item, page)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Release Date", Value: orNA(item.Date), Inline: true},
		{Name: "Original Title", Value: orNA(item.OriginalTitle), Inline: true},
	}
	return embed
}

func seriesEmbed(item Item, page PageContext) *discordgo.MessageEmbed {
	embed := baseEmbed(item, page)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "First Air Date", Value: orNA(item.Date), Inline: true},
		{Name: "Original Name", Value: orNA(item.OriginalTitle), Inline: true},
	}
	return embed
}

func memeEmbed(item Item, _ PageContext) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: item.Title,
		Color: EmbedColor,
	}
	if item.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: item.ImageURL}
	}
	if item.SourceNote != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: item.SourceNote}
	}
	return embed
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
