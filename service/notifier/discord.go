package notifier

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/metrics"
)

const (
	colorWarn     = 0xf1c40f
	colorCritical = 0xe74c3c
	// discord rejects embeds with more fields
	maxEmbedFields = 25
)

var met = metrics.New("notifier")

// messageSender is the part of *discordgo.Session used here
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type discordImpl struct {
	session   messageSender
	channelId string
}

// NewDiscord posts alerts to a discord channel as a bot
func NewDiscord(token, channelId string) (Notifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &discordImpl{session: session, channelId: channelId}, nil
}

func (im *discordImpl) Alert(c ctx.Ctx, alert Alert) error {
	defer met.BumpTime("discord.send").End()

	if _, err := im.session.ChannelMessageSendEmbed(im.channelId, toEmbed(alert)); err != nil {
		met.BumpSum("discord.send.err", 1)
		c.WithField("err", err).WithField("title", alert.Title).Error("session.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

func toEmbed(alert Alert) *discordgo.MessageEmbed {
	color := colorWarn
	if alert.Level == LevelCritical {
		color = colorCritical
	}

	names := make([]string, 0, len(alert.Fields))
	for k := range alert.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	if len(names) > maxEmbedFields {
		names = names[:maxEmbedFields]
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(names))
	for _, k := range names {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   k,
			Value:  fmt.Sprint(alert.Fields[k]),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("[%s] %s", alert.Level, alert.Title),
		Description: alert.Message,
		Color:       color,
		Fields:      fields,
	}
}
