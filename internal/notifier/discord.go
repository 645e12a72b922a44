package notifier

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
)

type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   messageSender
	channelID string
}

func NewDiscordNotifier(botToken, channelID string) (*DiscordNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}, nil
}

func (n *DiscordNotifier) NotifyRegistration(s registration.Submission) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, formatRegistration(s)); err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}

func formatRegistration(s registration.Submission) string {
	consent := "no"
	if s.SocialMediaConsent {
		consent = "yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📸 **New Photo Shoot Registration**\n**Name:** %s\n**Category:** %s\n**Photo Code:** `%s`\n**Social Media Consent:** %s",
		s.FullName,
		s.ShootCategory.Label(),
		s.PhotoCode,
		consent,
	)
	if n := len(s.AdditionalEmails); n > 0 {
		fmt.Fprintf(&b, "\n**Additional Contacts:** %d", n)
	}
	if s.Notes != "" {
		fmt.Fprintf(&b, "\n**Notes:** %s", s.Notes)
	}
	return b.String()
}
