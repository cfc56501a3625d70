package discussion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/opportunity-hub/api/internal/utils"
)

// ErrChannelProvisioning marks a failed call to the chat provider.
// Callers map it to an upstream (502) error, never a crash.
var ErrChannelProvisioning = errors.New("channel provisioning failed")

// ChannelCreator provisions a chat channel and returns its id.
type ChannelCreator interface {
	CreateChannel(ctx context.Context, name, topic string) (string, error)
	ChannelLink(channelID string) string
}

const guildTextChannel = 0

type discordClient struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	guildID    string
}

// NewDiscordClient builds a ChannelCreator backed by the Discord guild
// channels API.
func NewDiscordClient(cfg *utils.DiscordConfig) ChannelCreator {
	return &discordClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		botToken:   cfg.BotToken,
		guildID:    cfg.GuildID,
	}
}

type createChannelRequest struct {
	Name  string `json:"name"`
	Type  int    `json:"type"`
	Topic string `json:"topic"`
}

type createChannelResponse struct {
	ID string `json:"id"`
}

func (d *discordClient) CreateChannel(ctx context.Context, name, topic string) (string, error) {
	payload, err := json.Marshal(createChannelRequest{
		Name:  channelName(name),
		Type:  guildTextChannel,
		Topic: topic,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChannelProvisioning, err)
	}

	url := fmt.Sprintf("%s/guilds/%s/channels", d.baseURL, d.guildID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChannelProvisioning, err)
	}
	req.Header.Set("Authorization", "Bot "+d.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChannelProvisioning, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrChannelProvisioning, resp.StatusCode)
	}

	var channel createChannelResponse
	if err := json.NewDecoder(resp.Body).Decode(&channel); err != nil {
		return "", fmt.Errorf("%w: %v", ErrChannelProvisioning, err)
	}
	if channel.ID == "" {
		return "", fmt.Errorf("%w: empty channel id", ErrChannelProvisioning)
	}
	return channel.ID, nil
}

func (d *discordClient) ChannelLink(channelID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s", d.guildID, channelID)
}

func channelName(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}
