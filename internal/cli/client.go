package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) NewGame(ctx context.Context, name, stageName, genre string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/game", map[string]any{
		"name":      name,
		"stageName": stageName,
		"genre":     genre,
	}, &out)
	return out, err
}

func (c *Client) Snapshot(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/game", nil, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/game/summary", nil, &out)
	return out, err
}

func (c *Client) Catalog(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog", nil, &out)
	return out, err
}

func (c *Client) Reset(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/game", nil, nil)
}

func (c *Client) Hire(ctx context.Context, role, candidateID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/team/hire", map[string]any{
		"role":        role,
		"candidateId": candidateID,
	}, &out)
	return out, err
}

func (c *Client) Fire(ctx context.Context, role string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/team/fire", map[string]any{
		"role": role,
	}, &out)
	return out, err
}

func (c *Client) BuyEquipment(ctx context.Context, id string) (map[string]any, error) {
	return c.idAction(ctx, "/v1/studio/equipment", id)
}

func (c *Client) BuildRoom(ctx context.Context, id string) (map[string]any, error) {
	return c.idAction(ctx, "/v1/studio/rooms", id)
}

func (c *Client) BuyUpgrade(ctx context.Context, id string) (map[string]any, error) {
	return c.idAction(ctx, "/v1/studio/upgrades", id)
}

func (c *Client) UpgradeStudioTier(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/studio/tier", map[string]any{}, &out)
	return out, err
}

func (c *Client) RecordSong(ctx context.Context, title, songType, theme string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/songs", map[string]any{
		"title": title,
		"type":  songType,
		"theme": theme,
	}, &out)
	return out, err
}

func (c *Client) ShootVideo(ctx context.Context, songID, directorID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/songs/"+url.PathEscape(songID)+"/video", map[string]any{
		"directorId": directorID,
	}, &out)
	return out, err
}

func (c *Client) Perform(ctx context.Context, venueID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/shows", map[string]any{
		"venueId": venueID,
	}, &out)
	return out, err
}

func (c *Client) BookMediaEvent(ctx context.Context, eventID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/media/events", map[string]any{
		"eventId": eventID,
	}, &out)
	return out, err
}

func (c *Client) HoldPressConference(ctx context.Context, topic string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/media/press", map[string]any{
		"topic": topic,
	}, &out)
	return out, err
}

func (c *Client) GeneratePost(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/social/generate", map[string]any{}, &out)
	return out, err
}

func (c *Client) PublishPost(ctx context.Context, content string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/social/posts", map[string]any{
		"content": content,
	}, &out)
	return out, err
}

func (c *Client) Collaborate(ctx context.Context, name string) (map[string]any, error) {
	return c.nameAction(ctx, "/v1/relationships/collaborations", name)
}

func (c *Client) StartRivalry(ctx context.Context, name string) (map[string]any, error) {
	return c.nameAction(ctx, "/v1/relationships/rivalries", name)
}

func (c *Client) AddToEntourage(ctx context.Context, name string) (map[string]any, error) {
	return c.nameAction(ctx, "/v1/relationships/entourage", name)
}

func (c *Client) SignContract(ctx context.Context, contractID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/contracts", map[string]any{
		"contractId": contractID,
	}, &out)
	return out, err
}

func (c *Client) SignBrandDeal(ctx context.Context, dealID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/brand-deals", map[string]any{
		"dealId": dealID,
	}, &out)
	return out, err
}

func (c *Client) Invest(ctx context.Context, optionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/investments", map[string]any{
		"optionId": optionID,
	}, &out)
	return out, err
}

func (c *Client) BuyLuxury(ctx context.Context, itemID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/luxury", map[string]any{
		"itemId": itemID,
	}, &out)
	return out, err
}

func (c *Client) UpgradeFanClub(ctx context.Context, tier int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/fanclub", map[string]any{
		"tier": tier,
	}, &out)
	return out, err
}

func (c *Client) LaunchMerch(ctx context.Context, templateID, name string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/merch", map[string]any{
		"templateId": templateID,
		"name":       name,
	}, &out)
	return out, err
}

func (c *Client) RunMerchDrop(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/merch/drops", map[string]any{}, &out)
	return out, err
}

func (c *Client) LaunchFashionLine(ctx context.Context, name string) (map[string]any, error) {
	return c.nameAction(ctx, "/v1/fashion", name)
}

func (c *Client) OpenPopupStore(ctx context.Context, city string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/popups", map[string]any{
		"city": city,
	}, &out)
	return out, err
}

func (c *Client) ClaimAwards(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/awards/claim", map[string]any{}, &out)
	return out, err
}

func (c *Client) Rest(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/rest", map[string]any{}, &out)
	return out, err
}

// Do replays an arbitrary queued command.
func (c *Client) Do(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, method, path, body, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) idAction(ctx context.Context, path, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, path, map[string]any{"id": id}, &out)
	return out, err
}

func (c *Client) nameAction(ctx context.Context, path, name string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, path, map[string]any{"name": name}, &out)
	return out, err
}
