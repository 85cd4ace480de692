package game

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

var fallbackComments = []string{"Love this!", "Can't wait!", "You're the best!"}

var commentAuthors = []string{
	"Zara Moon", "DJ Khalifa", "Luna Star", "Mike Waves",
	"Bella Note", "Ray Chord", "Nina Echo", "Tony Beats",
}

// GeneratePostText drafts a social post for the player to publish.
// Pure flavor: no state changes, fallback when the collaborator is
// down.
func (s *Service) GeneratePostText(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return "", err
	}
	text := s.generateText(ctx,
		"You are a social media ghostwriter for musicians.",
		fmt.Sprintf("Generate a short, engaging social media post (max 2 sentences) for a %s artist. Make it about music, lifestyle, or fan appreciation. Keep it authentic and relatable.",
			state.Artist.Genre),
		120,
		"Studio all night. New music coming soon, you have no idea what's about to drop.",
	)
	return text, nil
}

// PublishPost posts to StarGram. Likes scale with the fanbase, three
// fan comments come from the collaborator (pipe-separated, canned trio
// on failure), and the stored feed keeps the 20 most recent posts.
// Follower growth bumps the fanbase total only; buckets stay put.
func (s *Service) PublishPost(ctx context.Context, content string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: post content is empty", ErrRequirementsNotMet)
	}

	raw := s.generateText(ctx,
		"You write realistic fan comments.",
		fmt.Sprintf("Generate 3 short fan comments (each 5-10 words) reacting to this post: %q. Mix positive excitement with some questions. Separate with |", content),
		150,
		strings.Join(fallbackComments, "|"),
	)
	parts := strings.Split(raw, "|")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	now := time.Now().UnixMilli()
	comments := make([]Comment, 0, len(parts))
	for i, text := range parts {
		comments = append(comments, Comment{
			ID:        fmt.Sprintf("%d_%d", now, i),
			Author:    commentAuthors[s.nextIntn(len(commentAuthors))],
			Content:   strings.TrimSpace(text),
			Sentiment: "positive",
		})
	}

	likes := int(math.Floor(s.nextFloat() * float64(state.Fanbase.Total) / 10))
	newFollowers := int(math.Floor(s.nextFloat() * 100))
	post := Post{
		ID:        NewID(),
		Content:   content,
		Likes:     likes,
		Comments:  comments,
		Timestamp: now,
		IsViral:   s.nextFloat() > 0.8,
	}

	state.SocialMedia.StarGram.Posts = append([]Post{post}, state.SocialMedia.StarGram.Posts...)
	if len(state.SocialMedia.StarGram.Posts) > MaxStoredPosts {
		state.SocialMedia.StarGram.Posts = state.SocialMedia.StarGram.Posts[:MaxStoredPosts]
	}
	state.SocialMedia.StarGram.Followers += newFollowers
	state.Fanbase.Total += newFollowers
	return s.persist(ctx, state)
}

// Collaborate records a collaboration with another artist. One
// relationship per (name, type) pair; costs energy, pays reputation
// and prestige.
func (s *Service) Collaborate(ctx context.Context, artistName string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if state.Artist.Energy < CollabEnergyCost {
		return nil, fmt.Errorf("%w: collaborating needs %d energy", ErrInsufficientEnergy, CollabEnergyCost)
	}
	if hasRelationship(state, artistName, RelationshipCollaboration) {
		return nil, fmt.Errorf("%w: collaboration with %s", ErrDuplicateRelationship, artistName)
	}

	state.Artist.Energy -= CollabEnergyCost
	state.Artist.Reputation += 10
	state.Artist.Prestige += 15
	state.Relationships = append(state.Relationships, Relationship{
		ID:             NewID(),
		Name:           artistName,
		Type:           RelationshipCollaboration,
		Affinity:       20,
		Interactions:   1,
		ImpactOnCareer: "positive",
	})
	return s.persist(ctx, state)
}

// StartRivalry picks a public feud. Rivalries start hostile but boost
// visibility, so prestige goes up.
func (s *Service) StartRivalry(ctx context.Context, artistName string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if hasRelationship(state, artistName, RelationshipRivalry) {
		return nil, fmt.Errorf("%w: rivalry with %s", ErrDuplicateRelationship, artistName)
	}

	state.Artist.Prestige += 20
	state.Relationships = append(state.Relationships, Relationship{
		ID:             NewID(),
		Name:           artistName,
		Type:           RelationshipRivalry,
		Affinity:       -20,
		Interactions:   1,
		AIGenerated:    true,
		ImpactOnCareer: "positive",
	})
	return s.persist(ctx, state)
}

// AddToEntourage brings someone into the inner circle.
func (s *Service) AddToEntourage(ctx context.Context, name string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if hasRelationship(state, name, RelationshipEntourage) {
		return nil, fmt.Errorf("%w: %s is already in the entourage", ErrDuplicateRelationship, name)
	}

	state.Artist.Reputation += 5
	state.Relationships = append(state.Relationships, Relationship{
		ID:           NewID(),
		Name:         name,
		Type:         RelationshipEntourage,
		Affinity:     10,
		Interactions: 1,
	})
	return s.persist(ctx, state)
}

func hasRelationship(state *GameState, name, relType string) bool {
	for _, r := range state.Relationships {
		if r.Name == name && r.Type == relType {
			return true
		}
	}
	return false
}
