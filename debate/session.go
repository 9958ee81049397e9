package debate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"debator/config"
	"debator/models"
	"debator/provider"
	"debator/storage"
)

var (
	ErrDebateNotFound   = errors.New("debate not found")
	ErrMissingCharacter = errors.New("char1, char2 and user_side must not be empty")
)

// Service runs stored debate sessions on top of the turn pipeline: it owns
// who argues which side, the running transcript, and the five-minute judge.
type Service struct {
	orc       *Orchestrator
	store     storage.DebateStore
	images    provider.ImageGenerator
	timeLimit time.Duration
	now       func() time.Time
	log       *slog.Logger
}

func NewService(cfg *config.Config, orc *Orchestrator, store storage.DebateStore, images provider.ImageGenerator, log *slog.Logger) *Service {
	return &Service{
		orc:       orc,
		store:     store,
		images:    images,
		timeLimit: time.Duration(cfg.DebateTimeLimit) * time.Second,
		now:       time.Now,
		log:       log,
	}
}

// Start creates a debate and lets the AI throw the opening jab.
func (s *Service) Start(ctx context.Context, char1, char2, userSide string) (*models.DebateReply, error) {
	if char1 == "" || char2 == "" || userSide == "" {
		return nil, ErrMissingCharacter
	}
	aiSide := char1
	if strings.EqualFold(userSide, char1) {
		aiSide = char2
	}
	resp, err := s.orc.produce(ctx, openingPrompt(aiSide, userSide))
	if err != nil {
		return nil, err
	}
	debate := &models.Debate{
		ID:        uuid.NewString(),
		Char1:     char1,
		Char2:     char2,
		UserSide:  userSide,
		AISide:    aiSide,
		StartedAt: s.now(),
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := debate.SetLines([]string{aiSide + ": " + resp.ResponseText}); err != nil {
		return nil, err
	}
	if _, err := s.store.UpsertDebate(debate); err != nil {
		s.log.Error("failed to persist debate", "error", err, "id", debate.ID)
		return nil, err
	}
	s.log.Info("debate started", "id", debate.ID, "ai_side", aiSide, "user_side", userSide)
	return &models.DebateReply{
		DebateID:   debate.ID,
		AIText:     resp.ResponseText,
		AIAudioURL: resp.AudioURL,
		Partial:    resp.Partial,
	}, nil
}

// Turn appends the user's point and answers it, or hands the debate to the
// judge once the time limit has passed.
func (s *Service) Turn(ctx context.Context, debateID, userText string) (*models.DebateReply, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, ErrEmptyUtterance
	}
	debate, err := s.store.GetDebateByID(debateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDebateNotFound
		}
		return nil, err
	}
	if debate.Finished() {
		return s.verdictReply(ctx, debate)
	}
	lines, err := debate.Lines()
	if err != nil {
		return nil, err
	}
	lines = append(lines, debate.UserSide+": "+userText)
	debate.TurnCount++
	if s.now().Sub(debate.StartedAt) > s.timeLimit {
		return s.judge(ctx, debate, lines)
	}
	resp, err := s.orc.produce(ctx, sessionPrompt(debate.AISide, debate.UserSide, lines, userText, s.orc.maxSentences))
	if err != nil {
		return nil, err
	}
	lines = append(lines, debate.AISide+": "+resp.ResponseText)
	if err := s.persist(debate, lines); err != nil {
		return nil, err
	}
	return &models.DebateReply{
		DebateID:   debate.ID,
		AIText:     resp.ResponseText,
		AIAudioURL: resp.AudioURL,
		Partial:    resp.Partial,
	}, nil
}

// judge picks a winner from the transcript and closes the debate.
func (s *Service) judge(ctx context.Context, debate *models.Debate, lines []string) (*models.DebateReply, error) {
	winner, err := s.orc.generate(ctx, judgePrompt(debate.Char1, debate.Char2, lines))
	if err != nil {
		return nil, err
	}
	debate.Winner = strings.TrimSpace(winner)
	if err := s.persist(debate, lines); err != nil {
		return nil, err
	}
	s.log.Info("debate judged", "id", debate.ID, "winner", debate.Winner)
	return s.verdictReply(ctx, debate)
}

func (s *Service) verdictReply(ctx context.Context, debate *models.Debate) (*models.DebateReply, error) {
	reply := &models.DebateReply{
		DebateID:   debate.ID,
		AIText:     fmt.Sprintf("Time don reach! The winner na %s!", debate.Winner),
		Winner:     debate.Winner,
		IsFinished: true,
	}
	url, err := s.orc.synthesize(ctx, reply.AIText)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		reply.Partial = true
		return reply, nil
	}
	reply.AIAudioURL = &url
	return reply, nil
}

func (s *Service) persist(debate *models.Debate, lines []string) error {
	if err := debate.SetLines(lines); err != nil {
		return err
	}
	debate.UpdatedAt = s.now()
	if _, err := s.store.UpsertDebate(debate); err != nil {
		s.log.Error("failed to persist debate", "error", err, "id", debate.ID)
		return err
	}
	return nil
}

// Portrait generates a character portrait for the debate UI.
func (s *Service) Portrait(ctx context.Context, characterName string) (string, error) {
	if strings.TrimSpace(characterName) == "" {
		return "", ErrMissingCharacter
	}
	return s.images.GenerateImage(ctx, portraitPrompt(characterName))
}
