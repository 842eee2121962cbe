package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/ids"
	"goldconnect/api/internal/media/probe"
	"goldconnect/api/internal/media/sniffer"
	"goldconnect/api/internal/models"
)

// ActivityStream is the redis stream journaling send/delete events.
// It is trimmed daily by the scheduler and read by the admin view.
const ActivityStream = "chat:activity"

type messageStore interface {
	CreateText(ctx context.Context, id, author, country, content string) error
	CreateFile(ctx context.Context, id, author, country string, kind models.MessageKind, fileURL string) error
	Delete(ctx context.Context, id string) error
}

type mediaUploader interface {
	Upload(ctx context.Context, kind models.MessageKind, ext, contentType string, data []byte) (string, error)
}

type changeNotifier interface {
	Notify(ctx context.Context)
}

// MessageService coordinates the compose -> validate -> upload ->
// persist pipeline for outgoing messages. Writes are fire-and-forget
// beyond the returned error: no retry, no dedup key, so a user retry
// after an ambiguous failure can duplicate a record.
type MessageService struct {
	store    messageStore
	uploader mediaUploader
	hub      changeNotifier
	journal  *redis.Client
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewMessageService(store messageStore, uploader mediaUploader, hub changeNotifier, journal *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *MessageService {
	return &MessageService{
		store:    store,
		uploader: uploader,
		hub:      hub,
		journal:  journal,
		cfg:      cfg,
		log:      log,
	}
}

func (s *MessageService) SendText(ctx context.Context, author, country, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("%w: message content required", ErrValidation)
	}

	id := ids.New()
	if err := s.store.CreateText(ctx, id, author, country, content); err != nil {
		return fmt.Errorf("persist text message: %w", err)
	}

	s.journalEvent(ctx, "send_text", author, id)
	s.hub.Notify(ctx)
	return nil
}

type FileInput struct {
	Author       string
	Country      string
	Filename     string
	DeclaredMIME string
	Data         []byte
}

func (s *MessageService) SendFile(ctx context.Context, input FileInput) (models.MessageKind, error) {
	if len(input.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrValidation)
	}
	if max := s.cfg.Media.MaxUploadBytes; max > 0 && int64(len(input.Data)) > max {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, max)
	}

	head := input.Data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.Classify(input.DeclaredMIME, head)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Video duration is checked before any upload call. A container
	// we cannot decode counts as unknown and passes through.
	if result.Kind == models.MessageKindVideo {
		if err := s.checkVideoDuration(input.Data); err != nil {
			return "", err
		}
	}

	url, err := s.uploader.Upload(ctx, result.Kind, result.Ext, result.MIME, input.Data)
	if err != nil {
		return "", err
	}

	id := ids.New()
	if err := s.store.CreateFile(ctx, id, input.Author, input.Country, result.Kind, url); err != nil {
		return "", fmt.Errorf("persist file message: %w", err)
	}

	s.journalEvent(ctx, "send_"+string(result.Kind), input.Author, id)
	s.hub.Notify(ctx)
	return result.Kind, nil
}

func (s *MessageService) Delete(ctx context.Context, id, deletedBy string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.journalEvent(ctx, "delete", deletedBy, id)
	s.hub.Notify(ctx)
	return nil
}

func (s *MessageService) checkVideoDuration(data []byte) error {
	duration, err := probe.VideoDuration(data)
	if err != nil {
		if errors.Is(err, probe.ErrNoDuration) {
			return nil
		}
		return err
	}
	if max := s.cfg.Media.MaxVideoDuration; max > 0 && duration > max {
		return fmt.Errorf("%w: video duration %s exceeds %s limit",
			ErrValidation, duration.Round(time.Second), max)
	}
	return nil
}

func (s *MessageService) journalEvent(ctx context.Context, event, actor, messageID string) {
	if s.journal == nil {
		return
	}
	err := s.journal.XAdd(ctx, &redis.XAddArgs{
		Stream: ActivityStream,
		Values: map[string]any{
			"event":     event,
			"actor":     actor,
			"messageId": messageID,
		},
	}).Err()
	if err != nil {
		s.log.Warn().Err(err).Str("event", event).Msg("journal event failed")
	}
}
