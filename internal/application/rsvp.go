package application

import (
	"context"
	"errors"
	"log"
	"time"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
	"guildcal/internal/ports/output"
	"guildcal/internal/render"
)

const defaultRenderQueueSize = 64

type renderJob struct {
	guildID string
	eventID string
	ref     output.MessageRef
}

// RSVPService reconciles external reaction signals with event rosters. The
// roster write is the authoritative step; retractions and re-renders are
// best-effort side effects dispatched after it commits.
type RSVPService struct {
	events     output.EventRepository
	bindings   output.BindingRepository
	vocab      *VocabularyProvider
	prefs      output.PreferenceRepository
	notifier   output.Notifier
	identity   output.IdentityResolver
	translator output.T
	now        func() time.Time

	renders chan renderJob
}

func NewRSVPService(
	events output.EventRepository,
	bindings output.BindingRepository,
	vocab *VocabularyProvider,
	prefs output.PreferenceRepository,
	notifier output.Notifier,
	identity output.IdentityResolver,
	translator output.T,
	queueSize int,
) *RSVPService {
	if queueSize <= 0 {
		queueSize = defaultRenderQueueSize
	}
	s := &RSVPService{
		events:     events,
		bindings:   bindings,
		vocab:      vocab,
		prefs:      prefs,
		notifier:   notifier,
		identity:   identity,
		translator: translator,
		now:        time.Now,
		renders:    make(chan renderJob, queueSize),
	}
	go s.renderWorker()
	return s
}

// HandleSignalAdd applies a signal-add (user reacted with symbol) to the
// bound event's roster. Messages without a binding and symbols outside the
// guild vocabulary are ignored.
func (s *RSVPService) HandleSignalAdd(ctx context.Context, guildID, channelID, messageID, userID, symbol, locale string) error {
	binding, err := s.bindings.FindByMessage(ctx, guildID, channelID, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrBindingNotFound) {
			return nil
		}
		return err
	}
	vocab, err := s.vocab.Get(ctx, guildID)
	if err != nil {
		return err
	}
	status, ok := vocab.StatusFor(symbol)
	if !ok {
		// Unrelated reaction traffic must never corrupt state.
		return nil
	}

	var tr entities.Transition
	_, err = s.events.UpdateRoster(ctx, guildID, binding.EventID, func(e *entities.Event) error {
		tr = e.Roster.Apply(userID, status, s.now().UTC())
		return nil
	})
	if err != nil {
		return err
	}
	if !tr.Changed {
		return nil
	}

	ref := output.MessageRef{ChannelID: channelID, MessageID: messageID}
	if tr.From != "" {
		// Status switch: the old symbol(s) are stale, strip them. The roster
		// is already committed; a denied cleanup only earns the user a
		// reminder to tidy up themselves.
		s.retractStaleSignals(ctx, ref, vocab, status, userID, locale)
	}
	s.enqueueRender(guildID, binding.EventID, ref)
	return nil
}

// HandleSignalRemove applies a signal-remove. The attendee record is dropped
// only when the user holds no remaining recognized symbol on the message, so
// the remove events echoed by our own exclusivity cleanup are no-ops.
func (s *RSVPService) HandleSignalRemove(ctx context.Context, guildID, channelID, messageID, userID, symbol string) error {
	binding, err := s.bindings.FindByMessage(ctx, guildID, channelID, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrBindingNotFound) {
			return nil
		}
		return err
	}
	vocab, err := s.vocab.Get(ctx, guildID)
	if err != nil {
		return err
	}
	if _, ok := vocab.StatusFor(symbol); !ok {
		return nil
	}

	ref := output.MessageRef{ChannelID: channelID, MessageID: messageID}
	held, err := s.notifier.UserSignals(ctx, ref, userID)
	if err != nil {
		// Without a confirmed-bare read we keep the attendee rather than risk
		// a spurious RSVP loss.
		log.Printf("⚠️ Could not inspect remaining signals (message=%s, user=%s): %v", messageID, userID, err)
		return nil
	}
	for _, sym := range held {
		if _, ok := vocab.StatusFor(sym); ok {
			return nil
		}
	}

	removed := false
	_, err = s.events.UpdateRoster(ctx, guildID, binding.EventID, func(e *entities.Event) error {
		removed = e.Roster.Remove(userID)
		return nil
	})
	if err != nil {
		return err
	}
	if removed {
		s.enqueueRender(guildID, binding.EventID, ref)
	}
	return nil
}

func (s *RSVPService) retractStaleSignals(ctx context.Context, ref output.MessageRef, vocab domain.Vocabulary, newStatus, userID, locale string) {
	denied := false
	for _, sym := range vocab.SymbolsExcept(newStatus) {
		err := s.notifier.RemoveSignal(ctx, ref, sym, userID)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrPermissionDenied):
			denied = true
		default:
			log.Printf("⚠️ Retract stale signal %s (message=%s, user=%s): %v", sym, ref.MessageID, userID, err)
		}
	}
	if denied {
		log.Printf("⚠️ Missing permission to strip stale signals (message=%s, user=%s)", ref.MessageID, userID)
		reminder := s.translator.T(locale, "rsvp.cleanup_denied", nil)
		if err := s.notifier.NotifyUser(ctx, userID, reminder); err != nil {
			log.Printf("⚠️ Cleanup reminder DM (user=%s): %v", userID, err)
		}
	}
}

// enqueueRender schedules a summary re-render. The queue is bounded and
// best-effort: when full the job is dropped with a warning instead of
// blocking the signal path.
func (s *RSVPService) enqueueRender(guildID, eventID string, ref output.MessageRef) {
	select {
	case s.renders <- renderJob{guildID: guildID, eventID: eventID, ref: ref}:
	default:
		log.Printf("⚠️ Render queue full, dropping re-render (event=%s)", eventID)
	}
}

func (s *RSVPService) renderWorker() {
	for job := range s.renders {
		s.renderOnce(context.Background(), job)
	}
}

// renderOnce rebuilds the bound message's summary from authoritative state.
// Failures are logged once, never retried; the next roster change enqueues a
// fresh render anyway.
func (s *RSVPService) renderOnce(ctx context.Context, job renderJob) {
	event, err := s.events.FindByID(ctx, job.guildID, job.eventID)
	if err != nil {
		log.Printf("❌ Re-render load event %s: %v", job.eventID, err)
		return
	}
	vocab, err := s.vocab.Get(ctx, job.guildID)
	if err != nil {
		log.Printf("❌ Re-render vocabulary (guild=%s): %v", job.guildID, err)
		return
	}
	zones, err := s.prefs.GuildTimezones(ctx, job.guildID)
	if err != nil {
		log.Printf("⚠️ Re-render guild timezones (guild=%s): %v", job.guildID, err)
		zones = nil
	}
	sum, err := render.Render(event, vocab, zones, func(userID string) (string, error) {
		return s.identity.DisplayName(ctx, job.guildID, userID)
	})
	if err != nil {
		log.Printf("❌ Re-render summary (event=%s): %v", job.eventID, err)
		return
	}
	if err := s.notifier.EditSummary(ctx, job.ref, sum); err != nil {
		log.Printf("❌ Edit summary message %s: %v", job.ref.MessageID, err)
	}
}
