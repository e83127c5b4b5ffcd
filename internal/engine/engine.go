// Package engine decides which alerts to dispatch. It owns the two scan
// paths: the scheduled bearish check with cooldown and per-run caps, and the
// on-demand full-classification check triggered from the API.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bearwatch/internal/ledger"
	"bearwatch/internal/logger"
	"bearwatch/internal/models"
	"bearwatch/internal/sentiment"
	"bearwatch/internal/store"
	"bearwatch/internal/watchlist"
)

// Transport is the fire-and-forget send primitive. The bool result reports
// whether the message was accepted for delivery; the engine never retries.
type Transport interface {
	Send(chatID, message string) bool
}

// Fetcher returns the current signal batch. Per-source failures are absorbed
// inside the fetcher, so the batch is never an error, only possibly empty.
type Fetcher interface {
	FetchAll(ctx context.Context) []models.Signal
}

// Clock abstracts time.Now so cooldown behavior is testable with simulated
// time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Engine wires classification, matching, cooldown and transport into the
// dispatch decisions.
type Engine struct {
	store       store.Store
	fetcher     Fetcher
	transport   Transport
	classifier  *sentiment.Classifier
	ledger      *ledger.Ledger
	clock       Clock
	maxPerRun   int
	log         zerolog.Logger
	scheduledMu sync.Mutex
}

func New(st store.Store, fetcher Fetcher, transport Transport, classifier *sentiment.Classifier, led *ledger.Ledger, maxPerRun int) *Engine {
	return &Engine{
		store:      st,
		fetcher:    fetcher,
		transport:  transport,
		classifier: classifier,
		ledger:     led,
		clock:      SystemClock{},
		maxPerRun:  maxPerRun,
		log:        logger.Get().With().Str("component", "engine").Logger(),
	}
}

// WithClock replaces the engine clock. Tests use this to simulate elapsed
// time across runs.
func (e *Engine) WithClock(clock Clock) *Engine {
	e.clock = clock
	return e
}

// TriggerOnce runs the on-demand full scan. Every signal is fully classified;
// a signal is actionable when its sentiment is Negative or its urgency is
// high or critical. Matches are recorded for every user regardless of
// delivery; sends are attempted immediately for users with a chat id and
// counted on success. This path deliberately skips the cooldown ledger and
// has no per-run cap: a manual trigger always reports the full picture.
func (e *Engine) TriggerOnce(ctx context.Context) (*models.TriggerResult, error) {
	users, err := e.store.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("trigger check: %w", err)
	}

	signals := e.fetcher.FetchAll(ctx)
	classified := e.classifier.ClassifyAll(signals)

	result := &models.TriggerResult{
		MarketSummary: sentiment.Summary(classified),
		Details:       []models.MatchRecord{},
	}

	for _, sig := range classified {
		if !actionable(sig) {
			continue
		}

		for _, user := range users {
			matched := watchlist.Match(sig.Keywords, user.Watchlist)
			if len(matched) == 0 {
				continue
			}

			result.Details = append(result.Details, models.MatchRecord{
				Username:        user.Username,
				SignalID:        sig.ID,
				Headline:        sig.Headline,
				MatchedKeywords: matched,
				Sentiment:       sig.Sentiment,
				Urgency:         sig.Urgency,
				Analysis:        sig.Analysis,
			})

			if user.ChatID == "" {
				continue
			}

			action := models.DispatchAction{
				Username:        user.Username,
				ChatID:          user.ChatID,
				SignalID:        sig.ID,
				MatchedKeywords: matched,
				Sentiment:       sig.Sentiment,
				Urgency:         sig.Urgency,
			}
			if e.transport.Send(action.ChatID, formatTriggerAlert(sig, matched)) {
				result.AlertsSent++
			}
		}
	}

	result.MatchesFound = len(result.Details)

	e.log.Info().
		Int("alerts_sent", result.AlertsSent).
		Int("matches_found", result.MatchesFound).
		Int("signals", len(classified)).
		Msg("manual check complete")

	return result, nil
}

// RunScheduledCheck runs one scheduled scan and returns the number of alerts
// confirmed sent. Signals are screened with the cheap bearish-headline check
// instead of full classification. Each user is capped at maxPerRun alerts per
// scan, and a (user, topic) pair inside its cooldown window is suppressed.
// The ledger is only consumed on a confirmed send, so a transport failure
// leaves the pair eligible for the next run.
func (e *Engine) RunScheduledCheck(ctx context.Context) (int, error) {
	// Serialized so overlapping invocations cannot both pass the ledger
	// check for the same pair before either records.
	e.scheduledMu.Lock()
	defer e.scheduledMu.Unlock()

	now := e.clock.Now()
	scanLog := e.log.With().Str("scan_id", uuid.NewString()[:8]).Logger()

	users, err := e.store.GetAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("scheduled check: %w", err)
	}
	if len(users) == 0 {
		scanLog.Debug().Msg("no registered users, skipping scan")
		return 0, nil
	}

	signals := e.fetcher.FetchAll(ctx)

	total := 0
	for _, user := range users {
		if user.ChatID == "" {
			continue
		}

		sent := 0
		for _, sig := range signals {
			if sent >= e.maxPerRun {
				break
			}
			if !sentiment.BearishHeadline(sig.Headline) {
				continue
			}

			matched := watchlist.Match(sig.Keywords, user.Watchlist)
			if len(matched) == 0 {
				continue
			}

			topic := matched[0]
			if !e.ledger.IsEligible(user.Username, topic, now) {
				scanLog.Debug().
					Str("user", user.Username).
					Str("topic", topic).
					Msg("cooldown active, suppressed")
				continue
			}

			action := models.DispatchAction{
				Username:        user.Username,
				ChatID:          user.ChatID,
				SignalID:        sig.ID,
				MatchedKeywords: matched,
			}
			if !e.transport.Send(action.ChatID, formatScheduledAlert(sig, topic, matched)) {
				scanLog.Warn().
					Str("user", action.Username).
					Str("signal", action.SignalID).
					Msg("send failed")
				continue
			}

			e.ledger.Record(action.Username, topic, now)
			sent++
			total++
			scanLog.Info().
				Str("user", user.Username).
				Str("topic", topic).
				Str("signal", sig.ID).
				Msg("alert dispatched")
		}
	}

	scanLog.Info().
		Int("alerts", total).
		Int("signals", len(signals)).
		Int("users", len(users)).
		Msg("scheduled check complete")

	return total, nil
}

func actionable(sig models.ClassifiedSignal) bool {
	return sig.Sentiment == models.LabelNegative ||
		sig.Urgency == models.UrgencyHigh ||
		sig.Urgency == models.UrgencyCritical
}
