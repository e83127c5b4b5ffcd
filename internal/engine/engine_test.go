package engine

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bearwatch/internal/ledger"
	"bearwatch/internal/models"
	"bearwatch/internal/sentiment"
	"bearwatch/internal/store"
)

var runTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeFetcher struct {
	signals []models.Signal
	calls   atomic.Int32
}

func (f *fakeFetcher) FetchAll(context.Context) []models.Signal {
	f.calls.Add(1)
	return f.signals
}

// fakeTransport records every send and fails for chat ids listed in failFor.
type fakeTransport struct {
	failFor  map[string]bool
	messages []string
	chatIDs  []string
}

func (t *fakeTransport) Send(chatID, message string) bool {
	t.chatIDs = append(t.chatIDs, chatID)
	t.messages = append(t.messages, message)
	return !t.failFor[chatID]
}

// scriptedScorer maps substrings of the scored text to compound scores.
type scriptedScorer struct {
	scores map[string]float64
}

func (s scriptedScorer) Score(text string) float64 {
	for fragment, score := range s.scores {
		if strings.Contains(text, fragment) {
			return score
		}
	}
	return 0
}

type failingStore struct {
	store.Store
}

func (failingStore) GetAllUsers(context.Context) ([]models.User, error) {
	return nil, errors.New("database unreachable")
}

func crashSignal() models.Signal {
	return models.Signal{
		ID:       "sig_1",
		Source:   "Bloomberg",
		Headline: "Bitcoin crashes 15%",
		Content:  "Cryptocurrency markets tumble.",
		Keywords: []string{"Bitcoin", "crypto"},
	}
}

func newTestEngine(t *testing.T, signals []models.Signal, scores map[string]float64) (*Engine, *store.Memory, *fakeTransport, *ledger.Ledger, *fixedClock) {
	t.Helper()

	st := store.NewMemory()
	transport := &fakeTransport{failFor: map[string]bool{}}
	led := ledger.New(4 * time.Hour)
	clock := &fixedClock{now: runTime}

	classifier := sentiment.NewClassifier(scriptedScorer{scores: scores})
	eng := New(st, &fakeFetcher{signals: signals}, transport, classifier, led, 2).WithClock(clock)

	return eng, st, transport, led, clock
}

func registerUser(t *testing.T, st *store.Memory, username, chatID string, watchlist ...string) {
	t.Helper()

	_, err := st.UpsertUser(context.Background(), username, chatID)
	require.NoError(t, err)
	for _, kw := range watchlist {
		_, _, err := st.AppendWatchlist(context.Background(), username, kw)
		require.NoError(t, err)
	}
}

func TestScheduledDispatchesMatchedBearishSignal(t *testing.T) {
	t.Parallel()

	eng, st, transport, led, _ := newTestEngine(t, []models.Signal{crashSignal()}, nil)
	registerUser(t, st, "alice", "100", "bitcoin")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, transport.messages, 1)
	assert.Contains(t, transport.messages[0], "bitcoin")
	assert.Contains(t, transport.messages[0], "Bitcoin crashes 15%")

	// Topic recorded at the run timestamp: still cooling down just before
	// the window closes, eligible exactly at it.
	assert.False(t, led.IsEligible("alice", "bitcoin", runTime.Add(4*time.Hour-time.Second)))
	assert.True(t, led.IsEligible("alice", "bitcoin", runTime.Add(4*time.Hour)))
}

func TestScheduledCooldownSuppressesRepeat(t *testing.T) {
	t.Parallel()

	eng, st, transport, _, clock := newTestEngine(t, []models.Signal{crashSignal()}, nil)
	registerUser(t, st, "alice", "100", "bitcoin")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	clock.now = runTime.Add(10 * time.Minute)
	sent, err = eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	clock.now = runTime.Add(5 * time.Hour)
	sent, err = eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, transport.messages, 2)
}

func TestScheduledLedgerOverwrittenAfterWindow(t *testing.T) {
	t.Parallel()

	eng, st, _, led, clock := newTestEngine(t, []models.Signal{crashSignal()}, nil)
	registerUser(t, st, "alice", "100", "bitcoin")

	_, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)

	clock.now = runTime.Add(5 * time.Hour)
	_, err = eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)

	// New cooldown counts from the second run, not the first.
	assert.False(t, led.IsEligible("alice", "bitcoin", runTime.Add(8*time.Hour)))
	assert.True(t, led.IsEligible("alice", "bitcoin", runTime.Add(9*time.Hour)))
}

func TestScheduledPerRunCap(t *testing.T) {
	t.Parallel()

	signals := []models.Signal{
		{ID: "s1", Headline: "Bitcoin crashes hard", Keywords: []string{"Bitcoin"}},
		{ID: "s2", Headline: "Tesla shares drop 8%", Keywords: []string{"Tesla"}},
		{ID: "s3", Headline: "Oil prices plunge", Keywords: []string{"oil"}},
		{ID: "s4", Headline: "Gold sell-off continues", Keywords: []string{"gold"}},
	}

	eng, st, transport, led, _ := newTestEngine(t, signals, nil)
	registerUser(t, st, "alice", "100", "bitcoin", "tesla", "oil", "gold")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	// Cap is order-sensitive: the first two signals in fetch order win.
	require.Len(t, transport.messages, 2)
	assert.Contains(t, transport.messages[0], "Bitcoin crashes hard")
	assert.Contains(t, transport.messages[1], "Tesla shares drop 8%")

	// Uncapped topics were never attempted, so their cooldown is untouched.
	assert.True(t, led.IsEligible("alice", "oil", runTime.Add(time.Minute)))
	assert.True(t, led.IsEligible("alice", "gold", runTime.Add(time.Minute)))
}

func TestScheduledCapIsPerUser(t *testing.T) {
	t.Parallel()

	signals := []models.Signal{
		{ID: "s1", Headline: "Bitcoin crashes hard", Keywords: []string{"Bitcoin"}},
		{ID: "s2", Headline: "Tesla shares drop 8%", Keywords: []string{"Tesla"}},
		{ID: "s3", Headline: "Oil prices plunge", Keywords: []string{"oil"}},
	}

	eng, st, _, _, _ := newTestEngine(t, signals, nil)
	registerUser(t, st, "alice", "100", "bitcoin", "tesla", "oil")
	registerUser(t, st, "bob", "200", "bitcoin", "tesla", "oil")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sent)
}

func TestScheduledFailedSendDoesNotConsumeCooldown(t *testing.T) {
	t.Parallel()

	eng, st, transport, led, _ := newTestEngine(t, []models.Signal{crashSignal()}, nil)
	registerUser(t, st, "alice", "100", "bitcoin")
	transport.failFor["100"] = true

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.True(t, led.IsEligible("alice", "bitcoin", runTime.Add(time.Minute)))

	// Transport recovers: the very next run dispatches.
	transport.failFor["100"] = false
	sent, err = eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestScheduledSkipsNonBearishHeadlines(t *testing.T) {
	t.Parallel()

	signals := []models.Signal{
		{ID: "s1", Headline: "Bitcoin rallies to new highs", Keywords: []string{"Bitcoin"}},
	}

	eng, st, transport, _, _ := newTestEngine(t, signals, nil)
	registerUser(t, st, "alice", "100", "bitcoin")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, transport.messages)
}

func TestScheduledEmptyBatchCompletesQuietly(t *testing.T) {
	t.Parallel()

	eng, st, _, _, _ := newTestEngine(t, nil, nil)
	registerUser(t, st, "alice", "100", "bitcoin")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestScheduledSkipsFetchWithoutUsers(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{signals: []models.Signal{crashSignal()}}
	st := store.NewMemory()
	classifier := sentiment.NewClassifier(scriptedScorer{})
	eng := New(st, fetcher, &fakeTransport{}, classifier, ledger.New(4*time.Hour), 2).
		WithClock(&fixedClock{now: runTime})

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, int32(0), fetcher.calls.Load())
}

func TestScheduledSkipsUsersWithoutChatID(t *testing.T) {
	t.Parallel()

	eng, st, transport, led, _ := newTestEngine(t, []models.Signal{crashSignal()}, nil)
	registerUser(t, st, "alice", "", "bitcoin")

	sent, err := eng.RunScheduledCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, transport.chatIDs)
	assert.True(t, led.IsEligible("alice", "bitcoin", runTime.Add(time.Minute)))
}

func TestScheduledStoreFailureAbortsScan(t *testing.T) {
	t.Parallel()

	classifier := sentiment.NewClassifier(scriptedScorer{})
	eng := New(failingStore{}, &fakeFetcher{}, &fakeTransport{}, classifier, ledger.New(4*time.Hour), 2)

	_, err := eng.RunScheduledCheck(context.Background())
	assert.ErrorContains(t, err, "database unreachable")
}

func TestTriggerOnceCountsSendsAndMatchesSeparately(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{"Bitcoin crashes": -0.7}
	eng, st, transport, _, _ := newTestEngine(t, []models.Signal{crashSignal()}, scores)
	registerUser(t, st, "alice", "100", "bitcoin")
	registerUser(t, st, "bob", "200", "crypto")
	transport.failFor["200"] = true

	result, err := eng.TriggerOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsSent)
	assert.Equal(t, 2, result.MatchesFound)
	require.Len(t, result.Details, 2)
	assert.Equal(t, "alice", result.Details[0].Username)
	assert.Equal(t, []string{"bitcoin"}, result.Details[0].MatchedKeywords)
	assert.Equal(t, "bob", result.Details[1].Username)
	assert.Equal(t, []string{"crypto"}, result.Details[1].MatchedKeywords)
	assert.Contains(t, result.MarketSummary, "Validating 1 signals")
	assert.Contains(t, result.MarketSummary, "Bearish")
}

func TestTriggerOnceIgnoresCooldown(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{"Bitcoin crashes": -0.7}
	eng, st, _, led, _ := newTestEngine(t, []models.Signal{crashSignal()}, scores)
	registerUser(t, st, "alice", "100", "bitcoin")

	// Pair deep inside its cooldown window.
	led.Record("alice", "bitcoin", runTime)

	result, err := eng.TriggerOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsSent)

	// And the manual path never records either.
	result, err = eng.TriggerOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsSent)
}

func TestTriggerOnceRecordsMatchWithoutChatID(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{"Bitcoin crashes": -0.7}
	eng, st, transport, _, _ := newTestEngine(t, []models.Signal{crashSignal()}, scores)
	registerUser(t, st, "alice", "", "bitcoin")

	result, err := eng.TriggerOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.AlertsSent)
	assert.Equal(t, 1, result.MatchesFound)
	assert.Empty(t, transport.chatIDs)
}

func TestTriggerOnceSkipsCalmSignals(t *testing.T) {
	t.Parallel()

	signals := []models.Signal{
		{ID: "s1", Headline: "Apple beats earnings expectations", Keywords: []string{"Apple"}},
	}
	scores := map[string]float64{"Apple beats": 0.6}

	eng, st, transport, _, _ := newTestEngine(t, signals, scores)
	registerUser(t, st, "alice", "100", "apple")

	result, err := eng.TriggerOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.AlertsSent)
	assert.Equal(t, 0, result.MatchesFound)
	assert.Empty(t, transport.messages)
}

func TestTriggerOnceEscalatesCrisisLexemeOverPositiveScore(t *testing.T) {
	t.Parallel()

	// Positive compound score, but the headline carries a crisis lexeme, so
	// urgency hits critical and the signal stays actionable.
	scores := map[string]float64{"Bitcoin crashes": 0.3}
	eng, st, _, _, _ := newTestEngine(t, []models.Signal{crashSignal()}, scores)
	registerUser(t, st, "alice", "100", "bitcoin")

	result, err := eng.TriggerOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Details, 1)
	assert.Equal(t, models.LabelPositive, result.Details[0].Sentiment)
	assert.Equal(t, models.UrgencyCritical, result.Details[0].Urgency)
	assert.Equal(t, 1, result.AlertsSent)
}

func TestTriggerOnceStoreFailure(t *testing.T) {
	t.Parallel()

	classifier := sentiment.NewClassifier(scriptedScorer{})
	eng := New(failingStore{}, &fakeFetcher{}, &fakeTransport{}, classifier, ledger.New(4*time.Hour), 2)

	_, err := eng.TriggerOnce(context.Background())
	assert.ErrorContains(t, err, "database unreachable")
}
