// Package session implements the questionnaire session lifecycle: creation,
// adaptive advancement, response recording, pause/resume hand-off, and result
// retrieval. Sessions live in an expiring key-value store as single JSON
// snapshots; all mutations of one session are serialized on a per-id lock
// because the store read-modify-write is not atomic.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/questionbank"
	"github.com/genetic-risk-server/internal/risk"
)

const (
	sessionKeyPrefix = "session:"
	resultsKeyPrefix = "results:"
	resumeKeyPrefix  = "resume:"

	// Sessions with at least this many answers can be force-completed when
	// results are requested before the selector runs out of questions.
	forceCompleteThreshold = 5

	resultsCacheSize = 512
)

// Manager owns session state. QuestionSelector and RiskEngine are pure, so
// the manager is the only component that mutates anything.
type Manager struct {
	logger   *logrus.Logger
	store    domain.SessionStore
	bank     *questionbank.Bank
	selector *questionbank.Selector
	engine   *risk.Engine
	cfg      domain.StoreConfig

	locks   *keyedLocks
	results *lru.Cache[string, *domain.AssessmentResults]
}

// NewManager wires the session manager.
func NewManager(
	logger *logrus.Logger,
	store domain.SessionStore,
	bank *questionbank.Bank,
	selector *questionbank.Selector,
	engine *risk.Engine,
	cfg domain.StoreConfig,
) (*Manager, error) {
	cache, err := lru.New[string, *domain.AssessmentResults](resultsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("results cache: %w", err)
	}
	return &Manager{
		logger:   logger,
		store:    store,
		bank:     bank,
		selector: selector,
		engine:   engine,
		cfg:      cfg,
		locks:    newKeyedLocks(),
		results:  cache,
	}, nil
}

// Create starts a new session for the given variant and persists it.
func (m *Manager) Create(ctx context.Context, variant domain.Variant, subjectID, creatorID string) (*domain.Session, error) {
	if !variant.IsValid() {
		return nil, domain.NewValidation("questionnaire_type", "unsupported variant %q", variant)
	}

	session := &domain.Session{
		ID:                 uuid.NewString(),
		Variant:            variant,
		SubjectID:          subjectID,
		CreatorID:          creatorID,
		CreatedAt:          time.Now().UTC(),
		Responses:          []domain.ResponseRecord{},
		QuestionPath:       []string{},
		EstimatedQuestions: m.bank.EstimateCount(variant),
	}

	if err := m.save(ctx, session); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"variant":    variant,
		"creator_id": creatorID,
	}).Info("Session created")

	return session, nil
}

// Advance selects the next question, or completes the session and computes
// results when no candidate remains. Serving is idempotent: an unanswered
// question is re-served until a response is recorded for it.
func (m *Manager) Advance(ctx context.Context, sessionID string) (*domain.NextQuestion, error) {
	unlock := m.locks.acquire(sessionID)
	defer unlock()

	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Completed {
		return &domain.NextQuestion{Complete: true, Progress: progressOf(session)}, nil
	}

	nextID, ok := m.nextQuestionID(session)
	if !ok {
		if err := m.complete(ctx, session); err != nil {
			return nil, err
		}
		return &domain.NextQuestion{Complete: true, Progress: progressOf(session)}, nil
	}

	question, err := m.bank.Get(nextID)
	if err != nil {
		return nil, err
	}

	return &domain.NextQuestion{
		Question:       question,
		QuestionNumber: len(session.QuestionPath) + 1,
		TotalEstimated: session.EstimatedQuestions,
		Progress:       progressOf(session),
	}, nil
}

// nextQuestionID serves the variant's fixed entry set first, then defers to
// the adaptive selector.
func (m *Manager) nextQuestionID(session *domain.Session) (string, bool) {
	answered := session.Answered()
	for _, id := range m.bank.InitialQuestions(session.Variant) {
		if _, ok := answered[id]; !ok {
			return id, true
		}
	}
	return m.selector.Next(session.Variant, session.Responses, session.QuestionPath)
}

// RecordResponse validates and appends one response, recomputes the interim
// risk snapshot, and persists the session with a refreshed TTL.
//
// Re-submitting the same question with the same value is a no-op; the same
// question with a different value is rejected, because response records are
// append-only.
func (m *Manager) RecordResponse(ctx context.Context, sessionID string, response domain.ResponseRecord) (*domain.Session, error) {
	unlock := m.locks.acquire(sessionID)
	defer unlock()

	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, domain.NewState(sessionID, "cannot record a response on a completed session")
	}
	if session.Paused {
		return nil, domain.NewState(sessionID, "session is paused; resume it before recording responses")
	}

	question, err := m.bank.Get(response.QuestionID)
	if err != nil {
		return nil, domain.NewValidation("question_id", "unknown question %q", response.QuestionID)
	}
	if err := validateAnswer(question, response.Value); err != nil {
		return nil, err
	}

	if prior, ok := session.Answered()[response.QuestionID]; ok {
		if prior.Equal(response.Value) {
			return session, nil
		}
		return nil, domain.NewValidation("response",
			"question %q already answered with a different value", response.QuestionID)
	}

	if response.Timestamp.IsZero() {
		response.Timestamp = time.Now().UTC()
	}
	session.Responses = append(session.Responses, response)
	session.QuestionPath = append(session.QuestionPath, response.QuestionID)
	session.RiskScores = m.engine.InterimRisks(session.Variant, session.Responses)

	if err := m.save(ctx, session); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"question_id": response.QuestionID,
		"answered":    len(session.Responses),
	}).Debug("Response recorded")

	return session, nil
}

// Pause marks the session paused and issues a single-use resume token with
// its own TTL, independent of the session TTL.
func (m *Manager) Pause(ctx context.Context, sessionID string) (*domain.PauseReceipt, error) {
	unlock := m.locks.acquire(sessionID)
	defer unlock()

	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, domain.NewState(sessionID, "cannot pause a completed session")
	}

	token := uuid.NewString()
	if err := m.store.Put(ctx, resumeKeyPrefix+token, []byte(sessionID), m.cfg.ResumeTokenTTL); err != nil {
		return nil, err
	}

	session.Paused = true
	if err := m.save(ctx, session); err != nil {
		return nil, err
	}

	m.logger.WithField("session_id", sessionID).Info("Session paused")

	return &domain.PauseReceipt{
		ResumeToken: token,
		ExpiresAt:   time.Now().UTC().Add(m.cfg.ResumeTokenTTL),
	}, nil
}

// Resume validates the token, consumes it, and clears the paused flag.
func (m *Manager) Resume(ctx context.Context, sessionID, token string) (*domain.Session, error) {
	unlock := m.locks.acquire(sessionID)
	defer unlock()

	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	owner, found, err := m.store.Get(ctx, resumeKeyPrefix+token)
	if err != nil {
		return nil, err
	}
	if !found || string(owner) != sessionID {
		return nil, domain.NewAuthorization("invalid or expired resume token")
	}

	// Single use: consume the token before clearing the flag.
	if err := m.store.Delete(ctx, resumeKeyPrefix+token); err != nil {
		return nil, err
	}

	session.Paused = false
	if err := m.save(ctx, session); err != nil {
		return nil, err
	}

	m.logger.WithField("session_id", sessionID).Info("Session resumed")

	return session, nil
}

// Results returns the assessment for a completed session, computing and
// caching it on first read. Sessions past the force-completion threshold are
// completed on demand; anything earlier is a state error.
func (m *Manager) Results(ctx context.Context, sessionID string) (*domain.AssessmentResults, error) {
	if cached, ok := m.results.Get(sessionID); ok {
		return cached, nil
	}

	if data, found, err := m.store.Get(ctx, resultsKeyPrefix+sessionID); err != nil {
		return nil, err
	} else if found {
		var results domain.AssessmentResults
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, domain.NewStoreError("decode results", err)
		}
		m.results.Add(sessionID, &results)
		return &results, nil
	}

	unlock := m.locks.acquire(sessionID)
	defer unlock()

	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.Completed {
		if len(session.Responses) < forceCompleteThreshold {
			return nil, domain.NewState(sessionID,
				fmt.Sprintf("assessment not complete: %d responses recorded, %d required for early results",
					len(session.Responses), forceCompleteThreshold))
		}
		m.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"answered":   len(session.Responses),
		}).Info("Force-completing session for early results")
	}

	if err := m.complete(ctx, session); err != nil {
		return nil, err
	}
	results, ok := m.results.Get(sessionID)
	if !ok {
		return nil, domain.NewNotFound("results", sessionID)
	}
	return results, nil
}

// Progress reports how far along the session is.
func (m *Manager) Progress(ctx context.Context, sessionID string) (*domain.Progress, error) {
	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return progressOf(session), nil
}

// InterimRisks returns the current per-track interim detail for an active
// session.
func (m *Manager) InterimRisks(ctx context.Context, sessionID string) (map[string]domain.InterimRiskDetail, error) {
	session, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	interim := session.RiskScores
	if interim == nil {
		interim = m.engine.InterimRisks(session.Variant, session.Responses)
	}

	reliability := interimReliability(len(session.Responses))
	details := make(map[string]domain.InterimRiskDetail, 3)
	if session.Variant.IncludesGenetic() {
		details["genetic"] = domain.InterimRiskDetail{
			RiskScore:    interim.HighestGeneticRisk,
			Confidence:   interim.Confidence,
			Contributing: len(session.Responses),
			Reliability:  reliability,
		}
	}
	if session.Variant.IncludesEpigenetic() {
		details["epigenetic"] = domain.InterimRiskDetail{
			RiskScore:    interim.HighestEpigeneticRisk,
			Confidence:   interim.Confidence,
			Contributing: len(session.Responses),
			Reliability:  reliability,
		}
	}
	details["overall"] = domain.InterimRiskDetail{
		RiskScore:    interim.OverallRisk,
		Confidence:   interim.Confidence,
		Contributing: len(session.Responses),
		Reliability:  reliability,
	}
	return details, nil
}

// Get returns the session snapshot.
func (m *Manager) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.load(ctx, sessionID)
}

// complete transitions the session to Completed, computes the final results,
// and caches them with an extended TTL. Caller holds the per-id lock.
func (m *Manager) complete(ctx context.Context, session *domain.Session) error {
	session.Completed = true
	session.Paused = false

	results := m.engine.FinalResults(session)

	data, err := json.Marshal(results)
	if err != nil {
		return domain.NewStoreError("encode results", err)
	}
	if err := m.store.Put(ctx, resultsKeyPrefix+session.ID, data, m.cfg.ResultsTTL()); err != nil {
		return err
	}
	m.results.Add(session.ID, results)

	if err := m.save(ctx, session); err != nil {
		return err
	}

	m.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"answered":   len(session.Responses),
		"urgency":    results.ClinicalUrgency,
	}).Info("Session completed")

	return nil
}

func (m *Manager) load(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, found, err := m.store.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound("session", sessionID)
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, domain.NewStoreError("decode session", err)
	}
	return &session, nil
}

// save persists the snapshot and refreshes the session TTL.
func (m *Manager) save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewStoreError("encode session", err)
	}
	return m.store.Put(ctx, sessionKeyPrefix+session.ID, data, m.cfg.SessionTTL)
}

func progressOf(session *domain.Session) *domain.Progress {
	answered := len(session.Responses)
	estimated := session.EstimatedQuestions
	if estimated <= 0 {
		estimated = 1
	}
	pct := 100 * float64(answered) / float64(estimated)
	if pct > 100 {
		pct = 100
	}
	remaining := estimated - answered
	if remaining < 0 || session.Completed {
		remaining = 0
	}
	return &domain.Progress{
		SessionID:          session.ID,
		QuestionsAnswered:  answered,
		TotalEstimated:     estimated,
		ProgressPercentage: pct,
		EstimatedRemaining: remaining,
		Completed:          session.Completed,
		Paused:             session.Paused,
	}
}

func interimReliability(answered int) string {
	switch {
	case answered < forceCompleteThreshold:
		return "low"
	case answered < 10:
		return "moderate"
	default:
		return "high"
	}
}

// validateAnswer checks the response value against the question's declared
// type and constraints.
func validateAnswer(q *domain.QuestionDefinition, value domain.AnswerValue) error {
	if !value.Matches(q.Type) {
		return domain.NewValidation("response",
			"question %q expects %s, got %s", q.ID, q.Type, value.Kind)
	}

	switch q.Type {
	case domain.NUMERIC:
		if q.Validation != nil {
			n, _ := value.AsNumber()
			if n < q.Validation.Min || (q.Validation.Max > 0 && n > q.Validation.Max) {
				return domain.NewValidation("response",
					"value %g for question %q outside [%g, %g]", n, q.ID, q.Validation.Min, q.Validation.Max)
			}
		}
	case domain.MULTIPLE_CHOICE:
		if value.Kind == domain.MULTIPLE_CHOICE && !optionAllowed(q.Options, value.Choice) {
			return domain.NewValidation("response",
				"%q is not an option for question %q", value.Choice, q.ID)
		}
	case domain.MULTI_SELECT:
		for _, choice := range value.Choices {
			if !optionAllowed(q.Options, choice) {
				return domain.NewValidation("response",
					"%q is not an option for question %q", choice, q.ID)
			}
		}
	}
	return nil
}

func optionAllowed(options []string, choice string) bool {
	for _, opt := range options {
		if opt == choice {
			return true
		}
	}
	return false
}
