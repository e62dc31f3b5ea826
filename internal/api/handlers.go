package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MJE43/blackjack-edge-go/internal/betting"
	"github.com/MJE43/blackjack-edge-go/internal/charts"
	"github.com/MJE43/blackjack-edge-go/internal/count"
	"github.com/MJE43/blackjack-edge-go/internal/deck"
	"github.com/MJE43/blackjack-edge-go/internal/engine"
	"github.com/MJE43/blackjack-edge-go/internal/session"
	"github.com/MJE43/blackjack-edge-go/internal/store"
	"github.com/MJE43/blackjack-edge-go/internal/strategy"
)

// Error envelope types.
const (
	ErrTypeValidation = "VALIDATION"
	ErrTypeNotFound   = "NOT_FOUND"
	ErrTypeInternal   = "INTERNAL"
)

type createSessionRequest struct {
	Decks int `json:"decks"`
}

type sessionResponse struct {
	ID          string      `json:"id"`
	Decks       int         `json:"decks"`
	Remaining   int         `json:"remaining"`
	Penetration float64     `json:"penetration"`
	Count       count.State `json:"count"`
}

type dealRequest struct {
	Card string `json:"card"`
}

type resetRequest struct {
	Decks int `json:"decks"`
}

type evaluateRequest struct {
	Player []string      `json:"player"`
	Up     string        `json:"up"`
	Rules  *engine.Rules `json:"rules,omitempty"`
	// Legal restricts the recommendation to the actions the table
	// actually offers right now (e.g. no double at this spot). Empty
	// means every evaluated action is on the table.
	Legal   []string `json:"legal,omitempty"`
	BetUnit string   `json:"bet_unit,omitempty"`
}

type betResponse struct {
	Multiplier decimal.Decimal `json:"multiplier"`
	Amount     decimal.Decimal `json:"amount"`
}

type evaluateResponse struct {
	EVs         map[engine.Action]float64 `json:"evs"`
	Recommended engine.Action             `json:"recommended"`
	Basic       engine.Action             `json:"basic"`
	Deviation   bool                      `json:"deviation"`
	Insurance   *float64                  `json:"insurance,omitempty"`
	Count       count.State               `json:"count"`
	Bet         *betResponse              `json:"bet,omitempty"`
}

type chartRequest struct {
	Rules *engine.Rules `json:"rules,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"uptime":   time.Since(s.startTime).String(),
		"sessions": s.sessionCount(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body")
		return
	}
	if req.Decks == 0 {
		req.Decks = s.defaultDecks
	}
	sess, err := session.New(req.Decks)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.addSession(sess)
	s.logger.Printf("session_created id=%s decks=%d", sess.ID(), req.Decks)
	s.writeJSON(w, http.StatusCreated, s.sessionView(sess))
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "session not found")
		return
	}
	var req dealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body")
		return
	}
	rank, err := deck.ParseRank(req.Card)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	deal, err := sess.DealCard(rank)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{
		ID:          sess.ID().String(),
		Decks:       deal.Composition.Decks(),
		Remaining:   deal.Composition.Remaining(),
		Penetration: deal.Composition.Penetration(),
		Count:       deal.Count,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "session not found")
		return
	}
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body")
		return
	}
	if req.Decks == 0 {
		req.Decks = sess.Snapshot().Decks()
	}
	if err := sess.Reset(req.Decks); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.logger.Printf("session_reset id=%s decks=%d", sess.ID(), req.Decks)
	s.writeJSON(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, sess.CountState())
}

// handleEvaluate computes the EV table for a decision point. The
// session composition is used as-is: the player hand and up-card are
// expected to have been dealt through /deal already, so the shoe no
// longer contains them.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "session not found")
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body")
		return
	}

	cards := make([]deck.Rank, 0, len(req.Player))
	for _, c := range req.Player {
		rank, err := deck.ParseRank(c)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		cards = append(cards, rank)
	}
	up, err := deck.ParseRank(req.Up)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rules := engine.DefaultRules()
	if req.Rules != nil {
		rules = *req.Rules
	}

	snap := sess.Snapshot()
	res, err := engine.EvaluateActions(cards, up, snap, rules)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	recommended := res.Recommended
	if len(req.Legal) > 0 {
		legal := make([]engine.Action, 0, len(req.Legal))
		for _, name := range req.Legal {
			var a engine.Action
			if err := a.UnmarshalText([]byte(name)); err != nil {
				s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error())
				return
			}
			legal = append(legal, a)
		}
		recommended, err = strategy.Recommend(res, legal)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	st := sess.CountState()
	resp := evaluateResponse{
		EVs:         res.EVs,
		Recommended: recommended,
		Basic:       strategy.BasicAction(cards, up, rules),
		Deviation:   strategy.Deviation(recommended, cards, up, rules),
		Count:       st,
	}
	if up == deck.Ace {
		ins := engine.InsuranceEV(snap)
		resp.Insurance = &ins
	}
	if req.BetUnit != "" {
		unit, err := decimal.NewFromString(req.BetUnit)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid bet_unit")
			return
		}
		resp.Bet = &betResponse{
			Multiplier: betting.Multiplier(st.True),
			Amount:     betting.Recommended(unit, st.True),
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleChart returns the full strategy chart for the current shoe,
// served from the cache when the composition digest and rules match.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "session not found")
		return
	}
	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body")
		return
	}
	rules := engine.DefaultRules()
	if req.Rules != nil {
		rules = *req.Rules
	}

	snap := sess.Snapshot()
	if s.charts != nil {
		if chart, err := s.charts.GetChart(snap.Digest(), rules); err == nil {
			s.writeJSON(w, http.StatusOK, chart)
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			s.logger.Printf("chart_cache_read_failed digest=%s err=%v", snap.Digest(), err)
		}
	}

	start := time.Now()
	chart, err := charts.Generate(r.Context(), snap, rules)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.logger.Printf("chart_generated digest=%s cells=%d duration=%v", chart.Digest, len(chart.Cells), time.Since(start))

	if s.charts != nil {
		if err := s.charts.SaveChart(chart); err != nil {
			// Cache write failures degrade to recomputation, not errors.
			s.logger.Printf("chart_cache_write_failed digest=%s err=%v", chart.Digest, err)
		}
	}
	s.writeJSON(w, http.StatusOK, chart)
}

func (s *Server) sessionView(sess *session.Session) sessionResponse {
	snap := sess.Snapshot()
	return sessionResponse{
		ID:          sess.ID().String(),
		Decks:       snap.Decks(),
		Remaining:   snap.Remaining(),
		Penetration: snap.Penetration(),
		Count:       sess.CountState(),
	}
}

// writeDomainError maps sentinel errors from the core packages onto
// HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deck.ErrUnknownRank),
		errors.Is(err, deck.ErrEmptyRank),
		errors.Is(err, deck.ErrInvalidDeckCount),
		errors.Is(err, engine.ErrInvalidRules),
		errors.Is(err, engine.ErrShortHand),
		errors.Is(err, engine.ErrEmptyShoe),
		errors.Is(err, strategy.ErrIllegalAction):
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
	}
}
