package transport

import (
	"container/list"
	"context"
	"database/sql"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/logging"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// #region server-struct

// DefaultMaxSessions caps live sessions when ServerConfig.MaxSessions is unset.
const DefaultMaxSessions = 10000

// ServerConfig wires a Server. DB and VersionID are optional; with a DB every
// decision is written to decision_log. Past MaxSessions the least recently
// used session is dropped; a later call with its id reopens it from the prior
// and its derived seed.
type ServerConfig struct {
	Tables      *reward.Tables
	Prior       belief.Distribution
	Policy      policy.Config
	Seed        uint64
	MaxSessions int
	DB          *sql.DB
	VersionID   string
	Logger      *zap.Logger
}

// Server serves PolicyService. Each session owns a policy with its own seeded
// source; the compiled tables are shared.
//
// Request fields:
//
//	OpenSession:    belief (optional list of 12 numbers), seed (optional number)
//	GetBehaviour:   session_id, state, goal, phase, performance
//	GetObservation: session_id, state, behaviour (name or code)
//
// Responses carry session_id; GetBehaviour adds behaviour, code, state,
// draws, advances and step; GetObservation adds state.
type Server struct {
	cfg    ServerConfig
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
	recent   *list.List // session ids, most recently used at the front
}

type session struct {
	mu     sync.Mutex
	policy *policy.Policy
	elem   *list.Element
}

// NewServer creates a server over shared tables.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Tables == nil {
		return nil, errors.New("transport: server needs compiled tables")
	}
	if err := cfg.Prior.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*session),
		recent:   list.New(),
	}, nil
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// #endregion server-struct

// #region sessions

// sessionSeed derives a per-session seed so sessions are reproducible given
// the base seed and their id.
func (s *Server) sessionSeed(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return s.cfg.Seed ^ h.Sum64()
}

func (s *Server) newSession(bel belief.Distribution, seed uint64) (*session, error) {
	p, err := policy.NewSeeded(s.cfg.Tables, bel, seed, s.cfg.Policy, s.logger)
	if err != nil {
		return nil, err
	}
	return &session{policy: p}, nil
}

// session returns the named session, creating it with the prior on first use.
func (s *Server) session(id string) (*session, error) {
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		s.recent.MoveToFront(sess.elem)
		return sess, nil
	}
	sess, err := s.newSession(s.cfg.Prior, s.sessionSeed(id))
	if err != nil {
		return nil, toStatus(err)
	}
	s.addLocked(id, sess)
	s.logger.Info("session opened", zap.String("session_id", id), zap.Bool("implicit", true))
	return sess, nil
}

// addLocked registers sess and evicts the least recently used sessions past
// the cap. s.mu must be held.
func (s *Server) addLocked(id string, sess *session) {
	sess.elem = s.recent.PushFront(id)
	s.sessions[id] = sess
	for s.recent.Len() > s.cfg.MaxSessions {
		oldest := s.recent.Back()
		evicted := s.recent.Remove(oldest).(string)
		delete(s.sessions, evicted)
		s.logger.Info("session evicted", zap.String("session_id", evicted))
	}
}

// #endregion sessions

// #region open-session

// OpenSession creates a session with an optional belief and seed and returns
// its id.
func (s *Server) OpenSession(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	bel := s.cfg.Prior
	if v, ok, err := beliefField(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if ok {
		if bel, err = belief.FromSlice(v); err != nil {
			return nil, toStatus(err)
		}
	}

	id := uuid.New().String()
	seed := s.sessionSeed(id)
	if _, ok := req.GetFields()[fieldSeed]; ok {
		n, err := intField(req, fieldSeed)
		if err != nil || n < 0 {
			return nil, status.Errorf(codes.InvalidArgument, "seed must be a non-negative integer")
		}
		seed = uint64(n)
	}

	sess, err := s.newSession(bel, seed)
	if err != nil {
		return nil, toStatus(err)
	}
	s.mu.Lock()
	s.addLocked(id, sess)
	s.mu.Unlock()

	s.logger.Info("session opened", zap.String("session_id", id), zap.Uint64("seed", seed))
	return structpb.NewStruct(map[string]any{fieldSessionID: id})
}

// #endregion open-session

// #region get-behaviour

// GetBehaviour runs the policy for one interaction context.
func (s *Server) GetBehaviour(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, _ := stringField(req, fieldSessionID)
	st, err := stateField(req)
	if err != nil {
		return nil, toStatus(err)
	}
	ictx, err := contextFields(req)
	if err != nil {
		return nil, toStatus(err)
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	d, err := sess.policy.Decide(st, ictx)
	sess.mu.Unlock()
	if err != nil {
		s.logger.Warn("decision failed",
			zap.String("session_id", id),
			zap.Int("state", int(st)),
			zap.Stringer("context", ictx),
			zap.Error(err),
		)
		return nil, toStatus(err)
	}

	s.logDecision(id, st, ictx, d)
	return structpb.NewStruct(map[string]any{
		fieldSessionID: id,
		fieldBehaviour: d.Behaviour.String(),
		fieldCode:      int(d.Behaviour),
		fieldState:     int(d.State),
		fieldDraws:     d.Draws,
		fieldAdvances:  d.Advances,
		fieldStep:      string(d.Final()),
	})
}

func (s *Server) logDecision(id string, st codec.State, ictx interaction.Context, d policy.Decision) {
	if s.cfg.DB == nil {
		return
	}
	err := logging.LogDecision(s.cfg.DB, logging.DecisionEntry{
		SessionID:   id,
		VersionID:   s.cfg.VersionID,
		State:       int(st),
		Goal:        ictx.Goal.String(),
		Phase:       ictx.Phase.String(),
		Performance: ictx.Performance.String(),
		Behaviour:   d.Behaviour.String(),
		NextState:   int(d.State),
		Draws:       d.Draws,
		Advances:    d.Advances,
		Step:        string(d.Final()),
	})
	if err != nil {
		s.logger.Error("decision log write failed", zap.String("session_id", id), zap.Error(err))
	}
}

// #endregion get-behaviour

// #region get-observation

// GetObservation advances the session's chain after a behaviour was performed.
func (s *Server) GetObservation(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, _ := stringField(req, fieldSessionID)
	st, err := stateField(req)
	if err != nil {
		return nil, toStatus(err)
	}
	b, err := behaviourField(req)
	if err != nil {
		return nil, toStatus(err)
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	next, err := sess.policy.GetObservation(st, b)
	sess.mu.Unlock()
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{
		fieldSessionID: id,
		fieldState:     int(next),
	})
}

// #endregion get-observation

// #region errors

// toStatus maps domain errors onto gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, policy.ErrValidityExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, codec.ErrInvalidState),
		errors.Is(err, codec.ErrInvalidStyle),
		errors.Is(err, behaviour.ErrInvalidBehaviour),
		errors.Is(err, belief.ErrInvalidBelief),
		errors.Is(err, interaction.ErrUnknown),
		errors.Is(err, errBadField):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

// #endregion errors
