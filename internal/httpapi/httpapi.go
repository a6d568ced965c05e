// Package httpapi exposes the chess service over HTTP with gin: session
// lookup and move submission, room-based matchmaking, and board/history
// rendering. Grounded on the original service's
// src/resources/{ping,session,user,room}.rs and its router assembly in
// src/main.rs.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zitronenjoghurt/lemon-chess/internal/ai"
	"github.com/Zitronenjoghurt/lemon-chess/internal/auth"
	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
	"github.com/Zitronenjoghurt/lemon-chess/internal/ratelimit"
	"github.com/Zitronenjoghurt/lemon-chess/internal/render"
	"github.com/Zitronenjoghurt/lemon-chess/internal/sanitize"
	"github.com/Zitronenjoghurt/lemon-chess/internal/store"
)

// Config holds the immutable settings read once at startup by cmd/lemonchessd
// (spec.md's ambient Configuration section): listen address, Mongo URI, JWT
// signing key and the rate-limit budget.
type Config struct {
	ListenAddr      string
	MongoURI        string
	JWTSigningKey   []byte
	TokenTTL        time.Duration
	RatePerSecond   float64
	RateBurst       int
	AISearchTimeout time.Duration
}

// Server wires a Store, a logger, an auth issuer, a rate limiter and an AI
// searcher into a gin.Engine.
type Server struct {
	store    store.Store
	log      *zap.SugaredLogger
	issuer   auth.Issuer
	limiter  *ratelimit.Limiter
	searcher ai.Searcher
	cfg      Config

	engine *gin.Engine
}

// NewServer builds the routed gin.Engine. s may be nil, in which case an
// in-process store.Memory is used instead (local/dev runs without Mongo).
func NewServer(cfg Config, s store.Store, log *zap.Logger) *Server {
	if s == nil {
		s = store.NewMemory()
	}
	srv := &Server{
		store:    s,
		log:      log.Sugar(),
		issuer:   auth.NewIssuer(cfg.JWTSigningKey, cfg.TokenTTL),
		limiter:  ratelimit.New(cfg.RatePerSecond, cfg.RateBurst),
		searcher: ai.Searcher{},
		cfg:      cfg,
	}
	srv.engine = srv.newRouter()
	return srv
}

// Run starts the HTTP server on cfg.ListenAddr, blocking until it returns
// an error.
func (s *Server) Run() error {
	s.log.Infow("starting lemon-chess", "addr", s.cfg.ListenAddr)
	return s.engine.Run(s.cfg.ListenAddr)
}

// Handler returns the underlying http.Handler, for use with httptest or a
// custom http.Server.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/ping", s.getPing)
	r.POST("/users/register", s.postUserRegister)

	authed := r.Group("/")
	authed.Use(s.requireAuth(), s.rateLimited())
	authed.POST("/rooms", s.postRoom)
	authed.GET("/rooms", s.getOpenRooms)
	authed.GET("/sessions/:id", s.getSession)
	authed.POST("/sessions/:id/move", s.postSessionMove)
	authed.GET("/sessions/:id/render", s.getSessionRender)
	authed.GET("/sessions/:id/history.gif", s.getSessionHistoryGIF)

	return r
}

// requestLogger logs one structured line per request, grounded on
// RumenDamyanov-go-chess's zap-based gin middleware.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

const contextUserIDKey = "userID"

// requireAuth parses the Authorization: Bearer <token> header and stores
// the resolved user id in the gin context, or aborts with 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, err := s.issuer.Verify(token)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

// rateLimited refuses a request with 429 once the caller's per-user budget
// is exhausted, grounded on the original service's ApiError::RateLimited.
func (s *Server) rateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(contextUserIDKey).(uuid.UUID)
		if !s.limiter.Allow(userID) {
			abortError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// statusFor maps an engine.Error's Kind to the HTTP status spec.md §7's
// table assigns it. This is the Go function standing in for the original
// service's From<GameError> for ApiError conversion.
func statusFor(err *engine.Error) int {
	switch err.Kind {
	case engine.Validation, engine.Decoding, engine.Encoding, engine.RuleViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError writes the right status/body for any error an engine
// call returned, falling back to 500 for an error that isn't an
// *engine.Error at all (a storage or decode failure, say).
func respondEngineError(c *gin.Context, err error) {
	if engErr, ok := err.(*engine.Error); ok {
		abortError(c, statusFor(engErr), engErr.Message)
		return
	}
	abortError(c, http.StatusInternalServerError, err.Error())
}

func (s *Server) getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type registerRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

type registerResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func (s *Server) postUserRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	u := store.User{
		ID:          uuid.New(),
		DisplayName: sanitize.Text(req.DisplayName),
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateUser(c.Request.Context(), u); err != nil {
		respondEngineError(c, err)
		return
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	c.JSON(http.StatusCreated, registerResponse{UserID: u.ID.String(), Token: token})
}

type roomRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) postRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.MustGet(contextUserIDKey).(uuid.UUID)
	room := store.Room{
		ID:         uuid.New(),
		Name:       sanitize.Text(req.Name),
		HostUserID: userID,
		CreatedAt:  time.Now(),
		Open:       true,
	}
	if err := s.store.CreateRoom(c.Request.Context(), room); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (s *Server) getOpenRooms(c *gin.Context) {
	rooms, err := s.store.OpenRooms(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) loadSession(c *gin.Context) (store.Session, *engine.GameState, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortError(c, http.StatusBadRequest, "malformed session id")
		return store.Session{}, nil, false
	}
	session, err := s.store.GetSession(c.Request.Context(), id)
	if err != nil {
		abortError(c, http.StatusNotFound, "session not found")
		return store.Session{}, nil, false
	}
	state, err := session.State()
	if err != nil {
		respondEngineError(c, err)
		return store.Session{}, nil, false
	}
	return session, state, true
}

type sessionResponse struct {
	FEN         string            `json:"fen"`
	SideToMove  string            `json:"side_to_move"`
	LegalMoves  engine.LegalMoves `json:"legal_moves"`
	Finished    bool              `json:"finished"`
	Winner      string            `json:"winner,omitempty"`
	Draw        bool              `json:"draw"`
}

func sessionView(state *engine.GameState) sessionResponse {
	return sessionResponse{
		FEN:        state.ToFEN(),
		SideToMove: state.SideToMove().String(),
		LegalMoves: state.LegalMovesView(state.SideToMove()),
		Finished:   state.IsFinished(),
		Winner:     state.Winner().String(),
		Draw:       state.IsDraw(),
	}
}

func (s *Server) getSession(c *gin.Context) {
	_, state, ok := s.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionView(state))
}

type moveRequest struct {
	From            *string `json:"from"`
	To              *string `json:"to"`
	CastleKingside  *bool   `json:"castle_kingside"`
	CastleQueenside *bool   `json:"castle_queenside"`
}

func (s *Server) postSessionMove(c *gin.Context) {
	session, state, ok := s.loadSession(c)
	if !ok {
		return
	}

	userID := c.MustGet(contextUserIDKey).(uuid.UUID)
	color, ok := colorFor(session, userID)
	if !ok {
		abortError(c, http.StatusForbidden, "you are not a player in this session")
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := engine.MoveQuery{From: req.From, To: req.To, CastleKingside: req.CastleKingside, CastleQueenside: req.CastleQueenside}
	applied, err := state.DoMove(color, query)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if !applied {
		abortError(c, http.StatusBadRequest, "move rejected")
		return
	}

	session.Snapshot = state.Snapshot()
	session.Version++
	if err := s.store.SaveSession(c.Request.Context(), session); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(state))
}

// colorFor reports which color userID plays in session, if any.
func colorFor(session store.Session, userID uuid.UUID) (engine.Color, bool) {
	switch userID {
	case session.Keys[engine.White]:
		return engine.White, true
	case session.Keys[engine.Black]:
		return engine.Black, true
	default:
		return engine.NoColor, false
	}
}

func (s *Server) getSessionRender(c *gin.Context) {
	_, state, ok := s.loadSession(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "image/png")
	if err := render.EncodePNG(c.Writer, state.Board(), engine.White, 8); err != nil {
		abortError(c, http.StatusInternalServerError, "failed to render board")
	}
}

func (s *Server) getSessionHistoryGIF(c *gin.Context) {
	_, state, ok := s.loadSession(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "image/gif")
	if err := render.HistoryGIF(c.Writer, state, engine.White, 8); err != nil {
		abortError(c, http.StatusInternalServerError, "failed to render history")
	}
}

// SuggestMove runs the AI searcher for state's side to move, bounded by
// cfg.AISearchTimeout, and is exposed for cmd/lemonchessd or a future
// opponent-is-AI route to call directly.
func (s *Server) SuggestMove(ctx context.Context, state *engine.GameState) (engine.MoveQuery, error) {
	timeout := s.cfg.AISearchTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.searcher.GetNextMove(ctx, state)
}
