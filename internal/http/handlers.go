package http

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"bankaccount-go/internal/config"
	"bankaccount-go/internal/models"
	"bankaccount-go/internal/registry"
)

//go:embed schemas/open_account.schema.json
var openAccountSchema []byte

const maxBodyBytes = 64 << 10

type Server struct {
	cfg       *config.Config
	log       *zap.Logger
	accounts  *registry.Registry
	validator *gojsonschema.Schema
	ids       *snowflake.Node
	loc       *time.Location
}

// NewServer wires the account routes onto a gin engine. Every route under
// /v1 requires the bearer token when cfg.AuthBearerHash is set.
func NewServer(cfg *config.Config, accounts *registry.Registry, log *zap.Logger) (*gin.Engine, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(openAccountSchema))
	if err != nil {
		return nil, fmt.Errorf("compile open account schema: %w", err)
	}
	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", cfg.NodeID, err)
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		accounts:  accounts,
		validator: schema,
		ids:       node,
		loc:       cfg.Location(),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(cors(cfg))
	r.Use(logging(log))

	v1 := r.Group("/v1")
	if cfg.AuthBearerHash != "" {
		v1.Use(AuthMiddleware(cfg.AuthBearerHash))
	}
	{
		v1.POST("/accounts", s.openAccount)
		v1.GET("/accounts/:number", s.getAccount)
		v1.DELETE("/accounts/:number", s.closeAccount)
		v1.POST("/accounts/:number/deposit", s.deposit)
		v1.POST("/accounts/:number/withdraw", s.withdraw)
		v1.POST("/accounts/:number/adjustments", s.adjustBalance)
		v1.GET("/accounts/:number/service-charges", s.serviceCharges)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r, nil
}

type openAccountRequest struct {
	Type          string  `json:"type"`
	AccountNumber any     `json:"account_number"`
	ClientNumber  any     `json:"client_number"`
	DateCreated   any     `json:"date_created"`
	Balance       float64 `json:"balance"`
	models.Terms
}

type amountRequest struct {
	Amount any `json:"amount"`
}

type accountView struct {
	Type           models.Kind `json:"type"`
	AccountNumber  int64       `json:"account_number"`
	ClientNumber   int64       `json:"client_number"`
	DateCreated    string      `json:"date_created"`
	Balance        float64     `json:"balance"`
	ServiceCharges float64     `json:"service_charges"`
	models.Terms
	Display string `json:"display"`
}

func toView(s registry.Snapshot) accountView {
	return accountView{
		Type:           s.Kind,
		AccountNumber:  s.AccountNumber,
		ClientNumber:   s.ClientNumber,
		DateCreated:    models.FormatDate(s.DateCreated),
		Balance:        s.Balance,
		ServiceCharges: s.ServiceCharges,
		Terms:          s.Terms,
		Display:        s.Display,
	}
}

func (s *Server) openAccount(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	res, err := s.validator.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_json", "message": err.Error()})
		return
	}
	if !res.Valid() {
		d := []string{}
		for _, e := range res.Errors() {
			d = append(d, e.String())
		}
		c.JSON(422, gin.H{"error": "schema_invalid", "details": d})
		return
	}

	var req openAccountRequest
	if err := decodeJSON(body, &req); err != nil {
		c.JSON(400, gin.H{"error": "invalid_json", "message": err.Error()})
		return
	}

	acct, err := s.buildAccount(req)
	if err != nil {
		s.fail(c, "open", err)
		return
	}
	snap, err := s.accounts.Open(acct)
	if err != nil {
		s.fail(c, "open", err)
		return
	}

	s.log.Info("account opened",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Int64("account_number", snap.AccountNumber),
		zap.String("type", string(snap.Kind)),
	)
	c.JSON(201, toView(snap))
}

func (s *Server) buildAccount(req openAccountRequest) (models.BankAccount, error) {
	kind, err := models.ParseKind(req.Type)
	if err != nil {
		return nil, err
	}

	var number int64
	if req.AccountNumber == nil {
		number = s.ids.Generate().Int64()
	} else if number, err = models.ParseIdentifier("account_number", req.AccountNumber); err != nil {
		return nil, err
	}
	client, err := models.ParseIdentifier("client_number", req.ClientNumber)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created := models.ParseDate(req.DateCreated, now)
	base := models.NewAccount(number, client, created, req.Balance, models.WithClock(s.now))
	return models.New(kind, base, req.Terms)
}

func (s *Server) getAccount(c *gin.Context) {
	number, ok := accountNumber(c)
	if !ok {
		return
	}
	snap, err := s.accounts.Get(number)
	if err != nil {
		s.fail(c, "get", err)
		return
	}
	c.JSON(200, toView(snap))
}

func (s *Server) closeAccount(c *gin.Context) {
	number, ok := accountNumber(c)
	if !ok {
		return
	}
	if err := s.accounts.Close(number); err != nil {
		s.fail(c, "close", err)
		return
	}
	s.log.Info("account closed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Int64("account_number", number),
	)
	c.JSON(200, gin.H{"message": "account closed"})
}

func (s *Server) deposit(c *gin.Context) {
	s.applyAmount(c, "deposit", s.accounts.Deposit)
}

func (s *Server) withdraw(c *gin.Context) {
	s.applyAmount(c, "withdraw", s.accounts.Withdraw)
}

func (s *Server) adjustBalance(c *gin.Context) {
	s.applyAmount(c, "update_balance", s.accounts.UpdateBalance)
}

func (s *Server) applyAmount(c *gin.Context, op string, apply func(int64, any) (registry.Snapshot, error)) {
	number, ok := accountNumber(c)
	if !ok {
		return
	}
	body, err := readBody(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	var req amountRequest
	if err := decodeJSON(body, &req); err != nil {
		c.JSON(400, gin.H{"error": "invalid_json", "message": err.Error()})
		return
	}

	snap, err := apply(number, req.Amount)
	if err != nil {
		s.fail(c, op, err)
		return
	}
	s.log.Debug("balance changed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("op", op),
		zap.Int64("account_number", number),
		zap.Float64("balance", snap.Balance),
	)
	c.JSON(200, toView(snap))
}

// fail maps domain and registry errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, op string, err error) {
	status, code := 500, "internal_error"
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		status, code = 400, "invalid_argument"
	case errors.Is(err, registry.ErrNotFound):
		status, code = 404, "account_not_found"
	case errors.Is(err, registry.ErrDuplicate):
		status, code = 409, "account_exists"
	}

	fields := []zap.Field{
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status == 500 {
		s.log.Error("request failed", fields...)
	} else {
		s.log.Info("request rejected", fields...)
	}
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}

func (s *Server) now() time.Time {
	return time.Now().In(s.loc)
}

func accountNumber(c *gin.Context) (int64, bool) {
	n, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_argument", "message": "account number must be an integer"})
		return 0, false
	}
	return n, true
}

func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("request body is empty")
	}
	return body, nil
}

// decodeJSON keeps numbers as json.Number so integer-ness survives to the
// identifier checks.
func decodeJSON(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
