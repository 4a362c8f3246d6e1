package frontend

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/logging"
	"github.com/mikey/spamcheck/internal/ports"
	"github.com/mikey/spamcheck/internal/utils"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

const checkerKey = "checker"

// WebOptions configures the web front-end
type WebOptions struct {
	ListenAddress   string
	CookieName      string
	SessionTTL      time.Duration
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
}

// WebFrontend serves the spam check page and its JSON API. Each browser
// session gets its own checker from the session store.
type WebFrontend struct {
	sessions      ports.SessionStore
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	opts          WebOptions
	engine        *gin.Engine
	server        *http.Server
}

// NewWebFrontend creates a new web front-end
func NewWebFrontend(sessions ports.SessionStore, textProcessor *utils.TextProcessor, logger *zap.Logger, opts WebOptions) (*WebFrontend, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if textProcessor == nil {
		textProcessor = utils.NewTextProcessor(logger)
	}
	if opts.CookieName == "" {
		return nil, errors.New("session cookie name is required")
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	f := &WebFrontend{
		sessions:      sessions,
		textProcessor: textProcessor,
		logger:        logger,
		opts:          opts,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.GinMiddleware(logger), cors.Default())
	engine.SetHTMLTemplate(tmpl)
	f.registerRoutes(engine)
	f.engine = engine

	return f, nil
}

func (f *WebFrontend) registerRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	page := engine.Group("/", f.sessionMiddleware)
	page.GET("/", f.handleIndex)
	page.POST("/check", f.handleCheck)
	page.POST("/reset", f.handleReset)

	api := engine.Group("/api", f.sessionMiddleware)
	api.GET("/state", f.handleState)
	api.PUT("/text", f.handleSetText)
	api.POST("/check", f.handleAPICheck)
	api.POST("/reset", f.handleAPIReset)
}

// Handler returns the HTTP handler of the front-end
func (f *WebFrontend) Handler() http.Handler {
	return f.engine
}

// Start starts the HTTP server
func (f *WebFrontend) Start() error {
	f.server = &http.Server{
		Addr:              f.opts.ListenAddress,
		Handler:           f.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	f.logger.Info("Web front-end starting", zap.String("address", f.opts.ListenAddress))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the HTTP server down
func (f *WebFrontend) Stop() error {
	if f.server == nil {
		return nil
	}

	ctx := context.Background()
	if f.opts.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.ShutdownTimeout)
		defer cancel()
	}

	return f.server.Shutdown(ctx)
}

// CheckText runs one submission on a throwaway session
func (f *WebFrontend) CheckText(ctx context.Context, text string) (core.State, error) {
	id, checker, err := f.sessions.Create(ctx)
	if err != nil {
		return core.State{}, err
	}
	defer f.sessions.Delete(ctx, id)

	checker.SetText(text)
	checker.Submit(ctx)

	return checker.Snapshot(), nil
}

func (f *WebFrontend) sessionMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	if id, err := c.Cookie(f.opts.CookieName); err == nil && id != "" {
		checker, err := f.sessions.Get(ctx, id)
		if err == nil {
			c.Set(checkerKey, checker)
			c.Next()
			return
		}
		f.logger.Debug("Session not usable, starting a new one", zap.Error(err))
	}

	id, checker, err := f.sessions.Create(ctx)
	if err != nil {
		f.logger.Error("Failed to create session", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(f.opts.CookieName, id, int(f.opts.SessionTTL.Seconds()), "/", "", false, true)
	c.Set(checkerKey, checker)
	c.Next()
}

func checkerFrom(c *gin.Context) *core.Checker {
	return c.MustGet(checkerKey).(*core.Checker)
}

// submit stores the text and starts a check on it. The classification
// outlives the request that triggered it and is bounded by the classifier's
// own timeout.
func (f *WebFrontend) submit(c *gin.Context, checker *core.Checker, text *string) bool {
	ctx := context.WithoutCancel(c.Request.Context())

	var started bool
	if text != nil {
		_, started = checker.SubmitText(ctx, *text)
	} else {
		_, started = checker.Start(ctx)
	}
	if !started {
		f.logger.Debug("Submission ignored, text is blank or a check is in flight")
	}
	return started
}

func (f *WebFrontend) handleIndex(c *gin.Context) {
	state := checkerFrom(c).Snapshot()
	c.HTML(http.StatusOK, "index.html", newPageView(state, f.textProcessor, f.opts.RefreshInterval))
}

func (f *WebFrontend) handleCheck(c *gin.Context) {
	checker := checkerFrom(c)

	// Browsers submit textarea line breaks as CRLF
	text := strings.ReplaceAll(c.PostForm("email_content"), "\r\n", "\n")

	f.submit(c, checker, &text)

	c.Redirect(http.StatusSeeOther, "/")
}

func (f *WebFrontend) handleReset(c *gin.Context) {
	checkerFrom(c).Reset()
	c.Redirect(http.StatusSeeOther, "/")
}

type textBody struct {
	Text *string `json:"text"`
}

func (f *WebFrontend) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(checkerFrom(c).Snapshot(), f.textProcessor))
}

func (f *WebFrontend) handleSetText(c *gin.Context) {
	var body textBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	checker := checkerFrom(c)
	if !checker.SetTextIfIdle(*body.Text) {
		c.JSON(http.StatusConflict, gin.H{"error": "a check is in progress"})
		return
	}
	c.JSON(http.StatusOK, newStateResponse(checker.Snapshot(), f.textProcessor))
}

func (f *WebFrontend) handleAPICheck(c *gin.Context) {
	var body textBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	checker := checkerFrom(c)
	started := f.submit(c, checker, body.Text)
	resp := newStateResponse(checker.Snapshot(), f.textProcessor)
	resp.Started = &started

	status := http.StatusOK
	if started {
		status = http.StatusAccepted
	}
	c.JSON(status, resp)
}

func (f *WebFrontend) handleAPIReset(c *gin.Context) {
	checker := checkerFrom(c)
	checker.Reset()
	c.JSON(http.StatusOK, newStateResponse(checker.Snapshot(), f.textProcessor))
}
