package clicmds

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/locatork/locatork"
	"gitlab.com/locatork/tutorial"
)

// ServeFlags for the serve command
func ServeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "address to listen on",
			Value: "localhost:8080",
		},
	}
}

// queryResponse of the query endpoint, Values is null for an absent attribute
type queryResponse struct {
	Selector string   `json:"selector"`
	Values   []string `json:"values"`
	Error    string   `json:"error,omitempty"`
}

// NewRouter serving the tutorial site under /site and queries against it under /api
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.StaticFS("/site", tutorial.SiteBox)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/site/"+tutorial.IndexPage)
	})

	api := router.Group("/api")
	api.GET("/fields", func(c *gin.Context) {
		c.JSON(http.StatusOK, tutorial.Fields())
	})
	api.GET("/answers", func(c *gin.Context) {
		c.JSON(http.StatusOK, tutorial.Expectations())
	})
	api.GET("/query", queryHandler)
	api.GET("/check", checkHandler)
	return router
}

func tutorialLocator() (*locatork.Locator, error) {
	doc, err := tutorial.Document()
	if err != nil {
		return nil, err
	}
	return locatork.New(doc, tutorial.Bindings()), nil
}

func queryHandler(c *gin.Context) {
	e := locatork.Expectation{
		Field:     c.Query("field"),
		Selector:  c.Query("selector"),
		All:       c.Query("all") == "true",
		Attribute: c.Query("attr"),
	}
	resp := &queryResponse{Selector: e.Selector}
	if resp.Selector == "" {
		resp.Selector = e.Field
	}

	if raw, ok := c.GetQuery("nth"); ok {
		nth, err := strconv.Atoi(raw)
		if err != nil {
			resp.Error = "nth must be an integer: " + raw
			c.JSON(http.StatusBadRequest, resp)
			return
		}
		e.Nth = locatork.NthOf(nth)
	}

	l, err := tutorialLocator()
	if err != nil {
		resp.Error = err.Error()
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	qctx := log.Logger.WithContext(c.Request.Context())
	resp.Values, err = e.Values(qctx, l)
	if err != nil {
		resp.Error = err.Error()
		status := http.StatusBadRequest
		if locatork.IsNotFound(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func checkHandler(c *gin.Context) {
	l, err := tutorialLocator()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	run := locatork.NewRun("tutorial", c.Request.URL.String(), locatork.EngineStatic)
	run.Execute(log.Logger.WithContext(c.Request.Context()), l, tutorial.Expectations())
	c.JSON(http.StatusOK, gin.H{"id": run.IDString(), "passed": run.Passed(), "results": run.Results})
}

// Serve the tutorial site until interrupted
func Serve(ctx *cli.Context) error {
	srv := &http.Server{Addr: ctx.String("addr"), Handler: NewRouter()}

	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	defer close(done)
	go func() {
		select {
		case <-c:
		case <-done:
			return
		}
		log.Info().Msg("Ctrl-C Pressed, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("serving tutorial site")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
