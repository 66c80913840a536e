package api

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/rohits-web03/nudge/docs"
	"github.com/rohits-web03/nudge/internal/api/handlers"
	"github.com/rohits-web03/nudge/internal/api/middleware"
	"github.com/rohits-web03/nudge/internal/config"
)

func SetupRouter(h *handlers.Handler, cfg config.Config, log *zap.Logger) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(cfg.CorsOptions())

	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("/popup", h.Popup)
	mainMux.HandleFunc("/interaction", h.RecordInteraction)
	mainMux.HandleFunc("/survey", h.SubmitSurvey)
	mainMux.HandleFunc("/email", h.AddEmails)

	log.Info("router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(log)(handler)
	return handler
}
