package bootstrap

import (
	"log/slog"
	"os"

	"github.com/genie-desktop/genie-backend/internal/capture"
	"github.com/genie-desktop/genie-backend/internal/conversation"
	"github.com/genie-desktop/genie-backend/internal/ollama"
	"github.com/genie-desktop/genie-backend/internal/recall"
	"github.com/genie-desktop/genie-backend/internal/session"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideCapturer(cfg *Config) capture.Capturer {
	return capture.NewScreenCapturer(cfg.ScreenshotBinary)
}

func ProvideExtractor(cfg *Config) capture.Extractor {
	return capture.NewTesseractExtractor(cfg.TesseractBinary)
}

func ProvideRecallService(store *recall.Store, model *ollama.Client, logger *slog.Logger) *recall.Service {
	return recall.NewService(store, model, logger)
}

func ProvideConversationService(
	store session.Store,
	archive *session.Archive,
	model *ollama.Client,
	capturer capture.Capturer,
	extractor capture.Extractor,
	recallSvc *recall.Service,
	logger *slog.Logger,
) *conversation.Service {
	var recaller conversation.Recaller
	if recallSvc.Enabled() {
		recaller = recallSvc
	}
	return conversation.NewService(conversation.ServiceConfig{
		Store:     store,
		Archive:   archive,
		Model:     model,
		Capturer:  capturer,
		Extractor: extractor,
		Recaller:  recaller,
		Logger:    logger,
	})
}

func ProvideConversationHandler(service *conversation.Service, logger *slog.Logger) *conversation.Handler {
	return conversation.NewHandler(service, logger.With("handler", "conversation"))
}

func ProvideRecallHandler(service *recall.Service, logger *slog.Logger) *recall.Handler {
	return recall.NewHandler(service, logger.With("handler", "recall"))
}

type HandlerParams struct {
	fx.In

	ConversationHandler *conversation.Handler
	RecallHandler       *recall.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")

	params.ConversationHandler.RegisterRoutes(api)
	params.RecallHandler.RegisterRoutes(api)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideCapturer,
		ProvideExtractor,
		ProvideRecallService,
		ProvideConversationService,
		ProvideConversationHandler,
		ProvideRecallHandler,
	),
	fx.Invoke(RegisterRoutes),
)
