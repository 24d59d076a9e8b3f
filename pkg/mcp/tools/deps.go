package tools

import (
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/llm"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

// Deps holds the services MCP tools call into.
type Deps struct {
	Dispatcher       llm.Dispatcher
	FeedbackService  services.FeedbackService
	AnalyticsService services.AnalyticsService
	Logger           *zap.Logger
}
