// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skycab/internal/http/handlers"
	"skycab/internal/http/middleware"
)

// Routes builds the gin engine. Modules left nil in ServerDeps have their
// routes omitted.
func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(s.deps.Logger), middleware.Recovery(s.deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	if s.deps.Fare != nil {
		fareHandler := handlers.NewFareHandler(s.deps.Fare)
		api.GET("/tiers", fareHandler.Tiers)
		api.GET("/tiers/:id", fareHandler.Tier)
		api.GET("/region", fareHandler.Region)
		api.GET("/region/contains", fareHandler.Contains)
		api.POST("/fares/quote", fareHandler.Quote)
	}

	if s.deps.Verifier == nil {
		return r
	}
	authed := api.Group("", middleware.Auth(s.deps.Verifier))

	if s.deps.Booking != nil {
		var bh *handlers.BookingHandler
		if s.deps.Fare != nil {
			bh = handlers.NewBookingHandler(s.deps.Booking, s.deps.Fare.Engine())
		} else {
			bh = handlers.NewBookingHandler(s.deps.Booking, nil)
		}
		authed.POST("/bookings", bh.Create)
		authed.GET("/bookings", bh.List)
		authed.GET("/bookings/:id", bh.Get)
		authed.POST("/bookings/:id/cancel", bh.Cancel)
	}

	if s.deps.Chat != nil {
		ch := handlers.NewChatHandler(s.deps.Chat)
		authed.GET("/chat", ch.List)
		authed.POST("/chat/save", ch.Save)
	}

	if s.deps.AI != nil {
		ah := handlers.NewAIHandler(s.deps.AI, s.deps.AITimeout)
		authed.POST("/ai/chat", ah.Chat)
		authed.GET("/ai/usage", ah.Usage)
	}

	return r
}
