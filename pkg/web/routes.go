// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/TrapoCloud/TrapoBotGo/pkg/database"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// TicketReporter exposes the open-ticket view the API serves
type TicketReporter interface {
	OpenCount() int
	OpenTickets() []*models.Ticket
}

// MigrationReporter exposes the active migration runs the API serves
type MigrationReporter interface {
	ActiveRuns() []models.MigrationRun
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, tickets TicketReporter, migrations MigrationReporter, live *LiveHub) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/tickets", ticketsHandler(tickets))
		api.GET("/migration", migrationHandler(migrations))

		if live != nil {
			api.GET("/migration/live", live.Handler())
		}
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "TrapoBot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// ticketsHandler returns the currently open support tickets
func ticketsHandler(tickets TicketReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tickets == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Ticket registry unavailable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"open":    tickets.OpenCount(),
			"tickets": tickets.OpenTickets(),
		})
	}
}

// migrationHandler returns the active nickname migration runs
func migrationHandler(migrations MigrationReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if migrations == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Migration engine unavailable",
			})
			return
		}
		runs := migrations.ActiveRuns()
		c.JSON(http.StatusOK, gin.H{
			"active": len(runs),
			"runs":   runs,
		})
	}
}
