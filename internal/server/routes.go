package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/ratelimit"
)

func registerRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api/v1")

	limited := func(h fiber.Handler) []fiber.Handler {
		if deps.Limiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{ratelimit.Middleware(deps.Limiter), h}
	}

	protected := auth.Protected(deps.Auther)
	verified := auth.RequireStatus(auth.UserStatusVerified)
	admin := auth.RestrictTo(auth.RoleAdmin)

	users := api.Group("/users")
	authH := &authHandlers{deps: deps}
	users.Post("/signup", limited(authH.signup)...)
	users.Post("/login", limited(authH.login)...)
	users.Get("/logout", authH.logout)
	users.Post("/forgot-password", limited(authH.forgotPassword)...)
	users.Patch("/reset-password/:token", limited(authH.resetPassword)...)
	users.Get("/validation/:token", authH.verifyAccount)
	users.Post("/resend-validation", limited(authH.resendVerification)...)

	me := users.Group("/me", protected)
	me.Get("/", authH.currentUser)
	me.Patch("/password", authH.updatePassword)
	me.Patch("/match-settings", authH.updateMatchSettings)
	me.Delete("/", authH.deactivate)

	users.Patch("/:id/ban", protected, admin, authH.ban)
	users.Patch("/:id/reinstate", protected, admin, authH.reinstate)

	storyH := &storyHandlers{deps: deps}
	stories := api.Group("/stories", protected, verified)
	stories.Get("/", storyH.feed)
	stories.Post("/", storyH.create)
	stories.Get("/drafts", storyH.drafts)
	stories.Get("/user/:id", storyH.byUser)
	stories.Get("/:id", storyH.get)
	stories.Delete("/:id", storyH.delete)
	stories.Delete("/:id/moderate", admin, storyH.moderate)
	stories.Patch("/:id/publish", storyH.publish)
	stories.Post("/:id/like", storyH.toggleLike)
	stories.Post("/:id/report", storyH.report)
	stories.Post("/:id/comments", storyH.comment)
	stories.Patch("/comments/:id", storyH.editComment)
	stories.Delete("/comments/:id", storyH.deleteComment)

	lessonH := &lessonHandlers{deps: deps}
	lessons := api.Group("/lessons", protected, verified)
	lessons.Get("/", lessonH.catalog)
	lessons.Post("/", lessonH.create)
	lessons.Get("/mine", lessonH.authored)
	lessons.Get("/:id", lessonH.get)
	lessons.Patch("/:id", lessonH.update)
	lessons.Patch("/:id/status", lessonH.setStatus)
	lessons.Delete("/:id", lessonH.delete)

	roomH := &roomHandlers{deps: deps}
	rooms := api.Group("/rooms", protected, verified)
	rooms.Get("/", roomH.list)
	rooms.Post("/", roomH.create)
	rooms.Get("/:id", roomH.get)
	rooms.Post("/:id/join", roomH.join)
	rooms.Delete("/:id/leave", roomH.leave)
	rooms.Patch("/:id/slow-mode", roomH.setSlowMode)
	rooms.Post("/:id/messages", roomH.claimPostSlot)

	socialH := &socialHandlers{deps: deps}
	friends := api.Group("/friends", protected, verified)
	friends.Get("/", socialH.friends)
	friends.Get("/requests", socialH.pending)
	friends.Post("/requests", socialH.sendRequest)
	friends.Patch("/requests/:id/accept", socialH.accept)
	friends.Patch("/requests/:id/decline", socialH.decline)

	blocks := api.Group("/blocks", protected, verified)
	blocks.Post("/:id", socialH.block)
	blocks.Delete("/:id", socialH.unblock)

	inbox := api.Group("/notifications", protected)
	inbox.Get("/", socialH.inbox)
	inbox.Patch("/:id/read", socialH.markRead)
	inbox.Patch("/read-all", socialH.markAllRead)

	matchH := &matchHandlers{deps: deps}
	api.Get("/matches", protected, verified, matchH.discover)
}
