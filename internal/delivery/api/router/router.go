// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"birdy/internal/delivery/api/middleware"
	"birdy/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	UserHandler    *handler.UserHandler
	FriendHandler  *handler.FriendHandler
	ChatHandler    *handler.ChatHandler
	DialogHandler  *handler.DialogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	userHandler    *handler.UserHandler
	friendHandler  *handler.FriendHandler
	chatHandler    *handler.ChatHandler
	dialogHandler  *handler.DialogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		userHandler:    params.UserHandler,
		friendHandler:  params.FriendHandler,
		chatHandler:    params.ChatHandler,
		dialogHandler:  params.DialogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Account routes; the session-scoped ones need a bearer token.
	appGroup := e.Group("/app")
	{
		appGroup.POST("/reg", r.accountHandler.Register)
		appGroup.GET("/confirm", r.accountHandler.ConfirmEmail)
		appGroup.POST("/confirm/resend", r.accountHandler.ResendConfirmation)
		appGroup.POST("/auth", r.accountHandler.Authenticate)

		sessionGroup := appGroup.Group("", r.authMiddleware.Authenticate)
		sessionGroup.PUT("/password", r.accountHandler.ChangePassword)
		sessionGroup.DELETE("/logout", r.accountHandler.Logout)
		sessionGroup.DELETE("/logout/all", r.accountHandler.LogoutAll)
		sessionGroup.GET("/sessions", r.accountHandler.ListSessions)
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	usersGroup := apiV1.Group("/users")
	{
		usersGroup.GET("/me/qrcode", r.userHandler.GetInviteQRCode)
		usersGroup.GET("/:tag", r.userHandler.GetUserInfo)
	}

	friendsGroup := apiV1.Group("/friends")
	{
		friendsGroup.GET("", r.friendHandler.ListFriends)
		friendsGroup.GET("/requests", r.friendHandler.ListFriendRequests)
		friendsGroup.POST("/requests", r.friendHandler.SendFriendRequest)
		friendsGroup.POST("/requests/:tag/accept", r.friendHandler.AcceptFriendRequest)
	}

	chatsGroup := apiV1.Group("/chats")
	{
		chatsGroup.POST("", r.chatHandler.CreateChat)
		chatsGroup.GET("/:id/members", r.chatHandler.ListChatMembers)
		chatsGroup.POST("/:id/members", r.chatHandler.AddChatMember)
		chatsGroup.PUT("/:id/members/:tag", r.chatHandler.SetChatMemberStatus)
	}

	dialogsGroup := apiV1.Group("/dialogs")
	{
		dialogsGroup.GET("", r.dialogHandler.GetDialogs)
		dialogsGroup.POST("", r.dialogHandler.StartDialog)
		dialogsGroup.GET("/:id/messages", r.dialogHandler.GetMessages)
		dialogsGroup.POST("/:id/messages", r.dialogHandler.SendMessage)
	}
}
