package router

import (
	"go-voice-api/handler"
	"go-voice-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(
	authz service.IAuthzService,
	authHandler *handler.AuthHandler,
	phoneHandler *handler.PhoneHandler,
	agentHandler *handler.AgentHandler,
	historyHandler *handler.HistoryHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.Handler())

	// Session endpoints; signup/signin/refresh authenticate by payload, not
	// by header.
	mux.Handle("POST /auth/signup", handler.ErrorHandlingMiddleware(authHandler.Signup))
	mux.Handle("POST /auth/signin", handler.ErrorHandlingMiddleware(authHandler.Signin))
	mux.Handle("POST /auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	auth := handler.AuthMiddleware(authz)

	mux.Handle("GET /auth/me", auth(handler.ErrorHandlingMiddleware(authHandler.Me)))

	mux.Handle("POST /phone_numbers", auth(handler.ErrorHandlingMiddleware(phoneHandler.CreatePhoneNumber)))
	mux.Handle("GET /phone_numbers", auth(handler.ErrorHandlingMiddleware(phoneHandler.ListPhoneNumbers)))
	mux.Handle("GET /phone_numbers/{id}", auth(handler.ErrorHandlingMiddleware(phoneHandler.GetPhoneNumber)))
	mux.Handle("DELETE /phone_numbers/{id}", auth(handler.ErrorHandlingMiddleware(phoneHandler.DeletePhoneNumber)))

	mux.Handle("POST /agents", auth(handler.ErrorHandlingMiddleware(agentHandler.CreateAgent)))
	mux.Handle("GET /agents", auth(handler.ErrorHandlingMiddleware(agentHandler.ListAgents)))
	mux.Handle("GET /agents/{id}", auth(handler.ErrorHandlingMiddleware(agentHandler.GetAgent)))
	mux.Handle("DELETE /agents/{id}", auth(handler.ErrorHandlingMiddleware(agentHandler.DeleteAgent)))

	mux.Handle("POST /history", auth(handler.ErrorHandlingMiddleware(historyHandler.CreateHistory)))
	mux.Handle("GET /history/{agent_id}", auth(handler.ErrorHandlingMiddleware(historyHandler.ListHistory)))

	return mux
}
