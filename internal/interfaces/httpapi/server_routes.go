package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/home", handler.GetHome)

	mux.HandleFunc("GET /v1/knights", handler.ListKnights)
	mux.HandleFunc("GET /v1/knights/most-used", handler.ListMostUsedKnights)
	mux.HandleFunc("GET /v1/knights/by-url/{param}", handler.GetKnightByURL)
	mux.HandleFunc("GET /v1/knights/{knightID}", handler.GetKnight)
	mux.HandleFunc("GET /v1/stigmas", handler.ListStigmas)

	mux.HandleFunc("GET /v1/battles", handler.ListBattles)
	mux.Handle("GET /v1/battles/{battleID}", OptionalAuth(verifier, http.HandlerFunc(handler.GetBattle)))
	mux.HandleFunc("GET /v1/battles/{battleID}/comments", handler.ListComments)

	mux.HandleFunc("GET /v1/members", handler.ListMembers)
	mux.HandleFunc("GET /v1/members-by-url/{param}", handler.GetMemberByURL)
	mux.HandleFunc("GET /v1/members/{userID}", handler.GetMember)
	mux.HandleFunc("GET /v1/members/{userID}/knights", handler.ListMemberKnights)

	mux.HandleFunc("POST /v1/auth/sign-up", handler.SignUp)
	mux.HandleFunc("POST /v1/auth/sign-in", handler.SignIn)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("POST /v1/auth/sign-out", auth(handler.SignOut))
	mux.HandleFunc("GET /v1/auth/session", handler.GetSession)

	mux.Handle("PUT /v1/me/profile", auth(handler.UpdateMyProfile))
	mux.Handle("PUT /v1/me/knights/{knightID}", auth(handler.SetMyKnight))

	mux.Handle("POST /v1/knights", auth(handler.CreateKnight))
	mux.Handle("PUT /v1/knights/{knightID}", auth(handler.UpdateKnight))

	mux.Handle("POST /v1/battles", auth(handler.CreateBattle))
	mux.Handle("POST /v1/battles/{battleID}/comments", auth(handler.CreateComment))
	mux.Handle("PUT /v1/battles/{battleID}/reaction", auth(handler.ToggleReaction))
	mux.Handle("DELETE /v1/comments/{commentID}", auth(handler.DeleteComment))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, checker AdminChecker) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(checker, h))
	}

	mux.Handle("DELETE /v1/knights/{knightID}", admin(handler.DeleteKnight))
	mux.Handle("PUT /v1/knights/{knightID}/image", admin(handler.UploadKnightImage))
	mux.Handle("POST /v1/admin/knights/import", admin(handler.ImportKnights))
	mux.Handle("POST /v1/stigmas", admin(handler.CreateStigma))

	mux.Handle("DELETE /v1/battles/{battleID}", admin(handler.DeleteBattle))
	mux.Handle("PUT /v1/battles/{battleID}/meta", admin(handler.SetBattleMeta))

	mux.Handle("GET /v1/admin/users", admin(handler.ListUsers))
	mux.Handle("PUT /v1/admin/users/{userID}/active", admin(handler.SetUserActive))
	mux.Handle("PUT /v1/admin/users/{userID}/role", admin(handler.SetUserRole))
	mux.Handle("DELETE /v1/admin/users/{userID}", admin(handler.DeleteUser))
}
