// Package newsfusion предоставляет сборку и маршруты основного приложения.
package newsfusion

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	articleapprove "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/approve"
	articleauthor "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/author"
	articlecreate "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/create"
	articledecline "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/decline"
	articlelist "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/list"
	articlelistall "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/listall"
	articlepremiumlist "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/premiumlist"
	articleread "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/read"
	articleremove "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/remove"
	articlesetpremium "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/setpremium"
	articletrending "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/trending"
	articleupdate "github.com/newsfusion/newsfusion-backend/internal/http/handlers/article/update"
	"github.com/newsfusion/newsfusion-backend/internal/http/handlers/auth/token"
	"github.com/newsfusion/newsfusion-backend/internal/http/handlers/health"
	paymenthistory "github.com/newsfusion/newsfusion-backend/internal/http/handlers/payment/history"
	paymentintent "github.com/newsfusion/newsfusion-backend/internal/http/handlers/payment/intent"
	paymentrecord "github.com/newsfusion/newsfusion-backend/internal/http/handlers/payment/record"
	publishercreate "github.com/newsfusion/newsfusion-backend/internal/http/handlers/publisher/create"
	publisherlist "github.com/newsfusion/newsfusion-backend/internal/http/handlers/publisher/list"
	useradmincheck "github.com/newsfusion/newsfusion-backend/internal/http/handlers/user/admincheck"
	userlist "github.com/newsfusion/newsfusion-backend/internal/http/handlers/user/list"
	usermakeadmin "github.com/newsfusion/newsfusion-backend/internal/http/handlers/user/makeadmin"
	userpremiumstatus "github.com/newsfusion/newsfusion-backend/internal/http/handlers/user/premiumstatus"
	userregister "github.com/newsfusion/newsfusion-backend/internal/http/handlers/user/register"
	usersubscribe "github.com/newsfusion/newsfusion-backend/internal/http/handlers/user/subscribe"
	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	jwtlib "github.com/newsfusion/newsfusion-backend/internal/lib/jwt"
	"github.com/newsfusion/newsfusion-backend/internal/storage/repository"

	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
	paymentservice "github.com/newsfusion/newsfusion-backend/internal/services/payment"
	publisherservice "github.com/newsfusion/newsfusion-backend/internal/services/publisher"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, maker jwtlib.Maker,
	users *userservice.Service, articles *articleservice.Service,
	publishers *publisherservice.Service, payments *paymentservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/jwt", token.New(logger, maker).ServeHTTP)
		r.Get("/articles", articlelist.New(logger, articles).ServeHTTP)
		r.Get("/articles/trending", articletrending.New(logger, articles).ServeHTTP)
		r.Get("/publishers", publisherlist.New(logger, publishers).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/users", userregister.New(logger, users).ServeHTTP)
			r.Get("/users/admin/{email}", useradmincheck.New(logger, users).ServeHTTP)
			r.Get("/users/premium/{email}", userpremiumstatus.New(logger, users).ServeHTTP)
			r.Patch("/users/subscribe", usersubscribe.New(logger, users).ServeHTTP)

			r.Post("/articles", articlecreate.New(logger, articles).ServeHTTP)
			r.Get("/articles/premium", articlepremiumlist.New(logger, articles).ServeHTTP)
			r.Get("/articles/author/{email}", articleauthor.New(logger, articles).ServeHTTP)
			r.Get("/articles/{id}", articleread.New(logger, articles).ServeHTTP)
			r.Put("/articles/{id}", articleupdate.New(logger, articles).ServeHTTP)
			r.Delete("/articles/{id}", articleremove.New(logger, articles, users).ServeHTTP)

			r.Post("/payments/intent", paymentintent.New(logger, payments).ServeHTTP)
			r.Post("/payments", paymentrecord.New(logger, payments).ServeHTTP)
			r.Get("/payments", paymenthistory.New(logger, payments).ServeHTTP)

			// Группа административных маршрутов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(users, logger))

				r.Get("/users", userlist.New(logger, users).ServeHTTP)
				r.Patch("/users/admin/{email}", usermakeadmin.New(logger, users).ServeHTTP)
				r.Post("/publishers", publishercreate.New(logger, publishers).ServeHTTP)
				r.Get("/articles/all", articlelistall.New(logger, articles).ServeHTTP)
				r.Patch("/articles/approve/{id}", articleapprove.New(logger, articles).ServeHTTP)
				r.Patch("/articles/decline/{id}", articledecline.New(logger, articles).ServeHTTP)
				r.Patch("/articles/premium/{id}", articlesetpremium.New(logger, articles).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
