package routes

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-admin/app/configs"
	"github.com/Rakhulsr/go-ecommerce-admin/app/handlers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/handlers/admin"
	"github.com/Rakhulsr/go-ecommerce-admin/app/middlewares"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/format"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/renderer"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/Rakhulsr/go-ecommerce-admin/app/views"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	servertiming "github.com/mitchellh/go-server-timing"
	"go.opentelemetry.io/otel"
)

// NewRouter wires the console: backend services, repositories, handlers and
// the middleware chain.
func NewRouter(env configs.ENV, keys configs.SessionKeys) http.Handler {
	format.SetLocation(env.Location())

	render := renderer.New(views.FS, !env.IsProduction())
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)

	api := services.NewAPIClient(env.APIBaseURL, env.APITimeout,
		services.WithTokenSource(sessions.ContextToken{}),
		services.WithTracerProvider(otel.GetTracerProvider()),
	)
	imageHost := services.NewImageHost(env.ImageHostURL, env.ImageHostKey, env.APITimeout)

	productRepo := repositories.NewProductRepository(services.NewProductService(api))
	categoryRepo := repositories.NewCategoryRepository(services.NewCategoryService(api))
	orderRepo := repositories.NewOrderRepository(services.NewOrderService(api))
	userRepo := repositories.NewUserRepository(services.NewAuthService(api))

	homeHandler := handlers.NewHomeHandler(render)
	authHandler := handlers.NewAuthHandler(render, userRepo, sessionStore, validate)
	adminHandler := admin.NewAdminHandler(render, validate, sessionStore, productRepo, categoryRepo, orderRepo, imageHost, admin.Config{
		PageSize:    env.PageSize,
		MaxImages:   env.MaxImages,
		SearchDelay: env.SearchDebounce,
	})

	router := mux.NewRouter()
	router.Use(middlewares.SessionMiddleware(sessionStore))

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(views.Static()))))
	router.HandleFunc("/healthz", homeHandler.Health).Methods("GET")
	router.HandleFunc("/", homeHandler.Home).Methods("GET")

	router.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(sessionStore))

	adminRouter.HandleFunc("", homeHandler.Home).Methods("GET")
	adminRouter.HandleFunc("/dashboard", adminHandler.GetDashboard).Methods("GET")

	adminRouter.HandleFunc("/products", adminHandler.GetProductsPage).Methods("GET")
	adminRouter.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods("POST", "PUT")
	adminRouter.HandleFunc("/products/{id}/delete", adminHandler.ConfirmDeleteProduct).Methods("GET")
	adminRouter.HandleFunc("/products/{id}/delete", adminHandler.DeleteProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods("DELETE")

	adminRouter.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods("GET")
	adminRouter.HandleFunc("/categories", adminHandler.CreateCategory).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}", adminHandler.UpdateCategory).Methods("POST", "PUT")
	adminRouter.HandleFunc("/categories/{id}/delete", adminHandler.ConfirmDeleteCategory).Methods("GET")
	adminRouter.HandleFunc("/categories/{id}/delete", adminHandler.DeleteCategory).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}", adminHandler.DeleteCategory).Methods("DELETE")

	adminRouter.HandleFunc("/orders", adminHandler.GetOrdersPage).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.GetOrderDetail).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}/status", adminHandler.UpdateOrderStatus).Methods("POST", "PUT")

	adminRouter.HandleFunc("/users", adminHandler.GetUsersPage).Methods("GET")

	var handler http.Handler = router
	if len(keys.CSRFKey) > 0 {
		handler = csrf.Protect(keys.CSRFKey,
			csrf.Secure(env.IsProduction()),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
		)(handler)
	} else {
		log.Println("routes.NewRouter: CSRF_KEY is not set, CSRF protection disabled")
	}
	handler = middlewares.MethodOverrideMiddleware(handler)

	return servertiming.Middleware(handler, nil)
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	log.Printf("routes: CSRF check failed for %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
	http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
}
