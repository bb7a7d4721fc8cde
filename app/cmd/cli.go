package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-ecommerce-admin/app/configs"
	"github.com/Rakhulsr/go-ecommerce-admin/app/db/seeders"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-admin/app/routes"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/format"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/urfave/cli/v3"
)

var credentialFlags = []cli.Flag{
	&cli.StringFlag{Name: "email", Usage: "admin email", Sources: cli.EnvVars("ADMIN_EMAIL"), Required: true},
	&cli.StringFlag{Name: "password", Usage: "admin password", Sources: cli.EnvVars("ADMIN_PASSWORD"), Required: true},
}

// RunCli runs the console binary. Without a subcommand it serves the console.
func RunCli(ctx context.Context, env configs.ENV, args []string) error {
	cmd := &cli.Command{
		Name:   "admin-console",
		Usage:  "Server-rendered admin console for the e-commerce backend",
		Action: func(ctx context.Context, c *cli.Command) error { return serve(ctx, env) },
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the admin console HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error { return serve(ctx, env) },
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "also write the keys to this file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateSessionKeys(c.Root().Writer, c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "Print the backend's order statistics",
				Flags: credentialFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					api := newAPIClient(env)
					ctx, err := signIn(ctx, api, c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					stats, err := services.NewOrderService(api).Stats(ctx)
					if err != nil {
						return fmt.Errorf("failed to fetch stats: %w", err)
					}
					w := c.Root().Writer
					fmt.Fprintf(w, "Total revenue:       %s\n", format.Currency(stats.TotalRevenue))
					fmt.Fprintf(w, "Total orders:        %d\n", stats.TotalOrders)
					fmt.Fprintf(w, "Pending orders:      %d\n", stats.PendingOrders)
					fmt.Fprintf(w, "Completed orders:    %d\n", stats.CompletedOrders)
					fmt.Fprintf(w, "Cancelled orders:    %d\n", stats.CancelledOrders)
					fmt.Fprintf(w, "Average order value: %s\n", format.Currency(stats.AverageOrderValue()))
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Create demo categories and products through the backend API",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "categories", Usage: "number of categories to create", Value: 5},
					&cli.IntFlag{Name: "products", Usage: "number of products to create", Value: 20},
				}, credentialFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					api := newAPIClient(env)
					ctx, err := signIn(ctx, api, c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					seeder := seeders.Seeder{
						Categories: repositories.NewCategoryRepository(services.NewCategoryService(api)),
						Products:   repositories.NewProductRepository(services.NewProductService(api)),
					}
					done, err := seeder.Seed(ctx, seeders.Counts{
						Categories: int(c.Int("categories")),
						Products:   int(c.Int("products")),
					})
					if err != nil {
						return err
					}
					log.Printf("✅ Seeding complete: %d categories, %d products", done.Categories, done.Products)
					return nil
				},
			},
		},
	}

	return cmd.Run(ctx, args)
}

func newAPIClient(env configs.ENV) *services.APIClient {
	return services.NewAPIClient(env.APIBaseURL, env.APITimeout, services.WithTokenSource(sessions.ContextToken{}))
}

// signIn authenticates against the backend and returns a context carrying
// the admin token for subsequent calls.
func signIn(ctx context.Context, api *services.APIClient, email, password string) (context.Context, error) {
	admin, err := repositories.NewUserRepository(services.NewAuthService(api)).Authenticate(ctx, email, password)
	if err != nil {
		return ctx, fmt.Errorf("failed to sign in as %s: %w", email, err)
	}
	return sessions.WithAdmin(ctx, admin), nil
}

func serve(ctx context.Context, env configs.ENV) error {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return fmt.Errorf("invalid session keys (run generate-keys): %w", err)
	}
	log.Println("✅ Session keys loaded.")

	server := &http.Server{
		Addr:              ":" + env.Port,
		Handler:           routes.NewRouter(env, *keys),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s (backend %s)", server.Addr, env.APIBaseURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
