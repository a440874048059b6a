package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BiblioGo/LibraryApp/internal/handler"
)

// runServer starts the HTTP API and blocks until the context is canceled.
func (a *App) runServer(ctx context.Context) error {
	userHandler := handler.NewUserHandler(a.userUseCase, a.logger)
	bookHandler := handler.NewBookHandler(a.bookUseCase, a.logger)
	loanHandler := handler.NewLoanHandler(a.loanUseCase, a.loanEventPublisher, a.logger)
	systemHandler := handler.NewSystemHandler(a.Config.OpenAPIPath, a.logger)

	r := chi.NewRouter()
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(a.Config.RequestTimeout))

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
		r.Get("/{id}/loans", userHandler.ListUserLoans)
	})

	r.Route("/books", func(r chi.Router) {
		r.Post("/", bookHandler.CreateBook)
		r.Get("/", bookHandler.ListBooks)
		r.Get("/search/title", bookHandler.SearchByTitle)
		r.Get("/search/author", bookHandler.SearchByAuthor)
		r.Get("/{id}", bookHandler.GetBook)
		r.Put("/{id}", bookHandler.UpdateBook)
		r.Delete("/{id}", bookHandler.DeleteBook)
		r.Get("/{id}/available", bookHandler.Available)
		r.Post("/{id}/cover", bookHandler.UploadCover)
	})

	r.Route("/loans", func(r chi.Router) {
		r.Get("/", loanHandler.ListLoans)
		r.Post("/create", loanHandler.CreateLoan)
		r.Get("/active", loanHandler.ListActiveLoans)
		r.Get("/stats", loanHandler.LoanStats)
		r.Get("/{id}", loanHandler.GetLoan)
		r.Delete("/{id}", loanHandler.DeleteLoan)
		r.Post("/{id}/return", loanHandler.ReturnLoan)
		r.Get("/{id}/events", loanHandler.ListLoanEvents)
	})

	r.Get("/openapi.json", systemHandler.OpenAPI)
	r.Get("/healthz", systemHandler.Healthz)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", a.Config.ServerPort),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("termination signal received, shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("HTTP server stopped")
	return nil
}
