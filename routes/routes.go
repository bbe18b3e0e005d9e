package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lrbooking/handlers"
	"lrbooking/logger"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+handlers.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+handlers.RequestIDHeader)

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Deps struct {
	Logger   *logger.Logger
	Bookings *handlers.BookingHandler
	Options  *handlers.OptionHandler
	Settings *handlers.SettingsHandler
	Reports  *handlers.ReportHandler
	PDF      *handlers.PDFHandler
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	// PDFRateLimit caps PDF requests per client IP per minute; zero disables it.
	PDFRateLimit int
	// Health is called by /healthz; nil always reports ok.
	Health func(ctx context.Context) error
}

func SetupRoutes(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(handlers.RequestLogger(d.Logger))
	r.Use(handlers.RecoverWrapper)
	r.Use(withCORS)

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Health(ctx); err != nil {
				http.Error(w, "unhealthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})

	pdf := func(r chi.Router) chi.Router {
		if d.PDFRateLimit > 0 {
			return r.With(httprate.LimitByIP(d.PDFRateLimit, time.Minute))
		}
		return r
	}

	// Booking routes
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", d.Bookings.CreateBooking)
		r.Get("/", d.Bookings.ListBookings)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", d.Bookings.GetBooking)
			r.Put("/", d.Bookings.UpdateBooking)
			r.Delete("/", d.Bookings.DeleteBooking)
			r.Post("/dispatch", d.Bookings.Dispatch)
			r.Post("/receive", d.Bookings.Receive)
			r.Post("/deliver", d.Bookings.Deliver)
			r.Post("/transition", d.Bookings.Transition)
			r.Patch("/status", d.Bookings.SetStatus)
			pdf(r).Post("/invoice", d.PDF.Invoice)
		})
	})

	// Report routes
	r.Route("/reports", func(r chi.Router) {
		r.Get("/bookings", d.Reports.BookingReport)
		r.Get("/dispatch", d.Reports.DispatchReport)
		pdf(r).Get("/bookings/pdf", d.PDF.BookingReport)
		pdf(r).Get("/dispatch/pdf", d.PDF.DispatchReport)
	})

	// Settings and option lists
	r.Get("/settings", d.Settings.GetSettings)
	r.Post("/settings", d.Settings.SaveSettings)
	r.Get("/options/{key}", d.Options.ListOptions)
	r.Post("/options/{key}", d.Options.AddOption)
	r.Get("/history/{field}", d.Options.History)
	r.Get("/destinations/{destination}/consignees", d.Options.Consignees)
	r.Get("/destinations/{destination}/address", d.Options.Address)

	return r
}
