package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"lrbooking/apperr"
	"lrbooking/formatter"
	"lrbooking/logger"
	"lrbooking/metrics"
	"lrbooking/models"
	"lrbooking/reports"
)

// Renderer turns printable HTML into PDF bytes.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// FileStore persists a generated file and returns where it can be found.
// Delete takes a location returned by Save.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Delete(ctx context.Context, location string) error
}

// GeneratedFile describes one produced PDF. Local is set when the primary
// store failed and the file was written to the fallback store instead.
type GeneratedFile struct {
	Name  string `json:"fileName"`
	URL   string `json:"url,omitempty"`
	Local bool   `json:"local"`
	Data  []byte `json:"-"`
}

type DocumentService struct {
	Bookings *BookingService
	Reports  *ReportService
	Settings *SettingsService
	Renderer Renderer
	Store    FileStore
	Fallback FileStore
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Geometry formatter.Geometry
	Now      func() time.Time
	Location *time.Location
}

func NewDocumentService(bookings *BookingService, rep *ReportService, settings *SettingsService, renderer Renderer, store, fallback FileStore, log *logger.Logger) *DocumentService {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentService{
		Bookings: bookings,
		Reports:  rep,
		Settings: settings,
		Renderer: renderer,
		Store:    store,
		Fallback: fallback,
		Logger:   log.WithComponent("documents"),
		Geometry: formatter.A4,
		Now:      time.Now,
		Location: rep.Location,
	}
}

func (d *DocumentService) render(ctx context.Context, kind string, doc formatter.Document) ([]byte, error) {
	html, err := formatter.RenderHTML(doc, d.Geometry)
	if err != nil {
		return nil, apperr.TransientIO("lay out "+kind, err)
	}
	pdf, err := d.Renderer.RenderHTML(ctx, html)
	if err != nil {
		return nil, apperr.TransientIO("render "+kind, err)
	}
	return pdf, nil
}

// Invoice renders the three-copy invoice of a booking, uploads it and
// records the URL on the booking. When the upload fails the PDF is written
// to the fallback store and its path returned instead.
func (d *DocumentService) Invoice(ctx context.Context, id string) (*GeneratedFile, error) {
	started := time.Now()
	log := logger.FromContext(ctx, d.Logger).With("id", id)

	var (
		b     *models.Booking
		brand formatter.Branding
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		b, err = d.Bookings.GetBooking(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		brand, err = d.Settings.Branding(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := d.Now().In(d.Location)
	pdf, err := d.render(ctx, "invoice", formatter.Invoice(b, brand, now))
	if err != nil {
		d.Metrics.Document("invoice", "failed", time.Since(started))
		return nil, err
	}

	out := &GeneratedFile{Name: formatter.InvoiceFileName(b.ID), Data: pdf}
	url, err := d.Store.Save(ctx, out.Name, pdf)
	if err == nil {
		out.URL = url
		if err := d.Bookings.Repo.UpdatePDFURL(ctx, b.ID, url, now); err != nil {
			return nil, apperr.TransientIO("record invoice url", err)
		}
		d.Metrics.Document("invoice", "uploaded", time.Since(started))
		log.Infow("invoice generated", "url", url, "bytes", len(pdf))
		return out, nil
	}

	if d.Fallback == nil {
		d.Metrics.Document("invoice", "failed", time.Since(started))
		return nil, apperr.TransientIO("upload invoice", err)
	}
	log.Warnw("invoice upload failed, writing local copy", "error", err)
	path, ferr := d.Fallback.Save(ctx, out.Name, pdf)
	if ferr != nil {
		d.Metrics.Document("invoice", "failed", time.Since(started))
		return nil, apperr.TransientIO("save invoice", errors.Join(err, ferr))
	}
	out.URL = path
	out.Local = true
	d.Metrics.Document("invoice", "local", time.Since(started))
	log.Infow("invoice written locally", "path", path)
	return out, nil
}

// BookingReportPDF renders booking, delivery and citywise details for f.
func (d *DocumentService) BookingReportPDF(ctx context.Context, title string, f reports.Filter) (*GeneratedFile, error) {
	if title == "" {
		title = "Booking Report"
	}
	return d.report(ctx, title, func(ctx context.Context, brand formatter.Branding, now time.Time) (formatter.Document, error) {
		rep, err := d.Reports.BookingReport(ctx, f)
		if err != nil {
			return formatter.Document{}, err
		}
		return formatter.BookingReport(title, rep, brand, now), nil
	})
}

func (d *DocumentService) DispatchReportPDF(ctx context.Context, title string, f reports.Filter) (*GeneratedFile, error) {
	if title == "" {
		title = "Dispatch Report"
	}
	return d.report(ctx, title, func(ctx context.Context, brand formatter.Branding, now time.Time) (formatter.Document, error) {
		list, err := d.Reports.DispatchReport(ctx, f)
		if err != nil {
			return formatter.Document{}, err
		}
		return formatter.DispatchReport(title, f, list, brand, now), nil
	})
}

type buildFunc func(ctx context.Context, brand formatter.Branding, now time.Time) (formatter.Document, error)

func (d *DocumentService) report(ctx context.Context, title string, build buildFunc) (*GeneratedFile, error) {
	started := time.Now()
	brand, err := d.Settings.Branding(ctx)
	if err != nil {
		return nil, err
	}
	now := d.Now().In(d.Location)
	doc, err := build(ctx, brand, now)
	if err != nil {
		return nil, err
	}
	pdf, err := d.render(ctx, "report", doc)
	if err != nil {
		d.Metrics.Document("report", "failed", time.Since(started))
		return nil, err
	}
	d.Metrics.Document("report", "rendered", time.Since(started))
	logger.FromContext(ctx, d.Logger).Infow("report generated", "title", title, "bytes", len(pdf))
	return &GeneratedFile{Name: formatter.ReportFileName(title, now), Data: pdf}, nil
}
