package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"lrbooking/models"
)

// MemoryStore implements every repository interface in process. It backs
// DB_TYPE=memory and the service tests.
type MemoryStore struct {
	mu         sync.Mutex
	seq        int64
	bookings   map[string]*models.Booking
	settings   *models.CompanySettings
	options    map[string][]string
	consignees map[string][]models.Party
	addresses  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seq:        models.FirstSequence - 1,
		bookings:   make(map[string]*models.Booking),
		options:    make(map[string][]string),
		consignees: make(map[string][]models.Party),
		addresses:  make(map[string]string),
	}
}

func (m *MemoryStore) NextSequence(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

func (m *MemoryStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if n, ok := models.ParseID(b.ID); ok && n > m.seq {
		m.seq = n
	}
	m.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (m *MemoryStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneBooking(m.bookings[id]), nil
}

func (m *MemoryStore) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Booking
	for _, b := range m.bookings {
		if filter.Match(b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateBooking(ctx context.Context, id string, patch EditPatch) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(b)
	return cloneBooking(b), nil
}

func (m *MemoryStore) ApplyTransition(ctx context.Context, id string, from models.Status, patch TransitionPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	patch.Apply(b)
	return true, nil
}

func (m *MemoryStore) UpdatePDFURL(ctx context.Context, id, url string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		b.PDFURL = url
		b.UpdatedAt = &t
	}
	return nil
}

func (m *MemoryStore) DeleteBooking(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	delete(m.bookings, id)
	return b, nil
}

func (m *MemoryStore) SaveSettings(ctx context.Context, s *models.CompanySettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	cp := *s
	cp.Mobile = append([]models.MobileEntry(nil), s.Mobile...)
	m.settings = &cp
	return nil
}

func (m *MemoryStore) GetSettings(ctx context.Context) (*models.CompanySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, nil
	}
	cp := *m.settings
	cp.Mobile = append([]models.MobileEntry(nil), m.settings.Mobile...)
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.options[key]...), nil
}

func (m *MemoryStore) Add(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.options[key] {
		if v == value {
			return nil
		}
	}
	m.options[key] = append(m.options[key], value)
	return nil
}

func (m *MemoryStore) Consignees(ctx context.Context, destination string) ([]models.Party, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Party(nil), m.consignees[destination]...), nil
}

func (m *MemoryStore) AddConsignee(ctx context.Context, destination string, p models.Party) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.consignees[destination] {
		if existing.Key() == p.Key() {
			return nil
		}
	}
	m.consignees[destination] = append(m.consignees[destination], p)
	return nil
}

func (m *MemoryStore) Address(ctx context.Context, destination string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addresses[destination], nil
}

func (m *MemoryStore) AddAddress(ctx context.Context, destination, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.addresses[destination]; !ok {
		m.addresses[destination] = address
	}
	return nil
}
