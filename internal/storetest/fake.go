package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/timeslot"
)

// FakeStore is an in-memory booking.Repository for tests. It mirrors
// the real store's contract, including the atomic conflict recheck in
// CreateAppointment.
type FakeStore struct {
	mu sync.Mutex

	users        map[uint]models.User
	techs        map[uint]models.NailTech
	appointments map[uint]models.Appointment

	nextTechID uint
	nextApptID uint

	// Err, when set, is returned by every store operation. Simulates
	// infrastructure failure.
	Err error
}

func New() *FakeStore {
	return &FakeStore{
		users:        make(map[uint]models.User),
		techs:        make(map[uint]models.NailTech),
		appointments: make(map[uint]models.Appointment),
	}
}

// --------------------------------------------------
// Seeding / inspection
// --------------------------------------------------

func (s *FakeStore) SeedUser(name, email string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{ID: uint(len(s.users) + 1), Name: name, Email: email}
	s.users[u.ID] = u
	return u
}

func (s *FakeStore) SeedTech(name string) models.NailTech {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTechID++
	t := models.NailTech{ID: s.nextTechID, Name: name}
	s.techs[t.ID] = t
	return t
}

func (s *FakeStore) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func (s *FakeStore) TechCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.techs)
}

// --------------------------------------------------
// booking.Repository
// --------------------------------------------------

func (s *FakeStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *FakeStore) GetNailTechByID(_ context.Context, id uint) (*models.NailTech, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.techs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (s *FakeStore) GetOrCreateNailTech(_ context.Context, name string) (*models.NailTech, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, false, s.Err
	}

	for _, t := range s.techs {
		if t.Name == name {
			return &t, false, nil
		}
	}

	s.nextTechID++
	t := models.NailTech{ID: s.nextTechID, Name: name}
	s.techs[t.ID] = t
	return &t, true, nil
}

func (s *FakeStore) ListNailTechs(_ context.Context) ([]models.NailTech, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]models.NailTech, 0, len(s.techs))
	for _, t := range s.techs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *FakeStore) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if ap.NailTechID != nil {
		for _, existing := range s.appointments {
			if existing.NailTechID == nil || *existing.NailTechID != *ap.NailTechID {
				continue
			}
			if domain.Status(existing.Status) == domain.StatusCancelled {
				continue
			}
			if timeslot.SameMinute(existing.StartTime, ap.StartTime) {
				ce := &domain.ConflictError{TechID: *ap.NailTechID}
				if t, ok := s.techs[*ap.NailTechID]; ok {
					ce.TechName = t.Name
				}
				return ce
			}
		}
	}

	s.nextApptID++
	ap.ID = s.nextApptID
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *FakeStore) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	ap, ok := s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.attachTech(&ap)
	return &ap, nil
}

func (s *FakeStore) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	stored, ok := s.appointments[ap.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = ap.Status
	s.appointments[ap.ID] = stored
	return nil
}

func (s *FakeStore) ListAppointmentsForOwner(_ context.Context, userID uint) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.UserID == userID {
			s.attachTech(&ap)
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (s *FakeStore) ListAppointmentsForWindow(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var out []models.Appointment
	for _, ap := range s.appointments {
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			s.attachTech(&ap)
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *FakeStore) attachTech(ap *models.Appointment) {
	if ap.NailTechID == nil {
		return
	}
	if t, ok := s.techs[*ap.NailTechID]; ok {
		ap.NailTech = &t
	}
}

// Compile-time check
var _ domain.Repository = (*FakeStore)(nil)
