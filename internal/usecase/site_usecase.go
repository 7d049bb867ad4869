package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

type siteUseCase struct {
	*controller
	sites    SiteRepository
	users    UserRepository
	machines MachineRepository
}

// NewSiteUseCase creates a SiteUseCase. The repositories must share one session.
func NewSiteUseCase(
	sites SiteRepository,
	users UserRepository,
	machines MachineRepository,
	persistence notification.Observer,
	logger *slog.Logger,
	opts ...Option,
) SiteUseCase {
	return &siteUseCase{
		controller: newController(logger, persistence, opts...),
		sites:      sites,
		users:      users,
		machines:   machines,
	}
}

func (s *siteUseCase) Create(ctx context.Context, input *SiteInput) (*domain.Site, error) {
	site, err := s.save(ctx, 0, input)
	if err != nil {
		return nil, err
	}
	s.NotifyObservers(ctx, fmt.Sprintf("Site created: %d %s", site.ID, site.Name))
	return site, nil
}

func (s *siteUseCase) Update(ctx context.Context, siteID int, input *SiteInput) (*domain.Site, error) {
	site, err := s.save(ctx, siteID, input)
	if err != nil {
		return nil, err
	}
	s.NotifyObservers(ctx, fmt.Sprintf("Site updated: %d %s", site.ID, site.Name))
	return site, nil
}

// save creates the site when siteID is zero and replaces it otherwise.
func (s *siteUseCase) save(ctx context.Context, siteID int, input *SiteInput) (*domain.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *domain.Site
	status := domain.StatusActive
	if siteID != 0 {
		var err error
		if existing, err = mustGet(ctx, s.sites, siteID, domain.ErrSiteNotFound); err != nil {
			return nil, err
		}
		status = input.Status
	}

	responsible, err := resolve(ctx, s.users, input.ResponsibleID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	builder := domain.NewSiteBuilder().
		WithName(input.Name).
		WithStatus(status).
		WithResponsible(responsible)
	if !input.Address.IsZero() {
		a := input.Address
		builder.WithAddress(a.Street, a.Number, a.PostalCode, a.City)
	}
	site, err := builder.Build()
	if err != nil {
		return nil, err
	}

	if existing == nil {
		err = unitOfWork(ctx, s.sites, func() error {
			return s.sites.Insert(ctx, site)
		})
		if err != nil {
			return nil, err
		}
		return site, nil
	}

	site.ID = existing.ID
	if existing.Address != nil {
		site.Address.ID = existing.Address.ID
	}
	err = unitOfWork(ctx, s.sites, func() error {
		_, err := s.sites.Update(ctx, site)
		return err
	})
	if err != nil {
		return nil, err
	}
	return site, s.attachMachines(ctx, site)
}

func (s *siteUseCase) Get(ctx context.Context, siteID int) (*domain.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	site, err := mustGet(ctx, s.sites, siteID, domain.ErrSiteNotFound)
	if err != nil {
		return nil, err
	}
	if site.Responsible != nil {
		if site.Responsible, err = resolve(ctx, s.users, site.Responsible.ID, domain.ErrUserNotFound); err != nil {
			return nil, err
		}
	}
	return site, s.attachMachines(ctx, site)
}

func (s *siteUseCase) attachMachines(ctx context.Context, site *domain.Site) error {
	machines, err := s.machines.FindBy(ctx, "site_id", site.ID)
	if err != nil {
		return err
	}
	site.AttachMachines(machines...)
	return nil
}

func (s *siteUseCase) List(ctx context.Context) ([]*domain.Site, error) {
	return s.ListFiltered(ctx, SiteFilter{})
}

// ListFiltered loads every site with its responsible user and machines resolved, then
// keeps those matching filter.
func (s *siteUseCase) ListFiltered(ctx context.Context, filter SiteFilter) ([]*domain.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sites, err := s.sites.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	machines, err := s.machines.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[int]*domain.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}
	sitesByID := make(map[int]*domain.Site, len(sites))
	for _, site := range sites {
		sitesByID[site.ID] = site
		if site.Responsible != nil {
			if user, ok := usersByID[site.Responsible.ID]; ok {
				site.Responsible = user
			}
		}
	}
	for _, machine := range machines {
		if machine.Site() == nil {
			continue
		}
		if site, ok := sitesByID[machine.Site().ID]; ok {
			machine.SetSite(site)
		}
	}

	filtered := make([]*domain.Site, 0, len(sites))
	for _, site := range sites {
		if filter.matches(site) {
			filtered = append(filtered, site)
		}
	}
	return filtered, nil
}

func (f SiteFilter) matches(site *domain.Site) bool {
	if f.Name != "" && !strings.EqualFold(site.Name, f.Name) {
		return false
	}
	if f.Status != "" && site.Status != f.Status {
		return false
	}
	if f.ResponsibleID != 0 && (site.Responsible == nil || site.Responsible.ID != f.ResponsibleID) {
		return false
	}
	count := site.MachineCount()
	if count < f.MinMachines || (f.MaxMachines > 0 && count > f.MaxMachines) {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	haystack := []string{site.Name}
	if site.Address != nil {
		haystack = append(haystack, site.Address.City)
	}
	if site.Responsible != nil {
		haystack = append(haystack, site.Responsible.FullName())
	}
	for _, candidate := range haystack {
		if strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}
	return false
}
