package service

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/helpston-festival/festival-api/internal/models"
	"github.com/helpston-festival/festival-api/internal/repository"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

// ContentService provides typed read access to the file-based content
// store with an in-process cache. The cache is flushed whenever the
// watcher sees a change under the content directory.
type ContentService struct {
	repo   *repository.ContentRepository
	logger *zap.Logger

	mu    sync.RWMutex
	cache contentCache

	watcher *fsnotify.Watcher
	done    chan struct{}
}

type contentCache struct {
	sponsors  []models.Sponsor
	packages  []models.SponsorshipPackage
	charities []models.Charity
	reports   []models.ImpactReport
	albums    []models.GalleryAlbum
	settings  *models.SiteSettings
}

// NewContentService constructs the service.
func NewContentService(repo *repository.ContentRepository, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, logger: logger}
}

// Watch starts invalidating the cache on filesystem changes. Safe to
// skip; the service then caches until process restart.
func (s *ContentService) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.repo.Dir()); err != nil {
		_ = watcher.Close()
		return err
	}
	// Collection subdirectories; missing ones are fine.
	for _, sub := range []string{"sponsors", "sponsorship-packages", "charities", "impact-reports", "gallery-albums"} {
		_ = watcher.Add(s.repo.Dir() + "/" + sub)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop()
	return nil
}

// Close stops the watcher.
func (s *ContentService) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

func (s *ContentService) watchLoop() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.logger.Debug("content changed, flushing cache", zap.String("file", event.Name))
				s.invalidate()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("content watcher error", zap.Error(err))
		}
	}
}

func (s *ContentService) invalidate() {
	s.mu.Lock()
	s.cache = contentCache{}
	s.mu.Unlock()
}

// Sponsors returns sponsor entries, optionally only active ones.
func (s *ContentService) Sponsors(activeOnly bool) ([]models.Sponsor, error) {
	s.mu.RLock()
	cached := s.cache.sponsors
	s.mu.RUnlock()

	if cached == nil {
		loaded, err := s.repo.Sponsors()
		if err != nil {
			return nil, s.contentError(err, "sponsors")
		}
		if loaded == nil {
			loaded = []models.Sponsor{}
		}
		s.mu.Lock()
		s.cache.sponsors = loaded
		s.mu.Unlock()
		cached = loaded
	}

	if !activeOnly {
		return cached, nil
	}
	active := make([]models.Sponsor, 0, len(cached))
	for _, sponsor := range cached {
		// Absent flag means active.
		if sponsor.Active == nil || *sponsor.Active {
			active = append(active, sponsor)
		}
	}
	return active, nil
}

// Packages returns sponsorship packages, optionally only available ones.
func (s *ContentService) Packages(availableOnly bool) ([]models.SponsorshipPackage, error) {
	s.mu.RLock()
	cached := s.cache.packages
	s.mu.RUnlock()

	if cached == nil {
		loaded, err := s.repo.Packages()
		if err != nil {
			return nil, s.contentError(err, "packages")
		}
		if loaded == nil {
			loaded = []models.SponsorshipPackage{}
		}
		s.mu.Lock()
		s.cache.packages = loaded
		s.mu.Unlock()
		cached = loaded
	}

	if !availableOnly {
		return cached, nil
	}
	available := make([]models.SponsorshipPackage, 0, len(cached))
	for _, pkg := range cached {
		if pkg.Available == nil || *pkg.Available {
			available = append(available, pkg)
		}
	}
	return available, nil
}

// Charities returns the charity entries.
func (s *ContentService) Charities() ([]models.Charity, error) {
	s.mu.RLock()
	cached := s.cache.charities
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	loaded, err := s.repo.Charities()
	if err != nil {
		return nil, s.contentError(err, "charities")
	}
	if loaded == nil {
		loaded = []models.Charity{}
	}
	s.mu.Lock()
	s.cache.charities = loaded
	s.mu.Unlock()
	return loaded, nil
}

// ImpactReports returns annual impact reports, newest first.
func (s *ContentService) ImpactReports() ([]models.ImpactReport, error) {
	s.mu.RLock()
	cached := s.cache.reports
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	loaded, err := s.repo.ImpactReports()
	if err != nil {
		return nil, s.contentError(err, "impact reports")
	}
	if loaded == nil {
		loaded = []models.ImpactReport{}
	}
	s.mu.Lock()
	s.cache.reports = loaded
	s.mu.Unlock()
	return loaded, nil
}

// GalleryAlbums returns all photo albums, newest first.
func (s *ContentService) GalleryAlbums() ([]models.GalleryAlbum, error) {
	s.mu.RLock()
	cached := s.cache.albums
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	loaded, err := s.repo.GalleryAlbums()
	if err != nil {
		return nil, s.contentError(err, "gallery albums")
	}
	if loaded == nil {
		loaded = []models.GalleryAlbum{}
	}
	s.mu.Lock()
	s.cache.albums = loaded
	s.mu.Unlock()
	return loaded, nil
}

// GalleryAlbum returns the album for one year.
func (s *ContentService) GalleryAlbum(year string) (*models.GalleryAlbum, error) {
	albums, err := s.GalleryAlbums()
	if err != nil {
		return nil, err
	}
	for i := range albums {
		if albums[i].Year == year || albums[i].Slug == year {
			return &albums[i], nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// SiteSettings returns the global settings singleton.
func (s *ContentService) SiteSettings() (*models.SiteSettings, error) {
	s.mu.RLock()
	cached := s.cache.settings
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	loaded, err := s.repo.SiteSettings()
	if err != nil {
		return nil, s.contentError(err, "site settings")
	}
	s.mu.Lock()
	s.cache.settings = loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *ContentService) contentError(err error, what string) error {
	s.logger.Error("content read failure", zap.String("collection", what), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}
