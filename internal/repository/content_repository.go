package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/helpston-festival/festival-api/internal/models"
)

// Content store collection directories.
const (
	sponsorsDir  = "sponsors"
	packagesDir  = "sponsorship-packages"
	charitiesDir = "charities"
	impactDir    = "impact-reports"
	galleriesDir = "gallery-albums"

	siteSettingsFile = "site-settings.yaml"
)

// ContentRepository reads typed entities from the file-based content
// store maintained by the CMS. Unreadable entries are skipped and
// logged, never fatal.
type ContentRepository struct {
	dir    string
	logger *zap.Logger
}

// NewContentRepository constructs the repository.
func NewContentRepository(dir string, logger *zap.Logger) *ContentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentRepository{dir: dir, logger: logger}
}

// Dir exposes the content root, used by the change watcher.
func (r *ContentRepository) Dir() string {
	return r.dir
}

// Sponsors returns all sponsor entries sorted by name.
func (r *ContentRepository) Sponsors() ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	err := r.eachDocument(sponsorsDir, func(slug string, raw []byte) {
		var sponsor models.Sponsor
		if err := yaml.Unmarshal(raw, &sponsor); err != nil {
			r.logger.Warn("skipping malformed sponsor", zap.String("slug", slug), zap.Error(err))
			return
		}
		sponsor.Slug = slug
		if sponsor.Tier == "" {
			sponsor.Tier = models.SponsorTierSupporter
		}
		if sponsor.DisplayColor == "" {
			sponsor.DisplayColor = "light"
		}
		sponsors = append(sponsors, sponsor)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(sponsors, func(i, j int) bool { return sponsors[i].Name < sponsors[j].Name })
	return sponsors, nil
}

// Packages returns all sponsorship packages sorted by sortOrder.
func (r *ContentRepository) Packages() ([]models.SponsorshipPackage, error) {
	var packages []models.SponsorshipPackage
	err := r.eachDocument(packagesDir, func(slug string, raw []byte) {
		var pkg models.SponsorshipPackage
		if err := yaml.Unmarshal(raw, &pkg); err != nil {
			r.logger.Warn("skipping malformed package", zap.String("slug", slug), zap.Error(err))
			return
		}
		pkg.Slug = slug
		if pkg.SortOrder == 0 {
			pkg.SortOrder = 10
		}
		packages = append(packages, pkg)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].SortOrder < packages[j].SortOrder })
	return packages, nil
}

// Charities returns all charity entries, primary charity first.
func (r *ContentRepository) Charities() ([]models.Charity, error) {
	var charities []models.Charity
	err := r.eachDocument(charitiesDir, func(slug string, raw []byte) {
		var charity models.Charity
		if err := yaml.Unmarshal(raw, &charity); err != nil {
			r.logger.Warn("skipping malformed charity", zap.String("slug", slug), zap.Error(err))
			return
		}
		charity.Slug = slug
		charities = append(charities, charity)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(charities, func(i, j int) bool {
		if charities[i].IsPrimary != charities[j].IsPrimary {
			return charities[i].IsPrimary
		}
		return charities[i].Name < charities[j].Name
	})
	return charities, nil
}

// ImpactReports returns annual reports, most recent year first.
func (r *ContentRepository) ImpactReports() ([]models.ImpactReport, error) {
	var reports []models.ImpactReport
	err := r.eachDocument(impactDir, func(slug string, raw []byte) {
		var report models.ImpactReport
		if err := yaml.Unmarshal(raw, &report); err != nil {
			r.logger.Warn("skipping malformed impact report", zap.String("slug", slug), zap.Error(err))
			return
		}
		report.Slug = slug
		if report.Year == "" {
			report.Year = slug
		}
		reports = append(reports, report)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Year > reports[j].Year })
	return reports, nil
}

// GalleryAlbums returns photo albums, most recent year first.
func (r *ContentRepository) GalleryAlbums() ([]models.GalleryAlbum, error) {
	var albums []models.GalleryAlbum
	err := r.eachDocument(galleriesDir, func(slug string, raw []byte) {
		var album models.GalleryAlbum
		if err := yaml.Unmarshal(raw, &album); err != nil {
			r.logger.Warn("skipping malformed gallery album", zap.String("slug", slug), zap.Error(err))
			return
		}
		album.Slug = slug
		if album.Year == "" {
			album.Year = slug
		}
		albums = append(albums, album)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(albums, func(i, j int) bool { return albums[i].Year > albums[j].Year })
	return albums, nil
}

// SiteSettings reads the global settings singleton.
func (r *ContentRepository) SiteSettings() (*models.SiteSettings, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, siteSettingsFile))
	if err != nil {
		return nil, fmt.Errorf("read site settings: %w", err)
	}
	var settings models.SiteSettings
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("parse site settings: %w", err)
	}
	return &settings, nil
}

func (r *ContentRepository) eachDocument(collection string, fn func(slug string, raw []byte)) error {
	dir := filepath.Join(r.dir, collection)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read content collection %s: %w", collection, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			r.logger.Warn("skipping unreadable content file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		slug := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
		fn(slug, raw)
	}
	return nil
}
