package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpston-festival/festival-api/internal/repository"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

func writeContent(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newContentService(t *testing.T, root string) *ContentService {
	repo := repository.NewContentRepository(root, nil)
	return NewContentService(repo, nil)
}

func TestContentServiceSponsorsActiveFilter(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "sponsors/active.yaml", "name: Active Sponsor\ntier: gold\nactive: true\n")
	writeContent(t, root, "sponsors/retired.yaml", "name: Retired Sponsor\ntier: bronze\nactive: false\n")
	writeContent(t, root, "sponsors/unflagged.yaml", "name: Unflagged Sponsor\n")

	svc := newContentService(t, root)

	active, err := svc.Sponsors(true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, sponsor := range active {
		assert.NotEqual(t, "Retired Sponsor", sponsor.Name)
	}

	all, err := svc.Sponsors(false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestContentServicePackagesAvailabilityFilter(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "sponsorship-packages/gold.yaml", "tierName: Gold\nprice: 500\nsortOrder: 1\navailable: true\n")
	writeContent(t, root, "sponsorship-packages/sold-out.yaml", "tierName: Platinum\nprice: 1000\nsortOrder: 0\navailable: false\n")

	svc := newContentService(t, root)

	available, err := svc.Packages(true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Gold", available[0].TierName)

	all, err := svc.Packages(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestContentServiceCachesUntilInvalidated(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "sponsors/first.yaml", "name: First Sponsor\n")

	svc := newContentService(t, root)

	sponsors, err := svc.Sponsors(false)
	require.NoError(t, err)
	require.Len(t, sponsors, 1)

	// A new file is invisible until the cache is dropped.
	writeContent(t, root, "sponsors/second.yaml", "name: Second Sponsor\n")
	sponsors, err = svc.Sponsors(false)
	require.NoError(t, err)
	assert.Len(t, sponsors, 1)

	svc.invalidate()
	sponsors, err = svc.Sponsors(false)
	require.NoError(t, err)
	assert.Len(t, sponsors, 2)
}

func TestContentServiceGalleryAlbumByYear(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "gallery-albums/2024.yaml", "title: Festival 2024\n")
	writeContent(t, root, "gallery-albums/2023.yaml", "title: Festival 2023\n")

	svc := newContentService(t, root)

	album, err := svc.GalleryAlbum("2023")
	require.NoError(t, err)
	assert.Equal(t, "Festival 2023", album.Title)

	_, err = svc.GalleryAlbum("1999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestContentServiceSiteSettings(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "site-settings.yaml", "eventTitle: Helpston Beer Festival\ncontactEmail: hello@example.org\n")

	svc := newContentService(t, root)

	settings, err := svc.SiteSettings()
	require.NoError(t, err)
	assert.Equal(t, "Helpston Beer Festival", settings.EventTitle)

	// Missing settings file surfaces as a generic failure.
	missing := newContentService(t, t.TempDir())
	_, err = missing.SiteSettings()
	assert.Error(t, err)
}

func TestContentServiceWatchInvalidatesOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sponsors"), 0o755))
	writeContent(t, root, "sponsors/first.yaml", "name: First Sponsor\n")

	svc := newContentService(t, root)
	require.NoError(t, svc.Watch())
	defer svc.Close()

	sponsors, err := svc.Sponsors(false)
	require.NoError(t, err)
	require.Len(t, sponsors, 1)

	writeContent(t, root, "sponsors/second.yaml", "name: Second Sponsor\n")

	assert.Eventually(t, func() bool {
		sponsors, err := svc.Sponsors(false)
		return err == nil && len(sponsors) == 2
	}, 2*time.Second, 50*time.Millisecond)
}
