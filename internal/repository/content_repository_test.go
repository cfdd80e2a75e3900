package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpston-festival/festival-api/internal/models"
)

func writeContentFile(t *testing.T, root, collection, name, body string) {
	t.Helper()
	dir := filepath.Join(root, collection)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestContentRepositorySponsors(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "sponsors", "zeta-taxis.yaml", "name: Zeta Taxis\ntier: bronze\nactive: true\n")
	writeContentFile(t, root, "sponsors", "acme.yaml", "name: Acme Brewing\nurl: https://acme.example\ntier: gold\ndisplayColor: dark\nactive: true\n")
	writeContentFile(t, root, "sponsors", "no-tier.yaml", "name: Village Shop\n")
	writeContentFile(t, root, "sponsors", "broken.yaml", "{:::\n")

	repo := NewContentRepository(root, nil)
	sponsors, err := repo.Sponsors()
	require.NoError(t, err)
	require.Len(t, sponsors, 3)

	assert.Equal(t, "Acme Brewing", sponsors[0].Name)
	assert.Equal(t, "acme", sponsors[0].Slug)
	assert.Equal(t, models.SponsorTierGold, sponsors[0].Tier)
	assert.Equal(t, "dark", sponsors[0].DisplayColor)

	village := sponsors[1]
	assert.Equal(t, "Village Shop", village.Name)
	assert.Equal(t, models.SponsorTierSupporter, village.Tier)
	assert.Equal(t, "light", village.DisplayColor)
	assert.Nil(t, village.Active)
}

func TestContentRepositoryPackagesSorted(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "sponsorship-packages", "bronze.yaml", "tierName: Bronze\nprice: 100\nsortOrder: 3\navailable: true\n")
	writeContentFile(t, root, "sponsorship-packages", "gold.yaml", "tierName: Gold\nprice: 500\nsortOrder: 1\navailable: true\nfeatured: true\ninclusions:\n  - Logo on banner\n  - Free tickets\n")
	writeContentFile(t, root, "sponsorship-packages", "default-order.yaml", "tierName: Supporter\nprice: 25\n")

	repo := NewContentRepository(root, nil)
	packages, err := repo.Packages()
	require.NoError(t, err)
	require.Len(t, packages, 3)

	assert.Equal(t, "Gold", packages[0].TierName)
	assert.True(t, packages[0].Featured)
	assert.Len(t, packages[0].Inclusions, 2)
	assert.Equal(t, "Bronze", packages[1].TierName)
	assert.Equal(t, "Supporter", packages[2].TierName)
	assert.Equal(t, 10, packages[2].SortOrder)
}

func TestContentRepositoryCharitiesPrimaryFirst(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "charities", "air-ambulance.yaml", "name: Air Ambulance\n")
	writeContentFile(t, root, "charities", "village-hall.yaml", "name: Village Hall Fund\nisPrimary: true\n")

	repo := NewContentRepository(root, nil)
	charities, err := repo.Charities()
	require.NoError(t, err)
	require.Len(t, charities, 2)
	assert.Equal(t, "Village Hall Fund", charities[0].Name)
	assert.True(t, charities[0].IsPrimary)
}

func TestContentRepositoryImpactReportsNewestFirst(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "impact-reports", "2023.yaml", "year: \"2023\"\ntotalRaised: 4200\nbeneficiaries:\n  - name: Village Hall Fund\n    amount: 3000\n")
	writeContentFile(t, root, "impact-reports", "2024.yaml", "totalRaised: 5100\n")

	repo := NewContentRepository(root, nil)
	reports, err := repo.ImpactReports()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "2024", reports[0].Year)
	assert.Equal(t, "2023", reports[1].Year)
	require.Len(t, reports[1].Beneficiaries, 1)
	assert.Equal(t, 3000.0, reports[1].Beneficiaries[0].Amount)
}

func TestContentRepositoryGalleryAlbums(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "gallery-albums", "2024.yaml", "title: Festival 2024\nimages:\n  - image: /photos/2024/01.jpg\n    caption: Opening night\n")

	repo := NewContentRepository(root, nil)
	albums, err := repo.GalleryAlbums()
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "2024", albums[0].Year)
	assert.Equal(t, "Festival 2024", albums[0].Title)
	require.Len(t, albums[0].Images, 1)
	assert.Equal(t, "Opening night", albums[0].Images[0].Caption)
}

func TestContentRepositorySiteSettings(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "site-settings.yaml"),
		[]byte("eventTitle: Helpston Beer Festival\ncontactEmail: hello@example.org\nsocial:\n  facebook: https://facebook.com/example\n"), 0o644))

	repo := NewContentRepository(root, nil)
	settings, err := repo.SiteSettings()
	require.NoError(t, err)
	assert.Equal(t, "Helpston Beer Festival", settings.EventTitle)
	assert.Equal(t, "hello@example.org", settings.ContactEmail)
	assert.Equal(t, "https://facebook.com/example", settings.Social.Facebook)
}

func TestContentRepositoryMissingCollections(t *testing.T) {
	repo := NewContentRepository(t.TempDir(), nil)

	sponsors, err := repo.Sponsors()
	require.NoError(t, err)
	assert.Empty(t, sponsors)

	_, err = repo.SiteSettings()
	assert.Error(t, err)
}
