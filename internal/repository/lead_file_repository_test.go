package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpston-festival/festival-api/internal/models"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

func newFileRepo(t *testing.T) *FileLeadRepository {
	repo, err := NewFileLeadRepository(t.TempDir(), nil)
	require.NoError(t, err)
	return repo
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Brewing Co.":      "acme-brewing-co",
		"  The  King's  Head  ": "the-kings-head",
		"Salt & Vinegar Ltd":    "salt-vinegar-ltd",
		"---":                   "lead",
		"":                      "lead",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestFileLeadRepositoryCreateAndGet(t *testing.T) {
	repo := newFileRepo(t)

	lead, err := repo.Create(context.Background(), models.CreateLeadInput{
		CompanyName:       "Acme Brewing Co.",
		ContactName:       "Jane Smith",
		Email:             "Jane@Acme.co.uk",
		Phone:             "07700900000",
		InterestedPackage: "gold",
		Message:           "Looking forward to it",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-brewing-co", lead.ID)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, "jane@acme.co.uk", lead.Email)

	got, err := repo.GetByID(context.Background(), "acme-brewing-co")
	require.NoError(t, err)
	assert.Equal(t, "Acme Brewing Co.", got.CompanyName)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "07700900000", *got.Phone)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestFileLeadRepositorySlugCollision(t *testing.T) {
	repo := newFileRepo(t)

	input := models.CreateLeadInput{
		CompanyName:       "Acme Brewing",
		ContactName:       "Jane Smith",
		Email:             "jane@acme.co.uk",
		InterestedPackage: "gold",
	}
	first, err := repo.Create(context.Background(), input)
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), input)
	require.NoError(t, err)
	third, err := repo.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "acme-brewing", first.ID)
	assert.Equal(t, "acme-brewing-1", second.ID)
	assert.Equal(t, "acme-brewing-2", third.ID)
}

func TestFileLeadRepositoryGetMissing(t *testing.T) {
	repo := newFileRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestFileLeadRepositoryListFilters(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	for _, c := range []struct {
		company string
		status  models.LeadStatus
	}{
		{"Alpha Ales", models.LeadStatusNew},
		{"Bravo Brewing", models.LeadStatusContacted},
		{"Charlie Casks", models.LeadStatusConfirmed},
	} {
		lead, err := repo.Create(ctx, models.CreateLeadInput{
			CompanyName:       c.company,
			ContactName:       "Contact",
			Email:             "hello@example.com",
			InterestedPackage: "silver",
		})
		require.NoError(t, err)
		if c.status != models.LeadStatusNew {
			_, err = repo.UpdateStatus(ctx, lead.ID, c.status, "admin")
			require.NoError(t, err)
		}
	}

	all, err := repo.List(ctx, models.LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	contacted, err := repo.List(ctx, models.LeadFilter{Status: []models.LeadStatus{models.LeadStatusContacted}})
	require.NoError(t, err)
	require.Len(t, contacted, 1)
	assert.Equal(t, "Bravo Brewing", contacted[0].CompanyName)

	search, err := repo.List(ctx, models.LeadFilter{Search: "charlie"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Charlie Casks", search[0].CompanyName)

	sorted, err := repo.List(ctx, models.LeadFilter{SortBy: "company_name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "Alpha Ales", sorted[0].CompanyName)
	assert.Equal(t, "Charlie Casks", sorted[2].CompanyName)

	paged, err := repo.List(ctx, models.LeadFilter{SortBy: "company_name", SortOrder: "asc", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Bravo Brewing", paged[0].CompanyName)
}

func TestFileLeadRepositoryArchiveRestoreRoundTrip(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	lead, err := repo.Create(ctx, models.CreateLeadInput{
		CompanyName:       "Acme Brewing",
		ContactName:       "Jane Smith",
		Email:             "jane@acme.co.uk",
		InterestedPackage: "gold",
	})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, lead.ID, models.LeadStatusConfirmed, "admin")
	require.NoError(t, err)

	archived, err := repo.Archive(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusArchived, archived.Status)
	require.NotNil(t, archived.ArchivedAt)

	visible, err := repo.List(ctx, models.LeadFilter{})
	require.NoError(t, err)
	assert.Empty(t, visible)

	restored, err := repo.Restore(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusNew, restored.Status)
	assert.Nil(t, restored.ArchivedAt)
}

func TestFileLeadRepositoryReadsYmlExtension(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileLeadRepository(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()

	doc := "companyName: Yml Brewery\n" +
		"contactName: Jane Smith\n" +
		"email: jane@yml.co.uk\n" +
		"interestedPackage: bronze\n" +
		"status: new\n" +
		"createdAt: 2026-06-01T12:00:00Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yml-brewery.yml"), []byte(doc), 0o644))

	leads, err := repo.List(ctx, models.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "yml-brewery", leads[0].ID)
	assert.Equal(t, "Yml Brewery", leads[0].CompanyName)

	got, err := repo.GetByID(ctx, "yml-brewery")
	require.NoError(t, err)
	assert.Equal(t, "jane@yml.co.uk", got.Email)

	// Updates rewrite the existing .yml file rather than forking a
	// .yaml copy alongside it.
	_, err = repo.UpdateStatus(ctx, "yml-brewery", models.LeadStatusContacted, "admin")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "yml-brewery.yaml"))
	assert.True(t, os.IsNotExist(err))

	leads, err = repo.List(ctx, models.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, models.LeadStatusContacted, leads[0].Status)
}

func TestFileLeadRepositoryToleratesMalformedFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileLeadRepository(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Create(ctx, models.CreateLeadInput{
		CompanyName:       "Good Brewery",
		ContactName:       "Jane Smith",
		Email:             "jane@good.co.uk",
		InterestedPackage: "bronze",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{:::"), 0o644))

	leads, err := repo.List(ctx, models.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Good Brewery", leads[0].CompanyName)
}

func TestFileLeadRepositoryHistoryUnsupported(t *testing.T) {
	repo := newFileRepo(t)

	_, err := repo.History(context.Background(), "anything")
	assert.ErrorIs(t, err, appErrors.ErrHistoryUnsupported)
}

func TestFileLeadRepositoryStats(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	for i, status := range []models.LeadStatus{models.LeadStatusNew, models.LeadStatusNew, models.LeadStatusDeclined} {
		lead, err := repo.Create(ctx, models.CreateLeadInput{
			CompanyName:       "Brewery " + string(rune('A'+i)),
			ContactName:       "Contact",
			Email:             "hello@example.com",
			InterestedPackage: "silver",
		})
		require.NoError(t, err)
		if status != models.LeadStatusNew {
			_, err = repo.UpdateStatus(ctx, lead.ID, status, "admin")
			require.NoError(t, err)
		}
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.New)
	assert.Equal(t, 1, stats.Declined)
}
