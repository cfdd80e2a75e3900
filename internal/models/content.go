package models

// SponsorTier ranks sponsors on the public site.
type SponsorTier string

const (
	SponsorTierPlatinum  SponsorTier = "platinum"
	SponsorTierGold      SponsorTier = "gold"
	SponsorTierSilver    SponsorTier = "silver"
	SponsorTierBronze    SponsorTier = "bronze"
	SponsorTierSupporter SponsorTier = "supporter"
)

// Sponsor is a published sponsor entry from the content store.
type Sponsor struct {
	Slug         string      `yaml:"-" json:"slug"`
	Name         string      `yaml:"name" json:"name"`
	URL          string      `yaml:"url" json:"url,omitempty"`
	Logo         string      `yaml:"logo" json:"logo,omitempty"`
	Tier         SponsorTier `yaml:"tier" json:"tier"`
	DisplayColor string      `yaml:"displayColor" json:"displayColor"`
	Active       *bool       `yaml:"active" json:"active"`
}

// SponsorshipPackage describes a purchasable sponsorship tier.
type SponsorshipPackage struct {
	Slug       string   `yaml:"-" json:"slug"`
	TierName   string   `yaml:"tierName" json:"tierName"`
	Price      float64  `yaml:"price" json:"price"`
	SortOrder  int      `yaml:"sortOrder" json:"sortOrder"`
	Available  *bool    `yaml:"available" json:"available"`
	Featured   bool     `yaml:"featured" json:"featured"`
	Inclusions []string `yaml:"inclusions" json:"inclusions,omitempty"`
}

// Charity is a supported charity entry.
type Charity struct {
	Slug         string `yaml:"-" json:"slug"`
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description,omitempty"`
	Logo         string `yaml:"logo" json:"logo,omitempty"`
	Website      string `yaml:"website" json:"website,omitempty"`
	YearFeatured int    `yaml:"yearFeatured" json:"yearFeatured,omitempty"`
	IsPrimary    bool   `yaml:"isPrimary" json:"isPrimary"`
}

// Beneficiary records a single allocation inside an impact report.
type Beneficiary struct {
	Name        string  `yaml:"name" json:"name"`
	Amount      float64 `yaml:"amount" json:"amount"`
	Description string  `yaml:"description" json:"description,omitempty"`
}

// ImpactReport summarises funds raised and allocated for one year.
type ImpactReport struct {
	Slug          string        `yaml:"-" json:"slug"`
	Year          string        `yaml:"year" json:"year"`
	TotalRaised   float64       `yaml:"totalRaised" json:"totalRaised"`
	Beneficiaries []Beneficiary `yaml:"beneficiaries" json:"beneficiaries,omitempty"`
}

// GalleryImage is one photo inside an album.
type GalleryImage struct {
	Image        string `yaml:"image" json:"image"`
	Caption      string `yaml:"caption" json:"caption,omitempty"`
	Photographer string `yaml:"photographer" json:"photographer,omitempty"`
}

// GalleryAlbum groups event photos by year.
type GalleryAlbum struct {
	Slug        string         `yaml:"-" json:"slug"`
	Year        string         `yaml:"year" json:"year"`
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description,omitempty"`
	CoverImage  string         `yaml:"coverImage" json:"coverImage,omitempty"`
	Images      []GalleryImage `yaml:"images" json:"images,omitempty"`
}

// SocialLinks holds the festival's social media URLs.
type SocialLinks struct {
	Facebook  string `yaml:"facebook" json:"facebook,omitempty"`
	Instagram string `yaml:"instagram" json:"instagram,omitempty"`
	Twitter   string `yaml:"twitter" json:"twitter,omitempty"`
}

// SiteSettings is the global site configuration singleton.
type SiteSettings struct {
	EventTitle   string      `yaml:"eventTitle" json:"eventTitle"`
	EventDate    string      `yaml:"eventDate" json:"eventDate,omitempty"`
	EventEndDate string      `yaml:"eventEndDate" json:"eventEndDate,omitempty"`
	ContactEmail string      `yaml:"contactEmail" json:"contactEmail"`
	TicketLink   string      `yaml:"ticketLink" json:"ticketLink,omitempty"`
	Social       SocialLinks `yaml:"social" json:"social"`
}
