package entities

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Searchable album fields, in the order they are queried.
const (
	AlbumFieldTitle       = "title"
	AlbumFieldArtist      = "artist"
	AlbumFieldReleaseYear = "releaseYear"
	AlbumFieldCoverURL    = "coverURL"
)

var releaseYearPattern = regexp.MustCompile(`^[0-9]{1,4}$`)

// Album is a catalog document. The ID is assigned on first save and never
// changes afterwards.
type Album struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"index;size:512;not null" json:"title"`
	Artist      string    `gorm:"index;size:256;not null" json:"artist"`
	ReleaseYear string    `gorm:"size:4" json:"releaseYear,omitempty"`
	CoverURL    string    `gorm:"size:2048" json:"coverURL,omitempty"`
	// SearchText holds the lower-cased tokens of every searchable field. It is
	// written by the catalog store on save.
	SearchText  string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Album) TableName() string {
	return "albums"
}

// HasID reports whether an identifier has already been assigned.
func (a *Album) HasID() bool {
	return a.ID != uuid.Nil
}

// Validate checks the album's required fields and the release year format.
func (a Album) Validate() error {
	return wrapValidation(validation.ValidateStruct(&a,
		validation.Field(&a.Title, validation.Required.Error("must not be blank"), notBlank),
		validation.Field(&a.Artist, validation.Required.Error("must not be blank"), notBlank),
		validation.Field(&a.ReleaseYear,
			validation.Match(releaseYearPattern).Error("must be a number of up to 4 digits"),
		),
	))
}

// MultiFieldQuery is a free-text query matched against several album fields.
// A document matches when the text matches any one of the fields.
type MultiFieldQuery struct {
	Text   string
	Fields []string
}
