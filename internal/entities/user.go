package entities

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// A valid email only needs a local part, an '@' and a domain without spaces.
var emailPattern = regexp.MustCompile(`^(.+)@(\S+)$`)

// User owns a set of catalog album IDs. The set itself is stored in the
// user_albums table and loaded into AlbumIDs by the users repository.
type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:255;not null" json:"name"`
	Email     string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	AlbumIDs  []uuid.UUID `gorm:"-" json:"albumIds"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Validate checks the user's name and email.
func (u User) Validate() error {
	return wrapValidation(validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.Required.Error("must not be blank"), notBlank),
		validation.Field(&u.Email,
			validation.Required.Error("must not be blank"),
			validation.Match(emailPattern).Error("Email is not valid"),
		),
	))
}

// UserAlbum is one membership row of a user's library.
type UserAlbum struct {
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	AlbumID   string `gorm:"primaryKey;size:36;index"`
	CreatedAt time.Time
}

func (UserAlbum) TableName() string {
	return "user_albums"
}
