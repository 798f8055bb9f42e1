package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateUsername is returned when an insert or update collides with
// the unique index on username.
var ErrDuplicateUsername = errors.New("username already exists")

// UserStore wraps the gorm handle with the small set of operations the
// application performs on users. There is no delete and no listing.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername returns the user with the given username, or nil when no
// such user exists.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	res := s.db.WithContext(ctx).Where("username = ?", username).First(&u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}

	return &u, nil
}

// FindByID returns the user with the given opaque id, or nil when no such
// user exists.
func (s *UserStore) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	res := s.db.WithContext(ctx).Where("user_id = ?", id).First(&u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}

	return &u, nil
}

// Create inserts a new user, assigning its immutable UserID. The unique
// index on username is the authoritative duplicate check; collisions come
// back as ErrDuplicateUsername.
func (s *UserStore) Create(ctx context.Context, u *User) error {
	if u.UserID == "" {
		u.UserID = uuid.New().String()
	}

	res := s.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	return nil
}

// Save persists every pending field change on u in one write.
func (s *UserStore) Save(ctx context.Context, u *User) error {
	res := s.db.WithContext(ctx).Save(u)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	return nil
}

func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateUsername
	}

	return err
}
