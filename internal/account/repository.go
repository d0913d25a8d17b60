package account

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already in use")
	ErrEmailTaken      = errors.New("email already in use")

	// ErrLocked is the sticky lockout state. Only an out-of-band unlock
	// clears it.
	ErrLocked = errors.New("account is locked")
)

type Repository interface {
	CreateAccount(account *Account, profile *Profile) error
	GetAccountByUsername(username string) (*Account, error)
	GetAccountByEmail(email string) (*Account, error)
	GetAccountByID(id uint) (*Account, error)
	GetProfileByAccountID(accountID uint) (*Profile, error)
	GetProfileByEmail(email string) (*Profile, error)
	UpdatePassword(accountID uint, passwordHash string) error

	// IncrementLoginAttempts bumps the counter atomically at the row and
	// returns the new value, so concurrent failures cannot slip past the
	// lockout threshold.
	IncrementLoginAttempts(profileID uint) (int, error)
	ResetLoginAttempts(profileID uint) error
	Lock(profileID uint, failure FailureContext) error
	VerifyEmail(profileID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAccount(account *Account, profile *Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		profile.AccountID = account.ID
		return tx.Create(profile).Error
	})
}

func (r *repository) GetAccountByUsername(username string) (*Account, error) {
	var account Account
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) GetAccountByEmail(email string) (*Account, error) {
	var account Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) GetAccountByID(id uint) (*Account, error) {
	var account Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) GetProfileByAccountID(accountID uint) (*Profile, error) {
	var profile Profile
	if err := r.db.Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) GetProfileByEmail(email string) (*Profile, error) {
	var profile Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) UpdatePassword(accountID uint, passwordHash string) error {
	return r.db.Model(&Account{}).Where("id = ?", accountID).
		Update("password_hash", passwordHash).Error
}

func (r *repository) IncrementLoginAttempts(profileID uint) (int, error) {
	var attempts int
	err := r.db.Raw(
		"UPDATE profiles SET login_attempts = login_attempts + 1 WHERE id = ? RETURNING login_attempts",
		profileID,
	).Scan(&attempts).Error
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

func (r *repository) ResetLoginAttempts(profileID uint) error {
	return r.db.Model(&Profile{}).Where("id = ?", profileID).
		Update("login_attempts", 0).Error
}

func (r *repository) Lock(profileID uint, failure FailureContext) error {
	return r.db.Model(&Profile{}).Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"is_locked":             true,
			"last_failed_ip":        failure.IP,
			"last_failed_location":  failure.Location,
			"last_failed_latitude":  failure.Latitude,
			"last_failed_longitude": failure.Longitude,
		}).Error
}

func (r *repository) VerifyEmail(profileID uint) error {
	return r.db.Model(&Profile{}).Where("id = ?", profileID).
		Update("email_verified", true).Error
}
