package account

import (
	"sync"
)

// MemoryRepository is an in-memory Repository used by tests across the
// security packages.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[uint]*Account
	profiles map[uint]*Profile
	nextID   uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[uint]*Account),
		profiles: make(map[uint]*Profile),
		nextID:   1,
	}
}

func (r *MemoryRepository) CreateAccount(account *Account, profile *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Username == account.Username {
			return ErrUsernameTaken
		}
		if a.Email == account.Email {
			return ErrEmailTaken
		}
	}

	account.ID = r.nextID
	profile.ID = r.nextID
	profile.AccountID = account.ID
	r.nextID++

	r.accounts[account.ID] = account
	r.profiles[profile.ID] = profile
	return nil
}

func (r *MemoryRepository) GetAccountByUsername(username string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *MemoryRepository) GetAccountByEmail(email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *MemoryRepository) GetAccountByID(id uint) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

func (r *MemoryRepository) GetProfileByAccountID(accountID uint) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (r *MemoryRepository) GetProfileByEmail(email string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (r *MemoryRepository) UpdatePassword(accountID uint, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func (r *MemoryRepository) IncrementLoginAttempts(profileID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return 0, ErrProfileNotFound
	}
	p.LoginAttempts++
	return p.LoginAttempts, nil
}

func (r *MemoryRepository) ResetLoginAttempts(profileID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return ErrProfileNotFound
	}
	p.LoginAttempts = 0
	return nil
}

func (r *MemoryRepository) Lock(profileID uint, failure FailureContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return ErrProfileNotFound
	}
	p.Locked = true
	ip, loc := failure.IP, failure.Location
	p.LastFailedIP = &ip
	p.LastFailedLocation = &loc
	p.LastFailedLatitude = failure.Latitude
	p.LastFailedLongitude = failure.Longitude
	return nil
}

func (r *MemoryRepository) VerifyEmail(profileID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return ErrProfileNotFound
	}
	p.EmailVerified = true
	return nil
}
