package directory

import (
	"errors"
	"fmt"
	"sync"

	"ticketflowapp/ticketflow/internal/feedback"
	"ticketflowapp/ticketflow/internal/storage"
	"ticketflowapp/ticketflow/internal/validate"
)

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNotFound       = errors.New("user not found")
)

const usersKey = "ticketapp_users"

// User is the persisted account record. The password stays plaintext here;
// this is a local single-user demo store, not a credential vault.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type Directory struct {
	store storage.Store
	mu    sync.Mutex
}

func New(store storage.Store) (*Directory, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Directory{store: store}, nil
}

// Signup validates the input, rejects an already-registered email, and
// appends the new account, persisting the whole collection. Validation
// failures come back as feedback.FieldErrors; nothing is written on any
// failure path.
func (d *Directory) Signup(in SignupInput) error {
	if errs := validateSignup(in); errs != nil {
		return errs
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == in.Email {
			return ErrDuplicateEmail
		}
	}

	users = append(users, User{Email: in.Email, Password: in.Password, Name: in.Name})
	if err := d.store.Set(usersKey, users); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

// FindByCredentials scans for an exact match on both email and password.
// Case-sensitive, no normalization; first match wins.
func (d *Directory) FindByCredentials(email, password string) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// Count reports the current collection size.
func (d *Directory) Count() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (d *Directory) load() ([]User, error) {
	var users []User
	if _, err := d.store.Get(usersKey, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func validateSignup(in SignupInput) feedback.FieldErrors {
	errs := feedback.FieldErrors{}
	switch {
	case !validate.IsNonEmpty(in.Email):
		errs["email"] = "Email is required"
	case !validate.IsEmail(in.Email):
		errs["email"] = "Email is invalid"
	}
	switch {
	case in.Password == "":
		errs["password"] = "Password is required"
	case !validate.IsPasswordLength(in.Password):
		errs["password"] = "Password must be at least 6 characters"
	}
	if !validate.IsNonEmpty(in.Name) {
		errs["name"] = "Name is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
