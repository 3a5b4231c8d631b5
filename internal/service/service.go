package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/store"
)

// phonePattern allows an optional leading '+' followed by 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// emailPattern is matched against the beginning of the address.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// selectColumns is the fixed column order of every contact query.
const selectColumns = "SELECT id, name, phone, email, address FROM contacts"

// likeEscaper escapes the LIKE wildcards so that search keywords match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

var (
	// ErrDuplicatePhone is returned when another contact already uses the phone number.
	ErrDuplicatePhone = errors.New("phone number already exists")
	// ErrNotFound is returned when no contact has the requested id.
	ErrNotFound = errors.New("contact not found")
	// ErrNoOpUpdate is returned when an update does not carry any value.
	ErrNoOpUpdate = errors.New("no values to be updated")
)

// ValidationError reports a field value that does not have the required format.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case "name":
		return "name must not be empty"
	case "phone":
		return fmt.Sprintf("invalid phone number %q: must contain 7-15 digits", e.Value)
	case "email":
		return fmt.Sprintf("invalid email %q", e.Value)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// Store is the persistence the service works against.
type Store interface {
	Execute(statement string, args ...any) (sql.Result, error)
	Query(dest any, statement string, args ...any) error
}

// ContactService validates contact data and translates the operations into store calls.
type ContactService struct {
	store Store
	log   *slog.Logger
}

// New returns a service that owns st for its lifetime.
func New(st Store, log *slog.Logger) *ContactService {
	return &ContactService{store: st, log: log}
}

// Add validates and stores a new contact. Empty email and address are stored as NULL. The
// returned contact carries the id assigned by the database.
func (s *ContactService) Add(name, phone, email, address string) (model.Contact, error) {
	if err := validateName(name); err != nil {
		return model.Contact{}, err
	}
	if err := validatePhone(phone); err != nil {
		return model.Contact{}, err
	}
	if err := validateEmail(email); err != nil {
		return model.Contact{}, err
	}
	contact := model.Contact{
		Name:    name,
		Phone:   phone,
		Email:   nullable(email),
		Address: nullable(address),
	}
	result, err := s.store.Execute(`
		INSERT INTO contacts (name, phone, email, address)
		VALUES (?, ?, ?, ?)`,
		contact.Name, contact.Phone, contact.Email, contact.Address)
	if err != nil {
		return model.Contact{}, translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Contact{}, &store.StorageError{Op: "last insert id", Err: err}
	}
	contact.Id = id
	s.log.Debug("contact added", "id", id)
	return contact, nil
}

// List returns all contacts in the order they were added. No contacts is not an error.
func (s *ContactService) List() ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := s.store.Query(&contacts, selectColumns+" ORDER BY id"); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Search returns all contacts where name, phone, email or address contain the keyword, ignoring
// case. Fields without a value never match.
func (s *ContactService) Search(keyword string) ([]model.Contact, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
	contacts := []model.Contact{}
	err := s.store.Query(&contacts, selectColumns+`
		WHERE lower(name) LIKE ? ESCAPE '!'
			OR lower(phone) LIKE ? ESCAPE '!'
			OR lower(email) LIKE ? ESCAPE '!'
			OR lower(address) LIKE ? ESCAPE '!'
		ORDER BY id`,
		pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// Get returns the contact with the given id.
func (s *ContactService) Get(id int64) (model.Contact, error) {
	var contacts []model.Contact
	if err := s.store.Query(&contacts, selectColumns+" WHERE id = ?", id); err != nil {
		return model.Contact{}, err
	}
	if len(contacts) == 0 {
		return model.Contact{}, ErrNotFound
	}
	return contacts[0], nil
}

// Update changes the values present in the update, and only those, and returns the contact as
// stored afterwards. An empty email or address clears the field.
func (s *ContactService) Update(id int64, update model.ContactUpdate) (model.Contact, error) {
	// It only makes sense to continue if we have at least one value to update.
	if update.IsEmpty() {
		return model.Contact{}, ErrNoOpUpdate
	}
	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return model.Contact{}, err
		}
	}
	if update.Phone != nil {
		if err := validatePhone(*update.Phone); err != nil {
			return model.Contact{}, err
		}
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return model.Contact{}, err
		}
	}

	fields := []struct {
		column string
		value  *string
	}{
		{"name", update.Name},
		{"phone", update.Phone},
		{"email", update.Email},
		{"address", update.Address},
	}
	var assignments []string
	var args []any
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		assignments = append(assignments, f.column+" = ?")
		if f.column == "email" || f.column == "address" {
			args = append(args, nullable(*f.value))
		} else {
			args = append(args, *f.value)
		}
	}
	args = append(args, id)

	statement := "UPDATE contacts SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	result, err := s.store.Execute(statement, args...)
	if err != nil {
		return model.Contact{}, translate(err)
	}
	if err := expectOneRow(result); err != nil {
		return model.Contact{}, err
	}
	s.log.Debug("contact updated", "id", id, "fields", len(assignments))
	return s.Get(id)
}

// Delete removes the contact with the given id.
func (s *ContactService) Delete(id int64) error {
	result, err := s.store.Execute("DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}
	s.log.Debug("contact deleted", "id", id)
	return nil
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return &store.StorageError{Op: "rows affected", Err: err}
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps store errors onto the errors of the service. The only constraint a valid
// contact can break is the unique phone number.
func translate(err error) error {
	if errors.Is(err, store.ErrConstraintViolation) {
		return ErrDuplicatePhone
	}
	return err
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Value: name}
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Value: phone}
	}
	return nil
}

func validateEmail(email string) error {
	if email != "" && !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Value: email}
	}
	return nil
}

// nullable maps the empty string onto NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
