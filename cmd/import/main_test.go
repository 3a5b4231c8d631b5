package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
)

// recordingAdder remembers added contacts and rejects phone numbers it has already seen.
type recordingAdder struct {
	added []model.Contact
}

func (r *recordingAdder) Add(name, phone, email, address string) (model.Contact, error) {
	if phone == "" {
		return model.Contact{}, &service.ValidationError{Field: "phone", Value: phone}
	}
	for _, c := range r.added {
		if c.Phone == phone {
			return model.Contact{}, service.ErrDuplicatePhone
		}
	}
	c := model.Contact{Id: int64(len(r.added) + 1), Name: name, Phone: phone}
	if email != "" {
		c.Email = &email
	}
	if address != "" {
		c.Address = &address
	}
	r.added = append(r.added, c)
	return c, nil
}

func TestImportContacts(t *testing.T) {
	input := strings.Join([]string{
		"# name,phone,email,address",
		"Erika Mustermann,+4908154711,erika@example.com,\"Hauptstrasse 1, Berlin\"",
		"Ann Lee, +4487654321",
		"Max Mustermann,+4908154711,,",
		"Nobody",
		"No Phone,,,",
	}, "\n")
	var errOut bytes.Buffer
	contacts := &recordingAdder{}

	added, skipped, failed := importContacts(contacts, strings.NewReader(input), &errOut)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 2, failed)

	assert.Equal(t, "Hauptstrasse 1, Berlin", *contacts.added[0].Address)
	assert.Equal(t, "+4487654321", contacts.added[1].Phone)
	assert.Nil(t, contacts.added[1].Email)
	assert.Contains(t, errOut.String(), "line 5: expected at least name and phone")
	assert.Contains(t, errOut.String(), "line 6: invalid phone number")
}
