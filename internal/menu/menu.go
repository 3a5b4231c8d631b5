// Package menu binds the contact service to a numbered text menu.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
)

const menuText = `===== CONTACT MANAGEMENT SYSTEM =====
1. Add Contact
2. View Contacts
3. Search Contact
4. Update Contact
5. Delete Contact
6. Exit
-------------------------------------`

// Contacts is the set of operations the menu offers.
type Contacts interface {
	Add(name, phone, email, address string) (model.Contact, error)
	List() ([]model.Contact, error)
	Search(keyword string) ([]model.Contact, error)
	Update(id int64, update model.ContactUpdate) (model.Contact, error)
	Delete(id int64) error
}

// Menu reads choices and field values line by line and prints results.
type Menu struct {
	contacts Contacts
	in       *bufio.Scanner
	out      io.Writer
	theme    theme
}

// theme decorates headers and status lines. Icons and colours are only used on a terminal.
type theme struct {
	header  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	styled  bool
}

func (t theme) render(style lipgloss.Style, s string) string {
	if !t.styled {
		return s
	}
	return style.Render(s)
}

// New creates a menu that reads from in and writes to out.
func New(contacts Contacts, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		contacts: contacts,
		in:       bufio.NewScanner(in),
		out:      out,
		theme:    newTheme(out),
	}
}

func newTheme(out io.Writer) theme {
	if !isTTY(out) {
		plain := lipgloss.NewStyle()
		return theme{header: plain, success: plain, warning: plain, failure: plain}
	}
	r := lipgloss.NewRenderer(out)
	return theme{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		styled:  true,
	}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run shows the menu until the user picks exit or the input ends. Failed operations are reported
// and the menu is shown again.
func (m *Menu) Run() error {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, m.theme.render(m.theme.header, menuText))
		choice, err := m.prompt("Select an option: ")
		if err != nil {
			return m.exit(err)
		}
		switch strings.TrimSpace(choice) {
		case "1":
			err = m.add()
		case "2":
			err = m.view()
		case "3":
			err = m.search()
		case "4":
			err = m.update()
		case "5":
			err = m.delete()
		case "6":
			return m.exit(nil)
		default:
			m.failure("Invalid option. Try again.")
		}
		if err != nil {
			return m.exit(err)
		}
	}
}

// exit says goodbye. Running out of input is a regular way to leave the menu.
func (m *Menu) exit(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	m.status("👋", m.theme.success, "Goodbye!")
	return nil
}

// prompt prints the question and returns the next line of input.
func (m *Menu) prompt(question string) (string, error) {
	fmt.Fprint(m.out, question)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) add() error {
	var answers [4]string
	questions := []string{
		"Enter full name: ",
		"Enter phone number: ",
		"Enter email (optional): ",
		"Enter postal address: ",
	}
	for i, q := range questions {
		answer, err := m.prompt(q)
		if err != nil {
			return err
		}
		answers[i] = answer
	}
	if _, err := m.contacts.Add(answers[0], answers[1], answers[2], answers[3]); err != nil {
		m.report(err)
		return nil
	}
	m.status("✔", m.theme.success, "Contact added successfully!")
	return nil
}

func (m *Menu) view() error {
	contacts, err := m.contacts.List()
	if err != nil {
		m.report(err)
		return nil
	}
	if len(contacts) == 0 {
		m.status("📭", m.theme.warning, "No contacts found.")
		return nil
	}
	fmt.Fprintln(m.out, m.theme.render(m.theme.header, "========== CONTACT LIST =========="))
	m.printContacts(contacts)
	fmt.Fprintln(m.out, m.theme.render(m.theme.header, "=================================="))
	return nil
}

func (m *Menu) search() error {
	keyword, err := m.prompt("Enter name/phone/email/address to search: ")
	if err != nil {
		return err
	}
	contacts, err := m.contacts.Search(keyword)
	if err != nil {
		m.report(err)
		return nil
	}
	if len(contacts) == 0 {
		m.status("❌", m.theme.failure, "No matching contact found.")
		return nil
	}
	m.status("🔎", m.theme.header, "Search Results:")
	m.printContacts(contacts)
	return nil
}

func (m *Menu) update() error {
	if err := m.view(); err != nil {
		return err
	}
	id, ok, err := m.promptID("Enter the contact ID you want to update: ")
	if err != nil || !ok {
		return err
	}

	// An empty answer keeps the current value.
	var values [4]*string
	questions := []string{
		"New name (leave empty to keep current): ",
		"New phone (optional): ",
		"New email (optional): ",
		"New address (optional): ",
	}
	for i, q := range questions {
		answer, err := m.prompt(q)
		if err != nil {
			return err
		}
		if answer != "" {
			values[i] = &answer
		}
	}
	update := model.ContactUpdate{Name: values[0], Phone: values[1], Email: values[2], Address: values[3]}
	if _, err := m.contacts.Update(id, update); err != nil {
		m.report(err)
		return nil
	}
	m.status("✔", m.theme.success, "Contact updated successfully!")
	return nil
}

func (m *Menu) delete() error {
	if err := m.view(); err != nil {
		return err
	}
	id, ok, err := m.promptID("Enter the contact ID to delete: ")
	if err != nil || !ok {
		return err
	}
	if err := m.contacts.Delete(id); err != nil {
		m.report(err)
		return nil
	}
	m.status("🗑", m.theme.success, "Contact deleted successfully!")
	return nil
}

// promptID asks for a contact id. ok is false if the answer is not a number.
func (m *Menu) promptID(question string) (id int64, ok bool, err error) {
	answer, err := m.prompt(question)
	if err != nil {
		return 0, false, err
	}
	id, errConv := strconv.ParseInt(answer, 10, 64)
	if errConv != nil {
		m.failure("Invalid contact ID.")
		return 0, false, nil
	}
	return id, true, nil
}

func (m *Menu) printContacts(contacts []model.Contact) {
	for _, c := range contacts {
		fmt.Fprintf(m.out, "ID: %d | Name: %s | Phone: %s | Email: %s | Address: %s\n",
			c.Id, c.Name, c.Phone, orDash(c.Email), orDash(c.Address))
	}
}

// report prints a message for a failed operation.
func (m *Menu) report(err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		switch validationErr.Field {
		case "phone":
			m.failure("Invalid phone number format. Must contain 7-15 digits.")
		case "email":
			m.failure("Invalid email format.")
		default:
			m.failure("Name must not be empty.")
		}
	case errors.Is(err, service.ErrDuplicatePhone):
		m.status("⚠", m.theme.warning, "Phone number already exists. Use a different one.")
	case errors.Is(err, service.ErrNotFound):
		m.failure("Contact not found.")
	case errors.Is(err, service.ErrNoOpUpdate):
		m.status("⚠", m.theme.warning, "Nothing to update.")
	default:
		m.failure("Storage error: " + err.Error())
	}
}

func (m *Menu) failure(msg string) {
	m.status("❌", m.theme.failure, msg)
}

func (m *Menu) status(icon string, style lipgloss.Style, msg string) {
	if m.theme.styled {
		msg = icon + " " + msg
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.theme.render(style, msg))
}

func orDash(s *string) string {
	if v := model.StringOrEmpty(s); v != "" {
		return v
	}
	return "-"
}
