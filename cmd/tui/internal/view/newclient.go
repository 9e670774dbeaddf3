package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mehdislim/carnet/internal/client"
)

type NewClientModel struct {
	CommonModel
	ledger *client.Service

	form   *huh.Form
	status string

	formName    string
	formPhone   string
	formDeposit string
	formDebt    string
	formProduct string
}

func NewNewClientModel(ledger *client.Service) NewClientModel {
	m := NewClientModel{ledger: ledger}
	m.form = m.newForm()

	return m
}

func (m *NewClientModel) newForm() *huh.Form {
	m.formName = ""
	m.formPhone = ""
	m.formDeposit = ""
	m.formDebt = ""
	m.formProduct = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(required("name")),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone).
				Validate(required("phone")),

			huh.NewInput().
				Key("deposit").
				Title("Deposit").
				Placeholder("0").
				Value(&m.formDeposit).
				Validate(numberOrEmpty),

			huh.NewInput().
				Key("initial_debt").
				Title("Initial debt (leave empty for none)").
				Value(&m.formDebt).
				Validate(numberOrEmpty),

			huh.NewInput().
				Key("product").
				Title("Product").
				Placeholder(client.DefaultProductName).
				Value(&m.formProduct),
		),
	).WithWidth(48).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func numberOrEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("not a number")
	}

	return nil
}

func (m NewClientModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m NewClientModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case clientSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Created %s (total debt %s)", msg.client.Name, FormatAmount(msg.client.TotalDebt))
		}

		m.form = m.newForm()

		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m NewClientModel) View() string {
	content := "New Client\n\n" + m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type clientSavedMsg struct {
	client *client.Client
	err    error
}

func (m NewClientModel) saveCmd() tea.Cmd {
	params := client.CreateParams{
		Name:               m.form.GetString("name"),
		Phone:              m.form.GetString("phone"),
		InitialProductName: strings.TrimSpace(m.form.GetString("product")),
	}

	if v := strings.TrimSpace(m.form.GetString("deposit")); v != "" {
		params.Deposit, _ = strconv.ParseFloat(v, 64)
	}

	if v := strings.TrimSpace(m.form.GetString("initial_debt")); v != "" {
		params.InitialDebt, _ = strconv.ParseFloat(v, 64)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.ledger.Create(ctx, params)
		return clientSavedMsg{client: c, err: err}
	}
}
