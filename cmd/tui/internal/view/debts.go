package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mehdislim/carnet/internal/client"
)

type debtsState int

const (
	debtsStateBrowse debtsState = iota
	debtsStateAdd
)

type DebtsModel struct {
	CommonModel
	ledger *client.Service

	state  debtsState
	table  table.Model
	cl     *client.Client
	form   *huh.Form
	status string

	formAmount  string
	formProduct string
}

// CloseDebtsMsg asks the root model to return to the clients view.
type CloseDebtsMsg struct{}

func NewDebtsModel(ledger *client.Service, c *client.Client) DebtsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Product", Width: 30},
		{Title: "Amount", Width: 10},
		{Title: "Paid", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := DebtsModel{
		ledger: ledger,
		cl:     c,
		table:  t,
	}
	m.refreshTable()

	return m
}

func (m DebtsModel) Init() tea.Cmd {
	return nil
}

func (m DebtsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debtsUpdatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.cl = msg.client
			m.status = ""
			m.refreshTable()
		}

		m.state = debtsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case debtsStateBrowse:
		return m.updateBrowse(msg)
	case debtsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m DebtsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseDebtsMsg{} }
		case "a":
			return m.enterAddMode()
		case "p":
			return m, m.payCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DebtsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formProduct = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return fmt.Errorf("not a number")
					}
					return nil
				}),

			huh.NewInput().
				Key("product").
				Title("Product").
				Value(&m.formProduct).
				Validate(required("product")),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = debtsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m DebtsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = debtsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.addCmd()
}

func (m DebtsModel) View() string {
	header := fmt.Sprintf(
		"%s  (%s)\nDeposit: %s | Total debt: %s",
		m.cl.Name,
		m.cl.Phone,
		FormatAmount(m.cl.Deposit),
		FormatAmount(m.cl.TotalDebt),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := lipgloss.NewStyle().Faint(true).Render("a: add debt | p: pay selected | Esc: back")

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		help,
	)

	if m.state == debtsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Debt\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DebtsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cl.Debts))
	for _, d := range m.cl.Debts {
		paid := "no"
		if d.Paid {
			paid = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(d.Date),
			d.ProductName,
			FormatAmount(d.Amount),
			paid,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type debtsUpdatedMsg struct {
	client *client.Client
	err    error
}

func (m DebtsModel) addCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	product := m.form.GetString("product")
	clientID := m.cl.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.ledger.AddDebt(ctx, clientID, amount, product)
		return debtsUpdatedMsg{client: c, err: err}
	}
}

func (m DebtsModel) payCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cl.Debts) {
		return nil
	}

	clientID := m.cl.ID
	debtID := m.cl.Debts[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.ledger.PayDebt(ctx, clientID, debtID)
		return debtsUpdatedMsg{client: c, err: err}
	}
}
