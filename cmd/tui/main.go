package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mehdislim/carnet/cmd/tui/internal/view"
	"github.com/mehdislim/carnet/internal/client"
	clientStore "github.com/mehdislim/carnet/internal/client/store"
	"github.com/mehdislim/carnet/internal/config"
	"github.com/mehdislim/carnet/internal/database"
)

type model struct {
	ledger *client.Service

	currentView View

	clientsView view.ClientsModel
	createView  view.NewClientModel
	debtsView   view.DebtsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewClients   View = 1
	ViewNewClient View = 2
	ViewDebts     View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.DB.URI)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ledger := client.NewService(clientStore.New(db.Database(cfg.DB.Name)))

	return model{
		ledger:      ledger,
		currentView: ViewMenu,
		clientsView: view.NewClientsModel(ledger),
		createView:  view.NewNewClientModel(ledger),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.ledger)

				return m, m.clientsView.Init()
			case "2":
				m.currentView = ViewNewClient
				m.createView = view.NewNewClientModel(m.ledger)

				return m, m.createView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.OpenDebtsMsg:
		m.currentView = ViewDebts
		m.debtsView = view.NewDebtsModel(m.ledger, msg.Client)

		return m, m.debtsView.Init()
	case view.CloseDebtsMsg:
		m.currentView = ViewClients
		m.clientsView = view.NewClientsModel(m.ledger)

		return m, m.clientsView.Init()
	}

	switch m.currentView {
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewNewClient:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.NewClientModel)
	case ViewDebts:
		var newModel tea.Model
		newModel, cmd = m.debtsView.Update(msg)
		m.debtsView = newModel.(view.DebtsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Carnet TUI\n\n" +
				"1. Clients\n" +
				"2. New Client\n\n" +
				"q. Quit",
		)
	case ViewClients:
		return m.clientsView.View()
	case ViewNewClient:
		return m.createView.View()
	case ViewDebts:
		return m.debtsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
