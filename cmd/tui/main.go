package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/FarukBas12/servistakip-sub000/cmd/tui/internal/view"
	"github.com/FarukBas12/servistakip-sub000/internal/config"
	"github.com/FarukBas12/servistakip-sub000/internal/database"
	"github.com/FarukBas12/servistakip-sub000/internal/export"
	"github.com/FarukBas12/servistakip-sub000/internal/importer"
	csvParser "github.com/FarukBas12/servistakip-sub000/internal/importer/csv"
	xlsxParser "github.com/FarukBas12/servistakip-sub000/internal/importer/xlsx"
	"github.com/FarukBas12/servistakip-sub000/internal/stock"
	stockStore "github.com/FarukBas12/servistakip-sub000/internal/stock/store"
	"github.com/FarukBas12/servistakip-sub000/internal/user"
	userStore "github.com/FarukBas12/servistakip-sub000/internal/user/store"
)

type model struct {
	stockService  *stock.Service
	importService *importer.Service
	exportService *export.Service

	userID uuid.UUID

	currentView View

	itemsView  view.ItemsModel
	importView view.ImportModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewItems  View = 1
	ViewImport View = 2
	ViewExport View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	stockSvc := stock.NewService(stockStore.New(db))
	userSvc := user.NewService(userStore.New(db))
	impSvc := importer.NewService(xlsxParser.New(), csvParser.New())
	expSvc := export.NewService(stockSvc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Movements recorded through the TUI are attributed to the warehouse
	// account. Run `migrate -seed` if it doesn't exist yet.
	u, err := userSvc.GetByEmail(ctx, cfg.Ops.UserEmail)
	if err != nil {
		slog.Error("failed to look up operator user", "email", cfg.Ops.UserEmail, "error", err)
		os.Exit(1)
	}

	return model{
		stockService:  stockSvc,
		importService: impSvc,
		exportService: expSvc,
		userID:        u.ID,
		currentView:   ViewMenu,
		itemsView:     view.NewItemsModel(stockSvc, u.ID),
		importView:    view.NewImportModel(stockSvc, impSvc),
		exportView:    view.NewExportModel(expSvc),
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
				m.currentView = ViewItems
				m.itemsView = view.NewItemsModel(m.stockService, m.userID)

				return m, m.itemsView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.stockService, m.importService)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewItems:
		var newModel tea.Model
		newModel, cmd = m.itemsView.Update(msg)
		m.itemsView = newModel.(view.ItemsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"ServisTakip\n\n" +
				"1. Stock Items\n" +
				"2. Bulk Import\n" +
				"3. Export Stock List\n\n" +
				"q. Quit",
		)
	case ViewItems:
		return m.itemsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
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
