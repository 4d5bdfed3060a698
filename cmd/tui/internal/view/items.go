package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

type itemsState int

const (
	itemsStateBrowse itemsState = iota
	itemsStateApply
	itemsStateCreate
	itemsStateHistory
)

type ItemsModel struct {
	CommonModel
	stockService *stock.Service
	userID       uuid.UUID

	state itemsState
	table table.Model
	items []*stock.Item

	historyTable table.Model
	historyItem  *stock.Item

	form *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formType     string
	formQty      string
	formDesc     string
	formName     string
	formUnit     string
	formCritical string
	formCategory string
}

func NewItemsModel(stockSvc *stock.Service, userID uuid.UUID) ItemsModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Category", Width: 15},
		{Title: "Quantity", Width: 15},
		{Title: "Critical", Width: 10},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return ItemsModel{
		stockService: stockSvc,
		userID:       userID,
		table:        t,
	}
}

func (m ItemsModel) Title() string { return "Stock Items" }

func (m ItemsModel) ShortHelp() string {
	switch m.state {
	case itemsStateApply, itemsStateCreate:
		return "Navigate form | Esc: cancel"
	case itemsStateHistory:
		return "Esc: back to list"
	}

	return "Esc: back | m: movement | n: new item | h: history | d: delete | r: refresh"
}

func (m ItemsModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m ItemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadItemsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = msg.items
		m.refreshTable()
		return m, nil

	case applyDoneMsg:
		m.state = itemsStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Movement rejected: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("%s now at %s", msg.item.Name, FormatQty(msg.item.Quantity, msg.item.Unit))
		return m, m.loadItemsCmd()

	case createDoneMsg:
		m.state = itemsStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Error creating item: %v", msg.err)
			return m, nil
		}
		m.status = ""
		return m, m.loadItemsCmd()

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting item: %v", msg.err)
			return m, nil
		}
		m.status = "Item deleted"
		return m, m.loadItemsCmd()

	case loadHistoryMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading history: %v", msg.err)
			m.state = itemsStateBrowse
			return m, nil
		}
		m.historyTable.SetRows(historyRows(msg.movements))
		m.state = itemsStateHistory
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case itemsStateBrowse:
		return m.updateBrowse(msg)
	case itemsStateApply, itemsStateCreate:
		return m.updateForm(msg)
	case itemsStateHistory:
		return m.updateHistory(msg)
	}

	return m, nil
}

func (m ItemsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadItemsCmd()
		case "m":
			return m.enterApplyMode()
		case "n":
			return m.enterCreateMode()
		case "h":
			return m.enterHistoryMode()
		case "d":
			item := m.selectedItem()
			if item == nil {
				return m, nil
			}
			return m, m.deleteCmd(item.ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ItemsModel) selectedItem() *stock.Item {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m ItemsModel) enterApplyMode() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}

	m.formType = string(stock.TypeOut)
	m.formQty = ""
	m.formDesc = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Movement").
				Options(
					huh.NewOption("Stock out", string(stock.TypeOut)),
					huh.NewOption("Stock in", string(stock.TypeIn)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Placeholder("0").
				Value(&m.formQty).
				Validate(func(s string) error {
					q, err := ParseQty(s)
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if !q.IsPositive() {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("e.g. site usage").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = itemsStateApply
	m.table.Blur()
	return m, m.form.Init()
}

func (m ItemsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formUnit = "Adet"
	m.formQty = "0"
	m.formCritical = "5"
	m.formCategory = "Genel"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("unit").
				Title("Unit").
				Value(&m.formUnit),

			huh.NewInput().
				Key("quantity").
				Title("Opening Quantity").
				Value(&m.formQty).
				Validate(validateQty),

			huh.NewInput().
				Key("critical").
				Title("Critical Level").
				Value(&m.formCritical).
				Validate(validateQty),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = itemsStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func validateQty(s string) error {
	q, err := ParseQty(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if q.IsNegative() {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

func (m ItemsModel) enterHistoryMode() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}

	columns := []table.Column{
		{Title: "Date", Width: 17},
		{Title: "Type", Width: 5},
		{Title: "Quantity", Width: 12},
		{Title: "User", Width: 15},
		{Title: "Project", Width: 20},
		{Title: "Description", Width: 30},
	}

	m.historyTable = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	m.historyItem = item

	return m, m.loadHistoryCmd(item.ID)
}

func (m ItemsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
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

	if m.state == itemsStateApply {
		return m, m.applyCmd()
	}

	return m, m.createCmd()
}

func (m ItemsModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
			m.historyItem = nil
			m.table.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m ItemsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stock items...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == itemsStateHistory {
		title := "History"
		if m.historyItem != nil {
			title = fmt.Sprintf("History: %s", m.historyItem.Name)
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(title),
				m.historyTable.View(),
			),
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if (m.state == itemsStateApply || m.state == itemsStateCreate) && m.form != nil {
		title := "New Item"
		if m.state == itemsStateApply {
			item := m.selectedItem()
			if item != nil {
				title = fmt.Sprintf("Movement: %s (%s)", item.Name, FormatQty(item.Quantity, item.Unit))
			}
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ItemsModel) refreshTable() {
	lowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		status := ""
		if item.LowStock() {
			status = lowStyle.Render("LOW")
		}
		rows = append(rows, table.Row{
			item.Name,
			item.Category,
			FormatQty(item.Quantity, item.Unit),
			item.CriticalLevel.String(),
			status,
		})
	}
	m.table.SetRows(rows)
}

func historyRows(movements []*stock.Movement) []table.Row {
	rows := make([]table.Row, 0, len(movements))
	for _, mv := range movements {
		project := ""
		if mv.ProjectName != nil {
			project = *mv.ProjectName
		}
		rows = append(rows, table.Row{
			FormatDate(mv.CreatedAt),
			string(mv.Type),
			mv.Quantity.String(),
			mv.UserName,
			project,
			mv.Description,
		})
	}

	return rows
}

// Messages

type loadItemsMsg struct {
	items []*stock.Item
	err   error
}

func (m ItemsModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.stockService.ListItems(ctx)
		return loadItemsMsg{items: items, err: err}
	}
}

type applyDoneMsg struct {
	item *stock.Item
	err  error
}

func (m ItemsModel) applyCmd() tea.Cmd {
	item := m.selectedItem()
	if item == nil {
		return nil
	}

	qty, err := ParseQty(m.formQty)
	if err != nil {
		return func() tea.Msg { return applyDoneMsg{err: err} }
	}

	params := stock.ApplyParams{
		ItemID:      item.ID,
		UserID:      m.userID,
		Type:        stock.Type(m.formType),
		Quantity:    qty,
		Description: m.formDesc,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.stockService.Apply(ctx, params)
		return applyDoneMsg{item: updated, err: err}
	}
}

type createDoneMsg struct {
	err error
}

func (m ItemsModel) createCmd() tea.Cmd {
	qty, err := ParseQty(m.formQty)
	if err != nil {
		qty = decimal.Zero
	}

	critical, err := ParseQty(m.formCritical)
	if err != nil {
		critical = decimal.Zero
	}

	params := stock.CreateItemParams{
		Name:          strings.TrimSpace(m.formName),
		Unit:          m.formUnit,
		Quantity:      qty,
		CriticalLevel: critical,
		Category:      m.formCategory,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.stockService.CreateItem(ctx, params)
		return createDoneMsg{err: err}
	}
}

type deleteDoneMsg struct {
	err error
}

func (m ItemsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteDoneMsg{err: m.stockService.DeleteItem(ctx, id)}
	}
}

type loadHistoryMsg struct {
	movements []*stock.Movement
	err       error
}

func (m ItemsModel) loadHistoryCmd(itemID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		movements, err := m.stockService.History(ctx, itemID)
		return loadHistoryMsg{movements: movements, err: err}
	}
}
