// Package controller orchestrates the edit/create form, the filters, and the
// income setting against the remote gateway. Handlers only mutate client
// state after the triggering operation fully succeeded, so a failure always
// leaves the form and store as they were for a manual retry.
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
	"spendtrack/internal/log"
	"spendtrack/internal/render"
	"spendtrack/internal/store"
)

// Gateway is the remote expense collection as the controller sees it.
type Gateway interface {
	List(ctx context.Context) ([]core.Expense, uint64, error)
	Get(ctx context.Context, id int64) (core.Expense, error)
	Create(ctx context.Context, draft core.Draft) (core.Expense, error)
	Update(ctx context.Context, id int64, draft core.Draft) (core.Expense, error)
	Delete(ctx context.Context, id int64) error
}

// Settings persists the income value across sessions.
type Settings interface {
	Income(ctx context.Context) (decimal.Decimal, error)
	SetIncome(ctx context.Context, income decimal.Decimal) error
}

// Form mirrors the edit/create form. All fields are strings so that editing
// populates them verbatim from the fetched record.
type Form struct {
	Title       string
	Amount      string
	Date        string
	Description string
}

// Submit-control labels, matching the two affordance states of the form.
const (
	CreateLabel = "Save Expense"
	UpdateLabel = "Update Expense"
)

type Session struct {
	gw       Gateway
	settings Settings
	store    *store.Store
	renderer *render.Renderer
	log      *log.Logger

	form        Form
	editingID   int64 // 0 when creating
	searchQuery string
	dateQuery   string
	income      decimal.Decimal
}

func NewSession(gw Gateway, settings Settings, st *store.Store, renderer *render.Renderer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentController)
	}
	return &Session{
		gw:       gw,
		settings: settings,
		store:    st,
		renderer: renderer,
		log:      logger,
	}
}

// Init reads the persisted income once and performs the initial fetch/render.
func (s *Session) Init(ctx context.Context) error {
	if err := s.LoadIncome(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx, true)
}

// LoadIncome reads the persisted income without rendering.
func (s *Session) LoadIncome(ctx context.Context) error {
	income, err := s.settings.Income(ctx)
	if err != nil {
		return fmt.Errorf("load income setting: %w", err)
	}
	s.income = income
	return nil
}

// SetQueries primes the filter criteria without re-rendering, for callers
// that know the filters before the first fetch.
func (s *Session) SetQueries(text, date string) {
	s.searchQuery = text
	s.dateQuery = date
}

// Refresh refetches the list, replaces the store wholesale, and re-renders
// the filtered view plus the balance. A response older than the last applied
// fetch is discarded.
func (s *Session) Refresh(ctx context.Context, animate bool) error {
	records, seq, err := s.gw.List(ctx)
	if err != nil {
		return err
	}
	if !s.store.Replace(seq, records) {
		s.log.DebugContext(ctx, "Discarded stale list response", log.FieldFetchSeq, seq)
	}
	s.Render(animate)
	return nil
}

// Render draws the filtered view and the balance over the full store.
func (s *Session) Render(animate bool) {
	records := s.store.Snapshot()
	s.renderer.Table(store.Filter(records, s.searchQuery, s.dateQuery), animate)
	s.renderer.Balance(store.Remaining(s.income, records))
}

// Form returns the current form contents.
func (s *Session) Form() Form { return s.form }

// EditingID returns the identifier of the record loaded for editing, or 0.
func (s *Session) EditingID() int64 { return s.editingID }

// SubmitLabel is the label of the submit affordance in the current state.
func (s *Session) SubmitLabel() string {
	if s.editingID != 0 {
		return UpdateLabel
	}
	return CreateLabel
}

// SetField updates one form field by name.
func (s *Session) SetField(name, value string) error {
	switch name {
	case "title":
		s.form.Title = value
	case "amount":
		s.form.Amount = value
	case "date":
		s.form.Date = value
	case "description":
		s.form.Description = value
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

// Submit sends the form: update when a record is loaded for editing,
// create otherwise. On success the form and editing state reset and the
// list is refreshed; on failure everything is left untouched for retry.
func (s *Session) Submit(ctx context.Context) error {
	draft, err := s.draft()
	if err != nil {
		return err
	}

	if s.editingID != 0 {
		if _, err := s.gw.Update(ctx, s.editingID, draft); err != nil {
			return err
		}
	} else {
		if _, err := s.gw.Create(ctx, draft); err != nil {
			return err
		}
	}

	s.resetForm()
	return s.Refresh(ctx, true)
}

// Edit loads a record into the form for updating. Every field is populated
// verbatim from the fetched record; a missing description becomes "".
func (s *Session) Edit(ctx context.Context, id int64) error {
	rec, err := s.gw.Get(ctx, id)
	if err != nil {
		return err
	}

	s.form = Form{
		Title:       rec.Title,
		Amount:      rec.Amount.String(),
		Date:        rec.Date,
		Description: rec.Description,
	}
	s.editingID = rec.ID
	return nil
}

// Remove deletes a record. On success the form is reset unconditionally,
// whether or not the deleted record was the one being edited, and the list
// is refreshed.
func (s *Session) Remove(ctx context.Context, id int64) error {
	if err := s.gw.Delete(ctx, id); err != nil {
		return err
	}

	s.resetForm()
	return s.Refresh(ctx, true)
}

// SetIncome validates, persists, and applies a new income value, then
// re-renders the balance.
func (s *Session) SetIncome(ctx context.Context, raw string) error {
	income, err := decimal.NewFromString(raw)
	if err != nil || !income.IsPositive() {
		return core.ErrInvalidIncome
	}
	if err := s.settings.SetIncome(ctx, income); err != nil {
		return err
	}
	s.income = income
	s.renderer.Balance(store.Remaining(s.income, s.store.Snapshot()))
	return nil
}

// Income returns the active income value.
func (s *Session) Income() decimal.Decimal { return s.income }

// Search applies a free-text filter and re-renders.
func (s *Session) Search(query string) {
	s.searchQuery = query
	s.Render(true)
}

// FilterDate applies an exact-date filter and re-renders.
func (s *Session) FilterDate(date string) {
	s.dateQuery = date
	s.Render(true)
}

// ClearFilters restores the full unfiltered view in original order.
func (s *Session) ClearFilters() {
	s.searchQuery = ""
	s.dateQuery = ""
	s.Render(true)
}

func (s *Session) draft() (core.Draft, error) {
	amount, err := core.NewAmount(s.form.Amount)
	if err != nil {
		return core.Draft{}, err
	}
	draft := core.Draft{
		Title:       strings.TrimSpace(s.form.Title),
		Amount:      amount,
		Date:        s.form.Date,
		Description: strings.TrimSpace(s.form.Description),
	}
	if err := draft.Validate(); err != nil {
		return core.Draft{}, err
	}
	return draft, nil
}

func (s *Session) resetForm() {
	s.form = Form{}
	s.editingID = 0
}
