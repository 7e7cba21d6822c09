package controller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
	"spendtrack/internal/log"
	"spendtrack/internal/render"
	"spendtrack/internal/store"
)

type fakeGateway struct {
	records []core.Expense
	nextID  int64
	seq     uint64

	failList   bool
	failGet    bool
	failCreate bool
	failUpdate bool
	failDelete bool

	creates int
	updates int
	deletes int
}

func (f *fakeGateway) List(context.Context) ([]core.Expense, uint64, error) {
	if f.failList {
		return nil, 0, &core.FetchError{Op: "list", Status: 500}
	}
	f.seq++
	return append([]core.Expense(nil), f.records...), f.seq, nil
}

func (f *fakeGateway) Get(_ context.Context, id int64) (core.Expense, error) {
	if f.failGet {
		return core.Expense{}, &core.FetchError{Op: "get", Status: 500}
	}
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return core.Expense{}, &core.FetchError{Op: "get", Status: 404}
}

func (f *fakeGateway) Create(_ context.Context, draft core.Draft) (core.Expense, error) {
	if f.failCreate {
		return core.Expense{}, &core.SaveError{Op: "create", Status: 500}
	}
	f.creates++
	f.nextID++
	rec := core.Expense{ID: f.nextID, Title: draft.Title, Amount: draft.Amount, Date: draft.Date, Description: draft.Description}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeGateway) Update(_ context.Context, id int64, draft core.Draft) (core.Expense, error) {
	if f.failUpdate {
		return core.Expense{}, &core.SaveError{Op: "update", Status: 500}
	}
	f.updates++
	for i, rec := range f.records {
		if rec.ID == id {
			f.records[i] = core.Expense{ID: id, Title: draft.Title, Amount: draft.Amount, Date: draft.Date, Description: draft.Description}
			return f.records[i], nil
		}
	}
	return core.Expense{}, &core.SaveError{Op: "update", Status: 404}
}

func (f *fakeGateway) Delete(_ context.Context, id int64) error {
	if f.failDelete {
		return &core.DeleteError{Status: 500}
	}
	f.deletes++
	for i, rec := range f.records {
		if rec.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &core.DeleteError{Status: 404}
}

type fakeSettings struct {
	income decimal.Decimal
	setErr error
	sets   int
}

func (f *fakeSettings) Income(context.Context) (decimal.Decimal, error) { return f.income, nil }

func (f *fakeSettings) SetIncome(_ context.Context, income decimal.Decimal) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.income = income
	return nil
}

func record(id int64, title, amount, date, description string) core.Expense {
	a, _ := core.NewAmount(amount)
	return core.Expense{ID: id, Title: title, Amount: a, Date: date, Description: description}
}

func newTestSession(gw *fakeGateway, settings *fakeSettings) (*Session, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	renderer := render.New(render.Options{Out: buf, Plain: true})
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	return NewSession(gw, settings, store.New(), renderer, logger), buf
}

func TestSession_SubmitCreates(t *testing.T) {
	gw := &fakeGateway{}
	sess, _ := newTestSession(gw, &fakeSettings{})
	ctx := context.Background()

	sess.SetField("title", "Lunch")
	sess.SetField("amount", "12.50")
	sess.SetField("date", "2025-03-03")
	sess.SetField("description", "pizza")

	if err := sess.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gw.creates != 1 || gw.updates != 0 {
		t.Errorf("creates = %d, updates = %d, want 1 and 0", gw.creates, gw.updates)
	}
	if form := sess.Form(); form != (Form{}) {
		t.Errorf("form after submit = %+v, want empty", form)
	}
	if sess.EditingID() != 0 {
		t.Errorf("editing id = %d, want 0", sess.EditingID())
	}
	if sess.SubmitLabel() != CreateLabel {
		t.Errorf("label = %q, want %q", sess.SubmitLabel(), CreateLabel)
	}
}

func TestSession_EditPopulatesFormAndSubmitsUpdate(t *testing.T) {
	gw := &fakeGateway{
		nextID:  5,
		records: []core.Expense{record(5, "Rent", "400.25", "2025-03-01", "march")},
	}
	sess, _ := newTestSession(gw, &fakeSettings{})
	ctx := context.Background()

	if err := sess.Edit(ctx, 5); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	form := sess.Form()
	if form.Title != "Rent" || form.Amount != "400.25" || form.Date != "2025-03-01" || form.Description != "march" {
		t.Errorf("form = %+v", form)
	}
	if sess.SubmitLabel() != UpdateLabel {
		t.Errorf("label = %q, want %q", sess.SubmitLabel(), UpdateLabel)
	}

	sess.SetField("amount", "410.00")
	if err := sess.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gw.updates != 1 || gw.creates != 0 {
		t.Errorf("updates = %d, creates = %d, want 1 and 0 (editing must update, not create)", gw.updates, gw.creates)
	}
	if gw.records[0].Amount.StringFixed(2) != "410.00" {
		t.Errorf("record after update = %+v", gw.records[0])
	}
	if sess.EditingID() != 0 || sess.SubmitLabel() != CreateLabel {
		t.Error("editing state must reset after a successful update")
	}
}

func TestSession_EditMissingDescription(t *testing.T) {
	gw := &fakeGateway{records: []core.Expense{record(2, "Coffee", "3.50", "2025-03-02", "")}}
	sess, _ := newTestSession(gw, &fakeSettings{})

	sess.SetField("description", "stale")
	if err := sess.Edit(context.Background(), 2); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got := sess.Form().Description; got != "" {
		t.Errorf("description = %q, want empty string when absent", got)
	}
}

func TestSession_RemoveResetsFormUnconditionally(t *testing.T) {
	gw := &fakeGateway{
		nextID: 6,
		records: []core.Expense{
			record(5, "Rent", "400.25", "2025-03-01", ""),
			record(6, "Coffee", "3.50", "2025-03-02", ""),
		},
	}
	sess, _ := newTestSession(gw, &fakeSettings{})
	ctx := context.Background()

	// Load record 5 into the form, then delete a different record.
	if err := sess.Edit(ctx, 5); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if err := sess.Remove(ctx, 6); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if form := sess.Form(); form != (Form{}) {
		t.Errorf("form after delete = %+v, want empty", form)
	}
	if sess.EditingID() != 0 || sess.SubmitLabel() != CreateLabel {
		t.Error("delete must reset the editing state even for an unrelated record")
	}
}

func TestSession_FailuresLeaveStateUntouched(t *testing.T) {
	seed := []core.Expense{record(1, "Rent", "400.25", "2025-03-01", "")}

	tests := []struct {
		name string
		prep func(*fakeGateway)
		act  func(context.Context, *Session) error
	}{
		{
			name: "failed create",
			prep: func(gw *fakeGateway) { gw.failCreate = true },
			act:  func(ctx context.Context, s *Session) error { return s.Submit(ctx) },
		},
		{
			name: "failed delete",
			prep: func(gw *fakeGateway) { gw.failDelete = true },
			act:  func(ctx context.Context, s *Session) error { return s.Remove(ctx, 1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{nextID: 1, records: append([]core.Expense(nil), seed...)}
			sess, _ := newTestSession(gw, &fakeSettings{})
			ctx := context.Background()

			if err := sess.Refresh(ctx, false); err != nil {
				t.Fatalf("Refresh: %v", err)
			}
			sess.SetField("title", "Pending")
			sess.SetField("amount", "9.99")
			sess.SetField("date", "2025-03-09")
			before := sess.Form()
			storeLen := 1

			tt.prep(gw)
			err := tt.act(ctx, sess)
			if err == nil {
				t.Fatal("expected an error")
			}

			var se *core.SaveError
			var de *core.DeleteError
			if !errors.As(err, &se) && !errors.As(err, &de) {
				t.Errorf("error %v is not part of the taxonomy", err)
			}
			if sess.Form() != before {
				t.Errorf("form changed on failure: %+v", sess.Form())
			}
			if got := len(gw.records); got != storeLen {
				t.Errorf("remote records = %d, want %d", got, storeLen)
			}
		})
	}
}

func TestSession_FailedEditLeavesFormUnchanged(t *testing.T) {
	gw := &fakeGateway{failGet: true}
	sess, _ := newTestSession(gw, &fakeSettings{})

	sess.SetField("title", "Draft in progress")
	err := sess.Edit(context.Background(), 1)

	var fe *core.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Edit error = %v, want *core.FetchError", err)
	}
	if sess.Form().Title != "Draft in progress" {
		t.Error("failed edit must not touch the form")
	}
	if sess.EditingID() != 0 {
		t.Error("failed edit must not switch to update mode")
	}
}

func TestSession_SetIncome(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: "1500.50"},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &fakeSettings{}
			sess, _ := newTestSession(&fakeGateway{}, settings)

			err := sess.SetIncome(context.Background(), tt.raw)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidIncome) {
					t.Errorf("SetIncome(%q) = %v, want ErrInvalidIncome", tt.raw, err)
				}
				if settings.sets != 0 {
					t.Error("invalid income must not be persisted")
				}
				return
			}
			if err != nil {
				t.Fatalf("SetIncome: %v", err)
			}
			if settings.sets != 1 {
				t.Errorf("persisted %d times, want 1", settings.sets)
			}
			if !sess.Income().Equal(decimal.RequireFromString(tt.raw)) {
				t.Errorf("Income = %s, want %s", sess.Income(), tt.raw)
			}
		})
	}
}

func TestSession_SearchRendersFilteredView(t *testing.T) {
	gw := &fakeGateway{
		nextID: 2,
		records: []core.Expense{
			record(1, "Rent", "400.25", "2025-03-01", ""),
			record(2, "Coffee", "3.50", "2025-03-02", ""),
		},
	}
	sess, buf := newTestSession(gw, &fakeSettings{income: decimal.NewFromInt(1000)})
	ctx := context.Background()

	if err := sess.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	buf.Reset()
	sess.Search("coffee")
	out := buf.String()
	if !strings.Contains(out, "Coffee") {
		t.Error("filtered view must contain the matching record")
	}
	if strings.Contains(out, "Rent") {
		t.Error("filtered view must not contain non-matching records")
	}
	// The balance still covers the full store.
	if !strings.Contains(out, "Remaining Balance: 596.25") {
		t.Errorf("balance must ignore filters, output:\n%s", out)
	}

	buf.Reset()
	sess.ClearFilters()
	out = buf.String()
	if !strings.Contains(out, "Rent") || !strings.Contains(out, "Coffee") {
		t.Error("clearing filters must restore the full view")
	}
}
