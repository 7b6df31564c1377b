package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/events"
	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/schedule"
	"github.com/mmynk/homeshare/internal/storage"
)

// RecurrenceService advances recurring templates: for every active
// template it computes the occurrences due as of "today", materializes a
// task or expense per occurrence, and persists the batch together with
// the advanced cursor in one transaction per template.
//
// Today is always passed in by the caller (worker loop, admin endpoint,
// test), never read from a clock here.
type RecurrenceService struct {
	store  storage.Store
	events *events.Client // nil when no broker is configured
}

// NewRecurrenceService creates a new RecurrenceService. The events client
// may be nil.
func NewRecurrenceService(store storage.Store, eventsClient *events.Client) *RecurrenceService {
	return &RecurrenceService{store: store, events: eventsClient}
}

// ProcessDue catches up every active template and returns how many
// occurrences were generated. A failing template is logged and skipped;
// the rest of the batch still runs.
func (s *RecurrenceService) ProcessDue(ctx context.Context, today string) (int, error) {
	templates, err := s.store.ListActiveTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active templates: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring templates",
		"total_active", len(templates),
		"today", today,
	)

	generated := 0
	for _, tmpl := range templates {
		n, err := s.processTemplate(ctx, tmpl, today)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to process template",
				"template_id", tmpl.ID,
				"error", err,
			)
			continue
		}
		generated += n
	}
	return generated, nil
}

func (s *RecurrenceService) processTemplate(ctx context.Context, tmpl *models.RecurringTemplate, today string) (int, error) {
	due, err := schedule.DueOccurrences(schedule.DueRequest{
		NextOccurrence: tmpl.NextOccurrence,
		EndDate:        tmpl.EndDate,
		Frequency:      schedule.Frequency(tmpl.Frequency),
		Interval:       tmpl.Interval,
		Today:          today,
	})
	if err != nil {
		return 0, err
	}
	if len(due.Occurrences) == 0 && due.Active == tmpl.Active {
		return 0, nil
	}

	var expenses []*models.Expense
	var tasks []*models.Task
	for _, occurrence := range due.Occurrences {
		switch tmpl.Kind {
		case models.TemplateTask:
			tasks = append(tasks, &models.Task{
				ID:          uuid.New().String(),
				HouseholdID: tmpl.HouseholdID,
				Title:       tmpl.TaskTitle,
				AssigneeID:  tmpl.TaskAssigneeID,
				DueDate:     occurrence,
			})
		case models.TemplateExpense:
			expense, err := s.buildTemplateExpense(tmpl)
			if err != nil {
				return 0, err
			}
			expenses = append(expenses, expense)
		default:
			return 0, fmt.Errorf("unknown template kind %q", tmpl.Kind)
		}
	}

	tmpl.NextOccurrence = due.NextOccurrence
	tmpl.Active = due.Active
	if err := s.store.ApplyRecurrence(ctx, tmpl, expenses, tasks); err != nil {
		return 0, err
	}

	if !tmpl.Active {
		slog.InfoContext(ctx, "Template retired", "template_id", tmpl.ID)
	}

	s.publishGenerated(ctx, tmpl, due.Occurrences, expenses, tasks)
	return len(due.Occurrences), nil
}

// buildTemplateExpense generates one concrete expense from the template's
// payload, through the same split path one-off expenses use.
func (s *RecurrenceService) buildTemplateExpense(tmpl *models.RecurringTemplate) (*models.Expense, error) {
	policy, err := policyFromSpec(tmpl.ExpenseSplit)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", tmpl.ID, err)
	}
	shares, err := policy.Split(tmpl.ExpenseAmount)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", tmpl.ID, err)
	}

	lines := make([]models.SplitLine, 0, len(shares))
	for _, share := range shares {
		lines = append(lines, models.SplitLine{MemberID: share.MemberID, Amount: share.Amount})
	}

	return &models.Expense{
		ID:          uuid.New().String(),
		HouseholdID: tmpl.HouseholdID,
		Description: tmpl.ExpenseDescription,
		PayerID:     tmpl.ExpensePayerID,
		Amount:      tmpl.ExpenseAmount,
		Method:      tmpl.ExpenseSplit.Method,
		Lines:       lines,
	}, nil
}

// publishGenerated announces each generated record. Publishing is best
// effort: the records are already committed, so a broker failure only
// costs the notification.
func (s *RecurrenceService) publishGenerated(ctx context.Context, tmpl *models.RecurringTemplate, occurrences []string, expenses []*models.Expense, tasks []*models.Task) {
	if s.events == nil {
		return
	}

	for i, occurrence := range occurrences {
		var kind, recordID string
		switch tmpl.Kind {
		case models.TemplateTask:
			kind, recordID = string(models.TemplateTask), tasks[i].ID
		case models.TemplateExpense:
			kind, recordID = string(models.TemplateExpense), expenses[i].ID
		}
		msg := events.NewOccurrenceGenerated(tmpl.ID, tmpl.HouseholdID, kind, recordID, occurrence)
		if err := s.events.PublishOccurrenceGenerated(ctx, msg); err != nil {
			slog.WarnContext(ctx, "Failed to publish occurrence event",
				"template_id", tmpl.ID,
				"record_id", recordID,
				"error", err,
			)
		}
	}
}
