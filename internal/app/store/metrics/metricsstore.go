package metricsstore

import (
	"context"
	"fmt"

	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	documentstore "github.com/dalemusser/officehub/internal/app/store/documents"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	vacancystore "github.com/dalemusser/officehub/internal/app/store/vacancies"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Summary is the set of totals shown on the dashboard.
type Summary struct {
	Candidates      map[string]int64 `json:"candidates_by_stage" yaml:"candidates_by_stage"`
	Contacts        map[string]int64 `json:"contacts_by_stage" yaml:"contacts_by_stage"`
	OpenVacancies   int64            `json:"open_vacancies" yaml:"open_vacancies"`
	ActiveEmployees map[string]int64 `json:"active_employees_by_role" yaml:"active_employees_by_role"`
	PendingRules    int64            `json:"pending_rules_documents" yaml:"pending_rules_documents"`
	PendingPlans    int64            `json:"pending_future_plan_documents" yaml:"pending_future_plan_documents"`
}

// FetchSummary runs the dashboard counts concurrently. The first failing
// query cancels the rest and its error is returned.
func FetchSummary(ctx context.Context, db *mongo.Database) (Summary, error) {
	var out Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := candidatestore.New(db).CountByStage(ctx)
		if err != nil {
			return fmt.Errorf("candidates by stage: %w", err)
		}
		out.Candidates = m
		return nil
	})
	g.Go(func() error {
		m, err := contactstore.New(db).CountByStage(ctx)
		if err != nil {
			return fmt.Errorf("contacts by stage: %w", err)
		}
		out.Contacts = m
		return nil
	})
	g.Go(func() error {
		n, err := vacancystore.New(db).Count(ctx, bson.M{"status": models.VacancyOpen})
		if err != nil {
			return fmt.Errorf("open vacancies: %w", err)
		}
		out.OpenVacancies = n
		return nil
	})
	g.Go(func() error {
		m, err := employeestore.New(db).CountActiveByRole(ctx)
		if err != nil {
			return fmt.Errorf("active employees: %w", err)
		}
		out.ActiveEmployees = m
		return nil
	})
	g.Go(func() error {
		n, err := pendingDocuments(ctx, db, models.DocumentKindRules)
		out.PendingRules = n
		return err
	})
	g.Go(func() error {
		n, err := pendingDocuments(ctx, db, models.DocumentKindFuturePlan)
		out.PendingPlans = n
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func pendingDocuments(ctx context.Context, db *mongo.Database, kind models.DocumentKind) (int64, error) {
	n, err := documentstore.New(db, kind).Count(ctx, bson.M{"approval_status": models.ApprovalPending})
	if err != nil {
		return 0, fmt.Errorf("pending %s documents: %w", kind, err)
	}
	return n, nil
}
