package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"budget_engine/pkg/models"
)

// BudgetRepo persists one import run per project. A new import replaces the
// previous one inside a single transaction, so readers never see a half
// import.
type BudgetRepo struct{}

// NewBudgetRepo creates a repository instance.
func NewBudgetRepo() *BudgetRepo {
	return &BudgetRepo{}
}

// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE budget_line_items (
//	  id UUID PRIMARY KEY,
//	  project_id UUID NOT NULL,
//	  source_sheet TEXT NOT NULL,
//	  source_row INT NOT NULL,
//	  discipline TEXT,
//	  category TEXT,
//	  cost_type TEXT,
//	  description TEXT,
//	  total_cost NUMERIC NOT NULL,
//	  labor_cost NUMERIC, material_cost NUMERIC, equipment_cost NUMERIC,
//	  subcontract_cost NUMERIC, other_cost NUMERIC,
//	  manhours NUMERIC,
//	  wbs_code TEXT
//	);
//	CREATE TABLE wbs_nodes (
//	  project_id UUID NOT NULL,
//	  code TEXT NOT NULL,
//	  parent_code TEXT,
//	  level INT NOT NULL,
//	  description TEXT,
//	  phase TEXT, cost_type TEXT, labor_category TEXT,
//	  budget_total NUMERIC NOT NULL,
//	  PRIMARY KEY (project_id, code)
//	);
//	CREATE TABLE budget_imports (
//	  project_id UUID PRIMARY KEY,
//	  run_id UUID NOT NULL,
//	  totals_json JSONB,
//	  validation_json JSONB,
//	  allocations_json JSONB,
//	  imported_at TIMESTAMPTZ
//	);

// SaveImport replaces the stored import for a project with this result.
func (r *BudgetRepo) SaveImport(ctx context.Context, projectID string, result *models.ImportResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if _, err := uuid.Parse(projectID); err != nil {
		return fmt.Errorf("invalid project id %q: %w", projectID, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM budget_line_items WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM wbs_nodes WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear wbs nodes: %w", err)
	}

	if err := r.insertLineItems(ctx, tx, projectID, result); err != nil {
		return err
	}
	if err := r.insertWBSNodes(ctx, tx, projectID, result.WBSStructure5Level); err != nil {
		return err
	}
	if err := r.upsertImportHeader(ctx, tx, projectID, result); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func (r *BudgetRepo) insertLineItems(ctx context.Context, tx pgx.Tx, projectID string, result *models.ImportResult) error {
	const query = `
		INSERT INTO budget_line_items (
			id, project_id, source_sheet, source_row, discipline, category,
			cost_type, description, total_cost, labor_cost, material_cost,
			equipment_cost, subcontract_cost, other_cost, manhours, wbs_code
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`

	for _, items := range result.Details {
		for _, item := range items {
			_, err := tx.Exec(ctx, query,
				uuid.NewString(), projectID, item.SourceSheet, item.SourceRow,
				item.Discipline, item.Category, item.CostType, item.Description,
				item.TotalCost, item.LaborCost, item.MaterialCost,
				item.EquipmentCost, item.SubcontractCost, item.OtherCost,
				item.Manhours, item.WBSCode)
			if err != nil {
				return fmt.Errorf("failed to insert line item (%s row %d): %w",
					item.SourceSheet, item.SourceRow, err)
			}
		}
	}
	return nil
}

func (r *BudgetRepo) insertWBSNodes(ctx context.Context, tx pgx.Tx, projectID string, nodes []*models.WBSNode) error {
	const query = `
		INSERT INTO wbs_nodes (
			project_id, code, parent_code, level, description,
			phase, cost_type, labor_category, budget_total
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	for _, node := range nodes {
		_, err := tx.Exec(ctx, query,
			projectID, node.Code, node.ParentCode, node.Level, node.Description,
			node.Phase, node.CostType, node.LaborCategory, node.BudgetTotal)
		if err != nil {
			return fmt.Errorf("failed to insert wbs node %s: %w", node.Code, err)
		}
		if err := r.insertWBSNodes(ctx, tx, projectID, node.Children); err != nil {
			return err
		}
	}
	return nil
}

func (r *BudgetRepo) upsertImportHeader(ctx context.Context, tx pgx.Tx, projectID string, result *models.ImportResult) error {
	totals, err := json.Marshal(result.Totals)
	if err != nil {
		return fmt.Errorf("failed to marshal totals: %w", err)
	}
	validation, err := json.Marshal(result.Validation)
	if err != nil {
		return fmt.Errorf("failed to marshal validation: %w", err)
	}
	allocations, err := json.Marshal(struct {
		Phase       []models.PhaseAllocation       `json:"phase_allocations"`
		DirectLabor []models.DirectLaborAllocation `json:"direct_labor_allocations"`
	}{result.PhaseAllocations, result.DirectLaborAllocations})
	if err != nil {
		return fmt.Errorf("failed to marshal allocations: %w", err)
	}

	const query = `
		INSERT INTO budget_imports (project_id, run_id, totals_json, validation_json, allocations_json, imported_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id)
		DO UPDATE SET
			run_id = EXCLUDED.run_id,
			totals_json = EXCLUDED.totals_json,
			validation_json = EXCLUDED.validation_json,
			allocations_json = EXCLUDED.allocations_json,
			imported_at = EXCLUDED.imported_at;`

	if _, err := tx.Exec(ctx, query, projectID, result.RunID, totals, validation, allocations, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert import header: %w", err)
	}
	return nil
}

// LoadLineItems retrieves the stored line items for a project.
func (r *BudgetRepo) LoadLineItems(ctx context.Context, projectID string) ([]models.BudgetLineItem, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	const query = `
		SELECT source_sheet, source_row, discipline, category, cost_type,
		       description, total_cost, labor_cost, material_cost,
		       equipment_cost, subcontract_cost, other_cost, manhours, wbs_code
		FROM budget_line_items
		WHERE project_id = $1
		ORDER BY source_sheet, source_row`

	rows, err := pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	defer rows.Close()

	var items []models.BudgetLineItem
	for rows.Next() {
		var item models.BudgetLineItem
		if err := rows.Scan(
			&item.SourceSheet, &item.SourceRow, &item.Discipline, &item.Category,
			&item.CostType, &item.Description, &item.TotalCost, &item.LaborCost,
			&item.MaterialCost, &item.EquipmentCost, &item.SubcontractCost,
			&item.OtherCost, &item.Manhours, &item.WBSCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
