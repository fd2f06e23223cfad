package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/db"
)

var validate = newValidator()

// enumValue is implemented by the model's string enums
type enumValue interface {
	IsValid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.IsValid()
	})
	return v
}

// ExportData reads every pod, person and scenario into one document
func ExportData(ctx context.Context, store db.ScenarioStore, logger *zap.Logger) (*model.AppData, error) {
	pods, err := store.GetPods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pods: %w", err)
	}

	people, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	scenarios, err := store.GetScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	data := &model.AppData{
		Pods:      db.PodsToModel(pods),
		People:    db.PeopleToModel(people),
		Scenarios: make([]model.ScenarioData, 0, len(scenarios)),
	}

	for _, s := range scenarios {
		snapshot, err := LoadSnapshot(ctx, store, logger, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export scenario %s: %w", s.ID, err)
		}
		data.Scenarios = append(data.Scenarios, snapshot.Scenario)
	}

	logger.Info("Data exported",
		zap.Int("pods", len(data.Pods)),
		zap.Int("people", len(data.People)),
		zap.Int("scenarios", len(data.Scenarios)))

	return data, nil
}

// ImportResult counts the records written by an import
type ImportResult struct {
	Pods        int
	People      int
	Scenarios   int
	WorkItems   int
	Allocations int
	TimeOffs    int
}

// ValidateAppData checks field formats and cross-record rules, returning every
// problem found joined into one error
func ValidateAppData(data *model.AppData) error {
	var errs []error

	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				errs = append(errs, fmt.Errorf("%s: failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	errs = append(errs, duplicateIDs("pods", "pod", data.Pods, func(p model.Pod) string { return p.ID })...)
	errs = append(errs, duplicateIDs("people", "person", data.People, func(p model.Person) string { return p.ID })...)
	errs = append(errs, duplicateIDs("scenarios", "scenario", data.Scenarios, func(s model.ScenarioData) string { return s.Scenario.ID })...)

	baseCount := 0
	for i, s := range data.Scenarios {
		if s.Scenario.IsBase {
			baseCount++
		}

		// Work item, allocation and time off IDs are unique within a scenario
		path := fmt.Sprintf("scenarios[%d]", i)
		errs = append(errs, duplicateIDs(path+".workItems", "work item", s.WorkItems, func(wi model.WorkItem) string { return wi.ID })...)
		errs = append(errs, duplicateIDs(path+".allocations", "allocation", s.Allocations, func(a model.Allocation) string { return a.ID })...)
		errs = append(errs, duplicateIDs(path+".timeOffs", "time off", s.TimeOffs, func(to model.TimeOff) string { return to.ID })...)

		for j, wi := range s.WorkItems {
			if wi.StartDate != "" && wi.EndDate != "" && wi.EndDate < wi.StartDate {
				errs = append(errs, fmt.Errorf("%s.workItems[%d]: end date %s is before start date %s", path, j, wi.EndDate, wi.StartDate))
			}
		}
	}
	if baseCount > 1 {
		errs = append(errs, fmt.Errorf("only one base scenario is allowed, found %d", baseCount))
	}

	return errors.Join(errs...)
}

// duplicateIDs reports every record whose ID was already used earlier in items
func duplicateIDs[T any](path, kind string, items []T, id func(T) string) []error {
	var errs []error
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		key := id(item)
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate %s id %s", path, i, kind, key))
		}
		seen[key] = true
	}
	return errs
}

// ImportData validates the document, clears the store and writes every record
func ImportData(ctx context.Context, store db.Database, logger *zap.Logger, data *model.AppData) (*ImportResult, error) {
	if err := ValidateAppData(data); err != nil {
		return nil, fmt.Errorf("import validation failed: %w", err)
	}
	logger.Debug("Import document validated")

	result := &ImportResult{
		Pods:      len(data.Pods),
		People:    len(data.People),
		Scenarios: len(data.Scenarios),
	}
	for _, sd := range data.Scenarios {
		result.WorkItems += len(sd.WorkItems)
		result.Allocations += len(sd.Allocations)
		result.TimeOffs += len(sd.TimeOffs)
	}

	write := func(store db.Database) error {
		return replaceAll(ctx, store, data)
	}

	var err error
	if tx, ok := store.(db.Transactor); ok {
		logger.Debug("Importing in one transaction")
		err = tx.InTx(ctx, write)
	} else {
		err = write(store)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Data imported",
		zap.Int("pods", result.Pods),
		zap.Int("people", result.People),
		zap.Int("scenarios", result.Scenarios),
		zap.Int("allocations", result.Allocations))

	return result, nil
}

// replaceAll clears the store and writes every record of data
func replaceAll(ctx context.Context, store db.Database, data *model.AppData) error {
	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	if err := store.InsertPods(ctx, db.PodsFromModel(data.Pods)); err != nil {
		return fmt.Errorf("failed to insert pods: %w", err)
	}
	if err := store.InsertPeople(ctx, db.PeopleFromModel(data.People)); err != nil {
		return fmt.Errorf("failed to insert people: %w", err)
	}

	for _, s := range data.Scenarios {
		id := s.Scenario.ID
		row := db.ScenarioFromModel(s.Scenario)
		if err := store.InsertScenario(ctx, &row); err != nil {
			return fmt.Errorf("failed to insert scenario %s: %w", id, err)
		}
		if err := store.InsertWorkItems(ctx, db.WorkItemsFromModel(id, s.WorkItems)); err != nil {
			return fmt.Errorf("failed to insert work items for %s: %w", id, err)
		}
		if err := store.InsertAllocations(ctx, db.AllocationsFromModel(id, s.Allocations)); err != nil {
			return fmt.Errorf("failed to insert allocations for %s: %w", id, err)
		}
		if err := store.InsertTimeOffs(ctx, db.TimeOffsFromModel(id, s.TimeOffs)); err != nil {
			return fmt.Errorf("failed to insert time off for %s: %w", id, err)
		}
	}

	return nil
}
