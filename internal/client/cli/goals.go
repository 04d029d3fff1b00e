package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

// Goals prints the mirrored goals, loading them first when the mirror is
// empty.
func (a *App) Goals(ctx context.Context) error {
	if len(a.goals.List()) == 0 {
		if err := a.goals.Refresh(ctx); err != nil {
			a.report(ctx, err)
			return err
		}
	}

	list := a.goals.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No goals yet. Use 'addgoal' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDESCRIPTION\tTARGET\tDEADLINE")
	for _, g := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Description, g.TargetValue, g.Deadline)
	}
	return tw.Flush()
}

func (a *App) promptGoal(g models.Goal) (models.Goal, error) {
	var err error
	if g.Description, err = GetTextWithDefault(a.reader, "Description", g.Description, a.out); err != nil {
		return g, err
	}
	if g.TargetValue, err = GetTextWithDefault(a.reader, "Target value", g.TargetValue, a.out); err != nil {
		return g, err
	}
	if g.Deadline, err = GetDate(a.reader, "Deadline", g.Deadline, a.out); err != nil {
		return g, err
	}
	return g, nil
}

func (a *App) AddGoal(ctx context.Context) error {
	g, err := a.promptGoal(models.Goal{})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	created, err := a.goals.Create(ctx, g)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Goal %s created.\n", created.ID)
	return nil
}

func (a *App) findGoal(id string) (models.Goal, bool) {
	for _, g := range a.goals.List() {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

// EditGoal prompts for an id and new values; empty answers keep the current
// ones.
func (a *App) EditGoal(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter goal id to edit", a.out)
	if err != nil {
		return err
	}
	current, ok := a.findGoal(id)
	if !ok {
		err := common.NewValidationError("id", "no goal with id "+id)
		a.report(ctx, err)
		return err
	}

	g, err := a.promptGoal(current)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if _, err := a.goals.Update(ctx, g); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Goal %s updated.\n", g.ID)
	return nil
}

func (a *App) DeleteGoal(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter goal id to delete", a.out)
	if err != nil {
		return err
	}
	if err := a.goals.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Goal %s deleted.\n", id)
	return nil
}
