package cli

import (
	"context"
	"fmt"
	"html"
	"text/tabwriter"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

func activityNames() []string {
	out := make([]string, len(models.Activities))
	for i, v := range models.Activities {
		out[i] = string(v)
	}
	return out
}

func intensityNames() []string {
	out := make([]string, len(models.Intensities))
	for i, v := range models.Intensities {
		out[i] = string(v)
	}
	return out
}

// Workouts prints the mirrored workouts. The list is kept fresh by the
// background poller; an empty mirror triggers an explicit refresh.
func (a *App) Workouts(ctx context.Context) error {
	if len(a.workouts.List()) == 0 {
		if err := a.workouts.Refresh(ctx); err != nil {
			a.report(ctx, err)
			return err
		}
	}

	list := a.workouts.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No workouts yet. Use 'addworkout' to log one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tMIN\tACTIVITY\tINTENSITY\tNOTES")
	for _, w := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", w.ID, w.Date, w.Duration, w.Activity, w.Intensity, html.UnescapeString(w.Notes))
	}
	return tw.Flush()
}

func (a *App) promptWorkout(w models.Workout) (models.Workout, error) {
	var err error
	if w.Date, err = GetDate(a.reader, "Date", w.Date, a.out); err != nil {
		return w, err
	}
	if w.Duration, err = GetTextWithDefault(a.reader, "Duration in minutes", w.Duration, a.out); err != nil {
		return w, err
	}
	activity, err := GetChoice(a.reader, "Activity", activityNames(), string(w.Activity), a.out)
	if err != nil {
		return w, err
	}
	w.Activity = models.Activity(activity)

	intensity, err := GetChoice(a.reader, "Intensity", intensityNames(), string(w.Intensity), a.out)
	if err != nil {
		return w, err
	}
	w.Intensity = models.Intensity(intensity)

	notes, err := getMultiline(a.reader, "Notes (optional, empty keeps current)", a.out)
	if err != nil {
		return w, err
	}
	if notes != "" {
		w.Notes = notes
	}
	return w, nil
}

func (a *App) AddWorkout(ctx context.Context) error {
	w, err := a.promptWorkout(models.Workout{})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	created, err := a.workouts.Create(ctx, w)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Workout %s logged.\n", created.ID)
	return nil
}

func (a *App) findWorkout(id string) (models.Workout, bool) {
	for _, w := range a.workouts.List() {
		if w.ID == id {
			return w, true
		}
	}
	return models.Workout{}, false
}

func (a *App) EditWorkout(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter workout id to edit", a.out)
	if err != nil {
		return err
	}
	current, ok := a.findWorkout(id)
	if !ok {
		err := common.NewValidationError("id", "no workout with id "+id)
		a.report(ctx, err)
		return err
	}

	w, err := a.promptWorkout(current)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if _, err := a.workouts.Update(ctx, w); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Workout %s updated.\n", w.ID)
	return nil
}

func (a *App) DeleteWorkout(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter workout id to delete", a.out)
	if err != nil {
		return err
	}
	if err := a.workouts.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Workout %s deleted.\n", id)
	return nil
}
