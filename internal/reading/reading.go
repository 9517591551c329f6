// Package reading implements the club's reading calendar over weekly plans.
package reading

import (
	"fmt"
	"time"

	"github.com/oseayemenre/upepo/internal/models"
)

const DateLayout = "2006-01-02"

// Day truncates t to its calendar date, read in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)

	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}

	return t, nil
}

// Contains reports whether day falls within the plan's inclusive date range.
func Contains(plan models.WeeklyPlan, day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(plan.StartDate)) && !d.After(Day(plan.EndDate))
}

// CurrentWeek returns the first plan, in the order given, whose range contains day.
func CurrentWeek(plans []models.WeeklyPlan, day time.Time) *models.WeeklyPlan {
	for i := range plans {
		if Contains(plans[i], day) {
			return &plans[i]
		}
	}

	return nil
}

// ValidateWeek checks a candidate plan against its book's range and the book's
// other plans. Plans sharing the candidate's id are ignored, so an update can
// be validated against the stored set.
func ValidateWeek(candidate models.WeeklyPlan, book *models.Book, existing []models.WeeklyPlan) []models.FieldError {
	var details []models.FieldError

	start, end := Day(candidate.StartDate), Day(candidate.EndDate)

	if end.Before(start) {
		return append(details, models.FieldError{Field: "endDate", Message: "must not be before startDate"})
	}

	if book != nil && book.StartDate != nil && start.Before(Day(*book.StartDate)) {
		details = append(details, models.FieldError{
			Field:   "startDate",
			Message: fmt.Sprintf("must not be before the book's start date %s", book.StartDate.Format(DateLayout)),
		})
	}

	if book != nil && book.EndDate != nil && end.After(Day(*book.EndDate)) {
		details = append(details, models.FieldError{
			Field:   "endDate",
			Message: fmt.Sprintf("must not be after the book's end date %s", book.EndDate.Format(DateLayout)),
		})
	}

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}

		if !end.Before(Day(other.StartDate)) && !start.After(Day(other.EndDate)) {
			details = append(details, models.FieldError{
				Field:   "startDate",
				Message: fmt.Sprintf("overlaps week %d", other.WeekNumber),
			})
			break
		}
	}

	return details
}
